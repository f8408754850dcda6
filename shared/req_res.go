package shared

import "encoding/json"

type CreateAccountRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	UserName string `json:"userName"`
	Phone    string `json:"phone"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SessionResponse struct {
	UserId   string `json:"userId"`
	Token    string `json:"token"`
	Email    string `json:"email"`
	UserName string `json:"userName"`
}

type CreatePasswordResetRequest struct {
	Email string `json:"email"`
}

type ConfirmPasswordResetRequest struct {
	Email       string `json:"email"`
	Pin         string `json:"pin"`
	NewPassword string `json:"newPassword"`
}

type UpdateProfileRequest struct {
	Name            string  `json:"name"`
	Phone           string  `json:"phone"`
	ProfileImageUrl *string `json:"profileImageUrl"`
}

type CreateExpenseRequest struct {
	Description string  `json:"description"`
	Value       float64 `json:"value"`
	Date        string  `json:"date"` // YYYY-MM-DD
}

type UpdateExpenseRequest struct {
	Description string  `json:"description"`
	Value       float64 `json:"value"`
	Date        string  `json:"date"` // YYYY-MM-DD
}

type CreatePostRequest struct {
	Description string  `json:"description"`
	ImageUrl    *string `json:"imageUrl"`
	Location    *string `json:"location"`
}

type CreateCommentRequest struct {
	Text string `json:"text"`
}

type ToggleLikeResponse struct {
	Liked bool     `json:"liked"`
	Likes []string `json:"likes"`
}

const STREAM_MESSAGE_SEPARATOR = "@@GS@@"

const StreamMessageHeartbeat = "heartbeat"

type StreamMessageType string

const (
	StreamMessageStart    StreamMessageType = "start"
	StreamMessageSnapshot StreamMessageType = "snapshot"
	StreamMessageError    StreamMessageType = "error"
)

// StreamMessage carries one live-query event. Snapshot holds the full ordered
// result set of the subscribed collection, encoded as a JSON array of the
// collection's record type.
type StreamMessage struct {
	Type     StreamMessageType `json:"type"`
	Snapshot json.RawMessage   `json:"snapshot,omitempty"`
	Error    *ApiError         `json:"error,omitempty"`
}
