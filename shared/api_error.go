package shared

type ApiErrorType string

const (
	ApiErrorTypeInvalidToken      ApiErrorType = "invalid_token"
	ApiErrorTypeInvalidCredential ApiErrorType = "invalid_credential"
	ApiErrorTypeEmailAlreadyInUse ApiErrorType = "email_already_in_use"
	ApiErrorTypeInvalidInput      ApiErrorType = "invalid_input"
	ApiErrorTypeNotFound          ApiErrorType = "not_found"
	ApiErrorTypePermissionDenied  ApiErrorType = "permission_denied"

	ApiErrorTypeOther ApiErrorType = "other"
)

type ApiError struct {
	Type   ApiErrorType `json:"type"`
	Status int          `json:"status"`
	Msg    string       `json:"msg"`
}

func (e *ApiError) Error() string {
	return e.Msg
}
