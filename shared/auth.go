package shared

type AuthHeader struct {
	Token string `json:"token"`
}
