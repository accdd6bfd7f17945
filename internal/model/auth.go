package model

// AuthData is the session triple returned by the auth gateway and held
// by the auth store. ExpireAt is an RFC 3339 timestamp string; it is
// presentational metadata only and is never enforced locally.
type AuthData struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	ExpireAt     string `json:"expireAt"`
}

// LoginInput carries the credentials for a login request.
type LoginInput struct {
	Email    string
	Password string
}

// SignupInput carries the fields for an account creation request.
type SignupInput struct {
	Name     string
	Email    string
	Password string
}
