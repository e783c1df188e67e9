package auth

// DevAuthRequest is the payload for POST /api/auth/dev.
type DevAuthRequest struct {
	Email string `json:"email"`
}

type DevAuthResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int64  `json:"expiresIn"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
