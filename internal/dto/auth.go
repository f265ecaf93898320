package dto

// ── operator auth ──

// LoginRequest is the operator dashboard login request.
type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// TokenResponse carries the issued operator access token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"` // seconds
}
