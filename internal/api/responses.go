// Package api defines the shared HTTP response types used by all handlers.
package api

// ErrorResponse is the body returned for any failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the body returned for simple success acknowledgements.
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse is the body returned on successful login or token refresh.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}
