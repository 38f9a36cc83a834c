package dto

// RefreshReq represents the request for token refresh and logout.
type RefreshReq struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
