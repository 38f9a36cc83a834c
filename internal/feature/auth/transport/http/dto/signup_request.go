// Package dto defines data transfer objects for the auth feature's HTTP transport layer.
package dto

// SignupReq represents the request body for the /signup endpoint.
// It uses Gin's binding tags for validation (required, username shape, password length).
type SignupReq struct {
	Username string `json:"username" binding:"required,alphanum,min=3,max=32"`
	Password string `json:"password" binding:"required,min=8"`
}
