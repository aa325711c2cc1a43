package request

// LoginRequest represents a login request
type LoginRequest struct {
	Passphrase string `json:"passphrase" binding:"required"`
}
