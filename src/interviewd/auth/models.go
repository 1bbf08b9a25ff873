// Package auth provides authentication for interviewd: JWT issuing and
// validation, token revocation, and the password hashing collaborator.
package auth

// Credentials is the login request body
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenClaims represents the validated identity carried by a JWT token
type TokenClaims struct {
	UserID  string `json:"user_id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	TokenID string `json:"jti"` // for revocation tracking
}

// LoginResponse is returned on successful authentication
type LoginResponse struct {
	Token     string `json:"token"`
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	ExpiresIn int64  `json:"expires_in"` // seconds
}
