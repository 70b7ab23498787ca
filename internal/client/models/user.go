// Package models defines the data the client exchanges with the health
// planning API.
package models

import "github.com/dmitrijs2005/healthplanner/internal/timex"

// User is the identity record returned by the /auth/me endpoint. The API
// writes created_at without a UTC offset.
type User struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	CreatedAt timex.Time `json:"created_at"`
}

// Token is the body of a successful login.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
