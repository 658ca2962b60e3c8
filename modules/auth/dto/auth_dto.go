package dto

import "time"

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Success bool   `json:"success"`
	Name    string `json:"name"`
}

type UserResponse struct {
	Name string `json:"name"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

// Session is a signed session token and when it stops being valid.
type Session struct {
	Token     string
	Name      string
	ExpiresAt time.Time
}
