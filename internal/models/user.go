package models

// Student is a registered user of the backend.
type Student struct {
	ID       string `json:"id"`
	Name     string `json:"nome"`
	Email    string `json:"email"`
	Plan     string `json:"plano"`
	Password string `json:"-"` // never serialized
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"senha"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"nome"`
	Email    string `json:"email"`
	Password string `json:"senha"`
}

// AuthResponse is the data payload of a successful login.
type AuthResponse struct {
	Token string `json:"token"`
}

// RegisterResponse is the data payload of a successful registration.
type RegisterResponse struct {
	ID string `json:"id"`
}
