package auth

import "time"

// Credentials - inbound shape for register and login
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse - outbound shape for all auth endpoints
type AuthResponse struct {
	Success      bool   `json:"success"`
	Token        string `json:"token,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

// session - one in-memory login session (Redis sessions expire via TTL instead)
type session struct {
	username  string
	createdAt time.Time
	lastSeen  time.Time
}
