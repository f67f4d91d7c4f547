package types

import "time"

// Credentials is sent to /auth/login
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Account is the server's public view of the logged-in user
type Account struct {
	ID          string     `json:"id"`
	Username    string     `json:"username"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// Session is what a successful login returns
type Session struct {
	Token   string    `json:"token"`
	Expire  time.Time `json:"expire"`
	Account *Account  `json:"user"`
}
