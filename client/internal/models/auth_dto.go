package models

// UserDTO is the public part of an account.
type UserDTO struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// AuthDTO is returned by signup and login.
type AuthDTO struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}
