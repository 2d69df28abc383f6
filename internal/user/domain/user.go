package domain

import "time"

type ID string

type User struct {
	ID           ID
	Email        string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Public is the wire shape of a user: the password hash never leaves
// the service layer.
type Public struct {
	ID       ID     `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

func (u User) Public() Public {
	return Public{
		ID:       u.ID,
		Email:    u.Email,
		Username: u.Username,
	}
}
