package domain

import "time"

type User struct {
	ID             string    `json:"id"`
	FullName       string    `json:"full_name"`
	Document       string    `json:"document"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	TransactionPin string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}
