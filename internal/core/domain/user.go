package domain

import "time"

// User models a registered author.
type User struct {
	ID           string    `json:"userId"`
	Email        string    `json:"userEmail"`
	Name         string    `json:"userName"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
