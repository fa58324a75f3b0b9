package domain

import "time"

type Pet struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"owner_id" validate:"required"`
	Name      string    `json:"name" validate:"required"`
	Species   string    `json:"species" validate:"required"`
	Breed     string    `json:"breed,omitempty"`
	Age       int       `json:"age,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
