package types

import (
	"time"
)

type User struct {
	Id           string    `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	EmailAddress string    `json:"email"`
	Password     string    `json:"-"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
	UpdatedAt    time.Time `json:"updated_at,omitempty"`
}

type ItemCategory struct {
	Id   int    `json:"id"`
	Name string `json:"name"`
}

type LostItem struct {
	Id           int       `json:"id"`
	ReferenceId  string    `json:"reference_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	ImageUrl     string    `json:"image_url"`
	Status       string    `json:"status"`
	FoundBy      string    `json:"found_by"`
	DroppedOffBy string    `json:"dropped_off_by,omitempty"`
	FoundIn      int       `json:"found_in"`
	ClaimedBy    string    `json:"claimed_by,omitempty"`
	CollectedBy  string    `json:"collected_by,omitempty"`
	DroppedOffAt int       `json:"dropped_off_at"`
	CategoryId   int       `json:"category_id"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
	UpdatedAt    time.Time `json:"updated_at,omitempty"`
}
