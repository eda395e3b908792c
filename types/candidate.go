package types

import "time"

// Candidate represents a candidate record owned by a single user.
// Every read and write of a candidate is scoped by the owning user id.
type Candidate struct {
	// ID is the unique identifier of the candidate.
	ID int `json:"id" db:"id"`

	// UserID is the id of the owning user.
	UserID int `json:"-" db:"user_id"`

	// FirstName is the candidate's given name.
	FirstName string `json:"firstName" db:"first_name" validate:"required,max=100"`

	// SecondName is the candidate's family name.
	SecondName string `json:"secondName" db:"second_name" validate:"required,max=100"`

	// Data is the free-form payload describing the candidate
	// (CV sections, contacts, and so on), stored as provided.
	Data string `json:"data" db:"data" validate:"required"`

	// PhotoPath is the storage key of the candidate's photo,
	// empty when no photo has been uploaded.
	PhotoPath string `json:"photoPath" db:"photo_path" validate:"max=1024"`

	// CreatedAt is the timestamp when the candidate was created.
	CreatedAt time.Time `json:"created" db:"created_at"`
}
