package types

import "time"

// User represents an account in the system.
// It contains identity, profile, and audit metadata.
type User struct {
	// ID is the unique identifier of the user.
	ID int `json:"id" db:"id"`

	// FirstName is the user's given name.
	FirstName string `json:"firstName" db:"first_name" validate:"required,max=100"`

	// SecondName is the user's family name.
	SecondName string `json:"secondName" db:"second_name" validate:"required,max=100"`

	// Email is the user's email address. It is unique across all users
	// and doubles as the login identifier.
	Email string `json:"email" db:"email" validate:"required,email,max=255"`

	// PasswordHash stores the hashed representation of the user's password.
	// This field is never exposed in API responses.
	PasswordHash string `json:"-" db:"password_hash"`

	// PhotoPath is the storage key of the user's profile photo,
	// empty when no photo has been uploaded.
	PhotoPath string `json:"photoPath" db:"photo_path" validate:"max=1024"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// UpdatedAt is the timestamp of the most recent update to the user account.
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
