package types

import "time"

// Template represents a CV template owned by a single user.
// At most one template per owner may have IsDefault set; the store
// enforces this by clearing other defaults in the same transaction.
type Template struct {
	// ID is the unique identifier of the template.
	ID int `json:"id" db:"id"`

	// UserID is the id of the owning user.
	UserID int `json:"-" db:"user_id"`

	// Title is the display name of the template.
	Title string `json:"title" db:"title" validate:"max=255"`

	// Data is the free-form template payload, stored as provided.
	Data string `json:"data" db:"data" validate:"required"`

	// IsDefault marks the owner's default template.
	IsDefault bool `json:"isDefault" db:"is_default"`

	// CreatedAt is the timestamp when the template was created.
	CreatedAt time.Time `json:"created" db:"created_at"`

	// UpdatedAt is the timestamp of the most recent update to the template.
	UpdatedAt time.Time `json:"updated" db:"updated_at"`
}
