package types

import "time"

// File represents an uploaded file owned by a single user. The original
// uploaded filename is kept separately from the generated storage key.
type File struct {
	// ID is the unique identifier of the file.
	ID int `json:"id" db:"id"`

	// UserID is the id of the owning user.
	UserID int `json:"-" db:"user_id"`

	// Name is the display name of the file.
	Name string `json:"name" db:"name" validate:"required,max=1024"`

	// OriginalName is the filename as supplied by the uploader.
	OriginalName string `json:"originalName" db:"original_name" validate:"max=1024"`

	// MimeType is the content type reported for the upload.
	MimeType string `json:"mimeType" db:"mime_type" validate:"required,max=55"`

	// Size is the upload size in bytes.
	Size int64 `json:"size" db:"size" validate:"min=0"`

	// Path is the generated storage key of the file contents.
	Path string `json:"path" db:"path" validate:"required,max=1024"`

	// CreatedAt is the timestamp when the file record was created.
	CreatedAt time.Time `json:"created" db:"created_at"`
}
