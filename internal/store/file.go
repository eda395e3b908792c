package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Feaman/interview-server/types"
)

// FileRepository handles persistence for uploaded file records.
type FileRepository struct {
	db *sql.DB
}

func NewFileRepository(db *sql.DB) *FileRepository {
	return &FileRepository{db: db}
}

func (r *FileRepository) List(ctx context.Context, userID int) ([]types.File, error) {
	const query = `
		SELECT id, user_id, name, original_name, mime_type, size, path, created_at
		FROM files
		WHERE user_id = $1
		ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	files := make([]types.File, 0)
	for rows.Next() {
		var file types.File
		if err := rows.Scan(
			&file.ID,
			&file.UserID,
			&file.Name,
			&file.OriginalName,
			&file.MimeType,
			&file.Size,
			&file.Path,
			&file.CreatedAt,
		); err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return files, nil
}

func (r *FileRepository) GetByID(ctx context.Context, id, userID int) (types.File, error) {
	const query = `
		SELECT id, user_id, name, original_name, mime_type, size, path, created_at
		FROM files
		WHERE id = $1 AND user_id = $2`
	var file types.File
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&file.ID,
		&file.UserID,
		&file.Name,
		&file.OriginalName,
		&file.MimeType,
		&file.Size,
		&file.Path,
		&file.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.File{}, ErrNotFound
		}
		return types.File{}, err
	}
	return file, nil
}

// Create inserts the file record under userID and returns the freshly
// loaded row.
func (r *FileRepository) Create(ctx context.Context, file types.File, userID int) (types.File, error) {
	file.CreatedAt = time.Now()

	const query = `
		INSERT INTO files (user_id, name, original_name, mime_type, size, path, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		userID,
		file.Name,
		file.OriginalName,
		file.MimeType,
		file.Size,
		file.Path,
		file.CreatedAt,
	).Scan(&file.ID); err != nil {
		return types.File{}, err
	}

	return r.GetByID(ctx, file.ID, userID)
}

// Update rewrites the mutable fields of the file row, scoped by owner,
// and returns the freshly loaded row.
func (r *FileRepository) Update(ctx context.Context, file types.File, userID int) (types.File, error) {
	const query = `
		UPDATE files
		SET name = $1,
			original_name = $2,
			mime_type = $3,
			size = $4,
			path = $5
		WHERE id = $6 AND user_id = $7`
	result, err := r.db.ExecContext(
		ctx,
		query,
		file.Name,
		file.OriginalName,
		file.MimeType,
		file.Size,
		file.Path,
		file.ID,
		userID,
	)
	if err != nil {
		return types.File{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.File{}, err
	}
	if affected == 0 {
		return types.File{}, ErrNotFound
	}

	return r.GetByID(ctx, file.ID, userID)
}

func (r *FileRepository) Delete(ctx context.Context, id, userID int) error {
	const query = `DELETE FROM files WHERE id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
