package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Feaman/interview-server/types"
)

// TemplateRepository handles persistence for templates. At most one
// template per owner carries is_default; writes that set the flag clear
// every other default for that owner inside the same transaction.
type TemplateRepository struct {
	db *sql.DB
}

func NewTemplateRepository(db *sql.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

func (r *TemplateRepository) List(ctx context.Context, userID int) ([]types.Template, error) {
	const query = `
		SELECT id, user_id, title, data, is_default, created_at, updated_at
		FROM templates
		WHERE user_id = $1
		ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	templates := make([]types.Template, 0)
	for rows.Next() {
		var template types.Template
		if err := rows.Scan(
			&template.ID,
			&template.UserID,
			&template.Title,
			&template.Data,
			&template.IsDefault,
			&template.CreatedAt,
			&template.UpdatedAt,
		); err != nil {
			return nil, err
		}
		templates = append(templates, template)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return templates, nil
}

func (r *TemplateRepository) GetByID(ctx context.Context, id, userID int) (types.Template, error) {
	const query = `
		SELECT id, user_id, title, data, is_default, created_at, updated_at
		FROM templates
		WHERE id = $1 AND user_id = $2`
	var template types.Template
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&template.ID,
		&template.UserID,
		&template.Title,
		&template.Data,
		&template.IsDefault,
		&template.CreatedAt,
		&template.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Template{}, ErrNotFound
		}
		return types.Template{}, err
	}
	return template, nil
}

// Create inserts the template under userID and returns the freshly
// loaded row. When IsDefault is set, other defaults for the owner are
// cleared in the same transaction.
func (r *TemplateRepository) Create(ctx context.Context, template types.Template, userID int) (types.Template, error) {
	now := time.Now()
	template.CreatedAt = now
	template.UpdatedAt = now

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return types.Template{}, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if template.IsDefault {
		if err := clearDefaults(ctx, tx, userID, 0); err != nil {
			return types.Template{}, err
		}
	}

	const query = `
		INSERT INTO templates (user_id, title, data, is_default, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	if err := tx.QueryRowContext(
		ctx,
		query,
		userID,
		template.Title,
		template.Data,
		template.IsDefault,
		template.CreatedAt,
		template.UpdatedAt,
	).Scan(&template.ID); err != nil {
		return types.Template{}, err
	}

	if err := tx.Commit(); err != nil {
		return types.Template{}, err
	}

	return r.GetByID(ctx, template.ID, userID)
}

// Update rewrites the mutable fields of the template row, scoped by
// owner, and returns the freshly loaded row. The clear-then-set of the
// default flag runs in a single transaction so no two rows can read as
// default mid-update.
func (r *TemplateRepository) Update(ctx context.Context, template types.Template, userID int) (types.Template, error) {
	template.UpdatedAt = time.Now()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return types.Template{}, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if template.IsDefault {
		if err := clearDefaults(ctx, tx, userID, template.ID); err != nil {
			return types.Template{}, err
		}
	}

	const query = `
		UPDATE templates
		SET title = $1,
			data = $2,
			is_default = $3,
			updated_at = $4
		WHERE id = $5 AND user_id = $6`
	result, err := tx.ExecContext(
		ctx,
		query,
		template.Title,
		template.Data,
		template.IsDefault,
		template.UpdatedAt,
		template.ID,
		userID,
	)
	if err != nil {
		return types.Template{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.Template{}, err
	}
	if affected == 0 {
		return types.Template{}, ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return types.Template{}, err
	}

	return r.GetByID(ctx, template.ID, userID)
}

func (r *TemplateRepository) Delete(ctx context.Context, id, userID int) error {
	const query = `DELETE FROM templates WHERE id = $1 AND user_id = $2`
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

func clearDefaults(ctx context.Context, tx *sql.Tx, userID, keepID int) error {
	const query = `UPDATE templates SET is_default = FALSE WHERE user_id = $1 AND id <> $2`
	_, err := tx.ExecContext(ctx, query, userID, keepID)
	return err
}
