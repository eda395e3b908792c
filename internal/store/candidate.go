package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Feaman/interview-server/types"
)

// CandidateRepository handles persistence for candidates. Every query
// includes the owning user id in its predicate, so a lookup with the
// wrong owner behaves exactly like a missing row.
type CandidateRepository struct {
	db *sql.DB
}

func NewCandidateRepository(db *sql.DB) *CandidateRepository {
	return &CandidateRepository{db: db}
}

func (r *CandidateRepository) List(ctx context.Context, userID int) ([]types.Candidate, error) {
	const query = `
		SELECT id, user_id, first_name, second_name, data, photo_path, created_at
		FROM candidates
		WHERE user_id = $1
		ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	candidates := make([]types.Candidate, 0)
	for rows.Next() {
		var candidate types.Candidate
		if err := rows.Scan(
			&candidate.ID,
			&candidate.UserID,
			&candidate.FirstName,
			&candidate.SecondName,
			&candidate.Data,
			&candidate.PhotoPath,
			&candidate.CreatedAt,
		); err != nil {
			return nil, err
		}
		candidates = append(candidates, candidate)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return candidates, nil
}

func (r *CandidateRepository) GetByID(ctx context.Context, id, userID int) (types.Candidate, error) {
	const query = `
		SELECT id, user_id, first_name, second_name, data, photo_path, created_at
		FROM candidates
		WHERE id = $1 AND user_id = $2`
	var candidate types.Candidate
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&candidate.ID,
		&candidate.UserID,
		&candidate.FirstName,
		&candidate.SecondName,
		&candidate.Data,
		&candidate.PhotoPath,
		&candidate.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Candidate{}, ErrNotFound
		}
		return types.Candidate{}, err
	}
	return candidate, nil
}

// Create inserts the candidate under userID and returns the freshly
// loaded row.
func (r *CandidateRepository) Create(ctx context.Context, candidate types.Candidate, userID int) (types.Candidate, error) {
	candidate.CreatedAt = time.Now()

	const query = `
		INSERT INTO candidates (user_id, first_name, second_name, data, photo_path, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		userID,
		candidate.FirstName,
		candidate.SecondName,
		candidate.Data,
		candidate.PhotoPath,
		candidate.CreatedAt,
	).Scan(&candidate.ID); err != nil {
		return types.Candidate{}, err
	}

	return r.GetByID(ctx, candidate.ID, userID)
}

// Update rewrites the mutable fields of the candidate row, scoped by
// owner, and returns the freshly loaded row.
func (r *CandidateRepository) Update(ctx context.Context, candidate types.Candidate, userID int) (types.Candidate, error) {
	const query = `
		UPDATE candidates
		SET first_name = $1,
			second_name = $2,
			data = $3,
			photo_path = $4
		WHERE id = $5 AND user_id = $6`
	result, err := r.db.ExecContext(
		ctx,
		query,
		candidate.FirstName,
		candidate.SecondName,
		candidate.Data,
		candidate.PhotoPath,
		candidate.ID,
		userID,
	)
	if err != nil {
		return types.Candidate{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.Candidate{}, err
	}
	if affected == 0 {
		return types.Candidate{}, ErrNotFound
	}

	return r.GetByID(ctx, candidate.ID, userID)
}

func (r *CandidateRepository) Delete(ctx context.Context, id, userID int) error {
	const query = `DELETE FROM candidates WHERE id = $1 AND user_id = $2`
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
