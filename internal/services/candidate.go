package services

import (
	"context"
	"log/slog"

	"github.com/Feaman/interview-server/internal/validate"
	"github.com/Feaman/interview-server/types"
)

// CandidateRepository defines persistence operations for candidates.
// All operations are scoped by the owning user id.
type CandidateRepository interface {
	List(ctx context.Context, userID int) ([]types.Candidate, error)
	GetByID(ctx context.Context, id, userID int) (types.Candidate, error)
	Create(ctx context.Context, candidate types.Candidate, userID int) (types.Candidate, error)
	Update(ctx context.Context, candidate types.Candidate, userID int) (types.Candidate, error)
	Delete(ctx context.Context, id, userID int) error
}

// CandidateService encapsulates candidate use-cases.
type CandidateService struct {
	repo    CandidateRepository
	storage ObjectDeleter
	logger  *slog.Logger
}

func NewCandidateService(repo CandidateRepository, storage ObjectDeleter, logger *slog.Logger) *CandidateService {
	return &CandidateService{repo: repo, storage: storage, logger: logger}
}

// List returns the owner's candidates, newest first.
func (s *CandidateService) List(ctx context.Context, userID int) ([]types.Candidate, error) {
	return s.repo.List(ctx, userID)
}

// GetByID loads one candidate scoped by owner.
func (s *CandidateService) GetByID(ctx context.Context, id, userID int) (types.Candidate, error) {
	return s.repo.GetByID(ctx, id, userID)
}

// Create validates and inserts a candidate under the owner.
func (s *CandidateService) Create(ctx context.Context, candidate types.Candidate, userID int) (types.Candidate, error) {
	if err := validate.Struct("candidate", candidate); err != nil {
		return types.Candidate{}, err
	}
	return s.repo.Create(ctx, candidate, userID)
}

// Update rewrites the mutable fields of an existing candidate. When a
// new photo is supplied and an old one existed, the old photo is removed
// best-effort; an empty incoming photo path retains the old one.
func (s *CandidateService) Update(ctx context.Context, id int, incoming types.Candidate, userID int) (types.Candidate, error) {
	candidate, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return types.Candidate{}, err
	}

	if incoming.PhotoPath != "" && candidate.PhotoPath != "" {
		deleteObject(ctx, s.storage, s.logger, candidate.PhotoPath)
	}

	candidate.FirstName = incoming.FirstName
	candidate.SecondName = incoming.SecondName
	candidate.Data = incoming.Data
	if incoming.PhotoPath != "" {
		candidate.PhotoPath = incoming.PhotoPath
	}

	if err := validate.Struct("candidate", candidate); err != nil {
		return types.Candidate{}, err
	}
	return s.repo.Update(ctx, candidate, userID)
}

// Remove deletes a candidate scoped by owner and returns the removed
// record. The candidate's photo, when present, is removed best-effort
// after the row deletion.
func (s *CandidateService) Remove(ctx context.Context, id, userID int) (types.Candidate, error) {
	candidate, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return types.Candidate{}, err
	}

	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return types.Candidate{}, err
	}

	deleteObject(ctx, s.storage, s.logger, candidate.PhotoPath)
	return candidate, nil
}
