package services

import (
	"context"

	"github.com/Feaman/interview-server/internal/validate"
	"github.com/Feaman/interview-server/types"
)

// TemplateRepository defines persistence operations for templates.
// All operations are scoped by the owning user id. Writes that set
// IsDefault clear every other default for that owner atomically.
type TemplateRepository interface {
	List(ctx context.Context, userID int) ([]types.Template, error)
	GetByID(ctx context.Context, id, userID int) (types.Template, error)
	Create(ctx context.Context, template types.Template, userID int) (types.Template, error)
	Update(ctx context.Context, template types.Template, userID int) (types.Template, error)
	Delete(ctx context.Context, id, userID int) error
}

// TemplateService encapsulates template use-cases.
type TemplateService struct {
	repo TemplateRepository
}

func NewTemplateService(repo TemplateRepository) *TemplateService {
	return &TemplateService{repo: repo}
}

// List returns the owner's templates, newest first.
func (s *TemplateService) List(ctx context.Context, userID int) ([]types.Template, error) {
	return s.repo.List(ctx, userID)
}

// GetByID loads one template scoped by owner.
func (s *TemplateService) GetByID(ctx context.Context, id, userID int) (types.Template, error) {
	return s.repo.GetByID(ctx, id, userID)
}

// Create validates and inserts a template under the owner.
func (s *TemplateService) Create(ctx context.Context, template types.Template, userID int) (types.Template, error) {
	if err := validate.Struct("template", template); err != nil {
		return types.Template{}, err
	}
	return s.repo.Create(ctx, template, userID)
}

// Update rewrites the mutable fields of an existing template. The
// single-default invariant is enforced by the repository transaction.
func (s *TemplateService) Update(ctx context.Context, id int, incoming types.Template, userID int) (types.Template, error) {
	template, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return types.Template{}, err
	}

	template.Title = incoming.Title
	template.Data = incoming.Data
	template.IsDefault = incoming.IsDefault

	if err := validate.Struct("template", template); err != nil {
		return types.Template{}, err
	}
	return s.repo.Update(ctx, template, userID)
}

// Remove deletes a template scoped by owner and returns the removed record.
func (s *TemplateService) Remove(ctx context.Context, id, userID int) (types.Template, error) {
	template, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return types.Template{}, err
	}

	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return types.Template{}, err
	}
	return template, nil
}
