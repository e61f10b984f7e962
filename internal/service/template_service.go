package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/proposalgenie/backend/internal/models"
	"github.com/proposalgenie/backend/internal/pkg/apperror"
	"github.com/proposalgenie/backend/internal/repository"
	"github.com/proposalgenie/backend/internal/validation"
)

// TemplateService реализует CRUD над шаблонами предложений.
type TemplateService struct {
	repo *repository.TemplateRepository
}

func NewTemplateService(r *repository.TemplateRepository) *TemplateService {
	return &TemplateService{repo: r}
}

func (s *TemplateService) Create(ctx context.Context, name, content string) (*models.Template, error) {
	if err := validation.ValidateTemplateName(name); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}

	t := &models.Template{Name: name, Content: content}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TemplateService) Get(ctx context.Context, id uuid.UUID) (*models.Template, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *TemplateService) List(ctx context.Context, limit, offset int) ([]models.Template, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *TemplateService) Update(ctx context.Context, id uuid.UUID, name, content string) (*models.Template, error) {
	if err := validation.ValidateTemplateName(name); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}

	if err := s.repo.Update(ctx, id, name, content); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *TemplateService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
