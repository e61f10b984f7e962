package service

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/proposalgenie/backend/internal/models"
	"github.com/proposalgenie/backend/internal/pkg/apperror"
	"github.com/proposalgenie/backend/internal/validation"
)

// emptyObject дефолт для непрозрачных JSON полей.
var emptyObject = json.RawMessage(`{}`)

// ProposalRepository описывает зависимости ProposalService от слоя хранилища.
type ProposalRepository interface {
	Create(ctx context.Context, p *models.Proposal) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Proposal, error)
	List(ctx context.Context, limit, offset int) ([]models.Proposal, error)
	Update(ctx context.Context, p *models.Proposal) error
	Delete(ctx context.Context, id uuid.UUID) error

	CreateSection(ctx context.Context, s *models.Section) error
	GetSectionByID(ctx context.Context, id uuid.UUID) (*models.Section, error)
	ListSections(ctx context.Context, proposalID uuid.UUID) ([]models.Section, error)
	UpdateSection(ctx context.Context, s *models.Section) error
	DeleteSection(ctx context.Context, id uuid.UUID) error

	AddCollaborator(ctx context.Context, c *models.Collaborator) error
	GetCollaboratorByID(ctx context.Context, id uuid.UUID) (*models.Collaborator, error)
	ListCollaborators(ctx context.Context, proposalID uuid.UUID) ([]models.Collaborator, error)
	UpdateCollaboratorPermission(ctx context.Context, id uuid.UUID, permission string) error
	RemoveCollaborator(ctx context.Context, id uuid.UUID) error
}

// ProposalService реализует CRUD над предложениями, разделами и соавторами.
// Бизнес-правил поверх реляционных инвариантов нет: статус не проходит
// через машину состояний, уровни доступа соавторов хранятся, но не
// интерпретируются, win_probability не ограничивается диапазоном.
type ProposalService struct {
	repo ProposalRepository
}

// CreateProposalInput данные для создания предложения.
type CreateProposalInput struct {
	Title        string
	ClientName   string
	Requirements json.RawMessage
	TemplateID   *uuid.UUID
}

// UpdateProposalInput данные полного обновления предложения.
type UpdateProposalInput struct {
	Title          string
	ClientName     string
	Requirements   json.RawMessage
	TemplateID     *uuid.UUID
	WinProbability float64
	Status         string
}

// SectionInput данные раздела.
type SectionInput struct {
	Title           string
	Content         string
	AIMetadata      json.RawMessage
	ConfidenceScore float64
	Order           int
}

// NewProposalService создаёт сервис предложений.
func NewProposalService(repo ProposalRepository) *ProposalService {
	return &ProposalService{repo: repo}
}

// Create создаёт предложение. Владелец — текущий пользователь, статус
// всегда draft.
func (s *ProposalService) Create(ctx context.Context, userID uuid.UUID, in CreateProposalInput) (*models.Proposal, error) {
	if err := validation.ValidateProposalTitle(in.Title); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateClientName(in.ClientName); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}

	p := &models.Proposal{
		Title:        in.Title,
		ClientName:   in.ClientName,
		Requirements: orEmptyObject(in.Requirements),
		TemplateID:   in.TemplateID,
		CreatedBy:    userID,
		Status:       models.ProposalStatusDraft,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

// Get возвращает предложение по идентификатору.
func (s *ProposalService) Get(ctx context.Context, id uuid.UUID) (*models.Proposal, error) {
	return s.repo.GetByID(ctx, id)
}

// List возвращает страницу предложений.
func (s *ProposalService) List(ctx context.Context, limit, offset int) ([]models.Proposal, error) {
	return s.repo.List(ctx, limit, offset)
}

// Update полностью обновляет запись предложения.
func (s *ProposalService) Update(ctx context.Context, id uuid.UUID, in UpdateProposalInput) (*models.Proposal, error) {
	if err := validation.ValidateProposalTitle(in.Title); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateClientName(in.ClientName); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if _, ok := models.ValidProposalStatuses[in.Status]; !ok {
		return nil, apperror.New(apperror.ErrCodeValidation, "статус должен быть одним из: draft, in_progress, completed, won, lost")
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	p.Title = in.Title
	p.ClientName = in.ClientName
	p.Requirements = orEmptyObject(in.Requirements)
	p.TemplateID = in.TemplateID
	p.WinProbability = in.WinProbability
	p.Status = in.Status

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

// Delete удаляет предложение вместе с разделами и соавторами.
func (s *ProposalService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// CreateSection добавляет раздел к предложению.
func (s *ProposalService) CreateSection(ctx context.Context, proposalID uuid.UUID, in SectionInput) (*models.Section, error) {
	if err := validation.ValidateSectionTitle(in.Title); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}

	// Существование предложения проверяем явно, чтобы вернуть 404,
	// а не ошибку внешнего ключа.
	if _, err := s.repo.GetByID(ctx, proposalID); err != nil {
		return nil, err
	}

	section := &models.Section{
		ProposalID:      proposalID,
		Title:           in.Title,
		Content:         in.Content,
		AIMetadata:      orEmptyObject(in.AIMetadata),
		ConfidenceScore: in.ConfidenceScore,
		Order:           in.Order,
	}

	if err := s.repo.CreateSection(ctx, section); err != nil {
		return nil, err
	}

	return section, nil
}

// ListSections возвращает разделы предложения.
func (s *ProposalService) ListSections(ctx context.Context, proposalID uuid.UUID) ([]models.Section, error) {
	if _, err := s.repo.GetByID(ctx, proposalID); err != nil {
		return nil, err
	}
	return s.repo.ListSections(ctx, proposalID)
}

// UpdateSection полностью обновляет раздел.
func (s *ProposalService) UpdateSection(ctx context.Context, id uuid.UUID, in SectionInput) (*models.Section, error) {
	if err := validation.ValidateSectionTitle(in.Title); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}

	section, err := s.repo.GetSectionByID(ctx, id)
	if err != nil {
		return nil, err
	}

	section.Title = in.Title
	section.Content = in.Content
	section.AIMetadata = orEmptyObject(in.AIMetadata)
	section.ConfidenceScore = in.ConfidenceScore
	section.Order = in.Order

	if err := s.repo.UpdateSection(ctx, section); err != nil {
		return nil, err
	}

	return section, nil
}

// DeleteSection удаляет раздел.
func (s *ProposalService) DeleteSection(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteSection(ctx, id)
}

// AddCollaborator добавляет пользователя как соавтора предложения.
func (s *ProposalService) AddCollaborator(ctx context.Context, proposalID, userID uuid.UUID, permission string) (*models.Collaborator, error) {
	if permission == "" {
		permission = models.PermissionView
	}
	if _, ok := models.ValidPermissions[permission]; !ok {
		return nil, apperror.New(apperror.ErrCodeValidation, "уровень доступа должен быть одним из: view, edit, admin")
	}

	if _, err := s.repo.GetByID(ctx, proposalID); err != nil {
		return nil, err
	}

	collaborator := &models.Collaborator{
		ProposalID: proposalID,
		UserID:     userID,
		Permission: permission,
	}

	if err := s.repo.AddCollaborator(ctx, collaborator); err != nil {
		return nil, err
	}

	return collaborator, nil
}

// ListCollaborators возвращает соавторов предложения.
func (s *ProposalService) ListCollaborators(ctx context.Context, proposalID uuid.UUID) ([]models.Collaborator, error) {
	if _, err := s.repo.GetByID(ctx, proposalID); err != nil {
		return nil, err
	}
	return s.repo.ListCollaborators(ctx, proposalID)
}

// UpdateCollaboratorPermission меняет уровень доступа соавтора.
func (s *ProposalService) UpdateCollaboratorPermission(ctx context.Context, id uuid.UUID, permission string) (*models.Collaborator, error) {
	if _, ok := models.ValidPermissions[permission]; !ok {
		return nil, apperror.New(apperror.ErrCodeValidation, "уровень доступа должен быть одним из: view, edit, admin")
	}

	if err := s.repo.UpdateCollaboratorPermission(ctx, id, permission); err != nil {
		return nil, err
	}

	return s.repo.GetCollaboratorByID(ctx, id)
}

// RemoveCollaborator удаляет соавтора предложения.
func (s *ProposalService) RemoveCollaborator(ctx context.Context, id uuid.UUID) error {
	return s.repo.RemoveCollaborator(ctx, id)
}

// orEmptyObject возвращает '{}' вместо nil для непрозрачных JSON полей.
func orEmptyObject(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		return emptyObject
	}
	return raw
}
