package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/proposalgenie/backend/internal/models"
	"github.com/proposalgenie/backend/internal/pkg/apperror"
)

// mockProposalRepository реализует ProposalRepository для тестов.
type mockProposalRepository struct {
	proposals     map[uuid.UUID]*models.Proposal
	sections      map[uuid.UUID]*models.Section
	collaborators map[uuid.UUID]*models.Collaborator
}

func newMockProposalRepository() *mockProposalRepository {
	return &mockProposalRepository{
		proposals:     make(map[uuid.UUID]*models.Proposal),
		sections:      make(map[uuid.UUID]*models.Section),
		collaborators: make(map[uuid.UUID]*models.Collaborator),
	}
}

func (m *mockProposalRepository) Create(ctx context.Context, p *models.Proposal) error {
	p.ID = uuid.New()
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	m.proposals[p.ID] = p
	return nil
}

func (m *mockProposalRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Proposal, error) {
	if p, ok := m.proposals[id]; ok {
		return p, nil
	}
	return nil, apperror.ErrProposalNotFound
}

func (m *mockProposalRepository) List(ctx context.Context, limit, offset int) ([]models.Proposal, error) {
	var result []models.Proposal
	for _, p := range m.proposals {
		result = append(result, *p)
	}
	return result, nil
}

func (m *mockProposalRepository) Update(ctx context.Context, p *models.Proposal) error {
	if _, ok := m.proposals[p.ID]; !ok {
		return apperror.ErrProposalNotFound
	}
	p.UpdatedAt = time.Now()
	m.proposals[p.ID] = p
	return nil
}

func (m *mockProposalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.proposals[id]; !ok {
		return apperror.ErrProposalNotFound
	}
	delete(m.proposals, id)
	for sid, s := range m.sections {
		if s.ProposalID == id {
			delete(m.sections, sid)
		}
	}
	for cid, c := range m.collaborators {
		if c.ProposalID == id {
			delete(m.collaborators, cid)
		}
	}
	return nil
}

func (m *mockProposalRepository) CreateSection(ctx context.Context, s *models.Section) error {
	s.ID = uuid.New()
	s.UpdatedAt = time.Now()
	m.sections[s.ID] = s
	return nil
}

func (m *mockProposalRepository) GetSectionByID(ctx context.Context, id uuid.UUID) (*models.Section, error) {
	if s, ok := m.sections[id]; ok {
		return s, nil
	}
	return nil, apperror.ErrSectionNotFound
}

func (m *mockProposalRepository) ListSections(ctx context.Context, proposalID uuid.UUID) ([]models.Section, error) {
	var result []models.Section
	for _, s := range m.sections {
		if s.ProposalID == proposalID {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockProposalRepository) UpdateSection(ctx context.Context, s *models.Section) error {
	if _, ok := m.sections[s.ID]; !ok {
		return apperror.ErrSectionNotFound
	}
	s.UpdatedAt = time.Now()
	m.sections[s.ID] = s
	return nil
}

func (m *mockProposalRepository) DeleteSection(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.sections[id]; !ok {
		return apperror.ErrSectionNotFound
	}
	delete(m.sections, id)
	return nil
}

func (m *mockProposalRepository) AddCollaborator(ctx context.Context, c *models.Collaborator) error {
	for _, existing := range m.collaborators {
		if existing.ProposalID == c.ProposalID && existing.UserID == c.UserID {
			return apperror.ErrCollaboratorExists
		}
	}
	c.ID = uuid.New()
	c.AddedAt = time.Now()
	m.collaborators[c.ID] = c
	return nil
}

func (m *mockProposalRepository) GetCollaboratorByID(ctx context.Context, id uuid.UUID) (*models.Collaborator, error) {
	if c, ok := m.collaborators[id]; ok {
		return c, nil
	}
	return nil, apperror.ErrCollaboratorNotFound
}

func (m *mockProposalRepository) ListCollaborators(ctx context.Context, proposalID uuid.UUID) ([]models.Collaborator, error) {
	var result []models.Collaborator
	for _, c := range m.collaborators {
		if c.ProposalID == proposalID {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (m *mockProposalRepository) UpdateCollaboratorPermission(ctx context.Context, id uuid.UUID, permission string) error {
	c, ok := m.collaborators[id]
	if !ok {
		return apperror.ErrCollaboratorNotFound
	}
	c.Permission = permission
	return nil
}

func (m *mockProposalRepository) RemoveCollaborator(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.collaborators[id]; !ok {
		return apperror.ErrCollaboratorNotFound
	}
	delete(m.collaborators, id)
	return nil
}

func mustCreateProposal(t *testing.T, service *ProposalService, userID uuid.UUID) *models.Proposal {
	t.Helper()
	p, err := service.Create(context.Background(), userID, CreateProposalInput{
		Title:      "Внедрение CRM",
		ClientName: "ООО Ромашка",
	})
	if err != nil {
		t.Fatalf("create вернул ошибку: %v", err)
	}
	return p
}

func TestProposalService_Create(t *testing.T) {
	repo := newMockProposalRepository()
	service := NewProposalService(repo)
	userID := uuid.New()

	p := mustCreateProposal(t, service, userID)

	if p.Status != models.ProposalStatusDraft {
		t.Fatalf("новое предложение должно иметь статус draft, получили %q", p.Status)
	}
	if p.CreatedBy != userID {
		t.Fatalf("владельцем должен быть текущий пользователь")
	}
	if string(p.Requirements) != "{}" {
		t.Fatalf("requirements по умолчанию должны быть {}, получили %q", p.Requirements)
	}
}

func TestProposalService_Create_EmptyTitle(t *testing.T) {
	repo := newMockProposalRepository()
	service := NewProposalService(repo)

	_, err := service.Create(context.Background(), uuid.New(), CreateProposalInput{
		Title:      "   ",
		ClientName: "ООО Ромашка",
	})
	if !apperror.IsValidation(err) {
		t.Fatalf("пустой заголовок должен дать ошибку валидации, получили %v", err)
	}
}

func TestProposalService_Update_InvalidStatus(t *testing.T) {
	repo := newMockProposalRepository()
	service := NewProposalService(repo)
	p := mustCreateProposal(t, service, uuid.New())

	_, err := service.Update(context.Background(), p.ID, UpdateProposalInput{
		Title:      "Внедрение CRM",
		ClientName: "ООО Ромашка",
		Status:     "archived",
	})
	if !apperror.IsValidation(err) {
		t.Fatalf("неизвестный статус должен дать ошибку валидации, получили %v", err)
	}
}

func TestProposalService_Update(t *testing.T) {
	repo := newMockProposalRepository()
	service := NewProposalService(repo)
	p := mustCreateProposal(t, service, uuid.New())

	updated, err := service.Update(context.Background(), p.ID, UpdateProposalInput{
		Title:          "Внедрение CRM, фаза 2",
		ClientName:     "ООО Ромашка",
		WinProbability: 0.75,
		Status:         models.ProposalStatusWon,
	})
	if err != nil {
		t.Fatalf("update вернул ошибку: %v", err)
	}
	if updated.Status != models.ProposalStatusWon {
		t.Fatalf("статус должен обновиться, получили %q", updated.Status)
	}
	if updated.WinProbability != 0.75 {
		t.Fatalf("win_probability должна обновиться, получили %v", updated.WinProbability)
	}
}

func TestProposalService_Delete_Cascades(t *testing.T) {
	repo := newMockProposalRepository()
	service := NewProposalService(repo)
	p := mustCreateProposal(t, service, uuid.New())

	ctx := context.Background()
	if _, err := service.CreateSection(ctx, p.ID, SectionInput{Title: "Резюме"}); err != nil {
		t.Fatalf("create section вернул ошибку: %v", err)
	}
	if _, err := service.AddCollaborator(ctx, p.ID, uuid.New(), ""); err != nil {
		t.Fatalf("add collaborator вернул ошибку: %v", err)
	}

	if err := service.Delete(ctx, p.ID); err != nil {
		t.Fatalf("delete вернул ошибку: %v", err)
	}
	if len(repo.sections) != 0 || len(repo.collaborators) != 0 {
		t.Fatalf("разделы и соавторы должны удаляться вместе с предложением")
	}
}

func TestProposalService_CreateSection_ProposalNotFound(t *testing.T) {
	repo := newMockProposalRepository()
	service := NewProposalService(repo)

	_, err := service.CreateSection(context.Background(), uuid.New(), SectionInput{Title: "Резюме"})
	if !errors.Is(err, apperror.ErrProposalNotFound) {
		t.Fatalf("ожидали ErrProposalNotFound, получили %v", err)
	}
}

func TestProposalService_CreateSection(t *testing.T) {
	repo := newMockProposalRepository()
	service := NewProposalService(repo)
	p := mustCreateProposal(t, service, uuid.New())

	section, err := service.CreateSection(context.Background(), p.ID, SectionInput{
		Title:           "Резюме",
		Content:         "Краткое описание проекта",
		ConfidenceScore: 0.9,
		Order:           3,
	})
	if err != nil {
		t.Fatalf("create section вернул ошибку: %v", err)
	}
	if section.ProposalID != p.ID {
		t.Fatalf("раздел должен принадлежать предложению")
	}
	if string(section.AIMetadata) != "{}" {
		t.Fatalf("ai_metadata по умолчанию должна быть {}, получили %q", section.AIMetadata)
	}
	if section.Order != 3 {
		t.Fatalf("порядок должен сохраниться, получили %d", section.Order)
	}
}

func TestProposalService_AddCollaborator_DefaultPermission(t *testing.T) {
	repo := newMockProposalRepository()
	service := NewProposalService(repo)
	p := mustCreateProposal(t, service, uuid.New())

	collaborator, err := service.AddCollaborator(context.Background(), p.ID, uuid.New(), "")
	if err != nil {
		t.Fatalf("add collaborator вернул ошибку: %v", err)
	}
	if collaborator.Permission != models.PermissionView {
		t.Fatalf("уровень доступа по умолчанию должен быть view, получили %q", collaborator.Permission)
	}
}

func TestProposalService_AddCollaborator_InvalidPermission(t *testing.T) {
	repo := newMockProposalRepository()
	service := NewProposalService(repo)
	p := mustCreateProposal(t, service, uuid.New())

	_, err := service.AddCollaborator(context.Background(), p.ID, uuid.New(), "owner")
	if !apperror.IsValidation(err) {
		t.Fatalf("неизвестный уровень доступа должен дать ошибку валидации, получили %v", err)
	}
}

func TestProposalService_AddCollaborator_Duplicate(t *testing.T) {
	repo := newMockProposalRepository()
	service := NewProposalService(repo)
	p := mustCreateProposal(t, service, uuid.New())

	ctx := context.Background()
	userID := uuid.New()
	if _, err := service.AddCollaborator(ctx, p.ID, userID, models.PermissionEdit); err != nil {
		t.Fatalf("add collaborator вернул ошибку: %v", err)
	}

	_, err := service.AddCollaborator(ctx, p.ID, userID, models.PermissionView)
	if !errors.Is(err, apperror.ErrCollaboratorExists) {
		t.Fatalf("повторное добавление должно вернуть ErrCollaboratorExists, получили %v", err)
	}
	if len(repo.collaborators) != 1 {
		t.Fatalf("вторая запись не должна быть создана, записей: %d", len(repo.collaborators))
	}
}

func TestProposalService_UpdateCollaboratorPermission(t *testing.T) {
	repo := newMockProposalRepository()
	service := NewProposalService(repo)
	p := mustCreateProposal(t, service, uuid.New())

	ctx := context.Background()
	collaborator, err := service.AddCollaborator(ctx, p.ID, uuid.New(), models.PermissionView)
	if err != nil {
		t.Fatalf("add collaborator вернул ошибку: %v", err)
	}

	updated, err := service.UpdateCollaboratorPermission(ctx, collaborator.ID, models.PermissionAdmin)
	if err != nil {
		t.Fatalf("update permission вернул ошибку: %v", err)
	}
	if updated.Permission != models.PermissionAdmin {
		t.Fatalf("уровень доступа должен обновиться, получили %q", updated.Permission)
	}
}
