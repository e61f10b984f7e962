package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/proposalgenie/backend/internal/models"
	"github.com/proposalgenie/backend/internal/pkg/apperror"
)

var (
	ErrProposalNotFound     = apperror.ErrProposalNotFound
	ErrSectionNotFound      = apperror.ErrSectionNotFound
	ErrCollaboratorNotFound = apperror.ErrCollaboratorNotFound
	ErrCollaboratorExists   = apperror.ErrCollaboratorExists
)

// ProposalRepository отвечает за таблицы proposals, sections и collaborators.
type ProposalRepository struct {
	db *sqlx.DB
}

// NewProposalRepository создаёт экземпляр репозитория.
func NewProposalRepository(db *sqlx.DB) *ProposalRepository {
	return &ProposalRepository{db: db}
}

// Create создаёт предложение.
func (r *ProposalRepository) Create(ctx context.Context, p *models.Proposal) error {
	query := `
		INSERT INTO proposals (title, client_name, requirements, template_id, created_by, win_probability, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	if err := r.db.QueryRowxContext(
		ctx, query,
		p.Title, p.ClientName, p.Requirements, p.TemplateID,
		p.CreatedBy, p.WinProbability, p.Status,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		// Шаблон или пользователь могли исчезнуть между проверкой и вставкой.
		if isForeignKeyViolation(err, "proposals_template_id_fkey") {
			return apperror.ErrTemplateNotFound
		}
		if isForeignKeyViolation(err, "proposals_created_by_fkey") {
			return apperror.ErrUserNotFound
		}
		return fmt.Errorf("proposal repository: create %w", err)
	}

	return nil
}

// GetByID возвращает предложение по идентификатору.
func (r *ProposalRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Proposal, error) {
	var p models.Proposal
	query := `SELECT * FROM proposals WHERE id = $1`
	if err := r.db.GetContext(ctx, &p, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProposalNotFound
		}
		return nil, fmt.Errorf("proposal repository: get by id %w", err)
	}

	return &p, nil
}

// List возвращает предложения, отсортированные по времени изменения.
func (r *ProposalRepository) List(ctx context.Context, limit, offset int) ([]models.Proposal, error) {
	var proposals []models.Proposal
	query := `SELECT * FROM proposals ORDER BY updated_at DESC LIMIT $1 OFFSET $2`
	if err := r.db.SelectContext(ctx, &proposals, query, limit, offset); err != nil {
		return nil, fmt.Errorf("proposal repository: list %w", err)
	}
	return proposals, nil
}

// Update выполняет полное обновление записи предложения.
func (r *ProposalRepository) Update(ctx context.Context, p *models.Proposal) error {
	query := `
		UPDATE proposals
		SET title = $2,
			client_name = $3,
			requirements = $4,
			template_id = $5,
			win_probability = $6,
			status = $7,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	if err := r.db.QueryRowxContext(
		ctx, query,
		p.ID, p.Title, p.ClientName, p.Requirements,
		p.TemplateID, p.WinProbability, p.Status,
	).Scan(&p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrProposalNotFound
		}
		return fmt.Errorf("proposal repository: update %w", err)
	}

	return nil
}

// Delete удаляет предложение. Разделы и соавторы удаляются каскадом
// на уровне базы.
func (r *ProposalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM proposals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("proposal repository: delete %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProposalNotFound
	}
	return nil
}

// CreateSection создаёт раздел предложения.
func (r *ProposalRepository) CreateSection(ctx context.Context, s *models.Section) error {
	query := `
		INSERT INTO sections (proposal_id, title, content, ai_metadata, confidence_score, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, updated_at
	`

	if err := r.db.QueryRowxContext(
		ctx, query,
		s.ProposalID, s.Title, s.Content, s.AIMetadata,
		s.ConfidenceScore, s.Order,
	).Scan(&s.ID, &s.UpdatedAt); err != nil {
		if isForeignKeyViolation(err, "sections_proposal_id_fkey") {
			return ErrProposalNotFound
		}
		return fmt.Errorf("proposal repository: create section %w", err)
	}

	return nil
}

// GetSectionByID возвращает раздел по идентификатору.
func (r *ProposalRepository) GetSectionByID(ctx context.Context, id uuid.UUID) (*models.Section, error) {
	var s models.Section
	query := `SELECT * FROM sections WHERE id = $1`
	if err := r.db.GetContext(ctx, &s, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSectionNotFound
		}
		return nil, fmt.Errorf("proposal repository: get section %w", err)
	}
	return &s, nil
}

// ListSections возвращает разделы предложения в порядке sort_order.
func (r *ProposalRepository) ListSections(ctx context.Context, proposalID uuid.UUID) ([]models.Section, error) {
	var sections []models.Section
	query := `SELECT * FROM sections WHERE proposal_id = $1 ORDER BY sort_order, updated_at`
	if err := r.db.SelectContext(ctx, &sections, query, proposalID); err != nil {
		return nil, fmt.Errorf("proposal repository: list sections %w", err)
	}
	return sections, nil
}

// UpdateSection выполняет полное обновление раздела.
func (r *ProposalRepository) UpdateSection(ctx context.Context, s *models.Section) error {
	query := `
		UPDATE sections
		SET title = $2,
			content = $3,
			ai_metadata = $4,
			confidence_score = $5,
			sort_order = $6,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	if err := r.db.QueryRowxContext(
		ctx, query,
		s.ID, s.Title, s.Content, s.AIMetadata,
		s.ConfidenceScore, s.Order,
	).Scan(&s.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrSectionNotFound
		}
		return fmt.Errorf("proposal repository: update section %w", err)
	}

	return nil
}

// DeleteSection удаляет раздел.
func (r *ProposalRepository) DeleteSection(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sections WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("proposal repository: delete section %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSectionNotFound
	}
	return nil
}

// AddCollaborator добавляет соавтора к предложению. Повторное добавление
// того же пользователя блокируется уникальным индексом.
func (r *ProposalRepository) AddCollaborator(ctx context.Context, c *models.Collaborator) error {
	query := `
		INSERT INTO collaborators (proposal_id, user_id, permission)
		VALUES ($1, $2, $3)
		RETURNING id, added_at
	`

	if err := r.db.QueryRowxContext(
		ctx, query,
		c.ProposalID, c.UserID, c.Permission,
	).Scan(&c.ID, &c.AddedAt); err != nil {
		if isUniqueViolation(err, "collaborators_proposal_id_user_id_key") {
			return ErrCollaboratorExists
		}
		if isForeignKeyViolation(err, "collaborators_user_id_fkey") {
			return apperror.ErrUserNotFound
		}
		if isForeignKeyViolation(err, "collaborators_proposal_id_fkey") {
			return ErrProposalNotFound
		}
		return fmt.Errorf("proposal repository: add collaborator %w", err)
	}

	return nil
}

// GetCollaboratorByID возвращает запись соавтора.
func (r *ProposalRepository) GetCollaboratorByID(ctx context.Context, id uuid.UUID) (*models.Collaborator, error) {
	var c models.Collaborator
	query := `SELECT * FROM collaborators WHERE id = $1`
	if err := r.db.GetContext(ctx, &c, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCollaboratorNotFound
		}
		return nil, fmt.Errorf("proposal repository: get collaborator %w", err)
	}
	return &c, nil
}

// ListCollaborators возвращает соавторов предложения.
func (r *ProposalRepository) ListCollaborators(ctx context.Context, proposalID uuid.UUID) ([]models.Collaborator, error) {
	var collaborators []models.Collaborator
	query := `SELECT * FROM collaborators WHERE proposal_id = $1 ORDER BY added_at`
	if err := r.db.SelectContext(ctx, &collaborators, query, proposalID); err != nil {
		return nil, fmt.Errorf("proposal repository: list collaborators %w", err)
	}
	return collaborators, nil
}

// UpdateCollaboratorPermission меняет уровень доступа соавтора.
func (r *ProposalRepository) UpdateCollaboratorPermission(ctx context.Context, id uuid.UUID, permission string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE collaborators SET permission = $2 WHERE id = $1`, id, permission)
	if err != nil {
		return fmt.Errorf("proposal repository: update collaborator %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCollaboratorNotFound
	}
	return nil
}

// RemoveCollaborator удаляет соавтора предложения.
func (r *ProposalRepository) RemoveCollaborator(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM collaborators WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("proposal repository: remove collaborator %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCollaboratorNotFound
	}
	return nil
}
