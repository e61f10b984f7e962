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

var ErrTemplateNotFound = apperror.ErrTemplateNotFound

// TemplateRepository отвечает за таблицу templates.
type TemplateRepository struct {
	db *sqlx.DB
}

func NewTemplateRepository(db *sqlx.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

func (r *TemplateRepository) Create(ctx context.Context, t *models.Template) error {
	if err := r.db.QueryRowxContext(ctx, `
		INSERT INTO templates (name, content)
		VALUES ($1, $2)
		RETURNING id, created_at
	`, t.Name, t.Content).Scan(&t.ID, &t.CreatedAt); err != nil {
		return fmt.Errorf("template repository: create %w", err)
	}
	return nil
}

func (r *TemplateRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Template, error) {
	var t models.Template
	if err := r.db.GetContext(ctx, &t, `SELECT * FROM templates WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("template repository: get by id %w", err)
	}
	return &t, nil
}

func (r *TemplateRepository) List(ctx context.Context, limit, offset int) ([]models.Template, error) {
	var templates []models.Template
	if err := r.db.SelectContext(ctx, &templates, `
		SELECT * FROM templates ORDER BY created_at DESC LIMIT $1 OFFSET $2
	`, limit, offset); err != nil {
		return nil, fmt.Errorf("template repository: list %w", err)
	}
	return templates, nil
}

func (r *TemplateRepository) Update(ctx context.Context, id uuid.UUID, name, content string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE templates SET name = $2, content = $3 WHERE id = $1
	`, id, name, content)
	if err != nil {
		return fmt.Errorf("template repository: update %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTemplateNotFound
	}
	return nil
}

// Delete удаляет шаблон. Ссылки из предложений обнуляются на уровне базы
// (ON DELETE SET NULL).
func (r *TemplateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("template repository: delete %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTemplateNotFound
	}
	return nil
}
