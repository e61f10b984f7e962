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

var ErrEntryNotFound = apperror.ErrEntryNotFound

// KnowledgeBaseRepository отвечает за таблицу knowledge_base.
type KnowledgeBaseRepository struct {
	db *sqlx.DB
}

func NewKnowledgeBaseRepository(db *sqlx.DB) *KnowledgeBaseRepository {
	return &KnowledgeBaseRepository{db: db}
}

func (r *KnowledgeBaseRepository) Create(ctx context.Context, e *models.KnowledgeBaseEntry) error {
	if err := r.db.QueryRowxContext(ctx, `
		INSERT INTO knowledge_base (title, content, embeddings, success_score, metadata)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, e.Title, e.Content, e.Embeddings, e.SuccessScore, e.Metadata).Scan(&e.ID, &e.CreatedAt); err != nil {
		return fmt.Errorf("knowledge base repository: create %w", err)
	}
	return nil
}

func (r *KnowledgeBaseRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.KnowledgeBaseEntry, error) {
	var e models.KnowledgeBaseEntry
	if err := r.db.GetContext(ctx, &e, `SELECT * FROM knowledge_base WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("knowledge base repository: get by id %w", err)
	}
	return &e, nil
}

func (r *KnowledgeBaseRepository) List(ctx context.Context, limit, offset int) ([]models.KnowledgeBaseEntry, error) {
	var entries []models.KnowledgeBaseEntry
	if err := r.db.SelectContext(ctx, &entries, `
		SELECT * FROM knowledge_base ORDER BY created_at DESC LIMIT $1 OFFSET $2
	`, limit, offset); err != nil {
		return nil, fmt.Errorf("knowledge base repository: list %w", err)
	}
	return entries, nil
}

func (r *KnowledgeBaseRepository) Update(ctx context.Context, e *models.KnowledgeBaseEntry) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE knowledge_base
		SET title = $2, content = $3, embeddings = $4, success_score = $5, metadata = $6
		WHERE id = $1
	`, e.ID, e.Title, e.Content, e.Embeddings, e.SuccessScore, e.Metadata)
	if err != nil {
		return fmt.Errorf("knowledge base repository: update %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrEntryNotFound
	}
	return nil
}

func (r *KnowledgeBaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM knowledge_base WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("knowledge base repository: delete %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrEntryNotFound
	}
	return nil
}
