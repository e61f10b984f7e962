package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// KnowledgeBaseEntry хранит фрагмент базы знаний.
// Embeddings и Metadata — непрозрачные данные, сервис их не интерпретирует.
type KnowledgeBaseEntry struct {
	ID           uuid.UUID       `db:"id" json:"id"`
	Title        string          `db:"title" json:"title"`
	Content      string          `db:"content" json:"content"`
	Embeddings   []byte          `db:"embeddings" json:"embeddings,omitempty"`
	SuccessScore float64         `db:"success_score" json:"success_score"`
	Metadata     json.RawMessage `db:"metadata" json:"metadata"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
}
