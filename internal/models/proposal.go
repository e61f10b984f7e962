package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Proposal описывает коммерческое предложение для клиента.
type Proposal struct {
	ID             uuid.UUID       `db:"id" json:"id"`
	Title          string          `db:"title" json:"title"`
	ClientName     string          `db:"client_name" json:"client_name"`
	Requirements   json.RawMessage `db:"requirements" json:"requirements"`
	TemplateID     *uuid.UUID      `db:"template_id" json:"template_id,omitempty"`
	CreatedBy      uuid.UUID       `db:"created_by" json:"created_by"`
	WinProbability float64         `db:"win_probability" json:"win_probability"`
	Status         string          `db:"status" json:"status"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at" json:"updated_at"`
}

// Section описывает раздел предложения. Поле Order не уникально:
// разделы с одинаковым порядком допустимы.
type Section struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	ProposalID      uuid.UUID       `db:"proposal_id" json:"proposal_id"`
	Title           string          `db:"title" json:"title"`
	Content         string          `db:"content" json:"content"`
	AIMetadata      json.RawMessage `db:"ai_metadata" json:"ai_metadata"`
	ConfidenceScore float64         `db:"confidence_score" json:"confidence_score"`
	Order           int             `db:"sort_order" json:"order"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`
}

// Collaborator связывает пользователя с предложением.
// Пара (proposal_id, user_id) уникальна на уровне базы.
type Collaborator struct {
	ID         uuid.UUID `db:"id" json:"id"`
	ProposalID uuid.UUID `db:"proposal_id" json:"proposal_id"`
	UserID     uuid.UUID `db:"user_id" json:"user_id"`
	Permission string    `db:"permission" json:"permission"`
	AddedAt    time.Time `db:"added_at" json:"added_at"`
}
