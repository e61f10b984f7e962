package models

import (
	"time"

	"github.com/google/uuid"
)

// Template описывает переиспользуемый шаблон предложения.
type Template struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
