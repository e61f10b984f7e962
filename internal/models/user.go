package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User описывает учётную запись пользователя сервиса.
// Email хранится в нижнем регистре и служит логином.
type User struct {
	ID           uuid.UUID       `db:"id" json:"id"`
	Email        string          `db:"email" json:"email"`
	FirstName    string          `db:"first_name" json:"first_name"`
	LastName     string          `db:"last_name" json:"last_name"`
	Company      *string         `db:"company" json:"company,omitempty"`
	JobTitle     *string         `db:"job_title" json:"job_title,omitempty"`
	Department   *string         `db:"department" json:"department,omitempty"`
	PasswordHash string          `db:"password_hash" json:"-"`
	Preferences  json.RawMessage `db:"preferences" json:"preferences"`
	IsActive     bool            `db:"is_active" json:"is_active"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}

// FullName возвращает имя и фамилию одной строкой.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
