package dto

import (
	"encoding/json"

	"github.com/google/uuid"
)

// RegisterRequest тело запроса регистрации. Поля намеренно без binding:
// все ошибки валидации накапливаются на уровне сервиса по полям.
type RegisterRequest struct {
	Email           string  `json:"email"`
	FirstName       string  `json:"first_name"`
	LastName        string  `json:"last_name"`
	Company         *string `json:"company"`
	JobTitle        *string `json:"job_title"`
	Department      *string `json:"department"`
	Password        string  `json:"password"`
	PasswordConfirm string  `json:"password_confirm"`
}

// LoginRequest тело запроса входа.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest тело запроса обновления токенов.
type RefreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

// UpdateProfileRequest тело запроса обновления профиля.
// Email и пароль через профиль не меняются.
type UpdateProfileRequest struct {
	FirstName   string          `json:"first_name" binding:"required"`
	LastName    string          `json:"last_name" binding:"required"`
	Company     *string         `json:"company"`
	JobTitle    *string         `json:"job_title"`
	Department  *string         `json:"department"`
	Preferences json.RawMessage `json:"preferences"`
}

// TemplateRequest тело запроса создания или обновления шаблона.
type TemplateRequest struct {
	Name    string `json:"name" binding:"required"`
	Content string `json:"content"`
}

// KnowledgeBaseRequest тело запроса создания или обновления записи базы знаний.
// Embeddings передаются как base64 (стандартная JSON сериализация []byte)
// и хранятся без интерпретации.
type KnowledgeBaseRequest struct {
	Title        string          `json:"title" binding:"required"`
	Content      string          `json:"content"`
	Embeddings   []byte          `json:"embeddings"`
	SuccessScore float64         `json:"success_score"`
	Metadata     json.RawMessage `json:"metadata"`
}

// CreateProposalRequest тело запроса создания предложения.
type CreateProposalRequest struct {
	Title        string          `json:"title" binding:"required"`
	ClientName   string          `json:"client_name" binding:"required"`
	Requirements json.RawMessage `json:"requirements"`
	TemplateID   *uuid.UUID      `json:"template_id"`
}

// UpdateProposalRequest тело запроса полного обновления предложения.
type UpdateProposalRequest struct {
	Title          string          `json:"title" binding:"required"`
	ClientName     string          `json:"client_name" binding:"required"`
	Requirements   json.RawMessage `json:"requirements"`
	TemplateID     *uuid.UUID      `json:"template_id"`
	WinProbability float64         `json:"win_probability"`
	Status         string          `json:"status" binding:"required"`
}

// SectionRequest тело запроса создания или обновления раздела.
type SectionRequest struct {
	Title           string          `json:"title" binding:"required"`
	Content         string          `json:"content"`
	AIMetadata      json.RawMessage `json:"ai_metadata"`
	ConfidenceScore float64         `json:"confidence_score"`
	Order           int             `json:"order"`
}

// AddCollaboratorRequest тело запроса добавления соавтора.
type AddCollaboratorRequest struct {
	UserID     uuid.UUID `json:"user_id" binding:"required"`
	Permission string    `json:"permission"`
}

// UpdateCollaboratorRequest тело запроса смены уровня доступа.
type UpdateCollaboratorRequest struct {
	Permission string `json:"permission" binding:"required"`
}
