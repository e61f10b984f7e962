package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/proposalgenie/backend/internal/models"
	"github.com/proposalgenie/backend/internal/service"
	"github.com/proposalgenie/backend/internal/validation"
)

// ErrorResponse стандартный ответ с ошибкой.
type ErrorResponse struct {
	Error string `json:"error"`
}

// UserResponse публичный профиль пользователя. Хеш пароля не сериализуется.
type UserResponse struct {
	ID          uuid.UUID       `json:"id"`
	Email       string          `json:"email"`
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	FullName    string          `json:"full_name"`
	Company     *string         `json:"company,omitempty"`
	JobTitle    *string         `json:"job_title,omitempty"`
	Department  *string         `json:"department,omitempty"`
	Preferences json.RawMessage `json:"preferences"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// NewUserResponse собирает публичный профиль из модели.
func NewUserResponse(user *models.User) *UserResponse {
	return &UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		FullName:    user.FullName(),
		Company:     user.Company,
		JobTitle:    user.JobTitle,
		Department:  user.Department,
		Preferences: user.Preferences,
		IsActive:    user.IsActive,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}

// RegisterData полезная нагрузка успешной регистрации.
type RegisterData struct {
	User   *UserResponse      `json:"user"`
	Tokens *service.TokenPair `json:"tokens"`
}

// RegisterResponse конверт ответа регистрации.
type RegisterResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Data    *RegisterData `json:"data,omitempty"`
}

// RegisterErrorResponse конверт ответа регистрации с ошибками полей.
type RegisterErrorResponse struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Errors  validation.FieldErrors `json:"errors,omitempty"`
}

// LoginResponse конверт ответа входа.
type LoginResponse struct {
	Token   *service.TokenPair `json:"token"`
	User    *UserResponse      `json:"user"`
	Message string             `json:"message"`
}

// ProfileResponse конверт ответа профиля.
type ProfileResponse struct {
	User *UserResponse `json:"user"`
}

// ProposalDetailResponse предложение вместе с разделами и соавторами.
type ProposalDetailResponse struct {
	*models.Proposal
	Sections      []models.Section      `json:"sections"`
	Collaborators []models.Collaborator `json:"collaborators"`
}
