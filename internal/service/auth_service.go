package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/google/uuid"

	"github.com/proposalgenie/backend/internal/models"
	"github.com/proposalgenie/backend/internal/pkg/apperror"
	"github.com/proposalgenie/backend/internal/repository"
	"github.com/proposalgenie/backend/internal/validation"
)

// emptyPreferences значение preferences для нового пользователя.
var emptyPreferences = json.RawMessage(`{}`)

// AuthRepository описывает зависимости AuthService от слоя хранилища.
type AuthRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// AuthService инкапсулирует бизнес-логику регистрации и аутентификации.
type AuthService struct {
	repo         AuthRepository
	tokenManager *TokenManager
}

// RegisterInput содержит данные пользователя при регистрации.
type RegisterInput struct {
	Email           string
	FirstName       string
	LastName        string
	Company         *string
	JobTitle        *string
	Department      *string
	Password        string
	PasswordConfirm string
}

// LoginInput содержит данные для входа.
type LoginInput struct {
	Email    string
	Password string
}

// AuthResult возвращает итог регистрации или авторизации.
type AuthResult struct {
	User      *models.User
	TokenPair *TokenPair
}

// NewAuthService создаёт сервис аутентификации.
func NewAuthService(repo AuthRepository, tokenManager *TokenManager) *AuthService {
	return &AuthService{
		repo:         repo,
		tokenManager: tokenManager,
	}
}

// Register проверяет входные данные, создаёт пользователя и выпускает токены.
// Все ошибки валидации накапливаются по полям и возвращаются одним
// validation.FieldErrors; письмо с подтверждением не отправляется,
// пользователь активен сразу.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	fieldErrs := validation.FieldErrors{}

	email := validation.NormalizeEmail(in.Email)
	if err := validation.ValidateEmail(email); err != nil {
		fieldErrs.Add("email", err.Error())
	} else {
		exists, err := s.repo.ExistsByEmail(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("auth service: проверка email: %w", err)
		}
		if exists {
			fieldErrs.Add("email", "пользователь с таким email уже существует")
		}
	}

	if err := validation.ValidatePersonName("имя", in.FirstName); err != nil {
		fieldErrs.Add("first_name", err.Error())
	}
	if err := validation.ValidatePersonName("фамилия", in.LastName); err != nil {
		fieldErrs.Add("last_name", err.Error())
	}
	if err := validation.ValidateOptionalField("компания", in.Company, validation.MaxCompanyLength); err != nil {
		fieldErrs.Add("company", err.Error())
	}
	if err := validation.ValidateOptionalField("должность", in.JobTitle, validation.MaxCompanyLength); err != nil {
		fieldErrs.Add("job_title", err.Error())
	}
	if err := validation.ValidateOptionalField("отдел", in.Department, validation.MaxCompanyLength); err != nil {
		fieldErrs.Add("department", err.Error())
	}

	for _, msg := range validation.PasswordErrors(in.Password, email, in.FirstName, in.LastName) {
		fieldErrs.Add("password", msg)
	}

	if in.Password != in.PasswordConfirm {
		fieldErrs.Add("password_confirm", "подтверждение пароля не совпадает с паролем")
	}

	if !fieldErrs.Empty() {
		return nil, fieldErrs
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("auth service: не удалось захешировать пароль: %w", err)
	}

	user := &models.User{
		Email:        email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Company:      in.Company,
		JobTitle:     in.JobTitle,
		Department:   in.Department,
		PasswordHash: string(passHash),
		Preferences:  emptyPreferences,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		// Гонка двух регистраций: вторая упирается в уникальный индекс
		// и возвращается как ошибка поля, а не как 500.
		if errors.Is(err, repository.ErrEmailTaken) {
			fieldErrs.Add("email", "пользователь с таким email уже существует")
			return nil, fieldErrs
		}
		return nil, err
	}

	tokenPair, err := s.tokenManager.GeneratePair(user)
	if err != nil {
		return nil, fmt.Errorf("auth service: выпуск токенов: %w", err)
	}

	return &AuthResult{User: user, TokenPair: tokenPair}, nil
}

// Login проверяет учётные данные и возвращает свежую пару токенов.
// Ответ не различает неверный пароль, несуществующий email и
// неактивный аккаунт.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	user, err := s.repo.GetByEmail(ctx, validation.NormalizeEmail(in.Email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperror.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, apperror.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, apperror.ErrInvalidCredentials
	}

	tokenPair, err := s.tokenManager.GeneratePair(user)
	if err != nil {
		return nil, fmt.Errorf("auth service: выпуск токенов: %w", err)
	}

	return &AuthResult{User: user, TokenPair: tokenPair}, nil
}

// Refresh выпускает новую пару токенов по refresh токену.
// Списка отзыва нет: старый refresh остаётся валиден до истечения срока.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.tokenManager.ParseRefresh(refreshToken)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeUnauthorized, "refresh токен невалиден")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeUnauthorized, "refresh токен невалиден")
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !user.IsActive {
		return nil, apperror.ErrInvalidCredentials
	}

	tokenPair, err := s.tokenManager.GeneratePair(user)
	if err != nil {
		return nil, fmt.Errorf("auth service: выпуск токенов: %w", err)
	}

	return tokenPair, nil
}
