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

// ErrUserNotFound возвращается, когда запись пользователя не найдена.
var ErrUserNotFound = apperror.ErrUserNotFound

// ErrEmailTaken возвращается при попытке создать пользователя с занятым email.
// Сюда же транслируется гонка двух одновременных регистраций: вторая
// падает на уникальном индексе при коммите.
var ErrEmailTaken = apperror.New(apperror.ErrCodeConflict, "пользователь с таким email уже существует")

// UserRepository отвечает за работу с таблицей users.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository создаёт экземпляр репозитория.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create создаёт нового пользователя. Email должен быть приведён к нижнему
// регистру на уровне сервиса.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, first_name, last_name, company, job_title, department, password_hash, preferences, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE)
		RETURNING id, is_active, created_at, updated_at
	`

	if err := r.db.QueryRowxContext(
		ctx, query,
		user.Email, user.FirstName, user.LastName,
		user.Company, user.JobTitle, user.Department,
		user.PasswordHash, user.Preferences,
	).Scan(&user.ID, &user.IsActive, &user.CreatedAt, &user.UpdatedAt); err != nil {
		if isUniqueViolation(err, "users_email_key") {
			return ErrEmailTaken
		}
		return fmt.Errorf("user repository: create %w", err)
	}

	return nil
}

// GetByEmail возвращает пользователя по email без учёта регистра.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	query := `
		SELECT id, email, first_name, last_name, company, job_title, department, password_hash, preferences, is_active, created_at, updated_at
		FROM users
		WHERE email = LOWER($1)
	`
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("user repository: get by email %w", err)
	}

	return &user, nil
}

// GetByID возвращает пользователя по идентификатору.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	query := `
		SELECT id, email, first_name, last_name, company, job_title, department, password_hash, preferences, is_active, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("user repository: get by id %w", err)
	}

	return &user, nil
}

// ExistsByEmail проверяет занятость email без учёта регистра.
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE email = LOWER($1))`
	if err := r.db.GetContext(ctx, &exists, query, email); err != nil {
		return false, fmt.Errorf("user repository: exists by email %w", err)
	}
	return exists, nil
}

// UpdateProfile обновляет редактируемые поля профиля.
// Email и пароль через этот метод не меняются.
func (r *UserRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET first_name = $2,
			last_name = $3,
			company = $4,
			job_title = $5,
			department = $6,
			preferences = $7,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	if err := r.db.QueryRowxContext(
		ctx, query,
		user.ID, user.FirstName, user.LastName,
		user.Company, user.JobTitle, user.Department,
		user.Preferences,
	).Scan(&user.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		return fmt.Errorf("user repository: update profile %w", err)
	}

	return nil
}
