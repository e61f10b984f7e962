package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/proposalgenie/backend/internal/models"
	"github.com/proposalgenie/backend/internal/pkg/apperror"
	"github.com/proposalgenie/backend/internal/repository"
	"github.com/proposalgenie/backend/internal/validation"
)

// mockAuthRepository реализует AuthRepository для тестов.
type mockAuthRepository struct {
	usersByEmail map[string]*models.User
	usersByID    map[uuid.UUID]*models.User
}

func newMockAuthRepository() *mockAuthRepository {
	return &mockAuthRepository{
		usersByEmail: make(map[string]*models.User),
		usersByID:    make(map[uuid.UUID]*models.User),
	}
}

func (m *mockAuthRepository) Create(ctx context.Context, user *models.User) error {
	if _, ok := m.usersByEmail[user.Email]; ok {
		return repository.ErrEmailTaken
	}
	user.ID = uuid.New()
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	user.IsActive = true
	m.usersByEmail[user.Email] = user
	m.usersByID[user.ID] = user
	return nil
}

func (m *mockAuthRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if user, ok := m.usersByEmail[email]; ok {
		return user, nil
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockAuthRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if user, ok := m.usersByID[id]; ok {
		return user, nil
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockAuthRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, ok := m.usersByEmail[email]
	return ok, nil
}

func newTestAuthService(repo AuthRepository) *AuthService {
	tokenManager := NewTokenManager("access-secret", "refresh-secret", time.Minute, time.Hour)
	return NewAuthService(repo, tokenManager)
}

func validRegisterInput() RegisterInput {
	return RegisterInput{
		Email:           "Ivan.Petrov@Example.COM",
		FirstName:       "Иван",
		LastName:        "Петров",
		Password:        "correct-horse-battery",
		PasswordConfirm: "correct-horse-battery",
	}
}

func TestAuthService_Register(t *testing.T) {
	repo := newMockAuthRepository()
	service := newTestAuthService(repo)

	ctx := context.Background()
	res, err := service.Register(ctx, validRegisterInput())
	if err != nil {
		t.Fatalf("register вернул ошибку: %v", err)
	}

	if res.User.ID == uuid.Nil {
		t.Fatalf("user ID должен быть установлен")
	}
	if res.User.Email != "ivan.petrov@example.com" {
		t.Fatalf("email должен храниться в нижнем регистре, получили %q", res.User.Email)
	}
	if !res.User.IsActive {
		t.Fatalf("пользователь должен быть активен сразу после регистрации")
	}
	if res.TokenPair == nil || res.TokenPair.Access == "" || res.TokenPair.Refresh == "" {
		t.Fatalf("ожидали пару токенов в ответе регистрации")
	}
	if res.User.PasswordHash == "correct-horse-battery" {
		t.Fatalf("пароль не должен храниться в открытом виде")
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newMockAuthRepository()
	service := newTestAuthService(repo)

	ctx := context.Background()
	if _, err := service.Register(ctx, validRegisterInput()); err != nil {
		t.Fatalf("первая регистрация вернула ошибку: %v", err)
	}

	// Повтор с другим регистром email должен упереться в ту же запись.
	second := validRegisterInput()
	second.Email = "IVAN.PETROV@example.com"
	_, err := service.Register(ctx, second)
	if err == nil {
		t.Fatalf("повторная регистрация должна вернуть ошибку")
	}

	var fieldErrs validation.FieldErrors
	if !errors.As(err, &fieldErrs) {
		t.Fatalf("ожидали FieldErrors, получили %T: %v", err, err)
	}
	if len(fieldErrs["email"]) == 0 {
		t.Fatalf("ожидали ошибку по полю email: %v", fieldErrs)
	}
	if len(repo.usersByEmail) != 1 {
		t.Fatalf("вторая запись не должна быть создана, записей: %d", len(repo.usersByEmail))
	}
}

func TestAuthService_Register_AccumulatesFieldErrors(t *testing.T) {
	repo := newMockAuthRepository()
	service := newTestAuthService(repo)

	_, err := service.Register(context.Background(), RegisterInput{
		Email:           "not-an-email",
		FirstName:       "",
		LastName:        "",
		Password:        "123",
		PasswordConfirm: "456",
	})
	if err == nil {
		t.Fatalf("ожидали ошибки валидации")
	}

	var fieldErrs validation.FieldErrors
	if !errors.As(err, &fieldErrs) {
		t.Fatalf("ожидали FieldErrors, получили %T: %v", err, err)
	}

	for _, field := range []string{"email", "first_name", "last_name", "password", "password_confirm"} {
		if len(fieldErrs[field]) == 0 {
			t.Fatalf("ожидали ошибку по полю %s: %v", field, fieldErrs)
		}
	}
	// Короткий и полностью числовой пароль даёт обе ошибки сразу.
	if len(fieldErrs["password"]) != 2 {
		t.Fatalf("ожидали две ошибки по паролю, получили: %v", fieldErrs["password"])
	}
}

func TestAuthService_Register_PasswordSimilarToEmail(t *testing.T) {
	repo := newMockAuthRepository()
	service := newTestAuthService(repo)

	in := validRegisterInput()
	in.Email = "petrov@example.com"
	in.Password = "petrov-2024"
	in.PasswordConfirm = "petrov-2024"

	_, err := service.Register(context.Background(), in)
	if err == nil {
		t.Fatalf("пароль похожий на email должен быть отвергнут")
	}

	var fieldErrs validation.FieldErrors
	if !errors.As(err, &fieldErrs) {
		t.Fatalf("ожидали FieldErrors, получили %T: %v", err, err)
	}
	if len(fieldErrs["password"]) == 0 {
		t.Fatalf("ожидали ошибку по полю password: %v", fieldErrs)
	}
}

func TestAuthService_Login(t *testing.T) {
	repo := newMockAuthRepository()
	service := newTestAuthService(repo)

	ctx := context.Background()
	if _, err := service.Register(ctx, validRegisterInput()); err != nil {
		t.Fatalf("register вернул ошибку: %v", err)
	}

	// Логин с другим регистром email должен работать.
	res, err := service.Login(ctx, LoginInput{
		Email:    "Ivan.Petrov@example.com",
		Password: "correct-horse-battery",
	})
	if err != nil {
		t.Fatalf("login вернул ошибку: %v", err)
	}
	if res.TokenPair.Access == "" {
		t.Fatalf("ожидали access токен")
	}
}

func TestAuthService_Login_IndistinguishableFailures(t *testing.T) {
	repo := newMockAuthRepository()
	service := newTestAuthService(repo)

	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("real-password-1"), bcrypt.DefaultCost)
	inactive := &models.User{
		ID:           uuid.New(),
		Email:        "inactive@example.com",
		PasswordHash: string(hash),
		IsActive:     false,
	}
	repo.usersByEmail[inactive.Email] = inactive
	repo.usersByID[inactive.ID] = inactive

	active := &models.User{
		ID:           uuid.New(),
		Email:        "active@example.com",
		PasswordHash: string(hash),
		IsActive:     true,
	}
	repo.usersByEmail[active.Email] = active
	repo.usersByID[active.ID] = active

	cases := []LoginInput{
		{Email: "missing@example.com", Password: "real-password-1"},  // нет пользователя
		{Email: "active@example.com", Password: "wrong-password"},    // неверный пароль
		{Email: "inactive@example.com", Password: "real-password-1"}, // неактивный аккаунт
	}

	// Все три сценария неразличимы для клиента.
	for _, in := range cases {
		_, err := service.Login(ctx, in)
		if !errors.Is(err, apperror.ErrInvalidCredentials) {
			t.Fatalf("логин %q: ожидали ErrInvalidCredentials, получили %v", in.Email, err)
		}
	}
}

func TestAuthService_Refresh(t *testing.T) {
	repo := newMockAuthRepository()
	service := newTestAuthService(repo)

	ctx := context.Background()
	res, err := service.Register(ctx, validRegisterInput())
	if err != nil {
		t.Fatalf("register вернул ошибку: %v", err)
	}

	newPair, err := service.Refresh(ctx, res.TokenPair.Refresh)
	if err != nil {
		t.Fatalf("refresh вернул ошибку: %v", err)
	}
	if newPair.Refresh == res.TokenPair.Refresh {
		t.Fatalf("ожидали новый refresh токен")
	}
	if newPair.Access == "" {
		t.Fatalf("ожидали новый access токен")
	}
}

func TestAuthService_Refresh_RejectsAccessToken(t *testing.T) {
	repo := newMockAuthRepository()
	service := newTestAuthService(repo)

	ctx := context.Background()
	res, err := service.Register(ctx, validRegisterInput())
	if err != nil {
		t.Fatalf("register вернул ошибку: %v", err)
	}

	// Access токен подписан другим секретом и не годится для refresh.
	if _, err := service.Refresh(ctx, res.TokenPair.Access); err == nil {
		t.Fatalf("refresh по access токену должен быть отвергнут")
	}
}

func TestAuthService_Refresh_InactiveUser(t *testing.T) {
	repo := newMockAuthRepository()
	service := newTestAuthService(repo)

	ctx := context.Background()
	res, err := service.Register(ctx, validRegisterInput())
	if err != nil {
		t.Fatalf("register вернул ошибку: %v", err)
	}

	res.User.IsActive = false

	if _, err := service.Refresh(ctx, res.TokenPair.Refresh); !errors.Is(err, apperror.ErrInvalidCredentials) {
		t.Fatalf("refresh неактивного пользователя: ожидали ErrInvalidCredentials, получили %v", err)
	}
}

func TestTokenManager_ParseAccess(t *testing.T) {
	tokenManager := NewTokenManager("access-secret", "refresh-secret", time.Minute, time.Hour)
	user := &models.User{ID: uuid.New(), Email: "user@example.com"}

	pair, err := tokenManager.GeneratePair(user)
	if err != nil {
		t.Fatalf("не удалось сгенерировать токены: %v", err)
	}

	userID, err := tokenManager.ParseAccess(pair.Access)
	if err != nil {
		t.Fatalf("parse access вернул ошибку: %v", err)
	}
	if userID != user.ID {
		t.Fatalf("ожидали %s, получили %s", user.ID, userID)
	}

	// Токены подписаны разными секретами.
	if _, err := tokenManager.ParseAccess(pair.Refresh); err == nil {
		t.Fatalf("refresh токен не должен проходить проверку access")
	}
}
