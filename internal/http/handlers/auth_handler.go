package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/proposalgenie/backend/internal/dto"
	"github.com/proposalgenie/backend/internal/logger"
	"github.com/proposalgenie/backend/internal/pkg/apperror"
	"github.com/proposalgenie/backend/internal/service"
	"github.com/proposalgenie/backend/internal/validation"
)

// AuthHandler предоставляет HTTP слой для регистрации и логина.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler создаёт хэндлер.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register обрабатывает POST /auth/register.
// Ошибки валидации возвращаются по полям одним ответом; любая другая
// ошибка — 500 с общим сообщением, подробности только в логе.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.RegisterErrorResponse{
			Success: false,
			Message: "некорректное тело запроса",
		})
		return
	}

	result, err := h.auth.Register(c.Request.Context(), service.RegisterInput{
		Email:           req.Email,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Company:         req.Company,
		JobTitle:        req.JobTitle,
		Department:      req.Department,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
	})
	if err != nil {
		var fieldErrs validation.FieldErrors
		if errors.As(err, &fieldErrs) {
			c.JSON(http.StatusBadRequest, dto.RegisterErrorResponse{
				Success: false,
				Message: "регистрация не выполнена, проверьте введённые данные",
				Errors:  fieldErrs,
			})
			return
		}

		if logger.Log != nil {
			logger.Log.WithFields(logrus.Fields{"error": err.Error()}).Error("auth handler: ошибка регистрации")
		}
		c.JSON(http.StatusInternalServerError, dto.RegisterErrorResponse{
			Success: false,
			Message: "произошла ошибка при регистрации",
		})
		return
	}

	c.JSON(http.StatusCreated, dto.RegisterResponse{
		Success: true,
		Message: "регистрация выполнена успешно",
		Data: &dto.RegisterData{
			User:   dto.NewUserResponse(result.User),
			Tokens: result.TokenPair,
		},
	})
}

// Login обрабатывает POST /auth/login.
// Отсутствие email или пароля — 400 до обращения к хранилищу;
// любые неверные учётные данные — одинаковый 401.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "некорректное тело запроса"})
		return
	}

	if req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "email и пароль обязательны"})
		return
	}

	result, err := h.auth.Login(c.Request.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		// Отказ хранилища не выдаётся за неверные учётные данные.
		if apperror.Status(err) == http.StatusInternalServerError {
			if logger.Log != nil {
				logger.Log.WithFields(logrus.Fields{"error": err.Error()}).Error("auth handler: ошибка входа")
			}
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "внутренняя ошибка сервера"})
			return
		}
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "неверные учетные данные или неактивный аккаунт"})
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:   result.TokenPair,
		User:    dto.NewUserResponse(result.User),
		Message: "вход выполнен успешно",
	})
}

// Refresh обрабатывает POST /auth/refresh.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "refresh токен обязателен"})
		return
	}

	tokenPair, err := h.auth.Refresh(c.Request.Context(), req.Refresh)
	if err != nil {
		if apperror.Status(err) == http.StatusInternalServerError {
			if logger.Log != nil {
				logger.Log.WithFields(logrus.Fields{"error": err.Error()}).Error("auth handler: ошибка обновления токенов")
			}
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "внутренняя ошибка сервера"})
			return
		}
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "refresh токен невалиден"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tokens": tokenPair})
}
