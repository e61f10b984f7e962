package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/proposalgenie/backend/internal/dto"
	"github.com/proposalgenie/backend/internal/http/handlers/common"
	"github.com/proposalgenie/backend/internal/repository"
	"github.com/proposalgenie/backend/internal/validation"
)

// ProfileHandler отвечает за работу с профилем текущего пользователя.
// Чужие профили через этот слой недоступны.
type ProfileHandler struct {
	users *repository.UserRepository
}

// NewProfileHandler создаёт экземпляр.
func NewProfileHandler(users *repository.UserRepository) *ProfileHandler {
	return &ProfileHandler{users: users}
}

// GetMe возвращает профиль текущего пользователя. GET /auth/profile.
func (h *ProfileHandler) GetMe(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: err.Error()})
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.ProfileResponse{User: dto.NewUserResponse(user)})
}

// UpdateMe обновляет редактируемые поля профиля. PUT /auth/profile.
func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: err.Error()})
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "некорректное тело запроса"})
		return
	}

	if err := validation.ValidatePersonName("имя", req.FirstName); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	if err := validation.ValidatePersonName("фамилия", req.LastName); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	// Необязательные поля проходят те же проверки длины, что и при регистрации.
	if err := validation.ValidateOptionalField("компания", req.Company, validation.MaxCompanyLength); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	if err := validation.ValidateOptionalField("должность", req.JobTitle, validation.MaxCompanyLength); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	if err := validation.ValidateOptionalField("отдел", req.Department, validation.MaxCompanyLength); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.Company = req.Company
	user.JobTitle = req.JobTitle
	user.Department = req.Department
	if len(req.Preferences) > 0 {
		user.Preferences = req.Preferences
	}

	if err := h.users.UpdateProfile(c.Request.Context(), user); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.ProfileResponse{User: dto.NewUserResponse(user)})
}
