package common

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/proposalgenie/backend/internal/http/middleware"
)

// ErrUserNotInContext возвращается, когда userID отсутствует в контексте запроса.
var ErrUserNotInContext = errors.New("пользователь не найден в контексте")

// CurrentUserID извлекает идентификатор пользователя из gin.Context.
func CurrentUserID(c *gin.Context) (uuid.UUID, error) {
	raw, exists := c.Get(middleware.ContextUserIDKey)
	if !exists {
		return uuid.Nil, ErrUserNotInContext
	}

	userID, ok := raw.(uuid.UUID)
	if !ok {
		return uuid.Nil, ErrUserNotInContext
	}

	return userID, nil
}

// ParseUUIDParam читает UUID из параметра пути.
func ParseUUIDParam(c *gin.Context, paramName string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(c.Param(paramName))
	if err != nil {
		return uuid.Nil, errors.New("неверный формат UUID")
	}
	return parsed, nil
}

// GetPagination извлекает limit и offset из query параметров с дефолтами.
func GetPagination(c *gin.Context) (limit, offset int) {
	limit = parseIntQuery(c, "limit", 20)
	offset = parseIntQuery(c, "offset", 0)
	if limit > 100 {
		limit = 100
	}
	if limit < 1 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return
}

// parseIntQuery безопасно читает целочисленный query параметр.
func parseIntQuery(c *gin.Context, key string, fallback int) int {
	if v := c.Query(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}
