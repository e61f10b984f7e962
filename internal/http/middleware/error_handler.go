package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/proposalgenie/backend/internal/logger"
	"github.com/proposalgenie/backend/internal/pkg/apperror"
)

// ErrorHandler централизованно превращает ошибки, отложенные через
// c.Error, в HTTP ответы. Статус и сообщение берутся из apperror;
// текст внутренних ошибок наружу не уходит, только в лог.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status := apperror.Status(err)
		message := apperror.Message(err)

		if status == http.StatusInternalServerError && logger.Log != nil {
			logger.Log.WithFields(logrus.Fields{
				"error":  err.Error(),
				"path":   c.Request.URL.Path,
				"method": c.Request.Method,
			}).Error("request error")
		}

		c.JSON(status, gin.H{"error": message})
	}
}
