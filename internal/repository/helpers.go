package repository

import (
	"errors"

	"github.com/lib/pq"
)

// Коды ошибок PostgreSQL для нарушений ограничений.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// isUniqueViolation проверяет, что ошибка — нарушение уникального
// ограничения с указанным именем. Пустое имя означает любое ограничение.
func isUniqueViolation(err error, constraint string) bool {
	return isConstraintViolation(err, uniqueViolation, constraint)
}

// isForeignKeyViolation проверяет, что ошибка — нарушение внешнего ключа
// с указанным именем. Пустое имя означает любой внешний ключ.
func isForeignKeyViolation(err error, constraint string) bool {
	return isConstraintViolation(err, foreignKeyViolation, constraint)
}

func isConstraintViolation(err error, code pq.ErrorCode, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	if pqErr.Code != code {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}
