package validation

import (
	"sort"
	"strings"
)

// FieldErrors накапливает ошибки валидации по полям запроса.
// Отличается от инфраструктурных ошибок: клиент может исправить
// данные и повторить запрос.
type FieldErrors map[string][]string

// Add добавляет сообщение к полю.
func (e FieldErrors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Empty сообщает, что ошибок нет.
func (e FieldErrors) Empty() bool {
	return len(e) == 0
}

// Error реализует error: перечисляет поля с ошибками.
func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return "ошибки валидации полей: " + strings.Join(fields, ", ")
}
