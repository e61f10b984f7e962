package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Константы валидации
const (
	MaxNameLength       = 150
	MaxCompanyLength    = 200
	MaxTitleLength      = 200
	MaxClientNameLength = 200
)

var (
	emailLocalRegex  = regexp.MustCompile(`^[a-z0-9._+-]+$`)
	emailDomainRegex = regexp.MustCompile(`^[a-z0-9.-]+\.[a-z]{2,}$`)
)

// ValidateLength проверяет длину строки в рунах.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s должен быть не менее %d символов", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s должен быть не более %d символов", fieldName, max)
	}
	return nil
}

// ValidateNonEmpty проверяет, что строка не пустая.
func ValidateNonEmpty(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s не может быть пустым", fieldName)
	}
	return nil
}

// NormalizeEmail приводит email к канонической форме хранения.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail проверяет формат email.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email обязателен")
	}

	email = NormalizeEmail(email)

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return fmt.Errorf("некорректный формат email")
	}

	localPart, domainPart := parts[0], parts[1]

	if len(localPart) == 0 || len(localPart) > 64 {
		return fmt.Errorf("локальная часть email должна быть от 1 до 64 символов")
	}
	if len(domainPart) == 0 || len(domainPart) > 255 {
		return fmt.Errorf("доменная часть email должна быть от 1 до 255 символов")
	}

	if !emailLocalRegex.MatchString(localPart) {
		return fmt.Errorf("локальная часть email содержит недопустимые символы")
	}
	if !emailDomainRegex.MatchString(domainPart) {
		return fmt.Errorf("доменная часть email имеет некорректный формат")
	}

	return nil
}

// ValidatePersonName проверяет имя или фамилию.
func ValidatePersonName(fieldName, value string) error {
	if err := ValidateNonEmpty(fieldName, value); err != nil {
		return err
	}
	return ValidateLength(fieldName, strings.TrimSpace(value), 1, MaxNameLength)
}

// ValidateOptionalField проверяет необязательное текстовое поле профиля.
func ValidateOptionalField(fieldName string, value *string, max int) error {
	if value == nil || *value == "" {
		return nil
	}
	return ValidateLength(fieldName, strings.TrimSpace(*value), 0, max)
}

// ValidateProposalTitle проверяет заголовок предложения.
func ValidateProposalTitle(title string) error {
	if err := ValidateNonEmpty("заголовок предложения", title); err != nil {
		return err
	}
	return ValidateLength("заголовок предложения", strings.TrimSpace(title), 1, MaxTitleLength)
}

// ValidateClientName проверяет имя клиента в предложении.
func ValidateClientName(name string) error {
	if err := ValidateNonEmpty("имя клиента", name); err != nil {
		return err
	}
	return ValidateLength("имя клиента", strings.TrimSpace(name), 1, MaxClientNameLength)
}

// ValidateSectionTitle проверяет заголовок раздела.
func ValidateSectionTitle(title string) error {
	if err := ValidateNonEmpty("заголовок раздела", title); err != nil {
		return err
	}
	return ValidateLength("заголовок раздела", strings.TrimSpace(title), 1, MaxTitleLength)
}

// ValidateTemplateName проверяет название шаблона.
func ValidateTemplateName(name string) error {
	if err := ValidateNonEmpty("название шаблона", name); err != nil {
		return err
	}
	return ValidateLength("название шаблона", strings.TrimSpace(name), 1, MaxTitleLength)
}

// ValidateEntryTitle проверяет заголовок записи базы знаний.
func ValidateEntryTitle(title string) error {
	if err := ValidateNonEmpty("заголовок записи", title); err != nil {
		return err
	}
	return ValidateLength("заголовок записи", strings.TrimSpace(title), 1, MaxTitleLength)
}
