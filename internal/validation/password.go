package validation

import (
	"strings"
	"unicode"
)

// MinPasswordLength минимальная длина пароля.
const MinPasswordLength = 8

// commonPasswords — список часто используемых паролей, которые запрещены.
var commonPasswords = map[string]struct{}{
	"password":    {},
	"password1":   {},
	"password123": {},
	"12345678":    {},
	"123456789":   {},
	"1234567890":  {},
	"qwerty123":   {},
	"qwertyuiop":  {},
	"iloveyou":    {},
	"admin123":    {},
	"welcome1":    {},
	"letmein1":    {},
	"sunshine":    {},
	"princess":    {},
	"football":    {},
	"baseball":    {},
	"superman":    {},
	"trustno1":    {},
	"dragon123":   {},
	"master123":   {},
	"monkey123":   {},
	"abc12345":    {},
	"passw0rd":    {},
	"p@ssword":    {},
	"11111111":    {},
	"00000000":    {},
}

// PasswordErrors проверяет пароль по всем правилам политики и возвращает
// список нарушений. userAttrs — атрибуты пользователя (email, имя, фамилия),
// на которые пароль не должен быть похож.
func PasswordErrors(password string, userAttrs ...string) []string {
	var errs []string

	if len(password) < MinPasswordLength {
		errs = append(errs, "пароль должен быть не менее 8 символов")
	}

	if password != "" && isAllNumeric(password) {
		errs = append(errs, "пароль не может состоять только из цифр")
	}

	if _, ok := commonPasswords[strings.ToLower(password)]; ok {
		errs = append(errs, "пароль слишком распространённый")
	}

	if attr := similarAttribute(password, userAttrs); attr != "" {
		errs = append(errs, "пароль слишком похож на "+attr)
	}

	return errs
}

// isAllNumeric сообщает, что строка целиком состоит из цифр.
func isAllNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// similarAttribute возвращает описание атрибута, на который похож пароль.
// Сравнение регистронезависимое; атрибуты короче 4 символов не учитываются,
// у email сравнивается и локальная часть.
func similarAttribute(password string, attrs []string) string {
	lower := strings.ToLower(password)
	if lower == "" {
		return ""
	}

	for _, attr := range attrs {
		attr = strings.ToLower(strings.TrimSpace(attr))
		if attr == "" {
			continue
		}

		candidates := []string{attr}
		if at := strings.Index(attr, "@"); at > 0 {
			candidates = append(candidates, attr[:at])
		}

		for _, candidate := range candidates {
			if len(candidate) < 4 {
				continue
			}
			if strings.Contains(lower, candidate) || strings.Contains(candidate, lower) {
				return "данные пользователя"
			}
		}
	}

	return ""
}
