package validation

import (
	"strings"
	"testing"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"first.last+tag@sub.example.org",
		"a@b.co",
	}
	for _, email := range valid {
		if err := ValidateEmail(email); err != nil {
			t.Fatalf("email %q должен быть валиден: %v", email, err)
		}
	}

	invalid := []string{
		"",
		"plainaddress",
		"two@@example.com",
		"@example.com",
		"user@",
		"user@nodot",
		"тест@example.com",
		strings.Repeat("a", 65) + "@example.com",
	}
	for _, email := range invalid {
		if err := ValidateEmail(email); err == nil {
			t.Fatalf("email %q должен быть отвергнут", email)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	got := NormalizeEmail("  User@EXAMPLE.Com ")
	if got != "user@example.com" {
		t.Fatalf("ожидали user@example.com, получили %q", got)
	}
}

func TestValidatePersonName(t *testing.T) {
	if err := ValidatePersonName("имя", "Иван"); err != nil {
		t.Fatalf("имя должно быть валидно: %v", err)
	}
	if err := ValidatePersonName("имя", "   "); err == nil {
		t.Fatalf("пустое имя должно быть отвергнуто")
	}
	if err := ValidatePersonName("имя", strings.Repeat("и", MaxNameLength+1)); err == nil {
		t.Fatalf("слишком длинное имя должно быть отвергнуто")
	}
}

func TestValidateOptionalField(t *testing.T) {
	if err := ValidateOptionalField("компания", nil, MaxCompanyLength); err != nil {
		t.Fatalf("nil значение должно проходить: %v", err)
	}

	empty := ""
	if err := ValidateOptionalField("компания", &empty, MaxCompanyLength); err != nil {
		t.Fatalf("пустая строка должна проходить: %v", err)
	}

	long := strings.Repeat("x", MaxCompanyLength+1)
	if err := ValidateOptionalField("компания", &long, MaxCompanyLength); err == nil {
		t.Fatalf("слишком длинное значение должно быть отвергнуто")
	}
}

func TestValidateLength_CountsRunes(t *testing.T) {
	// Кириллица: длина считается в рунах, не в байтах.
	if err := ValidateLength("поле", strings.Repeat("ж", 10), 1, 10); err != nil {
		t.Fatalf("10 рун должны проходить лимит 10: %v", err)
	}
}

func TestFieldErrors(t *testing.T) {
	errs := FieldErrors{}
	if !errs.Empty() {
		t.Fatalf("новый FieldErrors должен быть пустым")
	}

	errs.Add("email", "email обязателен")
	errs.Add("password", "пароль должен быть не менее 8 символов")
	errs.Add("password", "пароль не может состоять только из цифр")

	if errs.Empty() {
		t.Fatalf("FieldErrors не должен быть пустым")
	}
	if len(errs["password"]) != 2 {
		t.Fatalf("ожидали две ошибки по паролю, получили %d", len(errs["password"]))
	}
	if errs.Error() == "" {
		t.Fatalf("Error() должен возвращать непустое сообщение")
	}
}
