package utils

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	validate.RegisterValidation("strong_password", validateStrongPassword)
	validate.RegisterValidation("currency_code", validateCurrencyCode)
	validate.RegisterValidation("commission_type", validateCommissionType)
	validate.RegisterValidation("attribution_model", validateAttributionModel)
	validate.RegisterValidation("referral_code", validateReferralCodeFormat)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateStrongPassword(fl validator.FieldLevel) bool {
	return ValidatePasswordStrength(fl.Field().String()) == nil
}

func validateCurrencyCode(fl validator.FieldLevel) bool {
	code := fl.Field().String()
	validCurrencies := []string{"USD", "EUR", "GBP", "CAD", "AUD", "JPY", "CNY", "INR", "BRL", "MXN"}

	for _, currency := range validCurrencies {
		if code == currency {
			return true
		}
	}
	return false
}

func validateCommissionType(fl validator.FieldLevel) bool {
	t := fl.Field().String()
	return t == "percentage" || t == "fixed"
}

func validateAttributionModel(fl validator.FieldLevel) bool {
	m := fl.Field().String()
	return m == "first_click" || m == "last_click"
}

var codeFormatRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

func validateReferralCodeFormat(fl validator.FieldLevel) bool {
	code := fl.Field().String()
	if len(code) < MinCustomCodeLength || len(code) > MaxCustomCodeLength {
		return false
	}
	return codeFormatRegex.MatchString(code)
}

// IsValidCustomCode reports whether a caller-supplied referral code is usable.
func IsValidCustomCode(code string) bool {
	if len(code) < MinCustomCodeLength || len(code) > MaxCustomCodeLength {
		return false
	}
	return codeFormatRegex.MatchString(code)
}

func ValidatePasswordStrength(password string) error {
	if len(password) < PasswordMinLength {
		return errors.New("password too short")
	}
	if len(password) > PasswordMaxLength {
		return errors.New("password too long")
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if !hasUpper || !hasLower || !hasDigit {
		return errors.New("password must contain upper, lower and digit characters")
	}
	return nil
}

func IsValidEmail(email string) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(email)
}

func IsValidURL(url string) bool {
	urlRegex := regexp.MustCompile(`^https?://[^\s/$.?#].[^\s]*$`)
	return urlRegex.MatchString(url)
}

func SanitizeString(input string) string {
	htmlRegex := regexp.MustCompile(`<[^>]*>`)
	cleaned := htmlRegex.ReplaceAllString(input, "")

	return strings.TrimSpace(cleaned)
}
