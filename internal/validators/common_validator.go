package validators

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	validate.RegisterValidation("object_id", validateObjectID)
	validate.RegisterValidation("commission_type", validateCommissionType)
	validate.RegisterValidation("attribution_model", validateAttributionModel)
	validate.RegisterValidation("payout_method", validatePayoutMethod)
	validate.RegisterValidation("conversion_type", validateConversionType)
	validate.RegisterValidation("currency_code", validateCurrencyCode)
}

type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var messages []string
	for _, err := range v {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(messages, "; ")
}

// ToMap flattens errors into the field -> message shape the response
// envelope renders.
func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string, len(v))
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

func ValidateStruct(s interface{}) ValidationErrors {
	var validationErrors ValidationErrors

	err := validate.Struct(s)
	if err != nil {
		for _, fieldErr := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(fieldErr.Field()),
				Tag:     fieldErr.Tag(),
				Message: messageForTag(fieldErr),
			})
		}
	}

	return validationErrors
}

func messageForTag(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", err.Param())
	case "gte":
		return fmt.Sprintf("must be %s or more", err.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", err.Param())
	case "object_id":
		return "must be a valid object id"
	case "commission_type":
		return "must be percentage or fixed"
	case "attribution_model":
		return "must be first_click or last_click"
	case "payout_method":
		return "must be stripe, razorpay or paypal"
	case "conversion_type":
		return "must be signup, purchase or subscription"
	case "currency_code":
		return "must be a three letter ISO currency code"
	default:
		return fmt.Sprintf("failed %s validation", err.Tag())
	}
}

func validateObjectID(fl validator.FieldLevel) bool {
	_, err := primitive.ObjectIDFromHex(fl.Field().String())
	return err == nil
}

func validateCommissionType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "percentage" || value == "fixed"
}

func validateAttributionModel(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "first_click" || value == "last_click"
}

func validatePayoutMethod(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "stripe" || value == "razorpay" || value == "paypal"
}

func validateConversionType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "signup" || value == "purchase" || value == "subscription"
}

func validateCurrencyCode(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if len(value) != 3 {
		return false
	}
	for _, r := range value {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
