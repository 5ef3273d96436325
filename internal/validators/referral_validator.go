package validators

import "mewayz/internal/utils"

type CodeGenerateRequest struct {
	ProgramID  string `json:"program_id" validate:"required,object_id"`
	CustomCode string `json:"custom_code" validate:"omitempty,min=4,max=20"`
	ParentCode string `json:"parent_code" validate:"omitempty,min=4,max=20"`
}

type ConversionRequest struct {
	ReferralCode string  `json:"referral_code" validate:"omitempty,min=4,max=20"`
	ClickID      string  `json:"click_id" validate:"omitempty,object_id"`
	Type         string  `json:"type" validate:"required,conversion_type"`
	Value        float64 `json:"value" validate:"gte=0"`
	Currency     string  `json:"currency" validate:"omitempty,len=3"`
	ReferredUser string  `json:"referred_user_id" validate:"omitempty,object_id"`
}

type PayoutRequest struct {
	ProgramID string `json:"program_id" validate:"required,object_id"`
	Method    string `json:"method" validate:"omitempty,payout_method"`
}

type AdminPayoutRequest struct {
	UserID    string `json:"user_id" validate:"required,object_id"`
	ProgramID string `json:"program_id" validate:"required,object_id"`
	Method    string `json:"method" validate:"omitempty,payout_method"`
}

func ValidateCodeGenerate(req *CodeGenerateRequest) ValidationErrors {
	errors := ValidateStruct(req)

	if req.CustomCode != "" && !utils.IsValidCustomCode(req.CustomCode) {
		errors = append(errors, ValidationError{
			Field:   "custom_code",
			Tag:     "referral_code",
			Message: "may only contain letters, digits, underscore and hyphen",
		})
	}

	return errors
}

func ValidateConversion(req *ConversionRequest) ValidationErrors {
	errors := ValidateStruct(req)

	if req.ReferralCode == "" && req.ClickID == "" {
		errors = append(errors, ValidationError{
			Field:   "referral_code",
			Tag:     "required_without",
			Message: "either referral_code or click_id must be provided",
		})
	}

	return errors
}
