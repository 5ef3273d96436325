package validators

type ProgramCreateRequest struct {
	Name        string   `json:"name" validate:"required,min=3,max=100"`
	Description string   `json:"description" validate:"max=500"`
	WorkspaceID string   `json:"workspace_id" validate:"required,object_id"`

	CommissionType    string  `json:"commission_type" validate:"required,commission_type"`
	PrimaryRate       float64 `json:"primary_rate" validate:"gte=0"`
	SecondaryRate     float64 `json:"secondary_rate" validate:"gte=0"`
	TertiaryRate      float64 `json:"tertiary_rate" validate:"gte=0"`
	MinimumPayout     float64 `json:"minimum_payout" validate:"gte=0"`
	MaximumCommission float64 `json:"maximum_commission" validate:"gte=0"`
	Currency          string  `json:"currency" validate:"required,len=3"`

	MinAccountAgeDays int      `json:"min_account_age_days" validate:"gte=0"`
	MinPriorReferrals int      `json:"min_prior_referrals" validate:"gte=0"`
	AllowedCategories []string `json:"allowed_categories"`

	CookieDurationDays  int    `json:"cookie_duration_days" validate:"gte=0,lte=365"`
	AttributionModel    string `json:"attribution_model" validate:"omitempty,attribution_model"`
	SubReferralTracking bool   `json:"sub_referral_tracking"`
	FraudDetection      bool   `json:"fraud_detection"`
	RequireApproval     bool   `json:"require_approval"`
	RequireConversionOK bool   `json:"require_conversion_approval"`

	PayoutFrequency string  `json:"payout_frequency" validate:"omitempty,oneof=weekly monthly on_demand"`
	DefaultMethod   string  `json:"default_method" validate:"omitempty,payout_method"`
	AutoPayout      bool    `json:"auto_payout"`
	PayoutDelayDays int     `json:"payout_delay_days" validate:"gte=0"`
}

type ProgramStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active paused ended"`
}

func ValidateProgramCreate(req *ProgramCreateRequest) ValidationErrors {
	errors := ValidateStruct(req)

	// Percentage programs cannot promise more than the conversion value.
	if req.CommissionType == "percentage" {
		for field, rate := range map[string]float64{
			"primary_rate":   req.PrimaryRate,
			"secondary_rate": req.SecondaryRate,
			"tertiary_rate":  req.TertiaryRate,
		} {
			if rate > 100 {
				errors = append(errors, ValidationError{
					Field:   field,
					Tag:     "lte",
					Message: "percentage rate cannot exceed 100",
				})
			}
		}
	}

	return errors
}
