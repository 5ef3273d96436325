package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestValidateCodeGenerate(t *testing.T) {
	programID := primitive.NewObjectID().Hex()

	assert.Empty(t, ValidateCodeGenerate(&CodeGenerateRequest{ProgramID: programID}))
	assert.Empty(t, ValidateCodeGenerate(&CodeGenerateRequest{ProgramID: programID, CustomCode: "SPRING24"}))

	errs := ValidateCodeGenerate(&CodeGenerateRequest{ProgramID: "not-an-id"})
	assert.NotEmpty(t, errs)
	assert.Equal(t, "programid", errs[0].Field)

	errs = ValidateCodeGenerate(&CodeGenerateRequest{ProgramID: programID, CustomCode: "has space!"})
	assert.NotEmpty(t, errs)
}

func TestValidateConversionRequiresSource(t *testing.T) {
	errs := ValidateConversion(&ConversionRequest{Type: "purchase", Value: 100})

	assert.NotEmpty(t, errs)
	assert.Contains(t, errs.Error(), "referral_code")
}

func TestValidateConversionAcceptsEitherSource(t *testing.T) {
	assert.Empty(t, ValidateConversion(&ConversionRequest{
		ReferralCode: "SPRING24",
		Type:         "purchase",
		Value:        100,
		Currency:     "USD",
	}))

	assert.Empty(t, ValidateConversion(&ConversionRequest{
		ClickID: primitive.NewObjectID().Hex(),
		Type:    "signup",
	}))
}

func TestValidateConversionRejectsBadType(t *testing.T) {
	errs := ValidateConversion(&ConversionRequest{
		ReferralCode: "SPRING24",
		Type:         "page_view",
	})

	assert.NotEmpty(t, errs)
}

func TestValidateProgramCreate(t *testing.T) {
	valid := &ProgramCreateRequest{
		Name:           "Creator Partners",
		WorkspaceID:    primitive.NewObjectID().Hex(),
		CommissionType: "percentage",
		PrimaryRate:    10,
		Currency:       "USD",
	}

	assert.Empty(t, ValidateProgramCreate(valid))
}

func TestValidateProgramCreatePercentageOverHundred(t *testing.T) {
	request := &ProgramCreateRequest{
		Name:           "Creator Partners",
		WorkspaceID:    primitive.NewObjectID().Hex(),
		CommissionType: "percentage",
		PrimaryRate:    150,
		Currency:       "USD",
	}

	errs := ValidateProgramCreate(request)
	assert.NotEmpty(t, errs)
	assert.Contains(t, errs.ToMap(), "primary_rate")
}

func TestValidateProgramCreateFixedAllowsLargeRate(t *testing.T) {
	request := &ProgramCreateRequest{
		Name:           "Creator Partners",
		WorkspaceID:    primitive.NewObjectID().Hex(),
		CommissionType: "fixed",
		PrimaryRate:    500,
		Currency:       "USD",
	}

	assert.Empty(t, ValidateProgramCreate(request))
}
