package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateReferralCodeShape(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 200; i++ {
		code := GenerateReferralCode()

		assert.Len(t, code, ReferralCodeLength)
		assert.Equal(t, strings.ToUpper(code), code)
		for _, banned := range []string{"0", "O", "I", "L"} {
			assert.NotContains(t, code, banned)
		}
		seen[code] = true
	}

	// 200 draws from a 32^8 space should not collide.
	assert.Greater(t, len(seen), 195)
}

func TestSignAndVerifyPayload(t *testing.T) {
	signature := SignPayload("CODE|abc123|1700000000", "secret")

	assert.True(t, VerifyPayload("CODE|abc123|1700000000", signature, "secret"))
	assert.False(t, VerifyPayload("CODE|abc123|1700000001", signature, "secret"))
	assert.False(t, VerifyPayload("CODE|abc123|1700000000", signature, "other"))
}

func TestIsValidCustomCode(t *testing.T) {
	assert.True(t, IsValidCustomCode("SPRING24"))
	assert.True(t, IsValidCustomCode("my-code_1"))
	assert.False(t, IsValidCustomCode("abc"), "too short")
	assert.False(t, IsValidCustomCode(strings.Repeat("A", MaxCustomCodeLength+1)))
	assert.False(t, IsValidCustomCode("has space"))
	assert.False(t, IsValidCustomCode("emoji🙂ok"))
}

func TestValidatePasswordStrength(t *testing.T) {
	assert.NoError(t, ValidatePasswordStrength("Str0ngEnough"))
	assert.Error(t, ValidatePasswordStrength("short1A"))
	assert.Error(t, ValidatePasswordStrength("alllowercase1"))
	assert.Error(t, ValidatePasswordStrength("ALLUPPERCASE1"))
	assert.Error(t, ValidatePasswordStrength("NoDigitsHere"))
}

func TestRoundMoney(t *testing.T) {
	assert.Equal(t, 1.0, RoundMoney(0.9999))
	assert.Equal(t, 33.33, RoundMoney(33.333333))
	assert.Equal(t, -2.5, RoundMoney(-2.499999))
	assert.Equal(t, 0.0, RoundMoney(0))
}

func TestContainsFold(t *testing.T) {
	categories := []string{"Creator", "Agency"}

	assert.True(t, ContainsFold(categories, "creator"))
	assert.True(t, ContainsFold(categories, "AGENCY"))
	assert.False(t, ContainsFold(categories, "reseller"))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "user@example.com", NormalizeEmail("  User@Example.COM "))
	assert.Equal(t, "johndoe@gmail.com", NormalizeEmail("John.Doe+promo@gmail.com"))
	assert.Equal(t, "john.doe@corp.com", NormalizeEmail("John.Doe@corp.com"), "dot folding is gmail-only")
}

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "r******r@example.com", MaskEmail("referrer@example.com"))
	assert.Equal(t, "ab@example.com", MaskEmail("ab@example.com"), "short local parts stay readable")
	assert.Equal(t, "not-an-email", MaskEmail("not-an-email"))
}

func TestAccountAgeDays(t *testing.T) {
	assert.Equal(t, 0, AccountAgeDays(time.Now()))
	assert.Equal(t, 30, AccountAgeDays(time.Now().Add(-30*24*time.Hour-time.Minute)))
}

func TestMonthKey(t *testing.T) {
	ts := time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-03", MonthKey(ts))
}

func TestStartOfMonth(t *testing.T) {
	ts := time.Date(2026, time.March, 15, 10, 30, 0, 0, time.UTC)
	start := StartOfMonth(ts)

	assert.Equal(t, time.March, start.Month())
	assert.Equal(t, 1, start.Day())
	assert.Equal(t, 0, start.Hour())
}
