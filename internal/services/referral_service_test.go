package services

import (
	"context"
	"testing"
	"time"

	"mewayz/internal/config"
	"mewayz/internal/models"
	"mewayz/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type referralFixture struct {
	svc      ReferralService
	users    *fakeUserRepo
	programs *fakeProgramRepo
	codes    *fakeCodeRepo
	clicks   *fakeClickRepo
	convs    *fakeConversionRepo
	dedupe   *fakeDedupe
}

func newReferralFixture() *referralFixture {
	f := &referralFixture{
		users:    newFakeUserRepo(),
		programs: newFakeProgramRepo(),
		codes:    newFakeCodeRepo(),
		clicks:   newFakeClickRepo(),
		convs:    newFakeConversionRepo(),
		dedupe:   newFakeDedupe(),
	}

	cfg := &config.Config{
		Security: &config.SecurityConfig{CookieSigningKey: "test-signing-key"},
		Referral: &config.ReferralConfig{DefaultRedirectURL: "https://mewayz.test"},
	}

	f.svc = NewReferralService(
		f.codes, f.programs, f.clicks, f.users, f.convs,
		NewFraudService(f.clicks, testLogger()),
		f.dedupe, nil, cfg, testLogger(),
	)
	return f
}

func (f *referralFixture) activeProgram() *models.ReferralProgram {
	return f.programs.add(&models.ReferralProgram{
		Name:   "Creator Partners",
		Status: models.ProgramStatusActive,
		Commission: models.CommissionStructure{
			Type:        models.CommissionTypePercentage,
			PrimaryRate: 10,
			Currency:    "USD",
		},
	})
}

func (f *referralFixture) memberUser() *models.User {
	return f.users.add(&models.User{
		Email:     "creator@example.com",
		UserType:  models.UserTypeMember,
		Status:    models.UserStatusActive,
		CreatedAt: time.Now().AddDate(-1, 0, 0),
	})
}

func TestGenerateCodeCreatesUniqueCode(t *testing.T) {
	f := newReferralFixture()
	program := f.activeProgram()
	user := f.memberUser()

	code, err := f.svc.GenerateCode(context.Background(), &CodeRequest{
		UserID:    user.ID,
		ProgramID: program.ID,
	})

	require.NoError(t, err)
	assert.Len(t, code.Code, utils.ReferralCodeLength)
	assert.Equal(t, models.CodeStatusActive, code.Status)
	assert.False(t, code.IsCustom)
	assert.Equal(t, 1, f.programs.referrerBumps)
}

func TestGenerateCodeIsIdempotent(t *testing.T) {
	f := newReferralFixture()
	program := f.activeProgram()
	user := f.memberUser()

	first, err := f.svc.GenerateCode(context.Background(), &CodeRequest{UserID: user.ID, ProgramID: program.ID})
	require.NoError(t, err)

	second, err := f.svc.GenerateCode(context.Background(), &CodeRequest{UserID: user.ID, ProgramID: program.ID})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Code, second.Code)
	assert.Equal(t, 1, f.programs.referrerBumps, "second call must not re-enroll the user")
}

func TestGenerateCodeReplacesDisabledCode(t *testing.T) {
	f := newReferralFixture()
	program := f.activeProgram()
	user := f.memberUser()

	first, err := f.svc.GenerateCode(context.Background(), &CodeRequest{UserID: user.ID, ProgramID: program.ID})
	require.NoError(t, err)
	require.NoError(t, f.svc.SetCodeStatus(context.Background(), first.ID, models.CodeStatusDisabled))

	second, err := f.svc.GenerateCode(context.Background(), &CodeRequest{UserID: user.ID, ProgramID: program.ID})

	require.NoError(t, err)
	// A disabled code is dead for good; the user gets a fresh one.
	assert.NotEqual(t, first.ID, second.ID)
	assert.NotEqual(t, first.Code, second.Code)
	assert.Equal(t, models.CodeStatusActive, second.Status)
}

func TestGenerateCodeRetriesOnCollision(t *testing.T) {
	f := newReferralFixture()
	program := f.activeProgram()
	user := f.memberUser()
	f.codes.duplicateInserts = 2

	code, err := f.svc.GenerateCode(context.Background(), &CodeRequest{UserID: user.ID, ProgramID: program.ID})

	require.NoError(t, err)
	assert.NotEmpty(t, code.Code)
	assert.Equal(t, 3, f.codes.creates)
}

func TestGenerateCodeExhaustsRetries(t *testing.T) {
	f := newReferralFixture()
	program := f.activeProgram()
	user := f.memberUser()
	f.codes.duplicateInserts = utils.CodeInsertRetries

	_, err := f.svc.GenerateCode(context.Background(), &CodeRequest{UserID: user.ID, ProgramID: program.ID})

	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestGenerateCodeRejectsIneligibleUser(t *testing.T) {
	f := newReferralFixture()
	program := f.activeProgram()
	program.Eligibility.MinAccountAgeDays = 30

	user := f.users.add(&models.User{
		Email:     "rookie@example.com",
		Status:    models.UserStatusActive,
		CreatedAt: time.Now().AddDate(0, 0, -3),
	})

	_, err := f.svc.GenerateCode(context.Background(), &CodeRequest{UserID: user.ID, ProgramID: program.ID})

	assert.ErrorIs(t, err, ErrIneligible)
	assert.Empty(t, f.codes.codes, "no code may be written for an ineligible user")
}

func TestGenerateCodeRejectsInactiveProgram(t *testing.T) {
	f := newReferralFixture()
	program := f.programs.add(&models.ReferralProgram{Status: models.ProgramStatusPaused})
	user := f.memberUser()

	_, err := f.svc.GenerateCode(context.Background(), &CodeRequest{UserID: user.ID, ProgramID: program.ID})

	assert.ErrorIs(t, err, ErrIneligible)
}

func TestGenerateCodeCustomCodeConflict(t *testing.T) {
	f := newReferralFixture()
	program := f.activeProgram()
	holder := f.memberUser()

	_, err := f.svc.GenerateCode(context.Background(), &CodeRequest{
		UserID:     holder.ID,
		ProgramID:  program.ID,
		CustomCode: "SPRING24",
	})
	require.NoError(t, err)

	other := f.users.add(&models.User{
		Email:     "other@example.com",
		Status:    models.UserStatusActive,
		CreatedAt: time.Now().AddDate(-1, 0, 0),
	})

	_, err = f.svc.GenerateCode(context.Background(), &CodeRequest{
		UserID:     other.ID,
		ProgramID:  program.ID,
		CustomCode: "spring24",
	})

	assert.ErrorIs(t, err, ErrDuplicateResource)
}

func TestGenerateCodePendingApprovalWhenRequired(t *testing.T) {
	f := newReferralFixture()
	program := f.activeProgram()
	program.Tracking.RequireApproval = true
	user := f.memberUser()

	code, err := f.svc.GenerateCode(context.Background(), &CodeRequest{UserID: user.ID, ProgramID: program.ID})

	require.NoError(t, err)
	assert.Equal(t, models.CodeStatusPendingApproval, code.Status)
}

func TestTrackClickUniqueThenRepeat(t *testing.T) {
	f := newReferralFixture()
	program := f.activeProgram()
	user := f.memberUser()

	code, err := f.svc.GenerateCode(context.Background(), &CodeRequest{UserID: user.ID, ProgramID: program.ID})
	require.NoError(t, err)

	visitor := models.VisitorMetadata{IPAddress: "203.0.113.9", UserAgent: "Mozilla/5.0"}

	first, err := f.svc.TrackClick(context.Background(), code.Code, visitor)
	require.NoError(t, err)
	assert.False(t, first.FraudDetected)
	assert.NotEmpty(t, first.Cookie.Signature)

	_, err = f.svc.TrackClick(context.Background(), code.Code, visitor)
	require.NoError(t, err)

	stored := f.codes.codes[code.ID]
	assert.Equal(t, int64(2), stored.Tracking.TotalClicks)
	assert.Equal(t, int64(1), stored.Tracking.UniqueClicks)
	assert.Len(t, f.clicks.clicks, 2, "every click is persisted")
}

func TestTrackClickCookieVerifies(t *testing.T) {
	f := newReferralFixture()
	program := f.activeProgram()
	user := f.memberUser()

	code, err := f.svc.GenerateCode(context.Background(), &CodeRequest{UserID: user.ID, ProgramID: program.ID})
	require.NoError(t, err)

	result, err := f.svc.TrackClick(context.Background(), code.Code, models.VisitorMetadata{
		IPAddress: "203.0.113.9",
		UserAgent: "Mozilla/5.0",
	})
	require.NoError(t, err)

	assert.True(t, VerifyCookie(result.Cookie, "test-signing-key"))
	assert.False(t, VerifyCookie(result.Cookie, "wrong-key"))

	tampered := result.Cookie
	tampered.Code = "OTHER"
	assert.False(t, VerifyCookie(tampered, "test-signing-key"))
}

func TestTrackClickSuspiciousGetsNoCookie(t *testing.T) {
	f := newReferralFixture()
	program := f.activeProgram()
	program.Tracking.FraudDetection = true
	user := f.memberUser()

	code, err := f.svc.GenerateCode(context.Background(), &CodeRequest{UserID: user.ID, ProgramID: program.ID})
	require.NoError(t, err)

	result, err := f.svc.TrackClick(context.Background(), code.Code, models.VisitorMetadata{
		IPAddress: "203.0.113.9",
		UserAgent: "curl-crawler/1.0",
	})
	require.NoError(t, err)

	assert.True(t, result.FraudDetected)
	assert.Empty(t, result.Cookie.Signature, "suspicious clicks earn no attribution cookie")
	assert.Len(t, f.clicks.clicks, 1, "suspicious clicks are still recorded")
}

func TestTrackClickUnknownCode(t *testing.T) {
	f := newReferralFixture()

	_, err := f.svc.TrackClick(context.Background(), "MISSING1", models.VisitorMetadata{IPAddress: "203.0.113.9"})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTrackClickDisabledCode(t *testing.T) {
	f := newReferralFixture()
	program := f.activeProgram()
	user := f.memberUser()

	code, err := f.svc.GenerateCode(context.Background(), &CodeRequest{UserID: user.ID, ProgramID: program.ID})
	require.NoError(t, err)
	require.NoError(t, f.svc.SetCodeStatus(context.Background(), code.ID, models.CodeStatusDisabled))

	_, err = f.svc.TrackClick(context.Background(), code.Code, models.VisitorMetadata{IPAddress: "203.0.113.9"})

	assert.ErrorIs(t, err, ErrIneligible)
}

func TestTrackClickDedupeFallbackWhenCacheDown(t *testing.T) {
	f := newReferralFixture()
	program := f.activeProgram()
	user := f.memberUser()
	f.dedupe.err = assert.AnError

	code, err := f.svc.GenerateCode(context.Background(), &CodeRequest{UserID: user.ID, ProgramID: program.ID})
	require.NoError(t, err)

	visitor := models.VisitorMetadata{IPAddress: "203.0.113.9", UserAgent: "Mozilla/5.0"}

	_, err = f.svc.TrackClick(context.Background(), code.Code, visitor)
	require.NoError(t, err)
	_, err = f.svc.TrackClick(context.Background(), code.Code, visitor)
	require.NoError(t, err)

	stored := f.codes.codes[code.ID]
	assert.Equal(t, int64(1), stored.Tracking.UniqueClicks, "click log fallback still dedupes")
}
