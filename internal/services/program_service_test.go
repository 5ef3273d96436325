package services

import (
	"context"
	"testing"

	"mewayz/internal/models"
	"mewayz/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProgram() *models.ReferralProgram {
	return &models.ReferralProgram{
		Name:   "Creator Partners",
		Status: models.ProgramStatusActive,
		Commission: models.CommissionStructure{
			Type:        models.CommissionTypePercentage,
			PrimaryRate: 10,
			Currency:    "USD",
		},
	}
}

func TestCreateProgramDefaultsMinimumPayout(t *testing.T) {
	repo := newFakeProgramRepo()
	svc := NewProgramService(repo, testLogger())

	program := validProgram()
	require.NoError(t, svc.CreateProgram(context.Background(), program))

	assert.Equal(t, utils.DefaultMinimumPayout, program.Commission.MinimumPayout)
	assert.Len(t, repo.programs, 1)
}

func TestCreateProgramRejectsMissingName(t *testing.T) {
	svc := NewProgramService(newFakeProgramRepo(), testLogger())

	program := validProgram()
	program.Name = ""

	err := svc.CreateProgram(context.Background(), program)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateProgramRejectsRateOverHundred(t *testing.T) {
	svc := NewProgramService(newFakeProgramRepo(), testLogger())

	program := validProgram()
	program.Commission.PrimaryRate = 150

	err := svc.CreateProgram(context.Background(), program)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateProgramAllowsLargeFixedRate(t *testing.T) {
	svc := NewProgramService(newFakeProgramRepo(), testLogger())

	program := validProgram()
	program.Commission.Type = models.CommissionTypeFixed
	program.Commission.PrimaryRate = 500

	assert.NoError(t, svc.CreateProgram(context.Background(), program))
}

func TestSetProgramStatusEndedIsTerminal(t *testing.T) {
	repo := newFakeProgramRepo()
	svc := NewProgramService(repo, testLogger())

	program := repo.add(&models.ReferralProgram{Status: models.ProgramStatusEnded})

	err := svc.SetProgramStatus(context.Background(), program.ID, models.ProgramStatusActive)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSetProgramStatusPauseAndResume(t *testing.T) {
	repo := newFakeProgramRepo()
	svc := NewProgramService(repo, testLogger())

	program := repo.add(&models.ReferralProgram{Status: models.ProgramStatusActive})

	require.NoError(t, svc.SetProgramStatus(context.Background(), program.ID, models.ProgramStatusPaused))
	assert.Equal(t, models.ProgramStatusPaused, program.Status)

	require.NoError(t, svc.SetProgramStatus(context.Background(), program.ID, models.ProgramStatusActive))
	assert.Equal(t, models.ProgramStatusActive, program.Status)
}
