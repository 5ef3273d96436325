package services

import (
	"context"

	"mewayz/internal/models"
	"mewayz/internal/repositories/interfaces"
	"mewayz/internal/utils"
	"mewayz/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProgramService interface {
	CreateProgram(ctx context.Context, program *models.ReferralProgram) error
	GetProgram(ctx context.Context, id primitive.ObjectID) (*models.ReferralProgram, error)
	UpdateProgram(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	ListPrograms(ctx context.Context, workspaceID primitive.ObjectID, params *utils.PaginationParams) ([]*models.ReferralProgram, int64, error)
	SetProgramStatus(ctx context.Context, id primitive.ObjectID, status models.ProgramStatus) error
}

type programService struct {
	programRepo interfaces.ProgramRepository
	logger      *logger.Logger
}

func NewProgramService(programRepo interfaces.ProgramRepository, log *logger.Logger) ProgramService {
	return &programService{
		programRepo: programRepo,
		logger:      log,
	}
}

func (s *programService) CreateProgram(ctx context.Context, program *models.ReferralProgram) error {
	if err := utils.ValidateStruct(program); err != nil {
		return wrapKind(ErrInvalidInput, err)
	}

	if program.Commission.Type == models.CommissionTypePercentage && program.Commission.PrimaryRate > utils.MaxCommissionRate {
		return wrapKind(ErrInvalidInput, errRateTooHigh)
	}

	if program.Commission.MinimumPayout <= 0 {
		program.Commission.MinimumPayout = utils.DefaultMinimumPayout
	}

	if err := s.programRepo.Create(ctx, program); err != nil {
		return err
	}

	s.logger.WithProgramID(program.ID).WithField("name", program.Name).Info("referral program created")

	return nil
}

func (s *programService) GetProgram(ctx context.Context, id primitive.ObjectID) (*models.ReferralProgram, error) {
	program, err := s.programRepo.GetByID(ctx, id)
	if err != nil {
		if err == interfaces.ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return program, nil
}

func (s *programService) UpdateProgram(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	if _, err := s.GetProgram(ctx, id); err != nil {
		return err
	}

	return s.programRepo.Update(ctx, id, updates)
}

func (s *programService) ListPrograms(ctx context.Context, workspaceID primitive.ObjectID, params *utils.PaginationParams) ([]*models.ReferralProgram, int64, error) {
	return s.programRepo.List(ctx, workspaceID, params)
}

func (s *programService) SetProgramStatus(ctx context.Context, id primitive.ObjectID, status models.ProgramStatus) error {
	program, err := s.GetProgram(ctx, id)
	if err != nil {
		return err
	}

	// Ended programs stay ended.
	if program.Status == models.ProgramStatusEnded {
		return wrapKind(ErrInvalidInput, errProgramEnded)
	}

	if err := s.programRepo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	s.logger.WithProgramID(id).WithField("status", status).Info("referral program status changed")

	return nil
}
