package services

import (
	"context"
	"fmt"

	"mewayz/internal/config"
	"mewayz/internal/models"
	"mewayz/internal/repositories/interfaces"
	"mewayz/internal/utils"
	"mewayz/pkg/logger"
	"mewayz/pkg/oauth"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type RegisterInput struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Category  string `json:"category"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResult struct {
	User   *models.User     `json:"user"`
	Tokens *utils.TokenPair `json:"tokens"`
}

type AuthService interface {
	Register(ctx context.Context, input *RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, input *LoginInput, ip string) (*AuthResult, error)
	GoogleAuthURL(state string) string
	GoogleLogin(ctx context.Context, code, ip string) (*AuthResult, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*utils.TokenPair, error)
	RegisterDevice(ctx context.Context, userID primitive.ObjectID, token, platform string) error
}

type authService struct {
	userRepo  interfaces.UserRepository
	google    oauth.Provider
	jwtSecret string
	logger    *logger.Logger
}

func NewAuthService(userRepo interfaces.UserRepository, google oauth.Provider, cfg *config.Config, log *logger.Logger) AuthService {
	return &authService{
		userRepo:  userRepo,
		google:    google,
		jwtSecret: cfg.Security.JWTSecret,
		logger:    log,
	}
}

func (s *authService) Register(ctx context.Context, input *RegisterInput) (*AuthResult, error) {
	if err := utils.ValidatePasswordStrength(input.Password); err != nil {
		return nil, wrapKind(ErrInvalidInput, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        input.Email,
		PasswordHash: string(hash),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Phone:        input.Phone,
		Category:     input.Category,
		UserType:     models.UserTypeMember,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if err == interfaces.ErrDuplicateEmail {
			return nil, wrapKind(ErrDuplicateResource, fmt.Errorf("email already registered"))
		}
		return nil, err
	}

	s.logger.WithUserID(user.ID).WithField("event", utils.EventUserRegistered).Info("user registered")

	return s.issueTokens(user)
}

func (s *authService) Login(ctx context.Context, input *LoginInput, ip string) (*AuthResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if err == interfaces.ErrNotFound {
			return nil, wrapKind(ErrInvalidInput, fmt.Errorf(utils.ErrInvalidCredentials))
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, wrapKind(ErrInvalidInput, fmt.Errorf(utils.ErrInvalidCredentials))
	}

	if user.Status != models.UserStatusActive {
		return nil, wrapKind(ErrIneligible, fmt.Errorf("account is %s", user.Status))
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, ip); err != nil {
		s.logger.WithError(err).Warn("failed to record login")
	}

	return s.issueTokens(user)
}

func (s *authService) GoogleAuthURL(state string) string {
	if s.google == nil {
		return ""
	}
	return s.google.GetAuthURL(state)
}

// GoogleLogin exchanges the OAuth code and signs the user in, creating the
// account on first sight.
func (s *authService) GoogleLogin(ctx context.Context, code, ip string) (*AuthResult, error) {
	if s.google == nil {
		return nil, wrapKind(ErrUnavailable, fmt.Errorf("google sign-in is not configured"))
	}

	token, err := s.google.ExchangeCode(ctx, code)
	if err != nil {
		return nil, wrapKind(ErrInvalidInput, err)
	}

	info, err := s.google.GetUserInfo(ctx, token.AccessToken)
	if err != nil {
		return nil, wrapKind(ErrUnavailable, err)
	}

	user, err := s.userRepo.GetByGoogleID(ctx, info.ID)
	if err == interfaces.ErrNotFound {
		user, err = s.userRepo.GetByEmail(ctx, info.Email)
		if err == interfaces.ErrNotFound {
			user = &models.User{
				Email:     info.Email,
				FirstName: info.FirstName,
				LastName:  info.LastName,
				GoogleID:  info.ID,
				UserType:  models.UserTypeMember,
			}
			if createErr := s.userRepo.Create(ctx, user); createErr != nil {
				return nil, createErr
			}
		} else if err != nil {
			return nil, err
		} else {
			// Existing email account picks up the Google identity.
			if linkErr := s.userRepo.Update(ctx, user.ID, map[string]interface{}{"google_id": info.ID}); linkErr != nil {
				return nil, linkErr
			}
		}
	} else if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, ip); err != nil {
		s.logger.WithError(err).Warn("failed to record login")
	}

	return s.issueTokens(user)
}

func (s *authService) RefreshTokens(ctx context.Context, refreshToken string) (*utils.TokenPair, error) {
	claims, err := utils.ValidateToken(refreshToken, s.jwtSecret)
	if err != nil {
		return nil, wrapKind(ErrInvalidInput, err)
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, wrapKind(ErrNotFound, err)
	}
	if user.Status != models.UserStatusActive {
		return nil, wrapKind(ErrIneligible, fmt.Errorf("account is %s", user.Status))
	}

	return utils.GenerateTokenPair(user.ID, string(user.UserType), user.Email, s.jwtSecret)
}

func (s *authService) RegisterDevice(ctx context.Context, userID primitive.ObjectID, token, platform string) error {
	if token == "" {
		return wrapKind(ErrInvalidInput, fmt.Errorf("device token is required"))
	}
	if platform != "fcm" && platform != "apns" {
		return wrapKind(ErrInvalidInput, fmt.Errorf("unknown platform %q", platform))
	}

	return s.userRepo.AddDeviceToken(ctx, userID, models.DeviceToken{Token: token, Platform: platform})
}

func (s *authService) issueTokens(user *models.User) (*AuthResult, error) {
	tokens, err := utils.GenerateTokenPair(user.ID, string(user.UserType), user.Email, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	return &AuthResult{User: user, Tokens: tokens}, nil
}
