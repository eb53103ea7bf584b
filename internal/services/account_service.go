package services

import (
	"context"
	"errors"
	"fmt"

	"streaming-backend/internal/apperrors"
	"streaming-backend/internal/models"
	"streaming-backend/internal/repository"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RegisterInput holds the fields accepted by user registration.
type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	PasswordConfirm string
	FirstName       string
	LastName        string
}

// ProfileUpdateInput holds a partial profile update; nil fields keep their
// prior values.
type ProfileUpdateInput struct {
	Avatar            *string
	DateOfBirth       *string
	PreferredLanguage *string
}

type AccountService interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	Login(ctx context.Context, login, password string) (string, *models.User, error)
	GetUser(ctx context.Context, userID uint) (*models.User, error)
	GetProfile(ctx context.Context, userID uint) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, userID uint, input ProfileUpdateInput) (*models.UserProfile, error)
}

type accountService struct {
	userRepo repository.UserRepository
	tokens   *TokenService
	media    *MinIOService
	logger   *logrus.Logger
}

func NewAccountService(userRepo repository.UserRepository, tokens *TokenService, logger *logrus.Logger) AccountService {
	return &accountService{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger,
	}
}

// SetMediaStore enables cleanup of replaced avatar objects.
func (s *accountService) SetMediaStore(media *MinIOService) {
	s.media = media
}

// Register validates the input, hashes the password, and creates the user
// together with an empty profile in one transaction. Nothing is written when
// validation fails.
func (s *accountService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	if input.Username == "" {
		return nil, apperrors.Validation("Username is required")
	}
	if input.Email == "" {
		return nil, apperrors.Validation("Email is required")
	}
	if input.Password == "" {
		return nil, apperrors.Validation("Password is required")
	}
	if input.Password != input.PasswordConfirm {
		return nil, apperrors.Validation("Passwords do not match")
	}

	existing, err := s.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.Conflict("Username is already taken")
	}

	existing, err = s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.Conflict("Email is already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
	}

	if err := s.userRepo.CreateWithProfile(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("Username or email is already registered")
		}
		return nil, err
	}

	s.logger.WithField("username", user.Username).Info("User registered")
	return user, nil
}

// Login accepts a username or email. Failures share one generic message so
// account existence cannot be probed.
func (s *accountService) Login(ctx context.Context, login, password string) (string, *models.User, error) {
	if login == "" || password == "" {
		return "", nil, apperrors.Validation("Username and password are required")
	}

	user, err := s.userRepo.FindByUsername(ctx, login)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		user, err = s.userRepo.FindByEmail(ctx, login)
		if err != nil {
			return "", nil, err
		}
	}
	if user == nil {
		return "", nil, apperrors.Unauthorized("Invalid login credentials")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, apperrors.Unauthorized("Invalid login credentials")
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *accountService) GetUser(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NotFound("User not found")
	}
	return user, nil
}

func (s *accountService) GetProfile(ctx context.Context, userID uint) (*models.UserProfile, error) {
	profile, err := s.userRepo.FindProfileByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperrors.NotFound("Profile not found")
	}
	return profile, nil
}

func (s *accountService) UpdateProfile(ctx context.Context, userID uint, input ProfileUpdateInput) (*models.UserProfile, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Avatar != nil {
		if s.media != nil && profile.AvatarPath != "" && profile.AvatarPath != *input.Avatar {
			if err := s.media.DeleteObject(profile.AvatarPath); err != nil {
				s.logger.WithError(err).Warn("Failed to delete replaced avatar")
			}
		}
		profile.AvatarPath = *input.Avatar
	}
	if input.DateOfBirth != nil {
		profile.DateOfBirth = *input.DateOfBirth
	}
	if input.PreferredLanguage != nil {
		profile.PreferredLanguage = *input.PreferredLanguage
	}

	if err := s.userRepo.UpdateProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}
