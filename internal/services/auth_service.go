package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/careslot/appointment-service/internal/auth"
	"github.com/careslot/appointment-service/internal/models"
	"github.com/careslot/appointment-service/internal/repositories"
	"github.com/careslot/appointment-service/internal/utils"
	"github.com/careslot/appointment-service/internal/validator"
)

type authService struct {
	repo      repositories.Repository
	logger    utils.Logger
	validator *validator.Validator
	jwtSecret string
	jwtTTL    time.Duration
}

func NewAuthService(repo repositories.Repository, logger utils.Logger, validator *validator.Validator, jwtSecret string, jwtTTL time.Duration) AuthService {
	return &authService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		jwtSecret: jwtSecret,
		jwtTTL:    jwtTTL,
	}
}

func (s *authService) Register(ctx context.Context, req *RegisterRequest) (*models.UserResponse, error) {
	if errs := s.validator.GetBusinessValidator().ValidateRegister(req); len(errs) > 0 {
		return nil, errs
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         req.Role,
	}
	if req.Role == models.RoleDoctor {
		user.Specialization = req.Specialization
	}

	// Exists-check and insert share one transaction; the unique index still
	// backstops a registration racing in from another connection.
	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		exists, err := tx.User().ExistsByEmail(ctx, req.Email)
		if err != nil {
			return fmt.Errorf("failed to check email: %w", err)
		}
		if exists {
			return ErrEmailTaken
		}
		return tx.User().Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, ErrEmailTaken) || errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user registered", "user_id", user.ID, "role", user.Role)
	return user.ToResponse(), nil
}

func (s *authService) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	user, err := s.repo.User().GetByEmail(ctx, req.Email)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := auth.MakeToken(user, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	s.logger.Info("user logged in", "user_id", user.ID)
	return &LoginResponse{Token: token, User: user.ToResponse()}, nil
}

func (s *authService) Profile(ctx context.Context, userID string) (*models.UserResponse, error) {
	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user.ToResponse(), nil
}

func (s *authService) UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest) (*models.UserResponse, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.Email = req.Email
	// Specialization is a doctor-only field; silently ignored for others.
	if user.Role == models.RoleDoctor && req.Specialization != nil {
		user.Specialization = req.Specialization
	}

	if err := s.repo.User().Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user.ToResponse(), nil
}
