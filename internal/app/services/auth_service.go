package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/emre/learnhub/internal/app/models"
	"github.com/emre/learnhub/internal/app/models/dto"
	"github.com/emre/learnhub/internal/app/repositories"
	"github.com/emre/learnhub/internal/pkg/apperrors"
	"github.com/emre/learnhub/internal/pkg/auth"
)

// AuthService handles registration, login and token rotation
type AuthService struct {
	userRepo   *repositories.UserRepository
	tokenRepo  *repositories.TokenRepository
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo *repositories.UserRepository,
	tokenRepo *repositories.TokenRepository,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Register creates a student or teacher account and signs them in
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if req.RoleType != models.RoleStudent && req.RoleType != models.RoleTeacher {
		return nil, apperrors.NewBadRequestError("only student and teacher accounts can self-register")
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Email:     email,
		Password:  hashedPassword,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		RoleType:  req.RoleType,
		IsActive:  true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrEmailAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("user creation error: %w", err)
	}

	s.logger.Info().Int64("userId", user.ID).Str("role", string(user.RoleType)).Msg("User registered")

	return s.buildAuthResponse(ctx, user)
}

// Login authenticates a user by email and password
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn().Err(err).Int64("userId", user.ID).Msg("Could not update last login")
	}

	return s.buildAuthResponse(ctx, user)
}

// RefreshToken rotates a refresh token into a fresh token pair.
// The presented token is revoked whether or not rotation succeeds downstream.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, apperrors.ErrTokenInvalid
	}

	stored, err := s.tokenRepo.Get(ctx, refreshToken)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrTokenNotFound):
			return nil, apperrors.ErrTokenNotFound
		case errors.Is(err, repositories.ErrTokenExpired):
			return nil, apperrors.ErrTokenExpired
		case errors.Is(err, repositories.ErrTokenRevoked):
			return nil, apperrors.ErrTokenRevoked
		}
		return nil, fmt.Errorf("token validation error: %w", err)
	}

	user, err := s.userRepo.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.tokenRepo.Revoke(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("error revoking token: %w", err)
	}

	return s.buildAuthResponse(ctx, user)
}

// Logout revokes all of the user's refresh tokens
func (s *AuthService) Logout(ctx context.Context, userID int64) error {
	if err := s.tokenRepo.RevokeAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("error revoking tokens: %w", err)
	}

	// Opportunistic housekeeping; losing the cleanup does not fail the logout
	if deleted, err := s.tokenRepo.DeleteExpired(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("Could not delete expired refresh tokens")
	} else if deleted > 0 {
		s.logger.Debug().Int64("deleted", deleted).Msg("Expired refresh tokens removed")
	}

	return nil
}

// GetProfile retrieves the authenticated user's profile
func (s *AuthService) GetProfile(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	resp := dto.FromUser(user)
	return &resp, nil
}

// UpdateProfile updates the authenticated user's name and email
func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email != user.Email {
		exists, err := s.userRepo.EmailExists(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("error checking email: %w", err)
		}
		if exists {
			return nil, apperrors.ErrEmailAlreadyExists
		}
	}

	user.Email = email
	user.FirstName = req.FirstName
	user.LastName = req.LastName

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, fmt.Errorf("error updating profile: %w", err)
	}

	resp := dto.FromUser(user)
	return &resp, nil
}

// buildAuthResponse generates a token pair, persists the refresh token and
// bundles it with the user payload.
func (s *AuthService) buildAuthResponse(ctx context.Context, user *models.User) (*dto.AuthResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("token generation error: %w", err)
	}

	if err := s.tokenRepo.Store(ctx, user.ID, refreshToken, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, fmt.Errorf("token saving error: %w", err)
	}

	return &dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken:           accessToken,
			TokenType:             "Bearer",
			ExpiresIn:             expiresIn,
			RefreshToken:          refreshToken,
			RefreshTokenExpiresIn: refreshExpiresIn,
		},
		User: dto.FromUser(user),
	}, nil
}
