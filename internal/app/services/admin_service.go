package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/emre/learnhub/internal/app/models"
	"github.com/emre/learnhub/internal/app/models/dto"
	"github.com/emre/learnhub/internal/app/repositories"
	"github.com/emre/learnhub/internal/pkg/apperrors"
)

// AdminService handles the dashboard aggregates and user administration
type AdminService struct {
	statsRepo *repositories.StatsRepository
	userRepo  *repositories.UserRepository
	logger    zerolog.Logger
}

// NewAdminService creates a new AdminService
func NewAdminService(
	statsRepo *repositories.StatsRepository,
	userRepo *repositories.UserRepository,
	logger zerolog.Logger,
) *AdminService {
	return &AdminService{
		statsRepo: statsRepo,
		userRepo:  userRepo,
		logger:    logger,
	}
}

// UserGrowth returns the signup series for the requested period.
// An unknown period falls back to MONTH.
func (s *AdminService) UserGrowth(ctx context.Context, period models.GrowthPeriod) ([]dto.GrowthPoint, error) {
	if !models.ValidGrowthPeriod(period) {
		period = models.GrowthPeriodMonth
	}
	return s.statsRepo.UserGrowth(ctx, period)
}

// CoursePerformance returns the top courses by enrollment
func (s *AdminService) CoursePerformance(ctx context.Context, limit int) ([]dto.CoursePerformance, error) {
	return s.statsRepo.CoursePerformance(ctx, limit)
}

// PlatformStats returns the headline numbers for the statistics table
func (s *AdminService) PlatformStats(ctx context.Context) (*dto.PlatformStats, error) {
	return s.statsRepo.PlatformStats(ctx)
}

// ListUsers retrieves all accounts, paginated
func (s *AdminService) ListUsers(ctx context.Context, offset uint64, limit int) ([]*models.User, int64, error) {
	return s.userRepo.List(ctx, offset, limit)
}

// SetUserActive enables or disables an account. Disabling revokes nothing
// by itself; the next token refresh is where a disabled account is cut off.
func (s *AdminService) SetUserActive(ctx context.Context, userID int64, active bool) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("error retrieving user: %w", err)
	}

	if user.RoleType == models.RoleAdmin {
		return apperrors.NewForbiddenError("admin accounts cannot be deactivated")
	}

	if err := s.userRepo.SetActive(ctx, userID, active); err != nil {
		return fmt.Errorf("error updating user state: %w", err)
	}

	s.logger.Info().Int64("userId", userID).Bool("active", active).Msg("User state changed")
	return nil
}
