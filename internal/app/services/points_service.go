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
	"github.com/emre/learnhub/internal/pkg/payment"
)

// PointsService handles the points balance, ledger and package purchases
type PointsService struct {
	pointsRepo    *repositories.PointsRepository
	purchaseRepo  *repositories.PurchaseRepository
	userRepo      *repositories.UserRepository
	paymentClient *payment.Client
	logger        zerolog.Logger
}

// NewPointsService creates a new PointsService
func NewPointsService(
	pointsRepo *repositories.PointsRepository,
	purchaseRepo *repositories.PurchaseRepository,
	userRepo *repositories.UserRepository,
	paymentClient *payment.Client,
	logger zerolog.Logger,
) *PointsService {
	return &PointsService{
		pointsRepo:    pointsRepo,
		purchaseRepo:  purchaseRepo,
		userRepo:      userRepo,
		paymentClient: paymentClient,
		logger:        logger,
	}
}

// GetBalance retrieves the user's current points balance
func (s *PointsService) GetBalance(ctx context.Context, userID int64) (*dto.BalanceResponse, error) {
	balance, err := s.userRepo.GetPointsBalance(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving balance: %w", err)
	}

	return &dto.BalanceResponse{Balance: balance}, nil
}

// ListTransactions retrieves the user's points ledger, newest first
func (s *PointsService) ListTransactions(ctx context.Context, userID int64, offset uint64, limit int) ([]models.PointsTransaction, int64, error) {
	return s.pointsRepo.ListTransactions(ctx, userID, offset, limit)
}

// ListPackages retrieves the purchasable points packages
func (s *PointsService) ListPackages(ctx context.Context) ([]models.PointsPackage, error) {
	return s.pointsRepo.ListPackages(ctx)
}

// BuyPackage charges a points package to the card and credits the balance
func (s *PointsService) BuyPackage(ctx context.Context, userID int64, req *dto.BuyPointsPackageRequest) (*dto.BalanceResponse, error) {
	pkg, err := s.pointsRepo.GetPackage(ctx, req.PackageID)
	if err != nil {
		if errors.Is(err, repositories.ErrPackageNotFound) {
			return nil, apperrors.ErrPackageNotFound
		}
		return nil, fmt.Errorf("error retrieving package: %w", err)
	}

	intent, err := s.paymentClient.CreateIntent(ctx, pkg.Price, req.PaymentMethodID, "points package "+pkg.Name)
	if err != nil {
		if errors.Is(err, payment.ErrDeclined) {
			return nil, apperrors.ErrPaymentFailed
		}
		return nil, fmt.Errorf("payment gateway error: %w", err)
	}

	if err := s.purchaseRepo.CreditPoints(ctx, userID, pkg.Points, "Purchased package: "+pkg.Name); err != nil {
		s.logger.Error().Err(err).Int64("userId", userID).Str("intentId", intent.ID).
			Msg("Charge succeeded but points credit failed")
		return nil, fmt.Errorf("error crediting points: %w", err)
	}

	balance, err := s.userRepo.GetPointsBalance(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving balance: %w", err)
	}

	s.logger.Info().Int64("userId", userID).Int64("points", pkg.Points).Msg("Points package purchased")
	return &dto.BalanceResponse{Balance: balance}, nil
}
