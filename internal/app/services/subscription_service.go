package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/emre/learnhub/internal/app/models"
	"github.com/emre/learnhub/internal/app/models/dto"
	"github.com/emre/learnhub/internal/app/repositories"
	"github.com/emre/learnhub/internal/pkg/apperrors"
	"github.com/emre/learnhub/internal/pkg/payment"
)

// SubscriptionService handles plans, subscriptions and bundles
type SubscriptionService struct {
	subscriptionRepo *repositories.SubscriptionRepository
	paymentClient    *payment.Client
	logger           zerolog.Logger
}

// NewSubscriptionService creates a new SubscriptionService
func NewSubscriptionService(
	subscriptionRepo *repositories.SubscriptionRepository,
	paymentClient *payment.Client,
	logger zerolog.Logger,
) *SubscriptionService {
	return &SubscriptionService{
		subscriptionRepo: subscriptionRepo,
		paymentClient:    paymentClient,
		logger:           logger,
	}
}

// ListPlans retrieves the purchasable subscription plans
func (s *SubscriptionService) ListPlans(ctx context.Context) ([]*models.SubscriptionPlan, error) {
	return s.subscriptionRepo.ListPlans(ctx)
}

// Subscribe charges the plan price and opens a subscription period
func (s *SubscriptionService) Subscribe(ctx context.Context, userID int64, req *dto.SubscribeRequest) (*models.Subscription, error) {
	plan, err := s.subscriptionRepo.GetPlan(ctx, req.PlanID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlanNotFound) {
			return nil, apperrors.ErrPlanNotFound
		}
		return nil, fmt.Errorf("error retrieving plan: %w", err)
	}
	if !plan.IsActive {
		return nil, apperrors.ErrPlanNotFound
	}

	intent, err := s.paymentClient.CreateIntent(ctx, plan.Price, req.PaymentMethodID, "subscription "+plan.Name)
	if err != nil {
		if errors.Is(err, payment.ErrDeclined) {
			return nil, apperrors.ErrPaymentFailed
		}
		return nil, fmt.Errorf("payment gateway error: %w", err)
	}

	now := time.Now()
	sub := &models.Subscription{
		UserID:    userID,
		PlanID:    plan.ID,
		StartsAt:  now,
		EndsAt:    now.AddDate(0, plan.PeriodMonths, 0),
		AutoRenew: req.AutoRenew,
	}

	if err := s.subscriptionRepo.Subscribe(ctx, sub); err != nil {
		if errors.Is(err, repositories.ErrAlreadySubscribed) {
			return nil, apperrors.ErrAlreadySubscribed
		}
		s.logger.Error().Err(err).Int64("userId", userID).Str("intentId", intent.ID).
			Msg("Charge succeeded but subscription creation failed")
		return nil, fmt.Errorf("error creating subscription: %w", err)
	}

	sub.Plan = plan
	s.logger.Info().Int64("userId", userID).Int64("planId", plan.ID).Msg("Subscription started")
	return sub, nil
}

// GetActive retrieves the user's current subscription
func (s *SubscriptionService) GetActive(ctx context.Context, userID int64) (*models.Subscription, error) {
	sub, err := s.subscriptionRepo.GetActiveByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrSubscriptionNotFound) {
			return nil, apperrors.ErrNoSubscription
		}
		return nil, fmt.Errorf("error retrieving subscription: %w", err)
	}
	return sub, nil
}

// Cancel stops renewal of the user's subscription. Access keeps running
// until the period ends.
func (s *SubscriptionService) Cancel(ctx context.Context, userID int64) error {
	if err := s.subscriptionRepo.Cancel(ctx, userID, time.Now()); err != nil {
		if errors.Is(err, repositories.ErrSubscriptionNotFound) {
			return apperrors.ErrNoSubscription
		}
		return fmt.Errorf("error canceling subscription: %w", err)
	}

	s.logger.Info().Int64("userId", userID).Msg("Subscription canceled")
	return nil
}

// ListBundles retrieves the purchasable course bundles
func (s *SubscriptionService) ListBundles(ctx context.Context) ([]*models.Bundle, error) {
	return s.subscriptionRepo.ListBundles(ctx)
}

// GetBundle retrieves a bundle with its courses
func (s *SubscriptionService) GetBundle(ctx context.Context, id int64) (*models.Bundle, error) {
	bundle, err := s.subscriptionRepo.GetBundle(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrBundleNotFound) {
			return nil, apperrors.ErrBundleNotFound
		}
		return nil, fmt.Errorf("error retrieving bundle: %w", err)
	}
	return bundle, nil
}

// CreateBundle creates a course bundle. Admin only; the route guard enforces
// the role, the service validates the contents.
func (s *SubscriptionService) CreateBundle(ctx context.Context, req *dto.CreateBundleRequest) (*models.Bundle, error) {
	bundle := &models.Bundle{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		PointsPrice: req.PointsPrice,
		Discount:    req.Discount,
		IsActive:    true,
	}

	if err := s.subscriptionRepo.CreateBundle(ctx, bundle, req.CourseIDs); err != nil {
		return nil, fmt.Errorf("error creating bundle: %w", err)
	}

	s.logger.Info().Int64("bundleId", bundle.ID).Int("courses", len(req.CourseIDs)).Msg("Bundle created")
	return bundle, nil
}
