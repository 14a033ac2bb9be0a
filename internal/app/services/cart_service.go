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

// CartService handles the dual-currency cart and checkout
type CartService struct {
	cartRepo         *repositories.CartRepository
	purchaseRepo     *repositories.PurchaseRepository
	courseRepo       *repositories.CourseRepository
	subscriptionRepo *repositories.SubscriptionRepository
	enrollmentRepo   *repositories.EnrollmentRepository
	paymentClient    *payment.Client
	logger           zerolog.Logger
}

// NewCartService creates a new CartService
func NewCartService(
	cartRepo *repositories.CartRepository,
	purchaseRepo *repositories.PurchaseRepository,
	courseRepo *repositories.CourseRepository,
	subscriptionRepo *repositories.SubscriptionRepository,
	enrollmentRepo *repositories.EnrollmentRepository,
	paymentClient *payment.Client,
	logger zerolog.Logger,
) *CartService {
	return &CartService{
		cartRepo:         cartRepo,
		purchaseRepo:     purchaseRepo,
		courseRepo:       courseRepo,
		subscriptionRepo: subscriptionRepo,
		enrollmentRepo:   enrollmentRepo,
		paymentClient:    paymentClient,
		logger:           logger,
	}
}

// BuildSummary computes the receipt breakdown for a set of cart items.
// The money total and the points total are independent: the discount
// applies to money only and the final price never reflects points.
func BuildSummary(items []models.CartItem, discount int64) *models.CartSummary {
	summary := &models.CartSummary{
		Items:    items,
		Discount: discount,
	}

	for _, item := range items {
		summary.TotalPrice += item.Price
		summary.PointsPrice += item.PointsPrice
		summary.PointsToEarn += item.PointsEarn
	}

	summary.FinalPrice = summary.TotalPrice - summary.Discount
	if summary.FinalPrice < 0 {
		summary.FinalPrice = 0
	}

	return summary
}

// GetSummary retrieves the user's cart with computed totals
func (s *CartService) GetSummary(ctx context.Context, userID int64) (*models.CartSummary, error) {
	items, err := s.cartRepo.GetItems(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving cart: %w", err)
	}

	return BuildSummary(items, s.bundleDiscount(ctx, items)), nil
}

// bundleDiscount sums the discount carried by bundle items in the cart
func (s *CartService) bundleDiscount(ctx context.Context, items []models.CartItem) int64 {
	var discount int64
	for _, item := range items {
		if item.BundleID == nil {
			continue
		}
		bundle, err := s.subscriptionRepo.GetBundle(ctx, *item.BundleID)
		if err != nil {
			continue
		}
		discount += bundle.Discount
	}
	return discount
}

// AddItem puts a course or bundle in the cart. Teachers and admins do not
// buy content, so anyone but a student is turned away.
func (s *CartService) AddItem(ctx context.Context, user *models.User, req *dto.AddCartItemRequest) (*models.CartItem, error) {
	if user.RoleType != models.RoleStudent {
		return nil, apperrors.NewForbiddenError("only students can add items to the cart")
	}

	if (req.CourseID == nil) == (req.BundleID == nil) {
		return nil, apperrors.NewBadRequestError("exactly one of courseId or bundleId must be set")
	}

	item := &models.CartItem{UserID: user.ID}

	switch {
	case req.CourseID != nil:
		course, err := s.courseRepo.GetByID(ctx, *req.CourseID)
		if err != nil {
			if errors.Is(err, repositories.ErrCourseNotFound) {
				return nil, apperrors.ErrCourseNotFound
			}
			return nil, fmt.Errorf("error retrieving course: %w", err)
		}
		if !course.IsPublished {
			return nil, apperrors.ErrCourseNotFound
		}

		enrolled, err := s.enrollmentRepo.Exists(ctx, user.ID, course.ID)
		if err != nil {
			return nil, fmt.Errorf("error checking enrollment: %w", err)
		}
		if enrolled {
			return nil, apperrors.ErrAlreadyEnrolled
		}

		item.CourseID = &course.ID
		item.Title = course.Title
		item.Price = course.Price
		item.PointsPrice = course.PointsPrice
		item.PointsEarn = course.PointsReward

	case req.BundleID != nil:
		bundle, err := s.subscriptionRepo.GetBundle(ctx, *req.BundleID)
		if err != nil {
			if errors.Is(err, repositories.ErrBundleNotFound) {
				return nil, apperrors.ErrBundleNotFound
			}
			return nil, fmt.Errorf("error retrieving bundle: %w", err)
		}
		if !bundle.IsActive {
			return nil, apperrors.ErrBundleNotFound
		}

		item.BundleID = &bundle.ID
		item.Title = bundle.Name
		item.Price = bundle.Price
		item.PointsPrice = bundle.PointsPrice
		for _, course := range bundle.Courses {
			item.PointsEarn += course.PointsReward
		}
	}

	if err := s.cartRepo.AddItem(ctx, item); err != nil {
		if errors.Is(err, repositories.ErrAlreadyInCart) {
			return nil, apperrors.ErrAlreadyInCart
		}
		return nil, fmt.Errorf("error adding cart item: %w", err)
	}

	return item, nil
}

// RemoveItem deletes one entry from the user's cart
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID int64) error {
	if err := s.cartRepo.RemoveItem(ctx, userID, itemID); err != nil {
		if errors.Is(err, repositories.ErrCartItemNotFound) {
			return apperrors.ErrCartItemNotFound
		}
		return fmt.Errorf("error removing cart item: %w", err)
	}
	return nil
}

// Clear empties the user's cart
func (s *CartService) Clear(ctx context.Context, userID int64) error {
	if err := s.cartRepo.Clear(ctx, userID); err != nil {
		return fmt.Errorf("error clearing cart: %w", err)
	}
	return nil
}

// CheckoutWithPoints pays for the whole cart from the points balance.
// Enrollment, the balance update and the ledger entries commit together.
func (s *CartService) CheckoutWithPoints(ctx context.Context, userID int64) (*dto.CheckoutResponse, error) {
	items, err := s.cartRepo.GetItems(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving cart: %w", err)
	}
	if len(items) == 0 {
		return nil, apperrors.ErrCartEmpty
	}

	summary := BuildSummary(items, 0)

	courseIDs, err := s.purchaseRepo.FinalizeWithPoints(ctx, userID, items, summary.PointsPrice, summary.PointsToEarn)
	if err != nil {
		if errors.Is(err, repositories.ErrInsufficientPoints) {
			return nil, apperrors.ErrInsufficientPoints
		}
		return nil, fmt.Errorf("points checkout error: %w", err)
	}

	s.logger.Info().Int64("userId", userID).Int64("pointsSpent", summary.PointsPrice).
		Int("courses", len(courseIDs)).Msg("Points checkout completed")

	return &dto.CheckoutResponse{
		EnrolledCourseIDs: courseIDs,
		PointsEarned:      summary.PointsToEarn,
		PointsSpent:       summary.PointsPrice,
	}, nil
}

// CheckoutWithCard charges the discounted money total through the payment
// gateway, then finalizes enrollment. A declined charge leaves the cart
// untouched.
func (s *CartService) CheckoutWithCard(ctx context.Context, userID int64, req *dto.CheckoutCardRequest) (*dto.CheckoutResponse, error) {
	items, err := s.cartRepo.GetItems(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving cart: %w", err)
	}
	if len(items) == 0 {
		return nil, apperrors.ErrCartEmpty
	}

	summary := BuildSummary(items, s.bundleDiscount(ctx, items))

	intent, err := s.paymentClient.CreateIntent(ctx, summary.FinalPrice, req.PaymentMethodID, "cart checkout")
	if err != nil {
		if errors.Is(err, payment.ErrDeclined) {
			return nil, apperrors.ErrPaymentFailed
		}
		return nil, fmt.Errorf("payment gateway error: %w", err)
	}

	courseIDs, err := s.purchaseRepo.FinalizeWithCard(ctx, userID, items, summary.PointsToEarn)
	if err != nil {
		s.logger.Error().Err(err).Int64("userId", userID).Str("intentId", intent.ID).
			Msg("Charge succeeded but finalize failed")
		return nil, fmt.Errorf("card checkout error: %w", err)
	}

	s.logger.Info().Int64("userId", userID).Int64("amount", summary.FinalPrice).
		Int("courses", len(courseIDs)).Msg("Card checkout completed")

	return &dto.CheckoutResponse{
		EnrolledCourseIDs: courseIDs,
		PointsEarned:      summary.PointsToEarn,
		AmountCharged:     summary.FinalPrice,
		PaymentIntentID:   intent.ID,
	}, nil
}
