package services

import (
	"context"
	"errors"
	"testing"

	"github.com/emre/learnhub/internal/app/models"
	"github.com/emre/learnhub/internal/app/models/dto"
	"github.com/emre/learnhub/internal/pkg/apperrors"
)

func TestBuildSummary(t *testing.T) {
	items := []models.CartItem{
		{Title: "Go Basics", Price: 4999, PointsPrice: 500, PointsEarn: 50},
		{Title: "SQL Deep Dive", Price: 2999, PointsPrice: 300, PointsEarn: 30},
	}

	summary := BuildSummary(items, 1000)

	if summary.TotalPrice != 7998 {
		t.Fatalf("TotalPrice = %d, want 7998", summary.TotalPrice)
	}
	if summary.FinalPrice != 6998 {
		t.Fatalf("FinalPrice = %d, want 6998", summary.FinalPrice)
	}
	if summary.PointsPrice != 800 {
		t.Fatalf("PointsPrice = %d, want 800", summary.PointsPrice)
	}
	if summary.PointsToEarn != 80 {
		t.Fatalf("PointsToEarn = %d, want 80", summary.PointsToEarn)
	}
}

// The discount applies to the money total only; points totals come out
// the same whether or not a discount is present.
func TestBuildSummary_DiscountLeavesPointsAlone(t *testing.T) {
	items := []models.CartItem{
		{Price: 100, PointsPrice: 900, PointsEarn: 10},
	}

	withDiscount := BuildSummary(items, 20)
	without := BuildSummary(items, 0)

	if withDiscount.FinalPrice != 80 {
		t.Fatalf("FinalPrice = %d, want 80", withDiscount.FinalPrice)
	}
	if withDiscount.PointsPrice != without.PointsPrice {
		t.Fatalf("PointsPrice changed with discount: %d vs %d", withDiscount.PointsPrice, without.PointsPrice)
	}
	if withDiscount.PointsToEarn != without.PointsToEarn {
		t.Fatalf("PointsToEarn changed with discount: %d vs %d", withDiscount.PointsToEarn, without.PointsToEarn)
	}
}

func TestBuildSummary_DiscountClampsAtZero(t *testing.T) {
	items := []models.CartItem{{Price: 500}}

	summary := BuildSummary(items, 800)

	if summary.FinalPrice != 0 {
		t.Fatalf("FinalPrice = %d, want 0", summary.FinalPrice)
	}
}

func TestBuildSummary_EmptyCart(t *testing.T) {
	summary := BuildSummary(nil, 0)

	if summary.TotalPrice != 0 || summary.FinalPrice != 0 || summary.PointsToEarn != 0 {
		t.Fatalf("unexpected summary for empty cart: %+v", summary)
	}
}

// Role and shape checks run before any storage access; the zero-value
// service panics if AddItem reaches a repository.
func TestAddItem_NonStudentForbidden(t *testing.T) {
	s := &CartService{}
	courseID := int64(1)

	for _, role := range []models.RoleType{models.RoleTeacher, models.RoleAdmin} {
		user := &models.User{ID: 1, RoleType: role}
		_, err := s.AddItem(context.Background(), user, &dto.AddCartItemRequest{CourseID: &courseID})
		if !errors.Is(err, apperrors.ErrPermissionDenied) {
			t.Fatalf("role %s: error = %v, want permission denied", role, err)
		}
	}
}

func TestAddItem_RequiresExactlyOneTarget(t *testing.T) {
	s := &CartService{}
	user := &models.User{ID: 1, RoleType: models.RoleStudent}
	courseID := int64(1)
	bundleID := int64(2)

	_, err := s.AddItem(context.Background(), user, &dto.AddCartItemRequest{})
	if !errors.Is(err, apperrors.ErrBadRequest) {
		t.Fatalf("neither target: error = %v, want bad request", err)
	}

	_, err = s.AddItem(context.Background(), user, &dto.AddCartItemRequest{CourseID: &courseID, BundleID: &bundleID})
	if !errors.Is(err, apperrors.ErrBadRequest) {
		t.Fatalf("both targets: error = %v, want bad request", err)
	}
}
