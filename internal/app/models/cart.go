package models

import (
	"time"
)

// CartItem is one purchasable entry in a user's cart. Exactly one of
// CourseID or BundleID is set.
type CartItem struct {
	ID          int64     `json:"id" db:"id"`
	UserID      int64     `json:"userId" db:"user_id"`
	CourseID    *int64    `json:"courseId,omitempty" db:"course_id"`
	BundleID    *int64    `json:"bundleId,omitempty" db:"bundle_id"`
	Title       string    `json:"title" db:"title"`
	Price       int64     `json:"price" db:"price"` // cents
	PointsPrice int64     `json:"pointsPrice" db:"points_price"`
	PointsEarn  int64     `json:"pointsEarn" db:"points_earn"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// CartSummary is the receipt breakdown derived from the cart contents.
type CartSummary struct {
	Items        []CartItem `json:"items"`
	TotalPrice   int64      `json:"totalPrice"`
	Discount     int64      `json:"discount"`
	FinalPrice   int64      `json:"finalPrice"`
	PointsPrice  int64      `json:"pointsPrice"`
	PointsToEarn int64      `json:"pointsToEarn"`
}
