package models

import (
	"time"
)

// SubscriptionPlan is catalog metadata for a recurring plan.
type SubscriptionPlan struct {
	ID           int64  `json:"id" db:"id"`
	Name         string `json:"name" db:"name"`
	Description  *string `json:"description,omitempty" db:"description"`
	Price        int64  `json:"price" db:"price"` // cents per period
	PeriodMonths int    `json:"periodMonths" db:"period_months"`
	IsActive     bool   `json:"isActive" db:"is_active"`
}

// Subscription is a user's purchased plan instance.
type Subscription struct {
	ID         int64      `json:"id" db:"id"`
	UserID     int64      `json:"userId" db:"user_id"`
	PlanID     int64      `json:"planId" db:"plan_id"`
	StartsAt   time.Time  `json:"startsAt" db:"starts_at"`
	EndsAt     time.Time  `json:"endsAt" db:"ends_at"`
	AutoRenew  bool       `json:"autoRenew" db:"auto_renew"`
	CanceledAt *time.Time `json:"canceledAt,omitempty" db:"canceled_at"`

	// Relation (populated when needed)
	Plan *SubscriptionPlan `json:"plan,omitempty"`
}

// Bundle is a discounted grouping of courses sold as one purchasable unit.
// Like Course it always carries both prices.
type Bundle struct {
	ID          int64   `json:"id" db:"id"`
	Name        string  `json:"name" db:"name"`
	Description *string `json:"description,omitempty" db:"description"`
	Price       int64   `json:"price" db:"price"` // cents
	PointsPrice int64   `json:"pointsPrice" db:"points_price"`
	Discount    int64   `json:"discount" db:"discount"` // cents off the summed course prices
	IsActive    bool    `json:"isActive" db:"is_active"`

	// CourseCount is derived from bundle_courses, not stored.
	CourseCount int64 `json:"courseCount"`

	// Relation (populated when needed)
	Courses []Course `json:"courses,omitempty"`
}
