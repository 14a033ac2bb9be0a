package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emre/learnhub/internal/app/models"
)

// Subscription error types
var (
	ErrPlanNotFound         = errors.New("subscription plan not found")
	ErrAlreadySubscribed    = errors.New("user already has an active subscription")
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrBundleNotFound       = errors.New("bundle not found")
)

// SubscriptionRepository handles database operations for plans, subscriptions
// and course bundles
type SubscriptionRepository struct {
	db *pgxpool.Pool
}

// NewSubscriptionRepository creates a new subscription repository
func NewSubscriptionRepository(db *pgxpool.Pool) *SubscriptionRepository {
	return &SubscriptionRepository{
		db: db,
	}
}

// ListPlans retrieves active plans ordered by price
func (r *SubscriptionRepository) ListPlans(ctx context.Context) ([]*models.SubscriptionPlan, error) {
	query := `
		SELECT id, name, description, price, period_months, is_active
		FROM subscription_plans
		WHERE is_active = TRUE
		ORDER BY price
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []*models.SubscriptionPlan
	for rows.Next() {
		var p models.SubscriptionPlan
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.PeriodMonths, &p.IsActive); err != nil {
			return nil, err
		}
		plans = append(plans, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return plans, nil
}

// GetPlan retrieves a plan by ID
func (r *SubscriptionRepository) GetPlan(ctx context.Context, id int64) (*models.SubscriptionPlan, error) {
	query := `
		SELECT id, name, description, price, period_months, is_active
		FROM subscription_plans
		WHERE id = $1
	`

	var p models.SubscriptionPlan
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.PeriodMonths, &p.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlanNotFound
		}
		return nil, fmt.Errorf("error retrieving plan: %w", err)
	}

	return &p, nil
}

// Subscribe creates a subscription unless the user already has an active one
func (r *SubscriptionRepository) Subscribe(ctx context.Context, sub *models.Subscription) error {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM subscriptions WHERE user_id = $1 AND canceled_at IS NULL AND ends_at > NOW())`,
		sub.UserID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("error checking active subscription: %w", err)
	}
	if exists {
		return ErrAlreadySubscribed
	}

	query := `
		INSERT INTO subscriptions (user_id, plan_id, starts_at, ends_at, auto_renew)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err = r.db.QueryRow(ctx, query,
		sub.UserID, sub.PlanID, sub.StartsAt, sub.EndsAt, sub.AutoRenew,
	).Scan(&sub.ID)
	if err != nil {
		return fmt.Errorf("error creating subscription: %w", err)
	}

	return nil
}

// GetActiveByUser retrieves the user's current subscription with its plan
func (r *SubscriptionRepository) GetActiveByUser(ctx context.Context, userID int64) (*models.Subscription, error) {
	query := `
		SELECT sub.id, sub.user_id, sub.plan_id, sub.starts_at, sub.ends_at,
			sub.auto_renew, sub.canceled_at,
			p.id, p.name, p.description, p.price, p.period_months, p.is_active
		FROM subscriptions sub
		JOIN subscription_plans p ON p.id = sub.plan_id
		WHERE sub.user_id = $1 AND sub.canceled_at IS NULL AND sub.ends_at > NOW()
		ORDER BY sub.ends_at DESC
		LIMIT 1
	`

	var s models.Subscription
	var p models.SubscriptionPlan
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&s.ID, &s.UserID, &s.PlanID, &s.StartsAt, &s.EndsAt,
		&s.AutoRenew, &s.CanceledAt,
		&p.ID, &p.Name, &p.Description, &p.Price, &p.PeriodMonths, &p.IsActive,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("error retrieving subscription: %w", err)
	}

	s.Plan = &p
	return &s, nil
}

// Cancel stamps the user's active subscription as canceled. Access keeps
// running until ends_at.
func (r *SubscriptionRepository) Cancel(ctx context.Context, userID int64, at time.Time) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE subscriptions
		SET canceled_at = $1, auto_renew = FALSE
		WHERE user_id = $2 AND canceled_at IS NULL AND ends_at > NOW()
	`, at, userID)
	if err != nil {
		return fmt.Errorf("error canceling subscription: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrSubscriptionNotFound
	}

	return nil
}

// ListBundles retrieves active bundles with their course count
func (r *SubscriptionRepository) ListBundles(ctx context.Context) ([]*models.Bundle, error) {
	query := `
		SELECT b.id, b.name, b.description, b.price, b.points_price, b.discount, b.is_active,
			COUNT(bc.course_id)
		FROM bundles b
		LEFT JOIN bundle_courses bc ON bc.bundle_id = b.id
		WHERE b.is_active = TRUE
		GROUP BY b.id
		ORDER BY b.name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bundles []*models.Bundle
	for rows.Next() {
		var b models.Bundle
		if err := rows.Scan(&b.ID, &b.Name, &b.Description, &b.Price, &b.PointsPrice,
			&b.Discount, &b.IsActive, &b.CourseCount); err != nil {
			return nil, err
		}
		bundles = append(bundles, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return bundles, nil
}

// GetBundle retrieves a bundle and its courses
func (r *SubscriptionRepository) GetBundle(ctx context.Context, id int64) (*models.Bundle, error) {
	query := `
		SELECT id, name, description, price, points_price, discount, is_active
		FROM bundles
		WHERE id = $1
	`

	var b models.Bundle
	err := r.db.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.Name, &b.Description, &b.Price, &b.PointsPrice, &b.Discount, &b.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBundleNotFound
		}
		return nil, fmt.Errorf("error retrieving bundle: %w", err)
	}

	courseQuery := `
		SELECT ` + courseColumns + `
		FROM courses c
		JOIN bundle_courses bc ON bc.course_id = c.id
		WHERE bc.bundle_id = $1
		ORDER BY c.title
	`

	rows, err := r.db.Query(ctx, courseQuery, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		b.Courses = append(b.Courses, *c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	b.CourseCount = int64(len(b.Courses))
	return &b, nil
}

// CreateBundle inserts a bundle and links its courses
func (r *SubscriptionRepository) CreateBundle(ctx context.Context, bundle *models.Bundle, courseIDs []int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO bundles (name, description, price, points_price, discount, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err = tx.QueryRow(ctx, query,
		bundle.Name, bundle.Description, bundle.Price, bundle.PointsPrice, bundle.Discount, bundle.IsActive,
	).Scan(&bundle.ID)
	if err != nil {
		return fmt.Errorf("error creating bundle: %w", err)
	}

	for _, courseID := range courseIDs {
		_, err := tx.Exec(ctx,
			`INSERT INTO bundle_courses (bundle_id, course_id) VALUES ($1, $2)`,
			bundle.ID, courseID)
		if err != nil {
			return fmt.Errorf("error linking bundle course: %w", err)
		}
	}

	bundle.CourseCount = int64(len(courseIDs))
	return tx.Commit(ctx)
}
