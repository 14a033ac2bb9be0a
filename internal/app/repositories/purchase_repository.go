package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emre/learnhub/internal/app/models"
)

// Purchase error types
var (
	ErrInsufficientPoints = errors.New("insufficient points balance")
)

// PurchaseRepository finalizes checkouts. Enrollment, points movement and
// cart clearing happen in a single transaction so a failure leaves nothing
// half-purchased.
type PurchaseRepository struct {
	db *pgxpool.Pool
}

// NewPurchaseRepository creates a new purchase repository
func NewPurchaseRepository(db *pgxpool.Pool) *PurchaseRepository {
	return &PurchaseRepository{
		db: db,
	}
}

// FinalizeWithPoints completes a points checkout: locks the user row,
// verifies the balance covers the points price, debits it, enrolls the user
// in every course the cart resolves to, credits pointsToEarn and clears the
// cart. Returns the enrolled course IDs.
func (r *PurchaseRepository) FinalizeWithPoints(ctx context.Context, userID int64, items []models.CartItem, pointsPrice, pointsToEarn int64) ([]int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	// Lock the user row to serialize concurrent spends against the balance
	var balance int64
	err = tx.QueryRow(ctx,
		`SELECT points_balance FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&balance)
	if err != nil {
		return nil, fmt.Errorf("lock user for update: %w", err)
	}

	if pointsPrice > balance {
		return nil, ErrInsufficientPoints
	}

	courseIDs, err := r.enrollCartItems(ctx, tx, userID, items, models.PaymentMethodPoints)
	if err != nil {
		return nil, err
	}

	delta := pointsToEarn - pointsPrice
	_, err = tx.Exec(ctx,
		`UPDATE users SET points_balance = points_balance + $1, updated_at = NOW() WHERE id = $2`,
		delta, userID)
	if err != nil {
		return nil, fmt.Errorf("update balance: %w", err)
	}

	if pointsPrice > 0 {
		if err := insertLedgerEntry(ctx, tx, userID, models.PointsSpent, -pointsPrice, "Points checkout"); err != nil {
			return nil, err
		}
	}
	if pointsToEarn > 0 {
		if err := insertLedgerEntry(ctx, tx, userID, models.PointsEarned, pointsToEarn, "Purchase reward"); err != nil {
			return nil, err
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
		return nil, fmt.Errorf("clear cart: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	return courseIDs, nil
}

// FinalizeWithCard completes a card checkout after the gateway confirmed the
// intent: enrolls, credits pointsToEarn and clears the cart.
func (r *PurchaseRepository) FinalizeWithCard(ctx context.Context, userID int64, items []models.CartItem, pointsToEarn int64) ([]int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	courseIDs, err := r.enrollCartItems(ctx, tx, userID, items, models.PaymentMethodCard)
	if err != nil {
		return nil, err
	}

	if pointsToEarn > 0 {
		_, err = tx.Exec(ctx,
			`UPDATE users SET points_balance = points_balance + $1, updated_at = NOW() WHERE id = $2`,
			pointsToEarn, userID)
		if err != nil {
			return nil, fmt.Errorf("update balance: %w", err)
		}

		if err := insertLedgerEntry(ctx, tx, userID, models.PointsEarned, pointsToEarn, "Purchase reward"); err != nil {
			return nil, err
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
		return nil, fmt.Errorf("clear cart: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	return courseIDs, nil
}

// CreditPoints adds purchased points to the balance with a ledger entry
func (r *PurchaseRepository) CreditPoints(ctx context.Context, userID, amount int64, description string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`UPDATE users SET points_balance = points_balance + $1, updated_at = NOW() WHERE id = $2`,
		amount, userID)
	if err != nil {
		return fmt.Errorf("update balance: %w", err)
	}

	if err := insertLedgerEntry(ctx, tx, userID, models.PointsPurchased, amount, description); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// enrollCartItems resolves cart items to course IDs (bundles expand to
// their member courses) and inserts missing enrollments.
func (r *PurchaseRepository) enrollCartItems(ctx context.Context, tx pgx.Tx, userID int64, items []models.CartItem, method models.PaymentMethod) ([]int64, error) {
	var courseIDs []int64
	seen := make(map[int64]bool)

	for _, item := range items {
		switch {
		case item.CourseID != nil:
			if !seen[*item.CourseID] {
				seen[*item.CourseID] = true
				courseIDs = append(courseIDs, *item.CourseID)
			}
		case item.BundleID != nil:
			rows, err := tx.Query(ctx,
				`SELECT course_id FROM bundle_courses WHERE bundle_id = $1`, *item.BundleID)
			if err != nil {
				return nil, fmt.Errorf("resolve bundle courses: %w", err)
			}
			for rows.Next() {
				var id int64
				if err := rows.Scan(&id); err != nil {
					rows.Close()
					return nil, err
				}
				if !seen[id] {
					seen[id] = true
					courseIDs = append(courseIDs, id)
				}
			}
			rows.Close()
			if err := rows.Err(); err != nil {
				return nil, err
			}
		}
	}

	for _, courseID := range courseIDs {
		_, err := tx.Exec(ctx, `
			INSERT INTO enrollments (user_id, course_id, payment_method)
			VALUES ($1, $2, $3)
			ON CONFLICT (user_id, course_id) DO NOTHING
		`, userID, courseID, string(method))
		if err != nil {
			return nil, fmt.Errorf("insert enrollment: %w", err)
		}
	}

	return courseIDs, nil
}

func insertLedgerEntry(ctx context.Context, tx pgx.Tx, userID int64, entryType models.PointsTransactionType, amount int64, description string) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO points_transactions (user_id, type, amount, description)
		VALUES ($1, $2, $3, $4)
	`, userID, string(entryType), amount, description)
	if err != nil {
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	return nil
}
