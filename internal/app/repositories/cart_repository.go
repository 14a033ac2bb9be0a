package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emre/learnhub/internal/app/models"
)

// Cart error types
var (
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrAlreadyInCart    = errors.New("item already in cart")
)

// CartRepository handles database operations for the server-persisted cart
type CartRepository struct {
	db *pgxpool.Pool
}

// NewCartRepository creates a new cart repository
func NewCartRepository(db *pgxpool.Pool) *CartRepository {
	return &CartRepository{
		db: db,
	}
}

// AddItem inserts a cart item. The snapshot of title and both prices is
// taken at add time so the receipt stays stable while the user shops.
func (r *CartRepository) AddItem(ctx context.Context, item *models.CartItem) error {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM cart_items
			WHERE user_id = $1
				AND course_id IS NOT DISTINCT FROM $2
				AND bundle_id IS NOT DISTINCT FROM $3
		)`,
		item.UserID, item.CourseID, item.BundleID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("error checking cart item: %w", err)
	}
	if exists {
		return ErrAlreadyInCart
	}

	query := `
		INSERT INTO cart_items (user_id, course_id, bundle_id, title, price, points_price, points_earn)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err = r.db.QueryRow(ctx, query,
		item.UserID, item.CourseID, item.BundleID, item.Title,
		item.Price, item.PointsPrice, item.PointsEarn,
	).Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		return fmt.Errorf("error adding cart item: %w", err)
	}

	return nil
}

// GetItems retrieves the user's cart contents, oldest first
func (r *CartRepository) GetItems(ctx context.Context, userID int64) ([]models.CartItem, error) {
	query := `
		SELECT id, user_id, course_id, bundle_id, title, price, points_price, points_earn, created_at
		FROM cart_items
		WHERE user_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.CartItem
	for rows.Next() {
		var item models.CartItem
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.CourseID, &item.BundleID,
			&item.Title, &item.Price, &item.PointsPrice, &item.PointsEarn, &item.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// RemoveItem deletes one item from the user's cart
func (r *CartRepository) RemoveItem(ctx context.Context, userID, itemID int64) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM cart_items WHERE id = $1 AND user_id = $2`, itemID, userID)
	if err != nil {
		return fmt.Errorf("error removing cart item: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrCartItemNotFound
	}

	return nil
}

// Clear empties the user's cart
func (r *CartRepository) Clear(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("error clearing cart: %w", err)
	}
	return nil
}
