package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emre/learnhub/internal/app/models"
)

// Points error types
var (
	ErrPackageNotFound = errors.New("points package not found")
)

// PointsRepository handles the points ledger and purchasable packages
type PointsRepository struct {
	db *pgxpool.Pool
}

// NewPointsRepository creates a new points repository
func NewPointsRepository(db *pgxpool.Pool) *PointsRepository {
	return &PointsRepository{
		db: db,
	}
}

// ListTransactions retrieves the user's ledger, newest first
func (r *PointsRepository) ListTransactions(ctx context.Context, userID int64, offset uint64, limit int) ([]models.PointsTransaction, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM points_transactions WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting transactions: %w", err)
	}

	query := `
		SELECT id, user_id, type, amount, description, created_at
		FROM points_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		OFFSET $2 LIMIT $3
	`

	rows, err := r.db.Query(ctx, query, userID, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var transactions []models.PointsTransaction
	for rows.Next() {
		var t models.PointsTransaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Type, &t.Amount, &t.Description, &t.CreatedAt); err != nil {
			return nil, 0, err
		}
		transactions = append(transactions, t)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return transactions, total, nil
}

// ListPackages retrieves active points packages, cheapest first
func (r *PointsRepository) ListPackages(ctx context.Context) ([]models.PointsPackage, error) {
	query := `
		SELECT id, name, points, price, is_active
		FROM points_packages
		WHERE is_active = TRUE
		ORDER BY price
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var packages []models.PointsPackage
	for rows.Next() {
		var p models.PointsPackage
		if err := rows.Scan(&p.ID, &p.Name, &p.Points, &p.Price, &p.IsActive); err != nil {
			return nil, err
		}
		packages = append(packages, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return packages, nil
}

// GetPackage retrieves one active points package
func (r *PointsRepository) GetPackage(ctx context.Context, id int64) (*models.PointsPackage, error) {
	query := `
		SELECT id, name, points, price, is_active
		FROM points_packages
		WHERE id = $1 AND is_active = TRUE
	`

	var p models.PointsPackage
	err := r.db.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.Points, &p.Price, &p.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPackageNotFound
		}
		return nil, fmt.Errorf("error retrieving points package: %w", err)
	}

	return &p, nil
}
