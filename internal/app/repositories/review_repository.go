package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emre/learnhub/internal/app/models"
)

// Review error types
var (
	ErrAlreadyReviewed = errors.New("course already reviewed")
)

// ReviewRepository handles database operations for course reviews
type ReviewRepository struct {
	db *pgxpool.Pool
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{
		db: db,
	}
}

// Create inserts a review. One review per user per course.
func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	exists, err := r.ExistsByUserAndCourse(ctx, review.UserID, review.CourseID)
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadyReviewed
	}

	query := `
		INSERT INTO reviews (course_id, user_id, rating, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err = r.db.QueryRow(ctx, query,
		review.CourseID, review.UserID, review.Rating, review.Comment,
	).Scan(&review.ID, &review.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating review: %w", err)
	}

	return nil
}

// ExistsByUserAndCourse checks whether the user has already reviewed the course
func (r *ReviewRepository) ExistsByUserAndCourse(ctx context.Context, userID, courseID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM reviews WHERE user_id = $1 AND course_id = $2)`,
		userID, courseID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking review existence: %w", err)
	}
	return exists, nil
}

// ListByCourse retrieves reviews for a course with the reviewer attached
func (r *ReviewRepository) ListByCourse(ctx context.Context, courseID int64, offset uint64, limit int) ([]*models.Review, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM reviews WHERE course_id = $1`, courseID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting reviews: %w", err)
	}

	query := `
		SELECT r.id, r.course_id, r.user_id, r.rating, r.comment, r.created_at,
			u.id, u.first_name, u.last_name, u.avatar_url
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.course_id = $1
		ORDER BY r.created_at DESC
		OFFSET $2 LIMIT $3
	`

	rows, err := r.db.Query(ctx, query, courseID, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var reviews []*models.Review
	for rows.Next() {
		var review models.Review
		var user models.User
		if err := rows.Scan(
			&review.ID, &review.CourseID, &review.UserID, &review.Rating,
			&review.Comment, &review.CreatedAt,
			&user.ID, &user.FirstName, &user.LastName, &user.AvatarURL,
		); err != nil {
			return nil, 0, err
		}
		review.User = &user
		reviews = append(reviews, &review)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}
