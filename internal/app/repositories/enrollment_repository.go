package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emre/learnhub/internal/app/models"
)

// Enrollment error types
var (
	ErrEnrollmentNotFound = errors.New("enrollment not found")
)

// EnrollmentRepository handles database operations for course enrollments
type EnrollmentRepository struct {
	db *pgxpool.Pool
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{
		db: db,
	}
}

// Exists checks whether the user is enrolled in the course
func (r *EnrollmentRepository) Exists(ctx context.Context, userID, courseID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM enrollments WHERE user_id = $1 AND course_id = $2)`,
		userID, courseID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking enrollment: %w", err)
	}
	return exists, nil
}

// ListByUser retrieves the user's enrollments with the course attached
func (r *EnrollmentRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Enrollment, error) {
	query := `
		SELECT e.id, e.user_id, e.course_id, e.payment_method, e.progress, e.completed_at, e.created_at,
			c.id, c.teacher_id, c.title, c.description, c.category, c.price, c.points_price,
			c.points_reward, c.cover_url, c.rating, c.review_count, c.is_published, c.created_at, c.updated_at
		FROM enrollments e
		JOIN courses c ON c.id = e.course_id
		WHERE e.user_id = $1
		ORDER BY e.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var enrollments []*models.Enrollment
	for rows.Next() {
		var e models.Enrollment
		var c models.Course
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.CourseID, &e.PaymentMethod, &e.Progress, &e.CompletedAt, &e.CreatedAt,
			&c.ID, &c.TeacherID, &c.Title, &c.Description, &c.Category, &c.Price, &c.PointsPrice,
			&c.PointsReward, &c.CoverURL, &c.Rating, &c.ReviewCount, &c.IsPublished, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		e.Course = &c
		enrollments = append(enrollments, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return enrollments, nil
}

// UpdateProgress sets the completion percentage of an enrollment.
// Reaching 100 stamps completed_at once; progress cannot move backwards.
func (r *EnrollmentRepository) UpdateProgress(ctx context.Context, userID, courseID int64, progress int) error {
	query := `
		UPDATE enrollments
		SET progress = GREATEST(progress, $1),
			completed_at = CASE WHEN $1 >= 100 AND completed_at IS NULL THEN NOW() ELSE completed_at END
		WHERE user_id = $2 AND course_id = $3
	`

	cmdTag, err := r.db.Exec(ctx, query, progress, userID, courseID)
	if err != nil {
		return fmt.Errorf("error updating progress: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrEnrollmentNotFound
	}

	return nil
}

// Get retrieves one enrollment
func (r *EnrollmentRepository) Get(ctx context.Context, userID, courseID int64) (*models.Enrollment, error) {
	query := `
		SELECT id, user_id, course_id, payment_method, progress, completed_at, created_at
		FROM enrollments
		WHERE user_id = $1 AND course_id = $2
	`

	var e models.Enrollment
	err := r.db.QueryRow(ctx, query, userID, courseID).Scan(
		&e.ID, &e.UserID, &e.CourseID, &e.PaymentMethod, &e.Progress, &e.CompletedAt, &e.CreatedAt,
	)
	if err != nil {
		return nil, ErrEnrollmentNotFound
	}

	return &e, nil
}
