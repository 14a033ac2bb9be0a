package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emre/learnhub/internal/app/models"
)

// Achievement error types
var (
	ErrAchievementExists = errors.New("achievement already awarded")
)

// AchievementRepository handles database operations for achievements and
// course completion certificates
type AchievementRepository struct {
	db *pgxpool.Pool
}

// NewAchievementRepository creates a new achievement repository
func NewAchievementRepository(db *pgxpool.Pool) *AchievementRepository {
	return &AchievementRepository{
		db: db,
	}
}

// ListByUser retrieves a user's achievements, completed first
func (r *AchievementRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Achievement, error) {
	query := `
		SELECT id, user_id, code, title, description, points, completed, completed_at
		FROM achievements
		WHERE user_id = $1
		ORDER BY completed DESC, completed_at DESC NULLS LAST, id
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var achievements []*models.Achievement
	for rows.Next() {
		var a models.Achievement
		if err := rows.Scan(&a.ID, &a.UserID, &a.Code, &a.Title, &a.Description,
			&a.Points, &a.Completed, &a.CompletedAt); err != nil {
			return nil, err
		}
		achievements = append(achievements, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return achievements, nil
}

// Award inserts a completed achievement once per (user, code). A duplicate
// award returns ErrAchievementExists without touching the row.
func (r *AchievementRepository) Award(ctx context.Context, achievement *models.Achievement) error {
	now := time.Now()
	query := `
		INSERT INTO achievements (user_id, code, title, description, points, completed, completed_at)
		VALUES ($1, $2, $3, $4, $5, TRUE, $6)
		ON CONFLICT (user_id, code) DO NOTHING
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		achievement.UserID, achievement.Code, achievement.Title,
		achievement.Description, achievement.Points, now,
	).Scan(&achievement.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrAchievementExists
		}
		return fmt.Errorf("error awarding achievement: %w", err)
	}

	achievement.Completed = true
	achievement.CompletedAt = &now
	return nil
}

// ListCertificates retrieves a user's certificates with their courses
func (r *AchievementRepository) ListCertificates(ctx context.Context, userID int64) ([]*models.Certificate, error) {
	query := `
		SELECT cert.id, cert.user_id, cert.course_id, cert.title, cert.issued_at, cert.serial_code
		FROM certificates cert
		WHERE cert.user_id = $1
		ORDER BY cert.issued_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var certificates []*models.Certificate
	for rows.Next() {
		var c models.Certificate
		if err := rows.Scan(&c.ID, &c.UserID, &c.CourseID, &c.Title, &c.IssuedAt, &c.SerialCode); err != nil {
			return nil, err
		}
		certificates = append(certificates, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return certificates, nil
}

// IssueCertificate creates a certificate for a completed course. Issuing
// twice for the same course is a no-op returning the existing record.
func (r *AchievementRepository) IssueCertificate(ctx context.Context, userID, courseID int64, title string) (*models.Certificate, error) {
	existing := `
		SELECT id, user_id, course_id, title, issued_at, serial_code
		FROM certificates
		WHERE user_id = $1 AND course_id = $2
	`

	var c models.Certificate
	err := r.db.QueryRow(ctx, existing, userID, courseID).Scan(
		&c.ID, &c.UserID, &c.CourseID, &c.Title, &c.IssuedAt, &c.SerialCode)
	if err == nil {
		return &c, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("error checking certificate: %w", err)
	}

	c = models.Certificate{
		UserID:     userID,
		CourseID:   courseID,
		Title:      title,
		SerialCode: uuid.New().String(),
	}

	query := `
		INSERT INTO certificates (user_id, course_id, title, serial_code)
		VALUES ($1, $2, $3, $4)
		RETURNING id, issued_at
	`

	err = r.db.QueryRow(ctx, query, c.UserID, c.CourseID, c.Title, c.SerialCode).Scan(&c.ID, &c.IssuedAt)
	if err != nil {
		return nil, fmt.Errorf("error issuing certificate: %w", err)
	}

	return &c, nil
}
