package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emre/learnhub/internal/app/models"
	"github.com/emre/learnhub/internal/app/models/dto"
)

// StatsRepository aggregates platform-wide numbers for the admin dashboard
type StatsRepository struct {
	db *pgxpool.Pool
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(db *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{
		db: db,
	}
}

// growthBuckets maps a period to its date_trunc unit, label format and
// number of buckets back from now.
var growthBuckets = map[models.GrowthPeriod]struct {
	unit    string
	format  string
	buckets int
}{
	models.GrowthPeriodWeek:  {"day", "YYYY-MM-DD", 7},
	models.GrowthPeriodMonth: {"day", "YYYY-MM-DD", 30},
	models.GrowthPeriodYear:  {"month", "YYYY-MM", 12},
}

// UserGrowth returns signup counts bucketed over the requested period.
// Empty buckets are filled with zeros so the series has a fixed length.
func (r *StatsRepository) UserGrowth(ctx context.Context, period models.GrowthPeriod) ([]dto.GrowthPoint, error) {
	spec, ok := growthBuckets[period]
	if !ok {
		spec = growthBuckets[models.GrowthPeriodMonth]
	}

	query := fmt.Sprintf(`
		WITH buckets AS (
			SELECT generate_series(
				date_trunc('%[1]s', NOW()) - ($1 - 1) * INTERVAL '1 %[1]s',
				date_trunc('%[1]s', NOW()),
				INTERVAL '1 %[1]s'
			) AS bucket
		)
		SELECT to_char(b.bucket, '%[2]s'), COUNT(u.id)
		FROM buckets b
		LEFT JOIN users u ON date_trunc('%[1]s', u.created_at) = b.bucket
		GROUP BY b.bucket
		ORDER BY b.bucket
	`, spec.unit, spec.format)

	rows, err := r.db.Query(ctx, query, spec.buckets)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []dto.GrowthPoint
	for rows.Next() {
		var p dto.GrowthPoint
		if err := rows.Scan(&p.Label, &p.NewUsers); err != nil {
			return nil, err
		}
		points = append(points, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return points, nil
}

// CoursePerformance returns the top courses by enrollment with revenue
// attributed at the course's card price.
func (r *StatsRepository) CoursePerformance(ctx context.Context, limit int) ([]dto.CoursePerformance, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `
		SELECT c.id, c.title, COUNT(e.id),
			COUNT(e.id) FILTER (WHERE e.payment_method = 'CARD') * c.price,
			c.rating
		FROM courses c
		LEFT JOIN enrollments e ON e.course_id = c.id
		GROUP BY c.id
		ORDER BY COUNT(e.id) DESC, c.title
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []dto.CoursePerformance
	for rows.Next() {
		var p dto.CoursePerformance
		if err := rows.Scan(&p.CourseID, &p.Title, &p.Enrollments, &p.Revenue, &p.Rating); err != nil {
			return nil, err
		}
		results = append(results, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

// PlatformStats collects the headline numbers for the statistics table
func (r *StatsRepository) PlatformStats(ctx context.Context) (*dto.PlatformStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM users WHERE role_type = 'STUDENT'),
			(SELECT COUNT(*) FROM users WHERE role_type = 'TEACHER'),
			(SELECT COUNT(*) FROM courses WHERE is_published = TRUE),
			(SELECT COUNT(*) FROM enrollments),
			(SELECT COALESCE(SUM(c.price), 0)
				FROM enrollments e JOIN courses c ON c.id = e.course_id
				WHERE e.payment_method = 'CARD'),
			(SELECT COUNT(*) FROM subscriptions WHERE canceled_at IS NULL AND ends_at > NOW()),
			(SELECT COUNT(*) FROM tutoring_sessions WHERE status = 'PENDING'),
			(SELECT COALESCE(SUM(points_balance), 0) FROM users)
	`

	var stats dto.PlatformStats
	err := r.db.QueryRow(ctx, query).Scan(
		&stats.TotalUsers, &stats.TotalStudents, &stats.TotalTeachers,
		&stats.TotalCourses, &stats.TotalEnrollments, &stats.TotalRevenue,
		&stats.ActiveSubscribers, &stats.PendingSessions, &stats.PointsInCirculation,
	)
	if err != nil {
		return nil, fmt.Errorf("error retrieving platform stats: %w", err)
	}

	return &stats, nil
}
