package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emre/learnhub/internal/app/models"
	"github.com/emre/learnhub/internal/app/models/dto"
)

// Course error types
var (
	ErrCourseNotFound  = errors.New("course not found")
	ErrCourseHasBuyers = errors.New("course has enrollments and cannot be deleted")
)

// CourseRepository handles database operations for courses, topics and lessons
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
	}
}

// Create inserts a new course and sets the generated ID
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	query := `
		INSERT INTO courses (teacher_id, title, description, category, price, points_price, points_reward, is_published)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		course.TeacherID, course.Title, course.Description, course.Category,
		course.Price, course.PointsPrice, course.PointsReward, course.IsPublished,
	).Scan(&course.ID, &course.CreatedAt, &course.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating course: %w", err)
	}

	return nil
}

const courseColumns = `
	id, teacher_id, title, description, category, price, points_price,
	points_reward, cover_url, rating, review_count, is_published, created_at, updated_at
`

func scanCourse(row pgx.Row) (*models.Course, error) {
	var course models.Course
	err := row.Scan(
		&course.ID,
		&course.TeacherID,
		&course.Title,
		&course.Description,
		&course.Category,
		&course.Price,
		&course.PointsPrice,
		&course.PointsReward,
		&course.CoverURL,
		&course.Rating,
		&course.ReviewCount,
		&course.IsPublished,
		&course.CreatedAt,
		&course.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	return &course, nil
}

// GetByID retrieves a course row by ID (no nested content)
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = $1`
	return scanCourse(r.db.QueryRow(ctx, query, id))
}

// GetTree retrieves a course with its topics and lessons ordered by position
func (r *CourseRepository) GetTree(ctx context.Context, id int64) (*models.Course, error) {
	course, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	topicRows, err := r.db.Query(ctx, `
		SELECT id, course_id, title, position
		FROM topics
		WHERE course_id = $1
		ORDER BY position, id
	`, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving topics: %w", err)
	}
	defer topicRows.Close()

	topicIndex := make(map[int64]int)
	for topicRows.Next() {
		var topic models.Topic
		if err := topicRows.Scan(&topic.ID, &topic.CourseID, &topic.Title, &topic.Position); err != nil {
			return nil, err
		}
		topicIndex[topic.ID] = len(course.Topics)
		course.Topics = append(course.Topics, topic)
	}
	if err := topicRows.Err(); err != nil {
		return nil, err
	}

	lessonRows, err := r.db.Query(ctx, `
		SELECT l.id, l.topic_id, l.title, l.duration_minutes, l.position, l.video_url
		FROM lessons l
		JOIN topics t ON t.id = l.topic_id
		WHERE t.course_id = $1
		ORDER BY t.position, t.id, l.position, l.id
	`, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving lessons: %w", err)
	}
	defer lessonRows.Close()

	for lessonRows.Next() {
		var lesson models.Lesson
		if err := lessonRows.Scan(&lesson.ID, &lesson.TopicID, &lesson.Title,
			&lesson.DurationMinutes, &lesson.Position, &lesson.VideoURL); err != nil {
			return nil, err
		}
		if idx, ok := topicIndex[lesson.TopicID]; ok {
			course.Topics[idx].Lessons = append(course.Topics[idx].Lessons, lesson)
		}
	}
	if err := lessonRows.Err(); err != nil {
		return nil, err
	}

	return course, nil
}

// List retrieves published courses matching the filter, with pagination
func (r *CourseRepository) List(ctx context.Context, filter dto.CourseFilter, offset uint64, limit int) ([]*models.Course, int64, error) {
	conditions := []string{"is_published = TRUE"}
	args := []interface{}{}

	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.TeacherID > 0 {
		args = append(args, filter.TeacherID)
		conditions = append(conditions, fmt.Sprintf("teacher_id = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conditions = append(conditions, fmt.Sprintf("title ILIKE $%d", len(args)))
	}

	where := "WHERE " + strings.Join(conditions, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM courses ` + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting courses: %w", err)
	}

	args = append(args, offset, limit)
	query := fmt.Sprintf(`SELECT %s FROM courses %s ORDER BY created_at DESC OFFSET $%d LIMIT $%d`,
		courseColumns, where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, 0, err
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return courses, total, nil
}

// ListByTeacher retrieves all courses owned by a teacher, drafts included
func (r *CourseRepository) ListByTeacher(ctx context.Context, teacherID int64) ([]*models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE teacher_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, teacherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return courses, nil
}

// Update updates an existing course
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	query := `
		UPDATE courses
		SET title = $1, description = $2, category = $3, price = $4,
			points_price = $5, points_reward = $6, is_published = $7, updated_at = NOW()
		WHERE id = $8
	`

	cmdTag, err := r.db.Exec(ctx, query,
		course.Title, course.Description, course.Category, course.Price,
		course.PointsPrice, course.PointsReward, course.IsPublished, course.ID)
	if err != nil {
		return fmt.Errorf("error updating course: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrCourseNotFound
	}

	return nil
}

// Delete removes a course that has no enrollments
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	var hasEnrollments bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM enrollments WHERE course_id = $1)`, id).Scan(&hasEnrollments)
	if err != nil {
		return fmt.Errorf("error checking enrollments: %w", err)
	}

	if hasEnrollments {
		return ErrCourseHasBuyers
	}

	cmdTag, err := r.db.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting course: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrCourseNotFound
	}

	return nil
}

// AddTopic inserts a topic into a course
func (r *CourseRepository) AddTopic(ctx context.Context, topic *models.Topic) error {
	query := `
		INSERT INTO topics (course_id, title, position)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, topic.CourseID, topic.Title, topic.Position).Scan(&topic.ID)
	if err != nil {
		return fmt.Errorf("error creating topic: %w", err)
	}

	return nil
}

// AddLesson inserts a lesson into a topic
func (r *CourseRepository) AddLesson(ctx context.Context, lesson *models.Lesson) error {
	query := `
		INSERT INTO lessons (topic_id, title, duration_minutes, position, video_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		lesson.TopicID, lesson.Title, lesson.DurationMinutes, lesson.Position, lesson.VideoURL,
	).Scan(&lesson.ID)
	if err != nil {
		return fmt.Errorf("error creating lesson: %w", err)
	}

	return nil
}

// TopicBelongsToCourse checks topic ownership before adding lessons
func (r *CourseRepository) TopicBelongsToCourse(ctx context.Context, topicID, courseID int64) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM topics WHERE id = $1 AND course_id = $2)`,
		topicID, courseID).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("error checking topic ownership: %w", err)
	}
	return ok, nil
}

// RefreshRatingAggregates recomputes rating and review_count from reviews
func (r *CourseRepository) RefreshRatingAggregates(ctx context.Context, courseID int64) error {
	query := `
		UPDATE courses c
		SET rating = COALESCE(agg.avg_rating, 0),
			review_count = COALESCE(agg.cnt, 0)
		FROM (
			SELECT AVG(rating)::float8 AS avg_rating, COUNT(*) AS cnt
			FROM reviews
			WHERE course_id = $1
		) agg
		WHERE c.id = $1
	`

	_, err := r.db.Exec(ctx, query, courseID)
	if err != nil {
		return fmt.Errorf("error refreshing rating aggregates: %w", err)
	}

	return nil
}
