package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emre/learnhub/internal/app/models"
)

// Tutoring error types
var (
	ErrSessionNotFound = errors.New("tutoring session not found")
	ErrRequestNotFound = errors.New("tutoring request not found")
)

// TutoringRepository handles database operations for sessions and requests
type TutoringRepository struct {
	db *pgxpool.Pool
}

// NewTutoringRepository creates a new tutoring repository
func NewTutoringRepository(db *pgxpool.Pool) *TutoringRepository {
	return &TutoringRepository{
		db: db,
	}
}

// CreateSession inserts a session posting in PENDING state
func (r *TutoringRepository) CreateSession(ctx context.Context, session *models.TutoringSession) error {
	query := `
		INSERT INTO tutoring_sessions (teacher_id, subject, description, price_per_hour, duration_minutes, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		session.TeacherID, session.Subject, session.Description,
		session.PricePerHour, session.DurationMinutes, string(session.Status),
	).Scan(&session.ID, &session.CreatedAt, &session.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating session: %w", err)
	}

	return nil
}

const sessionColumns = `
	s.id, s.teacher_id, s.subject, s.description, s.price_per_hour,
	s.duration_minutes, s.status, s.created_at, s.updated_at
`

func scanSession(row pgx.Row) (*models.TutoringSession, error) {
	var s models.TutoringSession
	err := row.Scan(
		&s.ID, &s.TeacherID, &s.Subject, &s.Description,
		&s.PricePerHour, &s.DurationMinutes, &s.Status, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("error retrieving session: %w", err)
	}
	return &s, nil
}

// GetSession retrieves a session by ID
func (r *TutoringRepository) GetSession(ctx context.Context, id int64) (*models.TutoringSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM tutoring_sessions s WHERE s.id = $1`
	return scanSession(r.db.QueryRow(ctx, query, id))
}

// ListSessions retrieves sessions with a given status, optionally by subject
func (r *TutoringRepository) ListSessions(ctx context.Context, status models.SessionStatus, subject string) ([]*models.TutoringSession, error) {
	query := `SELECT ` + sessionColumns + `,
			u.id, u.first_name, u.last_name, u.avatar_url
		FROM tutoring_sessions s
		JOIN users u ON u.id = s.teacher_id
		WHERE s.status = $1`
	args := []interface{}{string(status)}

	if subject != "" {
		args = append(args, "%"+subject+"%")
		query += fmt.Sprintf(" AND s.subject ILIKE $%d", len(args))
	}
	query += " ORDER BY s.created_at DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*models.TutoringSession
	for rows.Next() {
		var s models.TutoringSession
		var teacher models.User
		if err := rows.Scan(
			&s.ID, &s.TeacherID, &s.Subject, &s.Description,
			&s.PricePerHour, &s.DurationMinutes, &s.Status, &s.CreatedAt, &s.UpdatedAt,
			&teacher.ID, &teacher.FirstName, &teacher.LastName, &teacher.AvatarURL,
		); err != nil {
			return nil, err
		}
		s.Teacher = &teacher
		sessions = append(sessions, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}

// ListSessionsByTeacher retrieves all of a teacher's sessions, any status
func (r *TutoringRepository) ListSessionsByTeacher(ctx context.Context, teacherID int64) ([]*models.TutoringSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM tutoring_sessions s WHERE s.teacher_id = $1 ORDER BY s.created_at DESC`

	rows, err := r.db.Query(ctx, query, teacherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*models.TutoringSession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}

// UpdateSession edits a session's mutable fields
func (r *TutoringRepository) UpdateSession(ctx context.Context, session *models.TutoringSession) error {
	query := `
		UPDATE tutoring_sessions
		SET subject = $1, description = $2, price_per_hour = $3, duration_minutes = $4, updated_at = NOW()
		WHERE id = $5
	`

	cmdTag, err := r.db.Exec(ctx, query,
		session.Subject, session.Description, session.PricePerHour, session.DurationMinutes, session.ID)
	if err != nil {
		return fmt.Errorf("error updating session: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// UpdateSessionStatus moves a session to a new state
func (r *TutoringRepository) UpdateSessionStatus(ctx context.Context, id int64, status models.SessionStatus) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE tutoring_sessions SET status = $1, updated_at = NOW() WHERE id = $2`,
		string(status), id)
	if err != nil {
		return fmt.Errorf("error updating session status: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// CreateRequest inserts a booking request in PENDING state
func (r *TutoringRepository) CreateRequest(ctx context.Context, request *models.TutoringRequest) error {
	query := `
		INSERT INTO tutoring_requests (session_id, student_id, scheduled_at, note, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		request.SessionID, request.StudentID, request.ScheduledAt, request.Note, string(request.Status),
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}

	return nil
}

// GetRequest retrieves a request with its session attached
func (r *TutoringRepository) GetRequest(ctx context.Context, id int64) (*models.TutoringRequest, error) {
	query := `
		SELECT q.id, q.session_id, q.student_id, q.scheduled_at, q.note, q.status, q.created_at, q.updated_at,
			` + sessionColumns + `
		FROM tutoring_requests q
		JOIN tutoring_sessions s ON s.id = q.session_id
		WHERE q.id = $1
	`

	var q models.TutoringRequest
	var s models.TutoringSession
	err := r.db.QueryRow(ctx, query, id).Scan(
		&q.ID, &q.SessionID, &q.StudentID, &q.ScheduledAt, &q.Note, &q.Status, &q.CreatedAt, &q.UpdatedAt,
		&s.ID, &s.TeacherID, &s.Subject, &s.Description,
		&s.PricePerHour, &s.DurationMinutes, &s.Status, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("error retrieving request: %w", err)
	}

	q.Session = &s
	return &q, nil
}

// ListRequestsByStudent retrieves a student's booking requests
func (r *TutoringRepository) ListRequestsByStudent(ctx context.Context, studentID int64) ([]*models.TutoringRequest, error) {
	return r.listRequests(ctx, `q.student_id = $1`, studentID)
}

// ListRequestsByTeacher retrieves requests against a teacher's sessions
func (r *TutoringRepository) ListRequestsByTeacher(ctx context.Context, teacherID int64) ([]*models.TutoringRequest, error) {
	return r.listRequests(ctx, `s.teacher_id = $1`, teacherID)
}

func (r *TutoringRepository) listRequests(ctx context.Context, condition string, arg interface{}) ([]*models.TutoringRequest, error) {
	query := `
		SELECT q.id, q.session_id, q.student_id, q.scheduled_at, q.note, q.status, q.created_at, q.updated_at,
			` + sessionColumns + `,
			u.id, u.first_name, u.last_name, u.avatar_url
		FROM tutoring_requests q
		JOIN tutoring_sessions s ON s.id = q.session_id
		JOIN users u ON u.id = q.student_id
		WHERE ` + condition + `
		ORDER BY q.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []*models.TutoringRequest
	for rows.Next() {
		var q models.TutoringRequest
		var s models.TutoringSession
		var student models.User
		if err := rows.Scan(
			&q.ID, &q.SessionID, &q.StudentID, &q.ScheduledAt, &q.Note, &q.Status, &q.CreatedAt, &q.UpdatedAt,
			&s.ID, &s.TeacherID, &s.Subject, &s.Description,
			&s.PricePerHour, &s.DurationMinutes, &s.Status, &s.CreatedAt, &s.UpdatedAt,
			&student.ID, &student.FirstName, &student.LastName, &student.AvatarURL,
		); err != nil {
			return nil, err
		}
		q.Session = &s
		q.Student = &student
		requests = append(requests, &q)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}

// UpdateRequestStatus moves a request to a new state
func (r *TutoringRepository) UpdateRequestStatus(ctx context.Context, id int64, status models.RequestStatus) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE tutoring_requests SET status = $1, updated_at = NOW() WHERE id = $2`,
		string(status), id)
	if err != nil {
		return fmt.Errorf("error updating request status: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrRequestNotFound
	}

	return nil
}

// ListUpcomingAccepted projects accepted future bookings for either side of
// the session as calendar events.
func (r *TutoringRepository) ListUpcomingAccepted(ctx context.Context, userID int64) ([]models.CalendarEvent, error) {
	query := `
		SELECT q.id, s.subject, q.scheduled_at,
			CASE WHEN s.teacher_id = $1
				THEN stu.first_name || ' ' || stu.last_name
				ELSE tch.first_name || ' ' || tch.last_name
			END
		FROM tutoring_requests q
		JOIN tutoring_sessions s ON s.id = q.session_id
		JOIN users stu ON stu.id = q.student_id
		JOIN users tch ON tch.id = s.teacher_id
		WHERE q.status = 'ACCEPTED'
			AND q.scheduled_at > NOW()
			AND (q.student_id = $1 OR s.teacher_id = $1)
		ORDER BY q.scheduled_at
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.CalendarEvent
	for rows.Next() {
		var e models.CalendarEvent
		if err := rows.Scan(&e.RequestID, &e.Subject, &e.ScheduledAt, &e.WithUser); err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
