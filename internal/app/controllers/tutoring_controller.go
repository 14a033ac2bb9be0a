package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emre/learnhub/internal/app/models"
	"github.com/emre/learnhub/internal/app/models/dto"
	"github.com/emre/learnhub/internal/app/services"
	"github.com/emre/learnhub/internal/middleware"
)

// requestWithActions pairs a booking request with the viewer's affordances
type requestWithActions struct {
	*models.TutoringRequest
	Actions dto.RequestActions `json:"actions"`
}

// TutoringController handles session postings and booking requests
type TutoringController struct {
	tutoringService *services.TutoringService
}

// NewTutoringController creates a new TutoringController
func NewTutoringController(tutoringService *services.TutoringService) *TutoringController {
	return &TutoringController{
		tutoringService: tutoringService,
	}
}

// ListSessions retrieves bookable sessions
// @Summary List tutoring sessions
// @Description Retrieves approved sessions, optionally filtered by subject
// @Tags tutoring
// @Produce json
// @Param subject query string false "Subject search"
// @Success 200 {object} dto.APIResponse{data=[]models.TutoringSession} "Sessions"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /tutoring/sessions [get]
func (c *TutoringController) ListSessions(ctx *gin.Context) {
	sessions, err := c.tutoringService.ListApprovedSessions(ctx, ctx.Query("subject"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      sessions,
		Timestamp: time.Now(),
	})
}

// CreateSession posts a new session offering
// @Summary Post a tutoring session
// @Description Creates a session offering awaiting admin moderation
// @Tags tutoring
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateSessionRequest true "Session information"
// @Success 201 {object} dto.APIResponse{data=models.TutoringSession} "Session posted"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /teacher/tutoring/sessions [post]
func (c *TutoringController) CreateSession(ctx *gin.Context) {
	teacherID, _ := middleware.CurrentUserID(ctx)

	var req dto.CreateSessionRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	session, err := c.tutoringService.CreateSession(ctx, teacherID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      session,
		Timestamp: time.Now(),
	})
}

// ListTeacherSessions retrieves the teacher's postings
// @Summary List teacher sessions
// @Description Retrieves all of the authenticated teacher's session postings
// @Tags tutoring
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.TutoringSession} "Sessions"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /teacher/tutoring/sessions [get]
func (c *TutoringController) ListTeacherSessions(ctx *gin.Context) {
	teacherID, _ := middleware.CurrentUserID(ctx)

	sessions, err := c.tutoringService.ListTeacherSessions(ctx, teacherID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      sessions,
		Timestamp: time.Now(),
	})
}

// UpdateSession edits a session posting
// @Summary Update a tutoring session
// @Description Edits a session the teacher owns. Approved sessions return to moderation.
// @Tags tutoring
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Param request body dto.UpdateSessionRequest true "Session information"
// @Success 200 {object} dto.APIResponse{data=models.TutoringSession} "Updated session"
// @Failure 403 {object} dto.ErrorResponse "Session belongs to another teacher"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /teacher/tutoring/sessions/{id} [put]
func (c *TutoringController) UpdateSession(ctx *gin.Context) {
	teacherID, _ := middleware.CurrentUserID(ctx)

	sessionID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateSessionRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	session, err := c.tutoringService.UpdateSession(ctx, teacherID, sessionID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      session,
		Timestamp: time.Now(),
	})
}

// ArchiveSession retires an approved session
// @Summary Archive a tutoring session
// @Description Retires an approved session the teacher owns
// @Tags tutoring
// @Produce json
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Success 200 {object} dto.APIResponse{data=models.TutoringSession} "Archived session"
// @Failure 409 {object} dto.ErrorResponse "Invalid status transition"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /teacher/tutoring/sessions/{id}/archive [post]
func (c *TutoringController) ArchiveSession(ctx *gin.Context) {
	teacherID, _ := middleware.CurrentUserID(ctx)

	sessionID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	session, err := c.tutoringService.ArchiveSession(ctx, teacherID, sessionID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      session,
		Timestamp: time.Now(),
	})
}

// CreateBooking files a booking request against a session
// @Summary Book a tutoring session
// @Description Files a student's booking request against an approved session
// @Tags tutoring
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateBookingRequest true "Booking information"
// @Success 201 {object} dto.APIResponse{data=models.TutoringRequest} "Booking filed"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 409 {object} dto.ErrorResponse "Session not open for booking"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /tutoring/bookings [post]
func (c *TutoringController) CreateBooking(ctx *gin.Context) {
	studentID, _ := middleware.CurrentUserID(ctx)

	var req dto.CreateBookingRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	request, err := c.tutoringService.CreateBooking(ctx, studentID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      request,
		Timestamp: time.Now(),
	})
}

// ListMyBookings retrieves the viewer's booking requests with affordances
// @Summary List my bookings
// @Description Retrieves booking requests for the viewer, teacher or student side, with valid actions per request
// @Tags tutoring
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "Bookings"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /tutoring/bookings [get]
func (c *TutoringController) ListMyBookings(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)
	role, _ := middleware.CurrentRole(ctx)

	var requests []*models.TutoringRequest
	var err error
	if role == models.RoleTeacher {
		requests, err = c.tutoringService.ListTeacherBookings(ctx, userID)
	} else {
		requests, err = c.tutoringService.ListStudentBookings(ctx, userID)
	}
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	result := make([]requestWithActions, 0, len(requests))
	for _, request := range requests {
		result = append(result, requestWithActions{
			TutoringRequest: request,
			Actions:         services.ActionsFor(request, userID),
		})
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      result,
		Timestamp: time.Now(),
	})
}

// AcceptBooking accepts a pending booking request
// @Summary Accept a booking
// @Description Accepts a pending request against the teacher's session
// @Tags tutoring
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Success 200 {object} dto.APIResponse{data=models.TutoringRequest} "Accepted request"
// @Failure 409 {object} dto.ErrorResponse "Invalid status transition"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /teacher/tutoring/bookings/{id}/accept [post]
func (c *TutoringController) AcceptBooking(ctx *gin.Context) {
	c.respondToBooking(ctx, true)
}

// RejectBooking rejects a pending booking request
// @Summary Reject a booking
// @Description Rejects a pending request against the teacher's session
// @Tags tutoring
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Success 200 {object} dto.APIResponse{data=models.TutoringRequest} "Rejected request"
// @Failure 409 {object} dto.ErrorResponse "Invalid status transition"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /teacher/tutoring/bookings/{id}/reject [post]
func (c *TutoringController) RejectBooking(ctx *gin.Context) {
	c.respondToBooking(ctx, false)
}

func (c *TutoringController) respondToBooking(ctx *gin.Context, accept bool) {
	teacherID, _ := middleware.CurrentUserID(ctx)

	requestID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	request, err := c.tutoringService.RespondToBooking(ctx, teacherID, requestID, accept)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      request,
		Timestamp: time.Now(),
	})
}

// CancelBooking withdraws the student's own pending request
// @Summary Cancel a booking
// @Description Withdraws the student's own pending booking request
// @Tags tutoring
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Success 200 {object} dto.APIResponse{data=models.TutoringRequest} "Canceled request"
// @Failure 409 {object} dto.ErrorResponse "Invalid status transition"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /tutoring/bookings/{id}/cancel [post]
func (c *TutoringController) CancelBooking(ctx *gin.Context) {
	studentID, _ := middleware.CurrentUserID(ctx)

	requestID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	request, err := c.tutoringService.CancelBooking(ctx, studentID, requestID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      request,
		Timestamp: time.Now(),
	})
}

// CompleteBooking marks an accepted request as held
// @Summary Complete a booking
// @Description Marks an accepted request against the teacher's session as completed
// @Tags tutoring
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Success 200 {object} dto.APIResponse{data=models.TutoringRequest} "Completed request"
// @Failure 409 {object} dto.ErrorResponse "Invalid status transition"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /teacher/tutoring/bookings/{id}/complete [post]
func (c *TutoringController) CompleteBooking(ctx *gin.Context) {
	teacherID, _ := middleware.CurrentUserID(ctx)

	requestID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	request, err := c.tutoringService.CompleteBooking(ctx, teacherID, requestID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      request,
		Timestamp: time.Now(),
	})
}

// GetCalendar retrieves upcoming accepted bookings
// @Summary Get calendar
// @Description Retrieves the viewer's upcoming accepted bookings as calendar events
// @Tags tutoring
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.CalendarEvent} "Calendar events"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /tutoring/calendar [get]
func (c *TutoringController) GetCalendar(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	events, err := c.tutoringService.GetCalendar(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      events,
		Timestamp: time.Now(),
	})
}
