package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emre/learnhub/internal/app/models"
	"github.com/emre/learnhub/internal/app/models/dto"
	"github.com/emre/learnhub/internal/app/services"
	"github.com/emre/learnhub/internal/middleware"
	"github.com/emre/learnhub/internal/pkg/helpers"
)

// AdminController handles the dashboard and administration operations
type AdminController struct {
	adminService    *services.AdminService
	tutoringService *services.TutoringService
}

// NewAdminController creates a new AdminController
func NewAdminController(adminService *services.AdminService, tutoringService *services.TutoringService) *AdminController {
	return &AdminController{
		adminService:    adminService,
		tutoringService: tutoringService,
	}
}

// UserGrowth retrieves the signup chart series
// @Summary User growth chart
// @Description Retrieves signup counts bucketed over WEEK, MONTH or YEAR
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param period query string false "Bucketing period" Enums(WEEK, MONTH, YEAR) default(MONTH)
// @Success 200 {object} dto.APIResponse{data=[]dto.GrowthPoint} "Growth series"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/stats/growth [get]
func (c *AdminController) UserGrowth(ctx *gin.Context) {
	period := models.GrowthPeriod(ctx.DefaultQuery("period", string(models.GrowthPeriodMonth)))

	points, err := c.adminService.UserGrowth(ctx, period)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      points,
		Timestamp: time.Now(),
	})
}

// CoursePerformance retrieves the top-courses chart
// @Summary Course performance chart
// @Description Retrieves the top courses by enrollment with attributed revenue
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Number of courses" default(10)
// @Success 200 {object} dto.APIResponse{data=[]dto.CoursePerformance} "Performance rows"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/stats/courses [get]
func (c *AdminController) CoursePerformance(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))

	rows, err := c.adminService.CoursePerformance(ctx, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      rows,
		Timestamp: time.Now(),
	})
}

// PlatformStats retrieves the statistics table
// @Summary Platform statistics
// @Description Retrieves the headline numbers for the admin dashboard
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.PlatformStats} "Statistics"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/stats [get]
func (c *AdminController) PlatformStats(ctx *gin.Context) {
	stats, err := c.adminService.PlatformStats(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      stats,
		Timestamp: time.Now(),
	})
}

// ListUsers retrieves all accounts
// @Summary List users
// @Description Retrieves all user accounts, paginated
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Users"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/users [get]
func (c *AdminController) ListUsers(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	users, total, err := c.adminService.ListUsers(ctx, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, dto.FromUser(user))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.PaginatedResponse{
			Items:      responses,
			Pagination: helpers.NewPaginationInfo(total, page, size),
		},
		Timestamp: time.Now(),
	})
}

// SetUserActive enables or disables an account
// @Summary Enable or disable a user
// @Description Toggles an account's active flag. Admin accounts cannot be disabled.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body dto.SetUserActiveRequest true "Active flag"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "State changed"
// @Failure 403 {object} dto.ErrorResponse "Admin accounts cannot be deactivated"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/users/{id}/active [put]
func (c *AdminController) SetUserActive(ctx *gin.Context) {
	userID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.SetUserActiveRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.adminService.SetUserActive(ctx, userID, *req.IsActive); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "User state changed"},
		Timestamp: time.Now(),
	})
}

// ListPendingSessions retrieves sessions awaiting moderation
// @Summary List pending sessions
// @Description Retrieves tutoring sessions awaiting moderation
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.TutoringSession} "Pending sessions"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/tutoring/sessions [get]
func (c *AdminController) ListPendingSessions(ctx *gin.Context) {
	sessions, err := c.tutoringService.ListPendingSessions(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      sessions,
		Timestamp: time.Now(),
	})
}

// ApproveSession approves a pending session
// @Summary Approve a session
// @Description Moves a pending tutoring session to APPROVED
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Success 200 {object} dto.APIResponse{data=models.TutoringSession} "Approved session"
// @Failure 409 {object} dto.ErrorResponse "Invalid status transition"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/tutoring/sessions/{id}/approve [post]
func (c *AdminController) ApproveSession(ctx *gin.Context) {
	c.moderateSession(ctx, true)
}

// RejectSession rejects a pending session
// @Summary Reject a session
// @Description Moves a pending tutoring session to REJECTED
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Success 200 {object} dto.APIResponse{data=models.TutoringSession} "Rejected session"
// @Failure 409 {object} dto.ErrorResponse "Invalid status transition"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/tutoring/sessions/{id}/reject [post]
func (c *AdminController) RejectSession(ctx *gin.Context) {
	c.moderateSession(ctx, false)
}

func (c *AdminController) moderateSession(ctx *gin.Context, approve bool) {
	sessionID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	session, err := c.tutoringService.ModerateSession(ctx, sessionID, approve)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      session,
		Timestamp: time.Now(),
	})
}
