package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emre/learnhub/internal/app/models/dto"
	"github.com/emre/learnhub/internal/app/services"
	"github.com/emre/learnhub/internal/middleware"
)

// UserController handles achievements and certificates
type UserController struct {
	achievementService *services.AchievementService
}

// NewUserController creates a new UserController
func NewUserController(achievementService *services.AchievementService) *UserController {
	return &UserController{
		achievementService: achievementService,
	}
}

// ListAchievements retrieves the user's achievements
// @Summary List achievements
// @Description Retrieves the authenticated user's achievements, completed first
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Achievement} "Achievements"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /achievements [get]
func (c *UserController) ListAchievements(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	achievements, err := c.achievementService.ListAchievements(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      achievements,
		Timestamp: time.Now(),
	})
}

// ListCertificates retrieves the user's certificates
// @Summary List certificates
// @Description Retrieves the authenticated user's course completion certificates
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Certificate} "Certificates"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /certificates [get]
func (c *UserController) ListCertificates(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	certificates, err := c.achievementService.ListCertificates(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      certificates,
		Timestamp: time.Now(),
	})
}
