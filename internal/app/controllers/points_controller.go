package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emre/learnhub/internal/app/models/dto"
	"github.com/emre/learnhub/internal/app/services"
	"github.com/emre/learnhub/internal/middleware"
	"github.com/emre/learnhub/internal/pkg/helpers"
)

// PointsController handles points balance, ledger and package operations
type PointsController struct {
	pointsService *services.PointsService
}

// NewPointsController creates a new PointsController
func NewPointsController(pointsService *services.PointsService) *PointsController {
	return &PointsController{
		pointsService: pointsService,
	}
}

// GetBalance retrieves the current points balance
// @Summary Get points balance
// @Description Retrieves the authenticated user's points balance
// @Tags points
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.BalanceResponse} "Balance"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /points/balance [get]
func (c *PointsController) GetBalance(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	balance, err := c.pointsService.GetBalance(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      balance,
		Timestamp: time.Now(),
	})
}

// ListTransactions retrieves the points ledger
// @Summary List points transactions
// @Description Retrieves the authenticated user's points ledger, newest first
// @Tags points
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Transactions"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /points/transactions [get]
func (c *PointsController) ListTransactions(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	transactions, total, err := c.pointsService.ListTransactions(ctx, userID, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.PaginatedResponse{
			Items:      transactions,
			Pagination: helpers.NewPaginationInfo(total, page, size),
		},
		Timestamp: time.Now(),
	})
}

// ListPackages retrieves the purchasable points packages
// @Summary List points packages
// @Description Retrieves the active points packages
// @Tags points
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.PointsPackage} "Packages"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /points/packages [get]
func (c *PointsController) ListPackages(ctx *gin.Context) {
	packages, err := c.pointsService.ListPackages(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      packages,
		Timestamp: time.Now(),
	})
}

// BuyPackage purchases a points package by card
// @Summary Buy a points package
// @Description Charges a points package to the card and credits the balance
// @Tags points
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BuyPointsPackageRequest true "Package purchase"
// @Success 200 {object} dto.APIResponse{data=dto.BalanceResponse} "New balance"
// @Failure 402 {object} dto.ErrorResponse "Payment declined"
// @Failure 404 {object} dto.ErrorResponse "Package not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /points/packages/buy [post]
func (c *PointsController) BuyPackage(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	var req dto.BuyPointsPackageRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	balance, err := c.pointsService.BuyPackage(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      balance,
		Timestamp: time.Now(),
	})
}
