package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emre/learnhub/internal/app/models/dto"
	"github.com/emre/learnhub/internal/app/services"
	"github.com/emre/learnhub/internal/middleware"
)

// SubscriptionController handles plan, subscription and bundle operations
type SubscriptionController struct {
	subscriptionService *services.SubscriptionService
}

// NewSubscriptionController creates a new SubscriptionController
func NewSubscriptionController(subscriptionService *services.SubscriptionService) *SubscriptionController {
	return &SubscriptionController{
		subscriptionService: subscriptionService,
	}
}

// ListPlans retrieves the purchasable plans
// @Summary List subscription plans
// @Description Retrieves the active subscription plans ordered by price
// @Tags subscriptions
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.SubscriptionPlan} "Plans"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /subscriptions/plans [get]
func (c *SubscriptionController) ListPlans(ctx *gin.Context) {
	plans, err := c.subscriptionService.ListPlans(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      plans,
		Timestamp: time.Now(),
	})
}

// Subscribe purchases a plan
// @Summary Subscribe to a plan
// @Description Charges the plan price and opens a subscription period
// @Tags subscriptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SubscribeRequest true "Plan purchase"
// @Success 201 {object} dto.APIResponse{data=models.Subscription} "Subscription started"
// @Failure 402 {object} dto.ErrorResponse "Payment declined"
// @Failure 404 {object} dto.ErrorResponse "Plan not found"
// @Failure 409 {object} dto.ErrorResponse "Already subscribed"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /subscriptions [post]
func (c *SubscriptionController) Subscribe(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	var req dto.SubscribeRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	sub, err := c.subscriptionService.Subscribe(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      sub,
		Timestamp: time.Now(),
	})
}

// GetActive retrieves the current subscription
// @Summary Get active subscription
// @Description Retrieves the authenticated user's current subscription with its plan
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.Subscription} "Subscription"
// @Failure 404 {object} dto.ErrorResponse "No active subscription"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /subscriptions/active [get]
func (c *SubscriptionController) GetActive(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	sub, err := c.subscriptionService.GetActive(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      sub,
		Timestamp: time.Now(),
	})
}

// Cancel stops renewal of the subscription
// @Summary Cancel subscription
// @Description Stops renewal. Access runs until the period ends.
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Subscription canceled"
// @Failure 404 {object} dto.ErrorResponse "No active subscription"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /subscriptions/active [delete]
func (c *SubscriptionController) Cancel(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	if err := c.subscriptionService.Cancel(ctx, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Subscription canceled"},
		Timestamp: time.Now(),
	})
}

// ListBundles retrieves the purchasable bundles
// @Summary List bundles
// @Description Retrieves the active course bundles with their course counts
// @Tags bundles
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Bundle} "Bundles"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /bundles [get]
func (c *SubscriptionController) ListBundles(ctx *gin.Context) {
	bundles, err := c.subscriptionService.ListBundles(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      bundles,
		Timestamp: time.Now(),
	})
}

// GetBundle retrieves a bundle with its courses
// @Summary Get bundle details
// @Description Retrieves a bundle and the courses it contains
// @Tags bundles
// @Produce json
// @Param id path int true "Bundle ID"
// @Success 200 {object} dto.APIResponse{data=models.Bundle} "Bundle"
// @Failure 404 {object} dto.ErrorResponse "Bundle not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /bundles/{id} [get]
func (c *SubscriptionController) GetBundle(ctx *gin.Context) {
	bundleID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	bundle, err := c.subscriptionService.GetBundle(ctx, bundleID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      bundle,
		Timestamp: time.Now(),
	})
}

// CreateBundle creates a discounted course bundle
// @Summary Create bundle
// @Description Groups courses into a discounted purchasable bundle
// @Tags admin
// @Accept json
// @Produce json
// @Param request body dto.CreateBundleRequest true "Bundle details"
// @Success 201 {object} dto.APIResponse{data=models.Bundle} "Created bundle"
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /admin/bundles [post]
func (c *SubscriptionController) CreateBundle(ctx *gin.Context) {
	var req dto.CreateBundleRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	bundle, err := c.subscriptionService.CreateBundle(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      bundle,
		Timestamp: time.Now(),
	})
}
