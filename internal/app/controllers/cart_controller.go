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

// CartController handles cart and checkout operations
type CartController struct {
	cartService        *services.CartService
	achievementService *services.AchievementService
}

// NewCartController creates a new CartController
func NewCartController(cartService *services.CartService, achievementService *services.AchievementService) *CartController {
	return &CartController{
		cartService:        cartService,
		achievementService: achievementService,
	}
}

// GetCart retrieves the cart with computed totals
// @Summary Get cart
// @Description Retrieves the authenticated user's cart with the receipt breakdown
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.CartSummary} "Cart summary"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /cart [get]
func (c *CartController) GetCart(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	summary, err := c.cartService.GetSummary(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      summary,
		Timestamp: time.Now(),
	})
}

// AddItem puts a course or bundle in the cart
// @Summary Add to cart
// @Description Adds a course or bundle to the cart. Students only.
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AddCartItemRequest true "Item to add"
// @Success 201 {object} dto.APIResponse{data=models.CartItem} "Item added"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Only students can buy content"
// @Failure 409 {object} dto.ErrorResponse "Already in cart or already enrolled"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /cart/items [post]
func (c *CartController) AddItem(ctx *gin.Context) {
	user := currentUser(ctx)
	if user == nil {
		return
	}

	var req dto.AddCartItemRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	item, err := c.cartService.AddItem(ctx, user, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      item,
		Timestamp: time.Now(),
	})
}

// RemoveItem deletes one cart entry
// @Summary Remove from cart
// @Description Removes one item from the authenticated user's cart
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Param id path int true "Cart item ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Item removed"
// @Failure 404 {object} dto.ErrorResponse "Cart item not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /cart/items/{id} [delete]
func (c *CartController) RemoveItem(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	itemID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.cartService.RemoveItem(ctx, userID, itemID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Item removed"},
		Timestamp: time.Now(),
	})
}

// Clear empties the cart
// @Summary Clear cart
// @Description Removes every item from the authenticated user's cart
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Cart cleared"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /cart [delete]
func (c *CartController) Clear(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	if err := c.cartService.Clear(ctx, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Cart cleared"},
		Timestamp: time.Now(),
	})
}

// CheckoutPoints pays for the cart with points
// @Summary Checkout with points
// @Description Pays for the whole cart from the points balance in one transaction
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.CheckoutResponse} "Checkout completed"
// @Failure 400 {object} dto.ErrorResponse "Cart is empty"
// @Failure 402 {object} dto.ErrorResponse "Insufficient points"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /cart/checkout/points [post]
func (c *CartController) CheckoutPoints(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	resp, err := c.cartService.CheckoutWithPoints(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.achievementService.HandleFirstEnrollment(ctx, userID)

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}

// CheckoutCard pays for the cart by card
// @Summary Checkout with card
// @Description Charges the discounted money total through the payment gateway
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CheckoutCardRequest true "Payment method"
// @Success 200 {object} dto.APIResponse{data=dto.CheckoutResponse} "Checkout completed"
// @Failure 400 {object} dto.ErrorResponse "Cart is empty"
// @Failure 402 {object} dto.ErrorResponse "Payment declined"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /cart/checkout/card [post]
func (c *CartController) CheckoutCard(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	var req dto.CheckoutCardRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.cartService.CheckoutWithCard(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.achievementService.HandleFirstEnrollment(ctx, userID)

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}

// currentUser reads the loaded user from the context, set by ActiveUser
func currentUser(ctx *gin.Context) *models.User {
	value, exists := ctx.Get("currentUser")
	if !exists {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return nil
	}

	user, ok := value.(*models.User)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(errorDetail))
		return nil
	}

	return user
}
