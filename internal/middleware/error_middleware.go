package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/emre/learnhub/internal/app/models/dto"
	"github.com/emre/learnhub/internal/pkg/apperrors"
)

// HandleAPIError maps service errors onto the standard error envelope.
// A CustomError's message overrides the default text for its category.
func HandleAPIError(c *gin.Context, err error) {
	message := func(fallback string) string {
		var custom *apperrors.CustomError
		if errors.As(err, &custom) && custom.Message != "" {
			return custom.Message
		}
		return fallback
	}

	switch {
	case apperrors.Is(err, apperrors.ErrResourceNotFound,
		apperrors.ErrUserNotFound,
		apperrors.ErrCourseNotFound,
		apperrors.ErrSessionNotFound,
		apperrors.ErrRequestNotFound,
		apperrors.ErrPlanNotFound,
		apperrors.ErrBundleNotFound,
		apperrors.ErrPackageNotFound,
		apperrors.ErrCartItemNotFound):
		c.JSON(404, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, message("Resource not found")),
		})

	case errors.Is(err, apperrors.ErrPermissionDenied):
		c.JSON(403, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeForbidden, message("Permission denied")),
		})

	case errors.Is(err, apperrors.ErrAccountDisabled):
		c.JSON(403, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeForbidden, "Account is disabled"),
		})

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(401, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials"),
		})

	case errors.Is(err, apperrors.ErrTokenExpired):
		c.JSON(401, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired"),
		})

	case apperrors.Is(err, apperrors.ErrTokenInvalid, apperrors.ErrTokenRevoked):
		c.JSON(401, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token"),
		})

	case errors.Is(err, apperrors.ErrTokenNotFound):
		c.JSON(401, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeTokenNotFound, "Token not found"),
		})

	case apperrors.Is(err, apperrors.ErrValidationFailed, apperrors.ErrBadRequest):
		c.JSON(400, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message("Validation failed")),
		})

	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		c.JSON(409, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Email already exists"),
		})

	case apperrors.Is(err, apperrors.ErrConflict,
		apperrors.ErrAlreadyEnrolled,
		apperrors.ErrAlreadyReviewed,
		apperrors.ErrAlreadyInCart,
		apperrors.ErrAlreadySubscribed):
		c.JSON(409, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, message("Conflict")),
		})

	case errors.Is(err, apperrors.ErrInvalidTransition):
		c.JSON(409, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidTransition, message("Invalid status transition")),
		})

	case errors.Is(err, apperrors.ErrNotEnrolled):
		c.JSON(403, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeForbidden, "Not enrolled in course"),
		})

	case errors.Is(err, apperrors.ErrCartEmpty):
		c.JSON(400, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceInvalid, "Cart is empty"),
		})

	case errors.Is(err, apperrors.ErrInsufficientPoints):
		c.JSON(402, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInsufficientPoints, "Insufficient points balance"),
		})

	case errors.Is(err, apperrors.ErrPaymentFailed):
		c.JSON(402, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodePaymentFailed, "Payment was declined"),
		})

	case errors.Is(err, apperrors.ErrNoSubscription):
		c.JSON(404, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "No active subscription"),
		})

	default:
		c.JSON(500, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"),
		})
	}
}
