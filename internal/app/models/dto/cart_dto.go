package dto

// AddCartItemRequest adds a course or a bundle to the cart.
// Exactly one of the two identifiers must be set.
type AddCartItemRequest struct {
	CourseID *int64 `json:"courseId" binding:"omitempty,min=1"`
	BundleID *int64 `json:"bundleId" binding:"omitempty,min=1"`
}

// CheckoutCardRequest starts a card checkout for the current cart
type CheckoutCardRequest struct {
	PaymentMethodID string `json:"paymentMethodId" binding:"required"`
}

// CheckoutResponse reports the result of a checkout
type CheckoutResponse struct {
	EnrolledCourseIDs []int64 `json:"enrolledCourseIds"`
	PointsEarned      int64   `json:"pointsEarned"`
	PointsSpent       int64   `json:"pointsSpent,omitempty"`
	AmountCharged     int64   `json:"amountCharged,omitempty"` // cents
	PaymentIntentID   string  `json:"paymentIntentId,omitempty"`
}
