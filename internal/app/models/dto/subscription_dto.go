package dto

// SubscribeRequest purchases a subscription plan
type SubscribeRequest struct {
	PlanID          int64  `json:"planId" binding:"required,min=1"`
	AutoRenew       bool   `json:"autoRenew"`
	PaymentMethodID string `json:"paymentMethodId" binding:"required"`
}

// CreateBundleRequest groups courses into a discounted purchasable unit
type CreateBundleRequest struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Description *string `json:"description,omitempty"`
	Price       int64   `json:"price" binding:"min=0"`
	PointsPrice int64   `json:"pointsPrice" binding:"min=0"`
	Discount    int64   `json:"discount" binding:"min=0"`
	CourseIDs   []int64 `json:"courseIds" binding:"required,min=1,dive,min=1"`
}
