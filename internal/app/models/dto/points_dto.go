package dto

// BalanceResponse reports the user's current points balance
type BalanceResponse struct {
	Balance int64 `json:"balance"`
}

// BuyPointsPackageRequest purchases a points package for money
type BuyPointsPackageRequest struct {
	PackageID       int64  `json:"packageId" binding:"required,min=1"`
	PaymentMethodID string `json:"paymentMethodId" binding:"required"`
}
