package models

import (
	"time"
)

// PointsTransaction is one entry in a user's points ledger.
// Amount is positive for EARNED/PURCHASED and negative for SPENT.
type PointsTransaction struct {
	ID          int64                 `json:"id" db:"id"`
	UserID      int64                 `json:"userId" db:"user_id"`
	Type        PointsTransactionType `json:"type" db:"type"`
	Amount      int64                 `json:"amount" db:"amount"`
	Description string                `json:"description" db:"description"`
	CreatedAt   time.Time             `json:"createdAt" db:"created_at"`
}

// PointsPackage is a fixed amount of points purchasable for money.
type PointsPackage struct {
	ID       int64  `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Points   int64  `json:"points" db:"points"`
	Price    int64  `json:"price" db:"price"` // cents
	IsActive bool   `json:"isActive" db:"is_active"`
}
