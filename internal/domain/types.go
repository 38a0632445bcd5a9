package domain

import "time"

// DateLayout is the ISO calendar date format used for purchase and expiry
// dates everywhere: input forms, the database and AI prompts.
const DateLayout = "2006-01-02"

type FoodItem struct {
	ID           int64
	Name         string
	PurchaseDate time.Time
	ExpiryDate   time.Time
	Quantity     float64
}

// NewFoodItem is a validated item that has not been stored yet.
type NewFoodItem struct {
	Name         string
	PurchaseDate time.Time
	ExpiryDate   time.Time
	Quantity     float64
}

// DaysUntilExpiry returns the number of calendar days from now until the
// expiry date. It is negative once the item has expired.
func (f *FoodItem) DaysUntilExpiry(now time.Time) int {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	expiry := time.Date(f.ExpiryDate.Year(), f.ExpiryDate.Month(), f.ExpiryDate.Day(), 0, 0, 0, 0, time.UTC)
	return int(expiry.Sub(today).Hours() / 24)
}
