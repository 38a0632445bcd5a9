package service

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/vbonduro/kondate/internal/domain"
)

const maxNameLen = 200

// FoodInput is the raw form or flag input for a new item.
type FoodInput struct {
	Name         string
	PurchaseDate string
	ExpiryDate   string
	Quantity     string
}

// Validate checks every field and returns the parsed item, or a
// *ValidationError listing all problems.
func (in FoodInput) Validate() (domain.NewFoodItem, error) {
	var (
		item domain.NewFoodItem
		verr ValidationError
	)

	item.Name = strings.TrimSpace(in.Name)
	switch {
	case item.Name == "":
		verr.add("name", "name is required")
	case len(item.Name) > maxNameLen:
		verr.add("name", "name is too long")
	}

	item.PurchaseDate = parseDate(&verr, "purchase_date", in.PurchaseDate)
	item.ExpiryDate = parseDate(&verr, "expiry_date", in.ExpiryDate)

	qty := strings.TrimSpace(in.Quantity)
	if qty == "" {
		verr.add("quantity", "quantity is required")
	} else if q, err := strconv.ParseFloat(qty, 64); err != nil {
		verr.add("quantity", "quantity must be a number")
	} else if q <= 0 || math.IsInf(q, 0) || math.IsNaN(q) {
		verr.add("quantity", "quantity must be greater than zero")
	} else {
		item.Quantity = q
	}

	if len(verr.Fields) > 0 {
		return domain.NewFoodItem{}, &verr
	}
	return item, nil
}

func parseDate(verr *ValidationError, field, value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		verr.add(field, "date is required")
		return time.Time{}
	}
	d, err := time.Parse(domain.DateLayout, value)
	if err != nil {
		verr.add(field, "date must be in YYYY-MM-DD format")
		return time.Time{}
	}
	return d
}
