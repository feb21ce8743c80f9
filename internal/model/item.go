package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category classifies an item in the catalogue.
type Category string

const (
	CategoryShirt     Category = "shirt"
	CategorySportwear Category = "sportwear"
	CategoryOuterwear Category = "outerwear"
)

// Label is the display badge attached to an item.
type Label string

const (
	LabelPrimary   Label = "primary"
	LabelSecondary Label = "secondary"
	LabelDanger    Label = "danger"
)

// Item represents a purchasable catalogue item. Catalogue data is immutable
// at runtime; items are only ever read by the storefront.
type Item struct {
	ID            uuid.UUID        `json:"id" db:"id"`
	Title         string           `json:"title" db:"title"`
	Price         decimal.Decimal  `json:"price" db:"price"`
	DiscountPrice *decimal.Decimal `json:"discountPrice,omitempty" db:"discount_price"`
	Category      Category         `json:"category" db:"category"`
	Label         Label            `json:"label" db:"label"`
	Slug          string           `json:"slug" db:"slug"`
	Description   string           `json:"description" db:"description"`
	CreatedAt     time.Time        `json:"createdAt" db:"created_at"`
}

// EffectivePrice returns the unit price used in totals: the discount price
// when one is set, the regular price otherwise.
func (i *Item) EffectivePrice() decimal.Decimal {
	if i.DiscountPrice != nil {
		return *i.DiscountPrice
	}
	return i.Price
}
