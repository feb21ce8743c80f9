package model

import "github.com/google/uuid"

// AddressType distinguishes shipping from billing addresses.
type AddressType string

const (
	AddressTypeShipping AddressType = "shipping"
	AddressTypeBilling  AddressType = "billing"
)

// Address is a stored shipping or billing address. At most one address per
// (user, type) carries IsDefault=true; the swap happens transactionally in
// the checkout service.
type Address struct {
	ID               uuid.UUID   `json:"id" db:"id"`
	UserID           uuid.UUID   `json:"userId" db:"user_id"`
	StreetAddress    string      `json:"streetAddress" db:"street_address"`
	ApartmentAddress string      `json:"apartmentAddress,omitempty" db:"apartment_address"`
	Country          string      `json:"country" db:"country"`
	Zip              string      `json:"zip" db:"zip"`
	Type             AddressType `json:"addressType" db:"address_type"`
	IsDefault        bool        `json:"isDefault" db:"is_default"`
}

// AddressInput carries address fields supplied on checkout.
type AddressInput struct {
	StreetAddress    string `json:"streetAddress"`
	ApartmentAddress string `json:"apartmentAddress"`
	Country          string `json:"country"`
	Zip              string `json:"zip"`
}

// MissingFields reports which required address fields are empty.
// Apartment is optional.
func (a *AddressInput) MissingFields() []string {
	var missing []string
	if a.StreetAddress == "" {
		missing = append(missing, "streetAddress")
	}
	if a.Country == "" {
		missing = append(missing, "country")
	}
	if a.Zip == "" {
		missing = append(missing, "zip")
	}
	return missing
}
