package domain

import (
	"strconv"
	"strings"
)

// Draft holds user-entered listing fields prior to store-assigned id and
// timestamp. All fields arrive as form text; Validate trims and checks them.
type Draft struct {
	Name        string
	Species     string
	Age         string
	Gender      string
	Price       string
	Description string
	Location    string
	Phone       string
	Photos      []PhotoRef
}

// Validate reports the first invalid field. A nil return means the draft is
// ready to be turned into a Listing.
func (d *Draft) Validate() error {
	required := []struct {
		field string
		value string
	}{
		{"name", d.Name},
		{"species", d.Species},
		{"age", d.Age},
		{"price", d.Price},
		{"location", d.Location},
		{"phone", d.Phone},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return &ValidationError{Field: r.field, Reason: "must not be empty"}
		}
	}

	if !Species(strings.TrimSpace(d.Species)).Valid() {
		return &ValidationError{Field: "species", Reason: "is not a known species"}
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(d.Price), 64)
	if err != nil {
		return &ValidationError{Field: "price", Reason: "must be a number"}
	}
	if price <= 0 {
		return &ValidationError{Field: "price", Reason: "must be positive"}
	}

	if len(d.Photos) > MaxListingPhotos {
		return &ValidationError{Field: "photos", Reason: "exceed the attachment limit"}
	}
	return nil
}

// PriceValue parses the draft price. Call only after Validate has passed.
func (d *Draft) PriceValue() float64 {
	price, _ := strconv.ParseFloat(strings.TrimSpace(d.Price), 64)
	return price
}
