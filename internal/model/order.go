package model

import (
	"slices"
	"strings"
)

// Participant is one person sharing an order.
// A name ending in "/2" marks a half portion; the suffix stays in the name.
type Participant struct {
	Name string `json:"name"`
	Half bool   `json:"half"`
	Paid bool   `json:"paid"`
}

// Order is a stored pizza order. ID and LastModified are assigned by the store.
type Order struct {
	ID           string        `json:"id"`
	LastModified int64         `json:"last_modified"`
	Price        float64       `json:"price"`
	Date         string        `json:"date"`
	Participants []Participant `json:"participants"`
}

// Draft is an order being typed in, not yet submitted.
type Draft struct {
	Date         string        `json:"date"`
	Price        float64       `json:"price"`
	Participants []Participant `json:"participants"`
}

// IsZero reports whether nothing has been entered yet.
func (d Draft) IsZero() bool {
	return d.Date == "" && d.Price == 0 && len(d.Participants) == 0
}

// Tombstone is what the store returns for a deleted record.
type Tombstone struct {
	ID           string `json:"id"`
	LastModified int64  `json:"last_modified"`
	Deleted      bool   `json:"deleted"`
}

// SortByDateDesc orders newest first. Dates are ISO strings so they compare lexically.
func SortByDateDesc(orders []Order) {
	slices.SortStableFunc(orders, func(a, b Order) int {
		return strings.Compare(b.Date, a.Date)
	})
}
