package models

import "github.com/shopspring/decimal"

// Product represents one cookie in the shop catalog.
// Products are immutable once loaded; downstream components share the
// loaded slice and never modify it.
type Product struct {
	ID           int64
	Title        string
	Description  string
	Price        decimal.Decimal
	SugarFree    bool
	GlutenFree   bool
	ContainsNuts bool
}
