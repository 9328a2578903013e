package models

import "github.com/shopspring/decimal"

// OrderLine is one entry the customer keyed in: a product id and how many.
// Lines are kept in entry order and duplicates are not merged.
type OrderLine struct {
	ProductID int64
	Quantity  int
}

// ReceiptLine is the priced form of an order line.
type ReceiptLine struct {
	Quantity int
	Title    string
	Subtotal decimal.Decimal
}

// Receipt summarizes a completed order.
// Total is always the exact sum of the line subtotals; a promo discount,
// when present, is carried separately so the breakdown still adds up.
type Receipt struct {
	Reference string
	Lines     []ReceiptLine
	Total     decimal.Decimal
	PromoCode string
	Discount  decimal.Decimal
	AmountDue decimal.Decimal
}
