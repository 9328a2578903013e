package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/crumbworks/cookieshop/internal/models"
	"github.com/crumbworks/cookieshop/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrUnknownProduct   = errors.New("unknown product")
	ErrInvalidQuantity  = errors.New("quantity must be positive")
	ErrInvalidPromoCode = errors.New("promo code is not valid")
)

// PromoValidator answers whether a promo code is redeemable
type PromoValidator interface {
	IsValid(code string) bool
}

// OrderService computes receipts from collected order lines
type OrderService struct {
	catalog         repository.CatalogRepository
	promoValidator  PromoValidator
	discountPercent int64
}

// NewOrderService creates a new order service. promoValidator may be nil,
// in which case every promo code is rejected.
func NewOrderService(catalog repository.CatalogRepository, promoValidator PromoValidator, discountPercent int64) *OrderService {
	return &OrderService{
		catalog:         catalog,
		promoValidator:  promoValidator,
		discountPercent: discountPercent,
	}
}

// Summarize prices each order line against the full catalog and builds the
// receipt. Lines keep their entry order; duplicates stay separate. An empty
// order yields an empty receipt, not an error. A non-empty promoCode must
// pass validation or the whole call fails with ErrInvalidPromoCode.
func (s *OrderService) Summarize(ctx context.Context, lines []models.OrderLine, promoCode string) (*models.Receipt, error) {
	receipt := &models.Receipt{
		Total:     decimal.Zero,
		AmountDue: decimal.Zero,
	}
	if len(lines) == 0 {
		return receipt, nil
	}

	if promoCode != "" {
		if s.promoValidator == nil || !s.promoValidator.IsValid(promoCode) {
			return nil, ErrInvalidPromoCode
		}
	}

	total := decimal.Zero
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}

		product, err := s.catalog.GetByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return nil, fmt.Errorf("%w: id %d", ErrUnknownProduct, line.ProductID)
			}
			return nil, err
		}

		subtotal := product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		receipt.Lines = append(receipt.Lines, models.ReceiptLine{
			Quantity: line.Quantity,
			Title:    product.Title,
			Subtotal: subtotal,
		})
		total = total.Add(subtotal)
	}

	receipt.Total = total
	receipt.AmountDue = total
	if promoCode != "" {
		receipt.PromoCode = promoCode
		receipt.Discount = total.Mul(decimal.NewFromInt(s.discountPercent)).Div(decimal.NewFromInt(100)).Round(2)
		receipt.AmountDue = total.Sub(receipt.Discount)
	}
	receipt.Reference = uuid.New().String()

	return receipt, nil
}
