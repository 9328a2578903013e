package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/crumbworks/cookieshop/internal/models"
	"github.com/crumbworks/cookieshop/internal/repository"
	"github.com/crumbworks/cookieshop/internal/service"
	"github.com/shopspring/decimal"
)

// Shop runs the interactive point-of-sale session: welcome questions,
// catalog listing, order entry, receipt. All customer I/O goes through the
// injected reader and writer so sessions can be scripted in tests.
type Shop struct {
	name         string
	catalog      *service.CatalogService
	orders       *service.OrderService
	promoEnabled bool
	in           *bufio.Scanner
	out          io.Writer
	logger       *slog.Logger
}

// NewShop creates a new interactive shop session
func NewShop(name string, catalog *service.CatalogService, orders *service.OrderService, promoEnabled bool, in io.Reader, out io.Writer, logger *slog.Logger) *Shop {
	return &Shop{
		name:         name,
		catalog:      catalog,
		orders:       orders,
		promoEnabled: promoEnabled,
		in:           bufio.NewScanner(in),
		out:          out,
		logger:       logger,
	}
}

// Run drives one complete session. Input running out mid-session is not an
// error: the order is closed with whatever was collected so far.
func (s *Shop) Run(ctx context.Context) error {
	restrictions, err := s.welcome()
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	s.logger.Debug("restrictions collected",
		"nuts", restrictions.AllergicToNuts,
		"gluten", restrictions.AllergicToGluten,
		"diabetic", restrictions.Diabetic,
	)

	filtered, err := s.catalog.FilterByRestrictions(ctx, restrictions)
	if err != nil {
		return fmt.Errorf("filter catalog: %w", err)
	}
	s.displayProducts(filtered)

	lines, err := s.solicitOrder(ctx)
	if err != nil {
		return err
	}
	s.logger.Info("order collected", "lines", len(lines))

	promoCode := ""
	if len(lines) > 0 && s.promoEnabled {
		promoCode, err = s.askPromoCode()
		if err != nil {
			return err
		}
	}

	receipt, err := s.orders.Summarize(ctx, lines, promoCode)
	if errors.Is(err, service.ErrInvalidPromoCode) {
		fmt.Fprintln(s.out, "That promo code isn't valid, so regular prices apply.")
		receipt, err = s.orders.Summarize(ctx, lines, "")
	}
	if err != nil {
		return fmt.Errorf("summarize order: %w", err)
	}

	s.printReceipt(receipt)
	if len(receipt.Lines) > 0 {
		s.logger.Info("order complete",
			"reference", receipt.Reference,
			"total", receipt.Total.StringFixed(2),
			"amount_due", receipt.AmountDue.StringFixed(2),
		)
	}
	return nil
}

// welcome greets the customer and collects the three dietary flags.
// Answers are taken as-is; anything that isn't a yes counts as a no.
func (s *Shop) welcome() (models.Restrictions, error) {
	fmt.Fprintf(s.out, "Welcome to %s!\n", s.name)
	fmt.Fprintln(s.out, "We feed each according to their need.")
	fmt.Fprintln(s.out, "We'd hate to trigger an allergic reaction in your body. So please answer the following questions:")

	var r models.Restrictions
	var err error
	if r.AllergicToNuts, err = s.askYesNo("Are you allergic to nuts? (yes/no): "); err != nil {
		return r, err
	}
	if r.AllergicToGluten, err = s.askYesNo("Are you allergic to gluten? (yes/no): "); err != nil {
		return r, err
	}
	if r.Diabetic, err = s.askYesNo("Do you suffer from diabetes? (yes/no): "); err != nil {
		return r, err
	}
	return r, nil
}

func (s *Shop) askYesNo(prompt string) (bool, error) {
	fmt.Fprint(s.out, prompt)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return false, fmt.Errorf("read input: %w", err)
		}
		return false, io.EOF
	}
	return ParseYesNo(s.in.Text()), nil
}

// displayProducts renders the filtered catalog, or a single apology when
// nothing survives the customer's restrictions.
func (s *Shop) displayProducts(products []models.Product) {
	if len(products) == 0 {
		fmt.Fprintln(s.out, "Sorry, there are no cookies that match your dietary needs.")
		return
	}

	fmt.Fprintln(s.out, "Great! Here are the cookies that we think you might like:")
	for _, p := range products {
		fmt.Fprintf(s.out, "#%d - %s\n", p.ID, p.Title)
		fmt.Fprintln(s.out, p.Description)
		fmt.Fprintf(s.out, "Price: $%s\n", p.Price.StringFixed(2))
		fmt.Fprintln(s.out)
	}
}

// solicitOrder loops on product ids until a sentinel word (or end of
// input) closes the order. Ids are validated against the full catalog, not
// the filtered listing; the filter only shapes what gets displayed.
func (s *Shop) solicitOrder(ctx context.Context) ([]models.OrderLine, error) {
	var lines []models.OrderLine
	for {
		token, err := Ask(s.in, s.out,
			"Please enter the number of any cookie you would like to purchase (type 'finished' to end): ",
			ParseOrderToken,
		)
		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return lines, err
		}
		if token.Done {
			return lines, nil
		}

		product, err := s.catalog.GetProduct(ctx, token.ID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				fmt.Fprintln(s.out, "Invalid cookie ID. Please try again.")
				continue
			}
			return lines, fmt.Errorf("look up product %d: %w", token.ID, err)
		}

		quantity, err := s.solicitQuantity(product)
		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return lines, err
		}
		if quantity > 0 {
			lines = append(lines, models.OrderLine{ProductID: product.ID, Quantity: quantity})
			s.logger.Debug("order line added", "product_id", product.ID, "quantity", quantity)
		}
	}
}

// solicitQuantity asks how many of the product the customer wants,
// retrying until the answer is a positive integer, then confirms the
// subtotal for that line.
func (s *Shop) solicitQuantity(product *models.Product) (int, error) {
	prompt := fmt.Sprintf("My favorite! How many %s would you like? ", product.Title)
	quantity, err := Ask(s.in, s.out, prompt, ParseQuantity)
	if err != nil {
		return 0, err
	}

	subtotal := product.Price.Mul(decimal.NewFromInt(int64(quantity)))
	fmt.Fprintf(s.out, "Your subtotal for %d %s is $%s.\n", quantity, product.Title, subtotal.StringFixed(2))
	return quantity, nil
}

// askPromoCode asks once for a promo code. Blank skips; there is no retry
// here, an invalid code is reported later when the receipt is built.
func (s *Shop) askPromoCode() (string, error) {
	fmt.Fprint(s.out, "Do you have a promo code? (press enter to skip): ")
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", nil
	}
	return strings.TrimSpace(s.in.Text()), nil
}

// printReceipt renders the final breakdown. The sign-off line is printed
// whether or not anything was ordered.
func (s *Shop) printReceipt(r *models.Receipt) {
	if len(r.Lines) == 0 {
		fmt.Fprintln(s.out, "You didn't order any cookies.")
	} else {
		fmt.Fprintln(s.out, "Thank you for your order. You have ordered:")
		for _, line := range r.Lines {
			fmt.Fprintf(s.out, "- %d %s (Subtotal: $%s)\n", line.Quantity, line.Title, line.Subtotal.StringFixed(2))
		}
		fmt.Fprintf(s.out, "Your total is $%s.\n", r.Total.StringFixed(2))
		if r.PromoCode != "" {
			fmt.Fprintf(s.out, "Promo code %s applied: -$%s.\n", r.PromoCode, r.Discount.StringFixed(2))
			fmt.Fprintf(s.out, "Amount due: $%s.\n", r.AmountDue.StringFixed(2))
		}
		fmt.Fprintf(s.out, "Order reference: %s\n", r.Reference)
		fmt.Fprintln(s.out, "Please pay at the counter when picking up.")
	}
	fmt.Fprintf(s.out, "Thank you!\n- %s\n", s.name)
}
