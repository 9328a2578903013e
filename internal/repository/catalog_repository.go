package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/crumbworks/cookieshop/internal/models"
	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ParseError reports a catalog record that could not be parsed.
// Record numbers are 1-based and count data records, not the header.
type ParseError struct {
	Record int
	Field  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("catalog record %d: bad %s: %v", e.Record, e.Field, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// CatalogRepository defines the interface for catalog data access
type CatalogRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id int64) (*models.Product, error)
}

// CSVCatalogRepository implements CatalogRepository over a catalog parsed
// once from a CSV file. The catalog is read-only after construction.
type CSVCatalogRepository struct {
	products []models.Product
	byID     map[int64]int
}

// NewCSVCatalogRepository parses the catalog file at path and builds the
// repository. The file handle is released as soon as parsing finishes.
func NewCSVCatalogRepository(path string) (*CSVCatalogRepository, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	products, err := LoadCatalog(f)
	if err != nil {
		return nil, err
	}
	return NewStaticCatalogRepository(products), nil
}

// NewStaticCatalogRepository wraps an already-built product list.
func NewStaticCatalogRepository(products []models.Product) *CSVCatalogRepository {
	byID := make(map[int64]int, len(products))
	for i, p := range products {
		// First record wins on duplicate ids, matching lookup order.
		if _, exists := byID[p.ID]; !exists {
			byID[p.ID] = i
		}
	}
	return &CSVCatalogRepository{
		products: products,
		byID:     byID,
	}
}

// GetAll returns all products in catalog order
func (r *CSVCatalogRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	return r.products, nil
}

// GetByID returns a product by its ID
func (r *CSVCatalogRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	i, exists := r.byID[id]
	if !exists {
		return nil, ErrProductNotFound
	}
	product := r.products[i]
	return &product, nil
}

// LoadCatalog parses a CSV catalog. The first record is a header naming
// the columns; id, title, description and price are required, the three
// dietary flag columns are optional and default to false when absent.
func LoadCatalog(r io.Reader) ([]models.Product, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("catalog is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read catalog header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"id", "title", "description", "price"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("catalog header missing %q column", required)
		}
	}

	field := func(record []string, name string) string {
		i, ok := columns[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	var products []models.Product
	for n := 1; ; n++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read catalog record %d: %w", n, err)
		}

		id, err := strconv.ParseInt(strings.TrimSpace(field(record, "id")), 10, 64)
		if err != nil {
			return nil, &ParseError{Record: n, Field: "id", Err: err}
		}

		price, err := parsePrice(field(record, "price"))
		if err != nil {
			return nil, &ParseError{Record: n, Field: "price", Err: err}
		}

		products = append(products, models.Product{
			ID:           id,
			Title:        field(record, "title"),
			Description:  field(record, "description"),
			Price:        price,
			SugarFree:    parseFlag(field(record, "sugar_free")),
			GlutenFree:   parseFlag(field(record, "gluten_free")),
			ContainsNuts: parseFlag(field(record, "contains_nuts")),
		})
	}

	return products, nil
}

// parsePrice accepts a decimal amount with an optional leading currency
// symbol, e.g. "$3.50" or " $ 3.50 ".
func parsePrice(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimSpace(s)
	return decimal.NewFromString(s)
}

// parseFlag treats "yes" and "y" (any case) as true, anything else as false.
func parseFlag(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y":
		return true
	}
	return false
}
