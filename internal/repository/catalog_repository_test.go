package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestLoadCatalog(t *testing.T) {
	t.Run("full header with dietary flags", func(t *testing.T) {
		data := "id,title,description,price,sugar_free,gluten_free,contains_nuts\n" +
			"1,Choc Chip,Classic chocolate chip,$2.00,no,no,yes\n" +
			"2,Oatmeal,Hearty oatmeal cookie,1.50,Yes,Y,no\n"

		products, err := LoadCatalog(strings.NewReader(data))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(products) != 2 {
			t.Fatalf("expected 2 products, got %d", len(products))
		}

		first := products[0]
		if first.ID != 1 || first.Title != "Choc Chip" {
			t.Errorf("unexpected first product: %+v", first)
		}
		if !first.Price.Equal(decimal.RequireFromString("2.00")) {
			t.Errorf("expected price 2.00, got %s", first.Price)
		}
		if !first.ContainsNuts || first.SugarFree || first.GlutenFree {
			t.Errorf("unexpected flags on first product: %+v", first)
		}

		second := products[1]
		if !second.SugarFree || !second.GlutenFree || second.ContainsNuts {
			t.Errorf("expected yes/Y flags to parse true: %+v", second)
		}
	})

	t.Run("minimal header defaults flags to false", func(t *testing.T) {
		data := "id,title,description,price\n" +
			"7,Snickerdoodle,Cinnamon sugar,0.99\n"

		products, err := LoadCatalog(strings.NewReader(data))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(products) != 1 {
			t.Fatalf("expected 1 product, got %d", len(products))
		}
		p := products[0]
		if p.SugarFree || p.GlutenFree || p.ContainsNuts {
			t.Errorf("expected all flags false, got %+v", p)
		}
	})

	t.Run("price with currency symbol and padding", func(t *testing.T) {
		data := "id,title,description,price\n" +
			"3,Macaron,Delicate almond shell, $ 3.50 \n"

		products, err := LoadCatalog(strings.NewReader(data))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !products[0].Price.Equal(decimal.RequireFromString("3.50")) {
			t.Errorf("expected price 3.50, got %s", products[0].Price)
		}
	})

	t.Run("order preserved from source", func(t *testing.T) {
		data := "id,title,description,price\n" +
			"5,Fifth,desc,1.00\n" +
			"2,Second,desc,1.00\n" +
			"9,Ninth,desc,1.00\n"

		products, err := LoadCatalog(strings.NewReader(data))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		wantIDs := []int64{5, 2, 9}
		for i, want := range wantIDs {
			if products[i].ID != want {
				t.Errorf("position %d: expected id %d, got %d", i, want, products[i].ID)
			}
		}
	})

	t.Run("header only yields empty catalog", func(t *testing.T) {
		products, err := LoadCatalog(strings.NewReader("id,title,description,price\n"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(products) != 0 {
			t.Errorf("expected empty catalog, got %d products", len(products))
		}
	})

	tests := []struct {
		name      string
		data      string
		wantField string
	}{
		{
			name:      "unparseable id",
			data:      "id,title,description,price\nabc,Bad,desc,1.00\n",
			wantField: "id",
		},
		{
			name:      "unparseable price",
			data:      "id,title,description,price\n1,Bad,desc,free\n",
			wantField: "price",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCatalog(strings.NewReader(tt.data))

			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected *ParseError, got %v", err)
			}
			if parseErr.Field != tt.wantField {
				t.Errorf("expected field %q, got %q", tt.wantField, parseErr.Field)
			}
			if parseErr.Record != 1 {
				t.Errorf("expected record 1, got %d", parseErr.Record)
			}
		})
	}

	t.Run("missing required column", func(t *testing.T) {
		_, err := LoadCatalog(strings.NewReader("id,title,price\n1,Bare,1.00\n"))
		if err == nil {
			t.Fatal("expected error for missing description column, got nil")
		}
	})

	t.Run("missing optional flag field is not an error", func(t *testing.T) {
		// Flag columns are declared but the record is short.
		data := "id,title,description,price,sugar_free,gluten_free,contains_nuts\n" +
			"1,Short,desc,1.00\n"

		products, err := LoadCatalog(strings.NewReader(data))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if products[0].SugarFree || products[0].GlutenFree || products[0].ContainsNuts {
			t.Errorf("expected absent flags to default false, got %+v", products[0])
		}
	})
}

func TestCSVCatalogRepository(t *testing.T) {
	writeCatalog := func(t *testing.T, data string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "cookies.csv")
		if err := os.WriteFile(path, []byte(data), 0644); err != nil {
			t.Fatalf("failed to write catalog file: %v", err)
		}
		return path
	}

	t.Run("load and look up", func(t *testing.T) {
		path := writeCatalog(t, "id,title,description,price,contains_nuts\n"+
			"1,Choc Chip,Classic,$2.00,yes\n"+
			"2,Shortbread,Buttery,$1.25,no\n")

		repo, err := NewCSVCatalogRepository(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		ctx := context.Background()
		all, err := repo.GetAll(ctx)
		if err != nil {
			t.Fatalf("GetAll() error: %v", err)
		}
		if len(all) != 2 {
			t.Fatalf("expected 2 products, got %d", len(all))
		}

		product, err := repo.GetByID(ctx, 2)
		if err != nil {
			t.Fatalf("GetByID(2) error: %v", err)
		}
		if product.Title != "Shortbread" {
			t.Errorf("expected Shortbread, got %s", product.Title)
		}

		if _, err := repo.GetByID(ctx, 99); !errors.Is(err, ErrProductNotFound) {
			t.Errorf("expected ErrProductNotFound, got %v", err)
		}
	})

	t.Run("malformed catalog fails construction", func(t *testing.T) {
		path := writeCatalog(t, "id,title,description,price\nnope,Bad,desc,1.00\n")

		if _, err := NewCSVCatalogRepository(path); err == nil {
			t.Error("expected error for malformed catalog, got nil")
		}
	})

	t.Run("missing file fails construction", func(t *testing.T) {
		if _, err := NewCSVCatalogRepository("/non/existent/cookies.csv"); err == nil {
			t.Error("expected error for missing file, got nil")
		}
	})
}
