package service

import (
	"context"

	"github.com/crumbworks/cookieshop/internal/models"
	"github.com/crumbworks/cookieshop/internal/repository"
)

// CatalogService handles business logic for the product catalog
type CatalogService struct {
	repo repository.CatalogRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(repo repository.CatalogRepository) *CatalogService {
	return &CatalogService{
		repo: repo,
	}
}

// ListProducts returns the full catalog in load order
func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.repo.GetAll(ctx)
}

// GetProduct returns a product by ID
func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// FilterByRestrictions returns the subsequence of the catalog that is safe
// under the given restrictions, in catalog order.
func (s *CatalogService) FilterByRestrictions(ctx context.Context, r models.Restrictions) ([]models.Product, error) {
	products, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		if Compatible(p, r) {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// Compatible reports whether a product is safe under the given
// restrictions: no nuts for nut allergies, gluten-free for gluten
// allergies, sugar-free for diabetics.
func Compatible(p models.Product, r models.Restrictions) bool {
	if r.AllergicToNuts && p.ContainsNuts {
		return false
	}
	if r.AllergicToGluten && !p.GlutenFree {
		return false
	}
	if r.Diabetic && !p.SugarFree {
		return false
	}
	return true
}
