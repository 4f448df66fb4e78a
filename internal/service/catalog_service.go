package service

import (
	"context"
	"fmt"

	"go-galon-gas/internal/apperr"
	"go-galon-gas/internal/model"
	"go-galon-gas/internal/repository"
	"go-galon-gas/internal/ws"
	"go-galon-gas/pkg/validator"
)

// CatalogService holds the product-side business rules: create/update
// validation plus the in-memory category, stock, and popular filters.
type CatalogService interface {
	GetAllProducts(ctx context.Context) ([]model.Product, error)
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	CreateProduct(ctx context.Context, req *model.Product) error
	UpdateProduct(ctx context.Context, id string, update *model.ProductUpdate) (*model.Product, error)
	UpdateStock(ctx context.Context, id string, inStock bool) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string) bool
	GetProductsByCategory(ctx context.Context, category model.ProductCategory) ([]model.Product, error)
	GetProductsByStock(ctx context.Context, inStock bool) ([]model.Product, error)
	GetPopularProducts(ctx context.Context) ([]model.Product, error)
}

type catalogService struct {
	productRepo repository.ProductRepository
	wsHub       *ws.Hub
}

func NewCatalogService(productRepo repository.ProductRepository, hub *ws.Hub) CatalogService {
	return &catalogService{
		productRepo: productRepo,
		wsHub:       hub,
	}
}

func (s *catalogService) GetAllProducts(ctx context.Context) ([]model.Product, error) {
	return s.productRepo.FindAll(ctx)
}

func (s *catalogService) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	return s.productRepo.FindByID(ctx, id)
}

func (s *catalogService) CreateProduct(ctx context.Context, req *model.Product) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return apperr.Validation("field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	if err := s.productRepo.Create(ctx, req); err != nil {
		return err
	}

	s.wsHub.Publish(ws.Event{
		Type:    "catalog_update",
		Action:  "product_created",
		Payload: req,
		Message: fmt.Sprintf("Product '%s' added to catalog", req.Name),
	})
	return nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, id string, update *model.ProductUpdate) (*model.Product, error) {
	if update.Price != nil && *update.Price < 0 {
		return nil, apperr.Validation("price must not be negative")
	}
	if update.Category != nil && *update.Category != model.CategoryGalon && *update.Category != model.CategoryGas {
		return nil, apperr.Validation("category must be one of: galon, gas")
	}

	updated, err := s.productRepo.Update(ctx, id, update)
	if err != nil || updated == nil {
		return updated, err
	}

	s.wsHub.Publish(ws.Event{
		Type:    "catalog_update",
		Action:  "product_updated",
		Payload: updated,
		Message: fmt.Sprintf("Product '%s' updated", updated.Name),
	})
	return updated, nil
}

func (s *catalogService) UpdateStock(ctx context.Context, id string, inStock bool) (*model.Product, error) {
	updated, err := s.productRepo.UpdateStock(ctx, id, inStock)
	if err != nil || updated == nil {
		return updated, err
	}

	s.wsHub.Publish(ws.Event{
		Type:    "catalog_update",
		Action:  "stock_changed",
		Payload: updated,
		Message: fmt.Sprintf("Product '%s' stock set to %t", updated.Name, inStock),
	})
	return updated, nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, id string) bool {
	ok := s.productRepo.Delete(ctx, id)
	if ok {
		s.wsHub.Publish(ws.Event{
			Type:    "catalog_update",
			Action:  "product_deleted",
			Payload: map[string]string{"id": id},
		})
	}
	return ok
}

func (s *catalogService) GetProductsByCategory(ctx context.Context, category model.ProductCategory) ([]model.Product, error) {
	return s.productRepo.FindByCategory(ctx, category)
}

func (s *catalogService) GetProductsByStock(ctx context.Context, inStock bool) ([]model.Product, error) {
	return s.productRepo.FindByStock(ctx, inStock)
}

func (s *catalogService) GetPopularProducts(ctx context.Context) ([]model.Product, error) {
	return s.productRepo.FindPopular(ctx)
}
