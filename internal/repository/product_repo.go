package repository

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"time"

	"go-galon-gas/internal/apperr"
	"go-galon-gas/internal/model"
	"go-galon-gas/pkg/kvstore"

	"github.com/google/uuid"
)

// ProductRepository owns the product:* keyspace. FindByID and Update signal
// absence with a nil record, not an error; Delete reports plain success.
type ProductRepository interface {
	FindAll(ctx context.Context) ([]model.Product, error)
	FindByID(ctx context.Context, id string) (*model.Product, error)
	Create(ctx context.Context, product *model.Product) error
	Update(ctx context.Context, id string, update *model.ProductUpdate) (*model.Product, error)
	UpdateStock(ctx context.Context, id string, inStock bool) (*model.Product, error)
	Delete(ctx context.Context, id string) bool
	FindByCategory(ctx context.Context, category model.ProductCategory) ([]model.Product, error)
	FindByStock(ctx context.Context, inStock bool) ([]model.Product, error)
	FindPopular(ctx context.Context) ([]model.Product, error)
}

type productRepo struct {
	store kvstore.Store
}

func NewProductRepo(store kvstore.Store) ProductRepository {
	return &productRepo{store: store}
}

// FindAll scans the product:* prefix and sorts by createdAt descending.
// An empty keyspace yields an empty slice, not an error.
func (r *productRepo) FindAll(ctx context.Context) ([]model.Product, error) {
	docs, err := r.store.GetByPrefix(ctx, model.ProductKeyPrefix)
	if err != nil {
		return nil, apperr.Transport("failed to scan products", err)
	}

	products := make([]model.Product, 0, len(docs))
	for _, doc := range docs {
		var p model.Product
		if err := json.Unmarshal(doc, &p); err != nil {
			// A corrupt document must not take down the whole listing.
			log.Printf("Warning: skipping corrupt product document: %v", err)
			continue
		}
		products = append(products, p)
	}

	sort.Slice(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})
	return products, nil
}

func (r *productRepo) FindByID(ctx context.Context, id string) (*model.Product, error) {
	doc, err := r.store.Get(ctx, id)
	if err != nil {
		return nil, apperr.Transport("failed to fetch product", err)
	}
	if doc == nil {
		return nil, nil
	}

	var p model.Product
	if err := json.Unmarshal(doc, &p); err != nil {
		return nil, apperr.Unknown(err)
	}
	return &p, nil
}

// Create assigns the prefixed identifier and timestamps, then stores the
// record. The caller's struct is updated in place.
func (r *productRepo) Create(ctx context.Context, product *model.Product) error {
	now := time.Now().UTC()
	product.ID = model.ProductKeyPrefix + uuid.New().String()
	product.CreatedAt = now
	product.UpdatedAt = now

	doc, err := json.Marshal(product)
	if err != nil {
		return apperr.Unknown(err)
	}
	if err := r.store.Set(ctx, product.ID, doc); err != nil {
		return apperr.Transport("failed to store product", err)
	}
	return nil
}

// Update merges the partial edit over the existing record and re-stamps
// updatedAt. A missing id yields (nil, nil); update never creates.
func (r *productRepo) Update(ctx context.Context, id string, update *model.ProductUpdate) (*model.Product, error) {
	existing, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	update.Apply(existing)
	existing.UpdatedAt = time.Now().UTC()

	doc, err := json.Marshal(existing)
	if err != nil {
		return nil, apperr.Unknown(err)
	}
	if err := r.store.Set(ctx, id, doc); err != nil {
		return nil, apperr.Transport("failed to store product", err)
	}
	return existing, nil
}

func (r *productRepo) UpdateStock(ctx context.Context, id string, inStock bool) (*model.Product, error) {
	return r.Update(ctx, id, &model.ProductUpdate{InStock: &inStock})
}

func (r *productRepo) Delete(ctx context.Context, id string) bool {
	if err := r.store.Delete(ctx, id); err != nil {
		log.Printf("Error deleting product %s: %v", id, err)
		return false
	}
	return true
}

func (r *productRepo) FindByCategory(ctx context.Context, category model.ProductCategory) ([]model.Product, error) {
	all, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	filtered := make([]model.Product, 0, len(all))
	for _, p := range all {
		if p.Category == category {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

func (r *productRepo) FindByStock(ctx context.Context, inStock bool) ([]model.Product, error) {
	all, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	filtered := make([]model.Product, 0, len(all))
	for _, p := range all {
		if p.InStock == inStock {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

func (r *productRepo) FindPopular(ctx context.Context) ([]model.Product, error) {
	all, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	filtered := make([]model.Product, 0, len(all))
	for _, p := range all {
		if p.Popular {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}
