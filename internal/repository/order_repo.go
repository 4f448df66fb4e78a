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

// OrderRepository owns the order:* keyspace. Date-range queries are
// end-of-day inclusive: the end bound covers through 23:59:59.999 of that
// calendar day, not a half-open interval.
type OrderRepository interface {
	FindAll(ctx context.Context) ([]model.Order, error)
	FindByID(ctx context.Context, id string) (*model.Order, error)
	Create(ctx context.Context, order *model.Order) error
	Update(ctx context.Context, id string, update *model.OrderUpdate) (*model.Order, error)
	UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error)
	Delete(ctx context.Context, id string) bool
	FindByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error)
	FindByDateRange(ctx context.Context, start, end time.Time) ([]model.Order, error)
	PendingCount(ctx context.Context) (int, error)
}

type orderRepo struct {
	store kvstore.Store
}

func NewOrderRepo(store kvstore.Store) OrderRepository {
	return &orderRepo{store: store}
}

func (r *orderRepo) FindAll(ctx context.Context) ([]model.Order, error) {
	docs, err := r.store.GetByPrefix(ctx, model.OrderKeyPrefix)
	if err != nil {
		return nil, apperr.Transport("failed to scan orders", err)
	}

	orders := make([]model.Order, 0, len(docs))
	for _, doc := range docs {
		var o model.Order
		if err := json.Unmarshal(doc, &o); err != nil {
			log.Printf("Warning: skipping corrupt order document: %v", err)
			continue
		}
		orders = append(orders, o)
	}

	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

func (r *orderRepo) FindByID(ctx context.Context, id string) (*model.Order, error) {
	doc, err := r.store.Get(ctx, id)
	if err != nil {
		return nil, apperr.Transport("failed to fetch order", err)
	}
	if doc == nil {
		return nil, nil
	}

	var o model.Order
	if err := json.Unmarshal(doc, &o); err != nil {
		return nil, apperr.Unknown(err)
	}
	return &o, nil
}

// Create assigns the prefixed identifier, forces status to pending, and
// stamps createdAt. Subtotal and total are stored as supplied by the caller.
func (r *orderRepo) Create(ctx context.Context, order *model.Order) error {
	order.ID = model.OrderKeyPrefix + uuid.New().String()
	order.Status = model.StatusPending
	order.CreatedAt = time.Now().UTC()
	order.UpdatedAt = nil

	doc, err := json.Marshal(order)
	if err != nil {
		return apperr.Unknown(err)
	}
	if err := r.store.Set(ctx, order.ID, doc); err != nil {
		return apperr.Transport("failed to store order", err)
	}
	return nil
}

func (r *orderRepo) Update(ctx context.Context, id string, update *model.OrderUpdate) (*model.Order, error) {
	existing, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	update.Apply(existing)
	now := time.Now().UTC()
	existing.UpdatedAt = &now

	doc, err := json.Marshal(existing)
	if err != nil {
		return nil, apperr.Unknown(err)
	}
	if err := r.store.Set(ctx, id, doc); err != nil {
		return nil, apperr.Transport("failed to store order", err)
	}
	return existing, nil
}

// UpdateStatus moves the order to any of the five statuses. No transition
// graph is enforced; completed may go back to pending.
func (r *orderRepo) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	existing, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	existing.Status = status
	now := time.Now().UTC()
	existing.UpdatedAt = &now

	doc, err := json.Marshal(existing)
	if err != nil {
		return nil, apperr.Unknown(err)
	}
	if err := r.store.Set(ctx, id, doc); err != nil {
		return nil, apperr.Transport("failed to store order", err)
	}
	return existing, nil
}

func (r *orderRepo) Delete(ctx context.Context, id string) bool {
	if err := r.store.Delete(ctx, id); err != nil {
		log.Printf("Error deleting order %s: %v", id, err)
		return false
	}
	return true
}

func (r *orderRepo) FindByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error) {
	all, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	filtered := make([]model.Order, 0, len(all))
	for _, o := range all {
		if o.Status == status {
			filtered = append(filtered, o)
		}
	}
	return filtered, nil
}

// FindByDateRange keeps orders created from 00:00:00 of the start day
// through 23:59:59.999 of the end day, both inclusive.
func (r *orderRepo) FindByDateRange(ctx context.Context, start, end time.Time) ([]model.Order, error) {
	all, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	from := startOfDay(start)
	to := endOfDay(end)

	filtered := make([]model.Order, 0, len(all))
	for _, o := range all {
		created := o.CreatedAt.In(from.Location())
		if !created.Before(from) && !created.After(to) {
			filtered = append(filtered, o)
		}
	}
	return filtered, nil
}

func (r *orderRepo) PendingCount(ctx context.Context) (int, error) {
	pending, err := r.FindByStatus(ctx, model.StatusPending)
	if err != nil {
		return 0, err
	}
	return len(pending), nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999_000_000, t.Location())
}
