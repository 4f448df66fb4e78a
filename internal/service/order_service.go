package service

import (
	"context"
	"fmt"
	"time"

	"go-galon-gas/internal/apperr"
	"go-galon-gas/internal/model"
	"go-galon-gas/internal/repository"
	"go-galon-gas/internal/ws"
	"go-galon-gas/pkg/validator"
)

// DateBucket is one row of the per-day report breakdown.
type DateBucket struct {
	Count   int   `json:"count"`
	Revenue int64 `json:"revenue"`
}

// Report aggregates an order set.
//
// TotalRevenue sums total over COMPLETED orders only, while OrdersByDate
// counts and sums ALL statuses. The asymmetry is a contract of the report,
// not an oversight; the sales page shows gross daily volume next to
// realized revenue.
type Report struct {
	Orders       []model.Order         `json:"orders"`
	TotalOrders  int                   `json:"totalOrders"`
	TotalRevenue int64                 `json:"totalRevenue"`
	OrdersByDate map[string]DateBucket `json:"ordersByDate"`
}

// SalesStatistics is the richer range summary used by the sales page.
type SalesStatistics struct {
	TotalOrders     int   `json:"totalOrders"`
	CompletedOrders int   `json:"completedOrders"`
	PendingOrders   int   `json:"pendingOrders"`
	TotalRevenue    int64 `json:"totalRevenue"`
	SubtotalRevenue int64 `json:"subtotalRevenue"`
}

// OrderService holds the order-side business rules: creation validation,
// status updates, and the sales report aggregation.
type OrderService interface {
	GetAllOrders(ctx context.Context) ([]model.Order, error)
	GetOrder(ctx context.Context, id string) (*model.Order, error)
	CreateOrder(ctx context.Context, req *model.Order) error
	UpdateOrder(ctx context.Context, id string, update *model.OrderUpdate) (*model.Order, error)
	UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error)
	DeleteOrder(ctx context.Context, id string) bool
	GetOrdersByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error)
	PendingCount(ctx context.Context) (int, error)
	GetReport(ctx context.Context, startDate, endDate string) (*Report, error)
	GetSalesStatistics(ctx context.Context, startDate, endDate string) (*SalesStatistics, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
	wsHub     *ws.Hub
}

func NewOrderService(orderRepo repository.OrderRepository, hub *ws.Hub) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		wsHub:     hub,
	}
}

func (s *orderService) GetAllOrders(ctx context.Context) ([]model.Order, error) {
	return s.orderRepo.FindAll(ctx)
}

func (s *orderService) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	return s.orderRepo.FindByID(ctx, id)
}

// CreateOrder validates the checkout payload and stores it. Subtotal and
// total are trusted as supplied; a hardened variant would recompute them
// from the item snapshot and reject on mismatch.
func (s *orderService) CreateOrder(ctx context.Context, req *model.Order) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return apperr.Validation("field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	if err := s.orderRepo.Create(ctx, req); err != nil {
		return err
	}

	s.wsHub.Publish(ws.Event{
		Type:    "order_update",
		Action:  "order_created",
		Payload: req,
		Message: fmt.Sprintf("New order from %s (%d items)", req.CustomerName, len(req.Items)),
	})
	return nil
}

func (s *orderService) UpdateOrder(ctx context.Context, id string, update *model.OrderUpdate) (*model.Order, error) {
	return s.orderRepo.Update(ctx, id, update)
}

func (s *orderService) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	if !model.ValidStatus(status) {
		return nil, apperr.Validation("unknown order status %q", status)
	}

	updated, err := s.orderRepo.UpdateStatus(ctx, id, status)
	if err != nil || updated == nil {
		return updated, err
	}

	s.wsHub.Publish(ws.Event{
		Type:    "order_update",
		Action:  "status_changed",
		Payload: updated,
		Message: fmt.Sprintf("Order %s moved to %s", updated.ID, status),
	})
	return updated, nil
}

func (s *orderService) DeleteOrder(ctx context.Context, id string) bool {
	return s.orderRepo.Delete(ctx, id)
}

func (s *orderService) GetOrdersByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error) {
	return s.orderRepo.FindByStatus(ctx, status)
}

func (s *orderService) PendingCount(ctx context.Context) (int, error) {
	return s.orderRepo.PendingCount(ctx)
}

// GetReport aggregates over the date range when both bounds are given,
// otherwise over the whole order set. Bounds are yyyy-mm-dd strings.
func (s *orderService) GetReport(ctx context.Context, startDate, endDate string) (*Report, error) {
	orders, err := s.ordersForRange(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Orders:       orders,
		TotalOrders:  len(orders),
		OrdersByDate: make(map[string]DateBucket),
	}

	for _, o := range orders {
		if o.Status == model.StatusCompleted {
			report.TotalRevenue += o.Total
		}

		key := dateKey(o.CreatedAt)
		bucket := report.OrdersByDate[key]
		bucket.Count++
		bucket.Revenue += o.Total
		report.OrdersByDate[key] = bucket
	}

	return report, nil
}

func (s *orderService) GetSalesStatistics(ctx context.Context, startDate, endDate string) (*SalesStatistics, error) {
	orders, err := s.ordersForRange(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}

	stats := &SalesStatistics{TotalOrders: len(orders)}
	for _, o := range orders {
		switch o.Status {
		case model.StatusCompleted:
			stats.CompletedOrders++
			stats.TotalRevenue += o.Total
			stats.SubtotalRevenue += o.Subtotal
		case model.StatusPending:
			stats.PendingOrders++
		}
	}
	return stats, nil
}

func (s *orderService) ordersForRange(ctx context.Context, startDate, endDate string) ([]model.Order, error) {
	if startDate == "" || endDate == "" {
		return s.orderRepo.FindAll(ctx)
	}

	start, err := time.ParseInLocation("2006-01-02", startDate, time.Local)
	if err != nil {
		return nil, apperr.Validation("invalid startDate %q, want yyyy-mm-dd", startDate)
	}
	end, err := time.ParseInLocation("2006-01-02", endDate, time.Local)
	if err != nil {
		return nil, apperr.Validation("invalid endDate %q, want yyyy-mm-dd", endDate)
	}
	return s.orderRepo.FindByDateRange(ctx, start, end)
}

// dateKey groups orders by calendar day using the d/m/yyyy form the admin
// frontend has always displayed.
func dateKey(t time.Time) string {
	return t.Local().Format("2/1/2006")
}
