package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"go-galon-gas/internal/apperr"
	"go-galon-gas/internal/model"
	"go-galon-gas/internal/repository"
	"go-galon-gas/internal/ws"
	"go-galon-gas/pkg/kvstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrderService(t *testing.T) (OrderService, *kvstore.MemoryStore) {
	t.Helper()
	store := kvstore.NewMemoryStore()
	hub := ws.NewHub()
	go hub.Run()
	return NewOrderService(repository.NewOrderRepo(store), hub), store
}

func checkoutPayload() *model.Order {
	return &model.Order{
		CustomerName:    "Budi",
		CustomerPhone:   "0812345678",
		CustomerAddress: "Jl. Mawar 1",
		Items: []model.OrderItem{
			{ID: "product:a", Name: "Galon 19L", Price: 21000, Quantity: 2},
			{ID: "product:b", Name: "Tabung Gas 3kg", Price: 23000, Quantity: 1},
		},
		Subtotal:      65000,
		Total:         65000,
		PaymentMethod: model.PaymentCashOnDelivery,
	}
}

func putOrder(t *testing.T, store *kvstore.MemoryStore, id string, createdAt time.Time, status model.OrderStatus, total int64) {
	t.Helper()
	o := checkoutPayload()
	o.ID = id
	o.CreatedAt = createdAt
	o.Status = status
	o.Total = total
	o.Subtotal = total
	doc, err := json.Marshal(o)
	require.NoError(t, err)
	require.NoError(t, store.Set(context.Background(), id, doc))
}

func TestCreateOrderValidation(t *testing.T) {
	svc, _ := newOrderService(t)
	ctx := context.Background()

	missingName := checkoutPayload()
	missingName.CustomerName = ""
	err := svc.CreateOrder(ctx, missingName)
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))

	noItems := checkoutPayload()
	noItems.Items = nil
	err = svc.CreateOrder(ctx, noItems)
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestCreateOrderTrustsSuppliedTotals(t *testing.T) {
	svc, _ := newOrderService(t)
	ctx := context.Background()

	// A mismatching total is stored as-is; parity with the original
	o := checkoutPayload()
	o.Total = 1
	o.Subtotal = 1
	require.NoError(t, svc.CreateOrder(ctx, o))

	got, err := svc.GetOrder(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Total)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc, _ := newOrderService(t)

	_, err := svc.UpdateStatus(context.Background(), "order:any", "shipped")
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestReportRevenueCountsCompletedOnly(t *testing.T) {
	svc, store := newOrderService(t)
	now := time.Now()

	putOrder(t, store, "order:1", now, model.StatusCompleted, 65000)
	putOrder(t, store, "order:2", now, model.StatusPending, 21000)
	putOrder(t, store, "order:3", now, model.StatusCancelled, 40000)
	putOrder(t, store, "order:4", now.Add(-24*time.Hour), model.StatusCompleted, 10000)

	report, err := svc.GetReport(context.Background(), "", "")
	require.NoError(t, err)

	assert.Equal(t, 4, report.TotalOrders)
	// Revenue: completed orders only (65000 + 10000)
	assert.Equal(t, int64(75000), report.TotalRevenue)

	// Daily buckets cover ALL statuses; their counts sum to the total
	var bucketCount int
	for _, bucket := range report.OrdersByDate {
		bucketCount += bucket.Count
	}
	assert.Equal(t, report.TotalOrders, bucketCount)

	today := report.OrdersByDate[now.Local().Format("2/1/2006")]
	assert.Equal(t, 3, today.Count)
	// Today's bucket revenue includes pending and cancelled totals
	assert.Equal(t, int64(65000+21000+40000), today.Revenue)
}

func TestReportWithDateRange(t *testing.T) {
	svc, store := newOrderService(t)

	inRange := time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)
	outOfRange := time.Date(2025, 3, 20, 12, 0, 0, 0, time.Local)
	putOrder(t, store, "order:in", inRange, model.StatusCompleted, 50000)
	putOrder(t, store, "order:out", outOfRange, model.StatusCompleted, 99000)

	report, err := svc.GetReport(context.Background(), "2025-03-09", "2025-03-11")
	require.NoError(t, err)
	assert.Equal(t, 1, report.TotalOrders)
	assert.Equal(t, int64(50000), report.TotalRevenue)
}

func TestReportInvalidDates(t *testing.T) {
	svc, _ := newOrderService(t)

	_, err := svc.GetReport(context.Background(), "10-03-2025", "2025-03-11")
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestReportRevenueGrowsWhenOrderCompletes(t *testing.T) {
	svc, _ := newOrderService(t)
	ctx := context.Background()

	o := checkoutPayload()
	require.NoError(t, svc.CreateOrder(ctx, o))

	before, err := svc.GetReport(ctx, "", "")
	require.NoError(t, err)
	assert.Equal(t, int64(0), before.TotalRevenue)
	assert.Equal(t, 1, before.TotalOrders)

	_, err = svc.UpdateStatus(ctx, o.ID, model.StatusCompleted)
	require.NoError(t, err)

	after, err := svc.GetReport(ctx, "", "")
	require.NoError(t, err)
	assert.Equal(t, before.TotalRevenue+65000, after.TotalRevenue)
}

func TestSalesStatistics(t *testing.T) {
	svc, store := newOrderService(t)
	now := time.Now()

	putOrder(t, store, "order:1", now, model.StatusCompleted, 65000)
	putOrder(t, store, "order:2", now, model.StatusPending, 21000)
	putOrder(t, store, "order:3", now, model.StatusOnDelivery, 30000)

	stats, err := svc.GetSalesStatistics(context.Background(), "", "")
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalOrders)
	assert.Equal(t, 1, stats.CompletedOrders)
	assert.Equal(t, 1, stats.PendingOrders)
	assert.Equal(t, int64(65000), stats.TotalRevenue)
	assert.Equal(t, int64(65000), stats.SubtotalRevenue)
}
