package model

import (
	"strings"
	"time"
)

// OrderStatus is the fulfilment state of an order. Any status may follow
// any other; the admin tool is deliberately permissive.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusOnDelivery OrderStatus = "on_delivery"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
)

// ValidStatus reports whether s is one of the five known statuses.
func ValidStatus(s OrderStatus) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusOnDelivery, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Payment method labels as written into order records.
const (
	PaymentTransferBank   = "Transfer Bank"
	PaymentCashOnDelivery = "Cash On Delivery"
)

// IsBankTransfer classifies a stored payment method label, tolerating the
// legacy spellings "bank" and "transfer" found in older records.
func IsBankTransfer(method string) bool {
	switch strings.ToLower(method) {
	case "transfer bank", "bank", "transfer":
		return true
	}
	return false
}

// KV key prefix for order documents.
const OrderKeyPrefix = "order:"

// OrderItem is a line captured at checkout. It is a snapshot of the product
// at order time, never a live reference; later product edits or deletes must
// not change it.
type OrderItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity" validate:"gt=0"`
}

// Order is stored as a JSON document under an "order:<uuid>" key.
// Subtotal and Total arrive from the checkout client and are stored as
// supplied; nothing recomputes them server-side.
type Order struct {
	ID              string      `json:"id"`
	CustomerName    string      `json:"customerName" validate:"required"`
	CustomerPhone   string      `json:"customerPhone" validate:"required"`
	CustomerAddress string      `json:"customerAddress" validate:"required"`
	Items           []OrderItem `json:"items" validate:"required,min=1,dive"`
	Subtotal        int64       `json:"subtotal" validate:"gte=0"`
	Total           int64       `json:"total" validate:"gte=0"`
	PaymentMethod   string      `json:"paymentMethod"`
	PaymentProof    string      `json:"paymentProof,omitempty"`
	Status          OrderStatus `json:"status"`
	Notes           string      `json:"notes,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       *time.Time  `json:"updatedAt,omitempty"`
}

// OrderUpdate carries a partial edit of an existing order. Status changes go
// through their own operation; this covers everything else the admin tool can
// touch after creation (payment proof attachment, notes).
type OrderUpdate struct {
	PaymentMethod *string `json:"paymentMethod,omitempty"`
	PaymentProof  *string `json:"paymentProof,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}

// Apply merges the partial edit over o.
func (u *OrderUpdate) Apply(o *Order) {
	if u.PaymentMethod != nil {
		o.PaymentMethod = *u.PaymentMethod
	}
	if u.PaymentProof != nil {
		o.PaymentProof = *u.PaymentProof
	}
	if u.Notes != nil {
		o.Notes = *u.Notes
	}
}
