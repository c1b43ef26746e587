// Package entity holds the request-scoped domain records the analytics
// engine consumes and the report shapes it produces. Nothing here is
// persisted; every value is built fresh per report and discarded.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderRecord is a completed order as delivered by the data source.
// The engine never mutates these.
type OrderRecord struct {
	ID             string          `json:"id"`
	CreatedAt      time.Time       `json:"created_at"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	LineItems      []LineItem      `json:"line_items"`
	Customer       *CustomerRef    `json:"customer,omitempty"`
	ReferrerURL    string          `json:"referrer_url,omitempty"`
	LandingPageURL string          `json:"landing_page_url,omitempty"`
}

type LineItem struct {
	ProductID string          `json:"product_id"`
	Title     string          `json:"title"`
	Quantity  int             `json:"quantity"`
	UnitTotal decimal.Decimal `json:"unit_total"`
}

// CustomerRef links an order to its customer.
//
// LifetimeOrderCount is the customer's order count as reported at query
// time, not at the time the order was placed. Under concurrent updates this
// can misclassify historical orders as returning; known limitation.
type CustomerRef struct {
	ID                 string `json:"id"`
	LifetimeOrderCount int    `json:"lifetime_order_count"`
}

// CheckoutRecord is an abandoned checkout.
type CheckoutRecord struct {
	ID            string          `json:"id"`
	CreatedAt     time.Time       `json:"created_at"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	LineItemCount int             `json:"line_item_count"`
	Customer      *CustomerRef    `json:"customer,omitempty"`
}

type CustomerRecord struct {
	ID          string          `json:"id"`
	CreatedAt   time.Time       `json:"created_at"`
	OrdersCount int             `json:"orders_count"`
	TotalSpent  decimal.Decimal `json:"total_spent"`
}
