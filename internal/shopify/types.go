package shopify

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/guckert-dev/shopify-mcp/internal/entity"
	"github.com/shopspring/decimal"
)

// Admin REST payloads. Shopify serializes money as strings and ids as
// numbers; conversion to entity records happens here so the engine never
// sees wire shapes.

type ordersResponse struct {
	Orders []apiOrder `json:"orders"`
}

type checkoutsResponse struct {
	Checkouts []apiCheckout `json:"checkouts"`
}

type customersResponse struct {
	Customers []apiCustomer `json:"customers"`
}

type productsResponse struct {
	Products []apiProduct `json:"products"`
}

type apiOrder struct {
	ID            int64         `json:"id"`
	CreatedAt     time.Time     `json:"created_at"`
	TotalPrice    string        `json:"total_price"`
	ReferringSite string        `json:"referring_site"`
	LandingSite   string        `json:"landing_site"`
	Customer      *apiCustomer  `json:"customer"`
	LineItems     []apiLineItem `json:"line_items"`
}

type apiLineItem struct {
	ProductID int64  `json:"product_id"`
	Title     string `json:"title"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"`
}

type apiCheckout struct {
	ID         int64         `json:"id"`
	CreatedAt  time.Time     `json:"created_at"`
	TotalPrice string        `json:"total_price"`
	Customer   *apiCustomer  `json:"customer"`
	LineItems  []apiLineItem `json:"line_items"`
}

type apiCustomer struct {
	ID          int64     `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	OrdersCount int       `json:"orders_count"`
	TotalSpent  string    `json:"total_spent"`
}

type apiProduct struct {
	ID       int64        `json:"id"`
	Variants []apiVariant `json:"variants"`
}

type apiVariant struct {
	InventoryQuantity int `json:"inventory_quantity"`
}

func (o apiOrder) toEntity() entity.OrderRecord {
	rec := entity.OrderRecord{
		ID:             strconv.FormatInt(o.ID, 10),
		CreatedAt:      o.CreatedAt,
		TotalAmount:    parseAmount(o.TotalPrice),
		ReferrerURL:    o.ReferringSite,
		LandingPageURL: o.LandingSite,
		Customer:       o.Customer.toRef(),
	}
	for _, li := range o.LineItems {
		rec.LineItems = append(rec.LineItems, entity.LineItem{
			ProductID: strconv.FormatInt(li.ProductID, 10),
			Title:     li.Title,
			Quantity:  li.Quantity,
			UnitTotal: parseAmount(li.Price),
		})
	}
	return rec
}

func (c apiCheckout) toEntity() entity.CheckoutRecord {
	return entity.CheckoutRecord{
		ID:            strconv.FormatInt(c.ID, 10),
		CreatedAt:     c.CreatedAt,
		TotalAmount:   parseAmount(c.TotalPrice),
		LineItemCount: len(c.LineItems),
		Customer:      c.Customer.toRef(),
	}
}

func (c apiCustomer) toEntity() entity.CustomerRecord {
	return entity.CustomerRecord{
		ID:          strconv.FormatInt(c.ID, 10),
		CreatedAt:   c.CreatedAt,
		OrdersCount: c.OrdersCount,
		TotalSpent:  parseAmount(c.TotalSpent),
	}
}

func (c *apiCustomer) toRef() *entity.CustomerRef {
	if c == nil {
		return nil
	}
	return &entity.CustomerRef{
		ID:                 strconv.FormatInt(c.ID, 10),
		LifetimeOrderCount: c.OrdersCount,
	}
}

// parseAmount treats missing or unparseable amounts as zero. Bad amounts are
// a data-quality concern worth a warning, never a failed report.
func parseAmount(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		slog.Default().Warn("unparseable amount, treating as zero", slog.String("amount", s))
		return decimal.Zero
	}
	return d
}
