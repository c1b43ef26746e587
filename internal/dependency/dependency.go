package dependency

import (
	"context"

	"github.com/guckert-dev/shopify-mcp/internal/entity"
)

//go:generate mockery --with-expecter --case underscore --all --output=./mocks
type (
	// DataSource is the external data-retrieval boundary. Implementations
	// own all network I/O and timeouts; the analytics engine only consumes
	// the returned collections and propagates failures unchanged.
	DataSource interface {
		// FetchOrders returns the completed orders created inside the window.
		// query is an optional free-form filter forwarded to the backend.
		FetchOrders(ctx context.Context, window entity.PeriodWindow, query string) ([]entity.OrderRecord, error)
		// FetchAbandonedCheckouts returns checkouts started but not completed
		// inside the window.
		FetchAbandonedCheckouts(ctx context.Context, window entity.PeriodWindow) ([]entity.CheckoutRecord, error)
		// FetchNewCustomers returns customers first seen inside the window.
		FetchNewCustomers(ctx context.Context, window entity.PeriodWindow) ([]entity.CustomerRecord, error)
	}

	// InventoryProvider is an optional DataSource capability. Sources that
	// can report stock levels implement it; for everything else inventory is
	// treated as untracked.
	InventoryProvider interface {
		FetchInventoryLevels(ctx context.Context, productIDs []string) (map[string]int, error)
	}

	// Reporter produces the four analytics reports.
	Reporter interface {
		StoreAnalytics(ctx context.Context, window entity.PeriodWindow, query string) (*entity.StoreAnalyticsResult, error)
		Forecast(ctx context.Context, opts entity.ForecastOptions) (*entity.ForecastResult, error)
		ConversionAnalysis(ctx context.Context, window entity.PeriodWindow) (*entity.ConversionAnalysisResult, error)
		ProductPerformance(ctx context.Context, window entity.PeriodWindow, query string) (*entity.ProductPerformanceResult, error)
	}
)
