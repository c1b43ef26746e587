package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/guckert-dev/shopify-mcp/internal/dependency"
	"github.com/guckert-dev/shopify-mcp/internal/entity"
	"golang.org/x/sync/errgroup"
)

// Service runs the four report pipelines. Each pipeline fetches its inputs
// from the data source, fans out independent fetches concurrently, and joins
// before computing; a failed fetch fails the whole report with no partial
// aggregation. All derived state is request-scoped, so a Service is safe for
// concurrent use.
type Service struct {
	ds   dependency.DataSource
	attr *Attributor
	bm   Benchmarks
}

var _ dependency.Reporter = (*Service)(nil)

func New(ds dependency.DataSource, storeDomain string, bm Benchmarks) *Service {
	bm.FillDefaults()
	return &Service{
		ds:   ds,
		attr: NewAttributor(storeDomain),
		bm:   bm,
	}
}

// StoreAnalytics aggregates the window's orders, compares them against the
// immediately preceding window of equal length, counts new customers and
// attributes traffic.
func (s *Service) StoreAnalytics(ctx context.Context, window entity.PeriodWindow, query string) (*entity.StoreAnalyticsResult, error) {
	if err := validateWindow(window); err != nil {
		return nil, err
	}

	var (
		orders     []entity.OrderRecord
		prevOrders []entity.OrderRecord
		customers  []entity.CustomerRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		orders, err = s.ds.FetchOrders(gctx, window, query)
		return err
	})
	g.Go(func() error {
		var err error
		prevOrders, err = s.ds.FetchOrders(gctx, window.Previous(), query)
		return err
	})
	g.Go(func() error {
		var err error
		customers, err = s.ds.FetchNewCustomers(gctx, window)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("store analytics fetch: %w", err)
	}

	summary := Summarize(orders)
	res := &entity.StoreAnalyticsResult{
		Window:          window,
		Summary:         summary,
		AvgOrderValue:   AvgOrderValue(summary),
		NewCustomers:    len(customers),
		Comparison:      ComparePeriods(summary, Summarize(prevOrders)),
		TrafficBySource: s.attr.Breakdown(orders),
	}

	slog.Default().DebugContext(ctx, "store analytics computed",
		slog.Int("orders", summary.OrderCount),
		slog.String("revenue", summary.RevenueTotal.String()))
	return res, nil
}

// Forecast projects order volume and revenue over the requested horizons
// from the trailing lookback window of orders.
func (s *Service) Forecast(ctx context.Context, opts entity.ForecastOptions) (*entity.ForecastResult, error) {
	now := opts.Now
	if now.IsZero() {
		now = time.Now().UTC()
		opts.Now = now
	}
	window, err := entity.NewPeriodWindow(now, s.bm.ForecastLookbackDays)
	if err != nil {
		return nil, err
	}

	orders, err := s.ds.FetchOrders(ctx, window, "")
	if err != nil {
		return nil, fmt.Errorf("forecast fetch: %w", err)
	}
	return Forecast(orders, window, opts, s.bm)
}

// ConversionAnalysis builds the funnel from the window's completed orders
// and abandoned checkouts.
func (s *Service) ConversionAnalysis(ctx context.Context, window entity.PeriodWindow) (*entity.ConversionAnalysisResult, error) {
	if err := validateWindow(window); err != nil {
		return nil, err
	}

	var (
		orders    []entity.OrderRecord
		checkouts []entity.CheckoutRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		orders, err = s.ds.FetchOrders(gctx, window, "")
		return err
	})
	g.Go(func() error {
		var err error
		checkouts, err = s.ds.FetchAbandonedCheckouts(gctx, window)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("conversion analysis fetch: %w", err)
	}

	return AnalyzeFunnel(orders, checkouts, window, s.bm), nil
}

// ProductPerformance ranks the window's products by movement. Inventory
// levels come from the data source when it can provide them; otherwise all
// stock is treated as untracked.
func (s *Service) ProductPerformance(ctx context.Context, window entity.PeriodWindow, query string) (*entity.ProductPerformanceResult, error) {
	if err := validateWindow(window); err != nil {
		return nil, err
	}

	orders, err := s.ds.FetchOrders(ctx, window, query)
	if err != nil {
		return nil, fmt.Errorf("product performance fetch: %w", err)
	}

	inventory := map[string]int{}
	if ip, ok := s.ds.(dependency.InventoryProvider); ok {
		ids := productIDs(orders)
		if len(ids) > 0 {
			inventory, err = ip.FetchInventoryLevels(ctx, ids)
			if err != nil {
				return nil, fmt.Errorf("inventory fetch: %w", err)
			}
		}
	}

	res := RankProducts(orders, inventory, s.bm)
	res.Window = window
	return res, nil
}

func validateWindow(w entity.PeriodWindow) error {
	if w.LengthDays <= 0 {
		return fmt.Errorf("%w: period length must be positive, got %d", entity.ErrInvalidParams, w.LengthDays)
	}
	if !w.End.After(w.Start) {
		return fmt.Errorf("%w: window end %s is not after start %s", entity.ErrInvalidParams, w.End.Format(time.RFC3339), w.Start.Format(time.RFC3339))
	}
	return nil
}

func productIDs(orders []entity.OrderRecord) []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, o := range orders {
		for _, li := range o.LineItems {
			if li.ProductID == "" {
				continue
			}
			if _, ok := seen[li.ProductID]; ok {
				continue
			}
			seen[li.ProductID] = struct{}{}
			ids = append(ids, li.ProductID)
		}
	}
	return ids
}
