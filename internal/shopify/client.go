// Package shopify implements the data-retrieval boundary against the
// Shopify Admin REST API.
package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/guckert-dev/shopify-mcp/internal/dependency"
	"github.com/guckert-dev/shopify-mcp/internal/entity"
)

// AccessTokenHeader carries the Admin API token.
const AccessTokenHeader = "X-Shopify-Access-Token"

const (
	defaultAPIVersion = "2024-10"
	defaultTimeout    = 30 * time.Second
	pageLimit         = 250
)

// Config holds the Shopify Admin API connection settings.
type Config struct {
	// StoreDomain is the myshopify domain, e.g. "example.myshopify.com".
	// Also used by attribution to exclude self-referrals.
	StoreDomain string        `mapstructure:"store_domain"`
	AccessToken string        `mapstructure:"access_token"`
	APIVersion  string        `mapstructure:"api_version"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
	// BaseURL overrides the https://{store_domain} default; used in tests.
	BaseURL string `mapstructure:"base_url"`
}

// Client is the Admin REST client. It implements dependency.DataSource and
// dependency.InventoryProvider.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiVersion string
	token      string
}

var (
	_ dependency.DataSource        = (*Client)(nil)
	_ dependency.InventoryProvider = (*Client)(nil)
)

func New(cfg *Config) (*Client, error) {
	if cfg.StoreDomain == "" && cfg.BaseURL == "" {
		return nil, fmt.Errorf("shopify store_domain is required")
	}
	base := cfg.BaseURL
	if base == "" {
		base = "https://" + cfg.StoreDomain
	}
	version := cfg.APIVersion
	if version == "" {
		version = defaultAPIVersion
	}
	timeout := cfg.HTTPTimeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimSuffix(base, "/"),
		apiVersion: version,
		token:      cfg.AccessToken,
	}, nil
}

// FetchOrders returns all completed orders created inside the window,
// following cursor pagination until the last page.
func (c *Client) FetchOrders(ctx context.Context, window entity.PeriodWindow, query string) ([]entity.OrderRecord, error) {
	params := windowParams(window)
	params.Set("status", "any")
	if query != "" {
		params.Set("name", query)
	}

	var orders []entity.OrderRecord
	err := c.paginate(ctx, "orders.json", params, func(body []byte) error {
		var page ordersResponse
		if err := json.Unmarshal(body, &page); err != nil {
			return fmt.Errorf("unmarshaling orders: %w", err)
		}
		for _, o := range page.Orders {
			orders = append(orders, o.toEntity())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// FetchAbandonedCheckouts returns checkouts started but not completed inside
// the window.
func (c *Client) FetchAbandonedCheckouts(ctx context.Context, window entity.PeriodWindow) ([]entity.CheckoutRecord, error) {
	var checkouts []entity.CheckoutRecord
	err := c.paginate(ctx, "checkouts.json", windowParams(window), func(body []byte) error {
		var page checkoutsResponse
		if err := json.Unmarshal(body, &page); err != nil {
			return fmt.Errorf("unmarshaling checkouts: %w", err)
		}
		for _, ch := range page.Checkouts {
			checkouts = append(checkouts, ch.toEntity())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return checkouts, nil
}

// FetchNewCustomers returns customers created inside the window.
func (c *Client) FetchNewCustomers(ctx context.Context, window entity.PeriodWindow) ([]entity.CustomerRecord, error) {
	var customers []entity.CustomerRecord
	err := c.paginate(ctx, "customers.json", windowParams(window), func(body []byte) error {
		var page customersResponse
		if err := json.Unmarshal(body, &page); err != nil {
			return fmt.Errorf("unmarshaling customers: %w", err)
		}
		for _, cu := range page.Customers {
			customers = append(customers, cu.toEntity())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return customers, nil
}

// FetchInventoryLevels sums variant stock per product.
func (c *Client) FetchInventoryLevels(ctx context.Context, productIDs []string) (map[string]int, error) {
	if len(productIDs) == 0 {
		return map[string]int{}, nil
	}
	params := url.Values{}
	params.Set("ids", strings.Join(productIDs, ","))
	params.Set("fields", "id,variants")

	levels := make(map[string]int, len(productIDs))
	err := c.paginate(ctx, "products.json", params, func(body []byte) error {
		var page productsResponse
		if err := json.Unmarshal(body, &page); err != nil {
			return fmt.Errorf("unmarshaling products: %w", err)
		}
		for _, p := range page.Products {
			total := 0
			for _, v := range p.Variants {
				if v.InventoryQuantity > 0 {
					total += v.InventoryQuantity
				}
			}
			levels[fmt.Sprintf("%d", p.ID)] = total
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return levels, nil
}

// paginate GETs the resource and every rel="next" page after it, handing
// each raw body to handle.
func (c *Client) paginate(ctx context.Context, resource string, params url.Values, handle func(body []byte) error) error {
	params.Set("limit", fmt.Sprintf("%d", pageLimit))
	next := fmt.Sprintf("%s/admin/api/%s/%s?%s", c.baseURL, c.apiVersion, resource, params.Encode())

	for next != "" {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, next, nil)
		if err != nil {
			return fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set(AccessTokenHeader, c.token)
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("sending request: %w", err)
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("reading response body: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("shopify %s: non-200 status code: %d", resource, resp.StatusCode)
		}
		if err := handle(body); err != nil {
			return err
		}
		next = nextPageURL(resp.Header.Get("Link"))
	}
	return nil
}

func windowParams(window entity.PeriodWindow) url.Values {
	params := url.Values{}
	params.Set("created_at_min", window.Start.UTC().Format(time.RFC3339))
	params.Set("created_at_max", window.End.UTC().Format(time.RFC3339))
	return params
}

// nextPageURL extracts the rel="next" cursor URL from a Link header, empty
// when on the last page.
func nextPageURL(link string) string {
	for _, part := range strings.Split(link, ",") {
		if !strings.Contains(part, `rel="next"`) {
			continue
		}
		start := strings.Index(part, "<")
		end := strings.Index(part, ">")
		if start >= 0 && end > start {
			return part[start+1 : end]
		}
	}
	return ""
}
