package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"log/slog"

	"github.com/evlampy/storeboard/internal/dependency"
	"github.com/evlampy/storeboard/internal/entity"
)

// Config holds the storefront platform client configuration.
type Config struct {
	BaseURL      string        `mapstructure:"base_url"`
	APIKey       string        `mapstructure:"api_key"`
	Timeout      time.Duration `mapstructure:"timeout"`
	CacheTTL     time.Duration `mapstructure:"cache_ttl"`
	OrdersLookup int           `mapstructure:"orders_lookup_days"` // history depth for all-time fetches
}

// Client fetches raw storefront records over the platform's JSON API and
// normalizes them into engine entities. A cache capability is injected so
// repeated dashboard loads don't hammer the platform.
type Client struct {
	c     *Config
	http  *http.Client
	cache dependency.Cache
}

func New(cfg *Config, cache dependency.Cache) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		c:     cfg,
		http:  &http.Client{Timeout: timeout},
		cache: cache,
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, target any) error {
	u, err := url.Parse(c.c.BaseURL + path)
	if err != nil {
		return fmt.Errorf("bad source url: %w", err)
	}
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.c.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("source request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("source request %s: status %d: %s", path, resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// FetchOrders returns normalized orders created inside the window.
func (c *Client) FetchOrders(ctx context.Context, window entity.TimeRange) ([]entity.Order, error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("orders:%s:%s", window.From.Format("2006-01-02"), window.To.Format("2006-01-02"))
	if cached, ok := c.cache.Get(key); ok {
		if orders, ok := cached.([]entity.Order); ok {
			return orders, nil
		}
	}

	q := url.Values{}
	q.Set("after", window.From.Format(time.RFC3339))
	q.Set("before", window.To.Format(time.RFC3339))

	var raw []rawOrder
	if err := c.get(ctx, "/api/v1/orders", q, &raw); err != nil {
		return nil, err
	}

	orders := make([]entity.Order, 0, len(raw))
	for i := range raw {
		orders = append(orders, normalizeOrder(&raw[i]))
	}
	slog.Default().InfoContext(ctx, "fetched orders",
		slog.Int("count", len(orders)),
		slog.String("window", key),
	)

	c.cache.Set(key, orders, c.c.CacheTTL)
	return orders, nil
}

// FetchAllOrders returns the full order history needed for new-vs-returning
// classification, bounded by the configured lookup depth.
func (c *Client) FetchAllOrders(ctx context.Context) ([]entity.Order, error) {
	days := c.c.OrdersLookup
	if days <= 0 {
		days = 365 * 2
	}
	now := time.Now()
	return c.FetchOrders(ctx, entity.TimeRange{From: now.AddDate(0, 0, -days), To: now})
}

// FetchCustomers returns the normalized customer snapshot.
func (c *Client) FetchCustomers(ctx context.Context) ([]entity.Customer, error) {
	if cached, ok := c.cache.Get("customers"); ok {
		if customers, ok := cached.([]entity.Customer); ok {
			return customers, nil
		}
	}

	var raw []rawCustomer
	if err := c.get(ctx, "/api/v1/customers", url.Values{}, &raw); err != nil {
		return nil, err
	}

	customers := make([]entity.Customer, 0, len(raw))
	for i := range raw {
		customers = append(customers, normalizeCustomer(&raw[i]))
	}
	c.cache.Set("customers", customers, c.c.CacheTTL)
	return customers, nil
}

// FetchProducts returns the normalized product catalog including unit costs.
func (c *Client) FetchProducts(ctx context.Context) ([]entity.Product, error) {
	if cached, ok := c.cache.Get("products"); ok {
		if products, ok := cached.([]entity.Product); ok {
			return products, nil
		}
	}

	var raw []rawProduct
	if err := c.get(ctx, "/api/v1/products", url.Values{}, &raw); err != nil {
		return nil, err
	}

	products := make([]entity.Product, 0, len(raw))
	for i := range raw {
		products = append(products, normalizeProduct(&raw[i]))
	}
	c.cache.Set("products", products, c.c.CacheTTL)
	return products, nil
}
