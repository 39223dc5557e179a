package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sagar-developer08/admin-ecom-sub002/internal/orders"
	"github.com/sagar-developer08/admin-ecom-sub002/internal/vendors"
	pkgerrors "github.com/sagar-developer08/admin-ecom-sub002/pkg/errors"
)

const (
	defaultTimeout              = 15 * time.Second
	errorBodyReadLimit    int64 = 1024
	ordersPath                  = "orders"
	vendorsPath                 = "vendors"
)

// Client talks to the marketplace's order-store and vendor-registry APIs.
// Both return bulk snapshots; the console never writes through this client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithAPIKey sets the bearer token sent on every request.
func WithAPIKey(apiKey string) Option {
	return func(c *Client) {
		c.apiKey = strings.TrimSpace(apiKey)
	}
}

// NewClient builds the upstream client for the given base URL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "upstream base url is required")
	}

	client := &Client{
		baseURL:    strings.TrimRight(trimmed, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return client, nil
}

// FetchAllOrders returns the full order snapshot.
func (c *Client) FetchAllOrders(ctx context.Context) ([]orders.Order, error) {
	var payload struct {
		Orders []orders.Order `json:"orders"`
	}
	if err := c.getJSON(ctx, ordersPath, &payload); err != nil {
		return nil, err
	}
	return payload.Orders, nil
}

// FetchAllVendors returns the full vendor registry snapshot.
func (c *Client) FetchAllVendors(ctx context.Context) ([]vendors.Vendor, error) {
	var payload struct {
		Vendors []vendors.Vendor `json:"vendors"`
	}
	if err := c.getJSON(ctx, vendorsPath, &payload); err != nil {
		return nil, err
	}
	return payload.Vendors, nil
}

// FetchOrdersForVendorStore returns only the orders carrying items for one
// vendor-store pair. Drill-down uses it when the full order snapshot cannot
// be loaded.
func (c *Client) FetchOrdersForVendorStore(ctx context.Context, vendorID, storeID string) ([]orders.Order, error) {
	if strings.TrimSpace(vendorID) == "" || strings.TrimSpace(storeID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor id and store id are required")
	}

	path := fmt.Sprintf("%s/%s/stores/%s/%s", vendorsPath, url.PathEscape(vendorID), url.PathEscape(storeID), ordersPath)
	var payload struct {
		Orders []orders.Order `json:"orders"`
	}
	if err := c.getJSON(ctx, path, &payload); err != nil {
		return nil, err
	}
	return payload.Orders, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "upstream client not configured")
	}

	url := fmt.Sprintf("%s/%s", c.baseURL, strings.TrimLeft(path, "/"))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build upstream request")
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute upstream request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		cause := fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
		code := pkgerrors.CodeDependency
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			code = pkgerrors.CodeForbidden
		}
		return pkgerrors.Wrap(code, cause, "upstream request failed")
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode upstream response")
	}
	return nil
}
