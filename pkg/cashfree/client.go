package cashfree

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"consultpay/pkg/client"
)

const (
	SandboxBaseURL    = "https://sandbox.cashfree.com/pg"
	ProductionBaseURL = "https://api.cashfree.com/pg"

	EnvironmentSandbox    = "sandbox"
	EnvironmentProduction = "production"

	DefaultAPIVersion = "2023-08-01"
)

type Config struct {
	AppID       string
	SecretKey   string
	Environment string
	APIVersion  string
	Timeout     time.Duration
	// BaseURL overrides the environment URL.
	BaseURL string
}

// Client calls the Cashfree PG orders API.
type Client struct {
	http       *client.HttpClient
	configured bool
}

func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = SandboxBaseURL
		if cfg.Environment == EnvironmentProduction {
			baseURL = ProductionBaseURL
		}
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultAPIVersion
	}

	httpClient := client.NewHttpClient(baseURL, cfg.Timeout)
	httpClient.Headers["x-client-id"] = cfg.AppID
	httpClient.Headers["x-client-secret"] = cfg.SecretKey
	httpClient.Headers["x-api-version"] = cfg.APIVersion

	return &Client{
		http:       httpClient,
		configured: cfg.AppID != "" && cfg.SecretKey != "",
	}
}

func (c *Client) Configured() bool {
	return c.configured
}

func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	if !c.configured {
		return nil, ErrNotConfigured
	}

	resp, err := c.http.POST(ctx, "/orders", req)
	if err != nil {
		return nil, fmt.Errorf("create order %s: %w", req.OrderID, err)
	}
	if !resp.IsSuccess() {
		return nil, newAPIError(resp)
	}

	var order Order
	if err := resp.DecodeJSON(&order); err != nil {
		return nil, fmt.Errorf("decode create order response: %w", err)
	}
	if order.PaymentSessionID == "" {
		return &order, ErrMissingPaymentSession
	}
	return &order, nil
}

func (c *Client) FetchOrder(ctx context.Context, orderID string) (*Order, error) {
	if !c.configured {
		return nil, ErrNotConfigured
	}

	resp, err := c.http.GET(ctx, "/orders/"+url.PathEscape(orderID))
	if err != nil {
		return nil, fmt.Errorf("fetch order %s: %w", orderID, err)
	}
	if !resp.IsSuccess() {
		return nil, newAPIError(resp)
	}

	var order Order
	if err := resp.DecodeJSON(&order); err != nil {
		return nil, fmt.Errorf("decode fetch order response: %w", err)
	}
	return &order, nil
}
