// Package backend talks to the external commerce backend that owns the
// catalog and order persistence.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"storefront-gateway/internal/domain"
)

// Error carries the backend's HTTP status and message so handlers can pass
// them through verbatim.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("backend: %d %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func New(baseURL string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
	}
}

// WithHTTPClient overrides the underlying HTTP client, mainly for tests.
func (c *Client) WithHTTPClient(h *http.Client) *Client {
	c.httpClient = h
	return c
}

func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.getJSON(ctx, "/api/products/", &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if err := c.getJSON(ctx, "/api/categories/", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) SubmitOrder(ctx context.Context, order domain.OrderSubmission) (*domain.OrderResult, error) {
	body, err := json.Marshal(order)
	if err != nil {
		return nil, fmt.Errorf("marshal order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/orders/submit/", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("submit order: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read order response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("backend rejected order",
			zap.Int("status", resp.StatusCode),
			zap.String("reference", order.Reference))
		return nil, &Error{StatusCode: resp.StatusCode, Message: errorMessage(raw)}
	}

	var result domain.OrderResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("decode order response: %w", err)
	}
	return &result, nil
}

func (c *Client) getJSON(ctx context.Context, path string, dst interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return &Error{StatusCode: resp.StatusCode, Message: errorMessage(raw)}
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// errorMessage pulls a human-readable message out of a backend error payload,
// falling back to the raw body.
func errorMessage(raw []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		for _, msg := range []string{payload.Error, payload.Message, payload.Detail} {
			if msg != "" {
				return msg
			}
		}
	}
	body := strings.TrimSpace(string(raw))
	if body == "" {
		return "backend request failed"
	}
	return body
}
