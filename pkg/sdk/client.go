package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// Option configures the Client.
type Option interface {
	apply(*Client)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*Client)

func (f optionFunc) apply(c *Client) { f(c) }

// WithAPIKey sets the Bearer token sent with every request.
func WithAPIKey(key string) Option {
	return optionFunc(func(c *Client) {
		c.apiKey = key
	})
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return optionFunc(func(c *Client) {
		c.httpc = hc
	})
}

// Client talks to an alsobought service over HTTP.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
}

// New creates a Client for the service at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: defaultTimeout},
	}
	for _, o := range opts {
		o.apply(c)
	}
	return c
}

// UpsertProduct creates or replaces a catalog product.
func (c *Client) UpsertProduct(ctx context.Context, id string, fields ProductFields) (Product, error) {
	var out Product
	err := c.do(ctx, http.MethodPut, "/api/v1/products/"+url.PathEscape(id), fields, &out)
	return out, err
}

// GetProduct fetches a catalog product by id.
func (c *Client) GetProduct(ctx context.Context, id string) (Product, error) {
	var out Product
	err := c.do(ctx, http.MethodGet, "/api/v1/products/"+url.PathEscape(id), nil, &out)
	return out, err
}

// ListProducts returns the full catalog, sorted by product id.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var out ProductList
	if err := c.do(ctx, http.MethodGet, "/api/v1/products", nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// DeleteProduct removes a catalog product.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/products/"+url.PathEscape(id), nil, nil)
}

// RecordPurchases appends purchase events to a user's history.
func (c *Client) RecordPurchases(ctx context.Context, userID string, productIDs []string) error {
	path := "/api/v1/users/" + url.PathEscape(userID) + "/purchases"
	return c.do(ctx, http.MethodPost, path, recordPurchasesRequest{ProductIDs: productIDs}, nil)
}

// Purchases returns a user's purchase sequence, oldest first. Unknown
// users yield an empty sequence.
func (c *Client) Purchases(ctx context.Context, userID string) ([]string, error) {
	var out Purchases
	path := "/api/v1/users/" + url.PathEscape(userID) + "/purchases"
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.ProductIDs, nil
}

// Recommendations returns up to topK explained recommendations for a
// user. topK == 0 selects the server-configured default.
func (c *Client) Recommendations(ctx context.Context, userID string, topK int) ([]Recommendation, error) {
	path := "/api/v1/users/" + url.PathEscape(userID) + "/recommendations"
	if topK > 0 {
		path += "?top_k=" + strconv.Itoa(topK)
	}

	var out recommendationsResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// SendFeedback reports a recommendation outcome and returns the
// generated event id.
func (c *Client) SendFeedback(ctx context.Context, fb Feedback) (string, error) {
	var out feedbackResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/feedback", fb, &out); err != nil {
		return "", err
	}
	return out.EventID, nil
}

// Health returns the service health report. A degraded service answers
// with 503; the report is still decoded so callers can inspect which
// check failed.
func (c *Client) Health(ctx context.Context) (Health, error) {
	var out Health

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return out, fmt.Errorf("alsobought: build request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return out, fmt.Errorf("alsobought: GET /health: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, fmt.Errorf("alsobought: decode response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return out, &APIError{
			StatusCode: resp.StatusCode,
			Code:       "unhealthy",
			Message:    "service reported status " + out.Status,
		}
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("alsobought: encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("alsobought: build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("alsobought: %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("alsobought: decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var payload struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
		apiErr.Code = payload.Code
		apiErr.Message = payload.Message
	}
	if apiErr.Code == "" {
		apiErr.Code = "unknown"
		apiErr.Message = resp.Status
	}
	return apiErr
}
