// Package stripeapi creates payment intents against the Stripe REST API.
// Stripe is an external collaborator; only intent creation is modeled.
package stripeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.stripe.com"

// Config captures the subset of Stripe behaviour we need.
type Config struct {
	SecretKey  string
	BaseURL    string // overridable for tests
	Timeout    time.Duration
	RetryLimit int
	Client     *http.Client
}

// PaymentIntent is the subset of Stripe's intent object the API returns
// to clients.
type PaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
}

// Client calls the Stripe payment-intents endpoint.
type Client struct {
	secretKey  string
	baseURL    string
	retryLimit int
	client     *http.Client
}

// NewClient builds a Stripe client. Callers should pass a validated config.
func NewClient(cfg Config) (*Client, error) {
	secretKey := strings.TrimSpace(cfg.SecretKey)
	if secretKey == "" {
		return nil, errors.New("stripe secret key is required")
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	retries := cfg.RetryLimit
	if retries < 0 {
		retries = 0
	}

	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	return &Client{
		secretKey:  secretKey,
		baseURL:    baseURL,
		retryLimit: retries,
		client:     hc,
	}, nil
}

// CreateIntent creates a card PaymentIntent for the given amount in cents.
// Transient transport failures are retried up to the configured limit;
// Stripe rejections are not.
func (c *Client) CreateIntent(ctx context.Context, amountCents int64, currency string) (PaymentIntent, error) {
	if amountCents <= 0 {
		return PaymentIntent{}, errors.New("amount must be positive")
	}
	if currency == "" {
		currency = "usd"
	}

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amountCents, 10))
	form.Set("currency", currency)
	form.Set("payment_method_types[]", "card")
	body := form.Encode()

	attempts := c.retryLimit + 1
	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		intent, retryable, err := c.post(ctx, body)
		if err == nil {
			return intent, nil
		}
		lastErr = err
		if !retryable {
			break
		}
	}
	return PaymentIntent{}, lastErr
}

func (c *Client) post(ctx context.Context, body string) (PaymentIntent, bool, error) {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/v1/payment_intents",
		strings.NewReader(body),
	)
	if err != nil {
		return PaymentIntent{}, false, fmt.Errorf("build stripe request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return PaymentIntent{}, true, fmt.Errorf("stripe request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusInternalServerError {
		_, _ = io.Copy(io.Discard, resp.Body)
		return PaymentIntent{}, true, fmt.Errorf("stripe returned status %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return PaymentIntent{}, false, fmt.Errorf("stripe rejected request with status %d", resp.StatusCode)
	}

	var intent PaymentIntent
	if err := json.NewDecoder(resp.Body).Decode(&intent); err != nil {
		return PaymentIntent{}, false, fmt.Errorf("decode stripe response: %w", err)
	}
	return intent, false, nil
}
