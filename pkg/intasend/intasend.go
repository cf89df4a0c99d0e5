// Package intasend is a thin client for the IntaSend hosted checkout API.
// It creates a checkout session and returns the redirect URL; everything
// after the redirect (card entry, 3DS, result pages) happens on IntaSend's
// side and comes back to us through the payment webhook.
package intasend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	sandboxBaseURL = "https://sandbox.intasend.com/api/v1"
	liveBaseURL    = "https://payment.intasend.com/api/v1"

	defaultCurrency = "USD"
	defaultComment  = "Payment for products"
)

// Config holds IntaSend API credentials. Keys containing "_live_" select
// the production host; anything else talks to the sandbox.
type Config struct {
	APIKey    string
	SecretKey string
	// BaseURL overrides host selection, used by tests.
	BaseURL string
}

// Client calls the IntaSend checkout API.
type Client struct {
	cfg        Config
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new IntaSend client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("intasend: API credentials not configured")
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		if strings.Contains(cfg.APIKey, "_live_") || strings.Contains(cfg.SecretKey, "_live_") {
			baseURL = liveBaseURL
		} else {
			baseURL = sandboxBaseURL
		}
	}
	return &Client{
		cfg:     cfg,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// CheckoutRequest describes a hosted checkout session. Reference must be
// the order id so a provider invoice can be correlated back to the order.
type CheckoutRequest struct {
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Email       string  `json:"email"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	PhoneNumber string  `json:"phone_number"`
	Reference   string  `json:"reference"`
	Comment     string  `json:"comment"`
}

type checkoutPayload struct {
	PublicKey string `json:"public_key"`
	CheckoutRequest
}

type checkoutResponse struct {
	URL     string `json:"url"`
	ID      string `json:"id"`
	Message string `json:"message"`
}

// CreateCheckout creates a checkout session and returns the redirect URL.
func (c *Client) CreateCheckout(req CheckoutRequest) (string, error) {
	if req.Currency == "" {
		req.Currency = defaultCurrency
	}
	if req.Comment == "" {
		req.Comment = defaultComment
	}

	body, err := json.Marshal(checkoutPayload{
		PublicKey:       c.cfg.APIKey,
		CheckoutRequest: req,
	})
	if err != nil {
		return "", fmt.Errorf("intasend: failed to marshal checkout request: %w", err)
	}

	httpReq, err := http.NewRequest(http.MethodPost, c.baseURL+"/checkout/", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("intasend: failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("intasend: checkout request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("intasend: failed to read response: %w", err)
	}

	var decoded checkoutResponse
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return "", fmt.Errorf("intasend: failed to decode response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if decoded.Message != "" {
			return "", fmt.Errorf("intasend: checkout rejected: %s", decoded.Message)
		}
		return "", fmt.Errorf("intasend: checkout failed with status %d", resp.StatusCode)
	}
	if decoded.URL == "" {
		return "", fmt.Errorf("intasend: checkout response missing redirect URL")
	}
	return decoded.URL, nil
}
