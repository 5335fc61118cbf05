package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"fundraiser/internal/domain"
)

// Order is a payment order minted by the gateway before any money moves.
// Its id is stored on the PENDING donation and later matched against the
// confirmation callback.
type Order struct {
	ID        string
	AmountInt int64
	Currency  string
}

// Gateway mints payment orders. The store and the verification flow only
// ever see order ids, so non-gateway payment methods can satisfy this with
// locally generated ids.
type Gateway interface {
	CreateOrder(ctx context.Context, amountInt int64, receipt string) (*Order, error)
}

const (
	razorpayDefaultTimeout = 15 * time.Second
	defaultCurrency        = "INR"
)

type RazorpayOptions struct {
	KeyID      string
	KeySecret  string
	BaseURL    string
	HTTPClient *http.Client
}

// RazorpayGateway creates orders against the Razorpay orders API.
type RazorpayGateway struct {
	keyID     string
	keySecret string
	baseURL   string
	client    *http.Client
}

func NewRazorpayGateway(opts RazorpayOptions) (*RazorpayGateway, error) {
	if opts.KeyID == "" || opts.KeySecret == "" {
		return nil, errors.New("razorpay key id and secret are required")
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.razorpay.com/v1"
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: razorpayDefaultTimeout}
	}
	return &RazorpayGateway{
		keyID:     opts.KeyID,
		keySecret: opts.KeySecret,
		baseURL:   baseURL,
		client:    client,
	}, nil
}

type razorpayOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt,omitempty"`
}

type razorpayOrderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

// CreateOrder calls POST /orders. Amounts are already minor units, which is
// the unit the API expects.
func (g *RazorpayGateway) CreateOrder(ctx context.Context, amountInt int64, receipt string) (*Order, error) {
	if amountInt <= 0 {
		return nil, fmt.Errorf("order amount must be positive, got %d", amountInt)
	}

	body, err := json.Marshal(razorpayOrderRequest{
		Amount:   amountInt,
		Currency: defaultCurrency,
		Receipt:  receipt,
	})
	if err != nil {
		return nil, fmt.Errorf("encode order request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, razorpayDefaultTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(g.keyID, g.keySecret)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("create order: %w: %w", domain.ErrGatewayFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain a bounded amount for the error message. Never includes
		// credentials, which only travel in the request.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("create order: %w: status %d: %s", domain.ErrGatewayFailure, resp.StatusCode, snippet)
	}

	var out razorpayOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode order response: %w: %w", domain.ErrGatewayFailure, err)
	}
	if out.ID == "" {
		return nil, fmt.Errorf("create order: %w: empty order id", domain.ErrGatewayFailure)
	}

	return &Order{ID: out.ID, AmountInt: out.Amount, Currency: out.Currency}, nil
}

// VerifyCallback checks a confirmation callback against the key secret.
func (g *RazorpayGateway) VerifyCallback(orderID, paymentID, signature string) bool {
	return VerifySignature(g.keySecret, orderID, paymentID, signature)
}

// LocalGateway mints order ids locally for payment methods that never touch
// an external gateway (cash and direct QR/UPI entries).
type LocalGateway struct{}

func (LocalGateway) CreateOrder(_ context.Context, amountInt int64, _ string) (*Order, error) {
	if amountInt <= 0 {
		return nil, fmt.Errorf("order amount must be positive, got %d", amountInt)
	}
	return &Order{
		ID:        "order_local_" + uuid.NewString(),
		AmountInt: amountInt,
		Currency:  defaultCurrency,
	}, nil
}
