// File: internal/infra/adapters/payment/flutterwave.go
package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"hotspot-voucher-platform/internal/domain"
	"hotspot-voucher-platform/internal/domain/ports/adapter"
)

var _ adapter.TransactionVerifier = (*FlutterwaveVerifier)(nil)

const flutterwaveAPIBase = "https://api.flutterwave.com/v3"

// FlutterwaveVerifier re-fetches a transaction from Flutterwave so the
// completion flow never trusts the webhook payload's amount or status.
type FlutterwaveVerifier struct {
	secretKey string
	baseURL   string
	client    *http.Client
}

func NewFlutterwaveVerifier(secretKey string) *FlutterwaveVerifier {
	return &FlutterwaveVerifier{
		secretKey: secretKey,
		baseURL:   flutterwaveAPIBase,
		client:    &http.Client{Timeout: 15 * time.Second},
	}
}

// SetBaseURL points the verifier at a different host. Used by tests.
func (f *FlutterwaveVerifier) SetBaseURL(u string) { f.baseURL = u }

func (f *FlutterwaveVerifier) Name() string { return "flutterwave" }

func (f *FlutterwaveVerifier) VerifyTransaction(ctx context.Context, txID string) (*adapter.VerifiedPayment, error) {
	url := fmt.Sprintf("%s/transactions/%s/verify", f.baseURL, txID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+f.secretKey)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("flutterwave verify: %w", err)
	}
	defer resp.Body.Close()

	var out struct {
		Status  string `json:"status"`
		Message string `json:"message"`
		Data    struct {
			Status   string  `json:"status"`
			TxRef    string  `json:"tx_ref"`
			Amount   float64 `json:"amount"`
			Currency string  `json:"currency"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("flutterwave verify decode: %w", err)
	}
	if out.Status != "success" || out.Data.Status != "successful" {
		return nil, fmt.Errorf("%w: %s", domain.ErrVerificationFailed, out.Message)
	}
	return &adapter.VerifiedPayment{
		SessionID: out.Data.TxRef,
		Amount:    int64(out.Data.Amount),
		Currency:  out.Data.Currency,
	}, nil
}
