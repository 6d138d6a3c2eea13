package web

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"hotspot-voucher-platform/internal/domain"
	"hotspot-voucher-platform/internal/infra/logging"
	"hotspot-voucher-platform/internal/infra/metrics"
	"hotspot-voucher-platform/internal/usecase"
)

// verifyCampaySignature checks the shared webhook token when one is
// configured. Campay does not sign deliveries today, so with no token set
// authenticity rests on the session token being unguessable and on the
// purchase state guard.
func (s *Server) verifyCampaySignature(r *http.Request) bool {
	if s.campaySecret == "" {
		return true
	}
	token := r.Header.Get("X-Webhook-Token")
	return token != "" && subtle.ConstantTimeCompare([]byte(token), []byte(s.campaySecret)) == 1
}

type campayPayload struct {
	Status            string `json:"status"`
	ExternalReference string `json:"external_reference"`
	Reference         string `json:"reference"`
	Amount            string `json:"amount"`
	Currency          string `json:"currency"`
}

func (s *Server) handleCampayWebhook(w http.ResponseWriter, r *http.Request) {
	const gateway = "campay"
	start := time.Now()
	ctx := logging.WithDeliveryID(r.Context(), ulid.Make().String())
	log := logging.With(ctx, s.log)

	if !s.verifyCampaySignature(r) {
		metrics.IncWebhook(gateway, "rejected")
		http.Error(w, "Invalid signature", http.StatusBadRequest)
		return
	}

	var payload campayPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		metrics.IncWebhook(gateway, "rejected")
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	if payload.Status != "SUCCESS" {
		// Failed or cancelled payments are acknowledged and dropped; the
		// purchase simply stays pending.
		log.Info().Str("status", payload.Status).Msg("campay webhook ignored")
		metrics.IncWebhook(gateway, "ignored")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("Webhook received and ignored"))
		return
	}

	if payload.ExternalReference == "" {
		metrics.IncWebhook(gateway, "rejected")
		http.Error(w, "Session ID is missing", http.StatusBadRequest)
		return
	}

	// Campay has no server-side verification endpoint; PaidAmount stays zero
	// and the tamper check is skipped.
	outcome, err := s.completionUC.Complete(ctx, usecase.CompletionRequest{
		Gateway:   gateway,
		SessionID: payload.ExternalReference,
	})
	s.respondCompletion(w, log, gateway, outcome, err, time.Since(start))
}

type flutterwavePayload struct {
	Event string `json:"event"`
	Data  struct {
		ID            int64   `json:"id"`
		TransactionID int64   `json:"transaction_id"`
		TxRef         string  `json:"tx_ref"`
		Status        string  `json:"status"`
		Amount        float64 `json:"amount"`
		Currency      string  `json:"currency"`
	} `json:"data"`
}

func (s *Server) handleFlutterwaveWebhook(w http.ResponseWriter, r *http.Request) {
	const gateway = "flutterwave"
	start := time.Now()
	ctx := logging.WithDeliveryID(r.Context(), ulid.Make().String())
	log := logging.With(ctx, s.log)

	signature := r.Header.Get("verif-hash")
	if signature == "" || signature != s.fwSecretHash {
		metrics.IncWebhook(gateway, "rejected")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var payload flutterwavePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		metrics.IncWebhook(gateway, "rejected")
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	if payload.Event != "charge.completed" || payload.Data.Status != "successful" {
		log.Info().Str("event", payload.Event).Str("status", payload.Data.Status).Msg("flutterwave webhook ignored")
		metrics.IncWebhook(gateway, "ignored")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("Webhook received"))
		return
	}

	if payload.Data.TxRef == "" {
		metrics.IncWebhook(gateway, "rejected")
		http.Error(w, "Transaction reference (session_id) is missing", http.StatusBadRequest)
		return
	}

	txID := payload.Data.ID
	if txID == 0 {
		txID = payload.Data.TransactionID
	}

	// Never trust the payload's numbers: re-fetch the transaction from
	// Flutterwave before handing it to the completion flow.
	verified, err := s.fwVerifier.VerifyTransaction(ctx, fmt.Sprintf("%d", txID))
	if err != nil {
		log.Error().Err(err).Int64("tx_id", txID).Msg("flutterwave verification failed")
		metrics.IncWebhook(gateway, "rejected")
		http.Error(w, "Transaction verification failed", http.StatusBadRequest)
		return
	}

	outcome, err := s.completionUC.Complete(ctx, usecase.CompletionRequest{
		Gateway:      gateway,
		SessionID:    payload.Data.TxRef,
		PaidAmount:   verified.Amount,
		PaidCurrency: verified.Currency,
	})
	s.respondCompletion(w, log, gateway, outcome, err, time.Since(start))
}

// respondCompletion maps the completion outcome onto the gateway-facing
// response. Anything non-2xx makes the gateway redeliver later.
func (s *Server) respondCompletion(w http.ResponseWriter, log *zerolog.Logger, gateway string, outcome usecase.CompletionOutcome, err error, elapsed time.Duration) {
	metrics.ObserveWebhookDuration(gateway, elapsed.Seconds())

	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			metrics.IncWebhook(gateway, "rejected")
			http.Error(w, "Purchase session not found", http.StatusNotFound)
		case errors.Is(err, domain.ErrAmountMismatch):
			metrics.IncWebhook(gateway, "rejected")
			http.Error(w, "Invalid amount or currency", http.StatusBadRequest)
		case errors.Is(err, domain.ErrSessionBusy):
			// Another delivery holds the lock; let the gateway retry against
			// the settled state.
			metrics.IncWebhook(gateway, "busy")
			http.Error(w, "Session is being processed", http.StatusConflict)
		default:
			log.Error().Err(err).Msg("webhook processing failed")
			metrics.IncWebhook(gateway, "error")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	if outcome == usecase.OutcomeDuplicate {
		metrics.IncWebhook(gateway, "duplicate")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK (already processed)"))
		return
	}

	metrics.IncWebhook(gateway, "completed")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
