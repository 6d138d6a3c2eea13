package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"hotspot-voucher-platform/internal/config"
	"hotspot-voucher-platform/internal/domain/ports/adapter"
	red "hotspot-voucher-platform/internal/infra/redis"
	"hotspot-voucher-platform/internal/usecase"
)

// Server exposes the portal API: public purchase endpoints, gateway webhooks
// and the authenticated admin surface.
type Server struct {
	sessionUC    usecase.SessionUseCase
	referralUC   usecase.ReferralUseCase
	completionUC usecase.CompletionUseCase
	tariffUC     usecase.TariffUseCase
	settingUC    usecase.SettingUseCase
	ambassadorUC usecase.AmbassadorUseCase

	auth          *AuthManager
	adminPassword string
	campaySecret  string // expected X-Webhook-Token value, empty disables the check
	fwSecretHash  string // expected verif-hash header value
	fwVerifier    adapter.TransactionVerifier
	limiter       *red.RateLimiter

	log  *zerolog.Logger
	http *http.Server
}

func NewServer(
	cfg *config.Config,
	sessionUC usecase.SessionUseCase,
	referralUC usecase.ReferralUseCase,
	completionUC usecase.CompletionUseCase,
	tariffUC usecase.TariffUseCase,
	settingUC usecase.SettingUseCase,
	ambassadorUC usecase.AmbassadorUseCase,
	fwVerifier adapter.TransactionVerifier,
	limiter *red.RateLimiter,
	logger *zerolog.Logger,
) *Server {
	s := &Server{
		sessionUC:     sessionUC,
		referralUC:    referralUC,
		completionUC:  completionUC,
		tariffUC:      tariffUC,
		settingUC:     settingUC,
		ambassadorUC:  ambassadorUC,
		auth:          NewAuthManager(cfg.Admin.JWTSecret, !cfg.Runtime.Dev, cfg.Admin.SessionTTL),
		adminPassword: cfg.Admin.Password,
		campaySecret:  cfg.Payment.Campay.WebhookSecret,
		fwSecretHash:  cfg.Payment.Flutterwave.SecretHash,
		fwVerifier:    fwVerifier,
		limiter:       limiter,
		log:           logger,
	}
	s.http = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Routes builds the router. Exposed separately so handler tests can mount it
// on httptest servers.
func (s *Server) Routes() *chi.Mux {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		// public purchase flow
		r.With(s.rateLimit("create-session", 30)).Post("/create-session", s.handleCreateSession)
		r.Get("/purchase/status/{session_id}", s.handlePurchaseStatus)
		r.With(s.rateLimit("apply-referral", 30)).Post("/apply-referral", s.handleApplyReferral)

		// catalogue and portal config
		r.Get("/tariffs", s.handleListTariffs)
		r.Get("/settings/{key}", s.handleGetSetting)
		r.Get("/payment-providers", s.handlePaymentProviders)

		// ambassadors
		r.Post("/ambassadors", s.handleCreateAmbassador)
		r.Get("/ambassadors", s.handleListAmbassadors)
		r.Get("/ambassadors/{id}", s.handleGetAmbassador)

		// gateway callbacks
		r.Post("/webhook/campay", s.handleCampayWebhook)
		r.Post("/webhook/flutterwave", s.handleFlutterwaveWebhook)

		// admin
		r.Post("/admin/login", s.handleAdminLogin)
		r.Group(func(r chi.Router) {
			r.Use(s.requireAdmin)
			r.Post("/tariffs", s.handleCreateTariff)
			r.Put("/tariffs/{id}", s.handleUpdateTariff)
			r.Post("/settings", s.handleSaveSetting)
		})
	})

	return r
}

func (s *Server) Start() error {
	s.log.Info().Str("addr", s.http.Addr).Msg("HTTP server listening")
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// requireAdmin guards mutating admin routes with the session JWT.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := s.auth.ParseFromRequest(r); err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// rateLimit applies a fixed per-minute budget per client IP. Redis trouble
// fails open; throttling is a convenience, not a security boundary.
func (s *Server) rateLimit(route string, perMinute int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if s.limiter != nil {
				ip, _, err := net.SplitHostPort(r.RemoteAddr)
				if err != nil {
					ip = r.RemoteAddr
				}
				ok, err := s.limiter.Allow(r.Context(), red.ClientKey(ip, route), perMinute, time.Minute)
				if err != nil {
					s.log.Warn().Err(err).Msg("rate limiter unavailable")
				} else if !ok {
					http.Error(w, "Too many requests", http.StatusTooManyRequests)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
