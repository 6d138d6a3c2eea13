package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hotspot-voucher-platform/internal/domain"
)

// ---- purchase flow ----

type createSessionRequest struct {
	TariffID string `json:"tariff_id"`
	UserID   string `json:"user_id,omitempty"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.TariffID == "" {
		http.Error(w, "tariff_id is required", http.StatusBadRequest)
		return
	}

	sess, err := s.sessionUC.CreateSession(r.Context(), req.TariffID, req.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, "Tariff not found", http.StatusNotFound)
			return
		}
		s.log.Error().Err(err).Msg("create session failed")
		http.Error(w, "Could not initiate purchase session", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message":     "Session created successfully",
		"session_id":  sess.SessionID,
		"purchase_id": sess.PurchaseID,
		"amount":      sess.Amount,
	})
}

func (s *Server) handlePurchaseStatus(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session_id")
	p, err := s.sessionUC.Status(r.Context(), sessionID)
	if err != nil {
		http.Error(w, "Purchase not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"state":         p.State,
		"mikrotik_user": p.MikrotikUser,
		"mikrotik_pass": p.MikrotikPass,
	})
}

type applyReferralRequest struct {
	ReferralCode string `json:"referral_code"`
	SessionID    string `json:"session_id"`
}

func (s *Server) handleApplyReferral(w http.ResponseWriter, r *http.Request) {
	var req applyReferralRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.ReferralCode == "" || req.SessionID == "" {
		http.Error(w, "referral_code and session_id are required", http.StatusBadRequest)
		return
	}

	discount, newAmount, err := s.referralUC.ApplyReferral(r.Context(), req.ReferralCode, req.SessionID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			http.Error(w, "Referral code or purchase session not found", http.StatusNotFound)
		case errors.Is(err, domain.ErrDiscountApplied):
			http.Error(w, "Discount already applied", http.StatusConflict)
		case errors.Is(err, domain.ErrMisconfigured):
			s.log.Error().Err(err).Msg("discount rate not configured")
			http.Error(w, "Discount rate not configured", http.StatusInternalServerError)
		default:
			s.log.Error().Err(err).Msg("apply referral failed")
			http.Error(w, "Failed to apply discount", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":         "Discount applied successfully",
		"discount_amount": discount,
		"new_amount":      newAmount,
	})
}

// ---- catalogue / portal config ----

func (s *Server) handleListTariffs(w http.ResponseWriter, r *http.Request) {
	tariffs, err := s.tariffUC.List(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("list tariffs failed")
		http.Error(w, "Could not fetch tariffs", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, tariffs)
}

type tariffRequest struct {
	Name            string `json:"name"`
	DataBytes       int64  `json:"data_bytes"`
	DurationSeconds int64  `json:"duration_seconds"`
	PriceCFA        int64  `json:"price_cfa"`
	SpeedLimit      string `json:"speed_limit"`
}

func (s *Server) handleCreateTariff(w http.ResponseWriter, r *http.Request) {
	var req tariffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	t, err := s.tariffUC.Create(r.Context(), req.Name, req.DataBytes, req.DurationSeconds, req.PriceCFA, req.SpeedLimit)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidArgument) {
			http.Error(w, "Invalid tariff", http.StatusBadRequest)
			return
		}
		s.log.Error().Err(err).Msg("create tariff failed")
		http.Error(w, "Could not create tariff", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) handleUpdateTariff(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req tariffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	t, err := s.tariffUC.Update(r.Context(), id, req.Name, req.DataBytes, req.DurationSeconds, req.PriceCFA, req.SpeedLimit)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidArgument):
			http.Error(w, "Invalid tariff", http.StatusBadRequest)
		case errors.Is(err, domain.ErrNotFound):
			http.Error(w, "Tariff not found", http.StatusNotFound)
		default:
			s.log.Error().Err(err).Str("tariff_id", id).Msg("update tariff failed")
			http.Error(w, "Could not update tariff", http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleGetSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	value, err := s.settingUC.Get(r.Context(), key)
	if err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("get setting failed")
		http.Error(w, "Could not fetch setting", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"value": value})
}

type saveSettingRequest struct {
	Key   string  `json:"key"`
	Value *string `json:"value"`
}

func (s *Server) handleSaveSetting(w http.ResponseWriter, r *http.Request) {
	var req saveSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Key == "" || req.Value == nil {
		http.Error(w, "Key and value are required", http.StatusBadRequest)
		return
	}
	setting, err := s.settingUC.Save(r.Context(), req.Key, *req.Value)
	if err != nil {
		s.log.Error().Err(err).Str("key", req.Key).Msg("save setting failed")
		http.Error(w, "Could not save setting", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, setting)
}

func (s *Server) handlePaymentProviders(w http.ResponseWriter, r *http.Request) {
	providers, err := s.settingUC.Providers(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("payment providers failed")
		http.Error(w, "Could not fetch payment providers", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, providers)
}

// ---- ambassadors ----

type createAmbassadorRequest struct {
	UserID       string `json:"user_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	ReferralCode string `json:"referral_code"`
}

func (s *Server) handleCreateAmbassador(w http.ResponseWriter, r *http.Request) {
	var req createAmbassadorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	a, err := s.ambassadorUC.Create(r.Context(), req.UserID, req.Name, req.Email, req.ReferralCode)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidArgument):
			http.Error(w, "user_id is required", http.StatusBadRequest)
		case errors.Is(err, domain.ErrNotFound):
			http.Error(w, "Authenticated user not found", http.StatusNotFound)
		case errors.Is(err, domain.ErrAlreadyExists):
			http.Error(w, "Ambassador profile already exists for this user", http.StatusConflict)
		default:
			s.log.Error().Err(err).Msg("create ambassador failed")
			http.Error(w, "Could not create ambassador profile", http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (s *Server) handleGetAmbassador(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	a, stats, err := s.ambassadorUC.GetByUserID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, "Ambassador not found", http.StatusNotFound)
			return
		}
		s.log.Error().Err(err).Msg("get ambassador failed")
		http.Error(w, "Error fetching ambassador data", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":            a.ID,
		"user_id":       a.UserID,
		"name":          a.Name,
		"email":         a.Email,
		"referral_code": a.ReferralCode,
		"balance":       a.Balance,
		"created_at":    a.CreatedAt,
		"stats":         stats,
	})
}

func (s *Server) handleListAmbassadors(w http.ResponseWriter, r *http.Request) {
	ambassadors, err := s.ambassadorUC.List(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("list ambassadors failed")
		http.Error(w, "Could not fetch ambassadors", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, ambassadors)
}

// ---- admin session ----

type adminLoginRequest struct {
	Password string `json:"password"`
}

func (s *Server) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if s.adminPassword == "" || req.Password != s.adminPassword {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	token, err := s.auth.Mint(w)
	if err != nil {
		s.log.Error().Err(err).Msg("mint admin session failed")
		http.Error(w, "Could not create session", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}
