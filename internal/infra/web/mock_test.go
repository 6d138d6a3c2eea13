//go:build !integration

package web

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"hotspot-voucher-platform/internal/config"
	"hotspot-voucher-platform/internal/domain"
	"hotspot-voucher-platform/internal/domain/model"
	"hotspot-voucher-platform/internal/domain/ports/adapter"
	"hotspot-voucher-platform/internal/usecase"
)

// --- Mock Use Cases ---

type mockSessionUC struct {
	CreateSessionFunc func(ctx context.Context, tariffID, userID string) (*usecase.Session, error)
	StatusFunc        func(ctx context.Context, sessionID string) (*model.Purchase, error)
}

func (m *mockSessionUC) CreateSession(ctx context.Context, tariffID, userID string) (*usecase.Session, error) {
	if m.CreateSessionFunc != nil {
		return m.CreateSessionFunc(ctx, tariffID, userID)
	}
	return nil, domain.ErrNotFound
}

func (m *mockSessionUC) Status(ctx context.Context, sessionID string) (*model.Purchase, error) {
	if m.StatusFunc != nil {
		return m.StatusFunc(ctx, sessionID)
	}
	return nil, domain.ErrNotFound
}

type mockReferralUC struct {
	ApplyReferralFunc func(ctx context.Context, referralCode, sessionID string) (int64, int64, error)
}

func (m *mockReferralUC) ApplyReferral(ctx context.Context, referralCode, sessionID string) (int64, int64, error) {
	if m.ApplyReferralFunc != nil {
		return m.ApplyReferralFunc(ctx, referralCode, sessionID)
	}
	return 0, 0, domain.ErrNotFound
}

// mockCompletionUC records requests so webhook tests can assert what reached
// the completion flow.
type mockCompletionUC struct {
	mu           sync.Mutex
	requests     []usecase.CompletionRequest
	CompleteFunc func(ctx context.Context, req usecase.CompletionRequest) (usecase.CompletionOutcome, error)
}

func (m *mockCompletionUC) Complete(ctx context.Context, req usecase.CompletionRequest) (usecase.CompletionOutcome, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, req)
	}
	return usecase.OutcomeCompleted, nil
}

func (m *mockCompletionUC) calls() []usecase.CompletionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]usecase.CompletionRequest(nil), m.requests...)
}

type mockTariffUC struct {
	CreateFunc func(ctx context.Context, name string, dataBytes, durationSeconds, priceCFA int64, speedLimit string) (*model.Tariff, error)
	UpdateFunc func(ctx context.Context, id, name string, dataBytes, durationSeconds, priceCFA int64, speedLimit string) (*model.Tariff, error)
	ListFunc   func(ctx context.Context) ([]*model.Tariff, error)
}

func (m *mockTariffUC) Create(ctx context.Context, name string, dataBytes, durationSeconds, priceCFA int64, speedLimit string) (*model.Tariff, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, name, dataBytes, durationSeconds, priceCFA, speedLimit)
	}
	return &model.Tariff{ID: "tar-1", Name: name, DataBytes: dataBytes, DurationSeconds: durationSeconds, PriceCFA: priceCFA, SpeedLimit: speedLimit}, nil
}

func (m *mockTariffUC) Update(ctx context.Context, id, name string, dataBytes, durationSeconds, priceCFA int64, speedLimit string) (*model.Tariff, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, name, dataBytes, durationSeconds, priceCFA, speedLimit)
	}
	return &model.Tariff{ID: id, Name: name, DataBytes: dataBytes, DurationSeconds: durationSeconds, PriceCFA: priceCFA, SpeedLimit: speedLimit}, nil
}

func (m *mockTariffUC) List(ctx context.Context) ([]*model.Tariff, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []*model.Tariff{}, nil
}

type mockSettingUC struct {
	GetFunc       func(ctx context.Context, key string) (string, error)
	SaveFunc      func(ctx context.Context, key, value string) (*model.Setting, error)
	ProvidersFunc func(ctx context.Context) ([]usecase.PaymentProvider, error)
}

func (m *mockSettingUC) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	return "2", nil
}

func (m *mockSettingUC) Save(ctx context.Context, key, value string) (*model.Setting, error) {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, key, value)
	}
	return &model.Setting{Key: key, Value: value}, nil
}

func (m *mockSettingUC) Providers(ctx context.Context) ([]usecase.PaymentProvider, error) {
	if m.ProvidersFunc != nil {
		return m.ProvidersFunc(ctx)
	}
	return []usecase.PaymentProvider{}, nil
}

type mockAmbassadorUC struct {
	CreateFunc      func(ctx context.Context, userID, name, email, referralCode string) (*model.Ambassador, error)
	GetByUserIDFunc func(ctx context.Context, userID string) (*model.Ambassador, *model.AmbassadorStats, error)
	ListFunc        func(ctx context.Context) ([]*model.Ambassador, error)
}

func (m *mockAmbassadorUC) Create(ctx context.Context, userID, name, email, referralCode string) (*model.Ambassador, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID, name, email, referralCode)
	}
	return &model.Ambassador{ID: "amb-1", UserID: userID, Name: name, Email: email, ReferralCode: referralCode}, nil
}

func (m *mockAmbassadorUC) GetByUserID(ctx context.Context, userID string) (*model.Ambassador, *model.AmbassadorStats, error) {
	if m.GetByUserIDFunc != nil {
		return m.GetByUserIDFunc(ctx, userID)
	}
	return nil, nil, domain.ErrNotFound
}

func (m *mockAmbassadorUC) List(ctx context.Context) ([]*model.Ambassador, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []*model.Ambassador{}, nil
}

// --- Test server plumbing ---

const (
	testAdminPassword = "hunter2"
	testFwSecretHash  = "fw-hash-secret"
)

type serverMocks struct {
	session    *mockSessionUC
	referral   *mockReferralUC
	completion *mockCompletionUC
	tariff     *mockTariffUC
	setting    *mockSettingUC
	ambassador *mockAmbassadorUC
	fwVerifier adapter.TransactionVerifier
}

func newTestServer(m *serverMocks) *Server {
	cfg := &config.Config{}
	cfg.Server.Port = 0
	cfg.Admin.JWTSecret = "test-secret"
	cfg.Admin.SessionTTL = time.Hour
	cfg.Admin.Password = testAdminPassword
	cfg.Payment.Flutterwave.SecretHash = testFwSecretHash
	cfg.Runtime.Dev = true

	logger := zerolog.New(io.Discard)
	return NewServer(cfg, m.session, m.referral, m.completion, m.tariff, m.setting, m.ambassador, m.fwVerifier, nil, &logger)
}

func defaultMocks() *serverMocks {
	return &serverMocks{
		session:    &mockSessionUC{},
		referral:   &mockReferralUC{},
		completion: &mockCompletionUC{},
		tariff:     &mockTariffUC{},
		setting:    &mockSettingUC{},
		ambassador: &mockAmbassadorUC{},
	}
}
