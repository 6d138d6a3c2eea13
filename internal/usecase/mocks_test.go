//go:build !integration

package usecase_test

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"hotspot-voucher-platform/internal/domain"
	"hotspot-voucher-platform/internal/domain/model"
	"hotspot-voucher-platform/internal/domain/ports/adapter"
)

// newTestLogger creates a silent zerolog.Logger for use in tests.
func newTestLogger() *zerolog.Logger {
	l := zerolog.New(io.Discard)
	return &l
}

// memTariffRepo is a small in-memory implementation used by unit tests.
type memTariffRepo struct {
	mu        sync.RWMutex
	store     map[string]*model.Tariff
	createErr error // used by tests to simulate insert failures
}

func newMemTariffRepo() *memTariffRepo {
	return &memTariffRepo{store: make(map[string]*model.Tariff)}
}

func (m *memTariffRepo) Create(ctx context.Context, t *model.Tariff) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *t
	m.store[t.ID] = &cp
	return nil
}

func (m *memTariffRepo) Update(ctx context.Context, t *model.Tariff) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[t.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *t
	m.store[t.ID] = &cp
	return nil
}

func (m *memTariffRepo) FindByID(ctx context.Context, id string) (*model.Tariff, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *memTariffRepo) ListAll(ctx context.Context) ([]*model.Tariff, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.Tariff, 0, len(m.store))
	for _, t := range m.store {
		cp := *t
		out = append(out, &cp)
	}
	return out, nil
}

// memPurchaseRepo keeps purchases keyed by ID with a session index, the way
// the real table is indexed.
type memPurchaseRepo struct {
	mu        sync.RWMutex
	store     map[string]*model.Purchase
	bySession map[string]string

	createErr error
	// CompletePendingFunc, when set, replaces the default guarded update.
	CompletePendingFunc func(ctx context.Context, purchaseID, username, password string) (bool, error)
}

func newMemPurchaseRepo() *memPurchaseRepo {
	return &memPurchaseRepo{store: make(map[string]*model.Purchase), bySession: make(map[string]string)}
}

func (m *memPurchaseRepo) Create(ctx context.Context, p *model.Purchase) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bySession[p.SessionID]; ok {
		return domain.ErrAlreadyExists
	}
	cp := *p
	m.store[p.ID] = &cp
	m.bySession[p.SessionID] = p.ID
	return nil
}

func (m *memPurchaseRepo) FindBySessionID(ctx context.Context, sessionID string) (*model.Purchase, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.bySession[sessionID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *m.store[id]
	return &cp, nil
}

func (m *memPurchaseRepo) ApplyDiscount(ctx context.Context, purchaseID string, newAmount int64, referralID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.store[purchaseID]
	if !ok {
		return domain.ErrNotFound
	}
	if p.ReferralID != "" {
		return domain.ErrDiscountApplied
	}
	p.Amount = newAmount
	p.ReferralID = referralID
	return nil
}

func (m *memPurchaseRepo) CompletePending(ctx context.Context, purchaseID, username, password string) (bool, error) {
	if m.CompletePendingFunc != nil {
		return m.CompletePendingFunc(ctx, purchaseID, username, password)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.store[purchaseID]
	if !ok || p.State != model.PurchaseStatePending {
		return false, nil
	}
	p.State = model.PurchaseStateCompleted
	p.MikrotikUser = username
	p.MikrotikPass = password
	return true, nil
}

func (m *memPurchaseRepo) get(id string) *model.Purchase {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cp := *m.store[id]
	return &cp
}

type memAmbassadorRepo struct {
	mu        sync.RWMutex
	store     map[string]*model.Ambassador // map by ID
	createErr error
}

func newMemAmbassadorRepo() *memAmbassadorRepo {
	return &memAmbassadorRepo{store: make(map[string]*model.Ambassador)}
}

func (m *memAmbassadorRepo) Create(ctx context.Context, a *model.Ambassador) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ex := range m.store {
		if ex.UserID == a.UserID || ex.ReferralCode == a.ReferralCode {
			return domain.ErrAlreadyExists
		}
	}
	cp := *a
	m.store[a.ID] = &cp
	return nil
}

func (m *memAmbassadorRepo) FindByReferralCode(ctx context.Context, code string) (*model.Ambassador, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.store {
		if a.ReferralCode == code {
			cp := *a
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memAmbassadorRepo) FindByUserID(ctx context.Context, userID string) (*model.Ambassador, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.store {
		if a.UserID == userID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memAmbassadorRepo) ListAll(ctx context.Context) ([]*model.Ambassador, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.Ambassador, 0, len(m.store))
	for _, a := range m.store {
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}

type memSettingRepo struct {
	mu     sync.RWMutex
	store  map[string]string
	getErr error
}

func newMemSettingRepo() *memSettingRepo {
	return &memSettingRepo{store: make(map[string]string)}
}

func (m *memSettingRepo) Get(ctx context.Context, key string) (*model.Setting, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.store[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &model.Setting{Key: key, Value: v}, nil
}

func (m *memSettingRepo) GetMany(ctx context.Context, keys []string) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		if v, ok := m.store[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

func (m *memSettingRepo) Upsert(ctx context.Context, s *model.Setting) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[s.Key] = s.Value
	return nil
}

// memCommissionRepo records commission RPC calls instead of invoking a
// database function.
type memCommissionRepo struct {
	mu     sync.Mutex
	calls  []commissionCall
	addErr error
}

type commissionCall struct {
	AmbassadorID   string
	PurchaseID     string
	PurchaseAmount int64
	CustomerUserID string
}

func newMemCommissionRepo() *memCommissionRepo { return &memCommissionRepo{} }

func (m *memCommissionRepo) Add(ctx context.Context, ambassadorID, purchaseID string, purchaseAmount int64, customerUserID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, commissionCall{ambassadorID, purchaseID, purchaseAmount, customerUserID})
	if m.addErr != nil {
		return m.addErr
	}
	return nil
}

// fakeLocker hands out locks unconditionally unless busy is set. It records
// lock/unlock pairs so tests can assert the lock is always released.
type fakeLocker struct {
	mu       sync.Mutex
	busy     bool
	locked   []string
	unlocked []string
}

func (f *fakeLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.busy {
		return "", domain.ErrSessionBusy
	}
	f.locked = append(f.locked, key)
	return "tok-" + key, nil
}

func (f *fakeLocker) Unlock(ctx context.Context, key, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unlocked = append(f.unlocked, key)
	return nil
}

type fakeRouter struct {
	mu       sync.Mutex
	accounts []adapter.HotspotAccount
	err      error
}

func (f *fakeRouter) CreateHotspotUser(ctx context.Context, acc adapter.HotspotAccount) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.accounts = append(f.accounts, acc)
	return nil
}

type fakeNotifier struct {
	mu    sync.Mutex
	sent  []string // "userID|title|body"
	err   error
	calls int
}

func (f *fakeNotifier) NotifyUser(ctx context.Context, userID, title, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, userID+"|"+title+"|"+body)
	return nil
}

type fakeAlerter struct {
	mu       sync.Mutex
	messages []string
}

func (f *fakeAlerter) Alert(ctx context.Context, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, message)
	return nil
}

type fakeDirectory struct {
	users map[string]*adapter.UserInfo
	err   error
}

func (f *fakeDirectory) Lookup(ctx context.Context, userID string) (*adapter.UserInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}
