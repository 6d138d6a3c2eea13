//go:build !integration

package usecase_test

import (
	"context"
	"strings"
	"testing"

	"hotspot-voucher-platform/internal/domain/model"
	"hotspot-voucher-platform/internal/usecase"
)

// TestPurchaseFlow chains the session, referral and completion use cases over
// shared in-memory repositories: a buyer opens a session for a 1000 CFA
// tariff, applies a 10% referral code, pays the discounted 900, and polls the
// session until the hotspot credentials show up.
func TestPurchaseFlow(t *testing.T) {
	ctx := context.Background()

	tariffs := newMemTariffRepo()
	purchases := newMemPurchaseRepo()
	ambassadors := newMemAmbassadorRepo()
	settings := newMemSettingRepo()
	commissions := newMemCommissionRepo()
	router := &fakeRouter{}
	notifier := &fakeNotifier{}

	if err := tariffs.Create(ctx, &model.Tariff{ID: "tar-1", Name: "1 Jour", DurationSeconds: 86400, PriceCFA: 1000}); err != nil {
		t.Fatalf("seed tariff: %v", err)
	}
	if err := ambassadors.Create(ctx, &model.Ambassador{ID: "amb-1", UserID: "user-amb", Name: "Jean", ReferralCode: "jeanx1"}); err != nil {
		t.Fatalf("seed ambassador: %v", err)
	}
	settings.store[model.SettingDiscountRate] = "10"

	sessionUC := usecase.NewSessionUseCase(tariffs, purchases, newTestLogger())
	referralUC := usecase.NewReferralUseCase(ambassadors, settings, purchases, newTestLogger())
	completionUC := usecase.NewCompletionUseCase(purchases, tariffs, commissions, router, &fakeLocker{}, notifier, &fakeAlerter{}, "XAF", newTestLogger())

	sess, err := sessionUC.CreateSession(ctx, "tar-1", "user-1")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if sess.Amount != 1000 {
		t.Fatalf("expected tariff price 1000, got %d", sess.Amount)
	}

	discount, newAmount, err := referralUC.ApplyReferral(ctx, "jeanx1", sess.SessionID)
	if err != nil {
		t.Fatalf("apply referral: %v", err)
	}
	if discount != 100 || newAmount != 900 {
		t.Fatalf("expected 100/900, got %d/%d", discount, newAmount)
	}

	outcome, err := completionUC.Complete(ctx, usecase.CompletionRequest{
		Gateway: "flutterwave", SessionID: sess.SessionID, PaidAmount: 900, PaidCurrency: "XAF",
	})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if outcome != usecase.OutcomeCompleted {
		t.Fatalf("expected outcome completed, got %q", outcome)
	}

	p, err := sessionUC.Status(ctx, sess.SessionID)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if p.State != model.PurchaseStateCompleted {
		t.Errorf("expected purchase completed, got %q", p.State)
	}
	if !usernameRe.MatchString(p.MikrotikUser) {
		t.Errorf("unexpected username format: %q", p.MikrotikUser)
	}
	if len(p.MikrotikPass) != 8 {
		t.Errorf("expected 8-char password, got %q", p.MikrotikPass)
	}

	if len(commissions.calls) != 1 {
		t.Fatalf("expected 1 commission call, got %d", len(commissions.calls))
	}
	if call := commissions.calls[0]; call.AmbassadorID != "amb-1" || call.PurchaseAmount != 900 {
		t.Errorf("unexpected commission call: %+v", call)
	}
	if len(notifier.sent) != 1 || !strings.Contains(notifier.sent[0], p.MikrotikUser) {
		t.Errorf("expected a notification carrying the credentials, got %v", notifier.sent)
	}
}
