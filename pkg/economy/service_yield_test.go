package economy_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rayomarblezh-dev/mundo-mitico-sub000/internal/store/memstore"
	"github.com/rayomarblezh-dev/mundo-mitico-sub000/pkg/economy"
)

func TestYieldSweepCreditsOncePerDay(test *testing.T) {
	test.Parallel()
	store := memstore.New()
	service, _ := mustNewService(test, store)
	userID := mustAccountWithBalance(test, store, service, "farmer", 0)
	if err := store.SetItemCount(context.Background(), userID, economy.ItemHada, 3); err != nil {
		test.Fatalf("seed inventory: %v", err)
	}

	report, err := service.RunYieldSweep(context.Background(), "2026-08-29")
	if err != nil {
		test.Fatalf("first sweep: %v", err)
	}
	if report.AccountsPaid != 1 {
		test.Fatalf("expected 1 account paid, got %d", report.AccountsPaid)
	}
	expected := economy.Amount(3 * 8_000_000)
	if report.TotalCredited != expected {
		test.Fatalf("expected %d credited, got %d", expected, report.TotalCredited)
	}
	if got := mustBalance(test, service, userID); got != expected {
		test.Fatalf("expected balance %d, got %d", expected, got)
	}

	rerun, err := service.RunYieldSweep(context.Background(), "2026-08-29")
	if err != nil {
		test.Fatalf("second sweep: %v", err)
	}
	if rerun.AccountsPaid != 0 {
		test.Fatalf("same-day rerun paid %d accounts", rerun.AccountsPaid)
	}
	if got := mustBalance(test, service, userID); got != expected {
		test.Fatalf("same-day rerun changed balance to %d", got)
	}

	nextDay, err := service.RunYieldSweep(context.Background(), "2026-08-30")
	if err != nil {
		test.Fatalf("next-day sweep: %v", err)
	}
	if nextDay.AccountsPaid != 1 {
		test.Fatalf("next day should pay again, paid %d", nextDay.AccountsPaid)
	}
	if got := mustBalance(test, service, userID); got != 2*expected {
		test.Fatalf("expected balance %d after two days, got %d", 2*expected, got)
	}
}

func TestYieldSweepSkipsAccountsWithoutYieldItems(test *testing.T) {
	test.Parallel()
	store := memstore.New()
	service, _ := mustNewService(test, store)
	userID := mustAccountWithBalance(test, store, service, "idle", 0)

	report, err := service.RunYieldSweep(context.Background(), "2026-08-29")
	if err != nil {
		test.Fatalf("sweep: %v", err)
	}
	if report.AccountsVisited != 1 || report.AccountsPaid != 0 {
		test.Fatalf("expected visited=1 paid=0, got visited=%d paid=%d", report.AccountsVisited, report.AccountsPaid)
	}
	if got := mustBalance(test, service, userID); got != 0 {
		test.Fatalf("empty account was credited %d", got)
	}
}

func TestExpirySweepClearsElapsedItems(test *testing.T) {
	test.Parallel()
	store := memstore.New()
	service, clock := mustNewService(test, store)
	userID := mustAccountWithBalance(test, store, service, "mortal", 0)
	seed := func(kind economy.ItemKind, count int64) {
		if err := store.SetItemCount(context.Background(), userID, kind, count); err != nil {
			test.Fatalf("seed %s: %v", kind, err)
		}
	}
	seed(economy.ItemHada, 2)
	seed(economy.ItemDragon, 1)
	seed(economy.ItemTotemNFT, 1)

	// 46 days after registration: only the 45-day hada has elapsed.
	now := clock.nowUnixUTC + 46*86_400
	report, err := service.RunExpirySweep(context.Background(), now)
	if err != nil {
		test.Fatalf("expiry sweep: %v", err)
	}
	if report.ItemsExpired != 1 {
		test.Fatalf("expected 1 expired item kind, got %d", report.ItemsExpired)
	}
	inventory, err := service.Inventory(context.Background(), userID)
	if err != nil {
		test.Fatalf("inventory: %v", err)
	}
	if inventory[economy.ItemHada] != 0 {
		test.Fatalf("hada not cleared, count %d", inventory[economy.ItemHada])
	}
	if inventory[economy.ItemDragon] != 1 {
		test.Fatalf("dragon cleared early, count %d", inventory[economy.ItemDragon])
	}
	if inventory[economy.ItemTotemNFT] != 1 {
		test.Fatalf("permanent item cleared, count %d", inventory[economy.ItemTotemNFT])
	}

	rerun, err := service.RunExpirySweep(context.Background(), now)
	if err != nil {
		test.Fatalf("rerun: %v", err)
	}
	if rerun.ItemsExpired != 0 {
		test.Fatalf("rerun expired %d items", rerun.ItemsExpired)
	}
}

func TestYieldSweepRetryPaysAfterCreditFailure(test *testing.T) {
	test.Parallel()
	backing := memstore.New()
	store := &faultStore{Store: backing, failCredit: true}
	service, _ := mustNewService(test, store)
	userID := mustAccountWithBalance(test, backing, service, "patient", 0)
	if err := backing.SetItemCount(context.Background(), userID, economy.ItemHada, 2); err != nil {
		test.Fatalf("seed inventory: %v", err)
	}

	if _, err := service.RunYieldSweep(context.Background(), "2026-08-29"); !errors.Is(err, economy.ErrStoreUnavailable) {
		test.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
	if got := mustBalance(test, service, userID); got != 0 {
		test.Fatalf("failed sweep credited %d", got)
	}

	store.failCredit = false
	report, err := service.RunYieldSweep(context.Background(), "2026-08-29")
	if err != nil {
		test.Fatalf("retry sweep: %v", err)
	}
	if report.AccountsPaid != 1 {
		test.Fatalf("retry paid %d accounts, day claim not released", report.AccountsPaid)
	}
	expected := economy.Amount(2 * 8_000_000)
	if got := mustBalance(test, service, userID); got != expected {
		test.Fatalf("expected balance %d after retry, got %d", expected, got)
	}
}
