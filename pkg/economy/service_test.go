package economy_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rayomarblezh-dev/mundo-mitico-sub000/internal/store/memstore"
	"github.com/rayomarblezh-dev/mundo-mitico-sub000/pkg/economy"
)

func TestBalanceZeroForUnknownAccount(test *testing.T) {
	test.Parallel()
	service, _ := mustNewService(test, memstore.New())

	balance, err := service.Balance(context.Background(), mustUserID(test, "nobody"))
	if err != nil {
		test.Fatalf("balance: %v", err)
	}
	if balance != 0 {
		test.Fatalf("expected zero balance, got %d", balance)
	}
}

func TestEnsureAccountIsIdempotent(test *testing.T) {
	test.Parallel()
	store := memstore.New()
	service, _ := mustNewService(test, store)
	userID := mustUserID(test, "54001")

	first, err := service.EnsureAccount(context.Background(), userID, "")
	if err != nil {
		test.Fatalf("first ensure: %v", err)
	}
	second, err := service.EnsureAccount(context.Background(), userID, "")
	if err != nil {
		test.Fatalf("second ensure: %v", err)
	}
	if first.RegisteredUnixUTC != second.RegisteredUnixUTC {
		test.Fatalf("registration timestamp changed: %d vs %d", first.RegisteredUnixUTC, second.RegisteredUnixUTC)
	}
}

func TestPurchaseDebitsAndGrantsItems(test *testing.T) {
	test.Parallel()
	store := memstore.New()
	service, _ := mustNewService(test, store)
	userID := mustAccountWithBalance(test, store, service, "buyer", 1_000_000_000)

	total, err := service.Purchase(context.Background(), userID, economy.ItemHada, 2)
	if err != nil {
		test.Fatalf("purchase: %v", err)
	}
	if total != 800_000_000 {
		test.Fatalf("expected total 800000000, got %d", total)
	}
	if got := mustBalance(test, service, userID); got != 200_000_000 {
		test.Fatalf("expected remaining balance 200000000, got %d", got)
	}
	inventory, err := service.Inventory(context.Background(), userID)
	if err != nil {
		test.Fatalf("inventory: %v", err)
	}
	if inventory[economy.ItemHada] != 2 {
		test.Fatalf("expected 2 hadas, got %d", inventory[economy.ItemHada])
	}
}

func TestPurchaseInsufficientBalance(test *testing.T) {
	test.Parallel()
	store := memstore.New()
	service, _ := mustNewService(test, store)
	userID := mustAccountWithBalance(test, store, service, "broke", 300_000_000)

	_, err := service.Purchase(context.Background(), userID, economy.ItemHada, 1)
	if !errors.Is(err, economy.ErrInsufficientBalance) {
		test.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
	if got := mustBalance(test, service, userID); got != 300_000_000 {
		test.Fatalf("balance changed on failed purchase: %d", got)
	}
}

func TestPurchaseUnknownItem(test *testing.T) {
	test.Parallel()
	store := memstore.New()
	service, _ := mustNewService(test, store)
	userID := mustAccountWithBalance(test, store, service, "curious", 1_000_000_000)

	_, err := service.Purchase(context.Background(), userID, economy.ItemKind("quimera"), 1)
	if !errors.Is(err, economy.ErrInvalidItemKind) {
		test.Fatalf("expected ErrInvalidItemKind, got %v", err)
	}
}

func TestPurchaseRejectsNonPositiveQuantity(test *testing.T) {
	test.Parallel()
	store := memstore.New()
	service, _ := mustNewService(test, store)
	userID := mustAccountWithBalance(test, store, service, "zero", 1_000_000_000)

	if _, err := service.Purchase(context.Background(), userID, economy.ItemHada, 0); !errors.Is(err, economy.ErrInvalidQuantity) {
		test.Fatalf("expected ErrInvalidQuantity for zero, got %v", err)
	}
	if _, err := service.Purchase(context.Background(), userID, economy.ItemHada, -3); !errors.Is(err, economy.ErrInvalidQuantity) {
		test.Fatalf("expected ErrInvalidQuantity for negative, got %v", err)
	}
}

func TestPurchaseRefundsDebitWhenInventoryFails(test *testing.T) {
	test.Parallel()
	backing := memstore.New()
	store := &faultStore{Store: backing, failAdjustItem: true}
	service, _ := mustNewService(test, store)
	userID := mustAccountWithBalance(test, backing, service, "unlucky", 1_000_000_000)

	_, err := service.Purchase(context.Background(), userID, economy.ItemHada, 1)
	if !errors.Is(err, economy.ErrStoreUnavailable) {
		test.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
	if got := mustBalance(test, service, userID); got != 1_000_000_000 {
		test.Fatalf("debit was not refunded, balance %d", got)
	}
}

func TestConcurrentPurchasesSpendBalanceAtMostOnce(test *testing.T) {
	test.Parallel()
	store := memstore.New()
	service, _ := mustNewService(test, store)
	userID := mustAccountWithBalance(test, store, service, "racer", 400_000_000)

	const attempts = 8
	var wg sync.WaitGroup
	results := make([]error, attempts)
	for index := 0; index < attempts; index++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			_, results[slot] = service.Purchase(context.Background(), userID, economy.ItemHada, 1)
		}(index)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
		} else if !errors.Is(err, economy.ErrInsufficientBalance) {
			test.Fatalf("unexpected purchase error: %v", err)
		}
	}
	if succeeded != 1 {
		test.Fatalf("expected exactly 1 successful purchase, got %d", succeeded)
	}
	if got := mustBalance(test, service, userID); got != 0 {
		test.Fatalf("expected exhausted balance, got %d", got)
	}
}

func TestEntryStatusRejectsForeignEntry(test *testing.T) {
	test.Parallel()
	store := memstore.New()
	service, _ := mustNewService(test, store)
	owner := mustAccountWithBalance(test, store, service, "owner", 0)

	entry, err := service.RequestDeposit(context.Background(), owner, mustPositiveAmount(test, 200_000_000), "TON", "hash-1")
	if err != nil {
		test.Fatalf("request deposit: %v", err)
	}
	if _, err := service.EntryStatus(context.Background(), mustUserID(test, "intruder"), entry.EntryID); !errors.Is(err, economy.ErrNotEntryOwner) {
		test.Fatalf("expected ErrNotEntryOwner, got %v", err)
	}
	got, err := service.EntryStatus(context.Background(), owner, entry.EntryID)
	if err != nil {
		test.Fatalf("entry status: %v", err)
	}
	if got.Status != economy.StatusPending {
		test.Fatalf("expected pending entry, got %s", got.Status)
	}
}
