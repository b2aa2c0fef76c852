package economy_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/rayomarblezh-dev/mundo-mitico-sub000/internal/store/memstore"
	"github.com/rayomarblezh-dev/mundo-mitico-sub000/pkg/economy"
)

const (
	testNowUnixUTC = int64(1_700_000_000)
	testFeePercent = int64(2)
)

func mustUserID(test *testing.T, raw string) economy.UserID {
	test.Helper()
	userID, err := economy.NewUserID(raw)
	if err != nil {
		test.Fatalf("user id %q: %v", raw, err)
	}
	return userID
}

func mustAdminID(test *testing.T, raw string) economy.AdminID {
	test.Helper()
	adminID, err := economy.NewAdminID(raw)
	if err != nil {
		test.Fatalf("admin id %q: %v", raw, err)
	}
	return adminID
}

func mustPositiveAmount(test *testing.T, raw int64) economy.PositiveAmount {
	test.Helper()
	amount, err := economy.NewPositiveAmount(raw)
	if err != nil {
		test.Fatalf("positive amount %d: %v", raw, err)
	}
	return amount
}

func mustTestCatalog(test *testing.T) *economy.Catalog {
	test.Helper()
	catalog, err := economy.NewCatalog([]economy.ItemDescriptor{
		{Kind: economy.ItemHada, Name: "Hada", Price: 400_000_000, DailyYield: 8_000_000, LifetimeDays: 45, Category: economy.CategoryCreature},
		{Kind: economy.ItemDragon, Name: "Dragón", Price: 6_000_000_000, DailyYield: 150_000_000, LifetimeDays: 90, Category: economy.CategoryCreature},
		{Kind: economy.ItemTotemNFT, Name: "Tótem Ancestral", Price: 2_500_000_000, DailyYield: 50_000_000, Category: economy.CategoryNFT},
		{Kind: economy.ItemCofre, Name: "Cofre Mítico", Price: 5_000_000_000, DailyYield: 110_000_000, Category: economy.CategoryRelic},
	})
	if err != nil {
		test.Fatalf("catalog: %v", err)
	}
	return catalog
}

type testClock struct {
	nowUnixUTC int64
}

func (clock *testClock) now() int64 {
	return clock.nowUnixUTC
}

func mustNewService(test *testing.T, store economy.Store) (*economy.Service, *testClock) {
	test.Helper()
	clock := &testClock{nowUnixUTC: testNowUnixUTC}
	sequence := 0
	service, err := economy.NewService(
		store,
		mustTestCatalog(test),
		economy.Limits{
			MinDeposit:           100_000_000,
			MinWithdrawal:        500_000_000,
			WithdrawalFeePercent: testFeePercent,
		},
		clock.now,
		economy.WithIDGenerator(func() string {
			sequence++
			return fmt.Sprintf("id-%d", sequence)
		}),
	)
	if err != nil {
		test.Fatalf("new service: %v", err)
	}
	return service, clock
}

func mustAccountWithBalance(test *testing.T, store *memstore.Store, service *economy.Service, raw string, balance int64) economy.UserID {
	test.Helper()
	userID := mustUserID(test, raw)
	if _, err := service.EnsureAccount(context.Background(), userID, ""); err != nil {
		test.Fatalf("ensure account: %v", err)
	}
	if err := store.SetBalance(context.Background(), userID, economy.Amount(balance)); err != nil {
		test.Fatalf("seed balance: %v", err)
	}
	return userID
}

func mustBalance(test *testing.T, service *economy.Service, userID economy.UserID) economy.Amount {
	test.Helper()
	balance, err := service.Balance(context.Background(), userID)
	if err != nil {
		test.Fatalf("balance: %v", err)
	}
	return balance
}

// faultStore wraps a real store and fails selected mutations, for
// exercising the compensation paths.
type faultStore struct {
	economy.Store
	failCredit     bool
	failAdjustItem bool
	failInsert     bool
}

func (store *faultStore) Credit(ctx context.Context, userID economy.UserID, amount economy.Amount) error {
	if store.failCredit {
		return economy.ErrStoreUnavailable
	}
	return store.Store.Credit(ctx, userID, amount)
}

func (store *faultStore) AdjustItem(ctx context.Context, userID economy.UserID, kind economy.ItemKind, delta int64) error {
	if store.failAdjustItem {
		return economy.ErrStoreUnavailable
	}
	return store.Store.AdjustItem(ctx, userID, kind, delta)
}

func (store *faultStore) InsertEntry(ctx context.Context, entry economy.Entry) error {
	if store.failInsert {
		return economy.ErrStoreUnavailable
	}
	return store.Store.InsertEntry(ctx, entry)
}
