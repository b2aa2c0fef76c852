package economy_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rayomarblezh-dev/mundo-mitico-sub000/internal/store/memstore"
	"github.com/rayomarblezh-dev/mundo-mitico-sub000/pkg/economy"
)

func TestRequestWithdrawalReservesFunds(test *testing.T) {
	test.Parallel()
	store := memstore.New()
	service, _ := mustNewService(test, store)
	userID := mustAccountWithBalance(test, store, service, "saver", 2_000_000_000)

	entry, err := service.RequestWithdrawal(context.Background(), userID, mustPositiveAmount(test, 800_000_000), "UQ-address")
	if err != nil {
		test.Fatalf("request withdrawal: %v", err)
	}
	if got := mustBalance(test, service, userID); got != 1_200_000_000 {
		test.Fatalf("expected reserved balance 1200000000, got %d", got)
	}
	if entry.Status != economy.StatusPending {
		test.Fatalf("expected pending entry, got %s", entry.Status)
	}
	expectedFee := economy.Amount(800_000_000 * testFeePercent / 100)
	if entry.Fee != expectedFee {
		test.Fatalf("expected fee %d, got %d", expectedFee, entry.Fee)
	}
}

func TestRequestWithdrawalInsufficientBalance(test *testing.T) {
	test.Parallel()
	store := memstore.New()
	service, _ := mustNewService(test, store)
	userID := mustAccountWithBalance(test, store, service, "light", 300_000_000)

	_, err := service.RequestWithdrawal(context.Background(), userID, mustPositiveAmount(test, 1_100_000_000), "UQ-address")
	if !errors.Is(err, economy.ErrInsufficientBalance) {
		test.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
	if got := mustBalance(test, service, userID); got != 300_000_000 {
		test.Fatalf("failed request changed balance to %d", got)
	}
}

func TestRequestWithdrawalBelowMinimum(test *testing.T) {
	test.Parallel()
	store := memstore.New()
	service, _ := mustNewService(test, store)
	userID := mustAccountWithBalance(test, store, service, "tiny", 2_000_000_000)

	_, err := service.RequestWithdrawal(context.Background(), userID, mustPositiveAmount(test, 100_000_000), "UQ-address")
	if !errors.Is(err, economy.ErrInvalidAmount) {
		test.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestRequestWithdrawalRequiresAddress(test *testing.T) {
	test.Parallel()
	store := memstore.New()
	service, _ := mustNewService(test, store)
	userID := mustAccountWithBalance(test, store, service, "noaddr", 2_000_000_000)

	if _, err := service.RequestWithdrawal(context.Background(), userID, mustPositiveAmount(test, 600_000_000), ""); !errors.Is(err, economy.ErrInvalidAmount) {
		test.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if got := mustBalance(test, service, userID); got != 2_000_000_000 {
		test.Fatalf("balance changed on rejected request: %d", got)
	}
}

func TestRequestWithdrawalRefundsWhenInsertFails(test *testing.T) {
	test.Parallel()
	backing := memstore.New()
	store := &faultStore{Store: backing, failInsert: true}
	service, _ := mustNewService(test, store)
	userID := mustAccountWithBalance(test, backing, service, "glitch", 2_000_000_000)

	_, err := service.RequestWithdrawal(context.Background(), userID, mustPositiveAmount(test, 600_000_000), "UQ-address")
	if !errors.Is(err, economy.ErrStoreUnavailable) {
		test.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
	if got := mustBalance(test, service, userID); got != 2_000_000_000 {
		test.Fatalf("reservation not refunded, balance %d", got)
	}
}

func TestRejectWithdrawalRoundTripIsNetZero(test *testing.T) {
	test.Parallel()
	store := memstore.New()
	service, _ := mustNewService(test, store)
	userID := mustAccountWithBalance(test, store, service, "roundtrip", 1_500_000_000)
	adminID := mustAdminID(test, "admin-1")

	entry, err := service.RequestWithdrawal(context.Background(), userID, mustPositiveAmount(test, 900_000_000), "UQ-address")
	if err != nil {
		test.Fatalf("request withdrawal: %v", err)
	}
	if err := service.RejectWithdrawal(context.Background(), adminID, entry.EntryID, "suspicious address"); err != nil {
		test.Fatalf("reject: %v", err)
	}
	if got := mustBalance(test, service, userID); got != 1_500_000_000 {
		test.Fatalf("expected restored balance 1500000000, got %d", got)
	}

	if err := service.RejectWithdrawal(context.Background(), adminID, entry.EntryID, "again"); !errors.Is(err, economy.ErrEntryAlreadyResolved) {
		test.Fatalf("expected ErrEntryAlreadyResolved, got %v", err)
	}
	if got := mustBalance(test, service, userID); got != 1_500_000_000 {
		test.Fatalf("double reject refunded twice, balance %d", got)
	}
}

func TestApproveWithdrawalKeepsReservedDebit(test *testing.T) {
	test.Parallel()
	store := memstore.New()
	service, _ := mustNewService(test, store)
	userID := mustAccountWithBalance(test, store, service, "payout", 1_000_000_000)
	adminID := mustAdminID(test, "admin-1")

	entry, err := service.RequestWithdrawal(context.Background(), userID, mustPositiveAmount(test, 600_000_000), "UQ-address")
	if err != nil {
		test.Fatalf("request withdrawal: %v", err)
	}
	if err := service.ApproveWithdrawal(context.Background(), adminID, entry.EntryID); err != nil {
		test.Fatalf("approve: %v", err)
	}
	if got := mustBalance(test, service, userID); got != 400_000_000 {
		test.Fatalf("approval should not move funds again, balance %d", got)
	}
	resolved, err := service.EntryStatus(context.Background(), userID, entry.EntryID)
	if err != nil {
		test.Fatalf("entry status: %v", err)
	}
	if resolved.Status != economy.StatusCompleted {
		test.Fatalf("expected completed, got %s", resolved.Status)
	}
	if resolved.ResolvedBy != adminID.String() {
		test.Fatalf("expected resolver %s, got %s", adminID, resolved.ResolvedBy)
	}
}

func TestCancelWithdrawalOnlyByOwner(test *testing.T) {
	test.Parallel()
	store := memstore.New()
	service, _ := mustNewService(test, store)
	owner := mustAccountWithBalance(test, store, service, "canceller", 1_000_000_000)

	entry, err := service.RequestWithdrawal(context.Background(), owner, mustPositiveAmount(test, 600_000_000), "UQ-address")
	if err != nil {
		test.Fatalf("request withdrawal: %v", err)
	}
	if err := service.CancelWithdrawal(context.Background(), mustUserID(test, "stranger"), entry.EntryID); !errors.Is(err, economy.ErrNotEntryOwner) {
		test.Fatalf("expected ErrNotEntryOwner, got %v", err)
	}
	if err := service.CancelWithdrawal(context.Background(), owner, entry.EntryID); err != nil {
		test.Fatalf("cancel: %v", err)
	}
	if got := mustBalance(test, service, owner); got != 1_000_000_000 {
		test.Fatalf("expected refunded balance, got %d", got)
	}
	if err := service.CancelWithdrawal(context.Background(), owner, entry.EntryID); !errors.Is(err, economy.ErrEntryAlreadyResolved) {
		test.Fatalf("expected ErrEntryAlreadyResolved, got %v", err)
	}
}

func TestRejectWithdrawalRevertsStatusWhenRefundFails(test *testing.T) {
	test.Parallel()
	backing := memstore.New()
	store := &faultStore{Store: backing}
	service, _ := mustNewService(test, store)
	userID := mustAccountWithBalance(test, backing, service, "stuckrefund", 1_000_000_000)
	adminID := mustAdminID(test, "admin-1")

	entry, err := service.RequestWithdrawal(context.Background(), userID, mustPositiveAmount(test, 600_000_000), "UQ-address")
	if err != nil {
		test.Fatalf("request withdrawal: %v", err)
	}

	store.failCredit = true
	if err := service.RejectWithdrawal(context.Background(), adminID, entry.EntryID, "refund outage"); !errors.Is(err, economy.ErrStoreUnavailable) {
		test.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
	pending, err := service.EntryStatus(context.Background(), userID, entry.EntryID)
	if err != nil {
		test.Fatalf("entry status: %v", err)
	}
	if pending.Status != economy.StatusPending {
		test.Fatalf("status not reverted for retry, got %s", pending.Status)
	}

	store.failCredit = false
	if err := service.RejectWithdrawal(context.Background(), adminID, entry.EntryID, "refund outage"); err != nil {
		test.Fatalf("retry reject: %v", err)
	}
	if got := mustBalance(test, service, userID); got != 1_000_000_000 {
		test.Fatalf("expected single refund, balance %d", got)
	}
}

func TestRequestWithdrawalEnforcesCooldown(test *testing.T) {
	test.Parallel()
	store := memstore.New()
	clock := &testClock{nowUnixUTC: testNowUnixUTC}
	service, err := economy.NewService(
		store,
		mustTestCatalog(test),
		economy.Limits{
			MinDeposit:                100_000_000,
			MinWithdrawal:             500_000_000,
			WithdrawalFeePercent:      testFeePercent,
			WithdrawalCooldownSeconds: 3600,
		},
		clock.now,
	)
	if err != nil {
		test.Fatalf("new service: %v", err)
	}
	userID := mustAccountWithBalance(test, store, service, "pacer", 5_000_000_000)

	if _, err := service.RequestWithdrawal(context.Background(), userID, mustPositiveAmount(test, 600_000_000), "UQ-address"); err != nil {
		test.Fatalf("first request: %v", err)
	}
	reserved := mustBalance(test, service, userID)

	_, err = service.RequestWithdrawal(context.Background(), userID, mustPositiveAmount(test, 600_000_000), "UQ-address")
	if !errors.Is(err, economy.ErrCooldownActive) {
		test.Fatalf("expected ErrCooldownActive, got %v", err)
	}
	if got := mustBalance(test, service, userID); got != reserved {
		test.Fatalf("paced request changed balance to %d", got)
	}

	clock.nowUnixUTC += 3601
	if _, err := service.RequestWithdrawal(context.Background(), userID, mustPositiveAmount(test, 600_000_000), "UQ-address"); err != nil {
		test.Fatalf("request after cooldown: %v", err)
	}
}
