package economy_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rayomarblezh-dev/mundo-mitico-sub000/internal/store/memstore"
	"github.com/rayomarblezh-dev/mundo-mitico-sub000/pkg/economy"
)

func TestEditAccountBalanceOverwrites(test *testing.T) {
	test.Parallel()
	store := memstore.New()
	service, _ := mustNewService(test, store)
	userID := mustAccountWithBalance(test, store, service, "edited", 100_000_000)
	adminID := mustAdminID(test, "admin-1")

	if err := service.EditAccountBalance(context.Background(), adminID, userID, 2_500_000_000); err != nil {
		test.Fatalf("edit balance: %v", err)
	}
	if got := mustBalance(test, service, userID); got != 2_500_000_000 {
		test.Fatalf("expected balance 2500000000, got %d", got)
	}
	if err := service.EditAccountBalance(context.Background(), adminID, userID, -1); !errors.Is(err, economy.ErrInvalidAmount) {
		test.Fatalf("expected ErrInvalidAmount for negative, got %v", err)
	}
}

func TestEditAccountBalanceUnknownAccount(test *testing.T) {
	test.Parallel()
	service, _ := mustNewService(test, memstore.New())

	err := service.EditAccountBalance(context.Background(), mustAdminID(test, "admin-1"), mustUserID(test, "ghost"), 100)
	if !errors.Is(err, economy.ErrAccountNotFound) {
		test.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestEditItemCountValidatesKind(test *testing.T) {
	test.Parallel()
	store := memstore.New()
	service, _ := mustNewService(test, store)
	userID := mustAccountWithBalance(test, store, service, "stocked", 0)
	adminID := mustAdminID(test, "admin-1")

	if err := service.EditItemCount(context.Background(), adminID, userID, economy.ItemDragon, 4); err != nil {
		test.Fatalf("edit item count: %v", err)
	}
	inventory, err := service.Inventory(context.Background(), userID)
	if err != nil {
		test.Fatalf("inventory: %v", err)
	}
	if inventory[economy.ItemDragon] != 4 {
		test.Fatalf("expected 4 dragones, got %d", inventory[economy.ItemDragon])
	}
	if err := service.EditItemCount(context.Background(), adminID, userID, economy.ItemKind("basilisco"), 1); !errors.Is(err, economy.ErrInvalidItemKind) {
		test.Fatalf("expected ErrInvalidItemKind, got %v", err)
	}
	if err := service.EditItemCount(context.Background(), adminID, userID, economy.ItemDragon, -2); !errors.Is(err, economy.ErrInvalidQuantity) {
		test.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
}

func TestPurgeAuditLogsHonorsRetention(test *testing.T) {
	test.Parallel()
	store := memstore.New()
	service, clock := mustNewService(test, store)
	adminID := mustAdminID(test, "admin-1")

	old := economy.AuditEntry{Actor: "system", Action: "old_action", CreatedUnixUTC: clock.nowUnixUTC - 100*86_400}
	recent := economy.AuditEntry{Actor: "system", Action: "recent_action", CreatedUnixUTC: clock.nowUnixUTC - 86_400}
	if err := store.AppendAudit(context.Background(), old); err != nil {
		test.Fatalf("append old: %v", err)
	}
	if err := store.AppendAudit(context.Background(), recent); err != nil {
		test.Fatalf("append recent: %v", err)
	}

	removed, err := service.PurgeAuditLogs(context.Background(), adminID, 30)
	if err != nil {
		test.Fatalf("purge: %v", err)
	}
	if removed != 1 {
		test.Fatalf("expected 1 removed entry, got %d", removed)
	}
	if _, err := service.PurgeAuditLogs(context.Background(), adminID, 0); !errors.Is(err, economy.ErrInvalidQuantity) {
		test.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
}

func TestExportAccountsSnapshotsState(test *testing.T) {
	test.Parallel()
	store := memstore.New()
	service, _ := mustNewService(test, store)
	userID := mustAccountWithBalance(test, store, service, "exported", 750_000_000)
	if err := store.SetItemCount(context.Background(), userID, economy.ItemHada, 5); err != nil {
		test.Fatalf("seed inventory: %v", err)
	}

	exports, err := service.ExportAccounts(context.Background())
	if err != nil {
		test.Fatalf("export: %v", err)
	}
	if len(exports) != 1 {
		test.Fatalf("expected 1 export row, got %d", len(exports))
	}
	row := exports[0]
	if row.UserID != userID.String() {
		test.Fatalf("unexpected user id %s", row.UserID)
	}
	if row.BalanceNano != 750_000_000 {
		test.Fatalf("unexpected balance %d", row.BalanceNano)
	}
	if row.Inventory[economy.ItemHada.String()] != 5 {
		test.Fatalf("unexpected inventory %v", row.Inventory)
	}
}
