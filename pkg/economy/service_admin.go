package economy

import (
	"context"
	"fmt"
	"time"
)

// EditAccountBalance overwrites an account balance from the admin panel.
func (service *Service) EditAccountBalance(ctx context.Context, adminID AdminID, userID UserID, balance Amount) error {
	operationError := service.editAccountBalance(ctx, adminID, userID, balance)
	service.logOperation(ctx, OperationLog{
		Operation: operationEditAccount,
		AdminID:   adminID,
		UserID:    userID,
		Amount:    balance,
		Error:     operationError,
	})
	return operationError
}

func (service *Service) editAccountBalance(ctx context.Context, adminID AdminID, userID UserID, balance Amount) error {
	if balance < 0 {
		return fmt.Errorf("%w: balance must not be negative", ErrInvalidAmount)
	}
	if _, err := service.store.GetAccount(ctx, userID); err != nil {
		return err
	}
	if err := service.store.SetBalance(ctx, userID, balance); err != nil {
		return err
	}
	service.audit(ctx, adminID.String(), auditActionAccountEdited, userID.String(),
		fmt.Sprintf("balance=%s", balance.TON()))
	return nil
}

// EditItemCount overwrites an inventory count from the admin panel.
func (service *Service) EditItemCount(ctx context.Context, adminID AdminID, userID UserID, kind ItemKind, count int64) error {
	operationError := service.editItemCount(ctx, adminID, userID, kind, count)
	service.logOperation(ctx, OperationLog{
		Operation: operationEditAccount,
		AdminID:   adminID,
		UserID:    userID,
		Item:      kind,
		Error:     operationError,
	})
	return operationError
}

func (service *Service) editItemCount(ctx context.Context, adminID AdminID, userID UserID, kind ItemKind, count int64) error {
	if count < 0 {
		return fmt.Errorf("%w: count must not be negative", ErrInvalidQuantity)
	}
	if _, err := service.catalog.Lookup(kind); err != nil {
		return err
	}
	if _, err := service.store.GetAccount(ctx, userID); err != nil {
		return err
	}
	if err := service.store.SetItemCount(ctx, userID, kind, count); err != nil {
		return err
	}
	service.audit(ctx, adminID.String(), auditActionAccountEdited, userID.String(),
		fmt.Sprintf("item=%s count=%d", kind, count))
	return nil
}

// PurgeAuditLogs removes audit entries older than the retention window and
// returns the count removed.
func (service *Service) PurgeAuditLogs(ctx context.Context, adminID AdminID, retentionDays int) (int64, error) {
	removed, operationError := service.purgeAuditLogs(ctx, adminID, retentionDays)
	service.logOperation(ctx, OperationLog{
		Operation: operationPurgeAudit,
		AdminID:   adminID,
		Error:     operationError,
	})
	return removed, operationError
}

func (service *Service) purgeAuditLogs(ctx context.Context, adminID AdminID, retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, fmt.Errorf("%w: retention days must be positive", ErrInvalidQuantity)
	}
	cutoff := service.nowFn() - int64(retentionDays)*secondsPerDay
	removed, err := service.store.PurgeAuditBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	service.audit(ctx, adminID.String(), auditActionAuditPurged, "",
		fmt.Sprintf("retention_days=%d removed=%d", retentionDays, removed))
	return removed, nil
}

// PruneAudit is the background counterpart of PurgeAuditLogs. It trims
// entries past the retention window without an acting admin and treats a
// non-positive retention as disabled.
func (service *Service) PruneAudit(ctx context.Context, retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, nil
	}
	cutoff := service.nowFn() - int64(retentionDays)*secondsPerDay
	removed, operationError := service.store.PurgeAuditBefore(ctx, cutoff)
	service.logOperation(ctx, OperationLog{
		Operation: operationPurgeAudit,
		Error:     operationError,
	})
	return removed, operationError
}

// RecentAudit lists the newest audit entries for the admin panel.
func (service *Service) RecentAudit(ctx context.Context, limit int) ([]AuditEntry, error) {
	return service.store.ListAudit(ctx, limit)
}

// AccountExport is one row of an accounts backup.
type AccountExport struct {
	UserID            string           `json:"user_id"`
	BalanceNano       int64            `json:"balance_nano"`
	Inventory         map[string]int64 `json:"inventory"`
	RegisteredUnixUTC int64            `json:"registered_unix_utc"`
	LastYieldDay      string           `json:"last_yield_day"`
}

// ExportAccounts snapshots every account for a backup.
func (service *Service) ExportAccounts(ctx context.Context) ([]AccountExport, error) {
	accounts, err := service.store.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	exports := make([]AccountExport, 0, len(accounts))
	for _, account := range accounts {
		inventory := make(map[string]int64, len(account.Inventory))
		for kind, count := range account.Inventory {
			inventory[kind.String()] = count
		}
		exports = append(exports, AccountExport{
			UserID:            account.UserID.String(),
			BalanceNano:       account.Balance.Int64(),
			Inventory:         inventory,
			RegisteredUnixUTC: account.RegisteredUnixUTC,
			LastYieldDay:      account.LastYieldDay,
		})
	}
	return exports, nil
}

// Now exposes the service clock to front-ends needing consistent buckets.
func (service *Service) Now() time.Time {
	return time.Unix(service.nowFn(), 0).UTC()
}
