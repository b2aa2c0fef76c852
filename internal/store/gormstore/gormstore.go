// Package gormstore implements economy.Store through GORM, for Postgres in
// production and sqlite in tests. Every balance and status mutation is a
// conditional UPDATE checked through RowsAffected, never a read-then-write.
package gormstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	gosqlite "github.com/glebarez/go-sqlite"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rayomarblezh-dev/mundo-mitico-sub000/pkg/economy"
)

const (
	pgUniqueViolationCode = "23505"
	sqliteConstraintCode  = 19

	errorOperationStore  = "store"
	errorSubjectAccount  = "account"
	errorSubjectEntry    = "entry"
	errorSubjectReferral = "referral"
	errorSubjectAudit    = "audit"
	errorSubjectOutbox   = "outbox"
	errorCodeCreate      = "create"
	errorCodeGet         = "get"
	errorCodeList        = "list"
	errorCodeUpdate      = "update"
	errorCodeCount       = "count"
	errorCodePurge       = "purge"
	errorCodeInvalid     = "invalid"
	errorCodeMigrate     = "migrate"
)

// Store implements economy.Store using GORM.
type Store struct {
	db *gorm.DB
}

// New returns a Store backed by gorm.DB.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates the schema.
func (store *Store) Migrate() error {
	err := store.db.AutoMigrate(&Account{}, &InventoryItem{}, &Entry{}, &ReferralEdge{}, &AuditEntry{}, &OutboxEvent{})
	if err != nil {
		return wrapStoreError(errorSubjectAccount, errorCodeMigrate, err)
	}
	return nil
}

func (store *Store) EnsureAccount(ctx context.Context, userID economy.UserID, nowUnixUTC int64) (economy.Account, bool, error) {
	model := Account{
		UserID:       userID.String(),
		Cooldowns:    datatypes.JSON([]byte("{}")),
		RegisteredAt: nowUnixUTC,
		LastActiveAt: nowUnixUTC,
	}
	result := store.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(&model)
	if result.Error != nil {
		return economy.Account{}, false, wrapStoreError(errorSubjectAccount, errorCodeCreate, result.Error)
	}
	created := result.RowsAffected > 0
	account, err := store.GetAccount(ctx, userID)
	if err != nil {
		return economy.Account{}, false, err
	}
	return account, created, nil
}

func (store *Store) GetAccount(ctx context.Context, userID economy.UserID) (economy.Account, error) {
	var model Account
	err := store.db.WithContext(ctx).Where("user_id = ?", userID.String()).Take(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return economy.Account{}, economy.ErrAccountNotFound
	}
	if err != nil {
		return economy.Account{}, wrapStoreError(errorSubjectAccount, errorCodeGet, err)
	}
	var items []InventoryItem
	if err := store.db.WithContext(ctx).Where("user_id = ?", userID.String()).Find(&items).Error; err != nil {
		return economy.Account{}, wrapStoreError(errorSubjectAccount, errorCodeList, err)
	}
	return mapAccount(model, items)
}

func (store *Store) Credit(ctx context.Context, userID economy.UserID, amount economy.Amount) error {
	result := store.db.WithContext(ctx).
		Model(&Account{}).
		Where("user_id = ?", userID.String()).
		Update("balance", gorm.Expr("balance + ?", amount.Int64()))
	if result.Error != nil {
		return wrapStoreError(errorSubjectAccount, errorCodeUpdate, result.Error)
	}
	if result.RowsAffected == 0 {
		return economy.ErrAccountNotFound
	}
	return nil
}

func (store *Store) DebitIfEnough(ctx context.Context, userID economy.UserID, amount economy.Amount) error {
	result := store.db.WithContext(ctx).
		Model(&Account{}).
		Where("user_id = ? AND balance >= ?", userID.String(), amount.Int64()).
		Update("balance", gorm.Expr("balance - ?", amount.Int64()))
	if result.Error != nil {
		return wrapStoreError(errorSubjectAccount, errorCodeUpdate, result.Error)
	}
	if result.RowsAffected == 0 {
		return economy.ErrInsufficientBalance
	}
	return nil
}

func (store *Store) AdjustItem(ctx context.Context, userID economy.UserID, kind economy.ItemKind, delta int64) error {
	if delta >= 0 {
		model := InventoryItem{UserID: userID.String(), Kind: kind.String(), Count: delta}
		err := store.db.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "kind"}},
				DoUpdates: clause.Assignments(map[string]interface{}{"count": gorm.Expr("inventory_items.count + ?", delta)}),
			}).
			Create(&model).Error
		if err != nil {
			return wrapStoreError(errorSubjectAccount, errorCodeUpdate, err)
		}
		return nil
	}
	result := store.db.WithContext(ctx).
		Model(&InventoryItem{}).
		Where("user_id = ? AND kind = ? AND count >= ?", userID.String(), kind.String(), -delta).
		Update("count", gorm.Expr("count + ?", delta))
	if result.Error != nil {
		return wrapStoreError(errorSubjectAccount, errorCodeUpdate, result.Error)
	}
	if result.RowsAffected == 0 {
		return economy.ErrInsufficientItems
	}
	return nil
}

func (store *Store) SetBalance(ctx context.Context, userID economy.UserID, balance economy.Amount) error {
	result := store.db.WithContext(ctx).
		Model(&Account{}).
		Where("user_id = ?", userID.String()).
		Update("balance", balance.Int64())
	if result.Error != nil {
		return wrapStoreError(errorSubjectAccount, errorCodeUpdate, result.Error)
	}
	if result.RowsAffected == 0 {
		return economy.ErrAccountNotFound
	}
	return nil
}

func (store *Store) SetItemCount(ctx context.Context, userID economy.UserID, kind economy.ItemKind, count int64) error {
	model := InventoryItem{UserID: userID.String(), Kind: kind.String(), Count: count}
	err := store.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "kind"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"count": count}),
		}).
		Create(&model).Error
	if err != nil {
		return wrapStoreError(errorSubjectAccount, errorCodeUpdate, err)
	}
	return nil
}

func (store *Store) TouchActivity(ctx context.Context, userID economy.UserID, nowUnixUTC int64) error {
	err := store.db.WithContext(ctx).
		Model(&Account{}).
		Where("user_id = ?", userID.String()).
		Update("last_active_at", nowUnixUTC).Error
	if err != nil {
		return wrapStoreError(errorSubjectAccount, errorCodeUpdate, err)
	}
	return nil
}

func (store *Store) SetCooldown(ctx context.Context, userID economy.UserID, activity string, untilUnixUTC int64) error {
	// Cooldowns are advisory, not a ledger invariant; a transaction-scoped
	// read-modify-write is enough here.
	return store.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model Account
		if err := tx.Where("user_id = ?", userID.String()).Take(&model).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return economy.ErrAccountNotFound
			}
			return wrapStoreError(errorSubjectAccount, errorCodeGet, err)
		}
		cooldowns := map[string]int64{}
		if len(model.Cooldowns) > 0 {
			if err := json.Unmarshal(model.Cooldowns, &cooldowns); err != nil {
				return wrapStoreError(errorSubjectAccount, errorCodeInvalid, err)
			}
		}
		cooldowns[activity] = untilUnixUTC
		raw, err := json.Marshal(cooldowns)
		if err != nil {
			return wrapStoreError(errorSubjectAccount, errorCodeInvalid, err)
		}
		err = tx.Model(&Account{}).
			Where("user_id = ?", userID.String()).
			Update("cooldowns", datatypes.JSON(raw)).Error
		if err != nil {
			return wrapStoreError(errorSubjectAccount, errorCodeUpdate, err)
		}
		return nil
	})
}

func (store *Store) ClaimYieldDay(ctx context.Context, userID economy.UserID, day string) (bool, error) {
	result := store.db.WithContext(ctx).
		Model(&Account{}).
		Where("user_id = ? AND last_yield_day <> ?", userID.String(), day).
		Update("last_yield_day", day)
	if result.Error != nil {
		return false, wrapStoreError(errorSubjectAccount, errorCodeUpdate, result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (store *Store) ReleaseYieldDay(ctx context.Context, userID economy.UserID, day string) error {
	result := store.db.WithContext(ctx).
		Model(&Account{}).
		Where("user_id = ? AND last_yield_day = ?", userID.String(), day).
		Update("last_yield_day", "")
	if result.Error != nil {
		return wrapStoreError(errorSubjectAccount, errorCodeUpdate, result.Error)
	}
	return nil
}

func (store *Store) ClearItem(ctx context.Context, userID economy.UserID, kind economy.ItemKind) (bool, error) {
	result := store.db.WithContext(ctx).
		Model(&InventoryItem{}).
		Where("user_id = ? AND kind = ? AND count > 0", userID.String(), kind.String()).
		Update("count", 0)
	if result.Error != nil {
		return false, wrapStoreError(errorSubjectAccount, errorCodeUpdate, result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (store *Store) ListAccounts(ctx context.Context) ([]economy.Account, error) {
	var models []Account
	if err := store.db.WithContext(ctx).Order("user_id").Find(&models).Error; err != nil {
		return nil, wrapStoreError(errorSubjectAccount, errorCodeList, err)
	}
	var items []InventoryItem
	if err := store.db.WithContext(ctx).Find(&items).Error; err != nil {
		return nil, wrapStoreError(errorSubjectAccount, errorCodeList, err)
	}
	itemsByUser := map[string][]InventoryItem{}
	for _, item := range items {
		itemsByUser[item.UserID] = append(itemsByUser[item.UserID], item)
	}
	accounts := make([]economy.Account, 0, len(models))
	for _, model := range models {
		account, err := mapAccount(model, itemsByUser[model.UserID])
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, nil
}

func (store *Store) InsertEntry(ctx context.Context, entry economy.Entry) error {
	model := Entry{
		EntryID:    entry.EntryID.String(),
		UserID:     entry.UserID.String(),
		Kind:       entry.Kind.String(),
		Amount:     entry.Amount.Int64(),
		Fee:        entry.Fee.Int64(),
		Network:    entry.Network,
		ProofHash:  entry.ProofHash,
		Address:    entry.Address,
		Reason:     entry.Reason,
		Status:     entry.Status.String(),
		CreatedAt:  entry.CreatedUnixUTC,
		ResolvedAt: entry.ResolvedUnixUTC,
		ResolvedBy: entry.ResolvedBy,
	}
	if err := store.db.WithContext(ctx).Create(&model).Error; err != nil {
		return wrapStoreError(errorSubjectEntry, errorCodeCreate, err)
	}
	return nil
}

func (store *Store) GetEntry(ctx context.Context, entryID economy.EntryID) (economy.Entry, error) {
	var model Entry
	err := store.db.WithContext(ctx).Where("entry_id = ?", entryID.String()).Take(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return economy.Entry{}, economy.ErrEntryNotFound
	}
	if err != nil {
		return economy.Entry{}, wrapStoreError(errorSubjectEntry, errorCodeGet, err)
	}
	return mapEntry(model)
}

func (store *Store) ListEntries(ctx context.Context, kind economy.EntryKind, status economy.EntryStatus, limit int) ([]economy.Entry, error) {
	query := store.db.WithContext(ctx).
		Where("kind = ? AND status = ?", kind.String(), status.String()).
		Order("created_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var models []Entry
	if err := query.Find(&models).Error; err != nil {
		return nil, wrapStoreError(errorSubjectEntry, errorCodeList, err)
	}
	entries := make([]economy.Entry, 0, len(models))
	for _, model := range models {
		entry, err := mapEntry(model)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (store *Store) UpdateEntryStatus(ctx context.Context, entryID economy.EntryID, from economy.EntryStatus, to economy.EntryStatus, resolvedBy string, resolvedUnixUTC int64) error {
	result := store.db.WithContext(ctx).
		Model(&Entry{}).
		Where("entry_id = ? AND status = ?", entryID.String(), from.String()).
		Updates(map[string]interface{}{
			"status":      to.String(),
			"resolved_by": resolvedBy,
			"resolved_at": resolvedUnixUTC,
		})
	if result.Error != nil {
		return wrapStoreError(errorSubjectEntry, errorCodeUpdate, result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}
	var count int64
	if err := store.db.WithContext(ctx).Model(&Entry{}).Where("entry_id = ?", entryID.String()).Count(&count).Error; err != nil {
		return wrapStoreError(errorSubjectEntry, errorCodeCount, err)
	}
	if count == 0 {
		return economy.ErrEntryNotFound
	}
	return economy.ErrEntryAlreadyResolved
}

func (store *Store) CreateReferralEdge(ctx context.Context, edge economy.ReferralEdge) (bool, error) {
	model := ReferralEdge{
		ReferredID: edge.ReferredID.String(),
		ReferrerID: edge.ReferrerID.String(),
		Active:     edge.Active,
		CreatedAt:  edge.CreatedUnixUTC,
	}
	err := store.db.WithContext(ctx).Create(&model).Error
	if isDuplicateKey(err) {
		return false, nil
	}
	if err != nil {
		return false, wrapStoreError(errorSubjectReferral, errorCodeCreate, err)
	}
	return true, nil
}

func (store *Store) GetReferralEdgeByReferred(ctx context.Context, referredID economy.UserID) (economy.ReferralEdge, bool, error) {
	var model ReferralEdge
	err := store.db.WithContext(ctx).Where("referred_id = ?", referredID.String()).Take(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return economy.ReferralEdge{}, false, nil
	}
	if err != nil {
		return economy.ReferralEdge{}, false, wrapStoreError(errorSubjectReferral, errorCodeGet, err)
	}
	edge, err := mapReferral(model)
	if err != nil {
		return economy.ReferralEdge{}, false, err
	}
	return edge, true, nil
}

func (store *Store) CountReferrals(ctx context.Context, referrerID economy.UserID) (int64, error) {
	var count int64
	err := store.db.WithContext(ctx).
		Model(&ReferralEdge{}).
		Where("referrer_id = ?", referrerID.String()).
		Count(&count).Error
	if err != nil {
		return 0, wrapStoreError(errorSubjectReferral, errorCodeCount, err)
	}
	return count, nil
}

func (store *Store) CountActiveReferrals(ctx context.Context, referrerID economy.UserID) (int64, error) {
	var count int64
	err := store.db.WithContext(ctx).
		Model(&ReferralEdge{}).
		Where("referrer_id = ? AND active = ?", referrerID.String(), true).
		Count(&count).Error
	if err != nil {
		return 0, wrapStoreError(errorSubjectReferral, errorCodeCount, err)
	}
	return count, nil
}

func (store *Store) ActivateReferral(ctx context.Context, referredID economy.UserID) (bool, error) {
	result := store.db.WithContext(ctx).
		Model(&ReferralEdge{}).
		Where("referred_id = ? AND active = ?", referredID.String(), false).
		Update("active", true)
	if result.Error != nil {
		return false, wrapStoreError(errorSubjectReferral, errorCodeUpdate, result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (store *Store) GrantReferralReward(ctx context.Context, referredID economy.UserID) (bool, error) {
	result := store.db.WithContext(ctx).
		Model(&ReferralEdge{}).
		Where("referred_id = ? AND reward_granted = ?", referredID.String(), false).
		Update("reward_granted", true)
	if result.Error != nil {
		return false, wrapStoreError(errorSubjectReferral, errorCodeUpdate, result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (store *Store) RevokeReferralReward(ctx context.Context, referredID economy.UserID) error {
	result := store.db.WithContext(ctx).
		Model(&ReferralEdge{}).
		Where("referred_id = ?", referredID.String()).
		Update("reward_granted", false)
	if result.Error != nil {
		return wrapStoreError(errorSubjectReferral, errorCodeUpdate, result.Error)
	}
	return nil
}

func (store *Store) AppendAudit(ctx context.Context, entry economy.AuditEntry) error {
	model := AuditEntry{
		Actor:     entry.Actor,
		Action:    entry.Action,
		Target:    entry.Target,
		Detail:    entry.Detail,
		CreatedAt: entry.CreatedUnixUTC,
	}
	if err := store.db.WithContext(ctx).Create(&model).Error; err != nil {
		return wrapStoreError(errorSubjectAudit, errorCodeCreate, err)
	}
	return nil
}

func (store *Store) ListAudit(ctx context.Context, limit int) ([]economy.AuditEntry, error) {
	query := store.db.WithContext(ctx).Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var models []AuditEntry
	if err := query.Find(&models).Error; err != nil {
		return nil, wrapStoreError(errorSubjectAudit, errorCodeList, err)
	}
	entries := make([]economy.AuditEntry, 0, len(models))
	for _, model := range models {
		entries = append(entries, economy.AuditEntry{
			Actor:          model.Actor,
			Action:         model.Action,
			Target:         model.Target,
			Detail:         model.Detail,
			CreatedUnixUTC: model.CreatedAt,
		})
	}
	return entries, nil
}

func (store *Store) PurgeAuditBefore(ctx context.Context, cutoffUnixUTC int64) (int64, error) {
	result := store.db.WithContext(ctx).
		Where("created_at < ?", cutoffUnixUTC).
		Delete(&AuditEntry{})
	if result.Error != nil {
		return 0, wrapStoreError(errorSubjectAudit, errorCodePurge, result.Error)
	}
	return result.RowsAffected, nil
}

func (store *Store) AppendEvent(ctx context.Context, event economy.OutboxEvent) error {
	model := OutboxEvent{
		EventID:     event.EventID,
		Kind:        event.Kind,
		UserID:      event.UserID.String(),
		Message:     event.Message,
		CreatedAt:   event.CreatedUnixUTC,
		DeliveredAt: event.DeliveredUnixUTC,
	}
	if err := store.db.WithContext(ctx).Create(&model).Error; err != nil {
		return wrapStoreError(errorSubjectOutbox, errorCodeCreate, err)
	}
	return nil
}

func (store *Store) ListUndeliveredEvents(ctx context.Context, limit int) ([]economy.OutboxEvent, error) {
	query := store.db.WithContext(ctx).
		Where("delivered_at = 0").
		Order("created_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var models []OutboxEvent
	if err := query.Find(&models).Error; err != nil {
		return nil, wrapStoreError(errorSubjectOutbox, errorCodeList, err)
	}
	events := make([]economy.OutboxEvent, 0, len(models))
	for _, model := range models {
		userID, err := economy.NewUserID(model.UserID)
		if err != nil {
			return nil, wrapStoreError(errorSubjectOutbox, errorCodeInvalid, err)
		}
		events = append(events, economy.OutboxEvent{
			EventID:          model.EventID,
			Kind:             model.Kind,
			UserID:           userID,
			Message:          model.Message,
			CreatedUnixUTC:   model.CreatedAt,
			DeliveredUnixUTC: model.DeliveredAt,
		})
	}
	return events, nil
}

func (store *Store) MarkEventDelivered(ctx context.Context, eventID string, nowUnixUTC int64) error {
	result := store.db.WithContext(ctx).
		Model(&OutboxEvent{}).
		Where("event_id = ?", eventID).
		Update("delivered_at", nowUnixUTC)
	if result.Error != nil {
		return wrapStoreError(errorSubjectOutbox, errorCodeUpdate, result.Error)
	}
	if result.RowsAffected == 0 {
		return economy.ErrEntryNotFound
	}
	return nil
}

func mapAccount(model Account, items []InventoryItem) (economy.Account, error) {
	userID, err := economy.NewUserID(model.UserID)
	if err != nil {
		return economy.Account{}, wrapStoreError(errorSubjectAccount, errorCodeInvalid, err)
	}
	balance, err := economy.NewAmount(model.Balance)
	if err != nil {
		return economy.Account{}, wrapStoreError(errorSubjectAccount, errorCodeInvalid, err)
	}
	inventory := make(map[economy.ItemKind]int64, len(items))
	for _, item := range items {
		inventory[economy.ItemKind(item.Kind)] = item.Count
	}
	cooldowns := map[string]int64{}
	if len(model.Cooldowns) > 0 {
		if err := json.Unmarshal(model.Cooldowns, &cooldowns); err != nil {
			return economy.Account{}, wrapStoreError(errorSubjectAccount, errorCodeInvalid, err)
		}
	}
	return economy.Account{
		UserID:            userID,
		Balance:           balance,
		Inventory:         inventory,
		Cooldowns:         cooldowns,
		RegisteredUnixUTC: model.RegisteredAt,
		LastActiveUnixUTC: model.LastActiveAt,
		LastYieldDay:      model.LastYieldDay,
	}, nil
}

func mapEntry(model Entry) (economy.Entry, error) {
	entryID, err := economy.NewEntryID(model.EntryID)
	if err != nil {
		return economy.Entry{}, wrapStoreError(errorSubjectEntry, errorCodeInvalid, err)
	}
	userID, err := economy.NewUserID(model.UserID)
	if err != nil {
		return economy.Entry{}, wrapStoreError(errorSubjectEntry, errorCodeInvalid, err)
	}
	kind, err := economy.ParseEntryKind(model.Kind)
	if err != nil {
		return economy.Entry{}, wrapStoreError(errorSubjectEntry, errorCodeInvalid, err)
	}
	status, err := economy.ParseEntryStatus(model.Status)
	if err != nil {
		return economy.Entry{}, wrapStoreError(errorSubjectEntry, errorCodeInvalid, err)
	}
	amount, err := economy.NewAmount(model.Amount)
	if err != nil {
		return economy.Entry{}, wrapStoreError(errorSubjectEntry, errorCodeInvalid, err)
	}
	fee, err := economy.NewAmount(model.Fee)
	if err != nil {
		return economy.Entry{}, wrapStoreError(errorSubjectEntry, errorCodeInvalid, err)
	}
	return economy.Entry{
		EntryID:         entryID,
		UserID:          userID,
		Kind:            kind,
		Amount:          amount,
		Fee:             fee,
		Network:         model.Network,
		ProofHash:       model.ProofHash,
		Address:         model.Address,
		Reason:          model.Reason,
		Status:          status,
		CreatedUnixUTC:  model.CreatedAt,
		ResolvedUnixUTC: model.ResolvedAt,
		ResolvedBy:      model.ResolvedBy,
	}, nil
}

func mapReferral(model ReferralEdge) (economy.ReferralEdge, error) {
	referredID, err := economy.NewUserID(model.ReferredID)
	if err != nil {
		return economy.ReferralEdge{}, wrapStoreError(errorSubjectReferral, errorCodeInvalid, err)
	}
	referrerID, err := economy.NewUserID(model.ReferrerID)
	if err != nil {
		return economy.ReferralEdge{}, wrapStoreError(errorSubjectReferral, errorCodeInvalid, err)
	}
	return economy.ReferralEdge{
		ReferrerID:     referrerID,
		ReferredID:     referredID,
		Active:         model.Active,
		RewardGranted:  model.RewardGranted,
		CreatedUnixUTC: model.CreatedAt,
	}, nil
}

func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolationCode
	}
	var sqliteErr *gosqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code()&0xFF == sqliteConstraintCode
	}
	return false
}

func wrapStoreError(subject string, code string, err error) error {
	return economy.WrapError(errorOperationStore, subject, code, fmt.Errorf("%w: %v", economy.ErrStoreUnavailable, err))
}

var _ economy.Store = (*Store)(nil)
