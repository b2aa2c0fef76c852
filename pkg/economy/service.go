package economy

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Limits carries the configured monetary bounds and request pacing.
type Limits struct {
	MinDeposit           Amount
	MinWithdrawal        Amount
	WithdrawalFeePercent int64
	// WithdrawalCooldownSeconds spaces out withdrawal requests per
	// account. Zero disables the cooldown.
	WithdrawalCooldownSeconds int64
}

// Validate checks the configured bounds.
func (limits Limits) Validate() error {
	if limits.MinDeposit < 0 || limits.MinWithdrawal < 0 {
		return fmt.Errorf("%w: negative minimum", ErrInvalidServiceConfig)
	}
	if limits.WithdrawalFeePercent < 0 || limits.WithdrawalFeePercent >= 100 {
		return fmt.Errorf("%w: withdrawal fee percent out of range", ErrInvalidServiceConfig)
	}
	if limits.WithdrawalCooldownSeconds < 0 {
		return fmt.Errorf("%w: negative withdrawal cooldown", ErrInvalidServiceConfig)
	}
	return nil
}

// Service contains the economy domain logic over a Store.
type Service struct {
	store   Store
	catalog *Catalog
	limits  Limits
	nowFn   func() int64
	logger  OperationLogger
	newID   func() string
}

// NewService wires a Service.
func NewService(store Store, catalog *Catalog, limits Limits, now func() int64, options ...ServiceOption) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: store dependency is nil", ErrInvalidServiceConfig)
	}
	if catalog == nil {
		return nil, fmt.Errorf("%w: catalog dependency is nil", ErrInvalidServiceConfig)
	}
	if now == nil {
		return nil, fmt.Errorf("%w: clock dependency is nil", ErrInvalidServiceConfig)
	}
	if err := limits.Validate(); err != nil {
		return nil, err
	}
	service := &Service{
		store:   store,
		catalog: catalog,
		limits:  limits,
		nowFn:   now,
		newID:   uuid.NewString,
	}
	for _, option := range options {
		if option != nil {
			option(service)
		}
	}
	return service, nil
}

// Catalog exposes the item lookup table to the front-ends.
func (service *Service) Catalog() *Catalog {
	return service.catalog
}

// Balance returns the account balance, zero for absent accounts.
func (service *Service) Balance(ctx context.Context, userID UserID) (Amount, error) {
	account, err := service.store.GetAccount(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return 0, nil
		}
		return 0, err
	}
	return account.Balance, nil
}

// Inventory returns the account's item counts, empty for absent accounts.
func (service *Service) Inventory(ctx context.Context, userID UserID) (map[ItemKind]int64, error) {
	account, err := service.store.GetAccount(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return map[ItemKind]int64{}, nil
		}
		return nil, err
	}
	snapshot := make(map[ItemKind]int64, len(account.Inventory))
	for kind, count := range account.Inventory {
		snapshot[kind] = count
	}
	return snapshot, nil
}

// EnsureAccount creates the account on first interaction and records the
// referral edge carried by the start token, granting the milestone reward
// on every 10th cumulative referral.
func (service *Service) EnsureAccount(ctx context.Context, userID UserID, referrerToken string) (Account, error) {
	nowUnixUTC := service.nowFn()
	account, created, operationError := service.store.EnsureAccount(ctx, userID, nowUnixUTC)
	if operationError == nil && created {
		service.audit(ctx, userID.String(), auditActionAccountCreated, "", "")
		operationError = service.registerReferral(ctx, userID, referrerToken, nowUnixUTC)
	}
	service.logOperation(ctx, OperationLog{
		Operation: operationEnsureAccount,
		UserID:    userID,
		Error:     operationError,
	})
	return account, operationError
}

// Purchase debits price×qty and grants the items. The two steps span
// independent documents, so an inventory failure refunds the debit.
func (service *Service) Purchase(ctx context.Context, userID UserID, kind ItemKind, qty int64) (Amount, error) {
	total, operationError := service.purchase(ctx, userID, kind, qty)
	service.logOperation(ctx, OperationLog{
		Operation: operationPurchase,
		UserID:    userID,
		Item:      kind,
		Amount:    total,
		Error:     operationError,
	})
	return total, operationError
}

func (service *Service) purchase(ctx context.Context, userID UserID, kind ItemKind, qty int64) (Amount, error) {
	if qty <= 0 {
		return 0, fmt.Errorf("%w: must be greater than zero", ErrInvalidQuantity)
	}
	descriptor, err := service.catalog.Lookup(kind)
	if err != nil {
		return 0, err
	}
	total := Amount(descriptor.Price.Int64() * qty)
	if total <= 0 || total.Int64()/qty != descriptor.Price.Int64() {
		return 0, fmt.Errorf("%w: total overflows", ErrInvalidAmount)
	}
	if err := service.store.DebitIfEnough(ctx, userID, total); err != nil {
		return total, err
	}
	if err := service.store.AdjustItem(ctx, userID, kind, qty); err != nil {
		// Compensate the debit so funds never vanish silently.
		if refundErr := service.store.Credit(ctx, userID, total); refundErr != nil {
			return total, WrapError(operationPurchase, "inventory", "refund_failed", refundErr)
		}
		return total, err
	}
	service.audit(ctx, userID.String(), auditActionPurchase, kind.String(),
		fmt.Sprintf("qty=%d total=%s", qty, total.TON()))
	_ = service.store.TouchActivity(ctx, userID, service.nowFn())
	return total, nil
}

// EntryStatus returns an entry owned by the caller.
func (service *Service) EntryStatus(ctx context.Context, userID UserID, entryID EntryID) (Entry, error) {
	entry, err := service.store.GetEntry(ctx, entryID)
	if err != nil {
		return Entry{}, err
	}
	if entry.UserID != userID {
		return Entry{}, ErrNotEntryOwner
	}
	return entry, nil
}

func (service *Service) audit(ctx context.Context, actor string, action string, target string, detail string) {
	entry := AuditEntry{
		Actor:          actor,
		Action:         action,
		Target:         target,
		Detail:         detail,
		CreatedUnixUTC: service.nowFn(),
	}
	// Audit failures never abort the mutation they describe.
	_ = service.store.AppendAudit(ctx, entry)
}

func (service *Service) appendEvent(ctx context.Context, kind string, userID UserID, message string) {
	event := OutboxEvent{
		EventID:        service.newID(),
		Kind:           kind,
		UserID:         userID,
		Message:        message,
		CreatedUnixUTC: service.nowFn(),
	}
	_ = service.store.AppendEvent(ctx, event)
}

func (service *Service) logOperation(ctx context.Context, entry OperationLog) {
	if service.logger == nil {
		return
	}
	if entry.Status == "" {
		if entry.Error != nil {
			entry.Status = operationStatusError
		} else {
			entry.Status = operationStatusOK
		}
	}
	service.logger.LogOperation(ctx, entry)
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrAccountNotFound)
}
