package economy

import (
	"context"
	"fmt"
)

// RequestWithdrawal reserves funds by debiting at request time. If the
// debit fails the entry is never created; if persisting the entry fails
// the debit is refunded.
func (service *Service) RequestWithdrawal(ctx context.Context, userID UserID, amount PositiveAmount, address string) (Entry, error) {
	entry, operationError := service.requestWithdrawal(ctx, userID, amount, address)
	service.logOperation(ctx, OperationLog{
		Operation: operationRequestWithdrawal,
		UserID:    userID,
		EntryID:   entry.EntryID,
		Amount:    amount.ToAmount(),
		Error:     operationError,
	})
	return entry, operationError
}

func (service *Service) requestWithdrawal(ctx context.Context, userID UserID, amount PositiveAmount, address string) (Entry, error) {
	if amount.ToAmount() < service.limits.MinWithdrawal {
		return Entry{}, fmt.Errorf("%w: below minimum withdrawal %s", ErrInvalidAmount, service.limits.MinWithdrawal.TON())
	}
	if address == "" {
		return Entry{}, fmt.Errorf("%w: empty destination address", ErrInvalidAmount)
	}
	nowUnixUTC := service.nowFn()
	if service.limits.WithdrawalCooldownSeconds > 0 {
		account, err := service.store.GetAccount(ctx, userID)
		if err != nil && !isNotFound(err) {
			return Entry{}, err
		}
		if until := account.Cooldowns[activityWithdrawalRequest]; until > nowUnixUTC {
			return Entry{}, fmt.Errorf("%w: next withdrawal request allowed at %d", ErrCooldownActive, until)
		}
	}
	entryID, err := NewEntryID(service.newID())
	if err != nil {
		return Entry{}, err
	}
	fee := Amount(amount.ToAmount().Int64() * service.limits.WithdrawalFeePercent / 100)
	if err := service.store.DebitIfEnough(ctx, userID, amount.ToAmount()); err != nil {
		return Entry{}, err
	}
	entry := Entry{
		EntryID:        entryID,
		UserID:         userID,
		Kind:           EntryWithdrawal,
		Amount:         amount.ToAmount(),
		Fee:            fee,
		Address:        address,
		Status:         StatusPending,
		CreatedUnixUTC: nowUnixUTC,
	}
	if err := service.store.InsertEntry(ctx, entry); err != nil {
		// Give the reservation back; the request never happened.
		if refundErr := service.store.Credit(ctx, userID, amount.ToAmount()); refundErr != nil {
			return Entry{}, WrapError(operationRequestWithdrawal, "entry", "refund_failed", refundErr)
		}
		return Entry{}, err
	}
	if service.limits.WithdrawalCooldownSeconds > 0 {
		// Pacing is advisory; a failed write never fails the request.
		_ = service.store.SetCooldown(ctx, userID, activityWithdrawalRequest, nowUnixUTC+service.limits.WithdrawalCooldownSeconds)
	}
	service.audit(ctx, userID.String(), auditActionWithdrawRequested, entryID.String(), amount.ToAmount().TON())
	return entry, nil
}

// ApproveWithdrawal completes a pending withdrawal. Funds were reserved at
// request time, so approval has no balance effect.
func (service *Service) ApproveWithdrawal(ctx context.Context, adminID AdminID, entryID EntryID) error {
	operationError := service.approveWithdrawal(ctx, adminID, entryID)
	service.logOperation(ctx, OperationLog{
		Operation: operationApproveWithdrawal,
		AdminID:   adminID,
		EntryID:   entryID,
		Error:     operationError,
	})
	return operationError
}

func (service *Service) approveWithdrawal(ctx context.Context, adminID AdminID, entryID EntryID) error {
	entry, err := service.store.GetEntry(ctx, entryID)
	if err != nil {
		return err
	}
	if entry.Kind != EntryWithdrawal {
		return fmt.Errorf("%w: %s is not a withdrawal", ErrInvalidEntryKind, entryID)
	}
	if err := service.store.UpdateEntryStatus(ctx, entryID, StatusPending, StatusCompleted, adminID.String(), service.nowFn()); err != nil {
		return err
	}
	service.audit(ctx, adminID.String(), auditActionWithdrawApproved, entryID.String(), entry.Amount.TON())
	payout := entry.Amount - entry.Fee
	service.appendEvent(ctx, eventWithdrawalApproved, entry.UserID,
		fmt.Sprintf("Retiro enviado a %s: %s TON (comisión %s TON).", entry.Address, payout.TON(), entry.Fee.TON()))
	return nil
}

// RejectWithdrawal closes a pending withdrawal and refunds the reserved
// amount exactly once. A refund failure reverts the status flip so a retry
// refunds exactly once.
func (service *Service) RejectWithdrawal(ctx context.Context, adminID AdminID, entryID EntryID, reason string) error {
	operationError := service.resolveWithdrawalWithRefund(ctx, adminID.String(), entryID, StatusRejected, reason)
	service.logOperation(ctx, OperationLog{
		Operation: operationRejectWithdrawal,
		AdminID:   adminID,
		EntryID:   entryID,
		Error:     operationError,
	})
	return operationError
}

// CancelWithdrawal lets the owner cancel a pending withdrawal, refunding
// the reserved amount exactly once.
func (service *Service) CancelWithdrawal(ctx context.Context, userID UserID, entryID EntryID) error {
	operationError := service.cancelWithdrawal(ctx, userID, entryID)
	service.logOperation(ctx, OperationLog{
		Operation: operationCancelWithdrawal,
		UserID:    userID,
		EntryID:   entryID,
		Error:     operationError,
	})
	return operationError
}

func (service *Service) cancelWithdrawal(ctx context.Context, userID UserID, entryID EntryID) error {
	entry, err := service.store.GetEntry(ctx, entryID)
	if err != nil {
		return err
	}
	if entry.UserID != userID {
		return ErrNotEntryOwner
	}
	return service.resolveWithdrawalWithRefund(ctx, userID.String(), entryID, StatusCancelled, "")
}

func (service *Service) resolveWithdrawalWithRefund(ctx context.Context, actor string, entryID EntryID, terminal EntryStatus, reason string) error {
	entry, err := service.store.GetEntry(ctx, entryID)
	if err != nil {
		return err
	}
	if entry.Kind != EntryWithdrawal {
		return fmt.Errorf("%w: %s is not a withdrawal", ErrInvalidEntryKind, entryID)
	}
	if err := service.store.UpdateEntryStatus(ctx, entryID, StatusPending, terminal, actor, service.nowFn()); err != nil {
		return err
	}
	if err := service.store.Credit(ctx, entry.UserID, entry.Amount); err != nil {
		if revertErr := service.store.UpdateEntryStatus(ctx, entryID, terminal, StatusPending, "", 0); revertErr != nil {
			return WrapError(operationRejectWithdrawal, "entry", "revert_failed", revertErr)
		}
		return err
	}
	switch terminal {
	case StatusRejected:
		service.audit(ctx, actor, auditActionWithdrawRejected, entryID.String(), reason)
		service.appendEvent(ctx, eventWithdrawalRejected, entry.UserID,
			fmt.Sprintf("Tu retiro de %s TON fue rechazado y reembolsado.", entry.Amount.TON()))
	case StatusCancelled:
		service.audit(ctx, actor, auditActionWithdrawCancelled, entryID.String(), "")
		service.appendEvent(ctx, eventWithdrawalCancelled, entry.UserID,
			fmt.Sprintf("Retiro de %s TON cancelado; el saldo volvió a tu cuenta.", entry.Amount.TON()))
	}
	return nil
}

// ListPendingWithdrawals returns withdrawals awaiting review.
func (service *Service) ListPendingWithdrawals(ctx context.Context, limit int) ([]Entry, error) {
	return service.store.ListEntries(ctx, EntryWithdrawal, StatusPending, limit)
}
