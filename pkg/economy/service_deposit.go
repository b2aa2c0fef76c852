package economy

import (
	"context"
	"fmt"
)

// RequestDeposit records a pending deposit awaiting admin review.
// The proof hash is stored as supplied; on-chain verification is out of scope.
func (service *Service) RequestDeposit(ctx context.Context, userID UserID, amount PositiveAmount, network string, proofHash string) (Entry, error) {
	entry, operationError := service.requestDeposit(ctx, userID, amount, network, proofHash)
	service.logOperation(ctx, OperationLog{
		Operation: operationRequestDeposit,
		UserID:    userID,
		EntryID:   entry.EntryID,
		Amount:    amount.ToAmount(),
		Error:     operationError,
	})
	return entry, operationError
}

func (service *Service) requestDeposit(ctx context.Context, userID UserID, amount PositiveAmount, network string, proofHash string) (Entry, error) {
	if amount.ToAmount() < service.limits.MinDeposit {
		return Entry{}, fmt.Errorf("%w: below minimum deposit %s", ErrInvalidAmount, service.limits.MinDeposit.TON())
	}
	entryID, err := NewEntryID(service.newID())
	if err != nil {
		return Entry{}, err
	}
	entry := Entry{
		EntryID:        entryID,
		UserID:         userID,
		Kind:           EntryDeposit,
		Amount:         amount.ToAmount(),
		Network:        network,
		ProofHash:      proofHash,
		Status:         StatusPending,
		CreatedUnixUTC: service.nowFn(),
	}
	if err := service.store.InsertEntry(ctx, entry); err != nil {
		return Entry{}, err
	}
	service.audit(ctx, userID.String(), auditActionDepositRequested, entryID.String(), amount.ToAmount().TON())
	return entry, nil
}

// ApproveDeposit settles a pending deposit: status flips pending→completed
// atomically, then the balance is credited exactly once. A credit failure
// reverts the status so the approval can be retried without double-credit.
func (service *Service) ApproveDeposit(ctx context.Context, adminID AdminID, entryID EntryID) error {
	operationError := service.approveDeposit(ctx, adminID, entryID)
	service.logOperation(ctx, OperationLog{
		Operation: operationApproveDeposit,
		AdminID:   adminID,
		EntryID:   entryID,
		Error:     operationError,
	})
	return operationError
}

func (service *Service) approveDeposit(ctx context.Context, adminID AdminID, entryID EntryID) error {
	entry, err := service.store.GetEntry(ctx, entryID)
	if err != nil {
		return err
	}
	if entry.Kind != EntryDeposit {
		return fmt.Errorf("%w: %s is not a deposit", ErrInvalidEntryKind, entryID)
	}
	nowUnixUTC := service.nowFn()
	if err := service.store.UpdateEntryStatus(ctx, entryID, StatusPending, StatusCompleted, adminID.String(), nowUnixUTC); err != nil {
		return err
	}
	if err := service.store.Credit(ctx, entry.UserID, entry.Amount); err != nil {
		// Undo the status flip so a retry credits exactly once.
		if revertErr := service.store.UpdateEntryStatus(ctx, entryID, StatusCompleted, StatusPending, "", 0); revertErr != nil {
			return WrapError(operationApproveDeposit, "entry", "revert_failed", revertErr)
		}
		return err
	}
	service.audit(ctx, adminID.String(), auditActionDepositApproved, entryID.String(), entry.Amount.TON())
	service.appendEvent(ctx, eventDepositApproved, entry.UserID,
		fmt.Sprintf("Depósito de %s TON acreditado.", entry.Amount.TON()))
	if err := service.activateReferralForDeposit(ctx, entry.UserID); err != nil {
		// The deposit itself settled; referral reward failures surface alone.
		return err
	}
	return nil
}

// RejectDeposit closes a pending deposit without balance effect.
func (service *Service) RejectDeposit(ctx context.Context, adminID AdminID, entryID EntryID) error {
	operationError := service.rejectDeposit(ctx, adminID, entryID)
	service.logOperation(ctx, OperationLog{
		Operation: operationRejectDeposit,
		AdminID:   adminID,
		EntryID:   entryID,
		Error:     operationError,
	})
	return operationError
}

func (service *Service) rejectDeposit(ctx context.Context, adminID AdminID, entryID EntryID) error {
	entry, err := service.store.GetEntry(ctx, entryID)
	if err != nil {
		return err
	}
	if entry.Kind != EntryDeposit {
		return fmt.Errorf("%w: %s is not a deposit", ErrInvalidEntryKind, entryID)
	}
	if err := service.store.UpdateEntryStatus(ctx, entryID, StatusPending, StatusRejected, adminID.String(), service.nowFn()); err != nil {
		return err
	}
	service.audit(ctx, adminID.String(), auditActionDepositRejected, entryID.String(), entry.Amount.TON())
	service.appendEvent(ctx, eventDepositRejected, entry.UserID,
		"Tu depósito fue rechazado. Contacta al soporte si crees que es un error.")
	return nil
}

// ListPendingDeposits returns deposits awaiting review.
func (service *Service) ListPendingDeposits(ctx context.Context, limit int) ([]Entry, error) {
	return service.store.ListEntries(ctx, EntryDeposit, StatusPending, limit)
}
