package economy

import "context"

// AccountStore holds per-user balance and inventory.
//
// Credit and DebitIfEnough are the only balance primitives. DebitIfEnough
// must be a single atomic compare-and-decrement: two concurrent debits
// against a balance that covers only one must not both succeed. Credit is
// not idempotent; callers guard against duplicate application.
type AccountStore interface {
	// EnsureAccount creates the account on first contact and reports
	// whether it was created by this call.
	EnsureAccount(ctx context.Context, userID UserID, nowUnixUTC int64) (Account, bool, error)
	// GetAccount returns ErrAccountNotFound for absent accounts.
	GetAccount(ctx context.Context, userID UserID) (Account, error)
	Credit(ctx context.Context, userID UserID, amount Amount) error
	// DebitIfEnough returns ErrInsufficientBalance without mutating when
	// the balance does not cover the amount.
	DebitIfEnough(ctx context.Context, userID UserID, amount Amount) error
	// AdjustItem applies a signed delta; a negative resulting count fails
	// atomically with ErrInsufficientItems.
	AdjustItem(ctx context.Context, userID UserID, kind ItemKind, delta int64) error
	SetBalance(ctx context.Context, userID UserID, balance Amount) error
	SetItemCount(ctx context.Context, userID UserID, kind ItemKind, count int64) error
	TouchActivity(ctx context.Context, userID UserID, nowUnixUTC int64) error
	SetCooldown(ctx context.Context, userID UserID, activity string, untilUnixUTC int64) error
	// ClaimYieldDay sets the account's last-yield day to day if it differs,
	// reporting whether this call claimed it.
	ClaimYieldDay(ctx context.Context, userID UserID, day string) (bool, error)
	// ReleaseYieldDay clears the last-yield day if it still equals day,
	// so a retried sweep can pay the account again.
	ReleaseYieldDay(ctx context.Context, userID UserID, day string) error
	// ClearItem zeroes a held count, reporting whether anything was held.
	ClearItem(ctx context.Context, userID UserID, kind ItemKind) (bool, error)
	ListAccounts(ctx context.Context) ([]Account, error)
}

// EntryStore persists deposit and withdrawal entries.
type EntryStore interface {
	InsertEntry(ctx context.Context, entry Entry) error
	// GetEntry returns ErrEntryNotFound for unknown ids.
	GetEntry(ctx context.Context, entryID EntryID) (Entry, error)
	ListEntries(ctx context.Context, kind EntryKind, status EntryStatus, limit int) ([]Entry, error)
	// UpdateEntryStatus transitions from→to atomically. It returns
	// ErrEntryAlreadyResolved when the entry exists but is not in from,
	// ErrEntryNotFound when it does not exist.
	UpdateEntryStatus(ctx context.Context, entryID EntryID, from EntryStatus, to EntryStatus, resolvedBy string, resolvedUnixUTC int64) error
}

// ReferralStore persists referrer→referred edges.
type ReferralStore interface {
	// CreateReferralEdge reports false for an already recorded pair.
	CreateReferralEdge(ctx context.Context, edge ReferralEdge) (bool, error)
	GetReferralEdgeByReferred(ctx context.Context, referredID UserID) (ReferralEdge, bool, error)
	CountReferrals(ctx context.Context, referrerID UserID) (int64, error)
	CountActiveReferrals(ctx context.Context, referrerID UserID) (int64, error)
	// ActivateReferral flips the active flag, reporting whether this call
	// flipped it.
	ActivateReferral(ctx context.Context, referredID UserID) (bool, error)
	// GrantReferralReward flips the reward flag, reporting whether this
	// call flipped it.
	GrantReferralReward(ctx context.Context, referredID UserID) (bool, error)
	// RevokeReferralReward clears the reward flag so a retried
	// activation can grant the reward again.
	RevokeReferralReward(ctx context.Context, referredID UserID) error
}

// AuditStore is the append-only audit log.
type AuditStore interface {
	AppendAudit(ctx context.Context, entry AuditEntry) error
	ListAudit(ctx context.Context, limit int) ([]AuditEntry, error)
	// PurgeAuditBefore removes entries strictly older than the cutoff and
	// returns the count removed.
	PurgeAuditBefore(ctx context.Context, cutoffUnixUTC int64) (int64, error)
}

// OutboxStore buffers notifications appended by ledger operations.
type OutboxStore interface {
	AppendEvent(ctx context.Context, event OutboxEvent) error
	ListUndeliveredEvents(ctx context.Context, limit int) ([]OutboxEvent, error)
	MarkEventDelivered(ctx context.Context, eventID string, nowUnixUTC int64) error
}

// Store is the persistence contract used by Service.
type Store interface {
	AccountStore
	EntryStore
	ReferralStore
	AuditStore
	OutboxStore
}
