package economy

import (
	"fmt"
	"strings"
	"time"
)

// Amount is an integer quantity of nanotons (1 TON = 1e9 nanotons).
type Amount int64

// PositiveAmount is an Amount validated to be strictly positive.
type PositiveAmount struct {
	value Amount
}

// UserID identifies an account owner.
type UserID struct {
	value string
}

// AdminID identifies an operator resolving ledger entries.
type AdminID struct {
	value string
}

// EntryID identifies a deposit or withdrawal entry.
type EntryID struct {
	value string
}

// NewAmount validates a non-negative amount.
func NewAmount(raw int64) (Amount, error) {
	if raw < 0 {
		return 0, fmt.Errorf("%w: must not be negative", ErrInvalidAmount)
	}
	return Amount(raw), nil
}

// NewPositiveAmount validates an amount and ensures it is strictly positive.
func NewPositiveAmount(raw int64) (PositiveAmount, error) {
	if raw <= 0 {
		return PositiveAmount{}, fmt.Errorf("%w: must be greater than zero", ErrInvalidAmount)
	}
	return PositiveAmount{value: Amount(raw)}, nil
}

// ToAmount converts the validated amount back to a plain Amount.
func (amount PositiveAmount) ToAmount() Amount {
	return amount.value
}

// Int64 returns the raw nanoton value.
func (amount Amount) Int64() int64 {
	return int64(amount)
}

// TON renders the amount as a decimal TON string with three fractional digits.
func (amount Amount) TON() string {
	whole := int64(amount) / nanotonsPerTon
	frac := (int64(amount) % nanotonsPerTon) / (nanotonsPerTon / 1000)
	return fmt.Sprintf("%d.%03d", whole, frac)
}

// NewUserID validates and normalizes a user id.
func NewUserID(raw string) (UserID, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return UserID{}, fmt.Errorf("%w: empty value", ErrInvalidUserID)
	}
	return UserID{value: trimmed}, nil
}

// String returns the normalized identifier.
func (id UserID) String() string {
	return id.value
}

// NewAdminID validates and normalizes an admin id.
func NewAdminID(raw string) (AdminID, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return AdminID{}, fmt.Errorf("%w: empty value", ErrInvalidAdminID)
	}
	return AdminID{value: trimmed}, nil
}

// String returns the normalized identifier.
func (id AdminID) String() string {
	return id.value
}

// NewEntryID validates and normalizes an entry id.
func NewEntryID(raw string) (EntryID, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return EntryID{}, fmt.Errorf("%w: empty value", ErrInvalidEntryID)
	}
	return EntryID{value: trimmed}, nil
}

// String returns the normalized identifier.
func (id EntryID) String() string {
	return id.value
}

// EntryKind distinguishes deposits from withdrawals.
type EntryKind string

const (
	EntryDeposit    EntryKind = "deposit"
	EntryWithdrawal EntryKind = "withdrawal"
)

// ParseEntryKind validates a stored entry kind.
func ParseEntryKind(raw string) (EntryKind, error) {
	switch EntryKind(raw) {
	case EntryDeposit, EntryWithdrawal:
		return EntryKind(raw), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidEntryKind, raw)
}

// String returns the stored representation.
func (kind EntryKind) String() string {
	return string(kind)
}

// EntryStatus defines the entry lifecycle.
type EntryStatus string

const (
	StatusPending   EntryStatus = "pending"
	StatusCompleted EntryStatus = "completed"
	StatusRejected  EntryStatus = "rejected"
	StatusCancelled EntryStatus = "cancelled"
)

// ParseEntryStatus validates a stored entry status.
func ParseEntryStatus(raw string) (EntryStatus, error) {
	switch EntryStatus(raw) {
	case StatusPending, StatusCompleted, StatusRejected, StatusCancelled:
		return EntryStatus(raw), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidEntryStatus, raw)
}

// String returns the stored representation.
func (status EntryStatus) String() string {
	return string(status)
}

// Terminal reports whether the status admits no further transitions.
func (status EntryStatus) Terminal() bool {
	return status != StatusPending
}

// Entry is a deposit or withdrawal tracked through its status lifecycle.
type Entry struct {
	EntryID EntryID
	UserID  UserID
	Kind    EntryKind
	Amount  Amount
	// Fee is the payout-side commission on withdrawals. The full Amount
	// is reserved at request time; the operator sends Amount minus Fee.
	Fee Amount
	Network         string
	ProofHash       string
	Address         string
	Reason          string
	Status          EntryStatus
	CreatedUnixUTC  int64
	ResolvedUnixUTC int64
	ResolvedBy      string
}

// Account is a user's economic identity: balance plus inventory.
type Account struct {
	UserID            UserID
	Balance           Amount
	Inventory         map[ItemKind]int64
	RegisteredUnixUTC int64
	LastActiveUnixUTC int64
	Cooldowns         map[string]int64
	LastYieldDay      string
}

// ItemCount returns the held count for a kind, zero when absent.
func (account Account) ItemCount(kind ItemKind) int64 {
	if account.Inventory == nil {
		return 0
	}
	return account.Inventory[kind]
}

// ReferralEdge records a referrer→referred relationship.
type ReferralEdge struct {
	ReferrerID     UserID
	ReferredID     UserID
	Active         bool
	RewardGranted  bool
	CreatedUnixUTC int64
}

// AuditEntry is an append-only record of a state-changing action.
type AuditEntry struct {
	Actor          string
	Action         string
	Target         string
	Detail         string
	CreatedUnixUTC int64
}

// OutboxEvent is a pending user notification appended by ledger operations.
type OutboxEvent struct {
	EventID          string
	Kind             string
	UserID           UserID
	Message          string
	CreatedUnixUTC   int64
	DeliveredUnixUTC int64
}

// DayBucket renders the UTC day used as the yield idempotency key.
func DayBucket(at time.Time) string {
	return at.UTC().Format(dayBucketLayout)
}
