package gormstore

import "gorm.io/datatypes"

// Account mirrors the accounts table.
type Account struct {
	UserID       string         `gorm:"primaryKey"`
	Balance      int64          `gorm:"not null"`
	Cooldowns    datatypes.JSON `gorm:"not null"`
	RegisteredAt int64          `gorm:"not null"`
	LastActiveAt int64          `gorm:"not null"`
	LastYieldDay string         `gorm:"not null;default:''"`
}

func (Account) TableName() string { return "accounts" }

// InventoryItem mirrors the inventory table; one row per held kind.
type InventoryItem struct {
	UserID string `gorm:"primaryKey"`
	Kind   string `gorm:"primaryKey"`
	Count  int64  `gorm:"not null"`
}

func (InventoryItem) TableName() string { return "inventory_items" }

// Entry mirrors the entries table.
type Entry struct {
	EntryID    string `gorm:"primaryKey"`
	UserID     string `gorm:"not null;index:idx_entries_user_created,priority:1"`
	Kind       string `gorm:"not null;index:idx_entries_kind_status,priority:1"`
	Amount     int64  `gorm:"not null"`
	Fee        int64  `gorm:"not null"`
	Network    string `gorm:""`
	ProofHash  string `gorm:""`
	Address    string `gorm:""`
	Reason     string `gorm:""`
	Status     string `gorm:"not null;index:idx_entries_kind_status,priority:2"`
	CreatedAt  int64  `gorm:"not null;index:idx_entries_user_created,priority:2"`
	ResolvedAt int64  `gorm:"not null"`
	ResolvedBy string `gorm:""`
}

func (Entry) TableName() string { return "entries" }

// ReferralEdge mirrors the referrals table, keyed by the referred user.
type ReferralEdge struct {
	ReferredID    string `gorm:"primaryKey"`
	ReferrerID    string `gorm:"not null;index"`
	Active        bool   `gorm:"not null"`
	RewardGranted bool   `gorm:"not null"`
	CreatedAt     int64  `gorm:"not null"`
}

func (ReferralEdge) TableName() string { return "referral_edges" }

// AuditEntry mirrors the audit_log table.
type AuditEntry struct {
	ID        uint   `gorm:"primaryKey"`
	Actor     string `gorm:"not null"`
	Action    string `gorm:"not null"`
	Target    string `gorm:""`
	Detail    string `gorm:""`
	CreatedAt int64  `gorm:"not null;index"`
}

func (AuditEntry) TableName() string { return "audit_log" }

// OutboxEvent mirrors the outbox table.
type OutboxEvent struct {
	EventID     string `gorm:"primaryKey"`
	Kind        string `gorm:"not null"`
	UserID      string `gorm:"not null"`
	Message     string `gorm:"not null"`
	CreatedAt   int64  `gorm:"not null;index:idx_outbox_delivered_created,priority:2"`
	DeliveredAt int64  `gorm:"not null;index:idx_outbox_delivered_created,priority:1"`
}

func (OutboxEvent) TableName() string { return "outbox_events" }
