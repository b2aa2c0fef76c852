// Package memstore is a mutex-guarded in-memory Store used by unit tests
// and local development. Conditional mutations hold the lock for the whole
// check-and-set, matching the atomicity the persistent stores provide.
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/rayomarblezh-dev/mundo-mitico-sub000/pkg/economy"
)

type accountRecord struct {
	balance      int64
	inventory    map[economy.ItemKind]int64
	registered   int64
	lastActive   int64
	cooldowns    map[string]int64
	lastYieldDay string
}

// Store implements economy.Store in memory.
type Store struct {
	mu       sync.Mutex
	accounts map[string]*accountRecord
	entries  map[string]economy.Entry
	order    []string
	edges    map[string]economy.ReferralEdge
	audit    []economy.AuditEntry
	events   []economy.OutboxEvent
}

// New returns an empty in-memory store.
func New() *Store {
	return &Store{
		accounts: map[string]*accountRecord{},
		entries:  map[string]economy.Entry{},
		edges:    map[string]economy.ReferralEdge{},
	}
}

func (store *Store) EnsureAccount(_ context.Context, userID economy.UserID, nowUnixUTC int64) (economy.Account, bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	record, exists := store.accounts[userID.String()]
	if !exists {
		record = &accountRecord{
			inventory:  map[economy.ItemKind]int64{},
			cooldowns:  map[string]int64{},
			registered: nowUnixUTC,
			lastActive: nowUnixUTC,
		}
		store.accounts[userID.String()] = record
	}
	return store.snapshot(userID, record), !exists, nil
}

func (store *Store) GetAccount(_ context.Context, userID economy.UserID) (economy.Account, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	record, exists := store.accounts[userID.String()]
	if !exists {
		return economy.Account{}, economy.ErrAccountNotFound
	}
	return store.snapshot(userID, record), nil
}

func (store *Store) Credit(_ context.Context, userID economy.UserID, amount economy.Amount) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	record, exists := store.accounts[userID.String()]
	if !exists {
		return economy.ErrAccountNotFound
	}
	record.balance += amount.Int64()
	return nil
}

func (store *Store) DebitIfEnough(_ context.Context, userID economy.UserID, amount economy.Amount) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	record, exists := store.accounts[userID.String()]
	if !exists {
		return economy.ErrInsufficientBalance
	}
	if record.balance < amount.Int64() {
		return economy.ErrInsufficientBalance
	}
	record.balance -= amount.Int64()
	return nil
}

func (store *Store) AdjustItem(_ context.Context, userID economy.UserID, kind economy.ItemKind, delta int64) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	record, exists := store.accounts[userID.String()]
	if !exists {
		return economy.ErrAccountNotFound
	}
	if record.inventory[kind]+delta < 0 {
		return economy.ErrInsufficientItems
	}
	record.inventory[kind] += delta
	return nil
}

func (store *Store) SetBalance(_ context.Context, userID economy.UserID, balance economy.Amount) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	record, exists := store.accounts[userID.String()]
	if !exists {
		return economy.ErrAccountNotFound
	}
	record.balance = balance.Int64()
	return nil
}

func (store *Store) SetItemCount(_ context.Context, userID economy.UserID, kind economy.ItemKind, count int64) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	record, exists := store.accounts[userID.String()]
	if !exists {
		return economy.ErrAccountNotFound
	}
	record.inventory[kind] = count
	return nil
}

func (store *Store) TouchActivity(_ context.Context, userID economy.UserID, nowUnixUTC int64) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	if record, exists := store.accounts[userID.String()]; exists {
		record.lastActive = nowUnixUTC
	}
	return nil
}

func (store *Store) SetCooldown(_ context.Context, userID economy.UserID, activity string, untilUnixUTC int64) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	record, exists := store.accounts[userID.String()]
	if !exists {
		return economy.ErrAccountNotFound
	}
	record.cooldowns[activity] = untilUnixUTC
	return nil
}

func (store *Store) ClaimYieldDay(_ context.Context, userID economy.UserID, day string) (bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	record, exists := store.accounts[userID.String()]
	if !exists {
		return false, economy.ErrAccountNotFound
	}
	if record.lastYieldDay == day {
		return false, nil
	}
	record.lastYieldDay = day
	return true, nil
}

func (store *Store) ReleaseYieldDay(_ context.Context, userID economy.UserID, day string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	record, exists := store.accounts[userID.String()]
	if !exists {
		return economy.ErrAccountNotFound
	}
	if record.lastYieldDay == day {
		record.lastYieldDay = ""
	}
	return nil
}

func (store *Store) ClearItem(_ context.Context, userID economy.UserID, kind economy.ItemKind) (bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	record, exists := store.accounts[userID.String()]
	if !exists {
		return false, economy.ErrAccountNotFound
	}
	if record.inventory[kind] == 0 {
		return false, nil
	}
	record.inventory[kind] = 0
	return true, nil
}

func (store *Store) ListAccounts(_ context.Context) ([]economy.Account, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	ids := make([]string, 0, len(store.accounts))
	for id := range store.accounts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	accounts := make([]economy.Account, 0, len(ids))
	for _, id := range ids {
		userID, err := economy.NewUserID(id)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, store.snapshot(userID, store.accounts[id]))
	}
	return accounts, nil
}

func (store *Store) InsertEntry(_ context.Context, entry economy.Entry) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.entries[entry.EntryID.String()] = entry
	store.order = append(store.order, entry.EntryID.String())
	return nil
}

func (store *Store) GetEntry(_ context.Context, entryID economy.EntryID) (economy.Entry, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	entry, exists := store.entries[entryID.String()]
	if !exists {
		return economy.Entry{}, economy.ErrEntryNotFound
	}
	return entry, nil
}

func (store *Store) ListEntries(_ context.Context, kind economy.EntryKind, status economy.EntryStatus, limit int) ([]economy.Entry, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	entries := make([]economy.Entry, 0, limit)
	for _, id := range store.order {
		entry := store.entries[id]
		if entry.Kind != kind || entry.Status != status {
			continue
		}
		entries = append(entries, entry)
		if limit > 0 && len(entries) == limit {
			break
		}
	}
	return entries, nil
}

func (store *Store) UpdateEntryStatus(_ context.Context, entryID economy.EntryID, from economy.EntryStatus, to economy.EntryStatus, resolvedBy string, resolvedUnixUTC int64) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	entry, exists := store.entries[entryID.String()]
	if !exists {
		return economy.ErrEntryNotFound
	}
	if entry.Status != from {
		return economy.ErrEntryAlreadyResolved
	}
	entry.Status = to
	entry.ResolvedBy = resolvedBy
	entry.ResolvedUnixUTC = resolvedUnixUTC
	store.entries[entryID.String()] = entry
	return nil
}

func (store *Store) CreateReferralEdge(_ context.Context, edge economy.ReferralEdge) (bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	if _, exists := store.edges[edge.ReferredID.String()]; exists {
		return false, nil
	}
	store.edges[edge.ReferredID.String()] = edge
	return true, nil
}

func (store *Store) GetReferralEdgeByReferred(_ context.Context, referredID economy.UserID) (economy.ReferralEdge, bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	edge, exists := store.edges[referredID.String()]
	return edge, exists, nil
}

func (store *Store) CountReferrals(_ context.Context, referrerID economy.UserID) (int64, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	var count int64
	for _, edge := range store.edges {
		if edge.ReferrerID == referrerID {
			count++
		}
	}
	return count, nil
}

func (store *Store) CountActiveReferrals(_ context.Context, referrerID economy.UserID) (int64, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	var count int64
	for _, edge := range store.edges {
		if edge.ReferrerID == referrerID && edge.Active {
			count++
		}
	}
	return count, nil
}

func (store *Store) ActivateReferral(_ context.Context, referredID economy.UserID) (bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	edge, exists := store.edges[referredID.String()]
	if !exists || edge.Active {
		return false, nil
	}
	edge.Active = true
	store.edges[referredID.String()] = edge
	return true, nil
}

func (store *Store) GrantReferralReward(_ context.Context, referredID economy.UserID) (bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	edge, exists := store.edges[referredID.String()]
	if !exists || edge.RewardGranted {
		return false, nil
	}
	edge.RewardGranted = true
	store.edges[referredID.String()] = edge
	return true, nil
}

func (store *Store) RevokeReferralReward(_ context.Context, referredID economy.UserID) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	edge, exists := store.edges[referredID.String()]
	if !exists {
		return nil
	}
	edge.RewardGranted = false
	store.edges[referredID.String()] = edge
	return nil
}

func (store *Store) AppendAudit(_ context.Context, entry economy.AuditEntry) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.audit = append(store.audit, entry)
	return nil
}

func (store *Store) ListAudit(_ context.Context, limit int) ([]economy.AuditEntry, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	entries := make([]economy.AuditEntry, 0, limit)
	for index := len(store.audit) - 1; index >= 0; index-- {
		entries = append(entries, store.audit[index])
		if limit > 0 && len(entries) == limit {
			break
		}
	}
	return entries, nil
}

func (store *Store) PurgeAuditBefore(_ context.Context, cutoffUnixUTC int64) (int64, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	kept := store.audit[:0]
	var removed int64
	for _, entry := range store.audit {
		if entry.CreatedUnixUTC < cutoffUnixUTC {
			removed++
			continue
		}
		kept = append(kept, entry)
	}
	store.audit = kept
	return removed, nil
}

func (store *Store) AppendEvent(_ context.Context, event economy.OutboxEvent) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.events = append(store.events, event)
	return nil
}

func (store *Store) ListUndeliveredEvents(_ context.Context, limit int) ([]economy.OutboxEvent, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	events := make([]economy.OutboxEvent, 0, limit)
	for _, event := range store.events {
		if event.DeliveredUnixUTC != 0 {
			continue
		}
		events = append(events, event)
		if limit > 0 && len(events) == limit {
			break
		}
	}
	return events, nil
}

func (store *Store) MarkEventDelivered(_ context.Context, eventID string, nowUnixUTC int64) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	for index := range store.events {
		if store.events[index].EventID == eventID {
			store.events[index].DeliveredUnixUTC = nowUnixUTC
			return nil
		}
	}
	return economy.ErrEntryNotFound
}

func (store *Store) snapshot(userID economy.UserID, record *accountRecord) economy.Account {
	inventory := make(map[economy.ItemKind]int64, len(record.inventory))
	for kind, count := range record.inventory {
		inventory[kind] = count
	}
	cooldowns := make(map[string]int64, len(record.cooldowns))
	for activity, until := range record.cooldowns {
		cooldowns[activity] = until
	}
	balance, _ := economy.NewAmount(record.balance)
	return economy.Account{
		UserID:            userID,
		Balance:           balance,
		Inventory:         inventory,
		Cooldowns:         cooldowns,
		RegisteredUnixUTC: record.registered,
		LastActiveUnixUTC: record.lastActive,
		LastYieldDay:      record.lastYieldDay,
	}
}

var _ economy.Store = (*Store)(nil)
