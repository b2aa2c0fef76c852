// Package mongostore implements economy.Store on MongoDB. Balance and
// status mutations are conditional single-document updates, so concurrent
// callers race on the filter, never on a read-then-write.
package mongostore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rayomarblezh-dev/mundo-mitico-sub000/pkg/economy"
)

const (
	collectionAccounts  = "accounts"
	collectionEntries   = "entries"
	collectionReferrals = "referrals"
	collectionAudit     = "audit_log"
	collectionOutbox    = "outbox"

	errorOperationStore     = "store"
	errorSubjectAccount     = "account"
	errorSubjectEntry       = "entry"
	errorSubjectReferral    = "referral"
	errorSubjectAudit       = "audit"
	errorSubjectOutbox      = "outbox"
	errorCodeInsert         = "insert"
	errorCodeGet            = "get"
	errorCodeList           = "list"
	errorCodeUpdate         = "update"
	errorCodeCount          = "count"
	errorCodeDelete         = "delete"
	errorCodeDecode         = "decode"
	errorCodeEnsure         = "ensure"
	errorCodeUpdateStatus   = "update_status"
	errorCodeClaimYieldDay  = "claim_yield_day"
	errorCodeClearItem      = "clear_item"
	errorCodeMarkDelivered  = "mark_delivered"
	errorCodeCreditBalance  = "credit"
	errorCodeDebitBalance   = "debit"
	errorCodeAdjustItem     = "adjust_item"
	errorCodeSetField       = "set_field"
	errorCodeCreateEdge     = "create_edge"
	errorCodeActivateEdge   = "activate_edge"
	errorCodeGrantReward    = "grant_reward"
	errorCodePurge          = "purge"
	errorCodeTouchActivity  = "touch_activity"
	errorCodeSetCooldown    = "set_cooldown"
	errorCodeInvalidDoc     = "invalid_document"
	inventoryFieldTemplate  = "inventory.%s"
	cooldownsFieldTemplate  = "cooldowns.%s"
)

// Store implements economy.Store on a mongo database.
type Store struct {
	db *mongo.Database
}

// New returns a Store bound to a database handle.
func New(db *mongo.Database) *Store {
	return &Store{db: db}
}

// EnsureIndexes creates the indexes conditional updates rely on.
func (store *Store) EnsureIndexes(ctx context.Context) error {
	entryIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "kind", Value: 1}, {Key: "status", Value: 1}, {Key: "created_at", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}
	if _, err := store.db.Collection(collectionEntries).Indexes().CreateMany(ctx, entryIndexes); err != nil {
		return wrapStoreError(errorSubjectEntry, errorCodeEnsure, err)
	}
	referralIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "referrer_id", Value: 1}}},
	}
	if _, err := store.db.Collection(collectionReferrals).Indexes().CreateMany(ctx, referralIndexes); err != nil {
		return wrapStoreError(errorSubjectReferral, errorCodeEnsure, err)
	}
	auditIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: 1}}},
	}
	if _, err := store.db.Collection(collectionAudit).Indexes().CreateMany(ctx, auditIndexes); err != nil {
		return wrapStoreError(errorSubjectAudit, errorCodeEnsure, err)
	}
	outboxIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "delivered_at", Value: 1}, {Key: "created_at", Value: 1}}},
	}
	if _, err := store.db.Collection(collectionOutbox).Indexes().CreateMany(ctx, outboxIndexes); err != nil {
		return wrapStoreError(errorSubjectOutbox, errorCodeEnsure, err)
	}
	return nil
}

func (store *Store) EnsureAccount(ctx context.Context, userID economy.UserID, nowUnixUTC int64) (economy.Account, bool, error) {
	filter := bson.M{"_id": userID.String()}
	update := bson.M{"$setOnInsert": bson.M{
		"balance":        int64(0),
		"inventory":      bson.M{},
		"cooldowns":      bson.M{},
		"registered_at":  nowUnixUTC,
		"last_active_at": nowUnixUTC,
		"last_yield_day": "",
	}}
	result, err := store.db.Collection(collectionAccounts).UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return economy.Account{}, false, wrapStoreError(errorSubjectAccount, errorCodeEnsure, err)
	}
	account, err := store.GetAccount(ctx, userID)
	if err != nil {
		return economy.Account{}, false, err
	}
	return account, result.UpsertedCount > 0, nil
}

func (store *Store) GetAccount(ctx context.Context, userID economy.UserID) (economy.Account, error) {
	var doc accountDoc
	err := store.db.Collection(collectionAccounts).FindOne(ctx, bson.M{"_id": userID.String()}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return economy.Account{}, economy.ErrAccountNotFound
	}
	if err != nil {
		return economy.Account{}, wrapStoreError(errorSubjectAccount, errorCodeGet, err)
	}
	return mapAccount(doc)
}

func (store *Store) Credit(ctx context.Context, userID economy.UserID, amount economy.Amount) error {
	filter := bson.M{"_id": userID.String()}
	update := bson.M{"$inc": bson.M{"balance": amount.Int64()}}
	result, err := store.db.Collection(collectionAccounts).UpdateOne(ctx, filter, update)
	if err != nil {
		return wrapStoreError(errorSubjectAccount, errorCodeCreditBalance, err)
	}
	if result.MatchedCount == 0 {
		return economy.ErrAccountNotFound
	}
	return nil
}

func (store *Store) DebitIfEnough(ctx context.Context, userID economy.UserID, amount economy.Amount) error {
	filter := bson.M{"_id": userID.String(), "balance": bson.M{"$gte": amount.Int64()}}
	update := bson.M{"$inc": bson.M{"balance": -amount.Int64()}}
	result, err := store.db.Collection(collectionAccounts).UpdateOne(ctx, filter, update)
	if err != nil {
		return wrapStoreError(errorSubjectAccount, errorCodeDebitBalance, err)
	}
	if result.MatchedCount == 0 {
		return economy.ErrInsufficientBalance
	}
	return nil
}

func (store *Store) AdjustItem(ctx context.Context, userID economy.UserID, kind economy.ItemKind, delta int64) error {
	field := fmt.Sprintf(inventoryFieldTemplate, kind)
	filter := bson.M{"_id": userID.String()}
	if delta < 0 {
		filter[field] = bson.M{"$gte": -delta}
	}
	update := bson.M{"$inc": bson.M{field: delta}}
	result, err := store.db.Collection(collectionAccounts).UpdateOne(ctx, filter, update)
	if err != nil {
		return wrapStoreError(errorSubjectAccount, errorCodeAdjustItem, err)
	}
	if result.MatchedCount == 0 {
		if delta < 0 {
			return economy.ErrInsufficientItems
		}
		return economy.ErrAccountNotFound
	}
	return nil
}

func (store *Store) SetBalance(ctx context.Context, userID economy.UserID, balance economy.Amount) error {
	return store.setAccountField(ctx, userID, bson.M{"balance": balance.Int64()})
}

func (store *Store) SetItemCount(ctx context.Context, userID economy.UserID, kind economy.ItemKind, count int64) error {
	return store.setAccountField(ctx, userID, bson.M{fmt.Sprintf(inventoryFieldTemplate, kind): count})
}

func (store *Store) TouchActivity(ctx context.Context, userID economy.UserID, nowUnixUTC int64) error {
	filter := bson.M{"_id": userID.String()}
	update := bson.M{"$set": bson.M{"last_active_at": nowUnixUTC}}
	if _, err := store.db.Collection(collectionAccounts).UpdateOne(ctx, filter, update); err != nil {
		return wrapStoreError(errorSubjectAccount, errorCodeTouchActivity, err)
	}
	return nil
}

func (store *Store) SetCooldown(ctx context.Context, userID economy.UserID, activity string, untilUnixUTC int64) error {
	filter := bson.M{"_id": userID.String()}
	update := bson.M{"$set": bson.M{fmt.Sprintf(cooldownsFieldTemplate, activity): untilUnixUTC}}
	result, err := store.db.Collection(collectionAccounts).UpdateOne(ctx, filter, update)
	if err != nil {
		return wrapStoreError(errorSubjectAccount, errorCodeSetCooldown, err)
	}
	if result.MatchedCount == 0 {
		return economy.ErrAccountNotFound
	}
	return nil
}

func (store *Store) ClaimYieldDay(ctx context.Context, userID economy.UserID, day string) (bool, error) {
	filter := bson.M{"_id": userID.String(), "last_yield_day": bson.M{"$ne": day}}
	update := bson.M{"$set": bson.M{"last_yield_day": day}}
	result, err := store.db.Collection(collectionAccounts).UpdateOne(ctx, filter, update)
	if err != nil {
		return false, wrapStoreError(errorSubjectAccount, errorCodeClaimYieldDay, err)
	}
	return result.ModifiedCount > 0, nil
}

func (store *Store) ReleaseYieldDay(ctx context.Context, userID economy.UserID, day string) error {
	filter := bson.M{"_id": userID.String(), "last_yield_day": day}
	update := bson.M{"$set": bson.M{"last_yield_day": ""}}
	if _, err := store.db.Collection(collectionAccounts).UpdateOne(ctx, filter, update); err != nil {
		return wrapStoreError(errorSubjectAccount, errorCodeClaimYieldDay, err)
	}
	return nil
}

func (store *Store) ClearItem(ctx context.Context, userID economy.UserID, kind economy.ItemKind) (bool, error) {
	field := fmt.Sprintf(inventoryFieldTemplate, kind)
	filter := bson.M{"_id": userID.String(), field: bson.M{"$gt": 0}}
	update := bson.M{"$set": bson.M{field: int64(0)}}
	result, err := store.db.Collection(collectionAccounts).UpdateOne(ctx, filter, update)
	if err != nil {
		return false, wrapStoreError(errorSubjectAccount, errorCodeClearItem, err)
	}
	return result.ModifiedCount > 0, nil
}

func (store *Store) ListAccounts(ctx context.Context) ([]economy.Account, error) {
	cursor, err := store.db.Collection(collectionAccounts).Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, wrapStoreError(errorSubjectAccount, errorCodeList, err)
	}
	defer cursor.Close(ctx)
	var accounts []economy.Account
	for cursor.Next(ctx) {
		var doc accountDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, wrapStoreError(errorSubjectAccount, errorCodeDecode, err)
		}
		account, err := mapAccount(doc)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	if err := cursor.Err(); err != nil {
		return nil, wrapStoreError(errorSubjectAccount, errorCodeList, err)
	}
	return accounts, nil
}

func (store *Store) InsertEntry(ctx context.Context, entry economy.Entry) error {
	doc := entryDoc{
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
	if _, err := store.db.Collection(collectionEntries).InsertOne(ctx, doc); err != nil {
		return wrapStoreError(errorSubjectEntry, errorCodeInsert, err)
	}
	return nil
}

func (store *Store) GetEntry(ctx context.Context, entryID economy.EntryID) (economy.Entry, error) {
	var doc entryDoc
	err := store.db.Collection(collectionEntries).FindOne(ctx, bson.M{"_id": entryID.String()}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return economy.Entry{}, economy.ErrEntryNotFound
	}
	if err != nil {
		return economy.Entry{}, wrapStoreError(errorSubjectEntry, errorCodeGet, err)
	}
	return mapEntry(doc)
}

func (store *Store) ListEntries(ctx context.Context, kind economy.EntryKind, status economy.EntryStatus, limit int) ([]economy.Entry, error) {
	filter := bson.M{"kind": kind.String(), "status": status.String()}
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	if limit > 0 {
		findOptions = findOptions.SetLimit(int64(limit))
	}
	cursor, err := store.db.Collection(collectionEntries).Find(ctx, filter, findOptions)
	if err != nil {
		return nil, wrapStoreError(errorSubjectEntry, errorCodeList, err)
	}
	defer cursor.Close(ctx)
	var entries []economy.Entry
	for cursor.Next(ctx) {
		var doc entryDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, wrapStoreError(errorSubjectEntry, errorCodeDecode, err)
		}
		entry, err := mapEntry(doc)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := cursor.Err(); err != nil {
		return nil, wrapStoreError(errorSubjectEntry, errorCodeList, err)
	}
	return entries, nil
}

func (store *Store) UpdateEntryStatus(ctx context.Context, entryID economy.EntryID, from economy.EntryStatus, to economy.EntryStatus, resolvedBy string, resolvedUnixUTC int64) error {
	filter := bson.M{"_id": entryID.String(), "status": from.String()}
	update := bson.M{"$set": bson.M{
		"status":      to.String(),
		"resolved_by": resolvedBy,
		"resolved_at": resolvedUnixUTC,
	}}
	result, err := store.db.Collection(collectionEntries).UpdateOne(ctx, filter, update)
	if err != nil {
		return wrapStoreError(errorSubjectEntry, errorCodeUpdateStatus, err)
	}
	if result.MatchedCount > 0 {
		return nil
	}
	// Distinguish a lost status race from a missing entry.
	count, err := store.db.Collection(collectionEntries).CountDocuments(ctx, bson.M{"_id": entryID.String()})
	if err != nil {
		return wrapStoreError(errorSubjectEntry, errorCodeUpdateStatus, err)
	}
	if count == 0 {
		return economy.ErrEntryNotFound
	}
	return economy.ErrEntryAlreadyResolved
}

func (store *Store) CreateReferralEdge(ctx context.Context, edge economy.ReferralEdge) (bool, error) {
	doc := referralDoc{
		ReferredID: edge.ReferredID.String(),
		ReferrerID: edge.ReferrerID.String(),
		Active:     edge.Active,
		CreatedAt:  edge.CreatedUnixUTC,
	}
	_, err := store.db.Collection(collectionReferrals).InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return false, nil
	}
	if err != nil {
		return false, wrapStoreError(errorSubjectReferral, errorCodeCreateEdge, err)
	}
	return true, nil
}

func (store *Store) GetReferralEdgeByReferred(ctx context.Context, referredID economy.UserID) (economy.ReferralEdge, bool, error) {
	var doc referralDoc
	err := store.db.Collection(collectionReferrals).FindOne(ctx, bson.M{"_id": referredID.String()}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return economy.ReferralEdge{}, false, nil
	}
	if err != nil {
		return economy.ReferralEdge{}, false, wrapStoreError(errorSubjectReferral, errorCodeGet, err)
	}
	edge, err := mapReferral(doc)
	if err != nil {
		return economy.ReferralEdge{}, false, err
	}
	return edge, true, nil
}

func (store *Store) CountReferrals(ctx context.Context, referrerID economy.UserID) (int64, error) {
	count, err := store.db.Collection(collectionReferrals).CountDocuments(ctx, bson.M{"referrer_id": referrerID.String()})
	if err != nil {
		return 0, wrapStoreError(errorSubjectReferral, errorCodeCount, err)
	}
	return count, nil
}

func (store *Store) CountActiveReferrals(ctx context.Context, referrerID economy.UserID) (int64, error) {
	filter := bson.M{"referrer_id": referrerID.String(), "active": true}
	count, err := store.db.Collection(collectionReferrals).CountDocuments(ctx, filter)
	if err != nil {
		return 0, wrapStoreError(errorSubjectReferral, errorCodeCount, err)
	}
	return count, nil
}

func (store *Store) ActivateReferral(ctx context.Context, referredID economy.UserID) (bool, error) {
	filter := bson.M{"_id": referredID.String(), "active": false}
	update := bson.M{"$set": bson.M{"active": true}}
	result, err := store.db.Collection(collectionReferrals).UpdateOne(ctx, filter, update)
	if err != nil {
		return false, wrapStoreError(errorSubjectReferral, errorCodeActivateEdge, err)
	}
	return result.ModifiedCount > 0, nil
}

func (store *Store) GrantReferralReward(ctx context.Context, referredID economy.UserID) (bool, error) {
	filter := bson.M{"_id": referredID.String(), "reward_granted": false}
	update := bson.M{"$set": bson.M{"reward_granted": true}}
	result, err := store.db.Collection(collectionReferrals).UpdateOne(ctx, filter, update)
	if err != nil {
		return false, wrapStoreError(errorSubjectReferral, errorCodeGrantReward, err)
	}
	return result.ModifiedCount > 0, nil
}

func (store *Store) RevokeReferralReward(ctx context.Context, referredID economy.UserID) error {
	filter := bson.M{"_id": referredID.String()}
	update := bson.M{"$set": bson.M{"reward_granted": false}}
	if _, err := store.db.Collection(collectionReferrals).UpdateOne(ctx, filter, update); err != nil {
		return wrapStoreError(errorSubjectReferral, errorCodeGrantReward, err)
	}
	return nil
}

func (store *Store) AppendAudit(ctx context.Context, entry economy.AuditEntry) error {
	doc := auditDoc{
		Actor:     entry.Actor,
		Action:    entry.Action,
		Target:    entry.Target,
		Detail:    entry.Detail,
		CreatedAt: entry.CreatedUnixUTC,
	}
	if _, err := store.db.Collection(collectionAudit).InsertOne(ctx, doc); err != nil {
		return wrapStoreError(errorSubjectAudit, errorCodeInsert, err)
	}
	return nil
}

func (store *Store) ListAudit(ctx context.Context, limit int) ([]economy.AuditEntry, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		findOptions = findOptions.SetLimit(int64(limit))
	}
	cursor, err := store.db.Collection(collectionAudit).Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, wrapStoreError(errorSubjectAudit, errorCodeList, err)
	}
	defer cursor.Close(ctx)
	var entries []economy.AuditEntry
	for cursor.Next(ctx) {
		var doc auditDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, wrapStoreError(errorSubjectAudit, errorCodeDecode, err)
		}
		entries = append(entries, economy.AuditEntry{
			Actor:          doc.Actor,
			Action:         doc.Action,
			Target:         doc.Target,
			Detail:         doc.Detail,
			CreatedUnixUTC: doc.CreatedAt,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, wrapStoreError(errorSubjectAudit, errorCodeList, err)
	}
	return entries, nil
}

func (store *Store) PurgeAuditBefore(ctx context.Context, cutoffUnixUTC int64) (int64, error) {
	filter := bson.M{"created_at": bson.M{"$lt": cutoffUnixUTC}}
	result, err := store.db.Collection(collectionAudit).DeleteMany(ctx, filter)
	if err != nil {
		return 0, wrapStoreError(errorSubjectAudit, errorCodePurge, err)
	}
	return result.DeletedCount, nil
}

func (store *Store) AppendEvent(ctx context.Context, event economy.OutboxEvent) error {
	doc := eventDoc{
		EventID:     event.EventID,
		Kind:        event.Kind,
		UserID:      event.UserID.String(),
		Message:     event.Message,
		CreatedAt:   event.CreatedUnixUTC,
		DeliveredAt: event.DeliveredUnixUTC,
	}
	if _, err := store.db.Collection(collectionOutbox).InsertOne(ctx, doc); err != nil {
		return wrapStoreError(errorSubjectOutbox, errorCodeInsert, err)
	}
	return nil
}

func (store *Store) ListUndeliveredEvents(ctx context.Context, limit int) ([]economy.OutboxEvent, error) {
	filter := bson.M{"delivered_at": int64(0)}
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	if limit > 0 {
		findOptions = findOptions.SetLimit(int64(limit))
	}
	cursor, err := store.db.Collection(collectionOutbox).Find(ctx, filter, findOptions)
	if err != nil {
		return nil, wrapStoreError(errorSubjectOutbox, errorCodeList, err)
	}
	defer cursor.Close(ctx)
	var events []economy.OutboxEvent
	for cursor.Next(ctx) {
		var doc eventDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, wrapStoreError(errorSubjectOutbox, errorCodeDecode, err)
		}
		userID, err := economy.NewUserID(doc.UserID)
		if err != nil {
			return nil, wrapStoreError(errorSubjectOutbox, errorCodeInvalidDoc, err)
		}
		events = append(events, economy.OutboxEvent{
			EventID:          doc.EventID,
			Kind:             doc.Kind,
			UserID:           userID,
			Message:          doc.Message,
			CreatedUnixUTC:   doc.CreatedAt,
			DeliveredUnixUTC: doc.DeliveredAt,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, wrapStoreError(errorSubjectOutbox, errorCodeList, err)
	}
	return events, nil
}

func (store *Store) MarkEventDelivered(ctx context.Context, eventID string, nowUnixUTC int64) error {
	filter := bson.M{"_id": eventID}
	update := bson.M{"$set": bson.M{"delivered_at": nowUnixUTC}}
	result, err := store.db.Collection(collectionOutbox).UpdateOne(ctx, filter, update)
	if err != nil {
		return wrapStoreError(errorSubjectOutbox, errorCodeMarkDelivered, err)
	}
	if result.MatchedCount == 0 {
		return economy.ErrEntryNotFound
	}
	return nil
}

func (store *Store) setAccountField(ctx context.Context, userID economy.UserID, fields bson.M) error {
	filter := bson.M{"_id": userID.String()}
	result, err := store.db.Collection(collectionAccounts).UpdateOne(ctx, filter, bson.M{"$set": fields})
	if err != nil {
		return wrapStoreError(errorSubjectAccount, errorCodeSetField, err)
	}
	if result.MatchedCount == 0 {
		return economy.ErrAccountNotFound
	}
	return nil
}

func mapAccount(doc accountDoc) (economy.Account, error) {
	userID, err := economy.NewUserID(doc.UserID)
	if err != nil {
		return economy.Account{}, wrapStoreError(errorSubjectAccount, errorCodeInvalidDoc, err)
	}
	balance, err := economy.NewAmount(doc.Balance)
	if err != nil {
		return economy.Account{}, wrapStoreError(errorSubjectAccount, errorCodeInvalidDoc, err)
	}
	inventory := make(map[economy.ItemKind]int64, len(doc.Inventory))
	for kind, count := range doc.Inventory {
		inventory[economy.ItemKind(kind)] = count
	}
	return economy.Account{
		UserID:            userID,
		Balance:           balance,
		Inventory:         inventory,
		Cooldowns:         doc.Cooldowns,
		RegisteredUnixUTC: doc.Registered,
		LastActiveUnixUTC: doc.LastActive,
		LastYieldDay:      doc.LastYieldDay,
	}, nil
}

func mapEntry(doc entryDoc) (economy.Entry, error) {
	entryID, err := economy.NewEntryID(doc.EntryID)
	if err != nil {
		return economy.Entry{}, wrapStoreError(errorSubjectEntry, errorCodeInvalidDoc, err)
	}
	userID, err := economy.NewUserID(doc.UserID)
	if err != nil {
		return economy.Entry{}, wrapStoreError(errorSubjectEntry, errorCodeInvalidDoc, err)
	}
	kind, err := economy.ParseEntryKind(doc.Kind)
	if err != nil {
		return economy.Entry{}, wrapStoreError(errorSubjectEntry, errorCodeInvalidDoc, err)
	}
	status, err := economy.ParseEntryStatus(doc.Status)
	if err != nil {
		return economy.Entry{}, wrapStoreError(errorSubjectEntry, errorCodeInvalidDoc, err)
	}
	amount, err := economy.NewAmount(doc.Amount)
	if err != nil {
		return economy.Entry{}, wrapStoreError(errorSubjectEntry, errorCodeInvalidDoc, err)
	}
	fee, err := economy.NewAmount(doc.Fee)
	if err != nil {
		return economy.Entry{}, wrapStoreError(errorSubjectEntry, errorCodeInvalidDoc, err)
	}
	return economy.Entry{
		EntryID:         entryID,
		UserID:          userID,
		Kind:            kind,
		Amount:          amount,
		Fee:             fee,
		Network:         doc.Network,
		ProofHash:       doc.ProofHash,
		Address:         doc.Address,
		Reason:          doc.Reason,
		Status:          status,
		CreatedUnixUTC:  doc.CreatedAt,
		ResolvedUnixUTC: doc.ResolvedAt,
		ResolvedBy:      doc.ResolvedBy,
	}, nil
}

func mapReferral(doc referralDoc) (economy.ReferralEdge, error) {
	referredID, err := economy.NewUserID(doc.ReferredID)
	if err != nil {
		return economy.ReferralEdge{}, wrapStoreError(errorSubjectReferral, errorCodeInvalidDoc, err)
	}
	referrerID, err := economy.NewUserID(doc.ReferrerID)
	if err != nil {
		return economy.ReferralEdge{}, wrapStoreError(errorSubjectReferral, errorCodeInvalidDoc, err)
	}
	return economy.ReferralEdge{
		ReferrerID:     referrerID,
		ReferredID:     referredID,
		Active:         doc.Active,
		RewardGranted:  doc.RewardGranted,
		CreatedUnixUTC: doc.CreatedAt,
	}, nil
}

func wrapStoreError(subject string, code string, err error) error {
	return economy.WrapError(errorOperationStore, subject, code, fmt.Errorf("%w: %v", economy.ErrStoreUnavailable, err))
}

var _ economy.Store = (*Store)(nil)
