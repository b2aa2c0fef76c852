package mongostore

// accountDoc mirrors the accounts collection. The user id is the document
// id, so every balance/inventory mutation is a single-document update.
type accountDoc struct {
	UserID       string           `bson:"_id"`
	Balance      int64            `bson:"balance"`
	Inventory    map[string]int64 `bson:"inventory"`
	Registered   int64            `bson:"registered_at"`
	LastActive   int64            `bson:"last_active_at"`
	Cooldowns    map[string]int64 `bson:"cooldowns"`
	LastYieldDay string           `bson:"last_yield_day"`
}

// entryDoc mirrors the entries collection.
type entryDoc struct {
	EntryID    string `bson:"_id"`
	UserID     string `bson:"user_id"`
	Kind       string `bson:"kind"`
	Amount     int64  `bson:"amount"`
	Fee        int64  `bson:"fee"`
	Network    string `bson:"network,omitempty"`
	ProofHash  string `bson:"proof_hash,omitempty"`
	Address    string `bson:"address,omitempty"`
	Reason     string `bson:"reason,omitempty"`
	Status     string `bson:"status"`
	CreatedAt  int64  `bson:"created_at"`
	ResolvedAt int64  `bson:"resolved_at"`
	ResolvedBy string `bson:"resolved_by"`
}

// referralDoc mirrors the referrals collection, keyed by the referred user.
type referralDoc struct {
	ReferredID    string `bson:"_id"`
	ReferrerID    string `bson:"referrer_id"`
	Active        bool   `bson:"active"`
	RewardGranted bool   `bson:"reward_granted"`
	CreatedAt     int64  `bson:"created_at"`
}

// auditDoc mirrors the audit collection.
type auditDoc struct {
	Actor     string `bson:"actor"`
	Action    string `bson:"action"`
	Target    string `bson:"target,omitempty"`
	Detail    string `bson:"detail,omitempty"`
	CreatedAt int64  `bson:"created_at"`
}

// eventDoc mirrors the outbox collection.
type eventDoc struct {
	EventID     string `bson:"_id"`
	Kind        string `bson:"kind"`
	UserID      string `bson:"user_id"`
	Message     string `bson:"message"`
	CreatedAt   int64  `bson:"created_at"`
	DeliveredAt int64  `bson:"delivered_at"`
}
