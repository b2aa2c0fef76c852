package economy

const (
	nanotonsPerTon  int64 = 1_000_000_000
	secondsPerDay   int64 = 86_400
	dayBucketLayout       = "2006-01-02"

	operationEnsureAccount     = "ensure_account"
	operationRequestDeposit    = "request_deposit"
	operationApproveDeposit    = "approve_deposit"
	operationRejectDeposit     = "reject_deposit"
	operationRequestWithdrawal = "request_withdrawal"
	operationApproveWithdrawal = "approve_withdrawal"
	operationRejectWithdrawal  = "reject_withdrawal"
	operationCancelWithdrawal  = "cancel_withdrawal"
	operationPurchase          = "purchase"
	operationYieldSweep        = "yield_sweep"
	operationExpirySweep       = "expiry_sweep"
	operationEditAccount       = "edit_account"
	operationPurgeAudit        = "purge_audit"

	operationStatusOK    = "ok"
	operationStatusError = "error"

	auditActionAccountCreated     = "account_created"
	auditActionDepositRequested   = "deposit_requested"
	auditActionDepositApproved    = "deposit_approved"
	auditActionDepositRejected    = "deposit_rejected"
	auditActionWithdrawRequested  = "withdrawal_requested"
	auditActionWithdrawApproved   = "withdrawal_approved"
	auditActionWithdrawRejected   = "withdrawal_rejected"
	auditActionWithdrawCancelled  = "withdrawal_cancelled"
	auditActionPurchase           = "purchase"
	auditActionYieldCredited      = "yield_credited"
	auditActionItemExpired        = "item_expired"
	auditActionReferralMilestone  = "referral_milestone"
	auditActionReferralActivation = "referral_activation"
	auditActionAccountEdited      = "account_edited"
	auditActionAuditPurged        = "audit_purged"

	eventDepositApproved     = "deposit_approved"
	eventDepositRejected     = "deposit_rejected"
	eventWithdrawalApproved  = "withdrawal_approved"
	eventWithdrawalRejected  = "withdrawal_rejected"
	eventWithdrawalCancelled = "withdrawal_cancelled"
	eventYieldCredited       = "yield_credited"
	eventItemExpired         = "item_expired"
	eventReferralReward      = "referral_reward"

	activityWithdrawalRequest = "withdrawal_request"

	referralMilestoneStep = 10
)
