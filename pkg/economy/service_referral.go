package economy

import (
	"context"
	"fmt"
)

// CountReferrals returns the number of recorded referrals for a referrer.
func (service *Service) CountReferrals(ctx context.Context, referrerID UserID) (int64, error) {
	return service.store.CountReferrals(ctx, referrerID)
}

// CountActiveReferrals returns referrals that made a qualifying deposit.
func (service *Service) CountActiveReferrals(ctx context.Context, referrerID UserID) (int64, error) {
	return service.store.CountActiveReferrals(ctx, referrerID)
}

// registerReferral records the edge carried by a start token. The unique
// referrer/referred pair makes re-registration a no-op, so the milestone
// check runs at most once per referred account.
func (service *Service) registerReferral(ctx context.Context, referredID UserID, referrerToken string, nowUnixUTC int64) error {
	if referrerToken == "" {
		return nil
	}
	referrerID, err := NewUserID(referrerToken)
	if err != nil || referrerID == referredID {
		// Malformed or self-referral tokens are dropped silently.
		return nil
	}
	created, err := service.store.CreateReferralEdge(ctx, ReferralEdge{
		ReferrerID:     referrerID,
		ReferredID:     referredID,
		CreatedUnixUTC: nowUnixUTC,
	})
	if err != nil {
		return err
	}
	if !created {
		return nil
	}
	count, err := service.store.CountReferrals(ctx, referrerID)
	if err != nil {
		return err
	}
	if count%referralMilestoneStep != 0 {
		return nil
	}
	if err := service.store.AdjustItem(ctx, referrerID, referralMilestoneReward, 1); err != nil {
		return err
	}
	service.audit(ctx, referrerID.String(), auditActionReferralMilestone, referredID.String(),
		fmt.Sprintf("count=%d reward=%s", count, referralMilestoneReward))
	service.appendEvent(ctx, eventReferralReward, referrerID,
		fmt.Sprintf("¡%d invocadores reclutados! Recibiste un %s.", count, referralMilestoneReward))
	return nil
}

// activateReferralForDeposit flips the referred account's edge to active on
// its first completed deposit and grants the referrer the activation
// reward. Both flags are checked-and-set atomically, so a reprocessed
// activation grants nothing.
func (service *Service) activateReferralForDeposit(ctx context.Context, referredID UserID) error {
	edge, found, err := service.store.GetReferralEdgeByReferred(ctx, referredID)
	if err != nil {
		return err
	}
	if !found {
		return nil
	}
	if !edge.Active {
		if _, err := service.store.ActivateReferral(ctx, referredID); err != nil {
			return err
		}
	}
	granted, err := service.store.GrantReferralReward(ctx, referredID)
	if err != nil {
		return err
	}
	if !granted {
		return nil
	}
	if err := service.store.AdjustItem(ctx, edge.ReferrerID, referralActivationReward, 1); err != nil {
		// Clear the flag so a reprocessed activation grants the reward.
		if revertErr := service.store.RevokeReferralReward(ctx, referredID); revertErr != nil {
			return WrapError(operationApproveDeposit, "referral", "revert_failed", revertErr)
		}
		return err
	}
	service.audit(ctx, edge.ReferrerID.String(), auditActionReferralActivation, referredID.String(),
		fmt.Sprintf("reward=%s", referralActivationReward))
	service.appendEvent(ctx, eventReferralReward, edge.ReferrerID,
		fmt.Sprintf("Tu invocador %s activó su cuenta. Recibiste un %s.", referredID, referralActivationReward))
	return nil
}
