package settlement

import (
	"fmt"
	"log"
	"time"

	"campusfinder/backend/internal/config"
	"campusfinder/backend/internal/models"
)

// KarmaPolicy decides whether and how much karma the finder earns for a
// settled handover. Two policies exist because two confirm-handover
// behaviors shipped historically; which one is production is an open
// product question, so both live behind this interface.
type KarmaPolicy interface {
	Evaluate(claim *models.Claim, item *models.Item, now time.Time) (points int, reason string)
}

// PolicyStore is the persistence slice the anti-collusion policy scans.
type PolicyStore interface {
	CountRecentPairCompletions(claimantID, finderID string, since time.Time, excludeClaimID uint) (int64, error)
	CountReputationEvents(userID, eventType string, since time.Time) (int64, error)
}

// AntiCollusionPolicy awards a 25-point base and zeroes it under two
// heuristics:
//
//   - Pair-limiting: a prior completed handover between the same finder and
//     claimant inside a 30-day window earns nothing. Two colluding accounts
//     cannot farm karma by "returning" items to each other.
//   - Frequency-limiting: at most 3 rewarded returns per finder per 24
//     hours. Caps karma velocity even for legitimate but suspiciously fast
//     activity.
//
// Both scans are point-in-time reads; the engine serializes settlements per
// finder with an advisory lock, but the caps stay best-effort if that lock
// is unavailable.
type AntiCollusionPolicy struct {
	Storage PolicyStore
}

func NewAntiCollusionPolicy(s PolicyStore) *AntiCollusionPolicy {
	return &AntiCollusionPolicy{Storage: s}
}

func baseReason(item *models.Item) string {
	return fmt.Sprintf("Item %q returned to owner", item.Title)
}

// Evaluate never fails: a scan error degrades to a zero award with the
// denial recorded in the reason, since the physical handover has already
// happened and must not be reversed by bookkeeping.
func (p *AntiCollusionPolicy) Evaluate(claim *models.Claim, item *models.Item, now time.Time) (int, string) {
	points := config.BaseHandoverAward
	reason := baseReason(item)

	finderID := item.UserID

	pairCutoff := now.Add(-config.PairLimitWindow)
	pairCount, err := p.Storage.CountRecentPairCompletions(claim.ClaimantID, finderID, pairCutoff, claim.ID)
	if err != nil {
		log.Printf("ERROR: Pair-limit check failed for claim %d: %v", claim.ID, err)
		return 0, reason + " (No points: karma check failed)"
	}
	if pairCount > 0 {
		return 0, reason + " (No points: Repeat transaction with same user within 30 days)"
	}

	dailyCutoff := now.Add(-config.DailyRewardWindow)
	eventCount, err := p.Storage.CountReputationEvents(finderID, models.EventItemReturned, dailyCutoff)
	if err != nil {
		log.Printf("ERROR: Frequency-limit check failed for finder %s: %v", finderID, err)
		return 0, reason + " (No points: karma check failed)"
	}
	if eventCount >= config.DailyRewardLimit {
		return 0, reason + " (No points: Daily limit of 3 rewards reached)"
	}

	return points, reason
}

// FlatPolicy is the legacy behavior: a flat 50-point award with no fraud
// checks. Kept selectable until product decides which policy is canonical.
type FlatPolicy struct{}

func (FlatPolicy) Evaluate(claim *models.Claim, item *models.Item, now time.Time) (int, string) {
	return config.LegacyFlatAward, baseReason(item)
}
