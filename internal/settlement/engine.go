// Package settlement confirms physical handovers: it drives the terminal
// claim/item transition, applies the karma policy, and appends the
// immutable reputation ledger entry.
package settlement

import (
	"log"
	"time"

	"campusfinder/backend/internal/apperr"
	"campusfinder/backend/internal/config"
	"campusfinder/backend/internal/models"
)

// Store is the persistence slice the engine needs.
type Store interface {
	GetClaimByID(id uint) (*models.Claim, error)
	CompleteClaim(claimID, itemID uint, verifiedBy string, at time.Time) error
	AddReputation(userID string, delta int) error
	CreateReputationEvent(event *models.ReputationEvent) error
}

// Locker serializes settlements per finder. Lock failures are advisory:
// the engine proceeds without serialization and logs.
type Locker interface {
	TryAcquireSettlementLock(finderID string, ttl time.Duration) (bool, error)
	ReleaseSettlementLock(finderID string) error
}

// Notifier receives the settled-handover event. Fire-and-forget.
type Notifier interface {
	HandoverSettled(finderID string, item *models.Item, claim *models.Claim, points int)
}

// Engine settles approved claims.
type Engine struct {
	Storage  Store
	Locks    Locker
	Policy   KarmaPolicy
	Notifier Notifier

	// Now is the clock, overridable in tests.
	Now func() time.Time
}

func NewEngine(s Store, locks Locker, policy KarmaPolicy, n Notifier) *Engine {
	return &Engine{Storage: s, Locks: locks, Policy: policy, Notifier: n, Now: time.Now}
}

// ConfirmHandover records that the physical handover of the claimed item
// took place at the counter, and returns the karma awarded to the finder.
//
// Only authority or admin may confirm: a staffed counter triggers
// confirmation, not a self-report by either party, which would be trivially
// gameable. The claim must be approved; pending, rejected, and completed
// claims are refused with no mutation.
//
// Permission and precondition failures abort synchronously. Once the
// claim/item transition has committed, everything downstream (karma scans,
// point increment, ledger append, notification) is advisory: failures are
// logged, degrade the award to zero where applicable, and never roll back
// the handover.
func (e *Engine) ConfirmHandover(actor *models.User, claimID uint) (int, error) {
	if !actor.IsAuthority() {
		return 0, apperr.New(apperr.Forbidden, "Unauthorized: Only Counter Staff can confirm handover.")
	}

	claim, err := e.Storage.GetClaimByID(claimID)
	if err != nil {
		return 0, err
	}
	if claim == nil {
		return 0, apperr.New(apperr.NotFound, "Claim not found")
	}
	if claim.Status != models.ClaimStatusApproved {
		return 0, apperr.New(apperr.InvalidState, "Claim must be approved by the owner first")
	}
	item := claim.Item
	if item == nil {
		return 0, apperr.Newf(apperr.Internal, "claim %d has no item", claimID)
	}

	now := e.Now()
	if err := e.Storage.CompleteClaim(claimID, claim.ItemID, actor.ID, now); err != nil {
		return 0, err
	}

	claim.Status = models.ClaimStatusCompleted
	claim.VerifiedByUserID = &actor.ID
	claim.VerifiedAt = &now

	points := e.settleKarma(claim, item, now)
	e.Notifier.HandoverSettled(item.UserID, item, claim, points)
	return points, nil
}

// settleKarma runs the policy and bookkeeping under the per-finder advisory
// lock. The lock closes the window where two concurrent settlements for one
// finder both observe "count < limit"; if it cannot be taken the engine
// proceeds unserialized, accepting the documented race.
func (e *Engine) settleKarma(claim *models.Claim, item *models.Item, now time.Time) int {
	finderID := item.UserID

	locked, err := e.Locks.TryAcquireSettlementLock(finderID, config.SettlementLockTTL)
	if err != nil {
		log.Printf("ERROR: Settlement lock unavailable for finder %s, proceeding unserialized: %v", finderID, err)
	} else if !locked {
		log.Printf("Warning: Concurrent settlement in flight for finder %s, proceeding unserialized", finderID)
	} else {
		defer func() {
			if err := e.Locks.ReleaseSettlementLock(finderID); err != nil {
				log.Printf("ERROR: Failed to release settlement lock for finder %s: %v", finderID, err)
			}
		}()
	}

	points, reason := e.Policy.Evaluate(claim, item, now)

	if points > 0 {
		if err := e.Storage.AddReputation(finderID, points); err != nil {
			log.Printf("ERROR: Karma increment failed for finder %s: %v", finderID, err)
			points = 0
			reason += " (No points: karma update failed)"
		}
	}

	// The event row is the audit trail and is written even for a zero
	// award, so later reconstruction and fraud review see every handover.
	event := &models.ReputationEvent{
		UserID:       finderID,
		ChangeAmount: points,
		Reason:       reason,
		EventType:    models.EventItemReturned,
	}
	if err := e.Storage.CreateReputationEvent(event); err != nil {
		log.Printf("ERROR: Reputation event append failed for finder %s: %v", finderID, err)
	}

	return points
}
