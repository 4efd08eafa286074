// Package notify writes user-facing notification rows. Delivery is a
// polling client's concern; every emit here is fire-and-forget and a failed
// insert never fails the operation that triggered it.
package notify

import (
	"fmt"
	"log"

	"campusfinder/backend/internal/models"
)

// Store is the persistence slice the emitter needs.
type Store interface {
	CreateNotification(n *models.Notification) error
}

// Emitter creates notification records for lifecycle events.
type Emitter struct {
	Storage Store
}

func NewEmitter(s Store) *Emitter {
	return &Emitter{Storage: s}
}

func (e *Emitter) emit(n *models.Notification) {
	if err := e.Storage.CreateNotification(n); err != nil {
		log.Printf("ERROR: Notification insert failed for user %s (%s): %v", n.UserID, n.Type, err)
	}
}

// ClaimReceived tells the finder a new claim landed on their item.
func (e *Emitter) ClaimReceived(item *models.Item, claim *models.Claim) {
	e.emit(&models.Notification{
		UserID:  item.UserID,
		Title:   "New Claim Received",
		Message: fmt.Sprintf("Someone has claimed the item %q. Review their proof now.", item.Title),
		Type:    models.NotifyClaimReceived,
		ItemID:  &item.ID,
		ClaimID: &claim.ID,
	})
}

// ClaimApproved tells the claimant their claim was approved.
func (e *Emitter) ClaimApproved(claim *models.Claim) {
	e.emit(&models.Notification{
		UserID:  claim.ClaimantID,
		Title:   "Claim Approved!",
		Message: fmt.Sprintf("Your claim for item #%d has been approved! Connect with the finder.", claim.ItemID),
		Type:    models.NotifyClaimApproved,
		ItemID:  &claim.ItemID,
		ClaimID: &claim.ID,
	})
}

// ClaimRejected tells the claimant their claim was rejected.
func (e *Emitter) ClaimRejected(claim *models.Claim) {
	e.emit(&models.Notification{
		UserID:  claim.ClaimantID,
		Title:   "Claim Rejected",
		Message: fmt.Sprintf("Your claim for item #%d was rejected.", claim.ItemID),
		Type:    models.NotifyClaimRejected,
		ItemID:  &claim.ItemID,
		ClaimID: &claim.ID,
	})
}

// HandoverSettled tells the finder the handover went through, with or
// without a karma payout.
func (e *Emitter) HandoverSettled(finderID string, item *models.Item, claim *models.Claim, points int) {
	n := &models.Notification{
		UserID:  finderID,
		ItemID:  &item.ID,
		ClaimID: &claim.ID,
	}
	if points > 0 {
		n.Title = fmt.Sprintf("Karma Awarded! (+%d)", points)
		n.Message = fmt.Sprintf("The item %q was successfully handed over. You earned %d Karma points!", item.Title, points)
		n.Type = models.NotifyKarmaEarned
	} else {
		n.Title = "Item Returned"
		n.Message = fmt.Sprintf("The item %q was successfully handed over. (Daily/User limit reached for points)", item.Title)
		n.Type = models.NotifyInfo
	}
	e.emit(n)
}
