// Package claims implements the claim lifecycle: submission against found
// items, approve/reject decisions, and the item-status coupling that goes
// with them.
//
// State machine per claim:
//
//	(none) --submit--> pending --approve--> approved --confirm--> completed
//	                      |--reject------> rejected
package claims

import (
	"time"

	"campusfinder/backend/internal/apperr"
	"campusfinder/backend/internal/models"
)

// Store is the persistence slice the lifecycle manager needs.
type Store interface {
	GetItemByID(id uint) (*models.Item, error)
	UpdateItemStatus(id uint, status string) error
	CreateClaim(claim *models.Claim) error
	GetClaimByID(id uint) (*models.Claim, error)
	FindPendingClaim(itemID uint, claimantID string) (*models.Claim, error)
	FindClaimByItemAndClaimant(itemID uint, claimantID string) (*models.Claim, error)
	ListClaimsForItem(itemID uint) ([]models.Claim, error)
	ListPendingClaims() ([]models.Claim, error)
	UpdateClaimReview(claimID uint, status, verifiedBy, notes string, at time.Time) error
	GetUserByID(id string) (*models.User, error)
}

// Notifier receives lifecycle events. Implementations must be fire-and-forget.
type Notifier interface {
	ClaimReceived(item *models.Item, claim *models.Claim)
	ClaimApproved(claim *models.Claim)
	ClaimRejected(claim *models.Claim)
}

// Service manages claim state transitions.
type Service struct {
	Storage  Store
	Notifier Notifier

	// Now is the clock, overridable in tests.
	Now func() time.Time
}

func NewService(s Store, n Notifier) *Service {
	return &Service{Storage: s, Notifier: n, Now: time.Now}
}

// SubmitClaim creates a pending claim by claimant on the given found item.
//
// Precondition failures are distinguished for caller diagnostics: wrong item
// type, item already claimed/returned, self-claim, and duplicate pending
// claim each carry their own reason. The duplicate check is backed by a
// partial unique index, so a concurrent duplicate submission loses at insert
// time rather than slipping past the read.
func (s *Service) SubmitClaim(claimant *models.User, itemID uint, proofDescription, proofImageURL string) (*models.Claim, error) {
	if proofDescription == "" {
		return nil, apperr.New(apperr.Validation, "Proof description is required")
	}

	item, err := s.Storage.GetItemByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperr.New(apperr.NotFound, "Item not found")
	}
	if item.Type != models.ItemTypeFound {
		return nil, apperr.New(apperr.InvalidClaim, "Only found items can be claimed")
	}
	if item.Status == models.ItemStatusClaimed || item.Status == models.ItemStatusReturned {
		return nil, apperr.New(apperr.InvalidClaim, "Item is already claimed or returned")
	}
	if item.UserID == claimant.ID {
		return nil, apperr.New(apperr.InvalidClaim, "You cannot claim your own found item report")
	}

	existing, err := s.Storage.FindPendingClaim(itemID, claimant.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.New(apperr.InvalidClaim, "Claim pending")
	}

	claim := &models.Claim{
		ItemID:           itemID,
		ClaimantID:       claimant.ID,
		ProofDescription: proofDescription,
		ProofImageURL:    proofImageURL,
		Status:           models.ClaimStatusPending,
	}
	if err := s.Storage.CreateClaim(claim); err != nil {
		// The partial unique index rejects a concurrent duplicate that won
		// the check-then-insert race.
		if dup, _ := s.Storage.FindPendingClaim(itemID, claimant.ID); dup != nil {
			return nil, apperr.New(apperr.InvalidClaim, "Claim pending")
		}
		return nil, err
	}

	s.Notifier.ClaimReceived(item, claim)
	return claim, nil
}

// SetClaimStatus records an approve or reject decision.
//
// Permission: authority/admin, or the item's owner (the finder). Approval
// moves the item to claimed and notifies the claimant; rejection leaves the
// item untouched. Sibling pending claims are deliberately NOT auto-rejected
// on approval, and re-approving or re-rejecting a non-pending claim is
// tolerated, both matching long-standing behavior; the one hard stop is a
// completed claim, whose settlement already fed the karma ledger.
func (s *Service) SetClaimStatus(actor *models.User, claimID uint, status, notes string) error {
	if status != models.ClaimStatusApproved && status != models.ClaimStatusRejected {
		return apperr.New(apperr.Validation, "status must be approved or rejected")
	}

	claim, err := s.Storage.GetClaimByID(claimID)
	if err != nil {
		return err
	}
	if claim == nil {
		return apperr.New(apperr.NotFound, "Claim not found")
	}

	isOwner := claim.Item != nil && claim.Item.UserID == actor.ID
	if !actor.IsAuthority() && !isOwner {
		return apperr.New(apperr.Forbidden, "Unauthorized to manage this claim")
	}

	if claim.Status == models.ClaimStatusCompleted {
		return apperr.New(apperr.InvalidState, "claim is already completed")
	}

	now := s.Now()
	if err := s.Storage.UpdateClaimReview(claimID, status, actor.ID, notes, now); err != nil {
		return err
	}

	claim.Status = status
	claim.AdminNotes = notes
	claim.VerifiedByUserID = &actor.ID
	claim.VerifiedAt = &now

	if status == models.ClaimStatusApproved {
		if err := s.Storage.UpdateItemStatus(claim.ItemID, models.ItemStatusClaimed); err != nil {
			return err
		}
		s.Notifier.ClaimApproved(claim)
	} else {
		s.Notifier.ClaimRejected(claim)
	}
	return nil
}

// GetMyClaim returns the caller's latest claim on the item, or nil if they
// never claimed it. Absence is not an error.
func (s *Service) GetMyClaim(user *models.User, itemID uint) (*models.Claim, error) {
	return s.Storage.FindClaimByItemAndClaimant(itemID, user.ID)
}

// ListClaimsForItem returns all claims on an item. Only the item's owner may
// list them.
func (s *Service) ListClaimsForItem(requester *models.User, itemID uint) ([]models.Claim, error) {
	item, err := s.Storage.GetItemByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperr.New(apperr.NotFound, "Item not found")
	}
	if item.UserID != requester.ID {
		return nil, apperr.New(apperr.Forbidden, "Unauthorized")
	}
	return s.Storage.ListClaimsForItem(itemID)
}

// PendingClaimRow is one entry of the authority review queue, labeled with
// the item and claimant so the counter view can render it directly.
type PendingClaimRow struct {
	Claim        models.Claim `json:"claim"`
	ItemTitle    string       `json:"item_title"`
	UniqueItemID string       `json:"unique_item_id"`
	ClaimantName string       `json:"claimant_name"`
}

// ListPending returns the authority review queue, oldest first.
func (s *Service) ListPending(actor *models.User) ([]PendingClaimRow, error) {
	if !actor.IsAuthority() {
		return nil, apperr.New(apperr.Forbidden, "Unauthorized")
	}

	pending, err := s.Storage.ListPendingClaims()
	if err != nil {
		return nil, err
	}

	names := map[string]string{}
	rows := make([]PendingClaimRow, 0, len(pending))
	for _, c := range pending {
		row := PendingClaimRow{Claim: c}
		if c.Item != nil {
			row.ItemTitle = c.Item.Title
			row.UniqueItemID = c.Item.UniqueItemID
		}
		name, seen := names[c.ClaimantID]
		if !seen {
			if claimant, err := s.Storage.GetUserByID(c.ClaimantID); err == nil && claimant != nil {
				name = claimant.Name
			}
			names[c.ClaimantID] = name
		}
		row.ClaimantName = name
		rows = append(rows, row)
	}
	return rows, nil
}

// HandoverDetail is the counter-desk view of a claim: the claim, its item,
// and the claimant's contact details.
type HandoverDetail struct {
	Claim         *models.Claim `json:"claim"`
	ItemTitle     string        `json:"item_title"`
	UniqueItemID  string        `json:"unique_item_id"`
	ItemImage     string        `json:"item_image,omitempty"`
	ClaimantName  string        `json:"claimant_name"`
	ClaimantEmail string        `json:"claimant_email"`
	ClaimantID    string        `json:"claimant_user_id"`
}

// GetHandoverDetail returns the handover view for authority staff or the
// claimant themselves.
func (s *Service) GetHandoverDetail(actor *models.User, claimID uint) (*HandoverDetail, error) {
	claim, err := s.Storage.GetClaimByID(claimID)
	if err != nil {
		return nil, err
	}
	if claim == nil {
		return nil, apperr.New(apperr.NotFound, "Claim not found")
	}
	if !actor.IsAuthority() && actor.ID != claim.ClaimantID {
		return nil, apperr.New(apperr.Forbidden, "Unauthorized")
	}

	claimant, err := s.Storage.GetUserByID(claim.ClaimantID)
	if err != nil {
		return nil, err
	}

	detail := &HandoverDetail{Claim: claim, ClaimantID: claim.ClaimantID}
	if claim.Item != nil {
		detail.ItemTitle = claim.Item.Title
		detail.UniqueItemID = claim.Item.UniqueItemID
		detail.ItemImage = claim.Item.ImageURL
	}
	if claimant != nil {
		detail.ClaimantName = claimant.Name
		detail.ClaimantEmail = claimant.Email
	}
	return detail, nil
}
