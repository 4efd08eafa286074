package storage

import (
	"errors"
	"log"
	"time"

	"campusfinder/backend/internal/models"

	"gorm.io/gorm"
)

func (s *Service) CreateItem(item *models.Item) error {
	if err := s.DB.Create(item).Error; err != nil {
		log.Printf("ERROR: Failed to create %s item %q: %v", item.Type, item.Title, err)
		return err
	}
	return nil
}

// GetItemByID returns the item or (nil, nil) if the id does not resolve.
func (s *Service) GetItemByID(id uint) (*models.Item, error) {
	var item models.Item
	err := s.DB.First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Service) UpdateItemStatus(id uint, status string) error {
	return s.DB.Model(&models.Item{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (s *Service) ListItemsByType(itemType string) ([]models.Item, error) {
	var items []models.Item
	err := s.DB.Where("type = ?", itemType).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		log.Printf("ERROR: Failed to list %s items: %v", itemType, err)
		return nil, err
	}
	return items, nil
}

func (s *Service) ListItemsByUser(userID, itemType string) ([]models.Item, error) {
	var items []models.Item
	err := s.DB.Where("user_id = ? AND type = ?", userID, itemType).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Service) CreateClaim(claim *models.Claim) error {
	if claim.Status == "" {
		claim.Status = models.ClaimStatusPending
	}
	if err := s.DB.Create(claim).Error; err != nil {
		log.Printf("ERROR: Failed to create claim for item %d: %v", claim.ItemID, err)
		return err
	}
	return nil
}

// GetClaimByID loads the claim with its subject item preloaded, or (nil, nil).
func (s *Service) GetClaimByID(id uint) (*models.Claim, error) {
	var claim models.Claim
	err := s.DB.Preload("Item").First(&claim, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &claim, nil
}

// FindPendingClaim returns the claimant's pending claim on the item, if any.
func (s *Service) FindPendingClaim(itemID uint, claimantID string) (*models.Claim, error) {
	var claim models.Claim
	err := s.DB.Where("item_id = ? AND claimant_id = ? AND status = ?",
		itemID, claimantID, models.ClaimStatusPending).
		First(&claim).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &claim, nil
}

// FindClaimByItemAndClaimant returns the claimant's latest claim on the item
// regardless of status, or (nil, nil).
func (s *Service) FindClaimByItemAndClaimant(itemID uint, claimantID string) (*models.Claim, error) {
	var claim models.Claim
	err := s.DB.Where("item_id = ? AND claimant_id = ?", itemID, claimantID).
		Order("created_at DESC").
		First(&claim).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &claim, nil
}

func (s *Service) ListClaimsForItem(itemID uint) ([]models.Claim, error) {
	var claims []models.Claim
	err := s.DB.Where("item_id = ?", itemID).
		Order("created_at DESC").
		Find(&claims).Error
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// ListPendingClaims returns all pending claims oldest-first for the authority
// review queue.
func (s *Service) ListPendingClaims() ([]models.Claim, error) {
	var claims []models.Claim
	err := s.DB.Preload("Item").
		Where("status = ?", models.ClaimStatusPending).
		Order("created_at ASC").
		Find(&claims).Error
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// UpdateClaimReview records an approve/reject decision with its verification
// metadata.
func (s *Service) UpdateClaimReview(claimID uint, status, verifiedBy, notes string, at time.Time) error {
	return s.DB.Model(&models.Claim{}).
		Where("id = ?", claimID).
		Updates(map[string]interface{}{
			"status":              status,
			"admin_notes":         notes,
			"verified_by_user_id": verifiedBy,
			"verified_at":         at,
		}).Error
}

// CompleteClaim marks the claim completed and the item returned in a single
// transaction. The pair must transition together: a completed claim on a
// still-claimed item could never be repaired, since confirmation requires an
// approved claim.
func (s *Service) CompleteClaim(claimID, itemID uint, verifiedBy string, at time.Time) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Claim{}).
			Where("id = ?", claimID).
			Updates(map[string]interface{}{
				"status":              models.ClaimStatusCompleted,
				"verified_by_user_id": verifiedBy,
				"verified_at":         at,
			}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Item{}).
			Where("id = ?", itemID).
			Update("status", models.ItemStatusReturned).Error
	})
}

// CountRecentPairCompletions counts the claimant's other completed claims
// since the cutoff whose underlying item belongs to the given finder. A
// non-zero count means this finder/claimant pair already settled a handover
// inside the pair-limiting window.
func (s *Service) CountRecentPairCompletions(claimantID, finderID string, since time.Time, excludeClaimID uint) (int64, error) {
	var count int64
	err := s.DB.Model(&models.Claim{}).
		Joins("JOIN items ON items.id = claims.item_id").
		Where("claims.status = ?", models.ClaimStatusCompleted).
		Where("claims.claimant_id = ?", claimantID).
		Where("claims.id <> ?", excludeClaimID).
		Where("claims.verified_at >= ?", since).
		Where("items.user_id = ?", finderID).
		Count(&count).Error
	if err != nil {
		log.Printf("ERROR: Pair-limit scan failed for claimant %s / finder %s: %v", claimantID, finderID, err)
		return 0, err
	}
	return count, nil
}
