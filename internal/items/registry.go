// Package items is the item registry: it records lost and found reports and
// controls who may read the private-proof field.
package items

import (
	"strings"

	"campusfinder/backend/internal/apperr"
	"campusfinder/backend/internal/models"

	"github.com/google/uuid"
)

// Store is the persistence slice the registry needs.
type Store interface {
	CreateItem(item *models.Item) error
	GetItemByID(id uint) (*models.Item, error)
	ListItemsByType(itemType string) ([]models.Item, error)
	ListItemsByUser(userID, itemType string) ([]models.Item, error)
}

// Service creates and reads item records.
type Service struct {
	Storage Store
}

func NewService(s Store) *Service {
	return &Service{Storage: s}
}

// ReportFoundInput carries the fields of a found-item report.
type ReportFoundInput struct {
	Title         string
	Category      string
	Description   string
	Location      string
	DateFound     string
	ImageURL      string
	ItemCondition string
}

// ReportLostInput carries the fields of a lost-item report.
type ReportLostInput struct {
	Title         string
	Category      string
	Description   string
	Location      string
	DateLost      string
	ImageURL      string
	ItemCondition string
	PrivateProof  string
	RewardAmount  int
}

// newUniqueItemID builds the human-readable id printed on counter slips,
// e.g. FOUND-3F9A1C02BD.
func newUniqueItemID(prefix string) string {
	hex := strings.ReplaceAll(uuid.New().String(), "-", "")
	return prefix + "-" + strings.ToUpper(hex[:10])
}

// ReportFound registers a found item with status pending.
func (s *Service) ReportFound(reporter *models.User, in ReportFoundInput) (*models.Item, error) {
	if reporter.IsBanned {
		return nil, apperr.New(apperr.Forbidden, "Account restricted")
	}
	if in.Title == "" || in.Category == "" || in.Description == "" || in.Location == "" || in.DateFound == "" {
		return nil, apperr.New(apperr.Validation, "Missing fields")
	}

	item := &models.Item{
		Type:            models.ItemTypeFound,
		UserID:          reporter.ID,
		Title:           in.Title,
		Category:        in.Category,
		Description:     in.Description,
		Location:        in.Location,
		DateFoundOrLost: in.DateFound,
		ImageURL:        in.ImageURL,
		ItemCondition:   in.ItemCondition,
		Status:          models.ItemStatusPending,
		UniqueItemID:    newUniqueItemID("FOUND"),
	}
	if err := s.Storage.CreateItem(item); err != nil {
		return nil, err
	}
	return item, nil
}

// ReportLost registers a lost item with status reported. The private proof is
// stored as-is and only surfaced to the owner and authority staff.
func (s *Service) ReportLost(reporter *models.User, in ReportLostInput) (*models.Item, error) {
	if reporter.IsBanned {
		return nil, apperr.New(apperr.Forbidden, "Account restricted")
	}
	if in.Title == "" || in.Category == "" || in.Description == "" || in.Location == "" || in.DateLost == "" {
		return nil, apperr.New(apperr.Validation, "Missing fields")
	}

	item := &models.Item{
		Type:            models.ItemTypeLost,
		UserID:          reporter.ID,
		Title:           in.Title,
		Category:        in.Category,
		Description:     in.Description,
		Location:        in.Location,
		DateFoundOrLost: in.DateLost,
		ImageURL:        in.ImageURL,
		ItemCondition:   in.ItemCondition,
		Status:          models.ItemStatusReported,
		UniqueItemID:    newUniqueItemID("LOST"),
		PrivateProof:    in.PrivateProof,
		RewardAmount:    in.RewardAmount,
	}
	if err := s.Storage.CreateItem(item); err != nil {
		return nil, err
	}
	return item, nil
}

// GetItem returns the item with the private-proof field stripped unless the
// requester owns the item or holds authority. requester may be nil for
// unauthenticated reads.
func (s *Service) GetItem(id uint, requester *models.User) (*models.Item, error) {
	item, err := s.Storage.GetItemByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperr.New(apperr.NotFound, "Item not found")
	}

	if !canSeeProof(item, requester) {
		redacted := *item
		redacted.PrivateProof = ""
		return &redacted, nil
	}
	return item, nil
}

func canSeeProof(item *models.Item, requester *models.User) bool {
	if requester == nil {
		return false
	}
	return requester.ID == item.UserID || requester.IsAuthority()
}

// ListFound returns all found items, newest first.
func (s *Service) ListFound() ([]models.Item, error) {
	return s.Storage.ListItemsByType(models.ItemTypeFound)
}

// ListLost returns all lost items for the public listing, with private
// proofs stripped.
func (s *Service) ListLost() ([]models.Item, error) {
	list, err := s.Storage.ListItemsByType(models.ItemTypeLost)
	if err != nil {
		return nil, err
	}
	for i := range list {
		list[i].PrivateProof = ""
	}
	return list, nil
}

// ListMine returns the user's own reports of the given type, proofs intact.
func (s *Service) ListMine(user *models.User, itemType string) ([]models.Item, error) {
	return s.Storage.ListItemsByUser(user.ID, itemType)
}
