package claims_test

import (
	"time"

	"campusfinder/backend/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockStore is a testify mock of the lifecycle manager's storage slice.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) GetItemByID(id uint) (*models.Item, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}

func (m *MockStore) UpdateItemStatus(id uint, status string) error {
	args := m.Called(id, status)
	return args.Error(0)
}

func (m *MockStore) CreateClaim(claim *models.Claim) error {
	args := m.Called(claim)
	return args.Error(0)
}

func (m *MockStore) GetClaimByID(id uint) (*models.Claim, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Claim), args.Error(1)
}

func (m *MockStore) FindPendingClaim(itemID uint, claimantID string) (*models.Claim, error) {
	args := m.Called(itemID, claimantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Claim), args.Error(1)
}

func (m *MockStore) FindClaimByItemAndClaimant(itemID uint, claimantID string) (*models.Claim, error) {
	args := m.Called(itemID, claimantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Claim), args.Error(1)
}

func (m *MockStore) ListClaimsForItem(itemID uint) ([]models.Claim, error) {
	args := m.Called(itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Claim), args.Error(1)
}

func (m *MockStore) ListPendingClaims() ([]models.Claim, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Claim), args.Error(1)
}

func (m *MockStore) UpdateClaimReview(claimID uint, status, verifiedBy, notes string, at time.Time) error {
	args := m.Called(claimID, status, verifiedBy, notes, at)
	return args.Error(0)
}

func (m *MockStore) GetUserByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockNotifier records lifecycle notifications.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) ClaimReceived(item *models.Item, claim *models.Claim) {
	m.Called(item, claim)
}

func (m *MockNotifier) ClaimApproved(claim *models.Claim) {
	m.Called(claim)
}

func (m *MockNotifier) ClaimRejected(claim *models.Claim) {
	m.Called(claim)
}
