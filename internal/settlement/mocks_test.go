package settlement_test

import (
	"time"

	"campusfinder/backend/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockStore is a testify mock of the engine's storage slice. It also
// implements the policy's scan interface so one mock backs both.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) GetClaimByID(id uint) (*models.Claim, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Claim), args.Error(1)
}

func (m *MockStore) CompleteClaim(claimID, itemID uint, verifiedBy string, at time.Time) error {
	args := m.Called(claimID, itemID, verifiedBy, at)
	return args.Error(0)
}

func (m *MockStore) AddReputation(userID string, delta int) error {
	args := m.Called(userID, delta)
	return args.Error(0)
}

func (m *MockStore) CreateReputationEvent(event *models.ReputationEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

func (m *MockStore) CountRecentPairCompletions(claimantID, finderID string, since time.Time, excludeClaimID uint) (int64, error) {
	args := m.Called(claimantID, finderID, since, excludeClaimID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) CountReputationEvents(userID, eventType string, since time.Time) (int64, error) {
	args := m.Called(userID, eventType, since)
	return args.Get(0).(int64), args.Error(1)
}

// MockLocker is a testify mock of the advisory lock.
type MockLocker struct {
	mock.Mock
}

func (m *MockLocker) TryAcquireSettlementLock(finderID string, ttl time.Duration) (bool, error) {
	args := m.Called(finderID, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockLocker) ReleaseSettlementLock(finderID string) error {
	args := m.Called(finderID)
	return args.Error(0)
}

// MockNotifier records the settled-handover notification.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) HandoverSettled(finderID string, item *models.Item, claim *models.Claim, points int) {
	m.Called(finderID, item, claim, points)
}
