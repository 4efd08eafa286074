package worker_test

import (
	"errors"
	"testing"
	"time"

	"campusfinder/backend/internal/worker"

	"github.com/stretchr/testify/mock"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) ListEventUserIDsSince(since time.Time) ([]string, error) {
	args := m.Called(since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockStore) SumReputationEvents(userID string) (int, error) {
	args := m.Called(userID)
	return args.Int(0), args.Error(1)
}

func (m *MockStore) GetReputation(userID string) (int, bool, error) {
	args := m.Called(userID)
	return args.Int(0), args.Bool(1), args.Error(2)
}

func (m *MockStore) SetReputation(userID string, points int) error {
	args := m.Called(userID, points)
	return args.Error(0)
}

// TestReconcileOnce_CorrectsDrift overwrites a cached counter that disagrees
// with the ledger sum.
func TestReconcileOnce_CorrectsDrift(t *testing.T) {
	// Arrange
	store := new(MockStore)
	w := worker.NewReconcileWorker(store, time.Minute, 48*time.Hour)

	store.On("ListEventUserIDsSince", mock.AnythingOfType("time.Time")).
		Return([]string{"drifted"}, nil).Once()
	store.On("SumReputationEvents", "drifted").Return(75, nil).Once()
	store.On("GetReputation", "drifted").Return(50, true, nil).Once()
	store.On("SetReputation", "drifted", 75).Return(nil).Once()

	// Act
	w.ReconcileOnce()

	// Assert
	store.AssertExpectations(t)
}

// TestReconcileOnce_MatchingCounterUntouched leaves agreeing counters alone.
func TestReconcileOnce_MatchingCounterUntouched(t *testing.T) {
	store := new(MockStore)
	w := worker.NewReconcileWorker(store, time.Minute, 48*time.Hour)

	store.On("ListEventUserIDsSince", mock.AnythingOfType("time.Time")).
		Return([]string{"in-sync"}, nil).Once()
	store.On("SumReputationEvents", "in-sync").Return(25, nil).Once()
	store.On("GetReputation", "in-sync").Return(25, true, nil).Once()

	w.ReconcileOnce()

	store.AssertNotCalled(t, "SetReputation", mock.Anything, mock.Anything)
}

// TestReconcileOnce_SkipsFailedSums continues past a user whose ledger sum
// cannot be computed.
func TestReconcileOnce_SkipsFailedSums(t *testing.T) {
	store := new(MockStore)
	w := worker.NewReconcileWorker(store, time.Minute, 48*time.Hour)

	store.On("ListEventUserIDsSince", mock.AnythingOfType("time.Time")).
		Return([]string{"broken", "drifted"}, nil).Once()
	store.On("SumReputationEvents", "broken").Return(0, errors.New("db timeout")).Once()
	store.On("SumReputationEvents", "drifted").Return(100, nil).Once()
	store.On("GetReputation", "drifted").Return(10, true, nil).Once()
	store.On("SetReputation", "drifted", 100).Return(nil).Once()

	w.ReconcileOnce()

	store.AssertExpectations(t)
	store.AssertNotCalled(t, "GetReputation", "broken")
}

// TestReconcileOnce_MissingUserSkipped ignores ledger rows for users that no
// longer exist.
func TestReconcileOnce_MissingUserSkipped(t *testing.T) {
	store := new(MockStore)
	w := worker.NewReconcileWorker(store, time.Minute, 48*time.Hour)

	store.On("ListEventUserIDsSince", mock.AnythingOfType("time.Time")).
		Return([]string{"ghost"}, nil).Once()
	store.On("SumReputationEvents", "ghost").Return(25, nil).Once()
	store.On("GetReputation", "ghost").Return(0, false, nil).Once()

	w.ReconcileOnce()

	store.AssertNotCalled(t, "SetReputation", mock.Anything, mock.Anything)
}
