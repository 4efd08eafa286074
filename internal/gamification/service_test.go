package gamification_test

import (
	"testing"
	"time"

	"campusfinder/backend/internal/apperr"
	"campusfinder/backend/internal/gamification"
	"campusfinder/backend/internal/models"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockStore is a testify mock of the gamification storage slice.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) ListLeaderboard(limit int) ([]models.User, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockStore) CountUsersWithMorePoints(points int) (int64, error) {
	args := m.Called(points)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) ListRecentReputationEvents(userID string, limit int) ([]models.ReputationEvent, error) {
	args := m.Called(userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReputationEvent), args.Error(1)
}

func (m *MockStore) GetRewardByID(id uint) (*models.Reward, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reward), args.Error(1)
}

func (m *MockStore) ListActiveRewards() ([]models.Reward, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Reward), args.Error(1)
}

func (m *MockStore) SpendReputation(userID string, cost int) (bool, error) {
	args := m.Called(userID, cost)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) GetCachedLeaderboard() ([]models.User, bool) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).([]models.User), args.Bool(1)
}

func (m *MockStore) CacheLeaderboard(users []models.User, ttl time.Duration) {
	m.Called(users, ttl)
}

// TestLeaderboard_CacheHitSkipsDatabase serves from the Redis snapshot.
func TestLeaderboard_CacheHitSkipsDatabase(t *testing.T) {
	// Arrange
	store := new(MockStore)
	svc := gamification.NewService(store)
	cached := []models.User{{ID: "u1", Name: "Top Finder", ReputationPoints: 500}}
	store.On("GetCachedLeaderboard").Return(cached, true).Once()

	// Act
	entries, err := svc.Leaderboard()

	// Assert
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "Top Finder", entries[0].Name)
	store.AssertNotCalled(t, "ListLeaderboard", mock.Anything)
}

// TestLeaderboard_CacheMissQueriesAndCaches falls back to Postgres and
// refreshes the snapshot.
func TestLeaderboard_CacheMissQueriesAndCaches(t *testing.T) {
	store := new(MockStore)
	svc := gamification.NewService(store)
	users := []models.User{
		{ID: "u1", Name: "A", ReputationPoints: 100},
		{ID: "u2", Name: "B", ReputationPoints: 75},
	}
	store.On("GetCachedLeaderboard").Return(nil, false).Once()
	store.On("ListLeaderboard", 50).Return(users, nil).Once()
	store.On("CacheLeaderboard", users, mock.AnythingOfType("time.Duration")).Once()

	entries, err := svc.Leaderboard()

	assert.NoError(t, err)
	assert.Len(t, entries, 2)
	store.AssertExpectations(t)
}

// TestRedeemReward covers the three outcomes: unknown reward, insufficient
// karma, and a successful conditional spend.
func TestRedeemReward(t *testing.T) {
	user := &models.User{ID: "u1", ReputationPoints: 30}

	t.Run("unknown reward", func(t *testing.T) {
		store := new(MockStore)
		svc := gamification.NewService(store)
		store.On("GetRewardByID", uint(1)).Return(nil, nil).Once()

		err := svc.RedeemReward(user, 1)
		assert.True(t, apperr.IsKind(err, apperr.NotFound))
	})

	t.Run("inactive reward", func(t *testing.T) {
		store := new(MockStore)
		svc := gamification.NewService(store)
		store.On("GetRewardByID", uint(1)).Return(&models.Reward{Cost: 10, Active: false}, nil).Once()

		err := svc.RedeemReward(user, 1)
		assert.True(t, apperr.IsKind(err, apperr.NotFound))
	})

	t.Run("insufficient karma", func(t *testing.T) {
		store := new(MockStore)
		svc := gamification.NewService(store)
		store.On("GetRewardByID", uint(1)).
			Return(&models.Reward{Model: gorm.Model{ID: 1}, Cost: 50, Active: true}, nil).Once()
		store.On("SpendReputation", "u1", 50).Return(false, nil).Once()

		err := svc.RedeemReward(user, 1)
		assert.True(t, apperr.IsKind(err, apperr.Validation))
		assert.Contains(t, err.Error(), "Insufficient Karma")
	})

	t.Run("success", func(t *testing.T) {
		store := new(MockStore)
		svc := gamification.NewService(store)
		store.On("GetRewardByID", uint(1)).
			Return(&models.Reward{Model: gorm.Model{ID: 1}, Cost: 25, Active: true}, nil).Once()
		store.On("SpendReputation", "u1", 25).Return(true, nil).Once()

		assert.NoError(t, svc.RedeemReward(user, 1))
	})
}

// TestStats_RankAndBadges computes rank as users-with-more-points + 1.
func TestStats_RankAndBadges(t *testing.T) {
	store := new(MockStore)
	svc := gamification.NewService(store)
	user := &models.User{ID: "u1", ReputationPoints: 75, Badges: pq.StringArray{"first_return"}}

	store.On("CountUsersWithMorePoints", 75).Return(int64(4), nil).Once()
	store.On("ListRecentReputationEvents", "u1", 10).Return([]models.ReputationEvent{
		{UserID: "u1", ChangeAmount: 25, EventType: models.EventItemReturned},
	}, nil).Once()

	stats, err := svc.Stats(user)

	assert.NoError(t, err)
	assert.Equal(t, int64(5), stats.Rank)
	assert.Equal(t, []string{"first_return"}, stats.Badges)
	assert.Len(t, stats.RecentEvents, 1)
}
