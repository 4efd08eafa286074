package storage

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"campusfinder/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const leaderboardCacheKey = "cache:leaderboard"

func settlementLockKey(finderID string) string {
	return "settle:" + finderID
}

func (s *Service) CreateReputationEvent(event *models.ReputationEvent) error {
	if err := s.DB.Create(event).Error; err != nil {
		log.Printf("ERROR: Failed to append reputation event for user %s: %v", event.UserID, err)
		return err
	}
	return nil
}

// CountReputationEvents counts the user's events of the given type created
// at or after the cutoff. Drives the daily frequency limit.
func (s *Service) CountReputationEvents(userID, eventType string, since time.Time) (int64, error) {
	var count int64
	err := s.DB.Model(&models.ReputationEvent{}).
		Where("user_id = ? AND event_type = ? AND created_at >= ?", userID, eventType, since).
		Count(&count).Error
	return count, err
}

func (s *Service) ListRecentReputationEvents(userID string, limit int) ([]models.ReputationEvent, error) {
	var events []models.ReputationEvent
	err := s.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

// SumReputationEvents re-derives the user's point total from the ledger.
// This is the reconciliation ground truth for the cached counter.
func (s *Service) SumReputationEvents(userID string) (int, error) {
	var total *int
	err := s.DB.Model(&models.ReputationEvent{}).
		Where("user_id = ?", userID).
		Select("SUM(change_amount)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

// ListEventUserIDsSince returns the distinct users with ledger activity
// since the cutoff, so reconciliation only touches recently-settled finders.
func (s *Service) ListEventUserIDsSince(since time.Time) ([]string, error) {
	var ids []string
	err := s.DB.Model(&models.ReputationEvent{}).
		Where("created_at >= ?", since).
		Distinct().
		Pluck("user_id", &ids).Error
	if err != nil {
		log.Printf("ERROR: Failed to list active ledger users: %v", err)
		return nil, err
	}
	return ids, nil
}

func (s *Service) CreateNotification(n *models.Notification) error {
	return s.DB.Create(n).Error
}

func (s *Service) ListNotifications(userID string, limit int) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkNotificationRead flips is_read for the recipient's own notification.
// Returns false if the id does not belong to the user.
func (s *Service) MarkNotificationRead(id uint, userID string) (bool, error) {
	res := s.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *Service) GetRewardByID(id uint) (*models.Reward, error) {
	var reward models.Reward
	err := s.DB.First(&reward, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reward, nil
}

func (s *Service) ListActiveRewards() ([]models.Reward, error) {
	var rewards []models.Reward
	err := s.DB.Where("active = ?", true).
		Order("cost ASC").
		Find(&rewards).Error
	if err != nil {
		return nil, err
	}
	return rewards, nil
}

// TryAcquireSettlementLock takes the per-finder advisory lock in Redis.
// The TTL bounds lock lifetime if a settlement dies mid-flight.
func (s *Service) TryAcquireSettlementLock(finderID string, ttl time.Duration) (bool, error) {
	ok, err := s.Redis.SetNX(s.Ctx, settlementLockKey(finderID), "1", ttl).Result()
	if err != nil {
		return false, err
	}
	return ok, nil
}

func (s *Service) ReleaseSettlementLock(finderID string) error {
	return s.Redis.Del(s.Ctx, settlementLockKey(finderID)).Err()
}

// GetCachedLeaderboard reads the JSON leaderboard snapshot from Redis.
// A miss or a decode failure is reported as a miss, never as an error.
func (s *Service) GetCachedLeaderboard() ([]models.User, bool) {
	raw, err := s.Redis.Get(s.Ctx, leaderboardCacheKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		log.Printf("ERROR: Leaderboard cache read failed: %v", err)
		return nil, false
	}

	var users []models.User
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		log.Printf("ERROR: Leaderboard cache decode failed: %v", err)
		return nil, false
	}
	return users, true
}

// CacheLeaderboard stores the snapshot best-effort.
func (s *Service) CacheLeaderboard(users []models.User, ttl time.Duration) {
	raw, err := json.Marshal(users)
	if err != nil {
		return
	}
	if err := s.Redis.Set(s.Ctx, leaderboardCacheKey, string(raw), ttl).Err(); err != nil {
		log.Printf("ERROR: Leaderboard cache write failed: %v", err)
	}
}
