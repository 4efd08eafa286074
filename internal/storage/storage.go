package storage

import (
	"context"
	"errors"
	"log"
	"time"

	"campusfinder/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Storage is the full persistence surface. Consumers depend on narrower
// interfaces declared in their own packages; this one exists so the admin
// CLI and wiring code can share the concrete service, and as the
// compile-time contract for *Service.
type Storage interface {
	// Users
	GetUserByID(id string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	CreateUser(user *models.User) error
	SaveUser(user *models.User) error
	UpdateUserProfile(userID string, updates map[string]interface{}) error
	AddReputation(userID string, delta int) error
	SpendReputation(userID string, cost int) (bool, error)
	GetReputation(userID string) (int, bool, error)
	SetReputation(userID string, points int) error
	ListLeaderboard(limit int) ([]models.User, error)
	CountUsersWithMorePoints(points int) (int64, error)

	// Items
	CreateItem(item *models.Item) error
	GetItemByID(id uint) (*models.Item, error)
	UpdateItemStatus(id uint, status string) error
	ListItemsByType(itemType string) ([]models.Item, error)
	ListItemsByUser(userID, itemType string) ([]models.Item, error)

	// Claims
	CreateClaim(claim *models.Claim) error
	GetClaimByID(id uint) (*models.Claim, error)
	FindPendingClaim(itemID uint, claimantID string) (*models.Claim, error)
	FindClaimByItemAndClaimant(itemID uint, claimantID string) (*models.Claim, error)
	ListClaimsForItem(itemID uint) ([]models.Claim, error)
	ListPendingClaims() ([]models.Claim, error)
	UpdateClaimReview(claimID uint, status, verifiedBy, notes string, at time.Time) error
	CompleteClaim(claimID, itemID uint, verifiedBy string, at time.Time) error
	CountRecentPairCompletions(claimantID, finderID string, since time.Time, excludeClaimID uint) (int64, error)

	// Reputation ledger
	CreateReputationEvent(event *models.ReputationEvent) error
	CountReputationEvents(userID, eventType string, since time.Time) (int64, error)
	ListRecentReputationEvents(userID string, limit int) ([]models.ReputationEvent, error)
	SumReputationEvents(userID string) (int, error)
	ListEventUserIDsSince(since time.Time) ([]string, error)

	// Notifications
	CreateNotification(n *models.Notification) error
	ListNotifications(userID string, limit int) ([]models.Notification, error)
	MarkNotificationRead(id uint, userID string) (bool, error)

	// Rewards
	GetRewardByID(id uint) (*models.Reward, error)
	ListActiveRewards() ([]models.Reward, error)

	// Redis
	TryAcquireSettlementLock(finderID string, ttl time.Duration) (bool, error)
	ReleaseSettlementLock(finderID string) error
	GetCachedLeaderboard() ([]models.User, bool)
	CacheLeaderboard(users []models.User, ttl time.Duration)
}

// Service implements Storage over PostgreSQL (gorm) and Redis.
type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

var _ Storage = (*Service)(nil)

// NewStorageService Constructor
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

// GetUserByID returns the user or (nil, nil) if no row matches.
func (s *Service) GetUserByID(id string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail returns the user for the sync key or (nil, nil) if absent.
func (s *Service) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) CreateUser(user *models.User) error {
	if err := s.DB.Create(user).Error; err != nil {
		log.Printf("ERROR: Failed to create user %s: %v", user.Email, err)
		return err
	}
	return nil
}

// SaveUser persists the full user row.
func (s *Service) SaveUser(user *models.User) error {
	return s.DB.Save(user).Error
}

func (s *Service) UpdateUserProfile(userID string, updates map[string]interface{}) error {
	return s.DB.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error
}

// AddReputation applies an atomic in-database increment. The read-then-write
// alternative loses updates when two settlements for the same finder land
// concurrently.
func (s *Service) AddReputation(userID string, delta int) error {
	return s.DB.Model(&models.User{}).
		Where("id = ?", userID).
		Update("reputation_points", gorm.Expr("reputation_points + ?", delta)).Error
}

// SpendReputation deducts cost only if the balance covers it. Returns false
// when the conditional update matched no row (insufficient points).
func (s *Service) SpendReputation(userID string, cost int) (bool, error) {
	res := s.DB.Model(&models.User{}).
		Where("id = ? AND reputation_points >= ?", userID, cost).
		Update("reputation_points", gorm.Expr("reputation_points - ?", cost))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// GetReputation reads the cached counter. The second return is false when
// the user does not exist.
func (s *Service) GetReputation(userID string) (int, bool, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return 0, false, err
	}
	if user == nil {
		return 0, false, nil
	}
	return user.ReputationPoints, true, nil
}

// SetReputation overwrites the cached counter. Used only by reconciliation.
func (s *Service) SetReputation(userID string, points int) error {
	return s.DB.Model(&models.User{}).
		Where("id = ?", userID).
		Update("reputation_points", points).Error
}

func (s *Service) ListLeaderboard(limit int) ([]models.User, error) {
	var users []models.User
	err := s.DB.Where("is_banned = ?", false).
		Order("reputation_points DESC").
		Limit(limit).
		Find(&users).Error
	if err != nil {
		log.Printf("ERROR: Failed to load leaderboard: %v", err)
		return nil, err
	}
	return users, nil
}

func (s *Service) CountUsersWithMorePoints(points int) (int64, error) {
	var count int64
	err := s.DB.Model(&models.User{}).
		Where("reputation_points > ?", points).
		Count(&count).Error
	return count, err
}
