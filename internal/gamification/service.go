// Package gamification serves the leaderboard, the karma redemption
// catalog, and per-user profile stats.
package gamification

import (
	"time"

	"campusfinder/backend/internal/apperr"
	"campusfinder/backend/internal/config"
	"campusfinder/backend/internal/models"
)

// Store is the persistence slice the service needs.
type Store interface {
	ListLeaderboard(limit int) ([]models.User, error)
	CountUsersWithMorePoints(points int) (int64, error)
	ListRecentReputationEvents(userID string, limit int) ([]models.ReputationEvent, error)
	GetRewardByID(id uint) (*models.Reward, error)
	ListActiveRewards() ([]models.Reward, error)
	SpendReputation(userID string, cost int) (bool, error)
	GetCachedLeaderboard() ([]models.User, bool)
	CacheLeaderboard(users []models.User, ttl time.Duration)
}

type Service struct {
	Storage Store
}

func NewService(s Store) *Service {
	return &Service{Storage: s}
}

// LeaderboardEntry is the public slice of a user shown on the leaderboard.
type LeaderboardEntry struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	Role             string `json:"role"`
	ReputationPoints int    `json:"reputation_points"`
}

// Leaderboard returns the top non-banned users by karma, served from the
// Redis snapshot when fresh.
func (s *Service) Leaderboard() ([]LeaderboardEntry, error) {
	users, hit := s.Storage.GetCachedLeaderboard()
	if !hit {
		var err error
		users, err = s.Storage.ListLeaderboard(config.LeaderboardSize)
		if err != nil {
			return nil, err
		}
		s.Storage.CacheLeaderboard(users, config.LeaderboardCacheTTL)
	}

	entries := make([]LeaderboardEntry, 0, len(users))
	for _, u := range users {
		entries = append(entries, LeaderboardEntry{
			ID:               u.ID,
			Name:             u.Name,
			Email:            u.Email,
			Role:             u.Role,
			ReputationPoints: u.ReputationPoints,
		})
	}
	return entries, nil
}

// ListRewards returns the active redemption catalog, cheapest first.
func (s *Service) ListRewards() ([]models.Reward, error) {
	return s.Storage.ListActiveRewards()
}

// RedeemReward spends the user's karma on a catalog entry. The deduction is
// a conditional atomic update, so two concurrent redemptions cannot drive
// the balance negative.
func (s *Service) RedeemReward(user *models.User, rewardID uint) error {
	reward, err := s.Storage.GetRewardByID(rewardID)
	if err != nil {
		return err
	}
	if reward == nil || !reward.Active {
		return apperr.New(apperr.NotFound, "Reward not found")
	}

	ok, err := s.Storage.SpendReputation(user.ID, reward.Cost)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.New(apperr.Validation, "Insufficient Karma")
	}
	return nil
}

// ProfileStats is the karma dashboard for one user.
type ProfileStats struct {
	User         *models.User             `json:"user"`
	Rank         int64                    `json:"rank"`
	Badges       []string                 `json:"badges"`
	RecentEvents []models.ReputationEvent `json:"recentEvents"`
}

// Stats computes the user's leaderboard rank (users with more points + 1),
// earned badges, and the most recent ledger entries.
func (s *Service) Stats(user *models.User) (*ProfileStats, error) {
	ahead, err := s.Storage.CountUsersWithMorePoints(user.ReputationPoints)
	if err != nil {
		return nil, err
	}

	events, err := s.Storage.ListRecentReputationEvents(user.ID, config.RecentEventsLimit)
	if err != nil {
		return nil, err
	}

	badges := []string(user.Badges)
	if badges == nil {
		badges = []string{}
	}
	return &ProfileStats{
		User:         user,
		Rank:         ahead + 1,
		Badges:       badges,
		RecentEvents: events,
	}, nil
}
