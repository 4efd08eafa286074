package config

import "time"

const (
	// Karma
	BaseHandoverAward = 25
	LegacyFlatAward   = 50

	// Anti-collusion
	PairLimitWindow   = 30 * 24 * time.Hour
	DailyRewardLimit  = 3
	DailyRewardWindow = 24 * time.Hour

	// Settlement
	SettlementLockTTL = 10 * time.Second

	// Gamification
	LeaderboardSize     = 50
	LeaderboardCacheTTL = time.Minute

	// Notifications
	NotificationPageSize = 20
	RecentEventsLimit    = 10
)
