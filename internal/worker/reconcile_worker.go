// Package worker holds background maintenance loops.
package worker

import (
	"context"
	"log"
	"time"
)

// ReconcileStore is the persistence slice reconciliation needs.
type ReconcileStore interface {
	ListEventUserIDsSince(since time.Time) ([]string, error)
	SumReputationEvents(userID string) (int, error)
	GetReputation(userID string) (int, bool, error)
	SetReputation(userID string, points int) error
}

// ReconcileWorker periodically re-derives reputation_points from the
// append-only ledger and corrects drift. The cached counter is maintained
// with atomic increments, but a crash between the increment and the ledger
// append (or vice versa) can still desynchronize the two; this loop is the
// safety net.
type ReconcileWorker struct {
	Storage ReconcileStore

	Interval time.Duration
	// Lookback bounds which users are rechecked: only those with ledger
	// activity inside the window.
	Lookback time.Duration
}

func NewReconcileWorker(s ReconcileStore, interval, lookback time.Duration) *ReconcileWorker {
	return &ReconcileWorker{Storage: s, Interval: interval, Lookback: lookback}
}

// Run drives the loop until the context is cancelled.
func (w *ReconcileWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	log.Println("ReconcileWorker started. Interval:", w.Interval)

	for {
		select {
		case <-ctx.Done():
			log.Println("ReconcileWorker stopped.")
			return
		case <-ticker.C:
			w.ReconcileOnce()
		}
	}
}

// ReconcileOnce rechecks every recently-active finder and overwrites any
// counter that disagrees with the ledger sum.
func (w *ReconcileWorker) ReconcileOnce() {
	since := time.Now().Add(-w.Lookback)
	userIDs, err := w.Storage.ListEventUserIDsSince(since)
	if err != nil {
		return
	}

	for _, id := range userIDs {
		expected, err := w.Storage.SumReputationEvents(id)
		if err != nil {
			log.Printf("ERROR: Ledger sum failed for user %s: %v", id, err)
			continue
		}

		cached, found, err := w.Storage.GetReputation(id)
		if err != nil || !found {
			continue
		}
		if cached == expected {
			continue
		}

		log.Printf("Warning: Karma drift for user %s: cached=%d ledger=%d, correcting", id, cached, expected)
		if err := w.Storage.SetReputation(id, expected); err != nil {
			log.Printf("ERROR: Failed to correct karma for user %s: %v", id, err)
		}
	}
}
