package service

import (
	"context"
	"errors"
	"time"

	"github.com/umarudotdev/ft-transcendence-sub000/internal/constants"
	"github.com/umarudotdev/ft-transcendence-sub000/internal/logging"
	"github.com/umarudotdev/ft-transcendence-sub000/internal/rating"
	"github.com/umarudotdev/ft-transcendence-sub000/internal/storage"
)

var ErrMissingSession = errors.New("match record has no session id")

// Reporter is the slice of the rating client the service depends on.
type Reporter interface {
	Report(ctx context.Context, result rating.MatchResult) (*rating.RatingDeltas, error)
	NotifyAbandoned(ctx context.Context, sessionID string) error
}

const finalizeTimeout = 30 * time.Second

// FinalizeMatch reports a finished match to the rating service and persists
// the outcome locally. Reporting failure does not lose the record: the row
// is stored with Reported=false and the match is still folded into player
// stats. The returned deltas (nil when unavailable) are relayed to clients
// before the room is disposed.
func FinalizeMatch(repo storage.Repository, reporter Reporter, rec *storage.MatchRecord) (*rating.RatingDeltas, error) {
	if rec.SessionID == "" {
		return nil, ErrMissingSession
	}

	ctx, cancel := context.WithTimeout(context.Background(), finalizeTimeout)
	defer cancel()

	var winner *string
	if rec.WinnerID != "" {
		w := rec.WinnerID
		winner = &w
	}
	deltas, err := reporter.Report(ctx, rating.MatchResult{
		SessionID:       rec.SessionID,
		Player1ID:       rec.Player1ID,
		Player2ID:       rec.Player2ID,
		Player1Score:    rec.Player1Score,
		Player2Score:    rec.Player2Score,
		WinnerID:        winner,
		DurationSeconds: rec.DurationSeconds,
		GameType:        constants.GameTypeDuel,
		IsAIGame:        false,
	})
	if err != nil {
		logging.Error("match report failed; storing unreported", err, logging.Fields{
			constants.LogFieldSessionID: rec.SessionID,
		})
	} else {
		rec.Reported = true
		if deltas != nil {
			rec.Player1Delta = deltas.Player1Delta
			rec.Player2Delta = deltas.Player2Delta
		}
	}

	if saveErr := repo.SaveMatch(rec); saveErr != nil {
		logging.Error("failed to persist match record", saveErr, logging.Fields{
			constants.LogFieldSessionID: rec.SessionID,
		})
	} else if statsErr := repo.UpdateStatsOnMatchEnd(rec); statsErr != nil {
		logging.Error("failed to update player stats", statsErr, logging.Fields{
			constants.LogFieldSessionID: rec.SessionID,
		})
	}
	return deltas, err
}

// AbandonMatch is the best-effort path for a match torn down before a
// terminal report: one abandonment notification, then local persistence.
func AbandonMatch(repo storage.Repository, reporter Reporter, rec *storage.MatchRecord) {
	rec.Abandoned = true

	ctx, cancel := context.WithTimeout(context.Background(), finalizeTimeout)
	defer cancel()
	if rec.SessionID != "" {
		if err := reporter.NotifyAbandoned(ctx, rec.SessionID); err != nil {
			logging.Warn("abandonment notification failed", logging.Fields{
				constants.LogFieldSessionID: rec.SessionID,
				"error":                     err.Error(),
			})
		}
	}

	if err := repo.SaveMatch(rec); err != nil {
		logging.Error("failed to persist abandoned match", err, logging.Fields{
			constants.LogFieldSessionID: rec.SessionID,
		})
		return
	}
	if err := repo.UpdateStatsOnMatchEnd(rec); err != nil {
		logging.Error("failed to update player stats", err, logging.Fields{
			constants.LogFieldSessionID: rec.SessionID,
		})
	}
}
