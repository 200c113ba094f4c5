package service

import (
	"context"
	"errors"
	"testing"

	"github.com/umarudotdev/ft-transcendence-sub000/internal/rating"
	"github.com/umarudotdev/ft-transcendence-sub000/internal/storage"
)

type mockRepo struct {
	saved        *storage.MatchRecord
	statsUpdated bool
	saveErr      error
}

func (m *mockRepo) SaveMatch(rec *storage.MatchRecord) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	cp := *rec
	m.saved = &cp
	return nil
}

func (m *mockRepo) GetMatchBySession(string) (*storage.MatchRecord, error) { return nil, nil }

func (m *mockRepo) ListRecentMatches(int) ([]storage.MatchRecord, error) { return nil, nil }

func (m *mockRepo) UpdateStatsOnMatchEnd(*storage.MatchRecord) error {
	m.statsUpdated = true
	return nil
}

func (m *mockRepo) Leaderboard(int) ([]storage.PlayerStats, error) { return nil, nil }

type mockReporter struct {
	deltas         *rating.RatingDeltas
	reportErr      error
	reported       []rating.MatchResult
	abandonedCalls []string
	abandonErr     error
}

func (m *mockReporter) Report(_ context.Context, result rating.MatchResult) (*rating.RatingDeltas, error) {
	m.reported = append(m.reported, result)
	return m.deltas, m.reportErr
}

func (m *mockReporter) NotifyAbandoned(_ context.Context, sessionID string) error {
	m.abandonedCalls = append(m.abandonedCalls, sessionID)
	return m.abandonErr
}

func finishedRecord() *storage.MatchRecord {
	return &storage.MatchRecord{
		SessionID:       "sess-1",
		RoomCode:        "AB12CD",
		Player1ID:       "p1",
		Player2ID:       "p2",
		Player1Score:    3,
		Player2Score:    1,
		WinnerID:        "p1",
		DurationSeconds: 95,
	}
}

func TestFinalizeMatchReportsAndPersists(t *testing.T) {
	repo := &mockRepo{}
	reporter := &mockReporter{deltas: &rating.RatingDeltas{Player1Delta: 14, Player2Delta: -14}}

	deltas, err := FinalizeMatch(repo, reporter, finishedRecord())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deltas == nil || deltas.Player1Delta != 14 {
		t.Fatalf("deltas = %+v", deltas)
	}
	if len(reporter.reported) != 1 {
		t.Fatalf("report calls = %d", len(reporter.reported))
	}
	got := reporter.reported[0]
	if got.SessionID != "sess-1" || got.WinnerID == nil || *got.WinnerID != "p1" {
		t.Fatalf("result payload = %+v", got)
	}
	if repo.saved == nil {
		t.Fatal("record not persisted")
	}
	if !repo.saved.Reported {
		t.Error("record not marked reported")
	}
	if repo.saved.Player1Delta != 14 || repo.saved.Player2Delta != -14 {
		t.Errorf("stored deltas = %d/%d", repo.saved.Player1Delta, repo.saved.Player2Delta)
	}
	if !repo.statsUpdated {
		t.Error("player stats not updated")
	}
}

func TestFinalizeMatchStoresUnreportedOnFailure(t *testing.T) {
	repo := &mockRepo{}
	reporter := &mockReporter{reportErr: rating.ErrExhausted}

	deltas, err := FinalizeMatch(repo, reporter, finishedRecord())
	if !errors.Is(err, rating.ErrExhausted) {
		t.Fatalf("want ErrExhausted, got %v", err)
	}
	if deltas != nil {
		t.Fatalf("deltas = %+v", deltas)
	}
	if repo.saved == nil {
		t.Fatal("record must still be persisted")
	}
	if repo.saved.Reported {
		t.Error("record must stay unreported after delivery failure")
	}
	if !repo.statsUpdated {
		t.Error("stats must still fold in the match")
	}
}

func TestFinalizeMatchRequiresSession(t *testing.T) {
	repo := &mockRepo{}
	rec := finishedRecord()
	rec.SessionID = ""

	if _, err := FinalizeMatch(repo, &mockReporter{}, rec); !errors.Is(err, ErrMissingSession) {
		t.Fatalf("want ErrMissingSession, got %v", err)
	}
	if repo.saved != nil {
		t.Error("record without session must not be persisted")
	}
}

func TestFinalizeMatchDrawHasNoWinner(t *testing.T) {
	reporter := &mockReporter{}
	rec := finishedRecord()
	rec.WinnerID = ""

	if _, err := FinalizeMatch(&mockRepo{}, reporter, rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reporter.reported[0].WinnerID != nil {
		t.Errorf("winner = %v, want nil", *reporter.reported[0].WinnerID)
	}
}

func TestAbandonMatchNotifiesAndPersists(t *testing.T) {
	repo := &mockRepo{}
	reporter := &mockReporter{}
	rec := finishedRecord()
	rec.WinnerID = "p2"

	AbandonMatch(repo, reporter, rec)

	if len(reporter.abandonedCalls) != 1 || reporter.abandonedCalls[0] != "sess-1" {
		t.Fatalf("abandonment calls = %v", reporter.abandonedCalls)
	}
	if repo.saved == nil || !repo.saved.Abandoned {
		t.Fatal("abandoned record not persisted")
	}
	if !repo.statsUpdated {
		t.Error("player stats not updated")
	}
}

func TestAbandonMatchSurvivesNotificationFailure(t *testing.T) {
	repo := &mockRepo{}
	reporter := &mockReporter{abandonErr: errors.New("rating service down")}

	AbandonMatch(repo, reporter, finishedRecord())

	if repo.saved == nil || !repo.saved.Abandoned {
		t.Fatal("record must persist even when the notification fails")
	}
}
