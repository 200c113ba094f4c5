package rating

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testResult() MatchResult {
	winner := "p1"
	return MatchResult{
		SessionID:       "sess-1",
		Player1ID:       "p1",
		Player2ID:       "p2",
		Player1Score:    3,
		Player2Score:    1,
		WinnerID:        &winner,
		DurationSeconds: 120,
		GameType:        "duel",
	}
}

func newTestClient(url string) *Client {
	c := NewClient(url)
	c.backoff = time.Millisecond
	return c
}

func TestReportSuccessReturnsDeltas(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var got MatchResult
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("bad payload: %v", err)
		}
		if got.SessionID != "sess-1" || got.WinnerID == nil || *got.WinnerID != "p1" {
			t.Errorf("unexpected payload: %+v", got)
		}
		_ = json.NewEncoder(w).Encode(RatingDeltas{Player1Delta: 12, Player2Delta: -12})
	}))
	defer srv.Close()

	deltas, err := newTestClient(srv.URL).Report(context.Background(), testResult())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deltas == nil || deltas.Player1Delta != 12 || deltas.Player2Delta != -12 {
		t.Fatalf("deltas = %+v", deltas)
	}
}

func TestReportConflictStopsAsSuccess(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusConflict)
	}))
	defer srv.Close()

	deltas, err := newTestClient(srv.URL).Report(context.Background(), testResult())
	if err != nil {
		t.Fatalf("409 must terminate as success, got %v", err)
	}
	if deltas != nil {
		t.Fatalf("409 carries no deltas, got %+v", deltas)
	}
	if calls != 1 {
		t.Fatalf("409 retried: %d calls", calls)
	}
}

func TestReportBadRequestNotRetried(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Report(context.Background(), testResult())
	if !errors.Is(err, ErrRejected) {
		t.Fatalf("want ErrRejected, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("non-retryable failure retried: %d calls", calls)
	}
}

func TestReportRetriesServerErrors(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(RatingDeltas{Player1Delta: 5, Player2Delta: -5})
	}))
	defer srv.Close()

	deltas, err := newTestClient(srv.URL).Report(context.Background(), testResult())
	if err != nil {
		t.Fatalf("retryable path failed: %v", err)
	}
	if deltas == nil || deltas.Player1Delta != 5 {
		t.Fatalf("deltas = %+v", deltas)
	}
	if calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls)
	}
}

func TestReportExhaustsAttempts(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Report(context.Background(), testResult())
	if !errors.Is(err, ErrExhausted) {
		t.Fatalf("want ErrExhausted, got %v", err)
	}
	if calls != maxAttempts {
		t.Fatalf("attempts = %d, want %d", calls, maxAttempts)
	}
}

func TestNotifyAbandonedSingleAttempt(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).NotifyAbandoned(context.Background(), "sess-1")
	if err == nil {
		t.Fatalf("expected error from failed notification")
	}
	if calls != 1 {
		t.Fatalf("abandonment notification retried: %d calls", calls)
	}
}
