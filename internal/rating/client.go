package rating

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/umarudotdev/ft-transcendence-sub000/internal/constants"
	"github.com/umarudotdev/ft-transcendence-sub000/internal/logging"
)

const (
	maxAttempts    = 3
	initialBackoff = time.Second
)

var (
	// ErrRejected marks a non-retryable 4xx from the rating service (bad
	// payload); the report is dropped without further attempts.
	ErrRejected = errors.New("rating service rejected the report")
	// ErrExhausted marks a report that failed every attempt.
	ErrExhausted = errors.New("rating report attempts exhausted")
)

// MatchResult is the terminal payload sent once per finished match.
type MatchResult struct {
	SessionID       string  `json:"sessionId"`
	Player1ID       string  `json:"player1Id"`
	Player2ID       string  `json:"player2Id"`
	Player1Score    int     `json:"player1Score"`
	Player2Score    int     `json:"player2Score"`
	WinnerID        *string `json:"winnerId"`
	DurationSeconds int     `json:"durationSeconds"`
	GameType        string  `json:"gameType"`
	IsAIGame        bool    `json:"isAiGame"`
}

// RatingDeltas carries the per-player rating changes returned on a
// successful report; they are relayed to clients before the match is
// disposed. A 409 (already reported) yields a nil deltas with no error.
type RatingDeltas struct {
	Player1Delta int `json:"player1Delta"`
	Player2Delta int `json:"player2Delta"`
}

// Client delivers match results to the rating service with the retry and
// idempotency policy of the reporting contract.
type Client struct {
	baseURL string
	http    *http.Client
	backoff time.Duration
	group   singleflight.Group
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		backoff: initialBackoff,
	}
}

// Report posts the result with up to three attempts and exponential backoff.
// A 409 terminates as success (the service already has this session); any
// other 4xx terminates as ErrRejected; 5xx and transport failures are
// retried. Concurrent reports for the same session are collapsed into one
// in-flight request.
func (c *Client) Report(ctx context.Context, result MatchResult) (*RatingDeltas, error) {
	v, err, _ := c.group.Do(result.SessionID, func() (interface{}, error) {
		return c.report(ctx, result)
	})
	if err != nil {
		return nil, err
	}
	deltas, _ := v.(*RatingDeltas)
	return deltas, nil
}

func (c *Client) report(ctx context.Context, result MatchResult) (*RatingDeltas, error) {
	body, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}

	backoff := c.backoff
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		deltas, retry, err := c.post(ctx, constants.RatingReportPath, body)
		if err == nil {
			return deltas, nil
		}
		if !retry {
			return nil, err
		}
		lastErr = err
		logging.Warn("rating report attempt failed", logging.Fields{
			constants.LogFieldSessionID: result.SessionID,
			constants.LogFieldAttempt:   attempt,
			"error":                     err.Error(),
		})
		if attempt == maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return nil, fmt.Errorf("%w: %v", ErrExhausted, lastErr)
}

// post performs one delivery attempt. The bool result reports whether the
// failure is retryable.
func (c *Client) post(ctx context.Context, path string, body []byte) (*RatingDeltas, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, false, err
	}
	req.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)
	if apiKey := os.Getenv(constants.EnvRatingAPIKey); apiKey != "" {
		req.Header.Set(constants.HeaderAuthorization, constants.BearerPrefix+apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, true, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		var deltas RatingDeltas
		if err := json.NewDecoder(resp.Body).Decode(&deltas); err != nil {
			// Delivered; a malformed deltas body is not worth a retry.
			return nil, false, nil
		}
		return &deltas, false, nil
	case resp.StatusCode == http.StatusConflict:
		// Idempotency hit: the service already recorded this session.
		return nil, false, nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		b, _ := io.ReadAll(resp.Body)
		return nil, false, fmt.Errorf("%w: %d %s", ErrRejected, resp.StatusCode, string(b))
	default:
		b, _ := io.ReadAll(resp.Body)
		return nil, true, fmt.Errorf("rating service error: %d %s", resp.StatusCode, string(b))
	}
}

// NotifyAbandoned sends the best-effort abandonment notification. One
// attempt, no retries; failures are logged by the caller.
func (c *Client) NotifyAbandoned(ctx context.Context, sessionID string) error {
	body, _ := json.Marshal(map[string]string{"sessionId": sessionID})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+constants.RatingAbandonedPath, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)
	if apiKey := os.Getenv(constants.EnvRatingAPIKey); apiKey != "" {
		req.Header.Set(constants.HeaderAuthorization, constants.BearerPrefix+apiKey)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("abandonment notification failed: %d", resp.StatusCode)
	}
	return nil
}
