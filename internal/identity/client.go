package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/umarudotdev/ft-transcendence-sub000/internal/constants"
)

// Identity is the resolved join-token payload returned by the platform's
// identity service.
type Identity struct {
	PlayerID       string `json:"player_id"`
	DisplayName    string `json:"display_name"`
	MatchSessionID string `json:"match_session_id"`
}

// Client resolves opaque join tokens against the identity service. Any
// non-success response is fatal to the join attempt; there are no retries
// here.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Resolve exchanges a join token for the player's identity.
func (c *Client) Resolve(ctx context.Context, token string) (*Identity, error) {
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("empty join token")
	}

	payload := map[string]string{"token": token}
	b, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+constants.IdentityResolvePath, strings.NewReader(string(b)))
	if err != nil {
		return nil, err
	}
	req.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)
	if apiKey := os.Getenv(constants.EnvIdentityAPIKey); apiKey != "" {
		req.Header.Set(constants.HeaderAuthorization, constants.BearerPrefix+apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("token resolution failed: %d %s", resp.StatusCode, string(body))
	}

	var out Identity
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode identity response: %w", err)
	}
	if out.PlayerID == "" || out.MatchSessionID == "" {
		return nil, fmt.Errorf("identity response missing player or session id")
	}
	return &out, nil
}
