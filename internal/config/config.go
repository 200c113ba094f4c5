package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

type rawConfig struct {
	Server *struct {
		Address string `json:"address"`
	} `json:"server"`
	Rating *struct {
		BaseURL string `json:"base_url"`
	} `json:"rating"`
	Identity *struct {
		BaseURL string `json:"base_url"`
	} `json:"identity"`
	// Optional path to the sqlite database holding finished match records.
	DBPath string `json:"db_path"`
	// Optional overrides for the simulation schedule. The simulation tick
	// rate is fixed by the game tuning; only the broadcast divisor is
	// adjustable (how many simulation ticks elapse between state diffs).
	BroadcastDivisor int `json:"broadcast_divisor"`
	// Seconds a disconnected player may reconnect before the room treats
	// the match as abandoned.
	ReconnectWindowSeconds int `json:"reconnect_window_seconds"`
}

// LoadedConfig contains the validated server configuration.
type LoadedConfig struct {
	ServerAddress          string
	RatingBaseURL          string
	IdentityBaseURL        string
	DBPath                 string
	BroadcastDivisor       int
	ReconnectWindowSeconds int
}

// LoadConfig reads the configuration file at path and returns the validated
// configuration. Every key is optional; missing keys fall back to defaults
// suitable for local development.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	out := &LoadedConfig{
		ServerAddress:          ":8080",
		RatingBaseURL:          "http://localhost:9000",
		IdentityBaseURL:        "http://localhost:9001",
		DBPath:                 "./data/duel.db",
		BroadcastDivisor:       2,
		ReconnectWindowSeconds: 10,
	}
	if rc.Server != nil && rc.Server.Address != "" {
		out.ServerAddress = rc.Server.Address
	}
	if rc.Rating != nil && rc.Rating.BaseURL != "" {
		out.RatingBaseURL = strings.TrimRight(rc.Rating.BaseURL, "/")
	}
	if rc.Identity != nil && rc.Identity.BaseURL != "" {
		out.IdentityBaseURL = strings.TrimRight(rc.Identity.BaseURL, "/")
	}
	if rc.DBPath != "" {
		out.DBPath = rc.DBPath
	}
	if rc.BroadcastDivisor != 0 {
		if rc.BroadcastDivisor < 1 {
			return nil, fmt.Errorf("config file %s: broadcast_divisor must be >= 1", path)
		}
		out.BroadcastDivisor = rc.BroadcastDivisor
	}
	if rc.ReconnectWindowSeconds != 0 {
		if rc.ReconnectWindowSeconds < 0 {
			return nil, fmt.Errorf("config file %s: reconnect_window_seconds must not be negative", path)
		}
		out.ReconnectWindowSeconds = rc.ReconnectWindowSeconds
	}
	return out, nil
}
