package storage

import "gorm.io/gorm"

// MatchRecord is the locally persisted outcome of a finished or abandoned
// match. The rating service remains the system of record; this table backs
// the history and leaderboard API.
type MatchRecord struct {
	gorm.Model
	SessionID       string `json:"session_id" gorm:"uniqueIndex"`
	RoomCode        string `json:"room_code"`
	Player1ID       string `json:"player1_id"`
	Player1Name     string `json:"player1_name"`
	Player2ID       string `json:"player2_id"`
	Player2Name     string `json:"player2_name"`
	Player1Score    int    `json:"player1_score"`
	Player2Score    int    `json:"player2_score"`
	WinnerID        string `json:"winner_id"`
	DurationSeconds int    `json:"duration_seconds"`
	GameType        string `json:"game_type"`
	Abandoned       bool   `json:"abandoned"`
	// Reported is set once the rating service acknowledged the result
	// (including the 409 already-reported case).
	Reported     bool `json:"-"`
	Player1Delta int  `json:"player1_delta"`
	Player2Delta int  `json:"player2_delta"`
}

func (MatchRecord) TableName() string { return "match_records" }

// PlayerStats stores aggregate per-player results.
type PlayerStats struct {
	gorm.Model
	PlayerID    string `json:"player_id" gorm:"uniqueIndex"`
	DisplayName string `json:"display_name"`
	GamesPlayed int    `json:"games_played"`
	Wins        int    `json:"wins"`
	Losses      int    `json:"losses"`
	Abandoned   int    `json:"abandoned"`
}

func (PlayerStats) TableName() string { return "player_stats" }
