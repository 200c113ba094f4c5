package storage

// Repository is the persistence surface used by the match service and the
// read-side API handlers.
type Repository interface {
	SaveMatch(rec *MatchRecord) error
	GetMatchBySession(sessionID string) (*MatchRecord, error)
	ListRecentMatches(limit int) ([]MatchRecord, error)
	UpdateStatsOnMatchEnd(rec *MatchRecord) error
	Leaderboard(limit int) ([]PlayerStats, error)
}
