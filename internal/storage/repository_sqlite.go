package storage

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

// SaveMatch upserts the record keyed by session id so a report retried
// after a crash does not create a duplicate row.
func (r *sqliteRepository) SaveMatch(rec *MatchRecord) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "session_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"player1_score", "player2_score", "winner_id",
			"duration_seconds", "abandoned", "reported",
			"player1_delta", "player2_delta",
		}),
	}).Create(rec).Error
}

func (r *sqliteRepository) GetMatchBySession(sessionID string) (*MatchRecord, error) {
	var rec MatchRecord
	err := r.db.Where("session_id = ?", sessionID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *sqliteRepository) ListRecentMatches(limit int) ([]MatchRecord, error) {
	var recs []MatchRecord
	err := r.db.Order("created_at DESC").Limit(limit).Find(&recs).Error
	return recs, err
}

// UpdateStatsOnMatchEnd folds a finished match into both players' aggregate
// rows. Abandoned matches count as played but neither won nor lost.
func (r *sqliteRepository) UpdateStatsOnMatchEnd(rec *MatchRecord) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		apply := func(playerID, name string) error {
			if playerID == "" {
				return nil
			}
			var st PlayerStats
			err := tx.Where("player_id = ?", playerID).First(&st).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				st = PlayerStats{PlayerID: playerID, DisplayName: name}
			} else if err != nil {
				return err
			}
			st.DisplayName = name
			st.GamesPlayed++
			switch {
			case rec.Abandoned:
				st.Abandoned++
			case rec.WinnerID == playerID:
				st.Wins++
			case rec.WinnerID != "":
				st.Losses++
			}
			return tx.Save(&st).Error
		}
		if err := apply(rec.Player1ID, rec.Player1Name); err != nil {
			return err
		}
		return apply(rec.Player2ID, rec.Player2Name)
	})
}

func (r *sqliteRepository) Leaderboard(limit int) ([]PlayerStats, error) {
	var stats []PlayerStats
	err := r.db.Order("wins DESC, games_played ASC").Limit(limit).Find(&stats).Error
	return stats, err
}
