package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/SpoonyCreature/berea/internal/apperr"
	"github.com/SpoonyCreature/berea/internal/study"
)

// GetUserContext returns the context record for owner.
func (db *DB) GetUserContext(owner string) (*study.UserContext, error) {
	row := db.conn.QueryRow(`
		SELECT owner, notes, bible_coverage, favorite_topics,
			last_activity, study_streak, last_study_date
		FROM user_contexts WHERE owner = ?
	`, owner)

	var uc study.UserContext
	var notes, cov, topics string
	var lastStudy sql.NullTime
	err := row.Scan(&uc.Owner, &notes, &cov, &topics,
		&uc.LastActivity, &uc.StudyStreak, &lastStudy)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: scan user context: %w", err)
	}
	if lastStudy.Valid {
		uc.LastStudyDate = lastStudy.Time
	}
	_ = json.Unmarshal([]byte(notes), &uc.Notes)
	_ = json.Unmarshal([]byte(cov), &uc.BibleCoverage)
	_ = json.Unmarshal([]byte(topics), &uc.FavoriteTopics)
	return &uc, nil
}

// UpsertUserContext inserts or replaces the context record for uc.Owner.
func (db *DB) UpsertUserContext(uc *study.UserContext) error {
	notes, _ := json.Marshal(nonNil(uc.Notes))
	cov, _ := json.Marshal(nonNil(uc.BibleCoverage))
	topics, _ := json.Marshal(nonNil(uc.FavoriteTopics))

	var lastStudy any
	if !uc.LastStudyDate.IsZero() {
		lastStudy = uc.LastStudyDate
	}

	_, err := db.conn.Exec(`
		INSERT INTO user_contexts (owner, notes, bible_coverage, favorite_topics,
			last_activity, study_streak, last_study_date)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(owner) DO UPDATE SET
			notes           = excluded.notes,
			bible_coverage  = excluded.bible_coverage,
			favorite_topics = excluded.favorite_topics,
			last_activity   = excluded.last_activity,
			study_streak    = excluded.study_streak,
			last_study_date = excluded.last_study_date
	`, uc.Owner, string(notes), string(cov), string(topics),
		time.Now(), uc.StudyStreak, lastStudy)
	if err != nil {
		return fmt.Errorf("store: upsert user context: %w", err)
	}
	return nil
}
