package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/blockvibe/ranker/internal/domain"
)

// ProfileStore is the read/write surface the service needs from profile
// storage. An absent profile is (nil, nil), never an error; callers fall
// back to baseline-only personalization.
type ProfileStore interface {
	GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error)
	SaveProfile(ctx context.Context, profile *domain.UserProfile) error
}

const profileSchema = `
CREATE TABLE IF NOT EXISTS user_profiles (
	user_id         TEXT PRIMARY KEY,
	interests       TEXT NOT NULL DEFAULT '[]',
	reading_history TEXT NOT NULL DEFAULT '[]',
	preferences     TEXT NOT NULL DEFAULT '{}',
	last_updated    TIMESTAMP NOT NULL
)`

// ProfileRepository handles database operations for user profiles. List
// fields are stored as JSON text columns; SQLite has no array type.
type ProfileRepository struct {
	db *sqlx.DB
}

// NewProfileRepository creates a new profile repository.
func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// EnsureSchema creates the profile table if it does not exist.
func (r *ProfileRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, profileSchema); err != nil {
		return fmt.Errorf("failed to create profile schema: %w", err)
	}
	return nil
}

// profileRow is the storage shape of a profile.
type profileRow struct {
	UserID         string    `db:"user_id"`
	Interests      string    `db:"interests"`
	ReadingHistory string    `db:"reading_history"`
	Preferences    string    `db:"preferences"`
	LastUpdated    time.Time `db:"last_updated"`
}

// GetProfile retrieves a profile by user id. A missing profile returns
// (nil, nil).
func (r *ProfileRepository) GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	var row profileRow
	query := `
		SELECT user_id, interests, reading_history, preferences, last_updated
		FROM user_profiles
		WHERE user_id = ?
	`

	err := r.db.GetContext(ctx, &row, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile %s: %w", userID, err)
	}

	profile := &domain.UserProfile{
		UserID:      row.UserID,
		LastUpdated: row.LastUpdated,
	}
	if err := json.Unmarshal([]byte(row.Interests), &profile.Interests); err != nil {
		return nil, fmt.Errorf("failed to decode interests for %s: %w", userID, err)
	}
	if err := json.Unmarshal([]byte(row.ReadingHistory), &profile.ReadingHistory); err != nil {
		return nil, fmt.Errorf("failed to decode reading history for %s: %w", userID, err)
	}
	if err := json.Unmarshal([]byte(row.Preferences), &profile.Preferences); err != nil {
		return nil, fmt.Errorf("failed to decode preferences for %s: %w", userID, err)
	}

	return profile, nil
}

// SaveProfile inserts or replaces a profile.
func (r *ProfileRepository) SaveProfile(ctx context.Context, profile *domain.UserProfile) error {
	interests, err := json.Marshal(profile.Interests)
	if err != nil {
		return fmt.Errorf("failed to encode interests: %w", err)
	}
	history, err := json.Marshal(profile.ReadingHistory)
	if err != nil {
		return fmt.Errorf("failed to encode reading history: %w", err)
	}
	preferences, err := json.Marshal(profile.Preferences)
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}

	lastUpdated := profile.LastUpdated
	if lastUpdated.IsZero() {
		lastUpdated = time.Now().UTC()
	}

	query := `
		INSERT INTO user_profiles (user_id, interests, reading_history, preferences, last_updated)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			interests = excluded.interests,
			reading_history = excluded.reading_history,
			preferences = excluded.preferences,
			last_updated = excluded.last_updated
	`

	if _, err := r.db.ExecContext(ctx, query,
		profile.UserID, string(interests), string(history), string(preferences), lastUpdated,
	); err != nil {
		return fmt.Errorf("failed to save profile %s: %w", profile.UserID, err)
	}

	return nil
}
