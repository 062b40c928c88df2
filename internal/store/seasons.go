// Package store holds the SQL-backed season registry: the local record of
// every season provisioned through the wizard.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var ErrSeasonNotFound = errors.New("season not found")

// Season is one registry row. StartDate and CreatedAt are stored as text
// (YYYY-MM-DD) and timestamp respectively.
type Season struct {
	ID         int64
	Name       string
	LeagueType string
	IsCurrent  bool
	StartDate  string
	CreatedAt  time.Time
}

// DBTX is the common surface of *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

// SeasonStore runs registry queries against a database or transaction.
type SeasonStore struct {
	db DBTX
}

func New(db DBTX) *SeasonStore {
	return &SeasonStore{db: db}
}

// WithTx returns a store bound to the given transaction.
func (s *SeasonStore) WithTx(tx *sql.Tx) *SeasonStore {
	return &SeasonStore{db: tx}
}

const insertSeason = `
INSERT INTO seasons (name, league_type, is_current, start_date)
VALUES (?, ?, ?, ?)
`

// Insert records a provisioned season and returns its registry ID.
func (s *SeasonStore) Insert(ctx context.Context, season Season) (int64, error) {
	res, err := s.db.ExecContext(ctx, insertSeason,
		season.Name, season.LeagueType, season.IsCurrent, season.StartDate)
	if err != nil {
		return 0, fmt.Errorf("insert season: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert season id: %w", err)
	}
	return id, nil
}

const listSeasonsByType = `
SELECT id, name, league_type, is_current, COALESCE(start_date, ''), created_at
FROM seasons
WHERE league_type = ?
ORDER BY created_at DESC, id DESC
`

// ListByType returns every registered season of a league type, newest first.
func (s *SeasonStore) ListByType(ctx context.Context, leagueType string) ([]Season, error) {
	rows, err := s.db.QueryContext(ctx, listSeasonsByType, leagueType)
	if err != nil {
		return nil, fmt.Errorf("list seasons: %w", err)
	}
	defer rows.Close()

	var seasons []Season
	for rows.Next() {
		var season Season
		if err := rows.Scan(&season.ID, &season.Name, &season.LeagueType,
			&season.IsCurrent, &season.StartDate, &season.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan season: %w", err)
		}
		seasons = append(seasons, season)
	}
	return seasons, rows.Err()
}

const getSeason = `
SELECT id, name, league_type, is_current, COALESCE(start_date, ''), created_at
FROM seasons
WHERE id = ?
`

// Get returns one registry row by ID.
func (s *SeasonStore) Get(ctx context.Context, id int64) (Season, error) {
	var season Season
	err := s.db.QueryRowContext(ctx, getSeason, id).Scan(
		&season.ID, &season.Name, &season.LeagueType,
		&season.IsCurrent, &season.StartDate, &season.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Season{}, ErrSeasonNotFound
	}
	if err != nil {
		return Season{}, fmt.Errorf("get season: %w", err)
	}
	return season, nil
}

const existsSeasonByName = `
SELECT COUNT(*) FROM seasons WHERE lower(name) = lower(?) AND league_type = ?
`

// ExistsByName reports whether a season of the given name (case-insensitive)
// is already registered for the league type.
func (s *SeasonStore) ExistsByName(ctx context.Context, name, leagueType string) (bool, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, existsSeasonByName, name, leagueType).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("count season by name: %w", err)
	}
	return count > 0, nil
}

const unsetCurrentSeasons = `
UPDATE seasons SET is_current = 0 WHERE league_type = ? AND is_current = 1
`

// UnsetCurrent clears the current flag for every season of a league type.
func (s *SeasonStore) UnsetCurrent(ctx context.Context, leagueType string) error {
	if _, err := s.db.ExecContext(ctx, unsetCurrentSeasons, leagueType); err != nil {
		return fmt.Errorf("unset current seasons: %w", err)
	}
	return nil
}

const setCurrentSeason = `
UPDATE seasons SET is_current = 1 WHERE id = ?
`

// SetCurrent marks one season current for its league type, unsetting the
// previous current season of that type. Callers run this inside a
// transaction via WithTx.
func (s *SeasonStore) SetCurrent(ctx context.Context, id int64) error {
	season, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, unsetCurrentSeasons, season.LeagueType); err != nil {
		return fmt.Errorf("unset current seasons: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, setCurrentSeason, id); err != nil {
		return fmt.Errorf("set current season: %w", err)
	}
	return nil
}

const deleteSeason = `
DELETE FROM seasons WHERE id = ?
`

// Delete removes one registry row.
func (s *SeasonStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, deleteSeason, id)
	if err != nil {
		return fmt.Errorf("delete season: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete season rows: %w", err)
	}
	if affected == 0 {
		return ErrSeasonNotFound
	}
	return nil
}
