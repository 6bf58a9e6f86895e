// Package postgres implements persistence for user settings and journal
// records on top of sqlx.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"obzvonbot/core/logger"
	"obzvonbot/internal/domain"
)

// Store wraps a live database handle. All methods are safe for concurrent use.
type Store struct {
	db *sqlx.DB
}

// New returns a Store over the given connection pool.
func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Settings loads the settings row for a user. A missing row is not an
// error: the result is nil, nil.
func (s *Store) Settings(ctx context.Context, userID int64) (*domain.Settings, error) {
	const q = `
		SELECT user_id, username, full_name, employee_name, region, created_date
		FROM user_settings
		WHERE user_id = $1`

	var out domain.Settings
	if err := s.db.GetContext(ctx, &out, q, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("storage: load settings for user %d: %w", userID, err)
	}
	return &out, nil
}

// SaveSettings upserts the settings row. Identity fields are always
// refreshed; employeeName and region only overwrite when non-nil, so a
// name update never clears a previously chosen region and vice versa.
func (s *Store) SaveSettings(ctx context.Context, userID int64, username, fullName string, employeeName, region *string) error {
	const q = `
		INSERT INTO user_settings (user_id, username, full_name, employee_name, region)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			username      = EXCLUDED.username,
			full_name     = EXCLUDED.full_name,
			employee_name = COALESCE(EXCLUDED.employee_name, user_settings.employee_name),
			region        = COALESCE(EXCLUDED.region, user_settings.region)`

	start := time.Now()
	if _, err := s.db.ExecContext(ctx, q, userID, username, fullName, employeeName, region); err != nil {
		return fmt.Errorf("storage: save settings for user %d: %w", userID, err)
	}
	logger.DB.DebugContext(ctx, "settings upserted",
		slog.String("event", "settings.upsert"),
		slog.Int64("user_id", userID),
		slog.Duration("duration", logger.Took(start)),
	)
	return nil
}

// SaveNumber appends one dialed-number record.
func (s *Store) SaveNumber(ctx context.Context, rec *domain.NumberRecord) error {
	const q = `
		INSERT INTO numbers (user_id, phone, comment, region, employee_name)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_date`

	start := time.Now()
	row := s.db.QueryRowxContext(ctx, q, rec.UserID, rec.Phone, rec.Comment, rec.Region, rec.EmployeeName)
	if err := row.Scan(&rec.ID, &rec.CreatedDate); err != nil {
		return fmt.Errorf("storage: save number for user %d: %w", rec.UserID, err)
	}
	logger.DB.DebugContext(ctx, "number inserted",
		slog.String("event", "number.insert"),
		slog.Int64("user_id", rec.UserID),
		slog.Int64("id", rec.ID),
		slog.Duration("duration", logger.Took(start)),
	)
	return nil
}

// SaveCallsign appends one callsign record.
func (s *Store) SaveCallsign(ctx context.Context, rec *domain.CallsignRecord) error {
	const q = `
		INSERT INTO pozivnoy (user_id, pozivnoy_number, region, employee_name)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_date`

	start := time.Now()
	row := s.db.QueryRowxContext(ctx, q, rec.UserID, rec.Callsign, rec.Region, rec.EmployeeName)
	if err := row.Scan(&rec.ID, &rec.CreatedDate); err != nil {
		return fmt.Errorf("storage: save callsign for user %d: %w", rec.UserID, err)
	}
	logger.DB.DebugContext(ctx, "callsign inserted",
		slog.String("event", "callsign.insert"),
		slog.Int64("user_id", rec.UserID),
		slog.Int64("id", rec.ID),
		slog.Duration("duration", logger.Took(start)),
	)
	return nil
}

// TodayNumbers returns the user's number records created today, in
// insertion order. The day boundary is the database server's date.
func (s *Store) TodayNumbers(ctx context.Context, userID int64) ([]domain.NumberRecord, error) {
	const q = `
		SELECT id, user_id, phone, comment, region, employee_name, created_date
		FROM numbers
		WHERE user_id = $1 AND created_date::date = CURRENT_DATE
		ORDER BY created_date`

	var out []domain.NumberRecord
	if err := s.db.SelectContext(ctx, &out, q, userID); err != nil {
		return nil, fmt.Errorf("storage: today's numbers for user %d: %w", userID, err)
	}
	return out, nil
}

// TodayCallsigns returns the user's callsign records created today, in
// insertion order.
func (s *Store) TodayCallsigns(ctx context.Context, userID int64) ([]domain.CallsignRecord, error) {
	const q = `
		SELECT id, user_id, pozivnoy_number, region, employee_name, created_date
		FROM pozivnoy
		WHERE user_id = $1 AND created_date::date = CURRENT_DATE
		ORDER BY created_date`

	var out []domain.CallsignRecord
	if err := s.db.SelectContext(ctx, &out, q, userID); err != nil {
		return nil, fmt.Errorf("storage: today's callsigns for user %d: %w", userID, err)
	}
	return out, nil
}
