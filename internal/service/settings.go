// Package service holds the application rules between the bot surface and
// the storage layer: profile upserts, the settings gate, and record writes.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"obzvonbot/core/logger"
	"obzvonbot/internal/domain"
)

// SettingsStore is the persistence surface the settings service needs.
type SettingsStore interface {
	Settings(ctx context.Context, userID int64) (*domain.Settings, error)
	SaveSettings(ctx context.Context, userID int64, username, fullName string, employeeName, region *string) error
}

// Settings manages per-user profiles and validates region choices against
// the configured list.
type Settings struct {
	store   SettingsStore
	regions []string
	known   map[string]struct{}
}

// NewSettings builds the settings service over the given store and region list.
func NewSettings(store SettingsStore, regions []string) *Settings {
	known := make(map[string]struct{}, len(regions))
	for _, r := range regions {
		known[r] = struct{}{}
	}
	return &Settings{store: store, regions: regions, known: known}
}

// Regions returns the configured region labels in display order.
func (s *Settings) Regions() []string {
	return s.regions
}

// IsRegion reports whether the label is one of the configured regions.
func (s *Settings) IsRegion(label string) bool {
	_, ok := s.known[label]
	return ok
}

// Get loads the user's settings. The result is nil when the user has never
// been seen.
func (s *Settings) Get(ctx context.Context, userID int64) (*domain.Settings, error) {
	return s.store.Settings(ctx, userID)
}

// EnsureProfile refreshes the identity fields of the user's row without
// touching employee name or region. Called on /start so the row exists
// before any other interaction.
func (s *Settings) EnsureProfile(ctx context.Context, userID int64, username, fullName string) error {
	if err := s.store.SaveSettings(ctx, userID, username, fullName, nil, nil); err != nil {
		return err
	}
	logger.SVCSettings.DebugContext(ctx, "profile ensured",
		slog.String("event", "profile.ensure"),
		slog.Int64("user_id", userID),
	)
	return nil
}

// SetEmployeeName stores the employee name, leaving the region untouched.
func (s *Settings) SetEmployeeName(ctx context.Context, userID int64, username, fullName, name string) error {
	if err := s.store.SaveSettings(ctx, userID, username, fullName, &name, nil); err != nil {
		return err
	}
	logger.SVCSettings.InfoContext(ctx, "employee name saved",
		slog.String("event", "settings.employee_name"),
		slog.Int64("user_id", userID),
	)
	return nil
}

// SetRegion validates the label against the configured list and stores it,
// leaving the employee name untouched.
func (s *Settings) SetRegion(ctx context.Context, userID int64, username, fullName, region string) error {
	if !s.IsRegion(region) {
		return fmt.Errorf("%w: %q", ErrUnknownRegion, region)
	}
	if err := s.store.SaveSettings(ctx, userID, username, fullName, nil, &region); err != nil {
		return err
	}
	logger.SVCSettings.InfoContext(ctx, "region saved",
		slog.String("event", "settings.region"),
		slog.Int64("user_id", userID),
		slog.String("region", region),
	)
	return nil
}
