package service

import (
	"context"
	"log/slog"

	"obzvonbot/core/logger"
	"obzvonbot/internal/domain"
)

// RecordStore is the persistence surface the records service needs.
type RecordStore interface {
	SaveNumber(ctx context.Context, rec *domain.NumberRecord) error
	SaveCallsign(ctx context.Context, rec *domain.CallsignRecord) error
	TodayNumbers(ctx context.Context, userID int64) ([]domain.NumberRecord, error)
	TodayCallsigns(ctx context.Context, userID int64) ([]domain.CallsignRecord, error)
}

// Records writes journal entries, snapshotting the user's current region
// and employee name into each row. Every write re-checks the settings gate
// so stale conversations cannot sneak a record past incomplete settings.
type Records struct {
	store    RecordStore
	settings *Settings
}

// NewRecords builds the records service.
func NewRecords(store RecordStore, settings *Settings) *Records {
	return &Records{store: store, settings: settings}
}

// AddNumber persists a dialed number with its comment. Returns
// ErrSettingsIncomplete when the user's profile is not fully set up.
func (r *Records) AddNumber(ctx context.Context, userID int64, phone, comment string) (*domain.NumberRecord, error) {
	settings, err := r.settings.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !settings.Complete() {
		return nil, ErrSettingsIncomplete
	}

	rec := &domain.NumberRecord{
		UserID:       userID,
		Phone:        phone,
		Comment:      comment,
		Region:       settings.RegionValue(),
		EmployeeName: settings.EmployeeNameValue(),
	}
	if err := r.store.SaveNumber(ctx, rec); err != nil {
		return nil, err
	}
	logger.SVCRecords.InfoContext(ctx, "number saved",
		slog.String("event", "record.number"),
		slog.Int64("user_id", userID),
		slog.String("region", rec.Region),
	)
	return rec, nil
}

// AddCallsign persists a callsign. Same gate as AddNumber.
func (r *Records) AddCallsign(ctx context.Context, userID int64, callsign string) (*domain.CallsignRecord, error) {
	settings, err := r.settings.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !settings.Complete() {
		return nil, ErrSettingsIncomplete
	}

	rec := &domain.CallsignRecord{
		UserID:       userID,
		Callsign:     callsign,
		Region:       settings.RegionValue(),
		EmployeeName: settings.EmployeeNameValue(),
	}
	if err := r.store.SaveCallsign(ctx, rec); err != nil {
		return nil, err
	}
	logger.SVCRecords.InfoContext(ctx, "callsign saved",
		slog.String("event", "record.callsign"),
		slog.Int64("user_id", userID),
		slog.String("region", rec.Region),
	)
	return rec, nil
}

// TodayNumbers lists the user's number records for the current day in
// insertion order.
func (r *Records) TodayNumbers(ctx context.Context, userID int64) ([]domain.NumberRecord, error) {
	return r.store.TodayNumbers(ctx, userID)
}

// TodayCallsigns lists the user's callsign records for the current day in
// insertion order.
func (r *Records) TodayCallsigns(ctx context.Context, userID int64) ([]domain.CallsignRecord, error) {
	return r.store.TodayCallsigns(ctx, userID)
}
