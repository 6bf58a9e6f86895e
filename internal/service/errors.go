package service

import "errors"

var (
	// ErrSettingsIncomplete is returned when a record write is attempted
	// before the user has chosen both an employee name and a region.
	ErrSettingsIncomplete = errors.New("service: settings incomplete")

	// ErrUnknownRegion is returned when a submitted region label is not in
	// the configured region list.
	ErrUnknownRegion = errors.New("service: unknown region")
)
