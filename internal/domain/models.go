// Package domain declares the persisted entities of the call journal:
// one mutable settings row per user and two append-only record streams.
package domain

import "time"

// Settings is the per-user profile row. EmployeeName and Region stay nil
// until the user picks them in the employee section; data entry is refused
// while either is missing.
type Settings struct {
	UserID       int64     `db:"user_id"`
	Username     string    `db:"username"`
	FullName     string    `db:"full_name"`
	EmployeeName *string   `db:"employee_name"`
	Region       *string   `db:"region"`
	CreatedDate  time.Time `db:"created_date"`
}

// Complete reports whether both employee name and region are set.
func (s *Settings) Complete() bool {
	return s != nil && s.EmployeeName != nil && *s.EmployeeName != "" &&
		s.Region != nil && *s.Region != ""
}

// EmployeeNameValue returns the employee name or an empty string.
func (s *Settings) EmployeeNameValue() string {
	if s == nil || s.EmployeeName == nil {
		return ""
	}
	return *s.EmployeeName
}

// RegionValue returns the region or an empty string.
func (s *Settings) RegionValue() string {
	if s == nil || s.Region == nil {
		return ""
	}
	return *s.Region
}

// NumberRecord is one logged dialed number with its free-text comment.
// Region and employee name are denormalized snapshots taken at write time.
type NumberRecord struct {
	ID           int64     `db:"id"`
	UserID       int64     `db:"user_id"`
	Phone        string    `db:"phone"`
	Comment      string    `db:"comment"`
	Region       string    `db:"region"`
	EmployeeName string    `db:"employee_name"`
	CreatedDate  time.Time `db:"created_date"`
}

// CallsignRecord is one logged callsign number. Same lifecycle as
// NumberRecord: written once, never mutated.
type CallsignRecord struct {
	ID           int64     `db:"id"`
	UserID       int64     `db:"user_id"`
	Callsign     string    `db:"pozivnoy_number"`
	Region       string    `db:"region"`
	EmployeeName string    `db:"employee_name"`
	CreatedDate  time.Time `db:"created_date"`
}
