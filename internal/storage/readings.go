package storage

import (
	"database/sql"
	"errors"
	"strings"

	"meter-bot/internal/models"
)

// AppendReading inserts one reading. The UNIQUE(user_id, resource, date)
// constraint backs up the duplicate-day check under concurrent writers;
// a constraint hit surfaces as models.ErrAlreadySubmitted.
func (d *DB) AppendReading(userID int64, res models.Resource, value float64, date string) error {
	_, err := d.Exec(`
        INSERT INTO readings (user_id, resource, value, date)
        VALUES (?,?,?,?)`, userID, res, value, date)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return models.ErrAlreadySubmitted
		}
		return &models.StorageError{Op: "append reading", Err: err}
	}
	return nil
}

// LatestBefore returns the most recent reading strictly before date, or
// nil if there is none.
func (d *DB) LatestBefore(userID int64, res models.Resource, date string) (*models.Reading, error) {
	var r models.Reading
	err := d.Get(&r, `
        SELECT id, user_id, resource, value, date FROM readings
        WHERE user_id=? AND resource=? AND date < ?
        ORDER BY date DESC, id DESC LIMIT 1`, userID, res, date)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, &models.StorageError{Op: "latest before", Err: err}
	}
	return &r, nil
}

func (d *DB) ExistsOn(userID int64, res models.Resource, date string) (bool, error) {
	var one int
	err := d.QueryRow(`
        SELECT 1 FROM readings WHERE user_id=? AND resource=? AND date=? LIMIT 1`,
		userID, res, date).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, &models.StorageError{Op: "exists on", Err: err}
	}
	return true, nil
}

// Series returns all readings for one (user, resource), date ascending,
// insertion order breaking ties.
func (d *DB) Series(userID int64, res models.Resource) ([]models.Reading, error) {
	var rs []models.Reading
	err := d.Select(&rs, `
        SELECT id, user_id, resource, value, date FROM readings
        WHERE user_id=? AND resource=?
        ORDER BY date ASC, id ASC`, userID, res)
	if err != nil {
		return nil, &models.StorageError{Op: "series", Err: err}
	}
	return rs, nil
}

// ReadingOn fetches the reading for an exact day, nil if absent.
func (d *DB) ReadingOn(userID int64, res models.Resource, date string) (*models.Reading, error) {
	var r models.Reading
	err := d.Get(&r, `
        SELECT id, user_id, resource, value, date FROM readings
        WHERE user_id=? AND resource=? AND date=?`, userID, res, date)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, &models.StorageError{Op: "reading on", Err: err}
	}
	return &r, nil
}

// DeleteReading removes the row only when both date and value match
// exactly, so a concurrent rewrite of the same day is never deleted by a
// stale confirmation. Reports whether a row went away.
func (d *DB) DeleteReading(userID int64, res models.Resource, date string, expectedValue float64) (bool, error) {
	result, err := d.Exec(`
        DELETE FROM readings WHERE user_id=? AND resource=? AND date=? AND value=?`,
		userID, res, date, expectedValue)
	if err != nil {
		return false, &models.StorageError{Op: "delete reading", Err: err}
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, &models.StorageError{Op: "delete reading", Err: err}
	}
	return n > 0, nil
}

// HasAnySince reports whether the user has at least one reading for any
// resource on or after cutoff. Drives the "satisfied this period" check.
func (d *DB) HasAnySince(userID int64, cutoff string) (bool, error) {
	var one int
	err := d.QueryRow(`
        SELECT 1 FROM readings WHERE user_id=? AND date >= ? LIMIT 1`,
		userID, cutoff).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, &models.StorageError{Op: "has any since", Err: err}
	}
	return true, nil
}
