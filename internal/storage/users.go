package storage

import (
	"database/sql"
	"errors"
	"time"

	"meter-bot/internal/models"
)

// EnsureActiveUser inserts the user as active, or re-activates an existing
// row. remind_skipped is deliberately left as persisted: a snooze survives
// a deactivate/reactivate cycle within the same period.
func (d *DB) EnsureActiveUser(userID int64) error {
	_, err := d.Exec(`
        INSERT INTO users (user_id, active, remind_skipped, created_at)
        VALUES (?,1,0,?)
        ON CONFLICT(user_id) DO UPDATE SET active=1`, userID, time.Now().Unix())
	if err != nil {
		return &models.StorageError{Op: "ensure active user", Err: err}
	}
	return nil
}

func (d *DB) SetUserActive(userID int64, active bool) error {
	_, err := d.Exec(`UPDATE users SET active=? WHERE user_id=?`, active, userID)
	if err != nil {
		return &models.StorageError{Op: "set user active", Err: err}
	}
	return nil
}

func (d *DB) SetRemindSkipped(userID int64, skipped bool) error {
	_, err := d.Exec(`UPDATE users SET remind_skipped=? WHERE user_id=?`, skipped, userID)
	if err != nil {
		return &models.StorageError{Op: "set remind skipped", Err: err}
	}
	return nil
}

// ClearRemindSkipped resets the snooze flag for every active user; runs on
// the period boundary.
func (d *DB) ClearRemindSkipped() error {
	_, err := d.Exec(`UPDATE users SET remind_skipped=0 WHERE active=1`)
	if err != nil {
		return &models.StorageError{Op: "clear remind skipped", Err: err}
	}
	return nil
}

func (d *DB) GetUser(userID int64) (*models.User, error) {
	var u models.User
	err := d.Get(&u, `
        SELECT user_id, active, remind_skipped, created_at FROM users WHERE user_id=?`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, &models.StorageError{Op: "get user", Err: err}
	}
	return &u, nil
}

func (d *DB) ListUsers() ([]models.User, error) {
	var us []models.User
	err := d.Select(&us, `SELECT user_id, active, remind_skipped, created_at FROM users`)
	if err != nil {
		return nil, &models.StorageError{Op: "list users", Err: err}
	}
	return us, nil
}

// ---------- input-mode state (fsm) ------------------------------------

func (d *DB) SetUserState(userID int64, state string) error {
	_, err := d.Exec(`
        INSERT INTO user_states (user_id, state) VALUES (?,?)
        ON CONFLICT(user_id) DO UPDATE SET state=excluded.state`, userID, state)
	if err != nil {
		return &models.StorageError{Op: "set user state", Err: err}
	}
	return nil
}

func (d *DB) GetUserState(userID int64) (string, error) {
	var st string
	err := d.QueryRow(`SELECT state FROM user_states WHERE user_id=?`, userID).Scan(&st)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", &models.StorageError{Op: "get user state", Err: err}
	}
	return st, nil
}
