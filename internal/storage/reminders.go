package storage

import (
	"time"

	"meter-bot/internal/models"
)

// UpsertDeferred schedules (or reschedules) the one-shot follow-up for a
// user. One row per user: asking twice just moves the due time.
func (d *DB) UpsertDeferred(userID int64, dueAt time.Time) error {
	_, err := d.Exec(`
        INSERT INTO deferred_reminders (user_id, due_at) VALUES (?,?)
        ON CONFLICT(user_id) DO UPDATE SET due_at=excluded.due_at`,
		userID, dueAt.Unix())
	if err != nil {
		return &models.StorageError{Op: "upsert deferred", Err: err}
	}
	return nil
}

// ListDueDeferred returns follow-ups whose due time has passed.
func (d *DB) ListDueDeferred(now time.Time) ([]models.DeferredReminder, error) {
	var rs []models.DeferredReminder
	err := d.Select(&rs, `
        SELECT user_id, due_at FROM deferred_reminders WHERE due_at <= ?`, now.Unix())
	if err != nil {
		return nil, &models.StorageError{Op: "list due deferred", Err: err}
	}
	return rs, nil
}

func (d *DB) DeleteDeferred(userID int64) error {
	_, err := d.Exec(`DELETE FROM deferred_reminders WHERE user_id=?`, userID)
	if err != nil {
		return &models.StorageError{Op: "delete deferred", Err: err}
	}
	return nil
}
