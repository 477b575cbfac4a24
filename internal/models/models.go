package models

import "time"

// Reading is one cumulative meter value for one resource and one user.
// Date is a calendar day (YYYY-MM-DD), at most one reading per
// (user, resource, day).
type Reading struct {
	ID       int64    `db:"id"`
	UserID   int64    `db:"user_id"`
	Resource Resource `db:"resource"`
	Value    float64  `db:"value"`
	Date     string   `db:"date"` // YYYY-MM-DD
}

// User holds reminder eligibility for a telegram account.
type User struct {
	ID            int64 `db:"user_id"`
	Active        bool  `db:"active"`         // false -> do not contact
	RemindSkipped bool  `db:"remind_skipped"` // true -> snoozed for this period
	CreatedAt     int64 `db:"created_at"`
}

// UndoSlot keeps the last deleted reading per user for the undo grace window.
type UndoSlot struct {
	Resource  Resource
	Date      string
	Value     float64
	DeletedAt time.Time
}

// DeferredReminder is a persisted one-shot "remind tomorrow" follow-up.
type DeferredReminder struct {
	UserID int64 `db:"user_id"`
	DueAt  int64 `db:"due_at"` // unix seconds
}

// DateLayout is the storage format for reading dates.
const DateLayout = "2006-01-02"
