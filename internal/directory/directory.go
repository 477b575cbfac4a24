// Package directory keeps the reminder-eligible user set. Durable state
// lives in the users table; an in-memory mirror of active/remind_skipped
// lets the reminder cycle iterate without a storage round trip per user.
// Every mutation writes through to storage before touching the cache.
package directory

import (
	"sort"
	"sync"

	"meter-bot/internal/storage"
)

type entry struct {
	active        bool
	remindSkipped bool
}

type Directory struct {
	store *storage.DB

	mu    sync.RWMutex
	users map[int64]entry
}

// New loads all users from storage into the cache.
func New(store *storage.DB) (*Directory, error) {
	d := &Directory{store: store, users: make(map[int64]entry)}
	list, err := store.ListUsers()
	if err != nil {
		return nil, err
	}
	for _, u := range list {
		d.users[u.ID] = entry{active: u.Active, remindSkipped: u.RemindSkipped}
	}
	return d, nil
}

// EnsureActive registers a user on first contact, or re-activates a
// deactivated one. remind_skipped keeps its persisted value so an
// intra-period snooze survives a deactivate/reactivate cycle.
func (d *Directory) EnsureActive(userID int64) error {
	if err := d.store.EnsureActiveUser(userID); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	e := d.users[userID]
	e.active = true
	d.users[userID] = e
	return nil
}

// Deactivate removes the user from all future cycles. History stays.
func (d *Directory) Deactivate(userID int64) error {
	if err := d.store.SetUserActive(userID, false); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	e := d.users[userID]
	e.active = false
	d.users[userID] = e
	return nil
}

func (d *Directory) SetSnoozed(userID int64, snoozed bool) error {
	if err := d.store.SetRemindSkipped(userID, snoozed); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	e := d.users[userID]
	e.remindSkipped = snoozed
	d.users[userID] = e
	return nil
}

// ClearAllSnoozes resets every active user's snooze, the period boundary
// transition Snoozed -> Idle.
func (d *Directory) ClearAllSnoozes() error {
	if err := d.store.ClearRemindSkipped(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	for id, e := range d.users {
		if e.active {
			e.remindSkipped = false
			d.users[id] = e
		}
	}
	return nil
}

// ActiveUsers returns a snapshot of the active set, so callers can iterate
// and make slow external calls without holding the directory lock.
func (d *Directory) ActiveUsers() []int64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	ids := make([]int64, 0, len(d.users))
	for id, e := range d.users {
		if e.active {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (d *Directory) IsActive(userID int64) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.users[userID].active
}

func (d *Directory) IsSnoozed(userID int64) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.users[userID].remindSkipped
}
