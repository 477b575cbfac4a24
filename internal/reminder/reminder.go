// Package reminder drives the monthly "time to submit readings" cycle and
// the one-off next-day follow-ups. Per-user reminder state is small: a
// snooze flag in the directory, membership of the active set, and a
// derived "satisfied" check against the reading store. The chat transport
// is a collaborator behind the Gateway interface.
package reminder

import (
	"fmt"
	"log/slog"
	"time"

	"meter-bot/internal/directory"
	"meter-bot/internal/models"
	"meter-bot/internal/storage"
)

// Gateway is the outbound side of the messaging transport.
type Gateway interface {
	// SendReminder sends the monthly prompt with the
	// "remind tomorrow" / "already done" affordances.
	SendReminder(userID int64) error
	// SendFollowUp sends the plain next-day re-ping.
	SendFollowUp(userID int64) error
}

type Service struct {
	store *storage.DB
	dir   *directory.Directory
	gw    Gateway
	log   *slog.Logger
	loc   *time.Location
	hour  int // local hour for deferred follow-ups
}

func New(store *storage.DB, dir *directory.Directory, gw Gateway, log *slog.Logger, loc *time.Location, hour int) *Service {
	return &Service{store: store, dir: dir, gw: gw, log: log, loc: loc, hour: hour}
}

// RunMonthlyCycle fires once per period, on the reset boundary: it clears
// every active user's snooze first, then prompts everyone who has not yet
// submitted anything this period. One user's failure never stops the
// iteration; a permanently unreachable user leaves the active set.
func (s *Service) RunMonthlyCycle(now time.Time) {
	if err := s.dir.ClearAllSnoozes(); err != nil {
		s.log.Error("reminder cycle: clearing snoozes", "err", err)
		return
	}
	// after the reset no active user is snoozed, so eligibility is just
	// the satisfied check
	for _, userID := range s.dir.ActiveUsers() {
		done, err := s.satisfied(userID, now)
		if err != nil {
			s.log.Error("reminder cycle: satisfied check", "user", userID, "err", err)
			continue
		}
		if done {
			continue
		}
		if err := s.gw.SendReminder(userID); err != nil {
			s.handleDeliveryError(userID, err)
		}
	}
}

// RunDeferredSweep sends follow-ups whose due time has passed. The
// applicability conditions are re-evaluated at fire time: the user may
// have submitted, snoozed, or vanished since asking for the re-ping.
func (s *Service) RunDeferredSweep(now time.Time) {
	due, err := s.store.ListDueDeferred(now)
	if err != nil {
		s.log.Error("deferred sweep: listing", "err", err)
		return
	}
	for _, r := range due {
		if err := s.store.DeleteDeferred(r.UserID); err != nil {
			s.log.Error("deferred sweep: clearing row", "user", r.UserID, "err", err)
			continue
		}
		if !s.dir.IsActive(r.UserID) || s.dir.IsSnoozed(r.UserID) {
			continue
		}
		done, err := s.satisfied(r.UserID, now)
		if err != nil {
			s.log.Error("deferred sweep: satisfied check", "user", r.UserID, "err", err)
			continue
		}
		if done {
			continue
		}
		if err := s.gw.SendFollowUp(r.UserID); err != nil {
			s.handleDeliveryError(r.UserID, err)
		}
	}
}

// Defer schedules the one-off follow-up for tomorrow at the configured
// local hour. Persisted, so it survives a restart.
func (s *Service) Defer(userID int64, now time.Time) error {
	t := now.In(s.loc).AddDate(0, 0, 1)
	due := time.Date(t.Year(), t.Month(), t.Day(), s.hour, 0, 0, 0, s.loc)
	return s.store.UpsertDeferred(userID, due)
}

// Snooze suppresses further automatic reminders for the rest of the
// period. A pending deferred follow-up is not cancelled: its fire-time
// check sees the snooze and turns it into a no-op.
func (s *Service) Snooze(userID int64) error {
	return s.dir.SetSnoozed(userID, true)
}

// satisfied reports whether any resource has a reading in the current
// calendar month.
func (s *Service) satisfied(userID int64, now time.Time) (bool, error) {
	local := now.In(s.loc)
	cutoff := fmt.Sprintf("%04d-%02d-01", local.Year(), int(local.Month()))
	return s.store.HasAnySince(userID, cutoff)
}

func (s *Service) handleDeliveryError(userID int64, err error) {
	if models.IsPermanentDelivery(err) {
		s.log.Info("recipient unreachable, deactivating", "user", userID, "err", err)
		if derr := s.dir.Deactivate(userID); derr != nil {
			s.log.Error("deactivation failed", "user", userID, "err", derr)
		}
		return
	}
	s.log.Warn("reminder delivery failed", "user", userID, "err", err)
}
