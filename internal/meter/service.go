package meter

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"meter-bot/internal/models"
	"meter-bot/internal/stats"
	"meter-bot/internal/storage"
)

// Service owns the submit / delete / undo flows. Writes for one
// (user, resource) key are serialized: the monotonicity check is a
// check-then-act sequence, unsafe under concurrent writers to the same
// key. Independent keys proceed in parallel.
type Service struct {
	store *storage.DB
	undo  *undoLedger
	log   *slog.Logger
	now   func() time.Time

	mu     sync.Mutex
	keyMu  map[string]*sync.Mutex
	userMu map[int64]*sync.Mutex
}

func New(store *storage.DB, log *slog.Logger) *Service {
	return &Service{
		store:  store,
		undo:   newUndoLedger(),
		log:    log,
		now:    time.Now,
		keyMu:  make(map[string]*sync.Mutex),
		userMu: make(map[int64]*sync.Mutex),
	}
}

func (s *Service) lockKey(userID int64, res models.Resource) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := fmt.Sprintf("%d/%s", userID, res)
	m, ok := s.keyMu[key]
	if !ok {
		m = &sync.Mutex{}
		s.keyMu[key] = m
	}
	return m
}

// lockUser serializes delete and undo for one user: both touch the single
// undo slot.
func (s *Service) lockUser(userID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.userMu[userID]
	if !ok {
		m = &sync.Mutex{}
		s.userMu[userID] = m
	}
	return m
}

// Submit validates raw input against the stored series and appends the
// reading. today is a YYYY-MM-DD day. Returns the accepted value.
func (s *Service) Submit(userID int64, res models.Resource, raw, today string) (float64, error) {
	m := s.lockKey(userID, res)
	m.Lock()
	defer m.Unlock()

	exists, err := s.store.ExistsOn(userID, res, today)
	if err != nil {
		return 0, err
	}
	prev, err := s.store.LatestBefore(userID, res, today)
	if err != nil {
		return 0, err
	}
	value, err := Validate(raw, prev, exists)
	if err != nil {
		return 0, err
	}
	if err := s.store.AppendReading(userID, res, value, today); err != nil {
		return 0, err
	}
	s.log.Info("reading saved", "user", userID, "resource", res, "value", value, "date", today)
	return value, nil
}

// Delete removes the reading on the given date, but only when its value
// still matches what the caller confirmed. A row rewritten between the
// confirmation prompt and the delete is left alone. The removed reading
// lands in the undo slot.
func (s *Service) Delete(userID int64, res models.Resource, date string, expectedValue float64) error {
	um := s.lockUser(userID)
	um.Lock()
	defer um.Unlock()

	removed, err := s.store.DeleteReading(userID, res, date, expectedValue)
	if err != nil {
		return err
	}
	if !removed {
		return models.ErrNothingToDelete
	}
	s.undo.record(userID, models.UndoSlot{
		Resource:  res,
		Date:      date,
		Value:     expectedValue,
		DeletedAt: s.now(),
	})
	s.log.Info("reading deleted", "user", userID, "resource", res, "date", date)
	return nil
}

// ReadingOn exposes the stored reading for one day, for the delete
// confirmation prompt.
func (s *Service) ReadingOn(userID int64, res models.Resource, date string) (*models.Reading, error) {
	return s.store.ReadingOn(userID, res, date)
}

// Undo restores the most recently deleted reading if the grace window has
// not passed. Restoration bypasses validation (the data was valid when it
// was written) but never overwrites a row that has appeared on the same
// date since: that surfaces as ErrUndoConflict.
func (s *Service) Undo(userID int64) (*models.UndoSlot, error) {
	um := s.lockUser(userID)
	um.Lock()
	defer um.Unlock()

	slot, err := s.undo.take(userID, s.now())
	if err != nil {
		return nil, err
	}
	err = s.store.AppendReading(userID, slot.Resource, slot.Value, slot.Date)
	if errors.Is(err, models.ErrAlreadySubmitted) {
		return nil, models.ErrUndoConflict
	}
	if err != nil {
		return nil, err
	}
	s.log.Info("deletion undone", "user", userID, "resource", slot.Resource, "date", slot.Date)
	return &slot, nil
}

// Report builds the daily consumption report for one resource.
func (s *Service) Report(userID int64, res models.Resource) ([]stats.Row, error) {
	series, err := s.store.Series(userID, res)
	if err != nil {
		return nil, err
	}
	return stats.Daily(series), nil
}

// MonthlyReport aggregates the series by calendar month.
func (s *Service) MonthlyReport(userID int64, res models.Resource) ([]stats.MonthRow, error) {
	series, err := s.store.Series(userID, res)
	if err != nil {
		return nil, err
	}
	return stats.Monthly(series), nil
}
