package meter

import (
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"meter-bot/internal/models"
	"meter-bot/internal/storage"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := storage.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return New(db, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSubmitKeepsSeriesMonotonic(t *testing.T) {
	s := newTestService(t)

	if _, err := s.Submit(1, models.Water, "100", "2025-03-01"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Submit(1, models.Water, "130", "2025-03-02"); err != nil {
		t.Fatal(err)
	}

	// below the latest prior value, always rejected with both numbers
	_, err := s.Submit(1, models.Water, "120", "2025-03-03")
	var below *models.BelowPreviousError
	if !errors.As(err, &below) {
		t.Fatalf("got %v, want BelowPreviousError", err)
	}
	if below.Prev != 130 || below.Given != 120 {
		t.Errorf("rejection carries %v/%v, want 130/120", below.Prev, below.Given)
	}

	series, err := s.store.Series(1, models.Water)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(series); i++ {
		if series[i].Value < series[i-1].Value {
			t.Fatalf("monotonicity broken at %d: %v < %v", i, series[i].Value, series[i-1].Value)
		}
	}
}

func TestSubmitDuplicateDayRejected(t *testing.T) {
	s := newTestService(t)

	if _, err := s.Submit(1, models.Gas, "50", "2025-03-01"); err != nil {
		t.Fatal(err)
	}
	// regardless of value, even an equal one
	for _, raw := range []string{"50", "60", "40"} {
		if _, err := s.Submit(1, models.Gas, raw, "2025-03-01"); !errors.Is(err, models.ErrAlreadySubmitted) {
			t.Errorf("Submit(%s): got %v, want ErrAlreadySubmitted", raw, err)
		}
	}
}

func TestSubmitIndependentUsersAndResources(t *testing.T) {
	s := newTestService(t)

	if _, err := s.Submit(1, models.Water, "500", "2025-03-01"); err != nil {
		t.Fatal(err)
	}
	// other users and resources are separate series
	if _, err := s.Submit(2, models.Water, "10", "2025-03-02"); err != nil {
		t.Errorf("other user's lower value rejected: %v", err)
	}
	if _, err := s.Submit(1, models.Gas, "10", "2025-03-02"); err != nil {
		t.Errorf("other resource's lower value rejected: %v", err)
	}
}

func TestDeleteAndUndoWithinWindow(t *testing.T) {
	s := newTestService(t)

	if _, err := s.Submit(7, models.Electricity, "1000.4", "2025-03-05"); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(7, models.Electricity, "2025-03-05", 1000.4); err != nil {
		t.Fatal(err)
	}
	if r, _ := s.ReadingOn(7, models.Electricity, "2025-03-05"); r != nil {
		t.Fatal("reading still present after delete")
	}

	slot, err := s.Undo(7)
	if err != nil {
		t.Fatal(err)
	}
	if slot.Resource != models.Electricity || slot.Date != "2025-03-05" || slot.Value != 1000.4 {
		t.Errorf("restored slot %+v does not match deleted reading", slot)
	}
	r, err := s.ReadingOn(7, models.Electricity, "2025-03-05")
	if err != nil {
		t.Fatal(err)
	}
	if r == nil || r.Value != 1000.4 {
		t.Fatalf("reading not restored exactly: %+v", r)
	}
}

func TestDeleteRequiresExactValue(t *testing.T) {
	s := newTestService(t)

	if _, err := s.Submit(7, models.Water, "200", "2025-03-05"); err != nil {
		t.Fatal(err)
	}
	err := s.Delete(7, models.Water, "2025-03-05", 201)
	if !errors.Is(err, models.ErrNothingToDelete) {
		t.Fatalf("got %v, want ErrNothingToDelete", err)
	}
	if r, _ := s.ReadingOn(7, models.Water, "2025-03-05"); r == nil {
		t.Fatal("reading deleted despite value mismatch")
	}
}

func TestUndoExpired(t *testing.T) {
	s := newTestService(t)

	if _, err := s.Submit(7, models.Water, "200", "2025-03-05"); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(7, models.Water, "2025-03-05", 200); err != nil {
		t.Fatal(err)
	}

	s.now = func() time.Time { return time.Now().Add(UndoWindow + time.Second) }
	if _, err := s.Undo(7); !errors.Is(err, models.ErrUndoExpired) {
		t.Fatalf("got %v, want ErrUndoExpired", err)
	}
	if r, _ := s.ReadingOn(7, models.Water, "2025-03-05"); r != nil {
		t.Fatal("expired undo restored a row")
	}
	// the expired attempt consumed the slot
	s.now = time.Now
	if _, err := s.Undo(7); !errors.Is(err, models.ErrUndoEmpty) {
		t.Fatalf("second undo: got %v, want ErrUndoEmpty", err)
	}
}

func TestUndoEmpty(t *testing.T) {
	s := newTestService(t)
	if _, err := s.Undo(1); !errors.Is(err, models.ErrUndoEmpty) {
		t.Fatalf("got %v, want ErrUndoEmpty", err)
	}
}

func TestUndoConflict(t *testing.T) {
	s := newTestService(t)

	if _, err := s.Submit(7, models.Gas, "80", "2025-03-05"); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(7, models.Gas, "2025-03-05", 80); err != nil {
		t.Fatal(err)
	}
	// a new legitimate submission takes the date before the undo
	if _, err := s.Submit(7, models.Gas, "85", "2025-03-05"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Undo(7); !errors.Is(err, models.ErrUndoConflict) {
		t.Fatalf("got %v, want ErrUndoConflict", err)
	}
	// the new row is untouched
	r, err := s.ReadingOn(7, models.Gas, "2025-03-05")
	if err != nil {
		t.Fatal(err)
	}
	if r == nil || r.Value != 85 {
		t.Fatalf("conflicting row was overwritten: %+v", r)
	}
}

func TestUndoOverwritesSlot(t *testing.T) {
	s := newTestService(t)

	if _, err := s.Submit(7, models.Water, "10", "2025-03-01"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Submit(7, models.Water, "20", "2025-03-02"); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(7, models.Water, "2025-03-01", 10); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(7, models.Water, "2025-03-02", 20); err != nil {
		t.Fatal(err)
	}

	// only the most recent deletion is recoverable
	slot, err := s.Undo(7)
	if err != nil {
		t.Fatal(err)
	}
	if slot.Date != "2025-03-02" {
		t.Errorf("restored %s, want the latest deletion 2025-03-02", slot.Date)
	}
	if _, err := s.Undo(7); !errors.Is(err, models.ErrUndoEmpty) {
		t.Fatalf("got %v, want ErrUndoEmpty after slot consumed", err)
	}
}
