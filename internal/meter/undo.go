package meter

import (
	"sync"
	"time"

	"meter-bot/internal/models"
)

// UndoWindow is the grace period during which a deletion can be taken back.
const UndoWindow = 5 * time.Minute

// undoLedger keeps at most one recoverable deletion per user. Each new
// deletion overwrites the slot; expiry is checked lazily at undo time.
type undoLedger struct {
	mu    sync.Mutex
	slots map[int64]models.UndoSlot
}

func newUndoLedger() *undoLedger {
	return &undoLedger{slots: make(map[int64]models.UndoSlot)}
}

func (l *undoLedger) record(userID int64, slot models.UndoSlot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.slots[userID] = slot
}

// take removes and returns the slot if it is still inside the grace
// window. An expired slot is cleared as a side effect of the attempt.
func (l *undoLedger) take(userID int64, now time.Time) (models.UndoSlot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	slot, ok := l.slots[userID]
	if !ok {
		return models.UndoSlot{}, models.ErrUndoEmpty
	}
	delete(l.slots, userID)
	if now.Sub(slot.DeletedAt) > UndoWindow {
		return models.UndoSlot{}, models.ErrUndoExpired
	}
	return slot, nil
}
