package models

import (
	"errors"
	"fmt"
	"strings"
)

// Input and validation errors. All recoverable: the user is re-prompted
// with the corrective format.
var (
	ErrNotANumber       = errors.New("not a number")
	ErrUnknownResource  = errors.New("unknown resource")
	ErrAlreadySubmitted = errors.New("already submitted today")
)

// BelowPreviousError rejects a reading below the latest prior value,
// carrying both numbers so the user can be re-prompted with context.
type BelowPreviousError struct {
	Prev  float64
	Given float64
}

func (e *BelowPreviousError) Error() string {
	return fmt.Sprintf("reading %v is below previous %v", e.Given, e.Prev)
}

// Undo outcomes. None fatal, all user-visible.
var (
	ErrUndoEmpty    = errors.New("nothing to undo")
	ErrUndoExpired  = errors.New("undo window expired")
	ErrUndoConflict = errors.New("date already occupied")
)

var ErrNothingToDelete = errors.New("no reading on that date")

// StorageError wraps an I/O failure from the sqlite layer. Not locally
// recoverable: the current operation aborts, committed state stays intact.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return "storage: " + e.Op + ": " + e.Err.Error() }
func (e *StorageError) Unwrap() error { return e.Err }

// IsPermanentDelivery reports whether a telegram send error means the
// recipient is unreachable for good (blocked the bot, chat gone). Such
// users are deactivated; everything else is transient and retried on the
// next natural cycle.
func IsPermanentDelivery(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "blocked") ||
		strings.Contains(msg, "chat not found") ||
		strings.Contains(msg, "user is deactivated")
}
