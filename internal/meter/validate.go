package meter

import (
	"math"
	"strconv"
	"strings"

	"meter-bot/internal/models"
)

// Validate decides whether a raw user input may become a reading. Pure:
// the caller supplies the facts (latest prior reading, whether today is
// already taken) and performs the append itself, so re-prompting after a
// rejection can reuse the same decision without double-writing.
//
// A comma decimal separator is accepted, values must be finite, equality
// with the previous reading is allowed (zero consumption is valid).
func Validate(raw string, prev *models.Reading, existsToday bool) (float64, error) {
	text := strings.Replace(strings.TrimSpace(raw), ",", ".", 1)
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, models.ErrNotANumber
	}
	if existsToday {
		return 0, models.ErrAlreadySubmitted
	}
	if prev != nil && v < prev.Value {
		return 0, &models.BelowPreviousError{Prev: prev.Value, Given: v}
	}
	return v, nil
}
