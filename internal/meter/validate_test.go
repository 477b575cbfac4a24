package meter

import (
	"errors"
	"testing"

	"meter-bot/internal/models"
)

func TestValidateParsesNumbers(t *testing.T) {
	v, err := Validate("123.5", nil, false)
	if err != nil {
		t.Fatal(err)
	}
	if v != 123.5 {
		t.Errorf("got %v, want 123.5", v)
	}

	// comma decimal separator
	v, err = Validate("123,5", nil, false)
	if err != nil {
		t.Fatal(err)
	}
	if v != 123.5 {
		t.Errorf("got %v, want 123.5", v)
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"abc", "", "12..3", "NaN", "Inf", "-Inf"} {
		if _, err := Validate(raw, nil, false); !errors.Is(err, models.ErrNotANumber) {
			t.Errorf("Validate(%q): got %v, want ErrNotANumber", raw, err)
		}
	}
}

func TestValidateDuplicateDay(t *testing.T) {
	_, err := Validate("100", nil, true)
	if !errors.Is(err, models.ErrAlreadySubmitted) {
		t.Errorf("got %v, want ErrAlreadySubmitted", err)
	}
}

func TestValidateMonotonicity(t *testing.T) {
	prev := &models.Reading{Value: 150}

	_, err := Validate("149.9", prev, false)
	var below *models.BelowPreviousError
	if !errors.As(err, &below) {
		t.Fatalf("got %v, want BelowPreviousError", err)
	}
	if below.Prev != 150 || below.Given != 149.9 {
		t.Errorf("rejection carries %v/%v, want 150/149.9", below.Prev, below.Given)
	}

	// equality is allowed: zero consumption is valid
	if _, err := Validate("150", prev, false); err != nil {
		t.Errorf("equal value rejected: %v", err)
	}
	if _, err := Validate("150.1", prev, false); err != nil {
		t.Errorf("greater value rejected: %v", err)
	}
}
