package models

import (
	"errors"
	"testing"
)

func TestParseResource(t *testing.T) {
	if r, err := ParseResource("  Электричество "); err != nil || r != Electricity {
		t.Errorf("got %v/%v", r, err)
	}
	if _, err := ParseResource("бензин"); !errors.Is(err, ErrUnknownResource) {
		t.Errorf("got %v, want ErrUnknownResource", err)
	}
}

func TestAwaitValueState(t *testing.T) {
	st := AwaitValueState(Gas)
	r, ok := ParseAwaitValue(st)
	if !ok || r != Gas {
		t.Errorf("round trip gave %v/%v", r, ok)
	}
	if _, ok := ParseAwaitValue(""); ok {
		t.Error("empty state parsed as await_value")
	}
	if _, ok := ParseAwaitValue("await_value:petrol"); ok {
		t.Error("unknown resource accepted")
	}
}

func TestIsPermanentDelivery(t *testing.T) {
	if !IsPermanentDelivery(errors.New("Forbidden: bot was blocked by the user")) {
		t.Error("blocked not classified permanent")
	}
	if !IsPermanentDelivery(errors.New("Bad Request: chat not found")) {
		t.Error("chat not found not classified permanent")
	}
	if IsPermanentDelivery(errors.New("Too Many Requests: retry after 5")) {
		t.Error("throttling classified permanent")
	}
	if IsPermanentDelivery(nil) {
		t.Error("nil classified permanent")
	}
}
