package models

import "strings"

// Input-mode state, persisted per user in the user_states table as
// "await_value:<resource>". Empty string means no pending input.

const awaitValuePrefix = "await_value:"

// AwaitValueState marks the user as having to type a value for r next.
func AwaitValueState(r Resource) string {
	return awaitValuePrefix + string(r)
}

// ParseAwaitValue returns the awaited resource, if the state is an
// await_value one.
func ParseAwaitValue(state string) (Resource, bool) {
	if !strings.HasPrefix(state, awaitValuePrefix) {
		return "", false
	}
	r := Resource(strings.TrimPrefix(state, awaitValuePrefix))
	return r, r.Valid()
}
