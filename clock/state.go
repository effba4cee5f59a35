package clock

import (
	"fmt"
	"iter"
	"maps"

	"golang.org/x/exp/constraints"
)

// Counter limits. A field that passes its limit wraps to zero.
const (
	SECONDS_MAX = 59
	MINUTES_MAX = 59
	HOURS_MAX   = 12
)

var _clock_defines = map[string]string{
	"SECONDS_MAX": fmt.Sprintf("%v", SECONDS_MAX),
	"MINUTES_MAX": fmt.Sprintf("%v", MINUTES_MAX),
	"HOURS_MAX":   fmt.Sprintf("%v", HOURS_MAX),
	"DIGITS":      fmt.Sprintf("%v", DIGITS),
}

// Defines returns an iterator over the counter limits.
func Defines() iter.Seq2[string, string] {
	return maps.All(_clock_defines)
}

// Display positions, in digit-enable order.
const (
	DIGIT_HOURS_TENS = iota
	DIGIT_HOURS_UNITS
	DIGIT_MINUTES_TENS
	DIGIT_MINUTES_UNITS
	DIGIT_SECONDS_TENS
	DIGIT_SECONDS_UNITS
	DIGITS
)

// State is the stopwatch count.
type State struct {
	Seconds uint8
	Minutes uint8
	Hours   uint8
}

// Increment advances the count by one second.
//
// The three checks are sequential and independent: each is evaluated on
// every call whether or not the previous one carried.
func (st *State) Increment() {
	st.Seconds++
	if st.Seconds > SECONDS_MAX {
		st.Seconds = 0
		st.Minutes++
	}
	if st.Minutes > MINUTES_MAX {
		st.Minutes = 0
		st.Hours++
	}
	if st.Hours > HOURS_MAX {
		st.Hours = 0
	}
}

// Reset zeros the count.
func (st *State) Reset() {
	*st = State{}
}

// Valid reports whether every field is within its bounds.
func (st State) Valid() bool {
	return st.Seconds <= SECONDS_MAX && st.Minutes <= MINUTES_MAX && st.Hours <= HOURS_MAX
}

// String returns the count as HH:MM:SS.
func (st State) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", st.Hours, st.Minutes, st.Seconds)
}

// Digit returns the value shown at a display position.
func (st State) Digit(position int) uint8 {
	switch position {
	case DIGIT_HOURS_TENS:
		return Tens(st.Hours)
	case DIGIT_HOURS_UNITS:
		return Units(st.Hours)
	case DIGIT_MINUTES_TENS:
		return Tens(st.Minutes)
	case DIGIT_MINUTES_UNITS:
		return Units(st.Minutes)
	case DIGIT_SECONDS_TENS:
		return Tens(st.Seconds)
	case DIGIT_SECONDS_UNITS:
		return Units(st.Seconds)
	}
	return 0
}

// Digits returns all six display digits in position order.
func (st State) Digits() (digits [DIGITS]uint8) {
	for n := range digits {
		digits[n] = st.Digit(n)
	}
	return
}

// Units digit of a two-digit field.
func Units[T constraints.Unsigned](v T) T {
	return v % 10
}

// Tens digit of a two-digit field.
func Tens[T constraints.Unsigned](v T) T {
	return v / 10
}
