package io

import (
	"errors"

	"github.com/ezrec/stopwatch/translate"
)

var f = translate.From

var (
	// Timer errors
	ErrTimerTop   = errors.New(f("timer compare threshold is zero"))
	ErrTimerClock = errors.New(f("timer clock select invalid"))
	ErrTimerMode  = errors.New(f("timer mode invalid"))

	// Line errors
	ErrEdgeInvalid = errors.New(f("edge invalid"))
)

// ErrEdgeUnknown is returned when an edge name cannot be parsed.
type ErrEdgeUnknown string

func (err ErrEdgeUnknown) Error() string {
	return f("edge '%v' unknown", string(err))
}

func (err ErrEdgeUnknown) Unwrap() error {
	return ErrEdgeInvalid
}
