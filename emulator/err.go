package emulator

import (
	"errors"

	"github.com/ezrec/stopwatch/translate"
)

var f = translate.From

var (
	// Configuration errors
	ErrConfigHz        = errors.New(f("cpu clock is zero"))
	ErrConfigPrescaler = errors.New(f("prescaler not supported"))
	ErrConfigTickHz    = errors.New(f("tick rate is zero"))
	ErrConfigRate      = errors.New(f("tick rate not reachable exactly"))
	ErrConfigDwell     = errors.New(f("dwell shorter than one cycle"))

	// Emulator errors
	ErrLineUnknown = errors.New(f("line unknown"))
)

// ErrConfig indicates the configuration field that was rejected.
type ErrConfig struct {
	Field string
	Err   error
}

func (err *ErrConfig) Error() string {
	return f("config %v: %v", err.Field, err.Err)
}

func (err *ErrConfig) Unwrap() error {
	return err.Err
}

// ErrScript indicates the script that failed.
type ErrScript struct {
	Name string
	Err  error
}

func (err *ErrScript) Error() string {
	return f("script %v: %v", err.Name, err.Err)
}

func (err *ErrScript) Unwrap() error {
	return err.Err
}
