// Package stopwatch is the firmware of the six-digit stopwatch.
//
// A periodic timer fires the tick handler once a second, advancing the
// shared clock.Cell. Three external lines reset, pause and resume the count.
// The main loop multiplexes the six digits onto one BCD bus, enabling one
// digit at a time for a short dwell.
//
// The firmware talks to hardware only through the io device interfaces.
// None of its operations can fail once Init has accepted the configuration.
package stopwatch
