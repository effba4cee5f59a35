// Package clock implements the stopwatch time-keeping state.
//
// The state is three bounded counters (seconds, minutes, hours) that form a
// cascading ring counter. Each increment carries seconds into minutes and
// minutes into hours using three independent comparisons, and hours wrap to
// zero when they pass 12. The wrap is at 13, not 12 -> 1, so the display
// runs 00:00:00 .. 12:59:59 before returning to 00:00:00.
//
// A Cell holds the single shared State for a board. The tick and reset
// interrupt handlers mutate it; the display multiplexer only reads it.
package clock
