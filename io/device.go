// Package io provides the simulated peripherals of the stopwatch board.
// It includes the 16-bit tick timer (Timer), the edge-triggered external
// interrupt lines (Line), the multiplexed digit output bus (Bus), and a
// BCD to 7-segment decoder.
package io

// Vector identifies an interrupt source to the interrupt controller.
// Numbers follow the ATmega32 vector table; a lower number has priority.
type Vector uint8

const (
	VECTOR_INT0         = Vector(1) // External interrupt 0
	VECTOR_INT1         = Vector(2) // External interrupt 1
	VECTOR_INT2         = Vector(3) // External interrupt 2
	VECTOR_TIMER1_COMPA = Vector(7) // Timer1 compare match A

	VECTOR_COUNT = 21
)

// InterruptController latches device interrupt requests and runs the
// handler bound to each vector.
type InterruptController interface {
	// SetVector binds an interrupt service routine to a vector.
	SetVector(vector Vector, isr func())
	// Request latches a pending interrupt for a vector.
	Request(vector Vector)
}

// PeriodicTimer is a counter that fires a handler at a fixed period.
type PeriodicTimer interface {
	// Configure sets the prescaler, compare threshold and counting mode,
	// and starts the timer.
	Configure(clock ClockSelect, top uint16, mode Mode) error
	// OnFire sets the handler run on every compare match.
	OnFire(isr func())
	// Enable restores the last configured clock select.
	Enable()
	// Disable stops counting without clearing the count.
	Disable()
	// ResetCount zeros the counter and its prescaler phase.
	ResetCount()
	// Running reports whether a clock source is selected.
	Running() bool
}

// EdgeLine is an external interrupt input.
type EdgeLine interface {
	// Configure sets the triggering edge.
	Configure(edge Edge)
	// OnTrigger sets the handler run on a triggering edge.
	OnTrigger(isr func())
	// Enable unmasks the line.
	Enable()
	// Disable masks the line.
	Disable()
}

// DigitBus is the write-only multiplexed digit output.
type DigitBus interface {
	// Select drives the enable line of one digit position, all others off.
	Select(position int)
	// Write drives the 4-bit BCD value.
	Write(value uint8)
}
