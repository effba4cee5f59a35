package io

import (
	"log"
)

// ClockSelect chooses the timer prescaler. The zero value stops the timer.
type ClockSelect uint8

const (
	CLOCK_STOPPED = ClockSelect(0) // No clock source.
	CLOCK_DIV1    = ClockSelect(1) // CPU clock.
	CLOCK_DIV8    = ClockSelect(2) // CPU clock / 8.
	CLOCK_DIV64   = ClockSelect(3) // CPU clock / 64.
	CLOCK_DIV256  = ClockSelect(4) // CPU clock / 256.
	CLOCK_DIV1024 = ClockSelect(5) // CPU clock / 1024.
)

var _prescale = [...]uint64{0, 1, 8, 64, 256, 1024}

// Prescale returns the number of CPU cycles per counter step.
func (cs ClockSelect) Prescale() uint64 {
	if int(cs) >= len(_prescale) {
		return 0
	}
	return _prescale[cs]
}

// ClockSelectFor returns the clock select for a prescaler divisor.
func ClockSelectFor(prescale uint64) (cs ClockSelect, ok bool) {
	for n, div := range _prescale {
		if n != 0 && div == prescale {
			return ClockSelect(n), true
		}
	}
	return CLOCK_STOPPED, false
}

// Mode is the timer waveform generation mode.
type Mode uint8

const (
	MODE_NORMAL = Mode(0) // Free running, wraps at 0xFFFF.
	MODE_CTC    = Mode(1) // Clear timer on compare match.
)

// Timer is a 16-bit up-counter with a prescaler and a compare threshold.
//
// A compare match happens when the counter steps past Top. In MODE_CTC the
// counter then clears to zero, so matches repeat every Top+1 counts.
type Timer struct {
	Verbose bool // If set, enables verbose logging.

	Irq    InterruptController // Interrupt controller, if any.
	Vector Vector              // Vector requested on compare match.

	Mode   Mode        // Counting mode.
	Top    uint16      // Compare threshold.
	Clock  ClockSelect // Active clock select; CLOCK_STOPPED when paused.
	Count  uint16      // Counter value.
	Phase  uint64      // CPU cycles into the current prescaler step.
	Armed  ClockSelect // Clock select restored by Enable.
	Fired  int         // Compare matches since power on.
	direct func()
}

var _ PeriodicTimer = (*Timer)(nil)

// Reset returns the timer to its power-on state. The handler binding is kept.
func (tm *Timer) Reset() {
	tm.Mode = MODE_NORMAL
	tm.Top = 0
	tm.Clock = CLOCK_STOPPED
	tm.Armed = CLOCK_STOPPED
	tm.Count = 0
	tm.Phase = 0
	tm.Fired = 0
}

// Configure sets the timer prescaler, threshold and mode, and starts it.
// The current count is not changed.
func (tm *Timer) Configure(clock ClockSelect, top uint16, mode Mode) (err error) {
	if clock == CLOCK_STOPPED || clock.Prescale() == 0 {
		err = ErrTimerClock
		return
	}

	if top == 0 {
		err = ErrTimerTop
		return
	}

	if mode != MODE_NORMAL && mode != MODE_CTC {
		err = ErrTimerMode
		return
	}

	if tm.Verbose {
		log.Printf("timer: configure clock /%d top %d mode %d", clock.Prescale(), top, mode)
	}

	tm.Top = top
	tm.Mode = mode
	tm.Armed = clock
	tm.Clock = clock

	return
}

// OnFire sets the compare match handler. With an interrupt controller the
// handler is bound to the timer's vector; otherwise it is called directly.
func (tm *Timer) OnFire(isr func()) {
	if tm.Irq != nil {
		tm.Irq.SetVector(tm.Vector, isr)
		return
	}
	tm.direct = isr
}

// Enable restores the last configured clock select.
func (tm *Timer) Enable() {
	if tm.Verbose {
		log.Printf("timer: enable at count %d", tm.Count)
	}
	tm.Clock = tm.Armed
}

// Disable stops the clock. Count and prescaler phase are kept.
func (tm *Timer) Disable() {
	if tm.Verbose {
		log.Printf("timer: disable at count %d", tm.Count)
	}
	tm.Clock = CLOCK_STOPPED
}

// ResetCount zeros the counter and the prescaler phase.
func (tm *Timer) ResetCount() {
	tm.Count = 0
	tm.Phase = 0
}

// Running reports whether a clock source is selected.
func (tm *Timer) Running() bool {
	return tm.Clock != CLOCK_STOPPED
}

// Period returns the CPU cycles between compare matches in MODE_CTC.
func (tm *Timer) Period() uint64 {
	return (uint64(tm.Top) + 1) * tm.Armed.Prescale()
}

// Until returns the CPU cycles until the next compare match.
func (tm *Timer) Until() (cycles uint64, ok bool) {
	prescale := tm.Clock.Prescale()
	if prescale == 0 {
		return
	}

	steps := uint64(uint16(tm.Top-tm.Count)) + 1
	cycles = steps*prescale - tm.Phase
	ok = true
	return
}

// Advance runs the timer for a number of CPU cycles, firing on each
// compare match.
func (tm *Timer) Advance(cycles uint64) {
	for cycles > 0 {
		need, ok := tm.Until()
		if !ok {
			return
		}

		if cycles < need {
			prescale := tm.Clock.Prescale()
			total := tm.Phase + cycles
			tm.Count += uint16(total / prescale)
			tm.Phase = total % prescale
			return
		}

		cycles -= need
		tm.Phase = 0
		if tm.Mode == MODE_CTC {
			tm.Count = 0
		} else {
			tm.Count = tm.Top + 1
		}
		tm.fire()
	}
}

func (tm *Timer) fire() {
	tm.Fired++

	if tm.Irq != nil {
		tm.Irq.Request(tm.Vector)
		return
	}

	if tm.direct != nil {
		tm.direct()
	}
}
