package mcu

import (
	"log"
	"math/bits"
	"time"

	"github.com/ezrec/stopwatch/io"
)

// Clocked is a peripheral driven by the CPU clock.
type Clocked interface {
	// Until returns the cycles until the device next raises an event.
	Until() (cycles uint64, ok bool)
	// Advance runs the device for a number of cycles.
	Advance(cycles uint64)
}

// Mcu is the simulation context for the microcontroller core.
type Mcu struct {
	Verbose bool   // Set to enable verbose logging.
	Hz      uint64 // CPU clock frequency.

	Cycles     uint64 // CPU cycles since reset.
	Interrupts bool   // Global interrupt enable.
	Dispatched int    // Interrupt handlers run since reset.

	pending uint32
	vector  [io.VECTOR_COUNT]func()
	devices []Clocked
}

var _ io.InterruptController = (*Mcu)(nil)

// NewMcu creates a core running at hz.
func NewMcu(hz uint64) (mcu *Mcu) {
	mcu = &Mcu{
		Hz: hz,
	}

	return
}

// Reset the core: interrupts disabled, nothing pending, cycle count zeroed.
// Handlers and attached devices are kept.
func (mcu *Mcu) Reset() {
	if mcu.Verbose {
		log.Printf("mcu: reset")
	}

	mcu.Cycles = 0
	mcu.Interrupts = false
	mcu.Dispatched = 0
	mcu.pending = 0
}

// Attach a clocked device.
func (mcu *Mcu) Attach(dev Clocked) {
	mcu.devices = append(mcu.devices, dev)
}

// SetVector binds an interrupt service routine to a vector.
func (mcu *Mcu) SetVector(vector io.Vector, isr func()) {
	if int(vector) >= len(mcu.vector) {
		panic("vector out of range")
	}
	mcu.vector[vector] = isr
}

// Request latches a pending interrupt.
func (mcu *Mcu) Request(vector io.Vector) {
	if int(vector) >= len(mcu.vector) {
		return
	}
	mcu.pending |= 1 << vector
}

// Pending reports whether a vector is latched.
func (mcu *Mcu) Pending(vector io.Vector) bool {
	return mcu.pending&(1<<vector) != 0
}

// Sei sets the global interrupt flag.
func (mcu *Mcu) Sei() {
	mcu.Interrupts = true
	mcu.Dispatch()
}

// Cli clears the global interrupt flag.
func (mcu *Mcu) Cli() {
	mcu.Interrupts = false
}

// Dispatch runs pending handlers, lowest vector first, while the global
// interrupt flag is set. A vector with no handler is acknowledged and dropped.
func (mcu *Mcu) Dispatch() {
	for mcu.Interrupts && mcu.pending != 0 {
		vector := io.Vector(bits.TrailingZeros32(mcu.pending))
		mcu.pending &^= 1 << vector

		isr := mcu.vector[vector]
		if isr == nil {
			continue
		}

		if mcu.Verbose {
			log.Printf("mcu: %08d vector %d", mcu.Cycles, vector)
		}

		mcu.Interrupts = false
		isr()
		mcu.Interrupts = true
		mcu.Dispatched++
	}
}

// Advance the core and its devices by a number of cycles, dispatching each
// interrupt at the cycle its device raised it.
func (mcu *Mcu) Advance(cycles uint64) {
	for cycles > 0 {
		step := cycles
		for _, dev := range mcu.devices {
			until, ok := dev.Until()
			if ok && until < step {
				step = until
			}
		}

		for _, dev := range mcu.devices {
			dev.Advance(step)
		}

		mcu.Cycles += step
		cycles -= step

		mcu.Dispatch()
	}
}

// CyclesOf converts a duration to whole CPU cycles.
func (mcu *Mcu) CyclesOf(d time.Duration) uint64 {
	if d <= 0 {
		return 0
	}
	hi, lo := bits.Mul64(uint64(d), mcu.Hz)
	cycles, _ := bits.Div64(hi, lo, uint64(time.Second))
	return cycles
}

// Delay busy-waits for a duration, as a calibrated delay loop would.
// Interrupts keep running.
func (mcu *Mcu) Delay(d time.Duration) {
	mcu.Advance(mcu.CyclesOf(d))
}

// Elapsed returns the time since reset.
func (mcu *Mcu) Elapsed() time.Duration {
	if mcu.Hz == 0 {
		return 0
	}
	hi, lo := bits.Mul64(mcu.Cycles, uint64(time.Second))
	ns, _ := bits.Div64(hi, lo, mcu.Hz)
	return time.Duration(ns)
}
