package stopwatch

import (
	"context"
	"log"
	"time"

	"github.com/ezrec/stopwatch/clock"
	"github.com/ezrec/stopwatch/io"
)

// Core is the part of the microcontroller the firmware uses directly.
type Core interface {
	// Sei enables interrupts globally.
	Sei()
	// Delay busy-waits with interrupts running.
	Delay(d time.Duration)
}

// Settings are the compile-time constants of the firmware.
type Settings struct {
	Clock io.ClockSelect // Tick timer prescaler.
	Top   uint16         // Tick timer compare threshold.
	Dwell time.Duration  // Time each digit is lit.

	ResetEdge  io.Edge
	PauseEdge  io.Edge
	ResumeEdge io.Edge
}

// Scan is the order digit positions are lit, seconds units first.
var Scan = [clock.DIGITS]int{
	clock.DIGIT_SECONDS_UNITS,
	clock.DIGIT_SECONDS_TENS,
	clock.DIGIT_MINUTES_UNITS,
	clock.DIGIT_MINUTES_TENS,
	clock.DIGIT_HOURS_UNITS,
	clock.DIGIT_HOURS_TENS,
}

// Firmware is the stopwatch program and the state it shares between the
// interrupt handlers and the display loop.
type Firmware struct {
	Verbose bool // If set, enables verbose logging.

	Clock    clock.Cell // Count, written by handlers and read by the display.
	Settings Settings

	Core   Core
	Timer  io.PeriodicTimer
	Reset  io.EdgeLine
	Pause  io.EdgeLine
	Resume io.EdgeLine
	Bus    io.DigitBus

	slot int
}

// Init runs the setup routines: display off, the three control lines, the
// tick timer, then global interrupt enable. The count starts at zero.
func (fw *Firmware) Init() (err error) {
	fw.Clock.Reset()
	fw.slot = 0

	fw.Bus.Select(io.BUS_NONE)
	fw.Bus.Write(0)

	fw.ResetInit()
	fw.PauseInit()
	fw.ResumeInit()

	err = fw.TimerInit()
	if err != nil {
		return
	}

	fw.Core.Sei()

	return
}

// TimerInit configures the tick timer in clear-on-compare mode and binds
// the tick handler.
func (fw *Firmware) TimerInit() (err error) {
	fw.Timer.OnFire(fw.tick)
	err = fw.Timer.Configure(fw.Settings.Clock, fw.Settings.Top, io.MODE_CTC)
	return
}

// ResetInit configures the reset line.
func (fw *Firmware) ResetInit() {
	fw.Reset.Configure(fw.Settings.ResetEdge)
	fw.Reset.OnTrigger(fw.reset)
	fw.Reset.Enable()
}

// PauseInit configures the pause line.
func (fw *Firmware) PauseInit() {
	fw.Pause.Configure(fw.Settings.PauseEdge)
	fw.Pause.OnTrigger(fw.pause)
	fw.Pause.Enable()
}

// ResumeInit configures the resume line.
func (fw *Firmware) ResumeInit() {
	fw.Resume.Configure(fw.Settings.ResumeEdge)
	fw.Resume.OnTrigger(fw.resume)
	fw.Resume.Enable()
}

// RunState reports whether the tick timer is counting.
func (fw *Firmware) RunState() RunState {
	if fw.Timer.Running() {
		return RUNNING
	}
	return PAUSED
}

func (fw *Firmware) tick() {
	st := fw.Clock.Tick()
	if fw.Verbose {
		log.Printf("stopwatch: tick %v", st)
	}
}

// reset zeros the count and restarts the timer from a zero count, so the
// next tick is one full period away. The timer is restarted even when
// paused.
func (fw *Firmware) reset() {
	if fw.Verbose {
		log.Printf("stopwatch: reset")
	}
	fw.Clock.Reset()
	fw.Timer.ResetCount()
	// Settings were accepted by Init.
	_ = fw.TimerInit()
}

func (fw *Firmware) pause() {
	if fw.Verbose {
		log.Printf("stopwatch: pause")
	}
	fw.Timer.Disable()
}

func (fw *Firmware) resume() {
	if fw.Verbose {
		log.Printf("stopwatch: resume")
	}
	fw.Timer.Enable()
}

// Show lights the next digit in scan order with its current value, and
// returns the position lit. The value is read from the live count.
func (fw *Firmware) Show() (position int) {
	position = Scan[fw.slot]
	fw.slot = (fw.slot + 1) % len(Scan)

	fw.Bus.Select(position)
	fw.Bus.Write(fw.Clock.Digit(position))

	return
}

// Loop is the main display loop. It never returns on hardware; the context
// lets a host stop it between digits.
func (fw *Firmware) Loop(ctx context.Context) {
	for ctx.Err() == nil {
		fw.Show()
		fw.Core.Delay(fw.Settings.Dwell)
	}
}
