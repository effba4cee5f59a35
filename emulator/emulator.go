// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	"iter"
	"maps"
	"time"

	"github.com/ezrec/stopwatch/clock"
	"github.com/ezrec/stopwatch/internal"
	"github.com/ezrec/stopwatch/io"
	"github.com/ezrec/stopwatch/mcu"
	"github.com/ezrec/stopwatch/stopwatch"
)

// Control line names.
const (
	LINE_RESET  = "reset"
	LINE_PAUSE  = "pause"
	LINE_RESUME = "resume"
)

// Frame is what an observer of the board sees at an instant.
type Frame struct {
	Elapsed  time.Duration        // Board time since reset.
	State    clock.State          // Count.
	RunState stopwatch.RunState   // Tick source state.
	Digits   [io.BUS_DIGITS]uint8 // Value last shown at each display.
}

// Emulator state. MCU + peripherals + firmware.
type Emulator struct {
	Verbose  bool                // If set, enables verbose logging.
	*mcu.Mcu                     // Reference to the core simulation.
	Firmware *stopwatch.Firmware // Reference to the stopwatch program.

	Config   Config
	Settings stopwatch.Settings

	Timer      io.Timer // Tick timer, Timer1.
	ResetLine  io.Line  // Reset button, INT0.
	PauseLine  io.Line  // Pause button, INT1.
	ResumeLine io.Line  // Resume button, INT2.
	Bus        io.Bus   // Digit output.

	dwell uint64 // Cycles per digit.
	left  uint64 // Cycles left on the lit digit.
}

// NewEmulator creates a new board for a configuration.
func NewEmulator(cfg Config) (emu *Emulator, err error) {
	settings, err := cfg.Settings()
	if err != nil {
		return
	}

	emu = &Emulator{
		Mcu:      mcu.NewMcu(cfg.Hz),
		Config:   cfg,
		Settings: settings,
		dwell:    cfg.DwellCycles(),
	}

	emu.Timer = io.Timer{Irq: emu.Mcu, Vector: io.VECTOR_TIMER1_COMPA}
	emu.ResetLine = io.Line{Irq: emu.Mcu, Vector: io.VECTOR_INT0, Name: LINE_RESET, PullUp: cfg.Reset.PullUp}
	emu.PauseLine = io.Line{Irq: emu.Mcu, Vector: io.VECTOR_INT1, Name: LINE_PAUSE, PullUp: cfg.Pause.PullUp}
	emu.ResumeLine = io.Line{Irq: emu.Mcu, Vector: io.VECTOR_INT2, Name: LINE_RESUME, PullUp: cfg.Resume.PullUp}

	emu.Mcu.Attach(&emu.Timer)

	emu.Firmware = &stopwatch.Firmware{
		Settings: settings,
		Core:     emu.Mcu,
		Timer:    &emu.Timer,
		Reset:    &emu.ResetLine,
		Pause:    &emu.PauseLine,
		Resume:   &emu.ResumeLine,
		Bus:      &emu.Bus,
	}

	err = emu.Reset()
	if err != nil {
		emu = nil
	}

	return
}

// Defines returns an iterator over the board constants.
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(map[string]string{
		"CPU_HZ":    fmt.Sprintf("%v", emu.Config.Hz),
		"PRESCALER": fmt.Sprintf("%v", emu.Config.Prescaler),
		"TICK_HZ":   fmt.Sprintf("%v", emu.Config.TickHz),
		"TIMER_TOP": fmt.Sprintf("%v", emu.Settings.Top),
		"DWELL_MS":  fmt.Sprintf("%v", emu.Config.Dwell.Milliseconds()),
	}),
		clock.Defines(),
	)
}

// Reset powers the board on: peripherals cleared, then firmware init.
func (emu *Emulator) Reset() (err error) {
	emu.Mcu.Verbose = emu.Verbose
	emu.Timer.Verbose = emu.Verbose
	emu.Firmware.Verbose = emu.Verbose

	emu.Mcu.Reset()
	emu.Timer.Reset()
	for _, ln := range emu.lines() {
		ln.Verbose = emu.Verbose
		ln.Reset()
	}
	emu.Bus.Reset()
	emu.left = 0

	err = emu.Firmware.Init()
	return
}

func (emu *Emulator) lines() map[string]*io.Line {
	return map[string]*io.Line{
		LINE_RESET:  &emu.ResetLine,
		LINE_PAUSE:  &emu.PauseLine,
		LINE_RESUME: &emu.ResumeLine,
	}
}

// Line returns a control line by name.
func (emu *Emulator) Line(name string) (ln *io.Line, err error) {
	ln, ok := emu.lines()[name]
	if !ok {
		err = fmt.Errorf("%w: %v", ErrLineUnknown, name)
	}
	return
}

// Press pushes the button on a control line. Its handler runs before
// the next cycle.
func (emu *Emulator) Press(name string) (err error) {
	ln, err := emu.Line(name)
	if err != nil {
		return
	}

	ln.Press()
	emu.Mcu.Dispatch()

	return
}

// RunCycles runs the display loop for a number of CPU cycles. The loop
// lights the next digit whenever the previous one has dwelt its time.
func (emu *Emulator) RunCycles(cycles uint64) {
	for cycles > 0 {
		if emu.left == 0 {
			emu.Firmware.Show()
			emu.left = emu.dwell
		}

		step := min(cycles, emu.left)
		emu.Mcu.Advance(step)
		emu.left -= step
		cycles -= step
	}
}

// Run the board for a duration of board time.
func (emu *Emulator) Run(d time.Duration) {
	emu.RunCycles(emu.Mcu.CyclesOf(d))
}

// State returns the count.
func (emu *Emulator) State() clock.State {
	return emu.Firmware.Clock.Snapshot()
}

// RunState returns whether the stopwatch is counting.
func (emu *Emulator) RunState() stopwatch.RunState {
	return emu.Firmware.RunState()
}

// Frame returns a snapshot of the board.
func (emu *Emulator) Frame() Frame {
	return Frame{
		Elapsed:  emu.Mcu.Elapsed(),
		State:    emu.State(),
		RunState: emu.RunState(),
		Digits:   emu.Bus.Frame,
	}
}
