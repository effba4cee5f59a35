package stopwatch

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/ezrec/stopwatch/clock"
	"github.com/ezrec/stopwatch/io"
	"github.com/ezrec/stopwatch/mcu"
)

const testHz = 1_024_000

type board struct {
	mcu    *mcu.Mcu
	timer  *io.Timer
	reset  *io.Line
	pause  *io.Line
	resume *io.Line
	bus    *io.Bus
	fw     *Firmware
}

func newBoard(t *testing.T) (b *board) {
	core := mcu.NewMcu(testHz)
	b = &board{
		mcu:    core,
		timer:  &io.Timer{Irq: core, Vector: io.VECTOR_TIMER1_COMPA},
		reset:  &io.Line{Irq: core, Vector: io.VECTOR_INT0, PullUp: true},
		pause:  &io.Line{Irq: core, Vector: io.VECTOR_INT1},
		resume: &io.Line{Irq: core, Vector: io.VECTOR_INT2, PullUp: true},
		bus:    &io.Bus{},
	}
	core.Attach(b.timer)

	for _, ln := range []*io.Line{b.reset, b.pause, b.resume} {
		ln.Reset()
	}
	b.timer.Reset()
	b.bus.Reset()

	b.fw = &Firmware{
		Settings: Settings{
			Clock:      io.CLOCK_DIV1024,
			Top:        999,
			Dwell:      5 * time.Millisecond,
			ResetEdge:  io.EDGE_FALLING,
			PauseEdge:  io.EDGE_RISING,
			ResumeEdge: io.EDGE_FALLING,
		},
		Core:   core,
		Timer:  b.timer,
		Reset:  b.reset,
		Pause:  b.pause,
		Resume: b.resume,
		Bus:    b.bus,
	}

	assert.NoError(t, b.fw.Init())
	return
}

func (b *board) press(ln *io.Line) {
	ln.Press()
	b.mcu.Dispatch()
}

func TestFirmwareInit(t *testing.T) {
	assert := assert.New(t)

	b := newBoard(t)

	assert.True(b.mcu.Interrupts)
	assert.Equal(RUNNING, b.fw.RunState())
	assert.Equal(clock.State{}, b.fw.Clock.Snapshot())
	assert.Equal(io.BUS_NONE, b.bus.Selected)
	assert.Equal(io.EDGE_FALLING, b.reset.Edge)
	assert.Equal(io.EDGE_RISING, b.pause.Edge)
	assert.Equal(io.EDGE_FALLING, b.resume.Edge)
	assert.True(b.reset.Enabled && b.pause.Enabled && b.resume.Enabled)
	assert.Equal(io.MODE_CTC, b.timer.Mode)
	assert.Equal(uint64(testHz), b.timer.Period())
}

func TestFirmwareInitBadTimer(t *testing.T) {
	assert := assert.New(t)

	core := mcu.NewMcu(testHz)
	tm := &io.Timer{Irq: core, Vector: io.VECTOR_TIMER1_COMPA}
	fw := &Firmware{
		Settings: Settings{Clock: io.CLOCK_DIV1024, Top: 0},
		Core:     core,
		Timer:    tm,
		Reset:    &io.Line{},
		Pause:    &io.Line{},
		Resume:   &io.Line{},
		Bus:      &io.Bus{},
	}

	assert.Equal(io.ErrTimerTop, fw.Init())
	assert.False(core.Interrupts)
}

func TestFirmwareTick(t *testing.T) {
	assert := assert.New(t)

	b := newBoard(t)

	b.mcu.Delay(999 * time.Millisecond)
	assert.Equal(clock.State{}, b.fw.Clock.Snapshot())

	b.mcu.Delay(time.Millisecond)
	assert.Equal(clock.State{Seconds: 1}, b.fw.Clock.Snapshot())

	b.mcu.Delay(59 * time.Second)
	assert.Equal(clock.State{Minutes: 1}, b.fw.Clock.Snapshot())
}

func TestFirmwareTripleRollover(t *testing.T) {
	assert := assert.New(t)

	b := newBoard(t)
	b.fw.Clock.Store(clock.State{Seconds: 59, Minutes: 59, Hours: 12})

	b.mcu.Delay(time.Second)
	assert.Equal(clock.State{}, b.fw.Clock.Snapshot())
}

func TestFirmwareReset(t *testing.T) {
	assert := assert.New(t)

	b := newBoard(t)

	b.mcu.Delay(5*time.Second + 700*time.Millisecond)
	assert.Equal(clock.State{Seconds: 5}, b.fw.Clock.Snapshot())

	b.press(b.reset)
	assert.Equal(clock.State{}, b.fw.Clock.Snapshot())
	assert.Equal(uint16(0), b.timer.Count)

	// Phase resync: next tick is one full period after the reset.
	b.mcu.Delay(999 * time.Millisecond)
	assert.Equal(clock.State{}, b.fw.Clock.Snapshot())
	b.mcu.Delay(time.Millisecond)
	assert.Equal(clock.State{Seconds: 1}, b.fw.Clock.Snapshot())
}

func TestFirmwareResetWhilePaused(t *testing.T) {
	assert := assert.New(t)

	b := newBoard(t)

	b.mcu.Delay(3 * time.Second)
	b.press(b.pause)
	assert.Equal(PAUSED, b.fw.RunState())

	b.press(b.reset)
	assert.Equal(clock.State{}, b.fw.Clock.Snapshot())
	assert.Equal(RUNNING, b.fw.RunState())

	b.mcu.Delay(time.Second)
	assert.Equal(clock.State{Seconds: 1}, b.fw.Clock.Snapshot())
}

func TestFirmwarePauseResume(t *testing.T) {
	assert := assert.New(t)

	b := newBoard(t)

	b.mcu.Delay(2*time.Second + 400*time.Millisecond)
	count := b.timer.Count

	b.press(b.pause)
	assert.Equal(PAUSED, b.fw.RunState())

	b.mcu.Delay(10 * time.Second)
	assert.Equal(clock.State{Seconds: 2}, b.fw.Clock.Snapshot())
	assert.Equal(count, b.timer.Count)

	// Pause again is harmless.
	b.press(b.pause)
	assert.Equal(PAUSED, b.fw.RunState())

	b.press(b.resume)
	b.press(b.resume)
	assert.Equal(RUNNING, b.fw.RunState())
	assert.Equal(count, b.timer.Count)

	// Sub-second phase kept: 600ms remain of the interrupted second.
	b.mcu.Delay(599 * time.Millisecond)
	assert.Equal(clock.State{Seconds: 2}, b.fw.Clock.Snapshot())
	b.mcu.Delay(time.Millisecond)
	assert.Equal(clock.State{Seconds: 3}, b.fw.Clock.Snapshot())
}

func TestFirmwarePauseResumeNoTicks(t *testing.T) {
	assert := assert.New(t)

	b := newBoard(t)
	b.fw.Clock.Store(clock.State{Seconds: 7, Minutes: 8, Hours: 9})
	b.mcu.Delay(250 * time.Millisecond)

	before := b.fw.Clock.Snapshot()
	count, phase := b.timer.Count, b.timer.Phase

	b.press(b.pause)
	b.press(b.resume)

	assert.Equal(before, b.fw.Clock.Snapshot())
	assert.Equal(count, b.timer.Count)
	assert.Equal(phase, b.timer.Phase)
}

func TestFirmwareShow(t *testing.T) {
	assert := assert.New(t)

	b := newBoard(t)
	b.fw.Clock.Store(clock.State{Hours: 12, Minutes: 34, Seconds: 19})

	var positions []int
	for range 2 * clock.DIGITS {
		position := b.fw.Show()
		positions = append(positions, position)
		assert.Equal(position, b.bus.Selected)
	}

	assert.Equal([]int{5, 4, 3, 2, 1, 0, 5, 4, 3, 2, 1, 0}, positions)
	if diff := cmp.Diff([io.BUS_DIGITS]uint8{1, 2, 3, 4, 1, 9}, b.bus.Frame); diff != "" {
		t.Errorf("frame (-want +got)\n%s", diff)
	}
	assert.Equal([io.BUS_DIGITS]int{2, 2, 2, 2, 2, 2}, b.bus.Shown)
}

func TestFirmwareLoop(t *testing.T) {
	assert := assert.New(t)

	b := newBoard(t)

	ctx, cancel := context.WithCancel(context.Background())
	shown := 0
	b.fw.Core = &stopAfter{Core: b.mcu, n: 6 * 200, cancel: cancel, shown: &shown}

	b.fw.Loop(ctx)

	// 200 full scans of 30ms.
	assert.Equal(6*200, shown)
	assert.Equal(6*time.Second, b.mcu.Elapsed())
	assert.Equal(clock.State{Seconds: 6}, b.fw.Clock.Snapshot())
	// Seconds units were last lit at 5.970s, before the sixth tick.
	assert.Equal([io.BUS_DIGITS]uint8{0, 0, 0, 0, 0, 5}, b.bus.Frame)
}

type stopAfter struct {
	Core
	n      int
	shown  *int
	cancel func()
}

func (sa *stopAfter) Delay(d time.Duration) {
	sa.Core.Delay(d)
	*sa.shown++
	if *sa.shown == sa.n {
		sa.cancel()
	}
}

func TestRunStateString(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("running", RUNNING.String())
	assert.Equal("paused", PAUSED.String())
	assert.Equal("RunState(9)", RunState(9).String())
}
