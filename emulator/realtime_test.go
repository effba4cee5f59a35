package emulator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/stopwatch/stopwatch"
)

func fastConfig() Config {
	cfg := DefaultConfig()
	cfg.TickHz = 100
	cfg.Dwell = time.Millisecond
	return cfg
}

func TestRunRealtime(t *testing.T) {
	assert := assert.New(t)

	emu, err := NewEmulator(fastConfig())
	assert.NoError(err)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	frames := make(chan Frame, 1)
	received := 0
	done := make(chan struct{})
	go func() {
		defer close(done)
		for frame := range frames {
			assert.True(frame.State.Valid())
			received++
		}
	}()

	stats, err := emu.RunRealtime(ctx, nil, frames)
	close(frames)
	<-done

	assert.NoError(err)
	assert.Greater(received, 0)
	assert.Greater(stats.Ticks, 0)
	assert.Equal(stopwatch.RUNNING, emu.RunState())
	if stats.Ticks > 2 {
		assert.Greater(stats.Mean, time.Duration(0))
	}
}

func TestRunRealtimePresses(t *testing.T) {
	assert := assert.New(t)

	emu, err := NewEmulator(fastConfig())
	assert.NoError(err)

	presses := make(chan string, 2)
	presses <- LINE_PAUSE
	close(presses)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err = emu.RunRealtime(ctx, presses, nil)
	assert.NoError(err)
	assert.Equal(stopwatch.PAUSED, emu.RunState())
}

func TestRunRealtimeBadPress(t *testing.T) {
	assert := assert.New(t)

	emu, err := NewEmulator(fastConfig())
	assert.NoError(err)

	presses := make(chan string, 1)
	presses <- "lap"

	_, err = emu.RunRealtime(context.Background(), presses, nil)
	assert.True(errors.Is(err, ErrLineUnknown))
}
