package emulator

import (
	"fmt"
	stdio "io"
	"log"
	"strconv"
	"time"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/stopwatch/clock"
	"github.com/ezrec/stopwatch/internal"
	"github.com/ezrec/stopwatch/stopwatch"
)

// RunScript runs a starlark scenario against the board. If src is nil the
// script is read from the named file.
//
// Builtins:
//
//	run(ms)            advance board time
//	press(line)        push "reset", "pause" or "resume"
//	state()            (hours, minutes, seconds)
//	running()          True unless paused
//	display()          [6]digits last shown, hours tens first
//	store(h, m, s)     overwrite the count
//	elapsed_ms()       board time since power on
//
// The board constants from Defines are predeclared.
func (emu *Emulator) RunScript(name string, src any, output stdio.Writer) (err error) {
	defer func() {
		if err != nil {
			err = &ErrScript{Name: name, Err: err}
		}
	}()

	thread := &starlark.Thread{
		Name: name,
		Print: func(_ *starlark.Thread, msg string) {
			if output == nil {
				log.Printf("%v: %v", name, msg)
				return
			}
			fmt.Fprintln(output, msg)
		},
	}

	pred := starlark.StringDict{}
	for key, value := range internal.IterSeq2Sorted(emu.Defines()) {
		number, perr := strconv.ParseInt(value, 0, 64)
		if perr != nil {
			pred[key] = starlark.String(value)
			continue
		}
		pred[key] = starlark.MakeInt64(number)
	}

	for _, builtin := range []*starlark.Builtin{
		starlark.NewBuiltin("run", emu.scriptRun),
		starlark.NewBuiltin("press", emu.scriptPress),
		starlark.NewBuiltin("state", emu.scriptState),
		starlark.NewBuiltin("running", emu.scriptRunning),
		starlark.NewBuiltin("display", emu.scriptDisplay),
		starlark.NewBuiltin("store", emu.scriptStore),
		starlark.NewBuiltin("elapsed_ms", emu.scriptElapsed),
	} {
		pred[builtin.Name()] = builtin
	}

	opts := syntax.FileOptions{
		TopLevelControl: true,
		GlobalReassign:  true,
		While:           true,
	}
	_, err = starlark.ExecFileOptions(&opts, thread, name, src, pred)
	return
}

func (emu *Emulator) scriptRun(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var ms int
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "ms", &ms); err != nil {
		return nil, err
	}
	if ms < 0 {
		return nil, fmt.Errorf("%v: negative duration %d", b.Name(), ms)
	}

	emu.Run(time.Duration(ms) * time.Millisecond)
	return starlark.None, nil
}

func (emu *Emulator) scriptPress(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var line string
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "line", &line); err != nil {
		return nil, err
	}

	if err := emu.Press(line); err != nil {
		return nil, err
	}
	return starlark.None, nil
}

func (emu *Emulator) scriptState(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(b.Name(), args, kwargs); err != nil {
		return nil, err
	}

	st := emu.State()
	return starlark.Tuple{
		starlark.MakeInt(int(st.Hours)),
		starlark.MakeInt(int(st.Minutes)),
		starlark.MakeInt(int(st.Seconds)),
	}, nil
}

func (emu *Emulator) scriptRunning(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(b.Name(), args, kwargs); err != nil {
		return nil, err
	}

	return starlark.Bool(emu.RunState() == stopwatch.RUNNING), nil
}

func (emu *Emulator) scriptDisplay(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(b.Name(), args, kwargs); err != nil {
		return nil, err
	}

	var digits []starlark.Value
	for _, digit := range emu.Bus.Frame {
		digits = append(digits, starlark.MakeInt(int(digit)))
	}
	return starlark.NewList(digits), nil
}

func (emu *Emulator) scriptStore(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var hours, minutes, seconds int
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "hours", &hours, "minutes", &minutes, "seconds", &seconds); err != nil {
		return nil, err
	}

	for _, value := range []int{hours, minutes, seconds} {
		if value < 0 || value > 0xff {
			return nil, fmt.Errorf("%v: %d out of range", b.Name(), value)
		}
	}

	emu.Firmware.Clock.Store(clock.State{
		Hours:   uint8(hours),
		Minutes: uint8(minutes),
		Seconds: uint8(seconds),
	})
	return starlark.None, nil
}

func (emu *Emulator) scriptElapsed(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(b.Name(), args, kwargs); err != nil {
		return nil, err
	}

	return starlark.MakeInt64(emu.Mcu.Elapsed().Milliseconds()), nil
}
