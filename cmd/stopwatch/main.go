// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/term"

	"github.com/ezrec/stopwatch/emulator"
	"github.com/ezrec/stopwatch/translate"
)

var f = translate.From

// Keys read from the terminal.
var _keys = map[byte]string{
	'r': emulator.LINE_RESET,
	'p': emulator.LINE_PAUSE,
	's': emulator.LINE_RESUME,
}

func main() {
	var config string
	var script string
	var duration time.Duration
	var verbose bool

	flag.StringVar(&config, "c", "", ".yaml board configuration")
	flag.StringVar(&script, "s", "", ".star scenario to run")
	flag.DurationVar(&duration, "t", 0, "Run time, 0 to run until quit")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	cfg := emulator.DefaultConfig()
	if len(config) != 0 {
		inf, err := os.Open(config)
		if err != nil {
			log.Fatalf("%v: %v", config, err)
		}
		cfg, err = emulator.LoadConfig(inf)
		inf.Close()
		if err != nil {
			log.Fatalf("%v: %v", config, err)
		}
	}

	emu, err := emulator.NewEmulator(cfg)
	if err != nil {
		log.Fatal(err)
	}
	emu.Verbose = verbose
	err = emu.Reset()
	if err != nil {
		log.Fatal(err)
	}

	if len(script) != 0 {
		err = emu.RunScript(script, nil, os.Stdout)
		if err != nil {
			log.Fatal(err)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, duration)
		defer cancel()
	}

	presses := make(chan string, 8)
	tty, err := term.Open("/dev/tty", term.RawMode)
	if err != nil {
		log.Printf("%v", f("keyboard unavailable: %v", err))
	} else {
		defer tty.Close()
		defer tty.Restore()
		go readKeys(tty, presses, stop)
		fmt.Fprint(os.Stdout, f("r: reset  p: pause  s: resume  q: quit")+"\r\n")
	}

	frames := make(chan emulator.Frame, 1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		var last *emulator.Frame
		for frame := range frames {
			if last != nil {
				if frame.Digits == last.Digits && frame.State == last.State && frame.RunState == last.RunState {
					continue
				}
				fmt.Fprintf(os.Stdout, "\x1b[%dA", FRAME_ROWS)
			}
			last = &frame
			err := render(os.Stdout, frame)
			if err != nil {
				log.Printf("%v", err)
				return
			}
		}
	}()

	stats, err := emu.RunRealtime(ctx, presses, frames)
	close(frames)
	<-done

	if err != nil {
		log.Printf("%v", err)
	}

	if verbose {
		log.Printf("%v", f("%d ticks, interval mean %v stddev %v", stats.Ticks, stats.Mean, stats.StdDev))
	}
}

// readKeys turns key presses into control line presses until quit.
func readKeys(tty *term.Term, presses chan<- string, quit func()) {
	var key [1]byte
	for {
		n, err := tty.Read(key[:])
		if err != nil {
			quit()
			return
		}
		if n == 0 {
			continue
		}

		switch key[0] {
		case 'q', 0x03, 0x04:
			quit()
			return
		}

		if line, ok := _keys[key[0]]; ok {
			select {
			case presses <- line:
			default:
			}
		}
	}
}
