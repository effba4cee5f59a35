package emulator

import (
	"context"
	"log"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Stats summarizes the wall-clock spacing of ticks during a real-time run.
type Stats struct {
	Ticks  int           // Ticks seen.
	Mean   time.Duration // Mean interval between consecutive ticks.
	StdDev time.Duration // Standard deviation of the intervals.
}

// RunRealtime runs the board paced against the wall clock, one digit dwell
// per pacing tick, until ctx is done.
//
// Button presses arrive on presses as line names and are applied between
// dwells. After every dwell a Frame is offered on frames; a frame is dropped
// if the receiver is not ready. Either channel may be nil.
func (emu *Emulator) RunRealtime(ctx context.Context, presses <-chan string, frames chan<- Frame) (stats Stats, err error) {
	pace := time.NewTicker(emu.Config.Dwell)
	defer pace.Stop()

	var intervals []float64
	var last time.Time
	fired := emu.Timer.Fired

	defer func() {
		if len(intervals) == 0 {
			return
		}
		mean, std := stat.MeanStdDev(intervals, nil)
		if len(intervals) < 2 {
			std = 0
		}
		stats.Mean = time.Duration(mean * float64(time.Second))
		stats.StdDev = time.Duration(std * float64(time.Second))
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case name, ok := <-presses:
			if !ok {
				presses = nil
				continue
			}
			err = emu.Press(name)
			if err != nil {
				return
			}
			// A press may move the tick phase.
			last = time.Time{}
			fired = emu.Timer.Fired
		case now := <-pace.C:
			emu.Run(emu.Config.Dwell)

			if emu.Timer.Fired != fired {
				stats.Ticks += emu.Timer.Fired - fired
				fired = emu.Timer.Fired
				if !last.IsZero() {
					intervals = append(intervals, now.Sub(last).Seconds())
				}
				last = now
			}

			if frames != nil {
				select {
				case frames <- emu.Frame():
				default:
					if emu.Verbose {
						log.Printf("emulator: frame dropped at %v", emu.Mcu.Elapsed())
					}
				}
			}
		}
	}
}
