package stopwatch

// RunState is whether the tick source is counting.
type RunState int

//go:generate go tool stringer -linecomment -type=RunState
const (
	RUNNING = RunState(0) // running
	PAUSED  = RunState(1) // paused
)
