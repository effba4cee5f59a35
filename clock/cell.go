package clock

import (
	"sync"
)

// Cell is the shared stopwatch State.
//
// Every operation holds the lock for its whole duration, so no single
// operation observes a partially applied increment. Readers that take one
// field per call, as the display multiplexer does, may still combine values
// from either side of a tick across calls.
type Cell struct {
	mutex sync.Mutex
	state State
}

// Tick increments the count by one second and returns the new value.
func (cell *Cell) Tick() State {
	cell.mutex.Lock()
	defer cell.mutex.Unlock()

	cell.state.Increment()
	return cell.state
}

// Reset zeros the count.
func (cell *Cell) Reset() {
	cell.mutex.Lock()
	defer cell.mutex.Unlock()

	cell.state.Reset()
}

// Snapshot returns a consistent copy of all three fields.
func (cell *Cell) Snapshot() State {
	cell.mutex.Lock()
	defer cell.mutex.Unlock()

	return cell.state
}

// Digit reads the value of a single display position.
func (cell *Cell) Digit(position int) uint8 {
	cell.mutex.Lock()
	defer cell.mutex.Unlock()

	return cell.state.Digit(position)
}

// Store replaces the count. Values are stored as given, out-of-bounds
// fields included; the next Tick brings them back into range.
func (cell *Cell) Store(st State) {
	cell.mutex.Lock()
	defer cell.mutex.Unlock()

	cell.state = st
}
