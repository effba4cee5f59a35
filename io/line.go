package io

import (
	"log"
	"strings"
)

// Edge selects which transition of a line raises its interrupt.
type Edge uint8

//go:generate go tool stringer -linecomment -type=Edge
const (
	EDGE_ANY     = Edge(1) // any
	EDGE_FALLING = Edge(2) // falling
	EDGE_RISING  = Edge(3) // rising
)

// ParseEdge parses an edge name as printed by Edge.String.
func ParseEdge(name string) (edge Edge, err error) {
	for _, edge = range []Edge{EDGE_ANY, EDGE_FALLING, EDGE_RISING} {
		if strings.EqualFold(name, edge.String()) {
			return
		}
	}

	edge = 0
	err = ErrEdgeUnknown(name)
	return
}

// Line is an edge-triggered external interrupt input with an optional
// pull-up. There is no debouncing: every matching transition triggers.
type Line struct {
	Verbose bool   // If set, enables verbose logging.
	Name    string // Name used in logs.

	Irq    InterruptController // Interrupt controller, if any.
	Vector Vector              // Vector requested on a triggering edge.

	Edge    Edge // Triggering edge.
	PullUp  bool // Idle level is high when set, low otherwise.
	Enabled bool // Unmasked.
	Level   bool // Current input level.

	Triggered int // Triggering edges seen while unmasked.
	direct    func()
}

var _ EdgeLine = (*Line)(nil)

// Reset returns the line to its idle level, masked. The handler binding is kept.
func (ln *Line) Reset() {
	ln.Enabled = false
	ln.Level = ln.PullUp
	ln.Triggered = 0
}

// Configure sets the triggering edge.
func (ln *Line) Configure(edge Edge) {
	ln.Edge = edge
}

// OnTrigger sets the line handler. With an interrupt controller the
// handler is bound to the line's vector; otherwise it is called directly.
func (ln *Line) OnTrigger(isr func()) {
	if ln.Irq != nil {
		ln.Irq.SetVector(ln.Vector, isr)
		return
	}
	ln.direct = isr
}

// Enable unmasks the line.
func (ln *Line) Enable() {
	ln.Enabled = true
}

// Disable masks the line.
func (ln *Line) Disable() {
	ln.Enabled = false
}

// Set drives the line to a level, triggering on a matching transition.
func (ln *Line) Set(level bool) {
	if level == ln.Level {
		return
	}
	ln.Level = level

	var match bool
	switch ln.Edge {
	case EDGE_ANY:
		match = true
	case EDGE_FALLING:
		match = !level
	case EDGE_RISING:
		match = level
	}

	if !match || !ln.Enabled {
		return
	}

	if ln.Verbose {
		log.Printf("%v: %v edge", ln.Name, ln.Edge)
	}

	ln.Triggered++

	if ln.Irq != nil {
		ln.Irq.Request(ln.Vector)
		return
	}

	if ln.direct != nil {
		ln.direct()
	}
}

// Press drives the line away from its idle level and back, as a push
// button wired to the opposite rail would.
func (ln *Line) Press() {
	ln.Set(!ln.PullUp)
	ln.Set(ln.PullUp)
}
