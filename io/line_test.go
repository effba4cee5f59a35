package io

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEdge(t *testing.T) {
	assert := assert.New(t)

	table := map[string]Edge{
		"any":     EDGE_ANY,
		"falling": EDGE_FALLING,
		"Rising":  EDGE_RISING,
	}

	for name, want := range table {
		edge, err := ParseEdge(name)
		assert.NoError(err, name)
		assert.Equal(want, edge, name)
	}

	_, err := ParseEdge("sideways")
	assert.Equal(ErrEdgeUnknown("sideways"), err)
	assert.True(errors.Is(err, ErrEdgeInvalid))

	assert.Equal("Edge(0)", Edge(0).String())
}

func TestLine_Edges(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		edge    Edge
		pullUp  bool
		levels  []bool
		trigger int
	}){
		{EDGE_FALLING, true, []bool{false, true, false, true}, 2},
		{EDGE_FALLING, true, []bool{true, true, true}, 0},
		{EDGE_RISING, false, []bool{true, false, true}, 2},
		{EDGE_RISING, false, []bool{false, false}, 0},
		{EDGE_ANY, true, []bool{false, true, false}, 3},
	}

	for _, entry := range table {
		triggered := 0
		ln := &Line{Edge: entry.edge, PullUp: entry.pullUp}
		ln.Reset()
		ln.OnTrigger(func() { triggered++ })
		ln.Enable()

		for _, level := range entry.levels {
			ln.Set(level)
		}
		assert.Equal(entry.trigger, triggered, "%+v", entry)
		assert.Equal(entry.trigger, ln.Triggered, "%+v", entry)
	}
}

func TestLine_Masked(t *testing.T) {
	assert := assert.New(t)

	triggered := 0
	ln := &Line{PullUp: true}
	ln.Reset()
	ln.Configure(EDGE_FALLING)
	ln.OnTrigger(func() { triggered++ })

	// Masked after reset.
	ln.Press()
	assert.Equal(0, triggered)

	ln.Enable()
	ln.Press()
	assert.Equal(1, triggered)

	ln.Disable()
	ln.Press()
	assert.Equal(1, triggered)
	assert.True(ln.Level)
}

func TestLine_Press(t *testing.T) {
	assert := assert.New(t)

	// Pull-down line with a button to the high rail.
	triggered := 0
	ln := &Line{Edge: EDGE_RISING}
	ln.Reset()
	ln.OnTrigger(func() { triggered++ })
	ln.Enable()

	assert.False(ln.Level)
	ln.Press()
	assert.Equal(1, triggered)
	assert.False(ln.Level)
}

func TestLine_Irq(t *testing.T) {
	assert := assert.New(t)

	irq := &recordIrq{}
	ln := &Line{Irq: irq, Vector: VECTOR_INT1, Edge: EDGE_RISING}
	ln.Reset()
	ln.OnTrigger(func() {})
	ln.Enable()
	ln.Press()

	assert.Contains(irq.vectors, VECTOR_INT1)
	assert.Equal([]Vector{VECTOR_INT1}, irq.requests)
}
