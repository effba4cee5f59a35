package io

const (
	BUS_DIGITS     = 6    // Digit enable lines.
	BUS_VALUE_MASK = 0x0F // BCD value lines.
	BUS_NONE       = -1   // No digit enabled.
)

// Bus is the multiplexed digit output: a 4-bit BCD value shared by six
// displays, and a one-of-six enable selector.
//
// Hardware has no readback. The simulation latches, per position, the value
// present while that position was enabled, which is what an observer of the
// displays perceives.
type Bus struct {
	Value    uint8             // Value lines.
	Selected int               // Enabled position, or BUS_NONE.
	Frame    [BUS_DIGITS]uint8 // Last value shown at each position.
	Shown    [BUS_DIGITS]int   // Times each position was enabled.
	Writes   int               // Total bus writes.
	history  [BUS_DIGITS]uint8 // Enable order of the latest scan.
}

var _ DigitBus = (*Bus)(nil)

// Reset turns all displays off and zeros the value lines.
func (bus *Bus) Reset() {
	*bus = Bus{Selected: BUS_NONE}
}

// Select enables one digit position. Out-of-range positions disable all.
func (bus *Bus) Select(position int) {
	bus.Writes++

	if position < 0 || position >= BUS_DIGITS {
		bus.Selected = BUS_NONE
		return
	}

	copy(bus.history[:], bus.history[1:])
	bus.history[BUS_DIGITS-1] = uint8(position)

	bus.Selected = position
	bus.Shown[position]++
	bus.latch()
}

// Write drives the BCD value lines.
func (bus *Bus) Write(value uint8) {
	bus.Writes++
	bus.Value = value & BUS_VALUE_MASK
	bus.latch()
}

// Scan returns the enable order of the last six selects.
func (bus *Bus) Scan() [BUS_DIGITS]uint8 {
	return bus.history
}

func (bus *Bus) latch() {
	if bus.Selected == BUS_NONE {
		return
	}
	bus.Frame[bus.Selected] = bus.Value
}
