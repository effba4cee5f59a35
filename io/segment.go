package io

// Segment bits of a 7-segment display, a through g.
const (
	SEG_A = uint8(1 << iota)
	SEG_B
	SEG_C
	SEG_D
	SEG_E
	SEG_F
	SEG_G
)

//	 aaa
//	f   b
//	 ggg
//	e   c
//	 ddd
var _segments = [10]uint8{
	SEG_A | SEG_B | SEG_C | SEG_D | SEG_E | SEG_F,         // 0
	SEG_B | SEG_C,                                         // 1
	SEG_A | SEG_B | SEG_D | SEG_E | SEG_G,                 // 2
	SEG_A | SEG_B | SEG_C | SEG_D | SEG_G,                 // 3
	SEG_B | SEG_C | SEG_F | SEG_G,                         // 4
	SEG_A | SEG_C | SEG_D | SEG_F | SEG_G,                 // 5
	SEG_A | SEG_C | SEG_D | SEG_E | SEG_F | SEG_G,         // 6
	SEG_A | SEG_B | SEG_C,                                 // 7
	SEG_A | SEG_B | SEG_C | SEG_D | SEG_E | SEG_F | SEG_G, // 8
	SEG_A | SEG_B | SEG_C | SEG_D | SEG_F | SEG_G,         // 9
}

// Segments decodes a BCD value to lit segments. Non-decimal values are blank.
func Segments(value uint8) uint8 {
	if int(value) >= len(_segments) {
		return 0
	}
	return _segments[value]
}
