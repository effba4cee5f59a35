package main

import (
	stdio "io"
	"strings"

	"github.com/ezrec/stopwatch/emulator"
	"github.com/ezrec/stopwatch/io"
	"github.com/ezrec/stopwatch/translate"
)

// FRAME_ROWS is the height of a rendered frame, status line included.
const FRAME_ROWS = 4

// segmentRows draws one digit as three rows of three characters.
func segmentRows(value uint8) (rows [3]string) {
	seg := io.Segments(value)
	lit := func(bit uint8, on string) string {
		if seg&bit != 0 {
			return on
		}
		return " "
	}

	rows[0] = " " + lit(io.SEG_A, "_") + " "
	rows[1] = lit(io.SEG_F, "|") + lit(io.SEG_G, "_") + lit(io.SEG_B, "|")
	rows[2] = lit(io.SEG_E, "|") + lit(io.SEG_D, "_") + lit(io.SEG_C, "|")
	return
}

// render draws a frame as 7-segment digits, HH MM SS, followed by a status
// line. Lines end in CR LF so the output is correct on a raw terminal.
func render(w stdio.Writer, frame emulator.Frame) (err error) {
	var lines [3]strings.Builder
	for n, value := range frame.Digits {
		rows := segmentRows(value)
		for row := range rows {
			if n > 0 && n%2 == 0 {
				sep := " "
				if row > 0 {
					sep = "."
				}
				lines[row].WriteString(sep)
			}
			lines[row].WriteString(rows[row])
		}
	}

	for n := range lines {
		_, err = stdio.WriteString(w, lines[n].String()+"\r\n")
		if err != nil {
			return
		}
	}

	_, err = translate.Fprintf(w, "%v %v\r\n", frame.State, frame.RunState)
	return
}
