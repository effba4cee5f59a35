// Package mcu models the single-core microcontroller that runs the
// stopwatch firmware.
//
// The core keeps a cycle counter, a global interrupt flag, and a latch of
// pending interrupt vectors. Clocked peripherals are attached to the core
// and advanced event to event, so every compare match is latched and its
// handler dispatched at the cycle it happens. Handlers run to completion
// with interrupts disabled, in vector order, and never nest.
package mcu
