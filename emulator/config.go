package emulator

import (
	"errors"
	stdio "io"
	"math/bits"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ezrec/stopwatch/io"
	"github.com/ezrec/stopwatch/stopwatch"
)

// LineConfig describes the wiring of one control line.
type LineConfig struct {
	Edge   string `yaml:"edge"`    // Triggering edge: falling, rising or any.
	PullUp bool   `yaml:"pull_up"` // Idle high, button to ground.
}

// Config describes the board the firmware is built for.
type Config struct {
	Hz        uint64        `yaml:"cpu_hz"`    // CPU clock.
	Prescaler uint64        `yaml:"prescaler"` // Tick timer prescaler.
	TickHz    uint64        `yaml:"tick_hz"`   // Tick rate.
	Dwell     time.Duration `yaml:"dwell"`     // Time each digit is lit.

	Reset  LineConfig `yaml:"reset"`
	Pause  LineConfig `yaml:"pause"`
	Resume LineConfig `yaml:"resume"`
}

// DefaultConfig is a 1.024 MHz board ticking at exactly 1 Hz, with 5ms
// digit dwell. Reset and resume are buttons to ground on pulled-up falling
// edge lines; pause is a button to the supply on a rising edge line.
func DefaultConfig() Config {
	return Config{
		Hz:        1_024_000,
		Prescaler: 1024,
		TickHz:    1,
		Dwell:     5 * time.Millisecond,
		Reset:     LineConfig{Edge: "falling", PullUp: true},
		Pause:     LineConfig{Edge: "rising", PullUp: false},
		Resume:    LineConfig{Edge: "falling", PullUp: true},
	}
}

// LoadConfig reads a YAML configuration. Fields not present keep their
// default values.
func LoadConfig(r stdio.Reader) (cfg Config, err error) {
	cfg = DefaultConfig()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	err = dec.Decode(&cfg)
	if errors.Is(err, stdio.EOF) {
		err = nil
	}
	if err != nil {
		return
	}

	_, err = cfg.Settings()
	return
}

// DwellCycles returns the CPU cycles each digit is lit.
func (cfg Config) DwellCycles() uint64 {
	if cfg.Dwell <= 0 {
		return 0
	}
	hi, lo := bits.Mul64(uint64(cfg.Dwell), cfg.Hz)
	if hi >= uint64(time.Second) {
		return 0
	}
	cycles, _ := bits.Div64(hi, lo, uint64(time.Second))
	return cycles
}

// TimerSettings returns the clock select and compare threshold that make
// the tick timer match exactly TickHz times a second.
func (cfg Config) TimerSettings() (clock io.ClockSelect, top uint16, err error) {
	if cfg.Hz == 0 {
		err = &ErrConfig{Field: "cpu_hz", Err: ErrConfigHz}
		return
	}

	clock, ok := io.ClockSelectFor(cfg.Prescaler)
	if !ok {
		err = &ErrConfig{Field: "prescaler", Err: ErrConfigPrescaler}
		return
	}

	if cfg.TickHz == 0 {
		err = &ErrConfig{Field: "tick_hz", Err: ErrConfigTickHz}
		return
	}

	hi, rate := bits.Mul64(cfg.Prescaler, cfg.TickHz)
	if hi != 0 || cfg.Hz%rate != 0 {
		err = &ErrConfig{Field: "tick_hz", Err: ErrConfigRate}
		return
	}

	counts := cfg.Hz / rate
	if counts < 2 || counts > 0x10000 {
		err = &ErrConfig{Field: "tick_hz", Err: ErrConfigRate}
		return
	}

	top = uint16(counts - 1)
	return
}

// Settings validates the configuration and returns the firmware constants.
func (cfg Config) Settings() (st stopwatch.Settings, err error) {
	st.Clock, st.Top, err = cfg.TimerSettings()
	if err != nil {
		return
	}

	if cfg.DwellCycles() == 0 {
		err = &ErrConfig{Field: "dwell", Err: ErrConfigDwell}
		return
	}
	st.Dwell = cfg.Dwell

	lines := []struct {
		field string
		line  LineConfig
		edge  *io.Edge
	}{
		{"reset.edge", cfg.Reset, &st.ResetEdge},
		{"pause.edge", cfg.Pause, &st.PauseEdge},
		{"resume.edge", cfg.Resume, &st.ResumeEdge},
	}
	for _, entry := range lines {
		*entry.edge, err = io.ParseEdge(entry.line.Edge)
		if err != nil {
			err = &ErrConfig{Field: entry.field, Err: err}
			return
		}
	}

	return
}
