package rotator

import (
	"time"

	"github.com/hambits/go-rotor/port"
)

// Release status of a driver.
const (
	StatusAlpha  = "alpha"
	StatusBeta   = "beta"
	StatusStable = "stable"
)

// Capabilities advertises the static metadata of a rotor model: identity,
// serial line parameters, axis ranges, and transaction timing. A driver
// package exposes one Capabilities value and registers it at init; the
// value itself is never mutated.
type Capabilities struct {
	// Model is the registry key, e.g. "r0tor".
	Model        string
	Manufacturer string
	Version      string
	Status       string

	// Serial line parameters.
	MinBaud   int
	MaxBaud   int
	DataBits  byte
	StopBits  byte
	Parity    byte
	Handshake string

	// Axis ranges in degrees.
	MinAz, MaxAz float64
	MinEl, MaxEl float64

	// Timeout is the per-attempt reply timeout; Retry is the transaction
	// attempt budget.
	Timeout time.Duration
	Retry   int
}

// InRange reports whether p lies within the advertised axis ranges.
func (c *Capabilities) InRange(p Position) bool {
	return p.Az >= c.MinAz && p.Az <= c.MaxAz &&
		p.El >= c.MinEl && p.El <= c.MaxEl
}

// ClampPosition limits p to the advertised axis ranges.
func (c *Capabilities) ClampPosition(p Position) Position {
	return Position{
		Az: clamp(p.Az, c.MinAz, c.MaxAz),
		El: clamp(p.El, c.MinEl, c.MaxEl),
	}
}

// PortConfig builds a serial port configuration for the given device path
// from the advertised line parameters.
func (c *Capabilities) PortConfig(device string) port.Config {
	return port.Config{
		Device:      device,
		Baud:        c.MaxBaud,
		DataBits:    c.DataBits,
		StopBits:    c.StopBits,
		Parity:      c.Parity,
		ReadTimeout: c.Timeout,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
