// Package rotator defines the host-facing API for antenna rotor drivers:
// the Rotator operation set, position and direction types, the shared error
// taxonomy, device capability metadata, and a model registry that drivers
// add themselves to.
//
// Drivers implement the Rotator interface once as a concrete type; the host
// obtains an instance either directly from the driver package or by model
// name through the registry. All operations are synchronous and blocking,
// and a driver instance assumes exactly one caller at a time.
package rotator

import (
	"fmt"
	"time"
)

// Position is an antenna pointing in device-native degrees.
type Position struct {
	// Az is the azimuth in degrees, nominally within the device's
	// [MinAz, MaxAz] range.
	Az float64
	// El is the elevation in degrees, nominally within the device's
	// [MinEl, MaxEl] range.
	El float64
}

func (p Position) String() string {
	return fmt.Sprintf("az=%.2f el=%.2f", p.Az, p.El)
}

// Direction selects the axis and sense of a Move operation.
type Direction int

const (
	// MoveUp drives elevation toward its upper limit.
	MoveUp Direction = iota
	// MoveDown drives elevation toward its lower limit.
	MoveDown
	// MoveCCW drives azimuth counter-clockwise toward its lower limit.
	MoveCCW
	// MoveCW drives azimuth clockwise toward its upper limit.
	MoveCW
)

func (d Direction) String() string {
	switch d {
	case MoveUp:
		return "up"
	case MoveDown:
		return "down"
	case MoveCCW:
		return "ccw"
	case MoveCW:
		return "cw"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// Rotator is the operation set every rotor driver exposes.
//
// It replaces the callback-table dispatch of C rotor control libraries with
// a fixed interface: a driver type implements these methods once, and the
// host calls them directly.
//
// Implementations are not required to be goroutine-safe; the host drives a
// rotor instance from a single goroutine at a time.
type Rotator interface {
	// Open prepares the driver for operation. It must be called before any
	// motion operation.
	Open() error
	// Close stops movement and releases the underlying transport. The
	// driver must not be used afterwards.
	Close() error

	// SetPosition commands the rotor to move to the given azimuth and
	// elevation, in degrees.
	SetPosition(az, el float64) error
	// GetPosition reads the rotor's current azimuth and elevation, in
	// degrees.
	GetPosition() (az, el float64, err error)
	// Stop halts all movement and engages the brake, if any.
	Stop() error
	// Park moves the rotor to its home position.
	Park() error
	// Reset returns the rotor to a known reference state. Devices without
	// a dedicated reset mechanism treat this as Park.
	Reset() error
	// Move drives one axis in the given direction. Speed is in percent of
	// the maximum; drivers without speed control ignore it.
	Move(dir Direction, speed int) error

	// Info returns a human-readable description of the device.
	Info() string
}

// StatePoller is implemented by drivers that track last-known and target
// positions locally.
type StatePoller interface {
	// Target returns the position last successfully commanded.
	Target() Position
	// LastKnown returns the position last confirmed by the device and the
	// time it was confirmed. The zero time means no confirmation yet.
	LastKnown() (Position, time.Time)
}
