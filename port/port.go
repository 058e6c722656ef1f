// Package port abstracts the byte transport a rotor driver talks through.
//
// A Port is a half-duplex, blocking transport with three primitives: Flush
// discards any bytes already buffered on the receive side, Write sends a
// command verbatim, and ReadUntil performs a bounded delimited read with the
// port's configured per-attempt timeout. Drivers build their transaction
// logic on exactly these primitives and never touch byte-level serial
// configuration themselves.
//
// Two implementations are provided: OpenSerial for real serial devices and
// FromConn for rotors attached over a network stream (or net.Pipe in tests).
package port

import (
	"errors"
	"fmt"
	"time"
)

// ErrTimeout is returned by ReadUntil when the per-attempt read timeout
// elapses before a delimiter is seen. Callers distinguish it from other
// transport faults with errors.Is.
var ErrTimeout = errors.New("port: read timeout")

// Port is a blocking byte transport to a rotor device.
//
// Implementations are not goroutine-safe; the protocol on top is
// half-duplex and drivers serialize access.
type Port interface {
	// Flush discards any bytes already buffered on the receive side, so a
	// following read cannot pick up stale output from an earlier exchange.
	Flush() error

	// Write sends p verbatim. It blocks until the transport has accepted
	// all bytes or fails.
	Write(p []byte) (int, error)

	// ReadUntil reads until delim is consumed or max bytes have been read,
	// whichever comes first, and returns the bytes read (including the
	// delimiter, when present). If the configured read timeout elapses
	// while waiting for a byte, it returns the bytes read so far together
	// with ErrTimeout.
	ReadUntil(delim byte, max int) ([]byte, error)

	// SetReadTimeout changes the per-byte timeout applied by ReadUntil.
	// Drivers push their configured reply timeout into the port through
	// this method; a non-positive value is ignored.
	SetReadTimeout(d time.Duration)

	// Close releases the transport. The Port must not be used afterwards.
	Close() error
}

func validateReadMax(max int) error {
	if max <= 0 {
		return fmt.Errorf("port: read length %d must be positive", max)
	}
	return nil
}
