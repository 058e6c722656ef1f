package port

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/tarm/serial"
)

// Defaults applied by OpenSerial for zero-valued Config fields.
const (
	DefaultBaud        = 9600
	DefaultDataBits    = 8
	DefaultStopBits    = 1
	DefaultParity      = ParityNone
	DefaultReadTimeout = 500 * time.Millisecond
)

// Parity settings for a serial Config.
const (
	ParityNone = 'N'
	ParityOdd  = 'O'
	ParityEven = 'E'
)

// Config describes a serial line to a rotor device.
type Config struct {
	// Device is the serial device path, e.g. "/dev/ttyUSB0".
	Device string
	// Baud is the line rate in bits per second.
	Baud int
	// DataBits is the character size, usually 8.
	DataBits byte
	// StopBits is 1 or 2.
	StopBits byte
	// Parity is one of ParityNone, ParityOdd, ParityEven.
	Parity byte
	// ReadTimeout is the per-attempt timeout applied to each byte read in
	// ReadUntil.
	ReadTimeout time.Duration
}

func (c *Config) applyDefaults() {
	if c.Baud == 0 {
		c.Baud = DefaultBaud
	}
	if c.DataBits == 0 {
		c.DataBits = DefaultDataBits
	}
	if c.StopBits == 0 {
		c.StopBits = DefaultStopBits
	}
	if c.Parity == 0 {
		c.Parity = DefaultParity
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = DefaultReadTimeout
	}
}

// readPoll is the poll granularity of the underlying device reads. termios
// VTIME is fixed when the device is opened, so the effective per-byte
// timeout is enforced against a wall-clock deadline instead; that keeps
// SetReadTimeout working on an open port.
const readPoll = 25 * time.Millisecond

// serialPort implements Port on a tarm/serial port.
type serialPort struct {
	p       *serial.Port
	cfg     Config
	timeout time.Duration
}

var _ Port = (*serialPort)(nil)

// OpenSerial opens the serial device described by cfg and returns it as a
// Port. Zero-valued fields are filled from the Default* constants.
func OpenSerial(cfg Config) (Port, error) {
	cfg.applyDefaults()

	if cfg.Device == "" {
		return nil, errors.New("port: serial device path is empty")
	}

	sc := &serial.Config{
		Name:        cfg.Device,
		Baud:        cfg.Baud,
		Size:        cfg.DataBits,
		Parity:      serial.Parity(cfg.Parity),
		StopBits:    serial.StopBits(cfg.StopBits),
		ReadTimeout: readPoll,
	}

	p, err := serial.OpenPort(sc)
	if err != nil {
		return nil, fmt.Errorf("port: opening %s: %w", cfg.Device, err)
	}

	return &serialPort{p: p, cfg: cfg, timeout: cfg.ReadTimeout}, nil
}

// Flush discards pending bytes in the OS serial buffers.
func (s *serialPort) Flush() error {
	return s.p.Flush()
}

func (s *serialPort) Write(p []byte) (int, error) {
	return s.p.Write(p)
}

// ReadUntil reads byte-at-a-time so the timeout bounds the wait for each
// character, the same discipline serial rotor controllers apply to their
// reply reads. The deadline restarts after each received character.
//
// tarm/serial reports an expired poll as a zero-byte read, which os.File
// surfaces as io.EOF; polls keep going until the deadline, then ErrTimeout.
func (s *serialPort) ReadUntil(delim byte, max int) ([]byte, error) {
	if err := validateReadMax(max); err != nil {
		return nil, err
	}

	buf := make([]byte, 0, max)
	one := make([]byte, 1)
	deadline := time.Now().Add(s.timeout)

	for len(buf) < max {
		n, err := s.p.Read(one)
		if err != nil && !errors.Is(err, io.EOF) {
			return buf, err
		}
		if n == 0 {
			if time.Now().After(deadline) {
				return buf, ErrTimeout
			}
			continue
		}

		buf = append(buf, one[0])
		if one[0] == delim {
			break
		}

		deadline = time.Now().Add(s.timeout)
	}

	return buf, nil
}

func (s *serialPort) SetReadTimeout(d time.Duration) {
	if d > 0 {
		s.timeout = d
	}
}

func (s *serialPort) Close() error {
	return s.p.Close()
}
