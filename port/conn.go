package port

import (
	"bufio"
	"errors"
	"net"
	"os"
	"time"
)

// flushSilence is how long the line must stay quiet before Flush considers
// the receive side drained.
const flushSilence = time.Millisecond

// connPort implements Port on a net.Conn using read deadlines. It serves
// rotors attached through serial-to-network bridges as well as net.Pipe
// backed tests and simulators.
type connPort struct {
	conn    net.Conn
	reader  *bufio.Reader
	timeout time.Duration
}

var _ Port = (*connPort)(nil)

// FromConn wraps conn as a Port. timeout bounds each byte read in ReadUntil
// and each Write; a non-positive timeout falls back to DefaultReadTimeout.
func FromConn(conn net.Conn, timeout time.Duration) Port {
	if timeout <= 0 {
		timeout = DefaultReadTimeout
	}

	return &connPort{
		conn:    conn,
		reader:  bufio.NewReader(conn),
		timeout: timeout,
	}
}

// Flush drops buffered bytes and then drains the connection until it has
// been silent for flushSilence.
func (c *connPort) Flush() error {
	if n := c.reader.Buffered(); n > 0 {
		if _, err := c.reader.Discard(n); err != nil {
			return err
		}
	}

	buf := make([]byte, 256)

	for {
		_ = c.conn.SetReadDeadline(time.Now().Add(flushSilence))

		if _, err := c.conn.Read(buf); err != nil {
			if isDeadline(err) {
				return nil // line is silent
			}
			return err
		}
	}
}

func (c *connPort) Write(p []byte) (int, error) {
	if err := c.conn.SetWriteDeadline(time.Now().Add(c.timeout)); err != nil {
		return 0, err
	}

	return c.conn.Write(p)
}

// ReadUntil applies the timeout per byte read; the deadline restarts after
// each received character.
func (c *connPort) ReadUntil(delim byte, max int) ([]byte, error) {
	if err := validateReadMax(max); err != nil {
		return nil, err
	}

	buf := make([]byte, 0, max)

	for len(buf) < max {
		_ = c.conn.SetReadDeadline(time.Now().Add(c.timeout))

		b, err := c.reader.ReadByte()
		if err != nil {
			if isDeadline(err) {
				return buf, ErrTimeout
			}
			return buf, err
		}

		buf = append(buf, b)
		if b == delim {
			break
		}
	}

	return buf, nil
}

func (c *connPort) SetReadTimeout(d time.Duration) {
	if d > 0 {
		c.timeout = d
	}
}

func (c *connPort) Close() error {
	return c.conn.Close()
}

func isDeadline(err error) bool {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var nerr net.Error
	return errors.As(err, &nerr) && nerr.Timeout()
}
