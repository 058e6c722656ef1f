package hambits

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hambits/go-rotor/logger"
	"github.com/hambits/go-rotor/rotator"
)

const (
	// simStep is the discrete simulation step size.
	simStep = 10 * time.Millisecond
	// simSlewRate is the axis slew rate in degrees per second.
	simSlewRate = 25.0
)

// Simulator is an in-memory device speaking the r0tor command grammar over
// one end of a net.Pipe. It acknowledges set commands, reports a position
// that slews toward the commanded target, and brakes on stop — enough to
// exercise a Driver end to end without hardware.
type Simulator struct {
	conn   net.Conn
	logger logger.Logger

	mu     sync.Mutex
	pos    rotator.Position
	target rotator.Position
	moving bool
}

// NewSimulator creates a Simulator and returns the peer end of its pipe,
// ready to be wrapped with port.FromConn.
func NewSimulator() (*Simulator, net.Conn) {
	a, b := net.Pipe()

	return &Simulator{
		conn:   a,
		logger: logger.GetLogger().With("component", "simulator"),
	}, b
}

// Place sets the simulated rotor's position and target directly, as if it
// had arrived there. Intended for test setup.
func (s *Simulator) Place(az, el float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pos = rotator.Position{Az: az, El: el}
	s.target = s.pos
	s.moving = false
}

// Position returns the simulated rotor's current position.
func (s *Simulator) Position() rotator.Position {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.pos
}

// Run serves the device side of the pipe until ctx is canceled or the peer
// closes its end.
func (s *Simulator) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		// Wait for context to be canceled, then close the pipe to
		// unblock the reader.
		<-ctx.Done()
		return s.conn.Close()
	})

	g.Go(func() error {
		t := time.NewTicker(simStep)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-t.C:
			}
			s.step()
		}
	})

	g.Go(s.serve)

	err := g.Wait()
	if errors.Is(err, context.Canceled) || isClosedPipe(err) {
		return nil
	}

	return err
}

// serve reads ';'-terminated commands and writes replies. Acknowledgement
// characters for all complete commands in one received chunk are emitted as
// a single newline-terminated line, matching the paired "setaz…;setel…;"
// exchange the driver issues.
func (s *Simulator) serve() error {
	buf := make([]byte, 256)
	pending := ""

	for {
		// A closed pipe propagates out of serve so the errgroup winds
		// down the other goroutines; Run reports it as a clean exit.
		n, err := s.conn.Read(buf)
		if err != nil {
			return err
		}

		pending += string(buf[:n])

		var acks, out string
		for {
			cmd, rest, found := strings.Cut(pending, ";")
			if !found {
				break
			}
			pending = rest

			ack, reply := s.handle(strings.TrimSpace(cmd))
			acks += ack
			out += reply
		}

		if acks != "" {
			out = acks + "\n" + out
		}
		if out != "" {
			if _, err := s.conn.Write([]byte(out)); err != nil {
				return err
			}
		}
	}
}

// handle executes a single command and returns its acknowledgement
// character (if any) and reply payload (if any).
func (s *Simulator) handle(cmd string) (ack, reply string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.Debug("command received", "cmd", cmd)

	switch {
	case strings.HasPrefix(cmd, "setaz"):
		v, err := strconv.ParseFloat(cmd[len("setaz"):], 64)
		if err != nil || v < Caps.MinAz || v > Caps.MaxAz {
			return "0", ""
		}
		s.target.Az = v
		s.moving = true
		return "1", ""

	case strings.HasPrefix(cmd, "setel"):
		v, err := strconv.ParseFloat(cmd[len("setel"):], 64)
		if err != nil || v < Caps.MinEl || v > Caps.MaxEl {
			return "0", ""
		}
		s.target.El = v
		s.moving = true
		return "1", ""

	case cmd == "getpos":
		return "", fmt.Sprintf("%06.2f;%06.2f;\n", s.pos.Az, s.pos.El)

	case cmd == "stop":
		s.target = s.pos
		s.moving = false
		return "", ""
	}

	s.logger.Warn("unknown command", "cmd", cmd)

	return "0", ""
}

// step advances each axis toward its target by one slew increment.
func (s *Simulator) step() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.moving {
		return
	}

	s.pos.Az = slewToward(s.pos.Az, s.target.Az)
	s.pos.El = slewToward(s.pos.El, s.target.El)

	if s.pos == s.target {
		s.moving = false
	}
}

func slewToward(pos, target float64) float64 {
	maxDelta := simSlewRate * simStep.Seconds()

	delta := target - pos
	if delta > maxDelta {
		delta = maxDelta
	} else if delta < -maxDelta {
		delta = -maxDelta
	}

	return pos + delta
}

func isClosedPipe(err error) bool {
	return errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrClosedPipe) ||
		errors.Is(err, net.ErrClosed)
}
