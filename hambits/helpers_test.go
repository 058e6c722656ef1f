package hambits

import (
	"strings"
	"testing"
	"time"

	"github.com/hambits/go-rotor/port"
)

// fakeReply is one scripted ReadUntil outcome.
type fakeReply struct {
	data string
	err  error
}

// fakePort is a scripted Port: every Flush and Write is recorded, and each
// ReadUntil consumes the next queued reply. An empty queue reads as a
// timeout.
type fakePort struct {
	flushes     int
	writes      []string
	replies     []fakeReply
	closed      bool
	readTimeout time.Duration

	writeErr error
}

var _ port.Port = (*fakePort)(nil)

func (f *fakePort) Flush() error {
	f.flushes++
	return nil
}

func (f *fakePort) Write(p []byte) (int, error) {
	if f.writeErr != nil {
		return 0, f.writeErr
	}
	f.writes = append(f.writes, string(p))

	return len(p), nil
}

func (f *fakePort) ReadUntil(delim byte, max int) ([]byte, error) {
	if len(f.replies) == 0 {
		return nil, port.ErrTimeout
	}

	r := f.replies[0]
	f.replies = f.replies[1:]

	if r.err != nil {
		return nil, r.err
	}

	// Honor the bounded-read contract.
	data := r.data
	if idx := strings.IndexByte(data, delim); idx >= 0 && idx < max {
		data = data[:idx+1]
	} else if len(data) > max {
		data = data[:max]
	}

	return []byte(data), nil
}

func (f *fakePort) SetReadTimeout(d time.Duration) {
	f.readTimeout = d
}

func (f *fakePort) Close() error {
	f.closed = true
	return nil
}

// queue appends successful replies.
func (f *fakePort) queue(replies ...string) {
	for _, r := range replies {
		f.replies = append(f.replies, fakeReply{data: r})
	}
}

// queueTimeouts appends n timed-out reads.
func (f *fakePort) queueTimeouts(n int) {
	for i := 0; i < n; i++ {
		f.replies = append(f.replies, fakeReply{err: port.ErrTimeout})
	}
}

// newTestDriver creates a Driver on a fresh fakePort.
func newTestDriver(t *testing.T, opts ...Option) (*Driver, *fakePort) {
	t.Helper()

	fp := &fakePort{}

	d, err := New(fp, opts...)
	if err != nil {
		t.Fatalf("newTestDriver: %v", err)
	}

	return d, fp
}
