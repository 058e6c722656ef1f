package hambits

import (
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hambits/go-rotor/port"
	"github.com/hambits/go-rotor/rotator"
)

func TestNew_NilPort(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, rotator.ErrPortNil)
}

func TestNew_BadOption(t *testing.T) {
	fp := &fakePort{}

	_, err := New(fp, WithRetryLimit(0))
	assert.Error(t, err)
}

func TestNew_TimeoutReachesPort(t *testing.T) {
	_, fp := newTestDriver(t)
	assert.Equal(t, DefaultTimeout, fp.readTimeout)

	_, fp = newTestDriver(t, WithTimeout(123*time.Millisecond))
	assert.Equal(t, 123*time.Millisecond, fp.readTimeout)
}

func TestWithTimeout_BoundsTransactionWait(t *testing.T) {
	local, remote := net.Pipe()
	t.Cleanup(func() {
		_ = local.Close()
		_ = remote.Close()
	})

	// The peer consumes commands and never replies.
	go func() {
		buf := make([]byte, 64)
		for {
			if _, err := remote.Read(buf); err != nil {
				return
			}
		}
	}()

	// The port starts out far slower than the driver's configured timeout.
	p := port.FromConn(local, time.Second)

	d, err := New(p, WithTimeout(50*time.Millisecond), WithRetryLimit(1))
	require.NoError(t, err)

	start := time.Now()
	_, _, err = d.GetPosition()
	elapsed := time.Since(start)

	assert.ErrorIs(t, err, rotator.ErrTimeout)
	assert.Less(t, elapsed, 500*time.Millisecond,
		"the configured timeout, not the port's own, bounds the attempt")
}

func TestSetPosition_Success(t *testing.T) {
	d, fp := newTestDriver(t)
	fp.queue("11\n")

	require.NoError(t, d.SetPosition(45.5, 90.25))
	assert.Equal(t, []string{"setaz045.50;setel090.25;"}, fp.writes)
	assert.Equal(t, rotator.Position{Az: 45.5, El: 90.25}, d.Target())
}

func TestSetPosition_ZeroPadding(t *testing.T) {
	d, fp := newTestDriver(t)
	fp.queue("11\n")

	require.NoError(t, d.SetPosition(5, 7.5))
	assert.Equal(t, []string{"setaz005.00;setel007.50;"}, fp.writes)
}

func TestSetPosition_Rejected(t *testing.T) {
	for _, reply := range []string{"10\n", "01\n", "00\n", "\n"} {
		t.Run(fmt.Sprintf("reply %q", reply), func(t *testing.T) {
			d, fp := newTestDriver(t)
			fp.queue(reply)

			err := d.SetPosition(45.5, 90.25)
			require.Error(t, err)
			assert.ErrorIs(t, err, rotator.ErrInvalidArgument)
			assert.Equal(t, rotator.Position{Az: 45.5, El: 90.25}, d.Target(),
				"target is set before the exchange and not rolled back")
		})
	}
}

func TestSetPosition_Timeout(t *testing.T) {
	d, _ := newTestDriver(t)

	err := d.SetPosition(10, 10)
	assert.ErrorIs(t, err, rotator.ErrTimeout)
	assert.Equal(t, rotator.Position{Az: 10, El: 10}, d.Target())
}

func TestGetPosition(t *testing.T) {
	d, fp := newTestDriver(t)
	fp.queue("045.50;090.25;\n")

	az, el, err := d.GetPosition()
	require.NoError(t, err)
	assert.InDelta(t, 45.50, az, 1e-9)
	assert.InDelta(t, 90.25, el, 1e-9)
	assert.Equal(t, []string{"getpos;"}, fp.writes)

	_, at := d.LastKnown()
	assert.True(t, at.IsZero(), "a bare position read does not touch driver state")
}

func TestGetPosition_ShortReply(t *testing.T) {
	for _, reply := range []string{"045.50;\n", "11\n", "\n"} {
		t.Run(fmt.Sprintf("reply %q", reply), func(t *testing.T) {
			d, fp := newTestDriver(t)
			fp.queue(reply)

			_, _, err := d.GetPosition()
			assert.ErrorIs(t, err, rotator.ErrInvalidArgument)
		})
	}
}

func TestGetPosition_Unparsable(t *testing.T) {
	d, fp := newTestDriver(t)
	fp.queue("azimuth;elev.;\n")

	_, _, err := d.GetPosition()
	assert.ErrorIs(t, err, rotator.ErrInvalidArgument)
}

func TestGetPosition_OutOfRangePassthrough(t *testing.T) {
	d, fp := newTestDriver(t)
	fp.queue("400.00;200.00;\n")

	// Reported degrees are not range-validated; the caller sees exactly
	// what the controller said.
	az, el, err := d.GetPosition()
	require.NoError(t, err)
	assert.Equal(t, 400.0, az)
	assert.Equal(t, 200.0, el)
}

func TestStop(t *testing.T) {
	d, fp := newTestDriver(t)
	fp.queue("010.00;020.00;\n")

	require.NoError(t, d.Stop())
	assert.Equal(t, []string{"stop;", "getpos;"}, fp.writes)

	want := rotator.Position{Az: 10, El: 20}
	assert.Equal(t, want, d.Target())

	pos, at := d.LastKnown()
	assert.Equal(t, want, pos)
	assert.False(t, at.IsZero())
}

func TestStop_PositionReadFails(t *testing.T) {
	d, fp := newTestDriver(t, WithRetryLimit(1))

	err := d.Stop()
	require.Error(t, err)
	assert.ErrorIs(t, err, rotator.ErrTimeout)
	assert.Equal(t, []string{"stop;", "getpos;"}, fp.writes)

	pos, at := d.LastKnown()
	assert.Equal(t, rotator.Position{}, pos, "state is untouched on failure")
	assert.True(t, at.IsZero())
}

func TestPark_Idempotent(t *testing.T) {
	d, fp := newTestDriver(t)
	fp.queue("11\n", "11\n")

	require.NoError(t, d.Park())
	require.NoError(t, d.Park())
	assert.Equal(t,
		[]string{"setaz000.00;setel000.00;", "setaz000.00;setel000.00;"},
		fp.writes)
}

func TestReset_Parks(t *testing.T) {
	d, fp := newTestDriver(t)
	fp.queue("11\n")

	require.NoError(t, d.Reset())
	assert.Equal(t, []string{"setaz000.00;setel000.00;"}, fp.writes)
	assert.Equal(t, rotator.Position{}, d.Target())
}

func TestMove(t *testing.T) {
	tests := []struct {
		dir  rotator.Direction
		want string
	}{
		{rotator.MoveUp, "setaz040.00;setel180.00;"},
		{rotator.MoveDown, "setaz040.00;setel000.00;"},
		{rotator.MoveCCW, "setaz000.00;setel050.00;"},
		{rotator.MoveCW, "setaz360.00;setel050.00;"},
	}
	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			d, fp := newTestDriver(t)
			fp.queue("11\n", "11\n")

			// Establish a target the untouched axis must hold.
			require.NoError(t, d.SetPosition(40, 50))

			require.NoError(t, d.Move(tt.dir, 50))
			assert.Equal(t, tt.want, fp.writes[1])
		})
	}
}

func TestMove_UnknownDirection(t *testing.T) {
	d, fp := newTestDriver(t)

	err := d.Move(rotator.Direction(99), 50)
	require.Error(t, err)
	assert.ErrorIs(t, err, rotator.ErrInvalidArgument)
	assert.Empty(t, fp.writes, "nothing may reach the wire for a bad direction")
}

func TestClose_StopsAndCloses(t *testing.T) {
	d, fp := newTestDriver(t)

	require.NoError(t, d.Close())
	assert.Equal(t, []string{"stop;"}, fp.writes)
	assert.True(t, fp.closed)
}

func TestInfo(t *testing.T) {
	d, _ := newTestDriver(t)
	assert.Contains(t, d.Info(), "r0tor")
}

func TestRegistryRoundTrip(t *testing.T) {
	caps, ok := rotator.Lookup(Caps.Model)
	require.True(t, ok, "driver must self-register")
	assert.Equal(t, Caps, caps)

	rot, err := rotator.Open(Caps.Model, &fakePort{})
	require.NoError(t, err)
	assert.IsType(t, (*Driver)(nil), rot)
}
