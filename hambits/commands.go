package hambits

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hambits/go-rotor/rotator"
)

const (
	cmdSetPosition = "setaz%06.2f;setel%06.2f;"
	cmdGetPosition = "getpos;"
	cmdStop        = "stop;"
)

const (
	// setReplyLen covers the combined "11" acknowledgement.
	setReplyLen = 2
	// getposReplyLen covers "DDD.dd;DDD.dd;" plus the newline.
	getposReplyLen = 15
	// minGetposReply is the shortest position reply worth parsing.
	minGetposReply = 9

	// setAccepted means both axes acknowledged the new target.
	setAccepted = "11"
)

const infoString = "Hambits r0tor: open source Arduino rotor controller."

// SetPosition commands the rotor to move to the given azimuth and elevation
// in degrees. The target state reflects the command as issued and is not
// rolled back when the device rejects it.
func (d *Driver) SetPosition(az, el float64) error {
	d.logger.Debug("set position", "az", az, "el", el)

	d.target = rotator.Position{Az: az, El: el}

	cmd := fmt.Sprintf(cmdSetPosition, az, el)

	reply, err := d.transact(cmd, setReplyLen)
	if err != nil {
		return err
	}

	// One status character per axis: '1' accepted, '0' rejected.
	if !strings.Contains(reply, setAccepted) {
		return fmt.Errorf("%w: controller rejected %q with %q", rotator.ErrInvalidArgument, cmd, reply)
	}

	return nil
}

// GetPosition reads the rotor's current azimuth and elevation in degrees.
//
// Values are passed through exactly as the controller reports them, without
// range validation; a misbehaving controller can report degrees outside the
// advertised [0,360]/[0,180] ranges. Callers that need the guarantee can
// clamp via Caps.ClampPosition.
func (d *Driver) GetPosition() (az, el float64, err error) {
	reply, err := d.transact(cmdGetPosition, getposReplyLen)
	if err != nil {
		return 0, 0, err
	}

	if len(reply) < minGetposReply {
		return 0, 0, fmt.Errorf("%w: short position reply %q", rotator.ErrInvalidArgument, reply)
	}

	return parsePosition(reply)
}

// parsePosition extracts azimuth and elevation from a "DDD.dd;DDD.dd;"
// reply: azimuth from the start up to the first ';', elevation immediately
// after it.
func parsePosition(reply string) (az, el float64, err error) {
	azStr, rest, found := strings.Cut(reply, ";")
	if !found {
		return 0, 0, fmt.Errorf("%w: malformed position reply %q", rotator.ErrInvalidArgument, reply)
	}
	elStr, _, _ := strings.Cut(rest, ";")

	az, err = strconv.ParseFloat(strings.TrimSpace(azStr), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: azimuth in %q: %w", rotator.ErrInvalidArgument, reply, err)
	}

	el, err = strconv.ParseFloat(strings.TrimSpace(elStr), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: elevation in %q: %w", rotator.ErrInvalidArgument, reply, err)
	}

	return az, el, nil
}

// Stop halts all movement and engages the brake, then reads the position
// the rotor came to rest at. On success both the current and target state
// are set to the read-back position.
func (d *Driver) Stop() error {
	d.logger.Debug("stop")

	if _, err := d.transact(cmdStop, 0); err != nil {
		return err
	}

	az, el, err := d.GetPosition()
	if err != nil {
		return err
	}

	pos := rotator.Position{Az: az, El: el}
	d.current = pos
	d.target = pos
	d.updatedAt = time.Now()

	return nil
}

// Park moves the rotor to its home position at azimuth 0, elevation 0.
func (d *Driver) Park() error {
	d.logger.Debug("park")

	return d.SetPosition(0, 0)
}

// Reset returns the rotor to a known reference state. The controller has no
// dedicated reset command; resetting is parking.
func (d *Driver) Reset() error {
	d.logger.Debug("reset")

	return d.Park()
}

// Move drives one axis toward its limit: up and down move elevation to its
// maximum and minimum, clockwise and counter-clockwise move azimuth to its
// maximum and minimum. The other axis holds the current target. The
// controller has no speed control, so speed is accepted and ignored.
func (d *Driver) Move(dir rotator.Direction, speed int) error {
	d.logger.Debug("move", "direction", dir.String(), "speed", speed)

	switch dir {
	case rotator.MoveUp:
		return d.SetPosition(d.target.Az, Caps.MaxEl)
	case rotator.MoveDown:
		return d.SetPosition(d.target.Az, Caps.MinEl)
	case rotator.MoveCCW:
		return d.SetPosition(Caps.MinAz, d.target.El)
	case rotator.MoveCW:
		return d.SetPosition(Caps.MaxAz, d.target.El)
	}

	return fmt.Errorf("%w: unrecognized direction %v", rotator.ErrInvalidArgument, dir)
}

// Info returns a human-readable description of the controller.
func (d *Driver) Info() string {
	return infoString
}
