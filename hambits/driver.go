package hambits

import (
	"time"

	"github.com/hambits/go-rotor/logger"
	"github.com/hambits/go-rotor/port"
	"github.com/hambits/go-rotor/rotator"
)

// Caps advertises the r0tor controller's static capabilities: a fixed
// 19200 8N1 serial line without handshake, full-circle azimuth, hemisphere
// elevation, and the transaction timing the firmware is specified for.
var Caps = &rotator.Capabilities{
	Model:        "r0tor",
	Manufacturer: "Hambits",
	Version:      "0.1",
	Status:       rotator.StatusAlpha,

	MinBaud:   DefaultBaud,
	MaxBaud:   DefaultBaud,
	DataBits:  8,
	StopBits:  1,
	Parity:    port.ParityNone,
	Handshake: "none",

	MinAz: 0,
	MaxAz: 360,
	MinEl: 0,
	MaxEl: 180,

	Timeout: DefaultTimeout,
	Retry:   DefaultRetryLimit,
}

func init() {
	rotator.Register(Caps, func(p port.Port) (rotator.Rotator, error) {
		return New(p)
	})
}

// Driver controls a single r0tor over a Port.
//
// A Driver instance assumes exactly one caller at a time; operations are
// synchronous, blocking, and not reentrant. The worst-case blocking time of
// any operation is bounded by timeout × retry limit per transaction.
type Driver struct {
	port   port.Port
	cfg    *Config
	logger logger.Logger

	// current is the position last confirmed by the device, target the
	// position last commanded. target changes before a set command is
	// written and is never rolled back; current changes only when a
	// position read is folded back into state.
	current   rotator.Position
	target    rotator.Position
	updatedAt time.Time
}

var (
	_ rotator.Rotator     = (*Driver)(nil)
	_ rotator.StatePoller = (*Driver)(nil)
)

// New creates a Driver on the given transport. The port is borrowed until
// Close is called; its read timeout is retuned to the configured reply
// timeout, so WithTimeout governs how long each transaction attempt waits.
func New(p port.Port, opts ...Option) (*Driver, error) {
	if p == nil {
		return nil, rotator.ErrPortNil
	}

	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	p.SetReadTimeout(cfg.Timeout())

	return &Driver{
		port:   p,
		cfg:    cfg,
		logger: cfg.GetLogger().With("rotator", Caps.Model),
	}, nil
}

// Open prepares the driver for operation. The controller needs no
// initialization traffic; the serial line is ready as opened.
func (d *Driver) Open() error {
	d.logger.Debug("driver open")

	return nil
}

// Close stops all movement and releases the transport.
func (d *Driver) Close() error {
	if _, err := d.transact(cmdStop, 0); err != nil {
		d.logger.Warn("stop on close failed", "error", err)
	}

	return d.port.Close()
}

// Target returns the position last successfully commanded.
func (d *Driver) Target() rotator.Position {
	return d.target
}

// LastKnown returns the position last confirmed by the device and when it
// was confirmed.
func (d *Driver) LastKnown() (rotator.Position, time.Time) {
	return d.current, d.updatedAt
}
