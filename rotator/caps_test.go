package rotator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hambits/go-rotor/port"
)

func testCaps() *Capabilities {
	return &Capabilities{
		Model:        "az-el-test",
		Manufacturer: "testmfg",
		Status:       StatusBeta,

		MinBaud:  19200,
		MaxBaud:  19200,
		DataBits: 8,
		StopBits: 1,
		Parity:   port.ParityNone,

		MinAz: 0,
		MaxAz: 360,
		MinEl: 0,
		MaxEl: 180,

		Timeout: 400 * time.Millisecond,
		Retry:   5,
	}
}

func TestCapabilities_InRange(t *testing.T) {
	caps := testCaps()

	assert.True(t, caps.InRange(Position{Az: 0, El: 0}))
	assert.True(t, caps.InRange(Position{Az: 360, El: 180}))
	assert.False(t, caps.InRange(Position{Az: -0.1, El: 0}))
	assert.False(t, caps.InRange(Position{Az: 0, El: 180.1}))
}

func TestCapabilities_ClampPosition(t *testing.T) {
	caps := testCaps()

	assert.Equal(t, Position{Az: 360, El: 180}, caps.ClampPosition(Position{Az: 400, El: 200}))
	assert.Equal(t, Position{Az: 0, El: 0}, caps.ClampPosition(Position{Az: -10, El: -1}))
	assert.Equal(t, Position{Az: 45.5, El: 90}, caps.ClampPosition(Position{Az: 45.5, El: 90}))
}

func TestCapabilities_PortConfig(t *testing.T) {
	caps := testCaps()

	cfg := caps.PortConfig("/dev/ttyUSB0")
	assert.Equal(t, "/dev/ttyUSB0", cfg.Device)
	assert.Equal(t, 19200, cfg.Baud)
	assert.Equal(t, byte(8), cfg.DataBits)
	assert.Equal(t, byte(1), cfg.StopBits)
	assert.Equal(t, byte(port.ParityNone), cfg.Parity)
	assert.Equal(t, 400*time.Millisecond, cfg.ReadTimeout)
}
