package rotator

import "errors"

// Operation errors. Drivers wrap these sentinels so callers can classify
// failures with errors.Is regardless of the underlying device.
var (
	// ErrIO indicates a transport read or write failure other than a
	// timeout.
	ErrIO = errors.New("transport I/O error")

	// ErrTimeout indicates the retry budget was exhausted without a
	// terminated reply from the device.
	ErrTimeout = errors.New("device reply timeout")

	// ErrInvalidArgument indicates the device replied but the content
	// failed validation, or an unrecognized movement direction was
	// requested.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Construction errors.
var (
	// ErrPortNil indicates that a nil transport port was provided to a
	// driver constructor.
	ErrPortNil = errors.New("port is nil")
)

// Registry errors.
var (
	// ErrModelUnknown indicates that no driver is registered under the
	// requested model name.
	ErrModelUnknown = errors.New("unknown rotator model")
)
