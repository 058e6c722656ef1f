package rotator

import (
	"fmt"
	"sort"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/hambits/go-rotor/port"
)

// OpenFunc constructs a driver instance bound to the given transport.
type OpenFunc func(p port.Port) (Rotator, error)

type driver struct {
	caps *Capabilities
	open OpenFunc
}

var drivers = xsync.NewMapOf[string, driver]()

// Register makes a rotor driver available under caps.Model. Driver packages
// call it from init, in the manner of database/sql drivers. Register panics
// on a nil or incomplete registration, or when the model name is already
// taken.
func Register(caps *Capabilities, open OpenFunc) {
	if caps == nil || caps.Model == "" {
		panic("rotator: Register with nil or unnamed capabilities")
	}
	if open == nil {
		panic("rotator: Register with nil open func")
	}

	if _, loaded := drivers.LoadOrStore(caps.Model, driver{caps: caps, open: open}); loaded {
		panic(fmt.Sprintf("rotator: Register called twice for model %q", caps.Model))
	}
}

// Lookup returns the capabilities registered under model.
func Lookup(model string) (*Capabilities, bool) {
	d, ok := drivers.Load(model)
	if !ok {
		return nil, false
	}
	return d.caps, true
}

// Models returns the names of all registered models, sorted.
func Models() []string {
	var names []string
	drivers.Range(func(name string, _ driver) bool {
		names = append(names, name)
		return true
	})
	sort.Strings(names)

	return names
}

// Open constructs a driver for the named model on the given transport.
func Open(model string, p port.Port) (Rotator, error) {
	d, ok := drivers.Load(model)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrModelUnknown, model)
	}

	return d.open(p)
}
