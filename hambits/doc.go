// Package hambits implements a driver for the Hambits "r0tor" open source
// azimuth/elevation antenna rotor controller, speaking its line-oriented
// ASCII protocol over a serial link.
//
// # Protocol Overview
//
// Commands are plain ASCII, each terminated with ';', with no checksum or
// escaping. Replies are terminated with a newline. The controller
// understands four commands:
//
//	setazDDD.dd;   set target azimuth; replies '1' on acceptance, '0' otherwise
//	setelDDD.dd;   set target elevation; replies '1' on acceptance, '0' otherwise
//	getpos;        replies "DDD.dd;DDD.dd;" (azimuth then elevation)
//	stop;          stop all movement and brake; no reply
//
// Numeric fields carry three integer digits and two decimals, e.g. 045.50.
// The driver issues the two set commands as one "setaz…;setel…;" exchange
// and expects the combined "11" acknowledgement.
//
// # Transactions
//
// Every exchange runs through a single transaction primitive: the receive
// side is flushed, the command is written, and the reply is read until a
// newline or the expected length is exceeded. A timed-out read retries the
// whole cycle, flush and rewrite included, up to the configured attempt
// budget; the controller may drop characters or ignore a command outright,
// and a stale partial reply must never be mistaken for the answer to a
// retried command.
//
// # Usage
//
//	p, err := port.OpenSerial(hambits.Caps.PortConfig("/dev/ttyUSB0"))
//	if err != nil {
//		// ...
//	}
//	rot, err := hambits.New(p)
//	if err != nil {
//		// ...
//	}
//	defer rot.Close()
//
//	if err := rot.SetPosition(45.5, 90.0); err != nil {
//		// ...
//	}
//
// The driver registers itself with the rotator registry under the model
// name "r0tor", so hosts can also construct it via rotator.Open.
package hambits
