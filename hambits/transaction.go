package hambits

import (
	"errors"
	"fmt"

	"github.com/hambits/go-rotor/port"
	"github.com/hambits/go-rotor/rotator"
)

// replyTerminator ends every controller reply.
const replyTerminator = '\n'

// transact performs one command/reply exchange with the controller.
//
// The receive side is flushed, cmd (if non-empty) is written verbatim, and
// the reply is read until a newline or replyLen+1 bytes. replyLen <= 0
// means no reply is expected and the transaction succeeds right after the
// write; an empty cmd with no expected reply is a no-op that always
// succeeds.
//
// A timed-out read retries the entire cycle — flush, rewrite, read — so a
// command the controller ignored is reissued and stale output from an
// earlier attempt cannot be misread as the reply to a later one. After
// RetryLimit consecutive timed-out attempts the transaction fails with
// rotator.ErrTimeout. A write failure fails immediately with
// rotator.ErrIO and is never retried, as is any read fault other than a
// timeout.
func (d *Driver) transact(cmd string, replyLen int) (string, error) {
	for attempt := 1; ; attempt++ {
		if err := d.port.Flush(); err != nil {
			return "", fmt.Errorf("%w: flushing receive buffer: %w", rotator.ErrIO, err)
		}

		if cmd != "" {
			if _, err := d.port.Write([]byte(cmd)); err != nil {
				return "", fmt.Errorf("%w: writing %q: %w", rotator.ErrIO, cmd, err)
			}
		}

		if replyLen <= 0 {
			d.logger.Debug("transaction complete", "cmd", cmd)

			return "", nil
		}

		data, err := d.port.ReadUntil(replyTerminator, replyLen+1)
		if err == nil {
			d.logger.Debug("transaction complete",
				"cmd", cmd,
				"reply", string(data),
				"attempt", attempt,
			)

			return string(data), nil
		}

		if !errors.Is(err, port.ErrTimeout) {
			return "", fmt.Errorf("%w: reading reply to %q: %w", rotator.ErrIO, cmd, err)
		}

		d.logger.Debug("transaction read timed out",
			"cmd", cmd,
			"attempt", attempt,
			"maxAttempts", d.cfg.RetryLimit(),
		)

		if attempt >= d.cfg.RetryLimit() {
			return "", fmt.Errorf("%w: no reply to %q after %d attempts", rotator.ErrTimeout, cmd, attempt)
		}
	}
}
