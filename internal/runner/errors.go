package runner

import "errors"

// ErrInputChannelClosed is returned by Run when the input channel closes,
// mirroring RunnerError::InputChannelClosed (runner/mod.rs) — fatal, since
// the runner has no way to keep accepting observer input after that.
var ErrInputChannelClosed = errors.New("runner: input channel closed")

// ErrOutputChannelClosed is returned by Run when a send to the output
// channel fails because it has been closed, mirroring
// RunnerError::Output(SendError) (runner/mod.rs).
var ErrOutputChannelClosed = errors.New("runner: output channel closed")
