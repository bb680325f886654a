package bridge

import "github.com/pkg/errors"

// ErrClosed is returned by Bounded.Add when the stream has already
// terminated (end-of-input was observed by the consumer).
var ErrClosed = errors.New("bridge: closed")
