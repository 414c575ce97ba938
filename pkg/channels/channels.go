// Package channels provides generic helpers for non-blocking channel delivery
// and a fan-out Broadcaster built on them.
package channels

import "errors"

var (
	// ErrChannelClosed is reported when sending on a closed channel.
	ErrChannelClosed = errors.New("channel closed")
	// ErrChannelTimeout is reported when a bounded send gives up.
	ErrChannelTimeout = errors.New("send timeout")
	// ErrChannelFull is reported when a non-blocking send finds no room.
	ErrChannelFull = errors.New("channel full")

	ErrNilChannel = errors.New("channel cannot be nil")
	ErrBadTimeout = errors.New("timeout must be positive")
)
