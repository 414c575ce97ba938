package channels

import "time"

// recoverClosed turns the panic of sending on a closed channel into
// ErrChannelClosed.
func recoverClosed(err *error) {
	if r := recover(); r != nil {
		*err = ErrChannelClosed
	}
}

// SendNonBlock delivers msg only if ch can take it right now. It reports
// ErrChannelFull when it cannot and ErrChannelClosed when ch is closed.
func SendNonBlock[T any](ch chan<- T, msg T) (err error) {
	defer recoverClosed(&err)

	select {
	case ch <- msg:
		return nil
	default:
		return ErrChannelFull
	}
}

// SendWithTimeout waits up to timeout for ch to take msg. It reports
// ErrChannelTimeout when the wait runs out and ErrChannelClosed when ch is
// closed.
func SendWithTimeout[T any](ch chan<- T, msg T, timeout time.Duration) (err error) {
	defer recoverClosed(&err)

	// fast path keeps a timer off the heap when there is room
	select {
	case ch <- msg:
		return nil
	default:
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case ch <- msg:
		return nil
	case <-timer.C:
		return ErrChannelTimeout
	}
}
