package channels

import "time"

// ReceiveAll drains ch until it is closed, no message arrives within idle, or
// limit messages have been read. A limit of 0 means no limit.
func ReceiveAll[T any](ch <-chan T, idle time.Duration, limit int) []T {
	var out []T

	timer := time.NewTimer(idle)
	defer timer.Stop()

	for limit == 0 || len(out) < limit {
		select {
		case msg, ok := <-ch:
			if !ok {
				return out
			}
			out = append(out, msg)
			timer.Reset(idle)
		case <-timer.C:
			return out
		}
	}

	return out
}
