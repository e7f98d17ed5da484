package timer

import "time"

// Interval is a running periodic callback created by SetInterval.
type Interval struct {
	ticker *time.Ticker
	done   chan struct{}
}

// SetInterval calls f every duration until Stop is called.
func SetInterval(duration time.Duration, f func()) *Interval {
	iv := &Interval{
		ticker: time.NewTicker(duration),
		done:   make(chan struct{}),
	}

	go func() {
		for {
			select {
			case <-iv.ticker.C:
				f()
			case <-iv.done:
				return
			}
		}
	}()
	return iv
}

// Stop halts the interval and releases its goroutine.
func (iv *Interval) Stop() {
	iv.ticker.Stop()
	close(iv.done)
}
