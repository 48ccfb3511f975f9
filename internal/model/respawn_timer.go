package model

// RespawnTimer counts down the time until a dead enemy or depleted resource
// comes back. Values are seconds.
type RespawnTimer struct {
	Current float64 // remaining
	Total   float64 // full duration
}

// NewRespawnTimer creates a full timer.
func NewRespawnTimer(total float64) *RespawnTimer {
	if total < 0 {
		total = 0
	}
	return &RespawnTimer{Current: total, Total: total}
}

// Advance decrements the timer by dt and reports whether it elapsed.
func (t *RespawnTimer) Advance(dt float64) bool {
	t.Current -= dt
	return t.Current <= 0
}

// Completed returns elapsed/total in [0, 1].
func (t *RespawnTimer) Completed() float64 {
	if t.Total <= 0 {
		return 1
	}
	c := 1 - t.Current/t.Total
	switch {
	case c < 0:
		return 0
	case c > 1:
		return 1
	}
	return c
}

// Rescale changes the total duration and keeps the completion fraction:
// newRemaining = newTotal × (1 − completed).
func (t *RespawnTimer) Rescale(newTotal float64) {
	if newTotal < 0 {
		newTotal = 0
	}
	completed := t.Completed()
	t.Total = newTotal
	t.Current = newTotal * (1 - completed)
}
