package use_cases

import "time"

// Clock supplies the UTC instants stamped on activations, sweeps and
// outbox scheduling. Tests substitute a fixed implementation.
type Clock interface {
	NowUTC() time.Time
}

type systemClock struct{}

func NewSystemClock() Clock {
	return systemClock{}
}

func (systemClock) NowUTC() time.Time {
	return time.Now().UTC()
}
