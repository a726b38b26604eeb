package domain

import "github.com/jonboulle/clockwork"

// clock is a package-level time source so tests and fixture generators can
// freeze ProcessedAt stamps. Production code uses the real clock.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source used when deriving summaries. Pass nil to
// reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
