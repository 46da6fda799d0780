package out

import (
	"time"

	"etut/internal/modules/stats/domain"
)

// DaySource supplies synthetic day-level aggregates for days with no real
// sessions. Implementations must be deterministic: the same date always
// yields the same output. Only wired in dev mode.
type DaySource interface {
	DayFor(date time.Time) (domain.DayData, bool)
}
