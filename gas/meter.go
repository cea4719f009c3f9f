package gas

import (
	"errors"
	"fmt"
)

var ErrExhausted = errors.New("cost budget exhausted")

// Meter tracks consumption of one bounded cost budget. A failed Charge
// consumes nothing, so callers that probe Remaining before charging never
// trip it, and callers that do not are aborted with ErrExhausted before
// any mutation happens.
type Meter struct {
	limit    uint64
	used     uint64
	refund   uint64
	schedule Schedule
}

func NewMeter(budget uint64, schedule Schedule) *Meter {
	return &Meter{limit: budget, schedule: schedule}
}

func (m *Meter) Schedule() Schedule {
	return m.schedule
}

// Charge consumes n units, or returns ErrExhausted leaving the meter
// untouched when fewer than n remain.
func (m *Meter) Charge(n uint64) error {
	if n > m.limit-m.used {
		return fmt.Errorf("%w: need %d, have %d", ErrExhausted, n, m.limit-m.used)
	}
	m.used += n
	return nil
}

// Refund credits n units. Refunds accrue separately from the remaining
// budget; they never extend the current operation, they are settled after
// it completes.
func (m *Meter) Refund(n uint64) {
	m.refund += n
}

func (m *Meter) Remaining() uint64 {
	return m.limit - m.used
}

func (m *Meter) Used() uint64 {
	return m.used
}

// Settle returns the cost consumed and the refund payable, applying the
// schedule's refund quotient cap.
func (m *Meter) Settle() (used uint64, refunded uint64) {
	refunded = m.refund
	if q := m.schedule.RefundQuotient; q > 0 && refunded > m.used/q {
		refunded = m.used / q
	}
	return m.used, refunded
}
