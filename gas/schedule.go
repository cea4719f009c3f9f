// Package gas provides cost accounting for metered slot storage. The
// execution environment charges a bounded budget per unit of work and
// refunds part of it when storage is freed; the meter tracks one such
// budget through an operation, and the schedule is the policy describing
// what each kind of slot access costs.
package gas

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Schedule is the cost policy for metered slot operations. All values are
// in abstract cost units; none of them are semantic requirements of the
// array engine, they only shape how far a given budget stretches.
type Schedule struct {
	// LoadCost is charged for reading a slot.
	LoadCost uint64 `toml:"load_cost"`
	// StoreCost is charged for writing a slot that previously read as zero.
	StoreCost uint64 `toml:"store_cost"`
	// UpdateCost is charged for overwriting a live slot. It is cheaper than
	// StoreCost, which is what makes reuse of a stale cell preferable to a
	// fresh allocation.
	UpdateCost uint64 `toml:"update_cost"`
	// DeleteCost is charged for deleting a slot.
	DeleteCost uint64 `toml:"delete_cost"`
	// DeleteRefund is credited when deleting a slot that held a value.
	DeleteRefund uint64 `toml:"delete_refund"`
	// ShrinkReserve is the floor a shrink walk must keep in hand so the
	// operation itself can terminate cleanly. An operation that exhausts
	// its budget mid flight is aborted entirely by the substrate, so the
	// walk stops before the remaining budget falls to the reserve.
	ShrinkReserve uint64 `toml:"shrink_reserve"`
	// RefundQuotient caps the settled refund at used/RefundQuotient. Zero
	// disables the cap. Historic execution environments pin this to a
	// specific value; here it is policy, not semantics.
	RefundQuotient uint64 `toml:"refund_quotient"`
}

// DefaultSchedule returns the built in cost policy.
func DefaultSchedule() Schedule {
	return Schedule{
		LoadCost:       200,
		StoreCost:      5000,
		UpdateCost:     2900,
		DeleteCost:     2900,
		DeleteRefund:   4800,
		ShrinkReserve:  2300,
		RefundQuotient: 5,
	}
}

// LoadSchedule reads a schedule from a toml file. Fields omitted from the
// file keep their default values.
func LoadSchedule(path string) (Schedule, error) {
	s := DefaultSchedule()
	if _, err := toml.DecodeFile(path, &s); err != nil {
		return Schedule{}, fmt.Errorf("decode gas schedule %s: %w", path, err)
	}
	return s, nil
}
