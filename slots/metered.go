package slots

import (
	"context"

	"github.com/maAPPsDEV/DynamicArray/gas"
)

// MeteredStore decorates a Store with cost accounting. Every charge is
// taken before the underlying store is touched, so an exhausted budget
// surfaces as gas.ErrExhausted with no mutation; inside an Update that
// aborts the whole transaction.
type MeteredStore struct {
	inner Store
	meter *gas.Meter
}

func Metered(inner Store, meter *gas.Meter) *MeteredStore {
	return &MeteredStore{inner: inner, meter: meter}
}

func (s *MeteredStore) Meter() *gas.Meter {
	return s.meter
}

func (s *MeteredStore) Get(ctx context.Context, addr Addr) (Cell, error) {
	if err := s.meter.Charge(s.meter.Schedule().LoadCost); err != nil {
		return Cell{}, err
	}
	return s.inner.Get(ctx, addr)
}

// Put charges the store cost for a slot that previously read as zero and
// the cheaper update cost for a live slot. The existence probe itself is
// not charged; it is part of the write, not a caller visible load.
func (s *MeteredStore) Put(ctx context.Context, addr Addr, cell Cell) error {
	prior, err := s.inner.Get(ctx, addr)
	if err != nil {
		return err
	}
	cost := s.meter.Schedule().StoreCost
	if !prior.IsZero() {
		cost = s.meter.Schedule().UpdateCost
	}
	if err := s.meter.Charge(cost); err != nil {
		return err
	}
	return s.inner.Put(ctx, addr, cell)
}

// Delete charges the delete cost and credits the refund when the slot held
// a value. Deleting an already empty slot costs but refunds nothing.
func (s *MeteredStore) Delete(ctx context.Context, addr Addr) error {
	prior, err := s.inner.Get(ctx, addr)
	if err != nil {
		return err
	}
	if err := s.meter.Charge(s.meter.Schedule().DeleteCost); err != nil {
		return err
	}
	if err := s.inner.Delete(ctx, addr); err != nil {
		return err
	}
	if !prior.IsZero() {
		s.meter.Refund(s.meter.Schedule().DeleteRefund)
	}
	return nil
}
