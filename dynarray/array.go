package dynarray

import (
	"context"
	"fmt"
	"math"

	"github.com/datatrails/go-datatrails-common/logger"

	"github.com/maAPPsDEV/DynamicArray/gas"
	"github.com/maAPPsDEV/DynamicArray/slots"
)

// Array provides vector semantics over a slot addressed store. At all
// times 0 <= length <= capacity; a cell at index i < length holds the last
// value written there, cells in [length, capacity) hold stale data that is
// unobservable through Get. Capacity only decreases through Shrink, and
// then only down to the current length.
//
// An Array value is a handle, not state: length and capacity live in the
// store, so independently constructed handles with the same owner and name
// operate on the same array.
type Array struct {
	store    slots.TxnStore
	owner    slots.OwnerID
	name     string
	schedule gas.Schedule
}

// New binds an array handle to a store, an owner identity and a field
// name. The array itself is created implicitly: until the first push its
// header slot is absent and reads as length = capacity = 0.
func New(store slots.TxnStore, owner slots.OwnerID, name string, opts ...Option) *Array {
	a := &Array{
		store:    store,
		owner:    owner,
		name:     name,
		schedule: gas.DefaultSchedule(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Root returns the slot address of the array header.
func (a *Array) Root() slots.Addr {
	return RootAddr(a.owner, a.name)
}

func (a *Array) readHeader(ctx context.Context, st slots.Store) (header, error) {
	cell, err := st.Get(ctx, a.Root())
	if err != nil {
		return header{}, err
	}
	return decodeHeader(cell), nil
}

func (a *Array) writeHeader(ctx context.Context, st slots.Store, hdr header) error {
	return st.Put(ctx, a.Root(), hdr.encode())
}

// Len returns the logical element count.
func (a *Array) Len(ctx context.Context) (uint64, error) {
	hdr, err := a.readHeader(ctx, a.store)
	return hdr.length, err
}

// Cap returns the number of physical cells allocated for the array.
func (a *Array) Cap(ctx context.Context) (uint64, error) {
	hdr, err := a.readHeader(ctx, a.store)
	return hdr.capacity, err
}

// Get returns the value at index i. The bound is the logical length, not
// the capacity: stale cells are not observable.
func (a *Array) Get(ctx context.Context, i uint64) (slots.Cell, error) {
	hdr, err := a.readHeader(ctx, a.store)
	if err != nil {
		return slots.Cell{}, err
	}
	if i >= hdr.length {
		return slots.Cell{}, fmt.Errorf("%w: index %d, length %d", ErrOutOfBounds, i, hdr.length)
	}
	return a.store.Get(ctx, cellAddr(a.Root(), i))
}

// Set overwrites the value at index i. Like Get it is bounded by the
// logical length; writing within capacity but beyond length is rejected.
// Set never grows the array.
func (a *Array) Set(ctx context.Context, i uint64, value slots.Cell) error {
	root := a.Root()
	return a.store.Update(ctx, func(tx slots.Store) error {
		hdr, err := a.readHeader(ctx, tx)
		if err != nil {
			return err
		}
		if i >= hdr.length {
			return fmt.Errorf("%w: index %d, length %d", ErrOutOfBounds, i, hdr.length)
		}
		return tx.Put(ctx, cellAddr(root, i), value)
	})
}

// Push appends value at the logical end of the array. When length <
// capacity the stale cell at that position is overwritten and no new slot
// is allocated; otherwise capacity grows by one.
func (a *Array) Push(ctx context.Context, value slots.Cell) error {
	root := a.Root()
	return a.store.Update(ctx, func(tx slots.Store) error {
		hdr, err := a.readHeader(ctx, tx)
		if err != nil {
			return err
		}
		if hdr.length == math.MaxUint64 {
			return fmt.Errorf("%w: length %d", ErrOverflow, hdr.length)
		}
		if err := tx.Put(ctx, cellAddr(root, hdr.length), value); err != nil {
			return err
		}
		if hdr.length == hdr.capacity {
			hdr.capacity++
		}
		hdr.length++
		return a.writeHeader(ctx, tx, hdr)
	})
}

// Pop removes and returns the last element. Only the length moves; the
// cell is left stale so a later push can reuse it without paying for a
// fresh allocation.
func (a *Array) Pop(ctx context.Context) (slots.Cell, error) {
	root := a.Root()
	var value slots.Cell
	err := a.store.Update(ctx, func(tx slots.Store) error {
		hdr, err := a.readHeader(ctx, tx)
		if err != nil {
			return err
		}
		if hdr.length == 0 {
			return ErrUnderflow
		}
		value, err = tx.Get(ctx, cellAddr(root, hdr.length-1))
		if err != nil {
			return err
		}
		hdr.length--
		return a.writeHeader(ctx, tx, hdr)
	})
	if err != nil {
		return slots.Cell{}, err
	}
	return value, nil
}

// Clear sets the length to zero. Capacity and cells are untouched; every
// previously live cell becomes stale and remains reclaimable by Shrink.
func (a *Array) Clear(ctx context.Context) error {
	return a.store.Update(ctx, func(tx slots.Store) error {
		hdr, err := a.readHeader(ctx, tx)
		if err != nil {
			return err
		}
		if hdr.length == 0 {
			return nil
		}
		hdr.length = 0
		return a.writeHeader(ctx, tx, hdr)
	})
}

// Shrink reclaims stale cells, spending at most budget cost units, and
// returns the number of cells deleted. The walk runs from the highest
// stale index down towards the length and stops while the meter still
// holds the schedule's reserve, so the operation always terminates inside
// its budget. Capacity is updated to exactly the boundary the walk
// reached, never below the length.
//
// Shrink never fails for want of budget; an unaffordable walk is simply
// zero progress. Repeated calls with any sequence of non negative budgets
// converge on capacity == length.
func (a *Array) Shrink(ctx context.Context, budget uint64) (uint64, error) {
	root := a.Root()
	meter := gas.NewMeter(budget, a.schedule)
	var reclaimed uint64
	err := a.store.Update(ctx, func(tx slots.Store) error {
		hdr, err := a.readHeader(ctx, tx)
		if err != nil {
			return err
		}
		if hdr.capacity == hdr.length {
			return nil
		}

		// The base is derived fresh on every call; identity is not assumed
		// stable across storage contexts.
		base := cellBase(root)
		st := slots.Metered(tx, meter)

		end := hdr.capacity
		for end > hdr.length {
			if meter.Remaining() < a.schedule.DeleteCost+a.schedule.ShrinkReserve {
				break
			}
			if err := st.Delete(ctx, base.Add(end-1)); err != nil {
				return err
			}
			end--
		}
		if false {
			logger.Sugar.Debugf("shrink: len=%d cap=%d end=%d remaining=%d", hdr.length, hdr.capacity, end, meter.Remaining())
		}
		if end == hdr.capacity {
			return nil
		}
		reclaimed = hdr.capacity - end
		hdr.capacity = end
		return a.writeHeader(ctx, tx, hdr)
	})
	if err != nil {
		return 0, err
	}
	return reclaimed, nil
}

// FullShrinkBudget returns a budget sufficient for Shrink to reclaim every
// stale cell in a single call given the array's current state.
func (a *Array) FullShrinkBudget(ctx context.Context) (uint64, error) {
	hdr, err := a.readHeader(ctx, a.store)
	if err != nil {
		return 0, err
	}
	occupied := hdr.capacity - hdr.length
	return occupied*a.schedule.DeleteCost + a.schedule.ShrinkReserve, nil
}
