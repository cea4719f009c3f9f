package slots

import (
	"context"
)

// MemStore is an in process TxnStore backed by a map. It serves tests and
// callers whose arrays do not need to outlive the process. Operations are
// not safe for concurrent use; the substrate executes one operation at a
// time against a single logical owner.
type MemStore struct {
	cells map[Addr]Cell
}

func NewMemStore() *MemStore {
	return &MemStore{cells: map[Addr]Cell{}}
}

func (s *MemStore) Get(ctx context.Context, addr Addr) (Cell, error) {
	return s.cells[addr], nil
}

func (s *MemStore) Put(ctx context.Context, addr Addr, cell Cell) error {
	s.cells[addr] = cell
	return nil
}

func (s *MemStore) Delete(ctx context.Context, addr Addr) error {
	delete(s.cells, addr)
	return nil
}

// CellCount returns the number of slots currently holding a value. It
// exists so callers can observe physical reclamation.
func (s *MemStore) CellCount() int {
	return len(s.cells)
}

// Update runs fn against a journaled overlay of the store. The overlay is
// applied only when fn returns nil; on error the parent store is untouched.
func (s *MemStore) Update(ctx context.Context, fn func(tx Store) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tx := &memTxn{base: s, writes: map[Addr]*Cell{}}
	if err := fn(tx); err != nil {
		return err
	}
	for addr, cell := range tx.writes {
		if cell == nil {
			delete(s.cells, addr)
			continue
		}
		s.cells[addr] = *cell
	}
	return nil
}

// memTxn overlays pending writes on the parent store. A nil entry marks a
// pending delete so that reads inside the transaction observe it.
type memTxn struct {
	base   *MemStore
	writes map[Addr]*Cell
}

func (t *memTxn) Get(ctx context.Context, addr Addr) (Cell, error) {
	if cell, ok := t.writes[addr]; ok {
		if cell == nil {
			return Cell{}, nil
		}
		return *cell, nil
	}
	return t.base.Get(ctx, addr)
}

func (t *memTxn) Put(ctx context.Context, addr Addr, cell Cell) error {
	c := cell
	t.writes[addr] = &c
	return nil
}

func (t *memTxn) Delete(ctx context.Context, addr Addr) error {
	t.writes[addr] = nil
	return nil
}
