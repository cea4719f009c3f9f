package dynarray

import (
	"context"

	"github.com/holiman/uint256"

	"github.com/maAPPsDEV/DynamicArray/slots"
)

// Codec converts between a native value kind and the engine's cell type.
// Conversions must be total and invertible: Decode(Encode(v)) == v for
// every representable v, with no error path in either direction.
type Codec[T any] interface {
	Encode(T) slots.Cell
	Decode(slots.Cell) T
}

// Typed adapts the cell engine to a native value kind. Every operation
// forwards to the underlying Array unchanged, converting at the boundary.
type Typed[T any, C Codec[T]] struct {
	arr   *Array
	codec C
}

func NewTyped[T any, C Codec[T]](arr *Array, codec C) *Typed[T, C] {
	return &Typed[T, C]{arr: arr, codec: codec}
}

func (t *Typed[T, C]) Get(ctx context.Context, i uint64) (T, error) {
	cell, err := t.arr.Get(ctx, i)
	if err != nil {
		var zero T
		return zero, err
	}
	return t.codec.Decode(cell), nil
}

func (t *Typed[T, C]) Set(ctx context.Context, i uint64, value T) error {
	return t.arr.Set(ctx, i, t.codec.Encode(value))
}

func (t *Typed[T, C]) Push(ctx context.Context, value T) error {
	return t.arr.Push(ctx, t.codec.Encode(value))
}

func (t *Typed[T, C]) Pop(ctx context.Context) (T, error) {
	cell, err := t.arr.Pop(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	return t.codec.Decode(cell), nil
}

func (t *Typed[T, C]) Len(ctx context.Context) (uint64, error) {
	return t.arr.Len(ctx)
}

func (t *Typed[T, C]) Cap(ctx context.Context) (uint64, error) {
	return t.arr.Cap(ctx)
}

func (t *Typed[T, C]) Clear(ctx context.Context) error {
	return t.arr.Clear(ctx)
}

func (t *Typed[T, C]) Shrink(ctx context.Context, budget uint64) (uint64, error) {
	return t.arr.Shrink(ctx, budget)
}

// WordCodec is the identity conversion for callers storing opaque cells.
type WordCodec struct{}

func (WordCodec) Encode(c slots.Cell) slots.Cell { return c }
func (WordCodec) Decode(c slots.Cell) slots.Cell { return c }

// UintCodec stores unsigned integers of the full cell width, big endian.
type UintCodec struct{}

func (UintCodec) Encode(v *uint256.Int) slots.Cell {
	if v == nil {
		return slots.Cell{}
	}
	return slots.Cell(v.Bytes32())
}

func (UintCodec) Decode(c slots.Cell) *uint256.Int {
	return new(uint256.Int).SetBytes32(c[:])
}

// IDBytes is the width of the short identifier kind. It is guaranteed to
// fit within a cell.
const IDBytes = 20

// ID is a fixed width identifier shorter than the cell width.
type ID [IDBytes]byte

// IDCodec zero extends identifiers into the low order bytes of the cell on
// the way in and truncates losslessly on the way out.
type IDCodec struct{}

func (IDCodec) Encode(id ID) slots.Cell {
	var c slots.Cell
	copy(c[slots.CellBytes-IDBytes:], id[:])
	return c
}

func (IDCodec) Decode(c slots.Cell) ID {
	var id ID
	copy(id[:], c[slots.CellBytes-IDBytes:])
	return id
}

// NewWords returns a front end for 32 byte opaque values.
func NewWords(store slots.TxnStore, owner slots.OwnerID, name string, opts ...Option) *Typed[slots.Cell, WordCodec] {
	return NewTyped[slots.Cell, WordCodec](New(store, owner, name, opts...), WordCodec{})
}

// NewUints returns a front end for cell width unsigned integers.
func NewUints(store slots.TxnStore, owner slots.OwnerID, name string, opts ...Option) *Typed[*uint256.Int, UintCodec] {
	return NewTyped[*uint256.Int, UintCodec](New(store, owner, name, opts...), UintCodec{})
}

// NewIDs returns a front end for short fixed width identifiers.
func NewIDs(store slots.TxnStore, owner slots.OwnerID, name string, opts ...Option) *Typed[ID, IDCodec] {
	return NewTyped[ID, IDCodec](New(store, owner, name, opts...), IDCodec{})
}
