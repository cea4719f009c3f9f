package dynarray

import (
	"context"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maAPPsDEV/DynamicArray/slots"
)

func TestUintFrontEnd(t *testing.T) {
	ctx := context.Background()
	store := slots.NewMemStore()
	arr := NewUints(store, slots.NewOwnerID(), "balances")

	values := []*uint256.Int{
		uint256.NewInt(0),
		uint256.NewInt(1),
		uint256.NewInt(1 << 40),
		new(uint256.Int).Not(uint256.NewInt(0)), // max value, all bits set
	}
	for _, v := range values {
		require.NoError(t, arr.Push(ctx, v))
	}

	for i, want := range values {
		got, err := arr.Get(ctx, uint64(i))
		require.NoError(t, err)
		assert.Zero(t, want.Cmp(got), "value %d", i)
	}

	// engine errors pass through the facade verbatim
	_, err := arr.Get(ctx, uint64(len(values)))
	require.ErrorIs(t, err, ErrOutOfBounds)

	got, err := arr.Pop(ctx)
	require.NoError(t, err)
	assert.Zero(t, values[len(values)-1].Cmp(got))
}

func TestIDFrontEnd(t *testing.T) {
	ctx := context.Background()
	store := slots.NewMemStore()
	owner := slots.NewOwnerID()
	arr := NewIDs(store, owner, "members")

	id := ID{0xde, 0xad, 0xbe, 0xef, 19: 0x01}
	require.NoError(t, arr.Push(ctx, id))

	got, err := arr.Get(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, id, got)

	// the identifier is zero extended into the low order bytes of the cell
	cell, err := New(store, owner, "members").Get(ctx, 0)
	require.NoError(t, err)
	var wantCell slots.Cell
	copy(wantCell[slots.CellBytes-IDBytes:], id[:])
	assert.Equal(t, wantCell, cell)
	assert.Equal(t, make([]byte, slots.CellBytes-IDBytes), cell[:slots.CellBytes-IDBytes])
}

func TestIDCodecRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		id   ID
	}{
		{"zero", ID{}},
		{"low bit", ID{19: 0x01}},
		{"high byte", ID{0: 0xff}},
		{"all set", ID{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}},
	}
	var codec IDCodec
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.id, codec.Decode(codec.Encode(tt.id)))
		})
	}
}

func TestWordFrontEnd(t *testing.T) {
	ctx := context.Background()
	arr := NewWords(slots.NewMemStore(), slots.NewOwnerID(), "words")

	require.NoError(t, arr.Push(ctx, cellOf(0xaa)))
	require.NoError(t, arr.Push(ctx, cellOf(0xbb)))
	require.NoError(t, arr.Set(ctx, 0, cellOf(0xcc)))

	got, err := arr.Get(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, cellOf(0xcc), got)

	n, err := arr.Len(ctx)
	require.NoError(t, err)
	c, err := arr.Cap(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), n)
	assert.Equal(t, uint64(2), c)

	require.NoError(t, arr.Clear(ctx))
	reclaimed, err := arr.Shrink(ctx, 1_000_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), reclaimed)
}

func TestUintCodecNil(t *testing.T) {
	var codec UintCodec
	assert.True(t, codec.Encode(nil).IsZero())
	assert.True(t, codec.Decode(slots.Cell{}).IsZero())
}
