package slots

import (
	"context"
	"errors"
	"testing"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBadgerStore(t *testing.T) *BadgerStore {
	t.Helper()
	logger.New("NOOP")
	t.Cleanup(logger.OnExit)

	s, err := NewBadgerStore(BadgerConfig{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestBadgerStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestBadgerStore(t)

	got, err := s.Get(ctx, addrOf(1))
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	require.NoError(t, s.Put(ctx, addrOf(1), cellOf(7)))
	got, err = s.Get(ctx, addrOf(1))
	require.NoError(t, err)
	assert.Equal(t, cellOf(7), got)

	require.NoError(t, s.Delete(ctx, addrOf(1)))
	got, err = s.Get(ctx, addrOf(1))
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestBadgerStoreUpdateRollsBack(t *testing.T) {
	ctx := context.Background()
	s := newTestBadgerStore(t)
	require.NoError(t, s.Put(ctx, addrOf(1), cellOf(1)))

	boom := errors.New("boom")
	err := s.Update(ctx, func(tx Store) error {
		if err := tx.Put(ctx, addrOf(2), cellOf(2)); err != nil {
			return err
		}
		if err := tx.Delete(ctx, addrOf(1)); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := s.Get(ctx, addrOf(1))
	require.NoError(t, err)
	assert.Equal(t, cellOf(1), got)
	got, err = s.Get(ctx, addrOf(2))
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestBadgerStoreTxnReadsOwnWrites(t *testing.T) {
	ctx := context.Background()
	s := newTestBadgerStore(t)

	err := s.Update(ctx, func(tx Store) error {
		require.NoError(t, tx.Put(ctx, addrOf(1), cellOf(1)))
		got, err := tx.Get(ctx, addrOf(1))
		require.NoError(t, err)
		assert.Equal(t, cellOf(1), got)

		require.NoError(t, tx.Delete(ctx, addrOf(1)))
		got, err = tx.Get(ctx, addrOf(1))
		require.NoError(t, err)
		assert.True(t, got.IsZero())
		return nil
	})
	require.NoError(t, err)
}

func TestBadgerStorePathRequired(t *testing.T) {
	_, err := NewBadgerStore(BadgerConfig{})
	require.ErrorIs(t, err, ErrPathRequired)
}

func TestBadgerStoreKeyPrefixIsolation(t *testing.T) {
	ctx := context.Background()
	logger.New("NOOP")
	t.Cleanup(logger.OnExit)

	dir := t.TempDir()
	a, err := NewBadgerStore(BadgerConfig{Path: dir, KeyPrefix: "a/"})
	require.NoError(t, err)
	require.NoError(t, a.Put(ctx, addrOf(1), cellOf(1)))
	require.NoError(t, a.Close())

	b, err := NewBadgerStore(BadgerConfig{Path: dir, KeyPrefix: "b/"})
	require.NoError(t, err)
	defer b.Close()

	// the same address under a different prefix is a different slot
	got, err := b.Get(ctx, addrOf(1))
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}
