package slots

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/dgraph-io/badger/v4"
)

const defaultKeyPrefix = "slots/"

// BadgerConfig configures a persistent slot store.
type BadgerConfig struct {
	// Path is the directory for the database files. Required unless
	// InMemory is set.
	Path string
	// InMemory keeps everything in process, which is what tests want.
	InMemory bool
	// SyncWrites forces writes to disk before commit returns.
	SyncWrites bool
	// KeyPrefix namespaces the slot keys so the database can be shared
	// with other data. Defaults to "slots/".
	KeyPrefix string
	// Log receives badger's internal logging. If nil it is discarded.
	Log logger.Logger
}

// BadgerStore is a TxnStore persisted in a badger key value database. Keys
// are the configured prefix followed by the raw address bytes. Update maps
// directly onto a badger read-write transaction, which provides the all or
// nothing discard the substrate contract requires.
type BadgerStore struct {
	db     *badger.DB
	prefix []byte
	log    logger.Logger
}

func NewBadgerStore(cfg BadgerConfig) (*BadgerStore, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, ErrPathRequired
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0750); err != nil {
			return nil, fmt.Errorf("create store directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites)
	if cfg.Log != nil {
		opts = opts.WithLogger(badgerLogAdapter{log: cfg.Log})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open slot database: %w", err)
	}

	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	s := &BadgerStore{db: db, prefix: []byte(prefix), log: cfg.Log}
	if s.log != nil {
		s.log.Debugf("slot store open: path=%q inmemory=%v prefix=%q", cfg.Path, cfg.InMemory, prefix)
	}
	return s, nil
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}

func (s *BadgerStore) key(addr Addr) []byte {
	k := make([]byte, 0, len(s.prefix)+AddrBytes)
	k = append(k, s.prefix...)
	return append(k, addr[:]...)
}

func (s *BadgerStore) Get(ctx context.Context, addr Addr) (Cell, error) {
	var cell Cell
	if err := ctx.Err(); err != nil {
		return cell, err
	}
	err := s.db.View(func(txn *badger.Txn) error {
		return badgerGet(txn, s.key(addr), &cell)
	})
	return cell, err
}

func (s *BadgerStore) Put(ctx context.Context, addr Addr, cell Cell) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(s.key(addr), cell[:])
	})
}

func (s *BadgerStore) Delete(ctx context.Context, addr Addr) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(s.key(addr))
	})
}

// Update runs fn in one badger read-write transaction. An error from fn
// discards the transaction, so partial mutations never reach the database.
func (s *BadgerStore) Update(ctx context.Context, fn func(tx Store) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return fn(&badgerTxn{store: s, txn: txn})
	})
}

type badgerTxn struct {
	store *BadgerStore
	txn   *badger.Txn
}

func (t *badgerTxn) Get(ctx context.Context, addr Addr) (Cell, error) {
	var cell Cell
	err := badgerGet(t.txn, t.store.key(addr), &cell)
	return cell, err
}

func (t *badgerTxn) Put(ctx context.Context, addr Addr, cell Cell) error {
	// badger retains the value slice until commit, so it must not alias a
	// buffer the caller will reuse.
	val := make([]byte, CellBytes)
	copy(val, cell[:])
	return t.txn.Set(t.store.key(addr), val)
}

func (t *badgerTxn) Delete(ctx context.Context, addr Addr) error {
	return t.txn.Delete(t.store.key(addr))
}

func badgerGet(txn *badger.Txn, key []byte, cell *Cell) error {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		*cell = Cell{}
		return nil
	}
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		if len(val) != CellBytes {
			return fmt.Errorf("%w: %d bytes at key %x", ErrCellBadSize, len(val), key)
		}
		copy(cell[:], val)
		return nil
	})
}

// badgerLogAdapter maps badger's printf style logging interface onto the
// common logger. Errors and warnings are folded into Infof with a severity
// tag; badger's own severity split does not line up with the logger's.
type badgerLogAdapter struct {
	log logger.Logger
}

func (l badgerLogAdapter) Errorf(format string, args ...any) {
	l.log.Infof("badger: ERROR "+format, args...)
}

func (l badgerLogAdapter) Warningf(format string, args ...any) {
	l.log.Infof("badger: WARNING "+format, args...)
}

func (l badgerLogAdapter) Infof(format string, args ...any) {
	l.log.Infof("badger: "+format, args...)
}

func (l badgerLogAdapter) Debugf(format string, args ...any) {
	l.log.Debugf("badger: "+format, args...)
}
