// Package slots provides the slot addressed storage substrate beneath the
// dynamic array engine. A store maps fixed width addresses to fixed width
// cells; absent slots read as the zero cell. Mutations that must be atomic
// run inside Update, which discards every write made by the callback if it
// returns an error.
package slots

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
)

const (
	// CellBytes defines the width of ALL slot values. The fixed width makes
	// cell addresses directly computable from a base address and an index.
	CellBytes = 32
	// AddrBytes is the width of a slot address.
	AddrBytes = 32
)

// Cell is one fixed width storage unit.
type Cell [CellBytes]byte

// IsZero is true for the value an unset slot reads as.
func (c Cell) IsZero() bool {
	return c == Cell{}
}

// Addr is a slot address. The address space is flat; structures above the
// substrate derive disjoint ranges for themselves, the store does not
// partition it.
type Addr [AddrBytes]byte

// Add returns the address n slots above a. The addition is big endian with
// carry, so contiguous ranges can start anywhere in the address space.
func (a Addr) Add(n uint64) Addr {
	var carry uint64
	for i := AddrBytes - 1; i >= 0; i-- {
		if n == 0 && carry == 0 {
			break
		}
		sum := uint64(a[i]) + (n & 0xff) + carry
		a[i] = byte(sum)
		carry = sum >> 8
		n >>= 8
	}
	return a
}

// OwnerID identifies the owning context a storage region belongs to.
// Structures owned by different identities derive disjoint address ranges.
type OwnerID []byte

// NewOwnerID returns a fresh random owner identity.
func NewOwnerID() OwnerID {
	u := uuid.New()
	return OwnerID(u[:])
}

// ParseOwnerID parses the uuid string form of an owner identity.
func ParseOwnerID(s string) (OwnerID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("parse owner id %q: %w", s, err)
	}
	return OwnerID(u[:]), nil
}

func (id OwnerID) String() string {
	if len(id) == 16 {
		return uuid.UUID(id).String()
	}
	return hex.EncodeToString(id)
}

// Store is the read/write surface of the substrate. Get returns the zero
// cell for slots that were never written or have been deleted.
type Store interface {
	Get(ctx context.Context, addr Addr) (Cell, error)
	Put(ctx context.Context, addr Addr, cell Cell) error
	Delete(ctx context.Context, addr Addr) error
}

// TxnStore is a Store whose mutations can be grouped into an all or nothing
// unit. Update runs fn against a transactional view of the store; if fn
// returns an error every mutation it made is discarded, otherwise they are
// applied as one unit. Reads inside fn observe the pending writes.
type TxnStore interface {
	Store
	Update(ctx context.Context, fn func(tx Store) error) error
}
