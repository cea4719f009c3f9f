package dynarray

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/maAPPsDEV/DynamicArray/slots"
)

// domainTag separates array slot ranges from any sibling structure that
// derives addresses from the same owner identity.
const domainTag = "dynamicarray:v1"

// The header occupies a single cell at the array root. Length and capacity
// are big endian uint64 at fixed offsets; the remaining bytes are reserved.
const (
	headerLengthFirstByte   = 0
	headerLengthEnd         = 8
	headerCapacityFirstByte = 8
	headerCapacityEnd       = 16
)

// RootAddr derives the slot address of the array header from the owning
// context identity and the array's field name. It is a pure function of
// identity: the same owner and name always map to the same slot, and
// nothing else maps there.
func RootAddr(owner slots.OwnerID, name string) slots.Addr {
	h := sha256.New()
	h.Write([]byte(domainTag))
	h.Write(owner)
	h.Write([]byte(name))
	var a slots.Addr
	h.Sum(a[:0])
	return a
}

// cellBase returns the address of element 0, one hash below the root so
// the element range cannot collide with the header or with a sibling whose
// root differs in any byte. It is recomputed wherever it is needed rather
// than cached; identity cannot be assumed stable across storage contexts
// and the derivation is cheap.
func cellBase(root slots.Addr) slots.Addr {
	return slots.Addr(sha256.Sum256(root[:]))
}

func cellAddr(root slots.Addr, i uint64) slots.Addr {
	return cellBase(root).Add(i)
}

// header is the decoded form of the array's root cell. The zero value is
// the state of an array that has never been written, which is how implicit
// creation works: absent slots read as the zero cell.
type header struct {
	length   uint64
	capacity uint64
}

func decodeHeader(c slots.Cell) header {
	return header{
		length:   binary.BigEndian.Uint64(c[headerLengthFirstByte:headerLengthEnd]),
		capacity: binary.BigEndian.Uint64(c[headerCapacityFirstByte:headerCapacityEnd]),
	}
}

func (h header) encode() slots.Cell {
	var c slots.Cell
	binary.BigEndian.PutUint64(c[headerLengthFirstByte:headerLengthEnd], h.length)
	binary.BigEndian.PutUint64(c[headerCapacityFirstByte:headerCapacityEnd], h.capacity)
	return c
}
