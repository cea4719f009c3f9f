// Package dynarray implements a growable, fixed cell width array over a
// slot addressed storage substrate with per operation cost metering.
//
// The engine maintains two counters for every array: the logical length and
// the physical capacity. Pop and Clear only move the length; the cells they
// abandon stay allocated ("stale") and are reused by later pushes without a
// fresh allocation. Because the substrate only returns cost when a slot is
// explicitly deleted, reclamation is a separate, budgeted operation: Shrink
// walks the stale range from the top down, deleting one cell at a time, and
// stops while enough budget remains for the enclosing operation to finish
// cleanly. Repeated Shrink calls with arbitrarily small budgets converge on
// capacity == length.
//
// Cell addresses are derived, not assumed contiguous with anything else: an
// array's header lives at a hash of its owner identity and field name, and
// element i lives at hash(header address) + i. Sibling structures owned by
// the same context therefore get disjoint slot ranges.
//
// Typed front ends for unsigned integers and short fixed width identifiers
// are provided as codecs over the single cell engine, see Typed.
package dynarray
