// Package intern deduplicates lexemes into stable symbols.
//
// Lexemes live in one append-only byte pool, each followed by a NUL byte.
// A symbol is the pool offset of the lexeme's first byte, so it is both an
// identity and an address. The index over the pool is an open-addressing
// hash table using Robin Hood displacement.
package intern

import (
	"bytes"

	"lightning/token"
)

const (
	minCapacity = 64
	// emptyHash marks a free slot; real hashes are never 0.
	emptyHash = 0
)

type entry struct {
	hash   uint64
	offset uint32
	length uint32
}

// Table maps byte strings to symbols. It is not safe for concurrent use.
type Table struct {
	entries   []entry
	mask      uint64
	size      int
	threshold int
	pool      []byte
	hash      func([]byte) uint64
}

// New returns a table whose initial capacity is derived from sizeHint,
// usually the length of the source being scanned.
func New(sizeHint int) *Table {
	t := &Table{
		hash: fnv1a,
		pool: make([]byte, 1, sizeHint/2+1),
	}
	t.resize(initialCapacity(sizeHint))
	return t
}

func initialCapacity(sizeHint int) int {
	want := sizeHint >> 3
	capacity := minCapacity
	for capacity < want {
		capacity <<= 1
	}
	return capacity
}

func (t *Table) resize(capacity int) {
	t.entries = make([]entry, capacity)
	t.mask = uint64(capacity - 1)
	t.threshold = capacity - capacity/4
	t.size = 0
}

// Intern returns the symbol for b, adding b to the pool if it has not been
// seen before. The returned symbol stays valid for the life of the table.
func (t *Table) Intern(b []byte) token.Symbol {
	h := t.hash(b)
	if sym, ok := t.find(b, h); ok {
		return sym
	}

	if t.size >= t.threshold {
		t.grow()
	}

	offset := len(t.pool)
	t.pool = append(t.pool, b...)
	t.pool = append(t.pool, 0)
	t.insert(entry{hash: h, offset: uint32(offset), length: uint32(len(b))})
	return token.Symbol(offset)
}

// Lookup returns the symbol for b without interning it.
func (t *Table) Lookup(b []byte) (token.Symbol, bool) {
	return t.find(b, t.hash(b))
}

func (t *Table) find(b []byte, h uint64) (token.Symbol, bool) {
	slot := h & t.mask
	for dist := uint64(0); ; dist++ {
		e := &t.entries[slot]
		if e.hash == emptyHash {
			return token.NoSymbol, false
		}
		// A resident closer to home than we have walked means b would
		// have displaced it on insert, so b is absent.
		if t.distance(slot, e.hash) < dist {
			return token.NoSymbol, false
		}
		if e.hash == h && int(e.length) == len(b) &&
			bytes.Equal(t.pool[e.offset:e.offset+e.length], b) {
			return token.Symbol(e.offset), true
		}
		slot = (slot + 1) & t.mask
	}
}

func (t *Table) insert(e entry) {
	slot := e.hash & t.mask
	dist := uint64(0)
	for {
		resident := &t.entries[slot]
		if resident.hash == emptyHash {
			*resident = e
			t.size++
			return
		}
		if d := t.distance(slot, resident.hash); d < dist {
			e, *resident = *resident, e
			dist = d
		}
		slot = (slot + 1) & t.mask
		dist++
	}
}

// grow doubles the capacity and re-inserts every live entry. Hashes are
// stored, so nothing is rehashed, and pool offsets are untouched.
func (t *Table) grow() {
	old := t.entries
	t.resize(len(old) * 2)
	for _, e := range old {
		if e.hash != emptyHash {
			t.insert(e)
		}
	}
}

// distance is how far slot is from the ideal slot of hash h.
func (t *Table) distance(slot, h uint64) uint64 {
	return (slot - (h & t.mask)) & t.mask
}

// Bytes returns the interned lexeme for sym, read up to its NUL terminator.
// Use Resolve for lexemes that may themselves contain NUL bytes.
func (t *Table) Bytes(sym token.Symbol) []byte {
	if sym == token.NoSymbol || int(sym) >= len(t.pool) {
		return nil
	}
	rest := t.pool[sym:]
	if end := bytes.IndexByte(rest, 0); end >= 0 {
		return rest[:end:end]
	}
	return rest
}

// Resolve returns the length bytes of the lexeme interned as sym.
func (t *Table) Resolve(sym token.Symbol, length int) []byte {
	end := int(sym) + length
	if sym == token.NoSymbol || end > len(t.pool) {
		return nil
	}
	return t.pool[sym:end:end]
}

// Len returns the number of distinct lexemes interned.
func (t *Table) Len() int { return t.size }

// Capacity returns the number of slots in the hash index.
func (t *Table) Capacity() int { return len(t.entries) }

// PoolSize returns the number of bytes held by the string pool, including
// terminators and the reserved byte at offset 0.
func (t *Table) PoolSize() int { return len(t.pool) }
