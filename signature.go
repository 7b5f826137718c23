package sekai

import (
	"strconv"
	"strings"

	"github.com/kelindar/bitmap"
)

// Signature is the set of component ids attached to an entity or an archetype.
//
// The bits live in 64-bit chunks that grow by doubling, so every operation costs
// O(chunks): proportional to the highest id in use, not to the number of registered
// types. A running count of set bits is kept next to the chunks.
//
// Assigning a Signature shares its chunks. Use Clone for an independent copy.
type Signature struct {
	bits  bitmap.Bitmap
	count int
}

// NewSignature returns a signature with the given ids set.
func NewSignature(ids ...ComponentID) Signature {
	var s Signature
	for _, id := range ids {
		s.Set(id)
	}
	return s
}

// Set adds id to the signature. It reports whether the signature changed.
func (s *Signature) Set(id ComponentID) bool {
	if s.Test(id) {
		return false
	}
	s.grow(int(id>>6) + 1)
	s.bits.Set(uint32(id))
	s.count++
	return true
}

// Clear removes id from the signature. It reports whether the signature changed.
func (s *Signature) Clear(id ComponentID) bool {
	if !s.Test(id) {
		return false
	}
	s.bits.Remove(uint32(id))
	s.count--
	return true
}

// Test reports whether id is in the signature.
func (s Signature) Test(id ComponentID) bool {
	return s.bits.Contains(uint32(id))
}

// Count returns the number of ids in the signature.
func (s Signature) Count() int {
	return s.count
}

// Contains reports whether s is a superset of other.
func (s Signature) Contains(other Signature) bool {
	for i, chunk := range other.bits {
		var mine uint64
		if i < len(s.bits) {
			mine = s.bits[i]
		}
		if mine&chunk != chunk {
			return false
		}
	}
	return true
}

// Intersects reports whether s and other share at least one id.
func (s Signature) Intersects(other Signature) bool {
	n := min(len(s.bits), len(other.bits))
	for i := range n {
		if s.bits[i]&other.bits[i] != 0 {
			return true
		}
	}
	return false
}

// ClearAll removes every id while keeping the allocated chunks.
func (s *Signature) ClearAll() {
	for i := range s.bits {
		s.bits[i] = 0
	}
	s.count = 0
}

// Merge adds every id of other to s.
func (s *Signature) Merge(other Signature) {
	s.grow(len(other.bits))
	for i, chunk := range other.bits {
		s.bits[i] |= chunk
	}
	s.count = s.bits.Count()
}

// Hash returns a cheap structural hash: every chunk multiplied by its 1-based position,
// folded with xor. Equal signatures hash equally, but a hash match still needs Equal.
func (s Signature) Hash() uint64 {
	var h uint64
	for i, chunk := range s.bits {
		h ^= chunk * uint64(i+1)
	}
	return h
}

// Equal reports whether both signatures hold the same ids.
func (s Signature) Equal(other Signature) bool {
	if s.count != other.count {
		return false
	}
	n := max(len(s.bits), len(other.bits))
	for i := range n {
		var a, b uint64
		if i < len(s.bits) {
			a = s.bits[i]
		}
		if i < len(other.bits) {
			b = other.bits[i]
		}
		if a != b {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of s.
func (s Signature) Clone() Signature {
	if len(s.bits) == 0 {
		return Signature{}
	}
	return Signature{bits: s.bits.Clone(nil), count: s.count}
}

// Range calls fn for every id in ascending order.
func (s Signature) Range(fn func(id ComponentID)) {
	s.bits.Range(func(x uint32) {
		fn(ComponentID(x))
	})
}

// IDs returns the ids in ascending order.
func (s Signature) IDs() []ComponentID {
	ids := make([]ComponentID, 0, s.count)
	s.Range(func(id ComponentID) {
		ids = append(ids, id)
	})
	return ids
}

func (s Signature) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	s.Range(func(id ComponentID) {
		if !first {
			sb.WriteString(", ")
		}
		first = false
		sb.WriteString(strconv.FormatUint(uint64(id), 10))
	})
	sb.WriteByte('}')
	return sb.String()
}

// grow makes room for at least words chunks, doubling the current length.
func (s *Signature) grow(words int) {
	if words <= len(s.bits) {
		return
	}
	n := max(len(s.bits)*2, words)
	grown := make(bitmap.Bitmap, n)
	copy(grown, s.bits)
	s.bits = grown
}
