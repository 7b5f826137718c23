package sekai

import "github.com/edwinsyarief/sekai/internal/assert"

const (
	sparseCapacity  = 64
	sparseTombstone = -1
)

// sparseSet maps non-negative integer keys to packed slots. Lookups, inserts and removes
// are O(1); removes swap the last packed element into the freed slot, so a slot index is
// only valid until the next remove and must never be cached across one.
type sparseSet[T any] struct {
	sparse []int32  // key -> slot, sparseTombstone when absent
	dense  []uint32 // slot -> key
	values []T      // slot -> value
}

// newSparseSet creates a sparse set sized for keys below capacity.
func newSparseSet[T any](capacity int) sparseSet[T] {
	capacity = max(capacity, sparseCapacity)
	s := sparseSet[T]{
		sparse: make([]int32, capacity),
		dense:  make([]uint32, 0, capacity),
		values: make([]T, 0, capacity),
	}
	for i := range s.sparse {
		s.sparse[i] = sparseTombstone
	}
	return s
}

// slot returns the packed slot of key.
func (s *sparseSet[T]) slot(key uint32) (int, bool) {
	if int(key) >= len(s.sparse) {
		return 0, false
	}
	slot := s.sparse[key]
	if slot == sparseTombstone {
		return 0, false
	}
	return int(slot), true
}

func (s *sparseSet[T]) has(key uint32) bool {
	_, ok := s.slot(key)
	return ok
}

// get returns the value stored under key, or the zero value when absent.
func (s *sparseSet[T]) get(key uint32) (T, bool) {
	slot, ok := s.slot(key)
	if !ok {
		var zero T
		return zero, false
	}
	return s.values[slot], true
}

// ptr returns a pointer into the packed storage, or nil when key is absent. The pointer
// is invalidated by the next set of a new key or remove of any key.
func (s *sparseSet[T]) ptr(key uint32) *T {
	slot, ok := s.slot(key)
	if !ok {
		return nil
	}
	return &s.values[slot]
}

// set inserts key or overwrites its value in place.
func (s *sparseSet[T]) set(key uint32, value T) {
	if slot, ok := s.slot(key); ok {
		s.values[slot] = value
		return
	}
	s.growSparse(key)
	s.sparse[key] = int32(len(s.dense)) //nolint:gosec // slot count is bounded by the key space
	s.dense = append(s.dense, key)
	s.values = append(s.values, value)
}

// remove swap-removes key. Returns true if the key existed.
func (s *sparseSet[T]) remove(key uint32) bool {
	slot, ok := s.slot(key)
	if !ok {
		return false
	}
	last := len(s.dense) - 1
	if slot != last {
		movedKey := s.dense[last]
		s.dense[slot] = movedKey
		s.values[slot] = s.values[last]
		s.sparse[movedKey] = int32(slot) //nolint:gosec // slot < len(dense)
	}
	var zero T
	s.values[last] = zero
	s.dense = s.dense[:last]
	s.values = s.values[:last]
	s.sparse[key] = sparseTombstone
	assert.That(len(s.dense) == len(s.values), "sparse set keys and values out of step")
	return true
}

// clear removes every key.
func (s *sparseSet[T]) clear() {
	for _, key := range s.dense {
		s.sparse[key] = sparseTombstone
	}
	clear(s.values)
	s.dense = s.dense[:0]
	s.values = s.values[:0]
}

func (s *sparseSet[T]) len() int {
	return len(s.dense)
}

// keyAt returns the key packed at slot.
func (s *sparseSet[T]) keyAt(slot int) uint32 {
	return s.dense[slot]
}

// valueAt returns the value packed at slot.
func (s *sparseSet[T]) valueAt(slot int) T {
	return s.values[slot]
}

// keys returns the packed keys. The slice is owned by the set.
func (s *sparseSet[T]) keys() []uint32 {
	return s.dense
}

// growSparse grows the sparse table by doubling until key fits.
func (s *sparseSet[T]) growSparse(key uint32) {
	if int(key) < len(s.sparse) {
		return
	}
	oldLen := len(s.sparse)
	newLen := max(oldLen*2, int(key)+1, sparseCapacity)

	grown := make([]int32, newLen)
	copy(grown, s.sparse)
	for i := oldLen; i < newLen; i++ {
		grown[i] = sparseTombstone
	}
	s.sparse = grown
}
