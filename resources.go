package sekai

import (
	"reflect"

	"github.com/rotisserie/eris"
)

// sharedStore holds the per-world singletons, at most one per type.
// Items live in a slice addressed by a type map; freed slots are reused before the slice grows.
type sharedStore struct {
	items   []any
	types   map[reflect.Type]int
	freeIDs []int
}

// add stores v under t and returns its slot.
func (s *sharedStore) add(t reflect.Type, v any) (int, error) {
	if s.types == nil {
		s.types = make(map[reflect.Type]int)
	}
	if _, ok := s.types[t]; ok {
		return -1, eris.Wrapf(ErrSharedExists, "type %s", t)
	}
	var id int
	if n := len(s.freeIDs); n > 0 {
		id = s.freeIDs[n-1]
		s.freeIDs = s.freeIDs[:n-1]
		s.items[id] = v
	} else {
		s.items = append(s.items, v)
		id = len(s.items) - 1
	}
	s.types[t] = id
	return id, nil
}

// get returns the item stored under t.
func (s *sharedStore) get(t reflect.Type) (any, bool) {
	id, ok := s.types[t]
	if !ok {
		return nil, false
	}
	return s.items[id], true
}

// remove drops the item stored under t and frees its slot.
func (s *sharedStore) remove(t reflect.Type) bool {
	id, ok := s.types[t]
	if !ok {
		return false
	}
	delete(s.types, t)
	s.items[id] = nil
	s.freeIDs = append(s.freeIDs, id)
	return true
}

func (s *sharedStore) len() int {
	return len(s.types)
}

// clear removes every item, resetting the free list.
func (s *sharedStore) clear() {
	clear(s.items)
	s.items = s.items[:0]
	clear(s.types)
	s.freeIDs = s.freeIDs[:0]
}

// AddShared attaches v as the shared T of w. Each world holds at most one value per type.
func AddShared[T any](w *World, v *T) error {
	w.mustBeLive()
	if v == nil {
		return eris.Errorf("shared %s cannot be nil", reflect.TypeFor[T]())
	}
	_, err := w.shared.add(reflect.TypeFor[T](), v)
	return err
}

// Shared returns the shared T of w.
func Shared[T any](w *World) (*T, error) {
	w.mustBeLive()
	t := reflect.TypeFor[T]()
	v, ok := w.shared.get(t)
	if !ok {
		return nil, eris.Wrapf(ErrSharedNotFound, "type %s in world %q", t, w.name)
	}
	return v.(*T), nil //nolint:errcheck // stored under its own type
}

// MustShared is like Shared but panics when w holds no T.
func MustShared[T any](w *World) *T {
	v, err := Shared[T](w)
	if err != nil {
		panic(err)
	}
	return v
}

// HasShared reports whether w holds a shared T.
func HasShared[T any](w *World) bool {
	w.mustBeLive()
	_, ok := w.shared.get(reflect.TypeFor[T]())
	return ok
}

// RemoveShared detaches the shared T of w. It reports whether one was attached.
func RemoveShared[T any](w *World) bool {
	w.mustBeLive()
	return w.shared.remove(reflect.TypeFor[T]())
}

// SharedLen returns the number of shared values attached to w.
func (w *World) SharedLen() int {
	w.mustBeLive()
	return w.shared.len()
}
