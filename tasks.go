package sekai

// taskRunner is the type-erased view of a taskBuffer, flushed by ExecuteAllTasks.
type taskRunner interface {
	execute(w *World)
	pending() int
}

// task is one queued emission.
type task[T any] struct {
	entity Entity
	value  T
}

// taskBuffer holds the one-shot components of type T: the values queued since the last
// flush and the entities that received a value during it.
type taskBuffer[T any] struct {
	queued  []task[T]
	applied []Entity
	next    []Entity
	marks   sparseSet[struct{}] // entity ids applied by the running flush
}

func (b *taskBuffer[T]) pending() int {
	return len(b.queued)
}

// execute sets every queued value in queue order, then removes T from the entities of
// the previous flush that were not given a new value.
func (b *taskBuffer[T]) execute(w *World) {
	b.next = b.next[:0]
	for _, t := range b.queued {
		// The entity may have been destroyed since Emit.
		if !w.isAlive(t.entity) {
			continue
		}
		Set(t.entity, t.value)
		if !b.marks.has(t.entity.ID) {
			b.marks.set(t.entity.ID, struct{}{})
			b.next = append(b.next, t.entity)
		}
	}

	for _, e := range b.applied {
		if b.marks.has(e.ID) || !Has[T](e) {
			continue
		}
		Remove[T](e)
	}

	b.marks.clear()
	clear(b.applied)
	b.applied, b.next = b.next, b.applied[:0]
	clear(b.queued)
	b.queued = b.queued[:0]
}

// tasksFor returns the buffer of T in w, creating it on first use.
func tasksFor[T any](w *World) *taskBuffer[T] {
	id := uint32(ID[T](w))
	if r, ok := w.tasks.get(id); ok {
		return r.(*taskBuffer[T]) //nolint:errcheck // ids map to exactly one type
	}
	b := &taskBuffer[T]{}
	w.tasks.set(id, b)
	return b
}

// Emit queues value as a one-shot T component of e. The next ExecuteTasks for T sets it,
// and the flush after that removes it again unless it was emitted anew. Values emitted
// for the same entity before a flush are applied in order, so the last one wins.
// Emit reports false for a stale handle.
func Emit[T any](e Entity, value T) bool {
	w, ok := e.checked()
	if !ok {
		return false
	}
	b := tasksFor[T](w)
	b.queued = append(b.queued, task[T]{entity: e, value: value})
	return true
}

// ExecuteTasks flushes the one-shot T components of w. Removing the last component of an
// entity destroys it, as with Remove.
func ExecuteTasks[T any](w *World) {
	w.mustBeLive()
	tasksFor[T](w).execute(w)
}

// ExecuteAllTasks flushes every one-shot component type of w, in the order the types
// were first emitted or flushed.
func (w *World) ExecuteAllTasks() {
	w.mustBeLive()
	for i := 0; i < w.tasks.len(); i++ {
		w.tasks.valueAt(i).execute(w)
	}
}

// PendingTasks returns the number of one-shot values queued across all types.
func (w *World) PendingTasks() int {
	w.mustBeLive()
	n := 0
	for i := 0; i < w.tasks.len(); i++ {
		n += w.tasks.valueAt(i).pending()
	}
	return n
}
