package sekai

// Each1 calls fn for every matching entity with pointers to its component. Every type
// must be part of the filter's Include set. An entity whose signature changed during the
// walk is still visited; a component it lost reads as a zero value.
//
// The pointers alias pool storage: they stay valid only until a component of the same
// type is attached to or removed from any entity of the world. Do not keep them across
// such calls, including calls made by fn itself.
func Each1[A any](f *Filter, fn func(Entity, *A)) {
	w := f.world
	pa := poolFor[A](w, ID[A](w))
	f.require(pa.id)
	f.each(func(e Entity) bool {
		fn(e, pa.ref(e.ID))
		return true
	})
}

// Each2 calls fn for every matching entity with pointers to its 2 components. Every type
// must be part of the filter's Include set. An entity whose signature changed during the
// walk is still visited; a component it lost reads as a zero value.
//
// The pointers alias pool storage: they stay valid only until a component of the same
// type is attached to or removed from any entity of the world. Do not keep them across
// such calls, including calls made by fn itself.
func Each2[A, B any](f *Filter, fn func(Entity, *A, *B)) {
	w := f.world
	pa := poolFor[A](w, ID[A](w))
	pb := poolFor[B](w, ID[B](w))
	f.require(pa.id, pb.id)
	f.each(func(e Entity) bool {
		fn(e, pa.ref(e.ID), pb.ref(e.ID))
		return true
	})
}

// Each3 calls fn for every matching entity with pointers to its 3 components. Every type
// must be part of the filter's Include set. An entity whose signature changed during the
// walk is still visited; a component it lost reads as a zero value.
//
// The pointers alias pool storage: they stay valid only until a component of the same
// type is attached to or removed from any entity of the world. Do not keep them across
// such calls, including calls made by fn itself.
func Each3[A, B, C any](f *Filter, fn func(Entity, *A, *B, *C)) {
	w := f.world
	pa := poolFor[A](w, ID[A](w))
	pb := poolFor[B](w, ID[B](w))
	pc := poolFor[C](w, ID[C](w))
	f.require(pa.id, pb.id, pc.id)
	f.each(func(e Entity) bool {
		fn(e, pa.ref(e.ID), pb.ref(e.ID), pc.ref(e.ID))
		return true
	})
}

// Each4 calls fn for every matching entity with pointers to its 4 components. Every type
// must be part of the filter's Include set. An entity whose signature changed during the
// walk is still visited; a component it lost reads as a zero value.
//
// The pointers alias pool storage: they stay valid only until a component of the same
// type is attached to or removed from any entity of the world. Do not keep them across
// such calls, including calls made by fn itself.
func Each4[A, B, C, D any](f *Filter, fn func(Entity, *A, *B, *C, *D)) {
	w := f.world
	pa := poolFor[A](w, ID[A](w))
	pb := poolFor[B](w, ID[B](w))
	pc := poolFor[C](w, ID[C](w))
	pd := poolFor[D](w, ID[D](w))
	f.require(pa.id, pb.id, pc.id, pd.id)
	f.each(func(e Entity) bool {
		fn(e, pa.ref(e.ID), pb.ref(e.ID), pc.ref(e.ID), pd.ref(e.ID))
		return true
	})
}

// Each5 calls fn for every matching entity with pointers to its 5 components. Every type
// must be part of the filter's Include set. An entity whose signature changed during the
// walk is still visited; a component it lost reads as a zero value.
//
// The pointers alias pool storage: they stay valid only until a component of the same
// type is attached to or removed from any entity of the world. Do not keep them across
// such calls, including calls made by fn itself.
func Each5[A, B, C, D, E any](f *Filter, fn func(Entity, *A, *B, *C, *D, *E)) {
	w := f.world
	pa := poolFor[A](w, ID[A](w))
	pb := poolFor[B](w, ID[B](w))
	pc := poolFor[C](w, ID[C](w))
	pd := poolFor[D](w, ID[D](w))
	pe := poolFor[E](w, ID[E](w))
	f.require(pa.id, pb.id, pc.id, pd.id, pe.id)
	f.each(func(e Entity) bool {
		fn(e, pa.ref(e.ID), pb.ref(e.ID), pc.ref(e.ID), pd.ref(e.ID), pe.ref(e.ID))
		return true
	})
}

// Each6 calls fn for every matching entity with pointers to its 6 components. Every type
// must be part of the filter's Include set. An entity whose signature changed during the
// walk is still visited; a component it lost reads as a zero value.
//
// The pointers alias pool storage: they stay valid only until a component of the same
// type is attached to or removed from any entity of the world. Do not keep them across
// such calls, including calls made by fn itself.
func Each6[A, B, C, D, E, F any](f *Filter, fn func(Entity, *A, *B, *C, *D, *E, *F)) {
	w := f.world
	pa := poolFor[A](w, ID[A](w))
	pb := poolFor[B](w, ID[B](w))
	pc := poolFor[C](w, ID[C](w))
	pd := poolFor[D](w, ID[D](w))
	pe := poolFor[E](w, ID[E](w))
	pf := poolFor[F](w, ID[F](w))
	f.require(pa.id, pb.id, pc.id, pd.id, pe.id, pf.id)
	f.each(func(e Entity) bool {
		fn(e, pa.ref(e.ID), pb.ref(e.ID), pc.ref(e.ID), pd.ref(e.ID), pe.ref(e.ID), pf.ref(e.ID))
		return true
	})
}

// Each7 calls fn for every matching entity with pointers to its 7 components. Every type
// must be part of the filter's Include set. An entity whose signature changed during the
// walk is still visited; a component it lost reads as a zero value.
//
// The pointers alias pool storage: they stay valid only until a component of the same
// type is attached to or removed from any entity of the world. Do not keep them across
// such calls, including calls made by fn itself.
func Each7[A, B, C, D, E, F, G any](f *Filter, fn func(Entity, *A, *B, *C, *D, *E, *F, *G)) {
	w := f.world
	pa := poolFor[A](w, ID[A](w))
	pb := poolFor[B](w, ID[B](w))
	pc := poolFor[C](w, ID[C](w))
	pd := poolFor[D](w, ID[D](w))
	pe := poolFor[E](w, ID[E](w))
	pf := poolFor[F](w, ID[F](w))
	pg := poolFor[G](w, ID[G](w))
	f.require(pa.id, pb.id, pc.id, pd.id, pe.id, pf.id, pg.id)
	f.each(func(e Entity) bool {
		fn(e, pa.ref(e.ID), pb.ref(e.ID), pc.ref(e.ID), pd.ref(e.ID), pe.ref(e.ID), pf.ref(e.ID), pg.ref(e.ID))
		return true
	})
}

// Each8 calls fn for every matching entity with pointers to its 8 components. Every type
// must be part of the filter's Include set. An entity whose signature changed during the
// walk is still visited; a component it lost reads as a zero value.
//
// The pointers alias pool storage: they stay valid only until a component of the same
// type is attached to or removed from any entity of the world. Do not keep them across
// such calls, including calls made by fn itself.
func Each8[A, B, C, D, E, F, G, H any](f *Filter, fn func(Entity, *A, *B, *C, *D, *E, *F, *G, *H)) {
	w := f.world
	pa := poolFor[A](w, ID[A](w))
	pb := poolFor[B](w, ID[B](w))
	pc := poolFor[C](w, ID[C](w))
	pd := poolFor[D](w, ID[D](w))
	pe := poolFor[E](w, ID[E](w))
	pf := poolFor[F](w, ID[F](w))
	pg := poolFor[G](w, ID[G](w))
	ph := poolFor[H](w, ID[H](w))
	f.require(pa.id, pb.id, pc.id, pd.id, pe.id, pf.id, pg.id, ph.id)
	f.each(func(e Entity) bool {
		fn(e, pa.ref(e.ID), pb.ref(e.ID), pc.ref(e.ID), pd.ref(e.ID), pe.ref(e.ID), pf.ref(e.ID), pg.ref(e.ID), ph.ref(e.ID))
		return true
	})
}
