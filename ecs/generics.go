package ecs

import "github.com/milk9111/platformer/ecs/component"

// Add inserts or replaces the component of the given kind on e.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if !IsAlive(w, e) {
		return component.ErrEntityNotAlive
	}
	if value == nil {
		return component.ErrNilComponent
	}
	storeFor(w, kind, true).set(e, value)
	return nil
}

// Remove drops the component of the given kind from e.
func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if !IsAlive(w, e) {
		return false
	}
	return storeFor(w, kind, false).remove(e)
}

// Has reports whether e carries a component of the given kind.
func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if !IsAlive(w, e) {
		return false
	}
	return storeFor(w, kind, false).has(e)
}

// Get returns the stored component pointer. Mutations through it are visible
// to every other system.
func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	if !IsAlive(w, e) {
		return nil, false
	}
	return storeFor(w, kind, false).get(e)
}

// First returns any live entity carrying the given kind.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	s := storeFor(w, kind, false)
	if s.len() == 0 {
		return 0, false
	}
	for _, e := range s.denseEntities {
		if IsAlive(w, e) {
			return e, true
		}
	}
	return 0, false
}

// Count reports how many entities carry the given kind.
func Count[T any](w *World, kind component.ComponentKind[T]) int {
	return storeFor(w, kind, false).len()
}

// ForEach visits every entity with a component of kind a. Entities destroyed
// or stripped by fn during iteration are skipped.
func ForEach[A any](w *World, a component.ComponentKind[A], fn func(Entity, *A)) {
	sa := storeFor(w, a, false)
	for _, e := range sa.snapshot() {
		va, ok := sa.get(e)
		if !ok {
			continue
		}
		fn(e, va)
	}
}

// ForEach2 visits every entity carrying both kinds.
func ForEach2[A, B any](w *World, a component.ComponentKind[A], b component.ComponentKind[B], fn func(Entity, *A, *B)) {
	sa := storeFor(w, a, false)
	sb := storeFor(w, b, false)
	if sa == nil || sb == nil {
		return
	}
	for _, e := range sa.snapshot() {
		va, ok := sa.get(e)
		if !ok {
			continue
		}
		vb, ok := sb.get(e)
		if !ok {
			continue
		}
		fn(e, va, vb)
	}
}

// ForEach3 visits every entity carrying all three kinds.
func ForEach3[A, B, C any](w *World, a component.ComponentKind[A], b component.ComponentKind[B], c component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	sa := storeFor(w, a, false)
	sb := storeFor(w, b, false)
	sc := storeFor(w, c, false)
	if sa == nil || sb == nil || sc == nil {
		return
	}
	for _, e := range sa.snapshot() {
		va, ok := sa.get(e)
		if !ok {
			continue
		}
		vb, ok := sb.get(e)
		if !ok {
			continue
		}
		vc, ok := sc.get(e)
		if !ok {
			continue
		}
		fn(e, va, vb, vc)
	}
}
