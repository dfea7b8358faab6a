// Package registry provides the per-collection identity index that backs
// every uniqueness invariant in the case graph.
//
// One registry exists per entity collection (clients, team, products, risks,
// norms), owned by the case aggregate. A write that would put two different
// entities behind one canonical id is rejected with a result value; the
// caller decides how to revert its own state.
package registry

import (
	"iter"

	"casefile/internal/casefile/models"
)

// Result reports the outcome of an Upsert.
type Result struct {
	// Key is the canonical id now mapping to the entity, "" when the id was
	// blank (the entity is simply unindexed).
	Key string
	// Rejected is set when the id already maps to a different entity. The
	// existing mapping is left untouched.
	Rejected bool
	// ConflictID is the canonical id that collided, set only when Rejected.
	ConflictID string
}

// Registry maps canonical identifiers to live entities of one collection.
// Not safe for concurrent use; the engine is serialized by the caller.
type Registry[T comparable] struct {
	byID map[string]T
	keys map[T]string
}

// New returns an empty registry.
func New[T comparable]() *Registry[T] {
	return &Registry[T]{
		byID: make(map[string]T),
		keys: make(map[T]string),
	}
}

// Upsert indexes entity under id. A blank id unindexes the entity's previous
// key. A collision with a different entity is rejected and the previous
// mapping (including the entity's own old key, if any) is preserved, so the
// registry never holds two entities behind one canonical id.
func (r *Registry[T]) Upsert(id string, entity T) Result {
	key := models.CanonicalID(id)
	old, hadOld := r.keys[entity]

	if key == "" {
		if hadOld {
			delete(r.byID, old)
			delete(r.keys, entity)
		}
		return Result{}
	}

	if existing, taken := r.byID[key]; taken && existing != entity {
		return Result{Rejected: true, ConflictID: key}
	}

	if hadOld && old != key {
		delete(r.byID, old)
	}
	r.byID[key] = entity
	r.keys[entity] = key
	return Result{Key: key}
}

// Lookup returns the entity registered under id, if any.
func (r *Registry[T]) Lookup(id string) (T, bool) {
	entity, ok := r.byID[models.CanonicalID(id)]
	return entity, ok
}

// Remove drops the mapping for id, if present.
func (r *Registry[T]) Remove(id string) {
	key := models.CanonicalID(id)
	if entity, ok := r.byID[key]; ok {
		delete(r.byID, key)
		delete(r.keys, entity)
	}
}

// Len reports the number of indexed entities.
func (r *Registry[T]) Len() int {
	return len(r.byID)
}

// Rebuild drops the index and re-upserts every (id, entity) pair from the
// sequence. Pairs rejected as collisions are returned in encounter order;
// the first entity seen for a key keeps it.
func (r *Registry[T]) Rebuild(entries iter.Seq2[string, T]) []Result {
	r.byID = make(map[string]T)
	r.keys = make(map[T]string)

	var rejected []Result
	for id, entity := range entries {
		if res := r.Upsert(id, entity); res.Rejected {
			rejected = append(rejected, res)
		}
	}
	return rejected
}
