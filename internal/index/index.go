// Package index resolves the id references between independently loaded
// record lists: rights to diversions, return flows and assignments to
// delay tables.
package index

import (
	"slices"
	"strings"

	"github.com/hashicorp/go-set/v2"
)

// Keyed is any record with an id.
type Keyed interface {
	ID() string
}

// Index looks records up by id. The first record with an id wins; later
// records with the same id are reported by Duplicates.
type Index[T Keyed] struct {
	items map[string]T
	dups  *set.Set[string]
	ids   []string
	fold  bool
}

// New indexes records by exact id.
func New[T Keyed](records []T) *Index[T] {
	return build(records, false)
}

// NewFold indexes records by id ignoring case.
func NewFold[T Keyed](records []T) *Index[T] {
	return build(records, true)
}

func build[T Keyed](records []T, fold bool) *Index[T] {
	ix := &Index[T]{
		items: make(map[string]T, len(records)),
		dups:  set.New[string](0),
		fold:  fold,
	}
	for _, r := range records {
		key := ix.key(r.ID())
		if _, ok := ix.items[key]; ok {
			ix.dups.Insert(r.ID())
			continue
		}
		ix.items[key] = r
		ix.ids = append(ix.ids, r.ID())
	}
	return ix
}

func (ix *Index[T]) key(id string) string {
	if ix.fold {
		return strings.ToLower(id)
	}
	return id
}

// Get returns the record with the id.
func (ix *Index[T]) Get(id string) (T, bool) {
	r, ok := ix.items[ix.key(id)]
	return r, ok
}

// Has reports whether a record with the id exists.
func (ix *Index[T]) Has(id string) bool {
	_, ok := ix.items[ix.key(id)]
	return ok
}

// Len returns the number of distinct ids.
func (ix *Index[T]) Len() int { return len(ix.items) }

// IDs returns the distinct ids in input order.
func (ix *Index[T]) IDs() []string { return slices.Clone(ix.ids) }

// Duplicates returns the ids seen more than once, sorted.
func (ix *Index[T]) Duplicates() []string {
	out := ix.dups.Slice()
	slices.Sort(out)
	return out
}
