package model

import (
	"fmt"

	"github.com/tbadun/co327-corona-lp/pkg/domain/entities"
)

// Merger combines named sub-maps into one map and refuses keys emitted by more than one sub-map
type Merger[K comparable, V any] struct {
	merged map[K]V
	owner  map[K]string
}

// NewMerger creates an empty merger
func NewMerger[K comparable, V any]() *Merger[K, V] {
	return &Merger[K, V]{
		merged: make(map[K]V),
		owner:  make(map[K]string),
	}
}

// Merge adds every entry of part. A key already contributed by another part is an error
// and leaves the merger unchanged.
func (m *Merger[K, V]) Merge(name string, part map[K]V) error {
	for k := range part {
		if prev, exists := m.owner[k]; exists {
			return fmt.Errorf("%v emitted by both %s and %s: %w", k, prev, name, entities.ErrDuplicateKey)
		}
	}
	for k, v := range part {
		m.merged[k] = v
		m.owner[k] = name
	}
	return nil
}

// Owner returns the name of the part that contributed a key
func (m *Merger[K, V]) Owner(k K) (string, bool) {
	name, ok := m.owner[k]
	return name, ok
}

// Result returns the merged map
func (m *Merger[K, V]) Result() map[K]V {
	return m.merged
}
