// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ordmap provides a generic map that keeps its entries in
// insertion order. Lookup is by map index into an ordered slice;
// deletion renumbers the entries after the deleted one.
package ordmap

import (
	"iter"
	"slices"
)

// KeyValue is one entry of a [Map].
type KeyValue[K comparable, V any] struct {
	Key   K
	Value V
}

// Map is an insertion-ordered map. The zero value is ready to use.
type Map[K comparable, V any] struct {
	// Order has the entries in the order they were added.
	Order []KeyValue[K, V]

	// index maps each key to its position in Order.
	index map[K]int
}

// New returns a new empty ordered map.
func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{index: make(map[K]int)}
}

// Set sets the value for the given key. An existing key keeps its
// position, and its previous value is returned with true.
func (om *Map[K, V]) Set(key K, val V) (old V, replaced bool) {
	if om.index == nil {
		om.index = make(map[K]int)
	}
	if i, ok := om.index[key]; ok {
		old = om.Order[i].Value
		om.Order[i].Value = val
		return old, true
	}
	om.index[key] = len(om.Order)
	om.Order = append(om.Order, KeyValue[K, V]{Key: key, Value: val})
	return old, false
}

// Get returns the value for the given key and whether it was found.
func (om *Map[K, V]) Get(key K) (V, bool) {
	if i, ok := om.index[key]; ok {
		return om.Order[i].Value, true
	}
	var zv V
	return zv, false
}

// Has returns whether the key is in the map.
func (om *Map[K, V]) Has(key K) bool {
	_, ok := om.index[key]
	return ok
}

// Delete removes the given key, returning its value and
// whether it was found.
func (om *Map[K, V]) Delete(key K) (V, bool) {
	i, ok := om.index[key]
	if !ok {
		var zv V
		return zv, false
	}
	val := om.Order[i].Value
	delete(om.index, key)
	om.Order = slices.Delete(om.Order, i, i+1)
	for j := i; j < len(om.Order); j++ {
		om.index[om.Order[j].Key] = j
	}
	return val, true
}

// Len returns the number of entries.
func (om *Map[K, V]) Len() int {
	if om == nil {
		return 0
	}
	return len(om.Order)
}

// Reset removes all entries.
func (om *Map[K, V]) Reset() {
	om.Order = nil
	om.index = nil
}

// Keys returns the keys in order.
func (om *Map[K, V]) Keys() []K {
	ks := make([]K, len(om.Order))
	for i, kv := range om.Order {
		ks[i] = kv.Key
	}
	return ks
}

// All iterates over the entries in order.
func (om *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, kv := range om.Order {
			if !yield(kv.Key, kv.Value) {
				return
			}
		}
	}
}
