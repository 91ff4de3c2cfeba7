// Package memory provides the in-memory store of open documents.
package memory

import "sync"

// OrderIndex tracks document IDs in creation order.
//
// Listing open documents must be stable across calls so the UI can
// render a consistent tab strip; map iteration order is not.
type OrderIndex struct {
	mu  sync.RWMutex
	ids []string
}

// NewOrderIndex creates a new creation-order index.
func NewOrderIndex() *OrderIndex {
	return &OrderIndex{}
}

// Append adds an ID at the end of the order.
func (i *OrderIndex) Append(id string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.ids = append(i.ids, id)
}

// Remove deletes an ID, preserving the order of the rest.
func (i *OrderIndex) Remove(id string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	for n, v := range i.ids {
		if v == id {
			i.ids = append(i.ids[:n], i.ids[n+1:]...)
			return
		}
	}
}

// IDs returns a copy of the IDs in creation order.
func (i *OrderIndex) IDs() []string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	out := make([]string, len(i.ids))
	copy(out, i.ids)
	return out
}

// Len returns the number of tracked IDs.
func (i *OrderIndex) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.ids)
}
