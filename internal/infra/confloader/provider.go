package confloader

import (
	"errors"

	"github.com/knadh/koanf/maps"
)

// ErrReadBytesNotSupported is returned when ReadBytes is called on the
// map provider; koanf falls back to Read for map-shaped providers.
var ErrReadBytesNotSupported = errors.New("confloader: map provider supports Read only")

// mapProvider adapts a flat map of dotted keys to koanf's Provider.
type mapProvider map[string]any

func (m mapProvider) ReadBytes() ([]byte, error) {
	return nil, ErrReadBytesNotSupported
}

// Read unflattens the dotted keys so they merge into the nested
// configuration tree rather than landing as literal top-level keys.
func (m mapProvider) Read() (map[string]any, error) {
	return maps.Unflatten(m, "."), nil
}
