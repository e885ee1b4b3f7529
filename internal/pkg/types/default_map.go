package types

// DefaultMap is a map wrapper that creates missing entries on access.
//
//	m := NewDefaultMap[string](func() []string { return nil })
//	m.Set("patient_001", append(m.Get("patient_001"), "contract_a"))
//
// DefaultMap performs no locking. Get inserts, so callers sharing a
// DefaultMap between readers must use Lookup on the read path.
type DefaultMap[K comparable, V any] struct {
	data        map[K]V
	defaultFunc func() V
}

// NewDefaultMap creates an empty DefaultMap that fills missing keys with defaultFunc.
func NewDefaultMap[K comparable, V any](defaultFunc func() V) DefaultMap[K, V] {
	return DefaultMap[K, V]{
		data:        make(map[K]V),
		defaultFunc: defaultFunc,
	}
}

// Get returns the value for key, storing and returning a default value when
// the key is absent.
func (d *DefaultMap[K, V]) Get(key K) V {
	val, ok := d.data[key]
	if ok {
		return val
	}

	val = d.defaultFunc()
	d.data[key] = val
	return val
}

// Lookup returns the value for key without inserting a default.
func (d *DefaultMap[K, V]) Lookup(key K) (V, bool) {
	val, ok := d.data[key]
	return val, ok
}

// Set assigns val to key.
func (d *DefaultMap[K, V]) Set(key K, val V) {
	d.data[key] = val
}

// Len returns the number of stored keys.
func (d *DefaultMap[K, V]) Len() int {
	return len(d.data)
}

// ToMap returns the underlying map.
func (d *DefaultMap[K, V]) ToMap() map[K]V {
	return d.data
}
