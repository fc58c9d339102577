package analytics

// orderedTotals accumulates values per category, keyed by exact string
// equality and iterated in first-seen order.
type orderedTotals[V any] struct {
	keys   []string
	values map[string]V
	add    func(V, V) V
}

func newOrderedTotals[V any](add func(V, V) V) *orderedTotals[V] {
	return &orderedTotals[V]{
		keys:   []string{},
		values: map[string]V{},
		add:    add,
	}
}

func (t *orderedTotals[V]) Add(key string, v V) {
	current, ok := t.values[key]
	if !ok {
		t.keys = append(t.keys, key)
		t.values[key] = v
		return
	}
	t.values[key] = t.add(current, v)
}

// Each calls fn for every key in insertion order.
func (t *orderedTotals[V]) Each(fn func(key string, v V)) {
	for _, k := range t.keys {
		fn(k, t.values[k])
	}
}
