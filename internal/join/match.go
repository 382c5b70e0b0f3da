package join

// Result is the inner join of two KeyedTables: each key present in both
// maps to the left fields followed by the right fields.
type Result struct {
	keys []string
	rows map[string]Row
}

// Len returns the number of joined rows.
func (r *Result) Len() int {
	return len(r.keys)
}

// Keys returns the joined keys in output order.
func (r *Result) Keys() []string {
	return append([]string(nil), r.keys...)
}

// Get returns the joined fields for key.
func (r *Result) Get(key string) (Row, bool) {
	row, ok := r.rows[key]
	return row, ok
}

// Match joins left and right on their keys. Keys present on only one side
// are dropped. Output follows the key order of left.
func Match(left, right *KeyedTable) *Result {
	res := &Result{rows: make(map[string]Row)}

	for _, key := range left.keys {
		other, ok := right.rows[key]
		if !ok {
			continue
		}
		mine := left.rows[key]

		joined := make(Row, 0, len(mine)+len(other))
		joined = append(joined, mine...)
		joined = append(joined, other...)

		res.keys = append(res.keys, key)
		res.rows[key] = joined
	}

	return res
}
