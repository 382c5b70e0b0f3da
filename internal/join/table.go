// Package join implements the keyed CSV joiner: two delimited files are read
// into tables keyed on one column each, matched on that key (inner join) and
// written back out as key followed by the remaining fields of both sides.
package join

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/JonMunkholm/committools/internal/csvio"
)

// Row is an ordered sequence of fields from one record.
type Row []string

// KeyedTable maps a trimmed key to the fields of its row with the key column
// removed. Keys keep the position of their first appearance; a repeated key
// replaces the stored fields (last write wins).
type KeyedTable struct {
	keys []string
	rows map[string]Row
}

// NewKeyedTable returns an empty table.
func NewKeyedTable() *KeyedTable {
	return &KeyedTable{rows: make(map[string]Row)}
}

// Put stores fields under key.
func (t *KeyedTable) Put(key string, fields Row) {
	if _, ok := t.rows[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.rows[key] = fields
}

// Get returns the fields stored under key.
func (t *KeyedTable) Get(key string) (Row, bool) {
	r, ok := t.rows[key]
	return r, ok
}

// Len returns the number of distinct keys.
func (t *KeyedTable) Len() int {
	return len(t.keys)
}

// Keys returns the keys in first-seen order.
func (t *KeyedTable) Keys() []string {
	return append([]string(nil), t.keys...)
}

// ExciseKey returns the fields of row before and after index, concatenated.
func ExciseKey(row Row, index int) Row {
	out := make(Row, 0, len(row)-1)
	out = append(out, row[:index]...)
	return append(out, row[index+1:]...)
}

// ReadTable reads the delimited file at path into a KeyedTable keyed on the
// zero-based column keyIndex. A blank line is a row of width 0 and fails
// like any other row too short to hold the key.
func ReadTable(path string, keyIndex int, comma rune) (*KeyedTable, error) {
	if keyIndex < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidKeyIndex, keyIndex)
	}

	table := NewKeyedTable()
	n, err := csvio.ReadFile(path, comma, func(record []string, line int) error {
		return table.add(record, line, keyIndex)
	}, csvio.WithBlankLines())
	if err != nil {
		return nil, annotate(path, err)
	}

	slog.Debug("table loaded", "path", path, "key_index", keyIndex, "keys", table.Len(), "bytes", n)
	return table, nil
}

// ReadTableFrom is ReadTable over an already open stream.
func ReadTableFrom(r io.Reader, keyIndex int, comma rune) (*KeyedTable, error) {
	if keyIndex < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidKeyIndex, keyIndex)
	}

	table := NewKeyedTable()
	err := csvio.NewReader(r, comma, csvio.WithBlankLines()).ForEach(func(record []string, line int) error {
		return table.add(record, line, keyIndex)
	})
	if err != nil {
		return nil, annotate("", err)
	}
	return table, nil
}

func (t *KeyedTable) add(record []string, line, keyIndex int) error {
	if len(record) <= keyIndex {
		return &MalformedRowError{Line: line, Width: len(record), KeyIndex: keyIndex}
	}
	t.Put(strings.TrimSpace(record[keyIndex]), ExciseKey(record, keyIndex))
	return nil
}
