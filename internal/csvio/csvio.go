// Package csvio opens, reads and writes the delimited files the tools work
// on. A leading BOM is stripped before input reaches encoding/csv, other
// bytes pass through unchanged, and records may vary in width.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ParseError reports a CSV syntax problem with its 1-based line number.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid csv at line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Reader yields records from a normalized CSV stream.
type Reader struct {
	csv     *csv.Reader
	counter *CountingReader

	// blank line tracking, see WithBlankLines
	blankLines bool
	next       int // first line not yet accounted for
	held       []string
	heldLine   int
	heldEnd    int
	done       bool
}

// Option configures a Reader.
type Option func(*Reader)

// WithBlankLines makes the Reader return an empty record for every blank
// line instead of skipping it the way encoding/csv does.
func WithBlankLines() Option {
	return func(r *Reader) { r.blankLines = true }
}

// NewReader returns a Reader over r using comma as the field separator.
func NewReader(r io.Reader, comma rune, opts ...Option) *Reader {
	norm, counter := Normalize(r)
	cr := csv.NewReader(norm)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = false

	reader := &Reader{csv: cr, counter: counter, next: 1}
	for _, opt := range opts {
		opt(reader)
	}
	return reader
}

// Read returns the next record and its 1-based starting line, or io.EOF.
func (r *Reader) Read() ([]string, int, error) {
	if !r.blankLines {
		return r.read()
	}

	if r.held == nil && !r.done {
		record, line, err := r.read()
		switch {
		case err == io.EOF:
			// encoding/csv has consumed the whole stream, so every line
			// break is counted; lines past the last record are blank.
			r.done = true
			r.heldLine = r.counter.Newlines + 1
		case err != nil:
			return nil, line, err
		default:
			last := len(record) - 1
			endLine, _ := r.csv.FieldPos(last)
			r.held, r.heldLine = record, line
			r.heldEnd = endLine + strings.Count(record[last], "\n")
		}
	}

	if r.next < r.heldLine {
		line := r.next
		r.next++
		return []string{}, line, nil
	}
	if r.done {
		return nil, 0, io.EOF
	}

	record, line := r.held, r.heldLine
	r.next = r.heldEnd + 1
	r.held = nil
	return record, line, nil
}

func (r *Reader) read() ([]string, int, error) {
	record, err := r.csv.Read()
	if err != nil {
		if err == io.EOF {
			return nil, 0, io.EOF
		}
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			return nil, pe.StartLine, &ParseError{Line: pe.StartLine, Err: pe.Err}
		}
		return nil, 0, err
	}
	line, _ := r.csv.FieldPos(0)
	return record, line, nil
}

// BytesRead reports how many raw bytes have been consumed so far.
func (r *Reader) BytesRead() int64 {
	return r.counter.BytesRead
}

// ForEach calls fn for every record until EOF or the first error.
func (r *Reader) ForEach(fn func(record []string, line int) error) error {
	for {
		record, line, err := r.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(record, line); err != nil {
			return err
		}
	}
}

// ReadFile opens path and calls fn for every record. The file is closed on
// every exit path.
func ReadFile(path string, comma rune, fn func(record []string, line int) error, opts ...Option) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	r := NewReader(f, comma, opts...)
	err = r.ForEach(fn)
	return r.BytesRead(), err
}

// Writer is a csv.Writer that quotes a record made of one empty field.
// encoding/csv would write it as a blank line, which reads back as no
// record at all.
type Writer struct {
	*csv.Writer
	out io.Writer
}

// NewWriter returns a Writer using comma as the field separator.
func NewWriter(w io.Writer, comma rune) *Writer {
	cw := csv.NewWriter(w)
	cw.Comma = comma
	return &Writer{Writer: cw, out: w}
}

// Write writes a single record.
func (w *Writer) Write(record []string) error {
	if len(record) != 1 || record[0] != "" {
		return w.Writer.Write(record)
	}

	// Flush what is buffered so the raw line lands in order.
	w.Writer.Flush()
	if err := w.Writer.Error(); err != nil {
		return err
	}
	eol := "\n"
	if w.UseCRLF {
		eol = "\r\n"
	}
	_, err := io.WriteString(w.out, `""`+eol)
	return err
}

// WriteFile truncates or creates path and writes records through fn.
// A close error is reported when the writes themselves succeeded.
func WriteFile(path string, comma rune, fn func(w *Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	cw := NewWriter(f, comma)
	if err := fn(cw); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}
