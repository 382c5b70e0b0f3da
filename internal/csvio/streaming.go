package csvio

// streaming.go holds the reader wrappers applied to every input file before
// CSV parsing:
//
//   - bomReader: drops a leading UTF-8 BOM (0xEF 0xBB 0xBF)
//   - CountingReader: tracks bytes and line breaks consumed
//
// Everything after the BOM reaches encoding/csv byte for byte, so fields in
// other encodings (Latin-1 keys, for instance) stay distinct.

import (
	"bytes"
	"io"
)

var (
	utf8BOM = []byte{0xEF, 0xBB, 0xBF}
	newline = []byte{'\n'}
)

// bomReader skips a UTF-8 BOM at the start of the stream if present.
type bomReader struct {
	r       io.Reader
	checked bool
	head    []byte // bytes read during the BOM check that belong to the data
}

func newBOMReader(r io.Reader) *bomReader {
	return &bomReader{r: r}
}

func (b *bomReader) Read(p []byte) (int, error) {
	if !b.checked {
		b.checked = true

		var buf [3]byte
		n, err := io.ReadFull(b.r, buf[:])
		if n == 3 && bytes.Equal(buf[:], utf8BOM) {
			n = 0
		}
		b.head = append(b.head, buf[:n]...)

		if err == io.ErrUnexpectedEOF {
			err = io.EOF
		}
		if err != nil && err != io.EOF {
			return 0, err
		}
		if err == io.EOF && len(b.head) == 0 {
			return 0, io.EOF
		}
	}

	if len(b.head) > 0 {
		n := copy(p, b.head)
		b.head = b.head[n:]
		return n, nil
	}

	return b.r.Read(p)
}

// CountingReader wraps an io.Reader to track bytes and '\n' bytes read.
type CountingReader struct {
	reader    io.Reader
	BytesRead int64
	Newlines  int
}

// NewCountingReader creates a counting reader.
func NewCountingReader(r io.Reader) *CountingReader {
	return &CountingReader{reader: r}
}

// Read implements io.Reader.
func (r *CountingReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	r.BytesRead += int64(n)
	r.Newlines += bytes.Count(p[:n], newline)
	return n, err
}

// Normalize wraps r with BOM skipping, counting the raw bytes consumed
// from r. The BOM holds no line breaks, so the newline count matches the
// line numbering of the stream handed to the CSV parser.
func Normalize(r io.Reader) (io.Reader, *CountingReader) {
	counter := NewCountingReader(r)
	return newBOMReader(counter), counter
}
