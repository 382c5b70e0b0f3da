package csvio

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/iotest"

	"github.com/google/go-cmp/cmp"
)

func TestBOMReader(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected string
	}{
		{
			name:     "file with BOM",
			input:    append([]byte{0xEF, 0xBB, 0xBF}, []byte("hello,world")...),
			expected: "hello,world",
		},
		{
			name:     "file without BOM",
			input:    []byte("hello,world"),
			expected: "hello,world",
		},
		{
			name:     "empty file",
			input:    []byte{},
			expected: "",
		},
		{
			name:     "only BOM",
			input:    []byte{0xEF, 0xBB, 0xBF},
			expected: "",
		},
		{
			name:     "shorter than BOM",
			input:    []byte("k"),
			expected: "k",
		},
		{
			name:     "partial BOM at start",
			input:    []byte{0xEF, 0xBB, 'a', 'b', 'c'},
			expected: string([]byte{0xEF, 0xBB, 'a', 'b', 'c'}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := io.ReadAll(newBOMReader(bytes.NewReader(tt.input)))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(result) != tt.expected {
				t.Errorf("got %q, want %q", string(result), tt.expected)
			}
		})
	}
}

func TestNormalize_KeepsNonUTF8Bytes(t *testing.T) {
	body := []byte{'c', 'a', 'f', 0xE9, ',', 0x80, '\n', 'x', '\n'}
	input := append([]byte{0xEF, 0xBB, 0xBF}, body...)

	r, counter := Normalize(iotest.OneByteReader(bytes.NewReader(input)))
	result, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(result, body) {
		t.Errorf("got %q, want %q", result, body)
	}
	if counter.BytesRead != int64(len(input)) {
		t.Errorf("BytesRead = %d, want %d", counter.BytesRead, len(input))
	}
	if counter.Newlines != 2 {
		t.Errorf("Newlines = %d, want 2", counter.Newlines)
	}
}

func TestReader_VariableWidthAndLines(t *testing.T) {
	input := "k1,a,b\nk2\n\"k,3\",x\n"
	r := NewReader(bytes.NewBufferString(input), ',')

	var got [][]string
	var lines []int
	err := r.ForEach(func(record []string, line int) error {
		got = append(got, record)
		lines = append(lines, line)
		return nil
	})
	if err != nil {
		t.Fatalf("ForEach() error = %v", err)
	}

	want := [][]string{{"k1", "a", "b"}, {"k2"}, {"k,3", "x"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 2, 3}, lines); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestReader_BlankLines(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		records [][]string
		lines   []int
	}{
		{
			name:    "blank line between records",
			input:   "k1,a\n\nk2,b\n",
			records: [][]string{{"k1", "a"}, {}, {"k2", "b"}},
			lines:   []int{1, 2, 3},
		},
		{
			name:    "crlf blank lines",
			input:   "k1,a\r\n\r\n\r\nk2,b\r\n",
			records: [][]string{{"k1", "a"}, {}, {}, {"k2", "b"}},
			lines:   []int{1, 2, 3, 4},
		},
		{
			name:    "trailing blank line",
			input:   "k1,a\n\n",
			records: [][]string{{"k1", "a"}, {}},
			lines:   []int{1, 2},
		},
		{
			name:    "quoted newline is not a blank line",
			input:   "k1,\"x\n\ny\"\nk2,b\n",
			records: [][]string{{"k1", "x\n\ny"}, {"k2", "b"}},
			lines:   []int{1, 4},
		},
		{
			name:    "no trailing newline",
			input:   "k1,a\nk2,b",
			records: [][]string{{"k1", "a"}, {"k2", "b"}},
			lines:   []int{1, 2},
		},
		{
			name:    "leading blank line after BOM",
			input:   "\xEF\xBB\xBF\nk1,a\n",
			records: [][]string{{}, {"k1", "a"}},
			lines:   []int{1, 2},
		},
		{
			name:    "empty input",
			input:   "",
			records: nil,
			lines:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(bytes.NewBufferString(tt.input), ',', WithBlankLines())

			var got [][]string
			var lines []int
			err := r.ForEach(func(record []string, line int) error {
				got = append(got, record)
				lines = append(lines, line)
				return nil
			})
			if err != nil {
				t.Fatalf("ForEach() error = %v", err)
			}
			if diff := cmp.Diff(tt.records, got); diff != "" {
				t.Errorf("records mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.lines, lines); diff != "" {
				t.Errorf("lines mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReader_SkipsBlankLinesByDefault(t *testing.T) {
	r := NewReader(bytes.NewBufferString("k1,a\n\nk2,b\n"), ',')

	var lines []int
	if err := r.ForEach(func(_ []string, line int) error {
		lines = append(lines, line)
		return nil
	}); err != nil {
		t.Fatalf("ForEach() error = %v", err)
	}
	if diff := cmp.Diff([]int{1, 3}, lines); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestReader_ParseError(t *testing.T) {
	r := NewReader(bytes.NewBufferString("ok,row\nbad,\"unterminated\n"), ',')

	err := r.ForEach(func([]string, int) error { return nil })
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if pe.Line != 2 {
		t.Errorf("Line = %d, want 2", pe.Line)
	}
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.csv"), ',', func([]string, int) error { return nil })
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestWriteFile_Truncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := os.WriteFile(path, []byte("old,content,that,is,long\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := WriteFile(path, ';', func(w *Writer) error {
		return w.Write([]string{"k", "a b", "c;d"})
	})
	if err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := "k;a b;\"c;d\"\n"; string(data) != want {
		t.Errorf("file = %q, want %q", string(data), want)
	}
}

func TestWriter_SingleEmptyFieldIsQuoted(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, ',')
	for _, record := range [][]string{{"a", ""}, {""}, {"", ""}, {"b"}} {
		if err := w.Write(record); err != nil {
			t.Fatalf("Write(%q) error = %v", record, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		t.Fatal(err)
	}

	if want := "a,\n\"\"\n,\nb\n"; buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}

	var got [][]string
	if err := NewReader(&buf, ',', WithBlankLines()).ForEach(func(record []string, _ int) error {
		got = append(got, record)
		return nil
	}); err != nil {
		t.Fatalf("ForEach() error = %v", err)
	}
	want := [][]string{{"a", ""}, {""}, {"", ""}, {"b"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("read back mismatch (-want +got):\n%s", diff)
	}
}
