package join

import (
	"errors"
	"fmt"

	"github.com/JonMunkholm/committools/internal/csvio"
)

// ErrInvalidKeyIndex is returned for a negative key column index.
var ErrInvalidKeyIndex = errors.New("invalid key index")

// FileAccessError reports an input that could not be opened or read, or an
// output that could not be written.
type FileAccessError struct {
	Op   string // "read" or "write"
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("cannot %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error { return e.Err }

// MalformedRowError reports a row too short to contain the key column.
type MalformedRowError struct {
	Path     string
	Line     int
	Width    int
	KeyIndex int
}

func (e *MalformedRowError) Error() string {
	loc := fmt.Sprintf("line %d", e.Line)
	if e.Path != "" {
		loc = e.Path + ": " + loc
	}
	return fmt.Sprintf("%s: row has %d fields, key index %d requires at least %d",
		loc, e.Width, e.KeyIndex, e.KeyIndex+1)
}

// annotate attaches the path to read errors. CSV syntax errors pass through
// with the path prefixed; everything else from the file layer becomes a
// FileAccessError.
func annotate(path string, err error) error {
	var mre *MalformedRowError
	if errors.As(err, &mre) {
		mre.Path = path
		return mre
	}

	var pe *csvio.ParseError
	if errors.As(err, &pe) {
		if path == "" {
			return pe
		}
		return fmt.Errorf("%s: %w", path, pe)
	}

	return &FileAccessError{Op: "read", Path: path, Err: err}
}
