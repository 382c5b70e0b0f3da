package join

import (
	"io"

	"github.com/JonMunkholm/committools/internal/csvio"
)

// WriteTable writes res to path, replacing any existing content. Each line
// is the key followed by its joined fields; there is no header. An empty
// result still creates an empty file.
func WriteTable(res *Result, path string, comma rune) error {
	err := csvio.WriteFile(path, comma, func(w *csvio.Writer) error {
		return writeRows(w, res)
	})
	if err != nil {
		return &FileAccessError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// WriteTableTo writes res to w in the same format as WriteTable.
func WriteTableTo(w io.Writer, res *Result, comma rune) error {
	cw := csvio.NewWriter(w, comma)
	if err := writeRows(cw, res); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func writeRows(w *csvio.Writer, res *Result) error {
	for _, key := range res.keys {
		fields := res.rows[key]
		record := make([]string, 0, len(fields)+1)
		record = append(record, key)
		record = append(record, fields...)
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}
