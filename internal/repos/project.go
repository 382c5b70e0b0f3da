// Package repos works on repository lists: CSV files with one repository per
// row and a header naming the columns. It builds clone scripts from a list
// and cleans lists up by URL.
package repos

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/JonMunkholm/committools/internal/csvio"
)

// Canonical column names.
const (
	ColName         = "repository_name"
	ColOrganization = "repository_organization"
	ColURL          = "repository_url"
	ColLanguage     = "repository_language"
	ColCreatedAt    = "repository_created_at"
)

// Columns is the column order used when writing a list.
var Columns = []string{ColName, ColOrganization, ColURL, ColLanguage, ColCreatedAt}

// projectColumns must be present in a list read with ReadProjects.
var projectColumns = []string{ColName, ColURL, ColLanguage}

// Project is one row of a repository list.
type Project struct {
	Name         string
	Organization string
	URL          string
	Language     string
	CreatedAt    string
}

// Record returns p in Columns order.
func (p Project) Record() []string {
	return []string{p.Name, p.Organization, p.URL, p.Language, p.CreatedAt}
}

// MissingColumnError reports a required column absent from the header.
type MissingColumnError struct {
	Path   string
	Column string
}

func (e *MissingColumnError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("missing column %q in header", e.Column)
	}
	return fmt.Sprintf("%s: missing column %q in header", e.Path, e.Column)
}

// headerIndex maps cleaned column names to their position.
type headerIndex map[string]int

func makeHeaderIndex(header []string) headerIndex {
	idx := make(headerIndex, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, dup := idx[key]; !dup {
			idx[key] = i
		}
	}
	return idx
}

func (h headerIndex) get(row []string, col string) string {
	pos, ok := h[col]
	if !ok || pos >= len(row) {
		return ""
	}
	return row[pos]
}

// ReadProjects reads a repository list with a header row.
func ReadProjects(path string) ([]Project, error) {
	return readProjectsFile(path, projectColumns)
}

// ReadProjectsFrom is ReadProjects over an open stream.
func ReadProjectsFrom(r io.Reader) ([]Project, error) {
	return readProjects(csvio.NewReader(r, ','), projectColumns)
}

// ReadURLs reads the repository_url column of a list with a header row,
// such as an exclusion list.
func ReadURLs(path string) (map[string]struct{}, error) {
	projects, err := readProjectsFile(path, []string{ColURL})
	if err != nil {
		return nil, err
	}
	urls := make(map[string]struct{}, len(projects))
	for _, p := range projects {
		urls[p.URL] = struct{}{}
	}
	return urls, nil
}

func readProjectsFile(path string, required []string) ([]Project, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	projects, err := readProjects(csvio.NewReader(f, ','), required)
	if err != nil {
		var mce *MissingColumnError
		if errors.As(err, &mce) {
			mce.Path = path
			return nil, mce
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return projects, nil
}

func readProjects(r *csvio.Reader, required []string) ([]Project, error) {
	var (
		header   headerIndex
		projects []Project
	)

	err := r.ForEach(func(row []string, _ int) error {
		if header == nil {
			header = makeHeaderIndex(row)
			return checkHeader(header, required)
		}
		projects = append(projects, projectFrom(header, row))
		return nil
	})
	if err != nil {
		return nil, err
	}
	if header == nil {
		return nil, &MissingColumnError{Column: required[0]}
	}
	return projects, nil
}

func checkHeader(h headerIndex, required []string) error {
	for _, col := range required {
		if _, ok := h[col]; !ok {
			return &MissingColumnError{Column: col}
		}
	}
	return nil
}

func projectFrom(h headerIndex, row []string) Project {
	return Project{
		Name:         h.get(row, ColName),
		Organization: h.get(row, ColOrganization),
		URL:          h.get(row, ColURL),
		Language:     h.get(row, ColLanguage),
		CreatedAt:    h.get(row, ColCreatedAt),
	}
}

// WriteProjects writes projects to path with a header row, replacing any
// existing content.
func WriteProjects(path string, projects []Project) error {
	return csvio.WriteFile(path, ',', func(w *csvio.Writer) error {
		return writeProjects(w, projects)
	})
}

// WriteProjectsTo writes projects to w with a header row.
func WriteProjectsTo(w io.Writer, projects []Project) error {
	cw := csvio.NewWriter(w, ',')
	if err := writeProjects(cw, projects); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func writeProjects(w *csvio.Writer, projects []Project) error {
	if err := w.Write(Columns); err != nil {
		return err
	}
	for _, p := range projects {
		if err := w.Write(p.Record()); err != nil {
			return err
		}
	}
	return nil
}
