package repos

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/JonMunkholm/committools/internal/logging"
	"github.com/olekukonko/tablewriter"
)

// RemoveDuplicateURLs drops all but the last project for each URL. The kept
// project stays at its own position. Returns the filtered list and the
// number of projects removed.
func RemoveDuplicateURLs(projects []Project) ([]Project, int) {
	last := make(map[string]int, len(projects))
	for i, p := range projects {
		last[p.URL] = i
	}

	out := make([]Project, 0, len(last))
	for i, p := range projects {
		if last[p.URL] == i {
			out = append(out, p)
		}
	}
	return out, len(projects) - len(out)
}

// ExcludeURLs drops projects whose URL is in urls. Returns the filtered list
// and the number removed.
func ExcludeURLs(projects []Project, urls map[string]struct{}) ([]Project, int) {
	out := make([]Project, 0, len(projects))
	for _, p := range projects {
		if _, skip := urls[p.URL]; !skip {
			out = append(out, p)
		}
	}
	return out, len(projects) - len(out)
}

// NameGroup is a name_language key shared by more than one project.
type NameGroup struct {
	Key   string
	Count int
}

// DuplicateStats summarizes projects sharing a name and language.
type DuplicateStats struct {
	Groups   []NameGroup // largest first, then by key
	Projects int         // projects inside duplicate groups
}

// Average is the mean group size over duplicate groups, 0 when there are none.
func (s DuplicateStats) Average() float64 {
	if len(s.Groups) == 0 {
		return 0
	}
	return float64(s.Projects) / float64(len(s.Groups))
}

// FindDuplicateNames groups projects by name + "_" + language and reports
// the groups with more than one member.
func FindDuplicateNames(projects []Project) DuplicateStats {
	counts := make(map[string]int)
	for _, p := range projects {
		counts[p.Name+"_"+p.Language]++
	}

	var stats DuplicateStats
	for key, n := range counts {
		if n > 1 {
			stats.Groups = append(stats.Groups, NameGroup{Key: key, Count: n})
			stats.Projects += n
		}
	}
	sort.Slice(stats.Groups, func(i, j int) bool {
		a, b := stats.Groups[i], stats.Groups[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Key < b.Key
	})
	return stats
}

// RenderStats prints a summary line and up to limit of the largest duplicate
// groups as a table. limit <= 0 prints every group.
func RenderStats(w io.Writer, stats DuplicateStats, limit int) error {
	if _, err := fmt.Fprintf(w, "There are %d duplicate named projects and on avg there are %.2f\n",
		len(stats.Groups), stats.Average()); err != nil {
		return err
	}
	if len(stats.Groups) == 0 {
		return nil
	}

	groups := stats.Groups
	if limit > 0 && len(groups) > limit {
		groups = groups[:limit]
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Name_Language", "Projects"})
	for _, g := range groups {
		table.Append([]string{g.Key, strconv.Itoa(g.Count)})
	}
	table.Render()
	return nil
}

// PrepJob describes one preprocessing run.
type PrepJob struct {
	ProjectsPath string
	ExcludePath  string
	OutputPath   string
	Report       io.Writer // duplicate-name report, nil to skip
	ReportLimit  int
}

// PrepSummary reports what a preprocessing run removed and kept.
type PrepSummary struct {
	Read       int
	Duplicates int
	Excluded   int
	Written    int
	Stats      DuplicateStats
}

// Preprocess deduplicates the project list by URL, drops excluded URLs,
// reports duplicate names and writes the result.
func Preprocess(ctx context.Context, job PrepJob) (PrepSummary, error) {
	var sum PrepSummary
	logger := logging.WithFields(ctx, "projects", job.ProjectsPath, "exclude", job.ExcludePath)

	projects, err := ReadProjects(job.ProjectsPath)
	if err != nil {
		return sum, fmt.Errorf("read projects: %w", err)
	}
	sum.Read = len(projects)

	excluded, err := ReadURLs(job.ExcludePath)
	if err != nil {
		return sum, fmt.Errorf("read exclusions: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return sum, fmt.Errorf("preprocess cancelled: %w", err)
	}

	projects, sum.Duplicates = RemoveDuplicateURLs(projects)
	logger.Info("removed lines with duplicate URLs", "count", sum.Duplicates)

	projects, sum.Excluded = ExcludeURLs(projects, excluded)
	logger.Info("excluded projects", "count", sum.Excluded)

	sum.Stats = FindDuplicateNames(projects)
	logger.Info("duplicate names",
		"groups", len(sum.Stats.Groups),
		"avg_group_size", sum.Stats.Average(),
	)
	if job.Report != nil {
		if err := RenderStats(job.Report, sum.Stats, job.ReportLimit); err != nil {
			return sum, fmt.Errorf("render stats: %w", err)
		}
	}

	if err := WriteProjects(job.OutputPath, projects); err != nil {
		return sum, fmt.Errorf("write %s: %w", job.OutputPath, err)
	}
	sum.Written = len(projects)

	logger.Info("preprocess completed", "read", sum.Read, "written", sum.Written, "output", job.OutputPath)
	return sum, nil
}
