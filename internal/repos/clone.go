package repos

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alessio/shellescape"
	"gonum.org/v1/gonum/stat/distuv"
)

// ParseLanguages splits a comma separated language list. Empty entries are
// dropped; names are kept as written since matching is exact.
func ParseLanguages(list string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, l := range strings.Split(list, ",") {
		if l = strings.TrimSpace(l); l != "" {
			set[l] = struct{}{}
		}
	}
	return set
}

// FilterLanguages keeps the projects whose language is in languages.
// An empty set keeps everything.
func FilterLanguages(projects []Project, languages map[string]struct{}) []Project {
	if len(languages) == 0 {
		return projects
	}
	var out []Project
	for _, p := range projects {
		if _, ok := languages[p.Language]; ok {
			out = append(out, p)
		}
	}
	return out
}

// PlanEntry is one clone command: the git URL and the target directory.
type PlanEntry struct {
	URL    string
	Folder string
}

// BuildDownloadPlan turns projects into clone commands with unique target
// folders. A repeated name gets the first free suffix _1, _2, ...
// https:// URLs are rewritten to scheme (for example "git://") and get a
// .git suffix.
func BuildDownloadPlan(projects []Project, scheme string) []PlanEntry {
	used := make(map[string]struct{}, len(projects))
	plan := make([]PlanEntry, 0, len(projects))

	for _, p := range projects {
		folder := p.Name
		if _, taken := used[folder]; taken {
			i := 1
			for {
				candidate := folder + "_" + strconv.Itoa(i)
				if _, taken := used[candidate]; !taken {
					folder = candidate
					break
				}
				i++
			}
		}
		used[folder] = struct{}{}

		plan = append(plan, PlanEntry{
			URL:    GitURL(p.URL, scheme),
			Folder: folder,
		})
	}
	return plan
}

// GitURL appends .git to a repository URL and swaps an https:// prefix for
// scheme.
func GitURL(url, scheme string) string {
	url += ".git"
	if scheme != "" && strings.HasPrefix(url, "https://") {
		url = scheme + strings.TrimPrefix(url, "https://")
	}
	return url
}

// DelayFunc returns the next delay in seconds. Values <= 0 mean no sleep.
type DelayFunc func() float64

// NormalDelay draws delays from a normal distribution.
func NormalDelay(mean, sigma float64) DelayFunc {
	dist := distuv.Normal{Mu: mean, Sigma: sigma}
	return dist.Rand
}

// WriteScript writes a shell script that clones every plan entry. URLs and
// folders come from the list file and are shell-quoted. When delay is
// non-nil a sleep follows each clone whose drawn delay is positive.
func WriteScript(w io.Writer, plan []PlanEntry, delay DelayFunc) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintln(bw, "#!/bin/sh"); err != nil {
		return err
	}
	for _, e := range plan {
		if _, err := fmt.Fprintf(bw, "git clone %s %s\n", shellescape.Quote(e.URL), shellescape.Quote(e.Folder)); err != nil {
			return err
		}
		if delay == nil {
			continue
		}
		if d := delay(); d > 0 {
			if _, err := fmt.Fprintf(bw, "sleep %s\n", strconv.FormatFloat(d, 'f', 3, 64)); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}
