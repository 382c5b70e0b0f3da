package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JonMunkholm/committools/internal/cli"
	"github.com/JonMunkholm/committools/internal/config"
)

func testConfig(randomDelay bool) *config.Config {
	return &config.Config{
		Clone: config.CloneConfig{RandomDelay: randomDelay, DelaySigma: 20, URLScheme: "git://"},
	}
}

func TestCommand_Script(t *testing.T) {
	list := filepath.Join(t.TempDir(), "projects.csv")
	os.WriteFile(list, []byte(strings.Join([]string{
		"repository_name,repository_url,repository_language",
		"foo,https://github.com/a/foo,Java",
		"foo,https://github.com/b/foo,Java",
		"bar,https://github.com/c/bar,Python",
		"baz,https://github.com/d/baz,C++",
	}, "\n")+"\n"), 0o644)

	var out bytes.Buffer
	cmd := newCommand(testConfig(false), &out)
	cmd.SetArgs([]string{"-i", list, "-l", "Java,C++"})
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("execute() error = %v", err)
	}

	want := "#!/bin/sh\n" +
		"git clone git://github.com/a/foo.git foo\n" +
		"git clone git://github.com/b/foo.git foo_1\n" +
		"git clone git://github.com/d/baz.git baz\n"
	if out.String() != want {
		t.Errorf("script = %q, want %q", out.String(), want)
	}
}

func TestCommand_RandomDelayOnlyPositive(t *testing.T) {
	list := filepath.Join(t.TempDir(), "projects.csv")
	lines := []string{"repository_name,repository_url,repository_language"}
	for i := 0; i < 50; i++ {
		lines = append(lines, "r,https://h/r,Go")
	}
	os.WriteFile(list, []byte(strings.Join(lines, "\n")+"\n"), 0o644)

	var out bytes.Buffer
	cmd := newCommand(testConfig(true), &out)
	cmd.SetArgs([]string{"--input", list})
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("execute() error = %v", err)
	}

	clones := 0
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n")[1:] {
		switch {
		case strings.HasPrefix(line, "git clone "):
			clones++
		case strings.HasPrefix(line, "sleep "):
			if strings.HasPrefix(line, "sleep -") {
				t.Errorf("negative sleep emitted: %q", line)
			}
		default:
			t.Errorf("unexpected line %q", line)
		}
	}
	if clones != 50 {
		t.Errorf("clone lines = %d, want 50", clones)
	}
}

func TestCommand_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no input", []string{}},
		{"unknown flag", []string{"--bogus"}},
		{"positional", []string{"-i", "x", "extra"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newCommand(testConfig(false), &bytes.Buffer{})
			cmd.SetArgs(tt.args)
			err := cmd.ExecuteContext(context.Background())
			var ue *cli.UsageError
			if !errors.As(err, &ue) {
				t.Fatalf("expected *cli.UsageError, got %v", err)
			}
		})
	}
}
