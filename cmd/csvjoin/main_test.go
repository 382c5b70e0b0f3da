package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/JonMunkholm/committools/internal/cli"
	"github.com/JonMunkholm/committools/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{Join: config.JoinConfig{Delimiter: ","}}
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	cmd := newCommand(testConfig())
	cmd.SetArgs(args)
	return cmd.ExecuteContext(context.Background())
}

func TestCommand_Join(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.csv")
	b := filepath.Join(dir, "b.csv")
	out := filepath.Join(dir, "out.csv")
	os.WriteFile(a, []byte("x,k1,y\nz,k2,w\n"), 0o644)
	os.WriteFile(b, []byte("k1,p\n"), 0o644)

	if err := execute(t, a, "1", b, "0", out); err != nil {
		t.Fatalf("execute() error = %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "k1,x,y,p\n" {
		t.Errorf("output = %q, want %q", string(data), "k1,x,y,p\n")
	}
}

func TestCommand_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"too few", []string{"a", "0", "b", "0"}},
		{"too many", []string{"a", "0", "b", "0", "out", "extra"}},
		{"non-numeric key", []string{"a", "first", "b", "0", "out"}},
		{"negative key", []string{"a", "0", "b", "-1", "out"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := execute(t, tt.args...)
			var ue *cli.UsageError
			if !errors.As(err, &ue) {
				t.Fatalf("expected *cli.UsageError, got %v", err)
			}
		})
	}
}

func TestCommand_MissingInput(t *testing.T) {
	dir := t.TempDir()
	err := execute(t, filepath.Join(dir, "nope.csv"), "0", filepath.Join(dir, "nope2.csv"), "0", filepath.Join(dir, "out.csv"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist, got %v", err)
	}
}
