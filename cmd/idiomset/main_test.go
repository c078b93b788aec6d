package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"

	"github.com/heartmarshall/idiomset/internal/app"
)

// resetFlags restores every root flag to its default so tests sharing rootCmd
// do not see each other's values.
func resetFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.Flags().VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	})
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	resetFlags(t)

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), app.BuildVersion()) {
		t.Errorf("version output = %q", out.String())
	}
}

func TestRootCommand_DryRun(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "idiom.json")
	csvPath := filepath.Join(dir, "proverbs.csv")
	if err := os.WriteFile(jsonPath, []byte(`[{"idiom":"青出於藍","en_meaning":"the pupil surpasses the master"}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(csvPath, []byte("in_chinese,text\n青出于蓝,blue comes from indigo\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfgPath := filepath.Join(dir, "config.yaml")
	cfg := "log:\n  level: error\nsources:\n" +
		"  - {name: JSON, kind: json, path: \"" + jsonPath + "\"}\n" +
		"  - {name: CSV, kind: csv, path: \"" + csvPath + "\"}\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"--config", cfgPath, "--dry-run", "--report-format", "yaml"})
	resetFlags(t)

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"total: 2", "duplicate_groups: 1", "final: 1"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("report missing %q:\n%s", want, out.String())
		}
	}
}

// writeDryRunConfig writes one JSON source and a config with output.dry_run set.
func writeDryRunConfig(t *testing.T) (cfgPath, outPath string) {
	t.Helper()
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "zh_idiom_meaning.json")
	if err := os.WriteFile(jsonPath, []byte(`[{"idiom":"兇多吉少","en_meaning":"bodes ill"}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	outPath = filepath.Join(dir, "cleaned.csv")
	cfgPath = filepath.Join(dir, "config.yaml")
	cfg := "log:\n  level: error\nsources:\n" +
		"  - {name: JSON, kind: json, path: \"" + jsonPath + "\"}\n" +
		"output:\n  path: \"" + outPath + "\"\n  dry_run: true\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	return cfgPath, outPath
}

func TestRootCommand_DryRunFlag(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantWrite bool
	}{
		{name: "config dry run kept without flag", args: nil, wantWrite: false},
		{name: "explicit false overrides config", args: []string{"--dry-run=false"}, wantWrite: true},
		{name: "explicit true", args: []string{"--dry-run"}, wantWrite: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfgPath, outPath := writeDryRunConfig(t)

			var out bytes.Buffer
			rootCmd.SetOut(&out)
			rootCmd.SetArgs(append([]string{"--config", cfgPath}, tt.args...))
			resetFlags(t)

			if err := rootCmd.Execute(); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			_, statErr := os.Stat(outPath)
			if written := statErr == nil; written != tt.wantWrite {
				t.Errorf("output written = %v, want %v", written, tt.wantWrite)
			}
		})
	}
}
