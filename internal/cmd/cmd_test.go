package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dendrascience/tabslice/table"
)

// runCLI executes the root command against a fresh store directory.
func runCLI(t *testing.T, storeDir string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	base := []string{"--config", filepath.Join(storeDir, "missing.yaml"), "--store", storeDir}
	root.SetArgs(append(base, args...))
	err := root.Execute()
	return out.String(), err
}

func TestCLI_SeedSliceExport(t *testing.T) {
	dir := t.TempDir()

	out, err := runCLI(t, dir, "seed", "--hours", "3", "--locations", "2", "--start", "2024-01-01T00:00:00Z")
	if err != nil {
		t.Fatalf("seed error = %v\n%s", err, out)
	}
	if !strings.Contains(out, "3 hours x 2 locations") {
		t.Errorf("seed output = %q", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "test.parquet")); err != nil {
		t.Fatalf("seed did not write the default key: %v", err)
	}

	tests := []struct {
		name      string
		args      []string
		wantShape string
	}{
		{name: "no selector", args: []string{"slice"}, wantShape: "[6 rows x 1 columns]"},
		{name: "one location", args: []string{"slice", "--rows", "location=location1"}, wantShape: "[3 rows x 1 columns]"},
		{name: "one hour", args: []string{"slice", "--rows", "hour_beginning=2024-01-01T01:00:00Z"}, wantShape: "[2 rows x 1 columns]"},
		{name: "hour and location", args: []string{"slice", "--rows", "hour_beginning=2024-01-01T01:00:00Z", "--rows", "location=location0"}, wantShape: "[1 rows x 1 columns]"},
		{name: "absent value", args: []string{"slice", "--rows", "location=location9"}, wantShape: "[0 rows x 1 columns]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCLI(t, dir, tt.args...)
			if err != nil {
				t.Fatalf("slice error = %v\n%s", err, out)
			}
			if !strings.Contains(out, tt.wantShape) {
				t.Errorf("slice output missing %q:\n%s", tt.wantShape, out)
			}
		})
	}

	out, err = runCLI(t, dir, "slice", "--rows", "location=location1", "--out", "loc1.parquet")
	if err != nil {
		t.Fatalf("slice --out error = %v\n%s", err, out)
	}
	out, err = runCLI(t, dir, "export", "--key", "loc1.parquet")
	if err != nil {
		t.Fatalf("export error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 || lines[0] != "hour_beginning,location,value" {
		t.Errorf("export output =\n%s", out)
	}
	if !strings.HasPrefix(lines[1], "2024-01-01T00:00:00Z,location1,") {
		t.Errorf("first exported row = %q", lines[1])
	}

	out, err = runCLI(t, dir, "inspect")
	if err != nil {
		t.Fatalf("inspect error = %v", err)
	}
	for _, want := range []string{"Rows:", "6", "hour_beginning", "location", "Memory size:", "48.00 bytes"} {
		if !strings.Contains(out, want) {
			t.Errorf("inspect output missing %q:\n%s", want, out)
		}
	}
}

func TestCLI_SliceErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := runCLI(t, dir, "seed", "--hours", "2", "--locations", "1"); err != nil {
		t.Fatalf("seed error = %v", err)
	}

	if _, err := runCLI(t, dir, "slice", "--rows", "site=s0"); !errors.Is(err, table.ErrUnknownLevel) {
		t.Errorf("slice with unknown level: error = %v, want ErrUnknownLevel", err)
	}
	if _, err := runCLI(t, dir, "slice", "--cols", "a=value", "--cols", "b=value"); !errors.Is(err, table.ErrMultiKeyOnSingleLevel) {
		t.Errorf("slice with two column keys: error = %v, want ErrMultiKeyOnSingleLevel", err)
	}
	if _, err := runCLI(t, dir, "slice", "--key", "missing.parquet"); err == nil {
		t.Error("slice of a missing key should fail")
	}
}

func TestSeedFrame_DefaultStart(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 34, 0, 0, time.UTC)
	f, err := seedFrame(4, 3, time.Time{}, now)
	if err != nil {
		t.Fatalf("seedFrame() error = %v", err)
	}
	if f.Len() != 12 {
		t.Fatalf("Len() = %d, want 12", f.Len())
	}
	last := f.Index().Label(f.Len()-1, 0).(time.Time)
	if want := time.Date(2024, 3, 10, 11, 0, 0, 0, time.UTC); !last.Equal(want) {
		t.Errorf("last hour = %v, want %v", last, want)
	}
	first := f.Index().Label(0, 0).(time.Time)
	if want := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC); !first.Equal(want) {
		t.Errorf("first hour = %v, want %v", first, want)
	}
}

func TestRenderFrame_Limit(t *testing.T) {
	rows := table.NewSingleAxis("k", "a", "b", "c")
	f, err := table.NewFrame(rows, table.NewSingleAxis("", "v"), [][]float64{{1}, {2}, {3}})
	if err != nil {
		t.Fatalf("NewFrame() error = %v", err)
	}

	var buf bytes.Buffer
	if err := renderFrame(&buf, f, 2); err != nil {
		t.Fatalf("renderFrame() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"k  v", "a  1.000000", "b  2.000000", "... 1 more rows", "[3 rows x 1 columns]"} {
		if !strings.Contains(out, want) {
			t.Errorf("renderFrame() missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "c  3") {
		t.Errorf("renderFrame() printed past the limit:\n%s", out)
	}
}
