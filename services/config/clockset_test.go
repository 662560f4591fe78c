package config

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleClockSet = `clocks:
  - name: core
    frequency: 1 MHz
  - name: bus
    frequency: 2000000
  - name: audio
    frequency: 1.5 MHz
`

func TestLoadClockSetFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.yaml")
	if err := os.WriteFile(path, []byte(sampleClockSet), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadClockSetFile(path)
	if err != nil {
		t.Fatalf("LoadClockSetFile: %v", err)
	}
	if len(cfg.Clocks) != 3 {
		t.Fatalf("got %d clocks, want 3", len(cfg.Clocks))
	}
	want := []uint32{1_000_000, 2_000_000, 1_500_000}
	for i, hz := range cfg.TargetsHz() {
		if hz != want[i] {
			t.Errorf("clock %d: %d Hz, want %d", i, hz, want[i])
		}
	}
	if cfg.Clocks[0].Name != "core" {
		t.Errorf("clock 0 name = %q", cfg.Clocks[0].Name)
	}
}

func TestLoadClockSetFile_Invalid(t *testing.T) {
	dir := t.TempDir()

	cases := map[string]string{
		"zero.yaml":    "clocks:\n  - frequency: 0\n",
		"badunit.yaml": "clocks:\n  - frequency: 1 parsec\n",
		"badyaml.yaml": "clocks: [unterminated\n",
	}
	for name, body := range cases {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadClockSetFile(path); err == nil {
			t.Errorf("%s: expected load error", name)
		}
	}

	if _, err := LoadClockSetFile(filepath.Join(dir, "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadClockSetDir(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"alpha.yaml": sampleClockSet,
		"beta.yml":   "clocks:\n  - frequency: 25 MHz\n",
		"notes.txt":  "ignored",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	sets, err := LoadClockSetDir(dir)
	if err != nil {
		t.Fatalf("LoadClockSetDir: %v", err)
	}
	if len(sets) != 2 {
		t.Fatalf("got %d sets, want 2", len(sets))
	}
	if sets["beta"].Clocks[0].Frequency.Hz() != 25_000_000 {
		t.Errorf("beta clock 0 = %d Hz", sets["beta"].Clocks[0].Frequency.Hz())
	}
}

func TestLoadClockSetDir_Missing(t *testing.T) {
	sets, err := LoadClockSetDir(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("missing dir should not error: %v", err)
	}
	if len(sets) != 0 {
		t.Fatalf("got %d sets, want 0", len(sets))
	}
}
