package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}

func TestLoadConfigsFromDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "one.json", minimalViaJSON())
	writeFile(t, dir, "ignored.txt", "not json")

	s := &Server{Dir: dir}
	configs, err := s.loadConfigs()
	if err != nil {
		t.Fatalf("loadConfigs: %v", err)
	}
	if len(configs) != 1 {
		t.Fatalf("len(configs) = %d, want 1", len(configs))
	}
}

func TestLoadConfigsSkipsMalformed(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.json", "{not json")
	writeFile(t, dir, "good.json", minimalViaJSON())

	s := &Server{Dir: dir}
	configs, err := s.loadConfigs()
	if err != nil {
		t.Fatalf("loadConfigs: %v", err)
	}
	if len(configs) != 1 {
		t.Fatalf("len(configs) = %d, want 1 (bad.json should be skipped)", len(configs))
	}
}

func TestLoadConfigsExplicitFiles(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "explicit.json", minimalViaJSON())

	s := &Server{Files: []string{p}}
	configs, err := s.loadConfigs()
	if err != nil {
		t.Fatalf("loadConfigs: %v", err)
	}
	if len(configs) != 1 {
		t.Fatalf("len(configs) = %d, want 1", len(configs))
	}
}

func minimalViaJSON() string {
	return `{
		"name": "Test Board",
		"vendorId": "0x1234",
		"productId": "0x5678",
		"matrix": {"rows": 1, "cols": 1},
		"layouts": {"keymap": [["0,0\nl0"]]},
		"menus": []
	}`
}
