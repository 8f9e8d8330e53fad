package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigInitGeneratesJSON(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "server.json")

	c := &ConfigInit{Format: "json", Output: dest}
	if err := c.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if _, err := os.Stat(dest); err != nil {
		t.Fatalf("expected %s to exist: %v", dest, err)
	}
}

func TestConfigInitRefusesOverwriteWithoutForce(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "server.json")
	if err := os.WriteFile(dest, []byte("{}"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	c := &ConfigInit{Format: "json", Output: dest}
	if err := c.Run(); err == nil {
		t.Fatalf("expected error when destination exists without --force")
	}
}

func TestNormalizeFormat(t *testing.T) {
	cases := map[string]string{"json": "json", "yml": "yaml", "yaml": "yaml", "toml": "toml", "bogus": ""}
	for in, want := range cases {
		if got := normalizeFormat(in); got != want {
			t.Errorf("normalizeFormat(%q) = %q, want %q", in, got, want)
		}
	}
}
