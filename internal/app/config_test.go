package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"lifegate/internal/challenge"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse("lifegate", nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := NewConfig()
	if *cfg != *want {
		t.Fatalf("got %+v, want %+v", cfg, want)
	}
}

func TestParseFileThenFlags(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lifegate.toml")
	body := "challenge = \"wire.json\"\nscale = 4\ngps = 30\nworkers = 2\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Parse("lifegate", []string{"-config", path, "-gps", "5"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Challenge != "wire.json" || cfg.Scale != 4 || cfg.Workers != 2 {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.GPS != 5 {
		t.Fatalf("flags must override the file, got gps=%d", cfg.GPS)
	}
	if cfg.TPS != 60 {
		t.Fatalf("unset keys keep their defaults, got tps=%d", cfg.TPS)
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse("lifegate", []string{"-config", filepath.Join(t.TempDir(), "missing.toml")}); err == nil {
		t.Fatal("expected a missing config file to fail")
	}
	bad := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(bad, []byte("scale = \"big\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(bad); err == nil {
		t.Fatal("expected a mistyped key to fail")
	}
}

func TestLoadChallenge(t *testing.T) {
	ch, err := LoadChallenge(filepath.Join("..", "..", "challenges", "glider-wire.json"))
	if err != nil {
		t.Fatalf("LoadChallenge: %v", err)
	}
	if ch.Width != 101 || len(ch.TestScenarios) != 2 {
		t.Fatalf("unexpected challenge %+v", ch)
	}

	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte(`{"name":"x","width":0,"height":3}`), 0o644); err != nil {
		t.Fatalf("write challenge: %v", err)
	}
	if _, err := LoadChallenge(bad); !errors.Is(err, challenge.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}
