package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "env: production\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 2333 {
		t.Fatalf("port = %d, want default", cfg.Port)
	}
	if cfg.AI.Embedding.Model != "text-embedding-3-large" || cfg.AI.Embedding.Dimensions != 1024 {
		t.Fatalf("embedding defaults = %+v", cfg.AI.Embedding)
	}
	if cfg.Retrieval.TopK != 3 {
		t.Fatalf("top_k = %d, want 3", cfg.Retrieval.TopK)
	}
	if cfg.IsDev() {
		t.Fatal("production env reported as dev")
	}
	if !strings.Contains(cfg.DSN, "bankbot") {
		t.Fatalf("derived DSN = %q", cfg.DSN)
	}
}

func TestLoadLegacyAliases(t *testing.T) {
	path := writeConfig(t, strings.Join([]string{
		"database_url: user:pass@tcp(db:3306)/corpus?parseTime=true",
		"jwtsecret: legacy-secret",
	}, "\n"))

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DSN != "user:pass@tcp(db:3306)/corpus?parseTime=true" {
		t.Fatalf("DSN = %q", cfg.DSN)
	}
	if cfg.JWTSecret != "legacy-secret" {
		t.Fatalf("JWTSecret = %q", cfg.JWTSecret)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad port", "port: 70000\n"},
		{"bad dimensions", "ai:\n  embedding:\n    dimensions: 768\n"},
		{"bad top_k", "retrieval:\n  top_k: -1\n"},
		{"unknown key", "retrival: {}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			if _, err := Load(path); err == nil {
				t.Fatal("Load accepted invalid config")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Fatal("Load accepted missing file")
	}
}
