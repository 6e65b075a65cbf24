package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Database.Enabled() {
		t.Fatalf("database must be disabled by default")
	}
	if cfg.Shelf.AdvanceSpec != "@daily" || cfg.Shelf.Workers != 8 {
		t.Fatalf("shelf defaults = %+v", cfg.Shelf)
	}
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	file := filepath.Join(t.TempDir(), "supermarkt.yml")
	data := []byte(`
system:
  workdir: /tmp/shop
database:
  type: postgres
  port: 6543
shelf:
  workers: 2
  seed_demo: true
web:
  port: 8080
`)
	if err := os.WriteFile(file, data, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SUPERMARKT_SHELF_WORKERS", "16")
	t.Setenv("SUPERMARKT_SHELF_AUTO_ADVANCE", "false")
	t.Setenv("SUPERMARKT_DB_TABLE", "stock")
	t.Setenv("SUPERMARKT_WEB_HOST", "0.0.0.0")

	cfg, err := LoadConfig(file)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !cfg.Database.Enabled() || cfg.Database.Port != 6543 || cfg.Database.Host != "127.0.0.1" {
		t.Fatalf("database = %+v", cfg.Database)
	}
	if cfg.Database.Table != "stock" {
		t.Fatalf("table = %q", cfg.Database.Table)
	}
	if cfg.Shelf.Workers != 16 || cfg.Shelf.AutoAdvance || !cfg.Shelf.SeedDemo {
		t.Fatalf("shelf = %+v", cfg.Shelf)
	}
	if !cfg.Web.Enabled || cfg.Web.Addr() != "0.0.0.0:8080" {
		t.Fatalf("web = %+v", cfg.Web)
	}
	if cfg.GetLogDir() != "/tmp/shop/logs" {
		t.Fatalf("log dir = %s", cfg.GetLogDir())
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Fatalf("missing file accepted")
	}
	bad := filepath.Join(t.TempDir(), "bad.yml")
	if err := os.WriteFile(bad, []byte("shelf: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(bad); err == nil {
		t.Fatalf("invalid yaml accepted")
	}
}

func TestDBConfigEnabled(t *testing.T) {
	for typ, want := range map[string]bool{"": false, "none": false, " NONE ": false, "postgres": true} {
		if got := (DBConfig{Type: typ}).Enabled(); got != want {
			t.Errorf("Enabled(%q) = %v", typ, got)
		}
	}
}
