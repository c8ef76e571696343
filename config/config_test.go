package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ListenAddr != ":8080" {
		t.Errorf("listen addr = %q", cfg.ListenAddr)
	}
	if cfg.StorageBackend != "local" {
		t.Errorf("storage backend = %q", cfg.StorageBackend)
	}
	if len(cfg.AcceptedYears) != 1 || cfg.AcceptedYears[0] != 2024 {
		t.Errorf("accepted years = %v", cfg.AcceptedYears)
	}
}

func TestLoadMissingFileIsFine(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err != nil {
		t.Fatalf("missing config file should not error: %v", err)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("listen_addr: \":9090\"\naccepted_years: [2023, 2024]\nstorage_backend: minio\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ListenAddr != ":9090" {
		t.Errorf("listen addr = %q", cfg.ListenAddr)
	}
	if len(cfg.AcceptedYears) != 2 {
		t.Errorf("accepted years = %v", cfg.AcceptedYears)
	}
	if cfg.StorageBackend != "minio" {
		t.Errorf("storage backend = %q", cfg.StorageBackend)
	}
	// Untouched keys keep their defaults.
	if cfg.MongoDatabase != "journey_map" {
		t.Errorf("mongo database = %q", cfg.MongoDatabase)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("listen_addr: \":9090\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("LISTEN_ADDR", ":7070")
	t.Setenv("ACCEPTED_YEARS", "2022, 2023")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ListenAddr != ":7070" {
		t.Errorf("listen addr = %q, want env override", cfg.ListenAddr)
	}
	if len(cfg.AcceptedYears) != 2 || cfg.AcceptedYears[0] != 2022 {
		t.Errorf("accepted years = %v", cfg.AcceptedYears)
	}
}

func TestEnvOverridesMinioUseSSL(t *testing.T) {
	t.Setenv("MINIO_USE_SSL", "true")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Minio.UseSSL {
		t.Error("MINIO_USE_SSL=true not applied")
	}

	t.Setenv("MINIO_USE_SSL", "not-a-bool")
	cfg, err = Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Minio.UseSSL {
		t.Error("unparseable MINIO_USE_SSL should leave the default")
	}
}
