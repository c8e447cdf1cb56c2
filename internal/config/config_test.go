// internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"

	"logdeck/internal/engine"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
services:
  - name: api
    container: myproj-api
    file: /var/log/api.log
  - name: worker
tail: 300
docker_host: tcp://build-host:2375
web:
  listen: 0.0.0.0:9090
  token: sesame
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if len(cfg.Services) != 2 {
		t.Fatalf("len(Services) = %d, want 2", len(cfg.Services))
	}
	if got := cfg.Services[0]; got.Name != "api" || got.Container != "myproj-api" || got.File != "/var/log/api.log" {
		t.Errorf("Services[0] = %+v", got)
	}
	// A bare name defaults the container to the service name.
	if got := cfg.Services[1].Container; got != "worker" {
		t.Errorf("Services[1].Container = %q, want worker", got)
	}
	if cfg.Tail != 300 {
		t.Errorf("Tail = %d, want 300", cfg.Tail)
	}
	if cfg.Capacity != engine.DefaultCapacity {
		t.Errorf("Capacity = %d, want default %d", cfg.Capacity, engine.DefaultCapacity)
	}
	if cfg.DockerHost != "tcp://build-host:2375" {
		t.Errorf("DockerHost = %q", cfg.DockerHost)
	}
	if cfg.Web.Listen != "0.0.0.0:9090" || cfg.Web.Token != "sesame" {
		t.Errorf("Web = %+v", cfg.Web)
	}
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
services:
  - name: api
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Tail != engine.DefaultTail {
		t.Errorf("Tail = %d, want default %d", cfg.Tail, engine.DefaultTail)
	}
	if cfg.Web.Listen != "127.0.0.1:8080" {
		t.Errorf("Web.Listen = %q, want default", cfg.Web.Listen)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("LOGDECK_TAIL", "123")
	t.Setenv("LOGDECK_WEB_TOKEN", "sesame")
	t.Setenv("LOGDECK_DOCKER_HOST", "tcp://remote:2375")

	path := writeConfig(t, `
services:
  - name: api
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Tail != 123 {
		t.Errorf("Tail = %d, want 123 from env", cfg.Tail)
	}
	if cfg.Web.Token != "sesame" {
		t.Errorf("Web.Token = %q, want env override", cfg.Web.Token)
	}
	if cfg.DockerHost != "tcp://remote:2375" {
		t.Errorf("DockerHost = %q, want env override", cfg.DockerHost)
	}
}

func TestLoadRejectsEmptyServices(t *testing.T) {
	path := writeConfig(t, `tail: 100`)
	if _, err := Load(path); err == nil {
		t.Error("Load() accepted a config with no services")
	}
}

func TestLoadRejectsUnnamedService(t *testing.T) {
	path := writeConfig(t, `
services:
  - container: something
`)
	if _, err := Load(path); err == nil {
		t.Error("Load() accepted a service without a name")
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() accepted a missing explicit config file")
	}
}

func TestDescriptors(t *testing.T) {
	cfg := &Config{Services: []Service{
		{Name: "api", Container: "api-1", File: "/var/log/api.log"},
	}}

	descs := cfg.Descriptors()
	if len(descs) != 1 {
		t.Fatalf("len = %d, want 1", len(descs))
	}
	d := descs[0]
	if d.Name != "api" || d.Container != "api-1" || d.File != "/var/log/api.log" {
		t.Errorf("descriptor = %+v", d)
	}
}
