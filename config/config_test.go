package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

type testConfig struct {
	BaseConfig `yaml:",inline" mapstructure:",squash"`
	Collection struct {
		Limit    int    `mapstructure:"limit"`
		Priority string `mapstructure:"priority"`
	} `mapstructure:"collection"`
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestBaseConfigApplyDefaults(t *testing.T) {
	t.Run("empty environment defaults to development", func(t *testing.T) {
		cfg := BaseConfig{Name: "svc"}
		cfg.ApplyDefaults()
		if cfg.Environment != "development" {
			t.Errorf("expected 'development', got %q", cfg.Environment)
		}
		if !cfg.Debug {
			t.Error("expected debug=true for development")
		}
		if cfg.Logging.Level != "debug" {
			t.Errorf("expected debug log level in development, got %q", cfg.Logging.Level)
		}
	})

	t.Run("production environment keeps debug false", func(t *testing.T) {
		cfg := BaseConfig{Name: "svc", Environment: "production"}
		cfg.ApplyDefaults()
		if cfg.Debug {
			t.Error("expected debug=false for production")
		}
		if cfg.Logging.Level != "info" {
			t.Errorf("expected info log level in production, got %q", cfg.Logging.Level)
		}
	})
}

func TestBaseConfigValidate(t *testing.T) {
	valid := func() BaseConfig {
		c := BaseConfig{Name: "svc", Environment: "staging"}
		c.ApplyDefaults()
		return c
	}

	tests := []struct {
		name    string
		mutate  func(*BaseConfig)
		wantErr string
	}{
		{"valid", func(*BaseConfig) {}, ""},
		{"missing name", func(c *BaseConfig) { c.Name = "" }, "name is required"},
		{"invalid environment", func(c *BaseConfig) { c.Environment = "qa" }, "environment must be one of"},
		{"invalid logging", func(c *BaseConfig) { c.Logging.Format = "xml" }, "logging:"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("expected error containing %q, got %q", tc.wantErr, err.Error())
			}
		})
	}
}

func TestLoadConfigWithYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", `
name: hasher
environment: staging
collection:
  limit: 4
  priority: high
`)

	var cfg testConfig
	if err := LoadConfig("hasher", &cfg, WithConfigFile(path), WithEnvPrefix("HASHER_TEST_YAML")); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Name != "hasher" {
		t.Errorf("expected name 'hasher', got %q", cfg.Name)
	}
	if cfg.Environment != "staging" {
		t.Errorf("expected environment 'staging', got %q", cfg.Environment)
	}
	if cfg.Collection.Limit != 4 {
		t.Errorf("expected limit 4, got %d", cfg.Collection.Limit)
	}
	if cfg.Collection.Priority != "high" {
		t.Errorf("expected priority 'high', got %q", cfg.Collection.Priority)
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", "collection:\n  limit: 4\n")
	t.Setenv("CKTEST_COLLECTION_LIMIT", "9")

	var cfg testConfig
	if err := LoadConfig("cktest", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Collection.Limit != 9 {
		t.Errorf("expected env override limit 9, got %d", cfg.Collection.Limit)
	}
}

func TestLoadConfigEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := writeFile(t, dir, ".env", "CKENV_COLLECTION_PRIORITY=low\n")
	t.Cleanup(func() { os.Unsetenv("CKENV_COLLECTION_PRIORITY") })

	var cfg testConfig
	err := LoadConfig("ckenv", &cfg,
		WithConfigFile(filepath.Join(dir, "missing.yml")),
		WithEnvFile(envPath),
	)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Collection.Priority != "low" {
		t.Errorf("expected priority from .env, got %q", cfg.Collection.Priority)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	var cfg testConfig
	err := LoadConfig("ckdefaults", &cfg,
		WithFileSystem(&mockFS{}),
		WithDefaults(map[string]any{"collection.limit": 2}),
	)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Collection.Limit != 2 {
		t.Errorf("expected default limit 2, got %d", cfg.Collection.Limit)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	var cfg testConfig
	err := LoadConfig("nonexistent-service", &cfg, WithConfigFile("/nonexistent/path.yml"))
	if err != nil {
		t.Fatalf("expected LoadConfig to succeed with missing file, got %v", err)
	}
}

func TestLoadConfigMalformedFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yml", "collection: [unclosed\n")

	var cfg testConfig
	if err := LoadConfig("ckbad", &cfg, WithConfigFile(path)); err == nil {
		t.Fatal("expected error for malformed config file")
	}
}

func TestResolverWithMockFS(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		filepath.Join("cmd", "hasher", "config.yml"): true,
		".env": true,
	}}
	resolver := &Resolver{FileSystem: fs}
	files := resolver.ResolveFiles("hasher", LoaderConfig{})
	if files.ConfigFile != filepath.Join("cmd", "hasher", "config.yml") {
		t.Errorf("unexpected config file %q", files.ConfigFile)
	}
	if files.EnvFile != ".env" {
		t.Errorf("unexpected env file %q", files.EnvFile)
	}
}

func TestResolverExplicitPathsWin(t *testing.T) {
	resolver := &Resolver{FileSystem: &mockFS{files: map[string]bool{"config.yml": true}}}
	files := resolver.ResolveFiles("hasher", LoaderConfig{ConfigFile: "/etc/ck.yml", EnvFile: "/etc/ck.env"})
	if files.ConfigFile != "/etc/ck.yml" || files.EnvFile != "/etc/ck.env" {
		t.Errorf("expected explicit paths, got %+v", files)
	}
}

func TestGenerateEnvKeyVariants(t *testing.T) {
	got := generateEnvKeyVariants("LOGGING_NO_COLOR")
	for _, want := range []string{"logging_no_color", "logging.no.color", "logging.no_color"} {
		if !slices.Contains(got, want) {
			t.Errorf("expected variant %q in %v", want, got)
		}
	}
	if single := generateEnvKeyVariants("NAME"); len(single) != 1 || single[0] != "name" {
		t.Errorf("expected [name], got %v", single)
	}
}

func TestEnvPrefixFor(t *testing.T) {
	if got := envPrefixFor("collection-kit.cli"); got != "COLLECTION_KIT_CLI" {
		t.Errorf("unexpected prefix %q", got)
	}
}

type mockFS struct {
	files map[string]bool
}

func (m *mockFS) Exists(path string) bool  { return m.files[path] }
func (m *mockFS) LoadEnv(path string) error { return nil }

func TestLoaderOptions(t *testing.T) {
	var lc LoaderConfig
	WithFileSystem(&mockFS{})(&lc)
	WithConfigFile("/path/to/config.yml")(&lc)
	WithEnvFile("/path/to/.env")(&lc)
	WithEnvPrefix("CK")(&lc)

	if lc.FileSystem == nil {
		t.Error("expected FileSystem to be set")
	}
	if lc.ConfigFile != "/path/to/config.yml" {
		t.Errorf("expected config file path, got %q", lc.ConfigFile)
	}
	if lc.EnvFile != "/path/to/.env" {
		t.Errorf("expected env file path, got %q", lc.EnvFile)
	}
	if lc.EnvPrefix != "CK" {
		t.Errorf("expected env prefix, got %q", lc.EnvPrefix)
	}
}
