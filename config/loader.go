package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// FileSystem interface for file operations (useful for testing).
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// RealFileSystem implements FileSystem using actual file operations.
type RealFileSystem struct{}

func (rfs *RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (rfs *RealFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// Resolver finds config and env files for a service.
type Resolver struct {
	FileSystem FileSystem
}

// ResolvedFiles contains the resolved config and env file paths.
type ResolvedFiles struct {
	ConfigFile string
	EnvFile    string
}

// ResolveFiles returns explicit paths if provided, otherwise searches the
// standard locations.
func (r *Resolver) ResolveFiles(serviceName string, opts LoaderConfig) ResolvedFiles {
	resolved := ResolvedFiles{
		ConfigFile: opts.ConfigFile,
		EnvFile:    opts.EnvFile,
	}
	if resolved.ConfigFile == "" {
		resolved.ConfigFile = r.firstExisting(configSearchPaths(serviceName))
	}
	if resolved.EnvFile == "" {
		resolved.EnvFile = r.firstExisting(envSearchPaths(serviceName))
	}
	return resolved
}

func (r *Resolver) firstExisting(paths []string) string {
	for _, p := range paths {
		if r.FileSystem.Exists(p) {
			return p
		}
	}
	return ""
}

func configSearchPaths(serviceName string) []string {
	paths := []string{
		filepath.Join("cmd", serviceName, "config.yml"),
		filepath.Join("config", "config.yml"),
		"config.yml",
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", serviceName, "config.yml"))
	}
	return paths
}

func envSearchPaths(serviceName string) []string {
	return []string{
		filepath.Join("cmd", serviceName, ".env"),
		".env." + serviceName,
		".env",
	}
}

// LoaderConfig holds dependencies and optional file overrides.
type LoaderConfig struct {
	FileSystem FileSystem
	ConfigFile string // Direct config file path (optional)
	EnvFile    string // Direct env file path (optional)
	EnvPrefix  string // Prefix stripped from env vars; defaults to the upper-cased service name
	Defaults   map[string]any
}

// LoaderOption is a functional option for LoadConfig.
type LoaderOption func(*LoaderConfig)

// WithFileSystem sets a custom filesystem for the loader.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// WithEnvPrefix sets the environment variable prefix.
func WithEnvPrefix(prefix string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvPrefix = prefix }
}

// WithDefaults registers default values by dotted key.
func WithDefaults(defaults map[string]any) LoaderOption {
	return func(lc *LoaderConfig) { lc.Defaults = defaults }
}

// LoadConfig loads configuration for a service into cfg. The config file is
// read first, then the .env file is loaded into the process environment, and
// finally prefixed environment variables override file values.
func LoadConfig(serviceName string, cfg interface{}, opts ...LoaderOption) error {
	var lc LoaderConfig
	for _, opt := range opts {
		opt(&lc)
	}
	if lc.FileSystem == nil {
		lc.FileSystem = &RealFileSystem{}
	}
	if lc.EnvPrefix == "" {
		lc.EnvPrefix = envPrefixFor(serviceName)
	}

	resolver := &Resolver{FileSystem: lc.FileSystem}
	files := resolver.ResolveFiles(serviceName, lc)

	v := viper.New()
	for k, val := range lc.Defaults {
		v.SetDefault(k, val)
	}

	if files.ConfigFile != "" && lc.FileSystem.Exists(files.ConfigFile) {
		v.SetConfigFile(files.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", files.ConfigFile, err)
		}
	}

	if files.EnvFile != "" && lc.FileSystem.Exists(files.EnvFile) {
		if err := lc.FileSystem.LoadEnv(files.EnvFile); err != nil {
			return fmt.Errorf("loading env file %s: %w", files.EnvFile, err)
		}
	}

	bindEnvVars(v, lc.EnvPrefix, os.Environ())

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config for service %s: %w", serviceName, err)
	}
	return nil
}

func envPrefixFor(serviceName string) string {
	return strings.ToUpper(strings.NewReplacer("-", "_", ".", "_").Replace(serviceName))
}

// bindEnvVars sets every PREFIX_* variable onto all nested key variants it
// could address, since Viper cannot tell a nesting underscore from one that
// is part of a key name.
func bindEnvVars(v *viper.Viper, prefix string, environ []string) {
	p := prefix + "_"
	for _, env := range environ {
		key, value, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(key, p) {
			continue
		}
		for _, variant := range generateEnvKeyVariants(strings.TrimPrefix(key, p)) {
			v.Set(variant, value)
		}
	}
}

// generateEnvKeyVariants creates the candidate keys for an env var name.
//
//	COLLECTION_LIMIT       -> [collection_limit, collection.limit]
//	LOGGING_NO_COLOR       -> [logging_no_color, logging.no.color, logging.no_color]
func generateEnvKeyVariants(envKey string) []string {
	lowerKey := strings.ToLower(envKey)
	parts := strings.Split(lowerKey, "_")
	if len(parts) <= 1 {
		return []string{lowerKey}
	}

	variants := []string{
		lowerKey,
		strings.ReplaceAll(lowerKey, "_", "."),
	}
	for i := 1; i < len(parts); i++ {
		prefix := strings.Join(parts[:i], ".")
		suffix := strings.Join(parts[i:], "_")
		variants = append(variants, prefix+"."+suffix)
	}
	return removeDuplicates(variants)
}

func removeDuplicates(items []string) []string {
	seen := make(map[string]bool, len(items))
	result := make([]string, 0, len(items))
	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			result = append(result, item)
		}
	}
	return result
}
