package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Config holds all configuration for the application
type Config struct {
	Start      string `koanf:"start"`     // Start path: a directory or a single .sln file
	Report     bool   `koanf:"report"`    // Print the colorized summary report instead of JSON
	Output     string `koanf:"output"`    // Output file for the JSON document, "-" for stdout
	Workers    int    `koanf:"workers"`   // Solution-parsing worker pool size
	WebMode    bool   `koanf:"web"`       // Serve results over HTTP instead of printing
	Port       int    `koanf:"port"`      // Port for web server (only used with --web)
	Watch      bool   `koanf:"watch"`     // Rescan when solution or project files change
	Verbosity  string `koanf:"verbosity"` // Explicit log level name
	VerboseCnt int    `koanf:"verbose"`   // Repeatable -v counter
}

// Load loads configuration from defaults, config file, environment variables, and flags.
// Priority: Flags > Env > Config File > Defaults
func Load(f *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	defaults := map[string]interface{}{
		"start":     ".",
		"report":    false,
		"output":    "-",
		"workers":   0,
		"web":       false,
		"port":      8080,
		"watch":     false,
		"verbosity": "",
		"verbose":   0,
	}
	if err := k.Load(makeMapProvider(defaults), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config File (optional) - slnscan.toml
	// We ignore errors here as the file might not exist
	_ = k.Load(file.Provider("slnscan.toml"), toml.Parser())

	// 3. Environment Variables
	// Prefix: SLNSCAN_ (e.g., SLNSCAN_PORT=9090)
	if err := k.Load(env.Provider("SLNSCAN_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(
			strings.TrimPrefix(s, "SLNSCAN_")), "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags
	if f != nil {
		if err := k.Load(posflag.Provider(f, ".", k), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// Unmarshal into struct
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Helper to use map as a provider
type mapProvider struct {
	m map[string]interface{}
}

func makeMapProvider(m map[string]interface{}) *mapProvider {
	return &mapProvider{m: m}
}

func (p *mapProvider) Read() (map[string]interface{}, error) {
	return p.m, nil
}

func (p *mapProvider) ReadBytes() ([]byte, error) {
	return nil, fmt.Errorf("not implemented")
}
