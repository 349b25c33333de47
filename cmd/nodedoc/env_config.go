package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/alnah/go-nodedoc/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // NODEDOC_CONFIG: config file name or path
	Manifest   string // NODEDOC_MANIFEST: manifest path
	OutputDir  string // NODEDOC_OUTPUT_DIR: output directory
	BaseURL    string // NODEDOC_BASE_URL: link prefix in nodes.md
	Style      string // NODEDOC_STYLE: style name or CSS path
	AssetPath  string // NODEDOC_ASSET_PATH: custom asset directory
}

// knownEnvVars lists valid NODEDOC_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"NODEDOC_CONFIG":     true,
	"NODEDOC_MANIFEST":   true,
	"NODEDOC_OUTPUT_DIR": true,
	"NODEDOC_BASE_URL":   true,
	"NODEDOC_STYLE":      true,
	"NODEDOC_ASSET_PATH": true,
	"NODEDOC_CONTAINER":  true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig(getenv func(string) string) *envConfig {
	return &envConfig{
		ConfigPath: getenv("NODEDOC_CONFIG"),
		Manifest:   getenv("NODEDOC_MANIFEST"),
		OutputDir:  getenv("NODEDOC_OUTPUT_DIR"),
		BaseURL:    getenv("NODEDOC_BASE_URL"),
		Style:      getenv("NODEDOC_STYLE"),
		AssetPath:  getenv("NODEDOC_ASSET_PATH"),
	}
}

// warnUnknownEnvVars logs warnings for unrecognized NODEDOC_* variables.
// Helps catch typos like NODEDOC_OUTPUTDIR instead of NODEDOC_OUTPUT_DIR.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, env := range environ {
		if strings.HasPrefix(env, "NODEDOC_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Env values override the config file; CLI flags are applied later
// via mergeFlags, giving: CLI flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Manifest != "" {
		cfg.Manifest.Path = env.Manifest
	}
	if env.OutputDir != "" {
		cfg.Output.Dir = env.OutputDir
	}
	if env.BaseURL != "" {
		cfg.Site.BaseURL = config.NormalizeBaseURL(env.BaseURL)
	}
	if env.Style != "" {
		cfg.Assets.Style = env.Style
	}
	if env.AssetPath != "" {
		cfg.Assets.BasePath = env.AssetPath
	}
}
