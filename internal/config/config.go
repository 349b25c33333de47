package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-nodedoc/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidURL      = errors.New("invalid URL")
)

// Field length limits.
const (
	MaxPathLength       = 4096 // PATH_MAX on Linux
	MaxURLLength        = 2048 // Browser limit
	MaxTitleLength      = 200  // Site heading
	MaxFooterTextLength = 200  // Footer link label
	MaxAssetNameLength  = 64   // Style or template set name
)

// Defaults match the MetaSound Branches repository layout, so a bare
// `nodedoc build` run from the repository root regenerates the published site.
const (
	DefaultManifestPath = "docs/source/nodes.json"
	DefaultOutputDir    = "docs"
	DefaultTitle        = "MetaSound Branches"
	DefaultSiteURL      = "https://matthewscharles.github.io/metasound-branches/"
	DefaultFooterText   = "Charles Matthews 2025"
	DefaultFooterURL    = "https://github.com/matthewscharles/"
	DefaultStylesheet   = "./style.css"
	DefaultStyle        = "default"
	DefaultTemplateSet  = "default"
)

// DiscoverNames are the config file names looked up in the working
// directory when no --config flag is given.
var DiscoverNames = []string{"nodedoc.yaml", "nodedoc.yml"}

// Config holds all configuration for site generation.
type Config struct {
	Manifest ManifestConfig `yaml:"manifest"`
	Output   OutputConfig   `yaml:"output"`
	Site     SiteConfig     `yaml:"site"`
	Assets   AssetsConfig   `yaml:"assets"`
	Build    BuildConfig    `yaml:"build"`
}

// ManifestConfig defines where the node manifest is read from.
type ManifestConfig struct {
	Path string `yaml:"path"` // JSON or YAML manifest
}

// OutputConfig defines the output destination.
type OutputConfig struct {
	Dir string `yaml:"dir"` // Created if absent
}

// SiteConfig defines page chrome and link targets.
type SiteConfig struct {
	Title       string `yaml:"title"`       // <h1> text on every page
	HomeURL     string `yaml:"homeURL"`     // <h1> link target
	BaseURL     string `yaml:"baseURL"`     // Prefix for node links in nodes.md
	Stylesheet  string `yaml:"stylesheet"`  // href of the page stylesheet
	FooterText  string `yaml:"footerText"`  // Footer link label
	FooterURL   string `yaml:"footerURL"`   // Footer link target
	NoFooter    bool   `yaml:"noFooter"`    // Omit the footer block
	TrustedHTML bool   `yaml:"trustedHTML"` // Emit manifest text without escaping
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath    string `yaml:"basePath"`    // Empty = use embedded assets
	Style       string `yaml:"style"`       // CSS style written by build.writeStyle
	TemplateSet string `yaml:"templateSet"` // Template set name
}

// BuildConfig defines optional build behaviour.
type BuildConfig struct {
	AllowCollisions bool   `yaml:"allowCollisions"` // Later nodes overwrite earlier pages
	Index           bool   `yaml:"index"`           // Also write index.html
	IntroFile       string `yaml:"introFile"`       // Markdown prepended to index.html
	WriteStyle      bool   `yaml:"writeStyle"`      // Also write the stylesheet
}

// Validate checks field lengths and URL shapes.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("manifest.path", c.Manifest.Path, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.dir", c.Output.Dir, MaxPathLength); err != nil {
		return err
	}

	if err := validateFieldLength("site.title", c.Site.Title, MaxTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("site.footerText", c.Site.FooterText, MaxFooterTextLength); err != nil {
		return err
	}
	urls := []struct{ field, value string }{
		{"site.homeURL", c.Site.HomeURL},
		{"site.baseURL", c.Site.BaseURL},
		{"site.stylesheet", c.Site.Stylesheet},
		{"site.footerURL", c.Site.FooterURL},
	}
	for _, u := range urls {
		if err := validateFieldLength(u.field, u.value, MaxURLLength); err != nil {
			return err
		}
		if err := validateURL(u.field, u.value); err != nil {
			return err
		}
	}

	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}
	styleLimit := MaxAssetNameLength
	if isFilePath(c.Assets.Style) {
		styleLimit = MaxPathLength
	}
	if err := validateFieldLength("assets.style", c.Assets.Style, styleLimit); err != nil {
		return err
	}
	if err := validateFieldLength("assets.templateSet", c.Assets.TemplateSet, MaxAssetNameLength); err != nil {
		return err
	}

	if err := validateFieldLength("build.introFile", c.Build.IntroFile, MaxPathLength); err != nil {
		return err
	}
	if c.Build.IntroFile != "" && !c.Build.Index {
		return fmt.Errorf("build.introFile: requires build.index to be enabled")
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// validateURL rejects schemes that would turn a link into script execution.
// Relative references are allowed: sites are often served from a subpath.
func validateURL(fieldName, value string) error {
	lower := strings.ToLower(strings.TrimSpace(value))
	for _, scheme := range []string{"javascript:", "data:", "vbscript:"} {
		if strings.HasPrefix(lower, scheme) {
			return fmt.Errorf("%w: %s uses %q scheme", ErrInvalidURL, fieldName, strings.TrimSuffix(scheme, ":"))
		}
	}
	if strings.ContainsAny(value, " \t\n\"<>") {
		return fmt.Errorf("%w: %s contains whitespace or markup characters", ErrInvalidURL, fieldName)
	}
	return nil
}

// DefaultConfig returns the MetaSound Branches settings:
// fixed manifest and output paths, the published site URL, footer enabled.
func DefaultConfig() *Config {
	return &Config{
		Manifest: ManifestConfig{Path: DefaultManifestPath},
		Output:   OutputConfig{Dir: DefaultOutputDir},
		Site: SiteConfig{
			Title:      DefaultTitle,
			HomeURL:    DefaultSiteURL,
			BaseURL:    DefaultSiteURL,
			Stylesheet: DefaultStylesheet,
			FooterText: DefaultFooterText,
			FooterURL:  DefaultFooterURL,
		},
		Assets: AssetsConfig{
			Style:       DefaultStyle,
			TemplateSet: DefaultTemplateSet,
		},
	}
}

// applyDefaults fills empty string fields from DefaultConfig and normalizes
// BaseURL to end with a slash so file names can be appended directly.
func (c *Config) applyDefaults() {
	d := DefaultConfig()
	setIfEmpty(&c.Manifest.Path, d.Manifest.Path)
	setIfEmpty(&c.Output.Dir, d.Output.Dir)
	setIfEmpty(&c.Site.Title, d.Site.Title)
	setIfEmpty(&c.Site.HomeURL, d.Site.HomeURL)
	setIfEmpty(&c.Site.BaseURL, d.Site.BaseURL)
	setIfEmpty(&c.Site.Stylesheet, d.Site.Stylesheet)
	setIfEmpty(&c.Site.FooterText, d.Site.FooterText)
	setIfEmpty(&c.Site.FooterURL, d.Site.FooterURL)
	setIfEmpty(&c.Assets.Style, d.Assets.Style)
	setIfEmpty(&c.Assets.TemplateSet, d.Assets.TemplateSet)
	c.Site.BaseURL = NormalizeBaseURL(c.Site.BaseURL)
}

func setIfEmpty(dst *string, fallback string) {
	if *dst == "" {
		*dst = fallback
	}
}

// NormalizeBaseURL appends a trailing slash to a non-empty base URL.
func NormalizeBaseURL(u string) string {
	if u == "" || strings.HasSuffix(u, "/") {
		return u
	}
	return u + "/"
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
// Relative manifest, output, asset and intro paths are resolved against the
// config file's directory.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath, err := Resolve(nameOrPath)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	cfg.resolvePaths(filepath.Dir(configPath))
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Resolve maps a config name or path to the file LoadConfig reads.
// Paths are returned unchanged; names are searched in standard locations.
func Resolve(nameOrPath string) (string, error) {
	if nameOrPath == "" {
		return "", ErrEmptyConfigName
	}
	if isFilePath(nameOrPath) || hasYAMLExtension(nameOrPath) {
		return nameOrPath, nil
	}
	return resolveConfigPath(nameOrPath)
}

// resolvePaths makes paths set in the file relative to baseDir.
// Runs before applyDefaults, so unset paths stay relative to the working directory.
func (c *Config) resolvePaths(baseDir string) {
	if baseDir == "" || baseDir == "." {
		return
	}
	for _, p := range []*string{&c.Manifest.Path, &c.Output.Dir, &c.Assets.BasePath, &c.Build.IntroFile} {
		if *p == "" || filepath.IsAbs(*p) {
			continue
		}
		*p = filepath.Join(baseDir, *p)
	}
}

// Discover returns the first DiscoverNames entry present in dir, or "".
func Discover(dir string) string {
	for _, name := range DiscoverNames {
		p := filepath.Join(dir, name)
		if fileExists(p) {
			return p
		}
	}
	return ""
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

func hasYAMLExtension(s string) bool {
	ext := strings.ToLower(filepath.Ext(s))
	return ext == ".yaml" || ext == ".yml"
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-nodedoc/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-nodedoc", name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", &NotFoundError{Name: name, Tried: triedPaths}
}

// NotFoundError reports the locations searched for a named config.
// It matches ErrConfigNotFound via errors.Is.
type NotFoundError struct {
	Name  string
	Tried []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: tried %s", ErrConfigNotFound, strings.Join(e.Tried, ", "))
}

func (e *NotFoundError) Unwrap() error { return ErrConfigNotFound }

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
