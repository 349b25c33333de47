package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-nodedoc"
	"github.com/alnah/go-nodedoc/internal/config"
)

// Sentinel errors for CLI operations.
var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrTooManyArgs    = errors.New("too many arguments")
	ErrInvalidFlags   = errors.New("invalid flags")
)

// loadSettings resolves configuration for one run.
// Precedence: CLI flags > NODEDOC_* env vars > config file > defaults.
// The returned path is the config file used, or empty.
func loadSettings(args []string, common commonFlags, env *Environment) (*config.Config, string, error) {
	if len(args) > 1 {
		return nil, "", fmt.Errorf("%w: expected at most one manifest, got %d", ErrTooManyArgs, len(args))
	}

	envCfg := loadEnvConfig(env.Getenv)

	name := common.config
	if name == "" {
		name = envCfg.ConfigPath
	}
	if name == "" {
		name = config.Discover(".")
	}

	cfg := config.DefaultConfig()
	if name != "" {
		path, err := config.Resolve(name)
		if err != nil {
			return nil, "", fmt.Errorf("loading config: %w", err)
		}
		cfg, err = config.LoadConfig(path)
		if err != nil {
			return nil, "", fmt.Errorf("loading config: %w", err)
		}
		name = path
	}

	applyEnvConfig(envCfg, cfg)

	if len(args) == 1 {
		cfg.Manifest.Path = args[0]
	}
	if common.output != "" {
		cfg.Output.Dir = common.output
	}

	return cfg, name, nil
}

// mergeFlags applies explicitly set build flags on top of cfg.
func mergeFlags(f *buildFlags, cfg *config.Config) {
	if f.site.title != "" {
		cfg.Site.Title = f.site.title
	}
	if f.site.baseURL != "" {
		cfg.Site.BaseURL = config.NormalizeBaseURL(f.site.baseURL)
	}
	if f.site.homeURL != "" {
		cfg.Site.HomeURL = f.site.homeURL
	}
	if f.site.noFooter {
		cfg.Site.NoFooter = true
	}
	if f.site.trustedHTML {
		cfg.Site.TrustedHTML = true
	}

	if f.assets.style != "" {
		cfg.Assets.Style = f.assets.style
	}
	if f.assets.templateSet != "" {
		cfg.Assets.TemplateSet = f.assets.templateSet
	}
	if f.assets.assetPath != "" {
		cfg.Assets.BasePath = f.assets.assetPath
	}

	if f.extras.allowCollisions {
		cfg.Build.AllowCollisions = true
	}
	if f.extras.index {
		cfg.Build.Index = true
	}
	if f.extras.intro != "" {
		cfg.Build.IntroFile = f.extras.intro
		cfg.Build.Index = true // --intro implies --index
	}
	if f.extras.writeStyle {
		cfg.Build.WriteStyle = true
	}
}

// builderOptions converts resolved configuration to library options.
func builderOptions(cfg *config.Config, logger io.Writer) []nodedoc.Option {
	site := nodedoc.Site{
		Title:      cfg.Site.Title,
		HomeURL:    cfg.Site.HomeURL,
		BaseURL:    cfg.Site.BaseURL,
		Stylesheet: cfg.Site.Stylesheet,
		FooterText: cfg.Site.FooterText,
		FooterURL:  cfg.Site.FooterURL,
	}
	if cfg.Site.NoFooter {
		site.FooterText = ""
		site.FooterURL = ""
	}

	return []nodedoc.Option{
		nodedoc.WithSite(site),
		nodedoc.WithLogger(logger),
		nodedoc.WithAssetPath(cfg.Assets.BasePath),
		nodedoc.WithTemplateSet(cfg.Assets.TemplateSet),
		nodedoc.WithStyle(cfg.Assets.Style),
		nodedoc.WithAllowCollisions(cfg.Build.AllowCollisions),
		nodedoc.WithIndex(cfg.Build.Index),
		nodedoc.WithIntro(cfg.Build.IntroFile),
		nodedoc.WithStyleOutput(cfg.Build.WriteStyle),
		nodedoc.WithTrustedHTML(cfg.Site.TrustedHTML),
	}
}

// resolveBuild parses build flags and resolves the final configuration.
// Returns (nil, nil, "", nil) when help was requested.
func resolveBuild(name string, args []string, env *Environment) (*buildFlags, *config.Config, string, error) {
	flags, positional, err := parseBuildFlags(name, args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, nil, "", nil
		}
		return nil, nil, "", fmt.Errorf("%w: %v", ErrInvalidFlags, err)
	}

	cfg, cfgPath, err := loadSettings(positional, flags.common, env)
	if err != nil {
		return nil, nil, "", err
	}
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, nil, "", err
	}
	return flags, cfg, cfgPath, nil
}

// runBuild generates the site once.
func runBuild(ctx context.Context, args []string, env *Environment) error {
	flags, cfg, _, err := resolveBuild(cmdBuild, args, env)
	if err != nil || flags == nil {
		return err
	}
	_, err = buildOnce(ctx, cfg, flags.common, env)
	return err
}

// buildOnce loads the manifest and writes the site, logging progress to
// stdout unless quiet.
func buildOnce(ctx context.Context, cfg *config.Config, common commonFlags, env *Environment) (*nodedoc.Result, error) {
	start := env.Now()

	var logger io.Writer = env.Stdout
	if common.quiet {
		logger = io.Discard
	}

	m, err := nodedoc.LoadManifest(cfg.Manifest.Path)
	if err != nil {
		return nil, err
	}

	b, err := nodedoc.NewBuilder(builderOptions(cfg, logger)...)
	if err != nil {
		return nil, err
	}

	result, err := b.Build(ctx, m, cfg.Output.Dir)
	if err != nil {
		return result, err
	}

	if common.verbose {
		elapsed := env.Now().Sub(start).Round(time.Millisecond)
		fmt.Fprintf(env.Stderr, "Built %d nodes (%d files) into %s in %s\n",
			len(m), len(result.Files), cfg.Output.Dir, elapsed)
	}
	return result, nil
}
