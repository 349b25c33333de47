package main

import (
	"io"
	"time"

	flag "github.com/spf13/pflag"
)

// defaultDebounce delays rebuilds in watch mode until edits settle.
const defaultDebounce = 300 * time.Millisecond

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	output  string
	quiet   bool
	verbose bool
}

// siteFlags holds page chrome flags.
type siteFlags struct {
	title       string
	baseURL     string
	homeURL     string
	noFooter    bool
	trustedHTML bool
}

// assetFlags holds asset-related flags (CSS, templates, custom asset path).
type assetFlags struct {
	style       string // Name or path of the CSS written by --write-style
	templateSet string // Template set name
	assetPath   string // Override asset directory
}

// extraFlags holds flags for optional outputs and collision policy.
type extraFlags struct {
	allowCollisions bool
	index           bool
	intro           string
	writeStyle      bool
}

// buildFlags holds all flags for the build and watch commands.
type buildFlags struct {
	common   commonFlags
	site     siteFlags
	assets   assetFlags
	extras   extraFlags
	debounce time.Duration // watch only
}

// checkFlags holds flags for the check command.
type checkFlags struct {
	common commonFlags
	json   bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addSiteFlags adds page chrome flags to a FlagSet.
func addSiteFlags(fs *flag.FlagSet, f *siteFlags) {
	fs.StringVar(&f.title, "title", "", "site heading text")
	fs.StringVar(&f.baseURL, "base-url", "", "link prefix for nodes in nodes.md")
	fs.StringVar(&f.homeURL, "home-url", "", "site heading link target")
	fs.BoolVar(&f.noFooter, "no-footer", false, "omit the footer link")
	fs.BoolVar(&f.trustedHTML, "trusted-html", false, "emit manifest text without escaping")
}

// addAssetFlags adds asset-related flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.style, "style", "", "CSS style name or file path")
	fs.StringVar(&f.templateSet, "template", "", "template set name")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
}

// addExtraFlags adds optional output flags to a FlagSet.
func addExtraFlags(fs *flag.FlagSet, f *extraFlags) {
	fs.BoolVar(&f.allowCollisions, "allow-collisions", false, "let later nodes overwrite pages with the same name")
	fs.BoolVar(&f.index, "index", false, "also write index.html")
	fs.StringVar(&f.intro, "intro", "", "Markdown file shown above the index table")
	fs.BoolVar(&f.writeStyle, "write-style", false, "also write style.css")
}

// newBuildFlagSet registers build flags on a new FlagSet.
// Shared by parseBuildFlags and shell completion.
func newBuildFlagSet(name string, f *buildFlags) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)

	addCommonFlags(fs, &f.common)
	addSiteFlags(fs, &f.site)
	addAssetFlags(fs, &f.assets)
	addExtraFlags(fs, &f.extras)

	if name == cmdWatch {
		fs.DurationVar(&f.debounce, "debounce", defaultDebounce, "delay before rebuilding after a change")
	}
	return fs
}

// parseBuildFlags parses build or watch flags and returns positional args.
func parseBuildFlags(name string, args []string, stderr io.Writer) (*buildFlags, []string, error) {
	f := &buildFlags{debounce: defaultDebounce}
	fs := newBuildFlagSet(name, f)
	fs.SetOutput(stderr)
	fs.Usage = func() { printCommandUsage(stderr, name) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// newCheckFlagSet registers check flags on a new FlagSet.
func newCheckFlagSet(f *checkFlags) *flag.FlagSet {
	fs := flag.NewFlagSet(cmdCheck, flag.ContinueOnError)
	addCommonFlags(fs, &f.common)
	fs.BoolVar(&f.json, "json", false, "machine-readable output")
	return fs
}

// parseCheckFlags parses check command flags and returns positional args.
func parseCheckFlags(args []string, stderr io.Writer) (*checkFlags, []string, error) {
	f := &checkFlags{}
	fs := newCheckFlagSet(f)
	fs.SetOutput(stderr)
	fs.Usage = func() { printCommandUsage(stderr, cmdCheck) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
