package nodedoc

import "io"

// Option configures a Builder.
type Option func(*Builder)

// builderConfig holds settings applied by options.
type builderConfig struct {
	site            Site
	logger          io.Writer
	assetPath       string
	templateSetName string
	templateSet     *TemplateSet
	styleInput      string
	allowCollisions bool
	index           bool
	introFile       string
	writeStyle      bool
	trustedHTML     bool
}

// WithSite sets the shared page settings. Empty title, URL and stylesheet
// fields keep their defaults; an empty FooterText omits the footer.
func WithSite(site Site) Option {
	return func(b *Builder) {
		def := DefaultSite()
		if site.Title == "" {
			site.Title = def.Title
		}
		if site.HomeURL == "" {
			site.HomeURL = def.HomeURL
		}
		if site.BaseURL == "" {
			site.BaseURL = def.BaseURL
		}
		if site.Stylesheet == "" {
			site.Stylesheet = def.Stylesheet
		}
		b.cfg.site = site
	}
}

// WithLogger sets the writer receiving one progress line per written file.
// A nil writer discards progress.
func WithLogger(w io.Writer) Option {
	return func(b *Builder) {
		if w == nil {
			w = io.Discard
		}
		b.cfg.logger = w
	}
}

// WithAssetPath sets a directory of custom styles and templates.
// Missing assets fall back to the embedded defaults.
func WithAssetPath(path string) Option {
	return func(b *Builder) {
		b.cfg.assetPath = path
	}
}

// WithAssetLoader sets a custom asset loader.
// Takes precedence over WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(b *Builder) {
		b.assetLoader = loader
	}
}

// WithTemplateSet selects a template set by name.
func WithTemplateSet(name string) Option {
	return func(b *Builder) {
		b.cfg.templateSetName = name
	}
}

// WithTemplates uses ts directly instead of loading a template set.
func WithTemplates(ts *TemplateSet) Option {
	return func(b *Builder) {
		b.cfg.templateSet = ts
	}
}

// WithStyle selects the stylesheet written by WithStyleOutput.
// The value is a style name or a path to a CSS file.
func WithStyle(nameOrPath string) Option {
	return func(b *Builder) {
		b.cfg.styleInput = nameOrPath
	}
}

// WithAllowCollisions lets later nodes overwrite pages of earlier nodes
// whose names sanitize to the same file.
func WithAllowCollisions(allow bool) Option {
	return func(b *Builder) {
		b.cfg.allowCollisions = allow
	}
}

// WithIndex writes index.html rendering the summary table.
func WithIndex(enabled bool) Option {
	return func(b *Builder) {
		b.cfg.index = enabled
	}
}

// WithIntro prepends a Markdown file to the index page. Requires WithIndex.
func WithIntro(path string) Option {
	return func(b *Builder) {
		b.cfg.introFile = path
	}
}

// WithStyleOutput writes the selected stylesheet as style.css.
func WithStyleOutput(enabled bool) Option {
	return func(b *Builder) {
		b.cfg.writeStyle = enabled
	}
}

// WithTrustedHTML emits manifest text without escaping.
// Use only for manifests that embed markup on purpose.
func WithTrustedHTML(trusted bool) Option {
	return func(b *Builder) {
		b.cfg.trustedHTML = trusted
	}
}
