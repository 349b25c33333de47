// Package nodedoc generates a static documentation site from a manifest of
// audio-graph node descriptors.
//
// # Quick Start
//
// Load a manifest, create a builder, and build into a directory:
//
//	m, err := nodedoc.LoadManifest("docs/source/nodes.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	b, err := nodedoc.NewBuilder(nodedoc.WithLogger(os.Stdout))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := b.Build(ctx, m, "docs")
//
// Build writes one HTML page per node, named after the node with whitespace
// removed ("Random Pulse" becomes RandomPulse.html), followed by nodes.md,
// a Markdown table linking every page. Each write logs "- <file>".
//
// # Manifest
//
// The manifest is a JSON array (or YAML sequence) of objects:
//
//	[{
//	  "name": "Gate",
//	  "description": "Passes signal when open.",
//	  "image": "gate.svg",
//	  "category": "Logic",
//	  "inputs":  [{"name": "In",  "description": "Signal in",  "type": "Audio"}],
//	  "outputs": [{"name": "Out", "description": "Signal out", "type": "Audio"}]
//	}]
//
// Images are referenced as ./svg/<image> relative to the output directory.
//
// # Collisions
//
// Two names that differ only in whitespace map to the same page. Build
// returns a *CollisionError (matching ErrNameCollision) before writing
// anything. WithAllowCollisions(true) lets later nodes overwrite earlier
// pages instead.
//
// # Escaping
//
// Pages render through html/template, so manifest text is escaped. Use
// WithTrustedHTML(true) for manifests that embed markup on purpose.
//
// # Extras
//
// WithIndex writes index.html from the summary table (plus an optional
// Markdown intro via WithIntro). WithStyleOutput writes style.css from an
// embedded or custom style. Both are off by default.
//
// # Custom Assets
//
// Override the built-in page templates and styles with WithAssetPath:
//
//	assets/
//	├── styles/
//	│   └── custom.css
//	└── templates/
//	    └── custom/
//	        ├── page.html
//	        ├── sidebar.html
//	        └── index.html
//
// Missing assets fall back to the embedded defaults.
package nodedoc
