// Package assets provides CSS styles and HTML templates for node documentation sites.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (default styles)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// EmbeddedLoader provides the built-in styles (default, dark) and the default
// template set embedded at compile time.
//
// FilesystemLoader allows users to provide custom assets from a directory,
// with path traversal protection and symlink resolution.
//
// AssetResolver is the loader used by the site builder. It tries the custom
// FilesystemLoader first, falling back to EmbeddedLoader if the asset is not
// found. This enables overriding a single template while keeping defaults.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css           # CSS styles (e.g., dark.css)
//	└── templates/
//	    └── {name}/
//	        ├── page.html        # Per-node page (html/template)
//	        ├── sidebar.html     # Sidebar list items, rendered once per build
//	        └── index.html       # Optional index page wrapping Markdown output
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
