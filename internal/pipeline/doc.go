// Package pipeline implements the manifest-to-site rendering stages.
//
// This package turns already-validated node data into bytes:
//   - Sidebar rendering (once per build, shared by every page)
//   - Per-node HTML page rendering via html/template
//   - Markdown summary table generation (nodes.md)
//   - Optional index page: Markdown to HTML via Goldmark, wrapped in the
//     index template
//
// File layout, name sanitization and collision policy live in the root
// nodedoc package. This package never touches the filesystem.
package pipeline
