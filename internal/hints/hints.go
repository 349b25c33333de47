// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strings"

	"github.com/alnah/go-nodedoc/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForManifestNotFound returns hints for a missing manifest file.
func ForManifestNotFound(path string) string {
	return format("pass the manifest path as an argument (e.g. nodedoc build " + path + ") or set NODEDOC_MANIFEST")
}

// ForManifestParse returns hints for manifests that fail to decode.
// looksJSON reports whether the input started like a JSON document.
func ForManifestParse(looksJSON bool) string {
	if looksJSON {
		return format("the manifest must be a JSON array of node objects; check for trailing commas")
	}
	return format("the manifest must be a JSON array or YAML sequence of node objects")
}

// ForNameCollision returns hints listing colliding file stems.
func ForNameCollision(stems []string) string {
	if len(stems) == 0 {
		return ""
	}
	return formatHints([]string{
		"rename nodes so names differ after whitespace removal: " + strings.Join(stems, ", "),
		"or pass --allow-collisions to let later nodes overwrite earlier pages",
	})
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-nodedoc/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-nodedoc") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	if IsInContainer() {
		return format("check the output volume is mounted writable for the container user")
	}
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound returns hints for style not found errors.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
