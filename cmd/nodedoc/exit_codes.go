package main

import (
	"errors"
	"os"

	"github.com/alnah/go-nodedoc"
	"github.com/alnah/go-nodedoc/internal/config"
)

// Exit codes for the nodedoc CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Site generated
	ExitGeneral = 1 // General/unexpected error, or check found problems
	ExitUsage   = 2 // Invalid flags, config, manifest contents, or assets
	ExitIO      = 3 // File not found, permission denied, write failure
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, nodedoc.ErrManifestRead) ||
		errors.Is(err, nodedoc.ErrCreateOutputDir) ||
		errors.Is(err, nodedoc.ErrWritePage) ||
		errors.Is(err, nodedoc.ErrWriteSummary) ||
		errors.Is(err, nodedoc.ErrWriteIndex) ||
		errors.Is(err, nodedoc.ErrWriteStyle) ||
		errors.Is(err, nodedoc.ErrIntroRead) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidURL) ||
		errors.Is(err, nodedoc.ErrManifestParse) ||
		errors.Is(err, nodedoc.ErrEmptyNodeName) ||
		errors.Is(err, nodedoc.ErrInvalidNodeName) ||
		errors.Is(err, nodedoc.ErrNameCollision) ||
		errors.Is(err, nodedoc.ErrStyleNotFound) ||
		errors.Is(err, nodedoc.ErrTemplateSetNotFound) ||
		errors.Is(err, nodedoc.ErrIncompleteTemplateSet) ||
		errors.Is(err, nodedoc.ErrInvalidAssetPath) ||
		errors.Is(err, ErrUnsupportedShell) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrTooManyArgs) ||
		errors.Is(err, ErrInvalidFlags) {
		return ExitUsage
	}

	return ExitGeneral
}
