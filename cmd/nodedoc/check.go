package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-nodedoc"
	"github.com/alnah/go-nodedoc/internal/fileutil"
	"github.com/alnah/go-nodedoc/internal/hints"
)

// Check status values.
const (
	statusOK       = "ok"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// ImageDir is the output subdirectory holding node diagrams.
const ImageDir = "svg"

// checkResult holds all manifest diagnostics.
type checkResult struct {
	Status     string              `json:"status"` // "ok", "warnings", "errors"
	Manifest   string              `json:"manifest"`
	Output     string              `json:"output"`
	Nodes      int                 `json:"nodes"`
	Collisions []nodedoc.Collision `json:"collisions,omitempty"`
	Missing    []string            `json:"missingImages,omitempty"`
	Warnings   []string            `json:"warnings,omitempty"`
	Errors     []string            `json:"errors,omitempty"`
}

// runCheckCmd executes the check command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = problems found,
// 2 = bad flags or config, 3 = manifest unreadable.
func runCheckCmd(args []string, env *Environment) int {
	flags, positional, err := parseCheckFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, formatError(fmt.Errorf("%w: %v", ErrInvalidFlags, err)))
		return ExitUsage
	}

	cfg, _, err := loadSettings(positional, flags.common, env)
	if err != nil {
		fmt.Fprintln(env.Stderr, formatError(err))
		return exitCodeFor(err)
	}

	result, err := runCheck(cfg.Manifest.Path, cfg.Output.Dir)
	if err != nil {
		fmt.Fprintln(env.Stderr, formatError(err))
		return exitCodeFor(err)
	}

	if flags.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else if !flags.common.quiet || result.Status != statusOK {
		printCheckResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

// runCheck loads the manifest and collects diagnostics.
// Returns an error only when the manifest cannot be read or parsed.
func runCheck(manifestPath, outputDir string) (*checkResult, error) {
	m, err := nodedoc.LoadManifest(manifestPath)
	if err != nil {
		return nil, err
	}

	result := &checkResult{
		Status:   statusOK,
		Manifest: manifestPath,
		Output:   outputDir,
		Nodes:    len(m),
	}

	checkNames(result, m)
	checkImages(result, m, outputDir)

	if len(result.Errors) > 0 {
		result.Status = statusErrors
	} else if len(result.Warnings) > 0 {
		result.Status = statusWarnings
	}
	return result, nil
}

// checkNames reports empty, unusable and colliding node names.
func checkNames(result *checkResult, m nodedoc.Manifest) {
	if err := m.Validate(); err != nil {
		for _, line := range strings.Split(err.Error(), "\n") {
			result.Errors = append(result.Errors, line)
		}
	}

	result.Collisions = m.Collisions()
	for _, c := range result.Collisions {
		result.Errors = append(result.Errors,
			fmt.Sprintf("%s is produced by %d nodes: %s", c.File, len(c.Names), quoteAll(c.Names)))
	}
}

// checkImages reports nodes whose diagram is not under <output>/svg/.
// Images given as URLs are not checked.
func checkImages(result *checkResult, m nodedoc.Manifest, outputDir string) {
	for i, n := range m {
		switch {
		case n.Image == "":
			result.Warnings = append(result.Warnings, fmt.Sprintf("node %d %q has no image", i, n.Name))
		case fileutil.IsURL(n.Image):
			continue
		case !fileutil.FileExists(filepath.Join(outputDir, ImageDir, n.Image)):
			result.Missing = append(result.Missing, n.Image)
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("node %d %q: image %s not found in %s", i, n.Name, n.Image, filepath.Join(outputDir, ImageDir)))
		}
	}
}

func quoteAll(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = fmt.Sprintf("%q", n)
	}
	return strings.Join(quoted, ", ")
}

// printCheckResult outputs human-readable diagnostics.
func printCheckResult(w io.Writer, r *checkResult) {
	fmt.Fprintln(w, "nodedoc check")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Manifest: %s (%d nodes)\n", r.Manifest, r.Nodes)
	fmt.Fprintf(w, "  Output:   %s\n", r.Output)
	fmt.Fprintln(w)

	for _, e := range r.Errors {
		fmt.Fprintf(w, "  [ERROR] %s\n", e)
	}
	for _, warn := range r.Warnings {
		fmt.Fprintf(w, "  [WARN] %s\n", warn)
	}
	if len(r.Collisions) > 0 {
		stems := make([]string, len(r.Collisions))
		for i, c := range r.Collisions {
			stems[i] = strings.TrimSuffix(c.File, nodedoc.PageExt)
		}
		fmt.Fprintln(w, strings.TrimPrefix(hints.ForNameCollision(stems), "\n"))
	}

	switch r.Status {
	case statusOK:
		fmt.Fprintln(w, "  [OK] Ready to build")
	case statusWarnings:
		fmt.Fprintln(w, "  Ready to build, with warnings")
	default:
		fmt.Fprintln(w, "  Build will fail until errors are fixed")
	}
}
