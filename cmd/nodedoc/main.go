package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alnah/go-nodedoc"
	"github.com/alnah/go-nodedoc/internal/config"
	"github.com/alnah/go-nodedoc/internal/hints"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Command names.
const (
	cmdBuild      = "build"
	cmdWatch      = "watch"
	cmdCheck      = "check"
	cmdCompletion = "completion"
	cmdVersion    = "version"
	cmdHelp       = "help"
)

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if wantsVerbose(os.Args) {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// wantsVerbose reports whether -v or --verbose appears before "--".
func wantsVerbose(args []string) bool {
	for _, a := range args[1:] {
		if a == "--" {
			return false
		}
		if a == "-v" || a == "--verbose" {
			return true
		}
	}
	return false
}

// runMain dispatches args[1] and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	if env.Environ != nil {
		warnUnknownEnvVars(env.Stderr, env.Environ())
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	cmd, rest := args[1], args[2:]

	var err error
	switch cmd {
	case cmdBuild:
		err = runBuild(ctx, rest, env)
	case cmdWatch:
		err = runWatch(ctx, rest, env)
	case cmdCheck:
		return runCheckCmd(rest, env)
	case cmdCompletion:
		err = runCompletion(rest, env)
	case cmdVersion:
		fmt.Fprintf(env.Stdout, "nodedoc %s\n", Version)
	case cmdHelp, "-h", "--help":
		err = runHelp(rest, env)
	default:
		printUsage(env.Stderr)
		err = fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
	}

	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(env.Stderr, "interrupted")
			return ExitGeneral
		}
		fmt.Fprintln(env.Stderr, formatError(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// formatError renders err with an actionable hint when one applies.
func formatError(err error) string {
	msg := "error: " + err.Error()

	var collisions *nodedoc.CollisionError
	var notFound *config.NotFoundError
	var pathErr *fs.PathError

	switch {
	case errors.As(err, &collisions):
		return msg + hints.ForNameCollision(collisions.Stems())
	case errors.As(err, &notFound):
		return msg + hints.ForConfigNotFound(notFound.Tried)
	case errors.Is(err, nodedoc.ErrManifestRead) && errors.Is(err, fs.ErrNotExist):
		path := config.DefaultManifestPath
		if errors.As(err, &pathErr) {
			path = pathErr.Path
		}
		return msg + hints.ForManifestNotFound(path)
	case errors.Is(err, nodedoc.ErrManifestParse):
		return msg + hints.ForManifestParse(strings.Contains(err.Error(), ".json:"))
	case errors.Is(err, nodedoc.ErrCreateOutputDir):
		return msg + hints.ForOutputDirectory()
	case errors.Is(err, nodedoc.ErrStyleNotFound):
		return msg + hints.ForStyleNotFound(nodedoc.AvailableStyles())
	}
	return msg
}
