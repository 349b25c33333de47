package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: nodedoc <command> [flags] [manifest]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build       Generate node pages, nodes.md and optional extras")
	fmt.Fprintln(w, "  watch       Rebuild whenever the manifest or config changes")
	fmt.Fprintln(w, "  check       Validate a manifest without writing files")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'nodedoc help <command>' for details on a specific command.")
}

// printBuildUsage prints usage for the build and watch commands.
func printBuildUsage(w io.Writer, name string) {
	fmt.Fprintf(w, "Usage: nodedoc %s [manifest] [flags]\n", name)
	fmt.Fprintln(w)
	if name == cmdWatch {
		fmt.Fprintln(w, "Build the site, then rebuild whenever the manifest, config,")
		fmt.Fprintln(w, "intro file or custom assets change. Stop with Ctrl+C.")
	} else {
		fmt.Fprintln(w, "Write one HTML page per node plus nodes.md into the output directory.")
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  manifest    JSON or YAML node list (default docs/source/nodes.json)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (default docs)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Site:")
	fmt.Fprintln(w, "      --title <s>           Site heading text")
	fmt.Fprintln(w, "      --home-url <url>      Site heading link target")
	fmt.Fprintln(w, "      --base-url <url>      Link prefix for nodes in nodes.md")
	fmt.Fprintln(w, "      --no-footer           Omit the footer link")
	fmt.Fprintln(w, "      --trusted-html        Emit manifest text without escaping")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Extras:")
	fmt.Fprintln(w, "      --index               Also write index.html")
	fmt.Fprintln(w, "      --intro <path>        Markdown shown above the index table (implies --index)")
	fmt.Fprintln(w, "      --write-style         Also write style.css")
	fmt.Fprintln(w, "      --allow-collisions    Let later nodes overwrite pages with the same name")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Assets:")
	fmt.Fprintln(w, "      --style <name|path>   CSS written by --write-style (default, dark, or a file)")
	fmt.Fprintln(w, "      --template <name>     Template set name")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory with custom styles/ and templates/")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
	if name == cmdWatch {
		fmt.Fprintln(w, "      --debounce <d>        Delay before rebuilding (default 300ms)")
	}
}

// printCheckUsage prints usage for the check command.
func printCheckUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: nodedoc check [manifest] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Report empty or unusable names, file name collisions and")
	fmt.Fprintln(w, "diagrams missing from <output>/svg/. Nothing is written.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory holding svg/ (default docs)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --json                Machine-readable output")
	fmt.Fprintln(w, "  -q, --quiet               Only print when problems are found")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes: 0 ok or warnings, 1 errors found, 2 bad flags, 3 unreadable manifest.")
}

// printCommandUsage prints usage for one command.
func printCommandUsage(w io.Writer, name string) {
	switch name {
	case cmdBuild, cmdWatch:
		printBuildUsage(w, name)
	case cmdCheck:
		printCheckUsage(w)
	case cmdCompletion:
		printCompletionUsage(w)
	case cmdVersion:
		fmt.Fprintln(w, "Usage: nodedoc version")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Show version information.")
	case cmdHelp:
		fmt.Fprintln(w, "Usage: nodedoc help [command]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Show help for a command.")
	}
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return nil
	}

	switch args[0] {
	case cmdBuild, cmdWatch, cmdCheck, cmdCompletion, cmdVersion, cmdHelp:
		printCommandUsage(env.Stdout, args[0])
		return nil
	default:
		printUsage(env.Stderr)
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}
}
