package main

import (
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-nodedoc"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = fmt.Errorf("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagDuration
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --output
	Short    string   // -o (empty if none)
	Type     flagType // completion type
	Desc     string   // help text
	Values   []string // for enum flags
	FileGlob string   // for file flags
}

// commandDef describes a command for completion.
type commandDef struct {
	Name        string
	Desc        string
	Flags       []flagDef
	TakesFiles  bool   // accepts a manifest argument
	FilePattern string // glob for file arguments
	Args        []string
}

// completionMeta holds completion hints for flags.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	Values   []string // enum values
	FileGlob string   // file glob pattern
	IsDir    bool     // directory completion
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	"style":    {Values: nodedoc.AvailableStyles()},
	"template": {Values: []string{nodedoc.DefaultTemplateSet}},

	"config": {FileGlob: "*.yaml,*.yml"},
	"intro":  {FileGlob: "*.md,*.markdown"},

	"output":     {IsDir: true},
	"asset-path": {IsDir: true},
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
// Enriches with completion metadata from flagCompletionMeta.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "duration":
			fd.Type = flagDuration
		default:
			fd.Type = flagString
		}

		if meta, ok := flagCompletionMeta[f.Name]; ok {
			switch {
			case len(meta.Values) > 0:
				fd.Type = flagEnum
				fd.Values = meta.Values
			case meta.FileGlob != "":
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			case meta.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
// Flags are extracted from the actual FlagSets.
func getCommands() []commandDef {
	const manifestGlob = "*.json,*.yaml,*.yml"

	return []commandDef{
		{
			Name:        cmdBuild,
			Desc:        "Generate the documentation site",
			Flags:       extractFlagsFromFlagSet(newBuildFlagSet(cmdBuild, &buildFlags{})),
			TakesFiles:  true,
			FilePattern: manifestGlob,
		},
		{
			Name:        cmdWatch,
			Desc:        "Rebuild the site when inputs change",
			Flags:       extractFlagsFromFlagSet(newBuildFlagSet(cmdWatch, &buildFlags{})),
			TakesFiles:  true,
			FilePattern: manifestGlob,
		},
		{
			Name:        cmdCheck,
			Desc:        "Validate a manifest without writing files",
			Flags:       extractFlagsFromFlagSet(newCheckFlagSet(&checkFlags{})),
			TakesFiles:  true,
			FilePattern: manifestGlob,
		},
		{
			Name: cmdCompletion,
			Desc: "Generate shell completion script",
			Args: []string{string(ShellBash), string(ShellZsh), string(ShellFish)},
		},
		{
			Name: cmdVersion,
			Desc: "Show version information",
		},
		{
			Name: cmdHelp,
			Desc: "Show help for a command",
			Args: []string{cmdBuild, cmdWatch, cmdCheck, cmdCompletion, cmdVersion},
		},
	}
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	switch shell {
	case ShellBash:
		return generateBash(w)
	case ShellZsh:
		return generateZsh(w)
	case ShellFish:
		return generateFish(w)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish)", ErrUnsupportedShell, shell)
	}
}

// globExtensions turns "*.json,*.yml" into "json|yml".
func globExtensions(glob string) string {
	parts := strings.Split(glob, ",")
	exts := make([]string, 0, len(parts))
	for _, p := range parts {
		exts = append(exts, strings.TrimPrefix(strings.TrimSpace(p), "*."))
	}
	return strings.Join(exts, "|")
}

// ---------------------------------------------------------------------------
// Bash
// ---------------------------------------------------------------------------

func generateBash(w io.Writer) error {
	commands := getCommands()
	var b strings.Builder

	names := make([]string, 0, len(commands))
	for _, c := range commands {
		names = append(names, c.Name)
	}

	b.WriteString("# bash completion for nodedoc\n\n")
	b.WriteString("_nodedoc_completions() {\n")
	b.WriteString("    local cur prev cmd\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n\n")
	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W \"%s\" -- \"$cur\"))\n", strings.Join(names, " "))
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"$cmd\" in\n")

	for _, c := range commands {
		fmt.Fprintf(&b, "    %s)\n", c.Name)

		if valued := bashFlagValues(c.Flags); valued != "" {
			b.WriteString("        case \"$prev\" in\n")
			b.WriteString(valued)
			b.WriteString("        esac\n")
		}

		var words []string
		for _, f := range c.Flags {
			words = append(words, "--"+f.Long)
			if f.Short != "" {
				words = append(words, "-"+f.Short)
			}
		}
		words = append(words, c.Args...)

		if c.TakesFiles {
			b.WriteString("        if [[ \"$cur\" != -* ]]; then\n")
			fmt.Fprintf(&b, "            COMPREPLY=($(compgen -f -X '!*.@(%s)' -- \"$cur\") $(compgen -d -- \"$cur\"))\n", globExtensions(c.FilePattern))
			b.WriteString("            return\n")
			b.WriteString("        fi\n")
		}
		if len(words) > 0 {
			fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W \"%s\" -- \"$cur\"))\n", strings.Join(words, " "))
		}
		b.WriteString("        ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("complete -F _nodedoc_completions nodedoc\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// bashFlagValues returns case arms completing values for flags that take one.
func bashFlagValues(flags []flagDef) string {
	var b strings.Builder
	for _, f := range flags {
		pattern := "--" + f.Long
		if f.Short != "" {
			pattern += "|-" + f.Short
		}
		switch f.Type {
		case flagEnum:
			fmt.Fprintf(&b, "        %s)\n            COMPREPLY=($(compgen -W \"%s\" -- \"$cur\"))\n            return ;;\n",
				pattern, strings.Join(f.Values, " "))
		case flagFile:
			fmt.Fprintf(&b, "        %s)\n            COMPREPLY=($(compgen -f -X '!*.@(%s)' -- \"$cur\") $(compgen -d -- \"$cur\"))\n            return ;;\n",
				pattern, globExtensions(f.FileGlob))
		case flagDir:
			fmt.Fprintf(&b, "        %s)\n            COMPREPLY=($(compgen -d -- \"$cur\"))\n            return ;;\n", pattern)
		case flagString, flagDuration:
			fmt.Fprintf(&b, "        %s)\n            return ;;\n", pattern)
		}
	}
	return b.String()
}

// ---------------------------------------------------------------------------
// Zsh
// ---------------------------------------------------------------------------

func generateZsh(w io.Writer) error {
	commands := getCommands()
	var b strings.Builder

	b.WriteString("#compdef nodedoc\n\n")
	b.WriteString("_nodedoc() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range commands {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"$words[2]\" in\n")

	for _, c := range commands {
		fmt.Fprintf(&b, "    %s)\n", c.Name)
		b.WriteString("        _arguments \\\n")
		for _, f := range c.Flags {
			fmt.Fprintf(&b, "            %s \\\n", zshFlagSpec(f))
		}
		switch {
		case c.TakesFiles:
			fmt.Fprintf(&b, "            '1:manifest:_files -g \"*.(%s)\"'\n", globExtensions(c.FilePattern))
		case len(c.Args) > 0:
			fmt.Fprintf(&b, "            '1:argument:(%s)'\n", strings.Join(c.Args, " "))
		default:
			b.WriteString("            '*::'\n")
		}
		b.WriteString("        ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("compdef _nodedoc nodedoc\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// zshFlagSpec formats one _arguments spec.
func zshFlagSpec(f flagDef) string {
	desc := zshEscape(f.Desc)
	var action string
	switch f.Type {
	case flagBool:
		action = ""
	case flagEnum:
		action = fmt.Sprintf(":%s:(%s)", f.Long, strings.Join(f.Values, " "))
	case flagFile:
		action = fmt.Sprintf(":%s:_files -g \"*.(%s)\"", f.Long, globExtensions(f.FileGlob))
	case flagDir:
		action = fmt.Sprintf(":%s:_directories", f.Long)
	default:
		action = fmt.Sprintf(":%s:", f.Long)
	}

	if f.Short != "" {
		return fmt.Sprintf("'(-%s --%s)'{-%s,--%s}'[%s]%s'", f.Short, f.Long, f.Short, f.Long, desc, action)
	}
	return fmt.Sprintf("'--%s[%s]%s'", f.Long, desc, action)
}

func zshEscape(s string) string {
	r := strings.NewReplacer("'", "'\\''", "[", "\\[", "]", "\\]", ":", "\\:")
	return r.Replace(s)
}

// ---------------------------------------------------------------------------
// Fish
// ---------------------------------------------------------------------------

func generateFish(w io.Writer) error {
	commands := getCommands()
	var b strings.Builder

	names := make([]string, 0, len(commands))
	for _, c := range commands {
		names = append(names, c.Name)
	}

	b.WriteString("# fish completion for nodedoc\n\n")
	b.WriteString("function __fish_nodedoc_needs_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -eq 1\n")
	b.WriteString("end\n\n")
	b.WriteString("function __fish_nodedoc_using_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -gt 1; and test $cmd[2] = $argv[1]\n")
	b.WriteString("end\n\n")
	b.WriteString("complete -c nodedoc -f\n")

	for _, c := range commands {
		fmt.Fprintf(&b, "complete -c nodedoc -n __fish_nodedoc_needs_command -a %s -d '%s'\n", c.Name, fishEscape(c.Desc))
	}
	b.WriteString("\n")

	for _, c := range commands {
		cond := fmt.Sprintf("'__fish_nodedoc_using_command %s'", c.Name)
		for _, f := range c.Flags {
			line := fmt.Sprintf("complete -c nodedoc -n %s -l %s", cond, f.Long)
			if f.Short != "" {
				line += " -s " + f.Short
			}
			switch f.Type {
			case flagEnum:
				line += fmt.Sprintf(" -x -a '%s'", strings.Join(f.Values, " "))
			case flagFile, flagDir:
				line += " -r -F"
			case flagString, flagDuration:
				line += " -x"
			}
			line += fmt.Sprintf(" -d '%s'", fishEscape(f.Desc))
			b.WriteString(line + "\n")
		}
		if c.TakesFiles {
			fmt.Fprintf(&b, "complete -c nodedoc -n %s -F\n", cond)
		}
		if len(c.Args) > 0 {
			fmt.Fprintf(&b, "complete -c nodedoc -n %s -a '%s'\n", cond, strings.Join(c.Args, " "))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func fishEscape(s string) string {
	return strings.ReplaceAll(s, "'", "\\'")
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: completion takes one shell name", ErrTooManyArgs)
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: nodedoc completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(nodedoc completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (after compinit):")
	fmt.Fprintln(w, "    eval \"$(nodedoc completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    nodedoc completion fish > ~/.config/fish/completions/nodedoc.fish")
}
