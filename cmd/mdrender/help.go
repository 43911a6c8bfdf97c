package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdrender <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render     Render markdown files to HTML")
	fmt.Fprintln(w, "  copy       Copy a rendered code block's source to stdout")
	fmt.Fprintln(w, "  variants   List renderer variants")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'mdrender help <command>' for details on a specific command.")
}

// printCommonUsage prints the flags shared by every command.
func printCommonUsage(w io.Writer) {
	fmt.Fprintln(w, "Common:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -V, --variant <name>      Renderer variant (vuepress, github, or from config)")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs and metrics")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdrender render <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render markdown files to HTML fragments or standalone pages.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file or directory (.md, .markdown)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory (default: next to input)")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --watch               Re-render a single file when it changes")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Standalone pages:")
	fmt.Fprintln(w, "  -s, --standalone          Write complete HTML pages with theme CSS")
	fmt.Fprintln(w, "      --title <s>           Page title (default: first heading, then file name)")
	fmt.Fprintln(w, "      --lang <s>            Page language (default: en)")
	fmt.Fprintln(w, "      --date <s>            Date: \"auto\", \"mtime\", \"auto:FORMAT\", or literal")
	fmt.Fprintln(w, "                            Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D")
	fmt.Fprintln(w, "                            Presets (case-insensitive): iso, european, us, long")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printCopyUsage prints usage for the copy command.
func printCopyUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdrender copy <file> [--id code-block-N] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render a file and write the source of one code block to stdout.")
	fmt.Fprintln(w, "Without --id, list the code block ids and languages.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "      --id <id>             Code block id")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printVariantsUsage prints usage for the variants command.
func printVariantsUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdrender variants [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the effective renderer variants as YAML.")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return nil
	}

	switch args[0] {
	case "render":
		printRenderUsage(env.Stdout)
	case "copy":
		printCopyUsage(env.Stdout)
	case "variants":
		printVariantsUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: mdrender version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: mdrender help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		printUsage(env.Stderr)
		return fmt.Errorf("%w: %q", ErrUnknownCommand, args[0])
	}
	return nil
}
