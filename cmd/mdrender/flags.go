package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	variant string
	quiet   bool
	verbose bool
}

// renderFlags holds flags for the render command.
type renderFlags struct {
	common     commonFlags
	output     string
	workers    int
	standalone bool
	watch      bool
	date       string
	title      string
	lang       string
}

// copyFlags holds flags for the copy command.
type copyFlags struct {
	common commonFlags
	id     string
}

// variantsFlags holds flags for the variants command.
type variantsFlags struct {
	common commonFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVarP(&f.variant, "variant", "V", "", "renderer variant (default from config)")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs and metrics")
}

// newFlagSet creates a FlagSet that reports errors instead of exiting and
// prints usage to w.
func newFlagSet(name string, w io.Writer, usage func(io.Writer)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(w)
	fs.Usage = func() { usage(w) }
	return fs
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string, w io.Writer) (*renderFlags, []string, error) {
	f := &renderFlags{}
	fs := newFlagSet("render", w, printRenderUsage)

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.BoolVarP(&f.standalone, "standalone", "s", false, "write complete HTML pages")
	fs.BoolVar(&f.watch, "watch", false, "re-render a file when it changes")
	fs.StringVar(&f.date, "date", "", "standalone page date: auto[:FORMAT], mtime[:FORMAT] or literal")
	fs.StringVar(&f.title, "title", "", "standalone page title (default: first heading)")
	fs.StringVar(&f.lang, "lang", "", "standalone page language (default: en)")
	addCommonFlags(fs, &f.common)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseCopyFlags parses copy command flags and returns positional args.
func parseCopyFlags(args []string, w io.Writer) (*copyFlags, []string, error) {
	f := &copyFlags{}
	fs := newFlagSet("copy", w, printCopyUsage)

	fs.StringVar(&f.id, "id", "", "code block id, e.g. code-block-1 (empty = list)")
	addCommonFlags(fs, &f.common)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseVariantsFlags parses variants command flags.
func parseVariantsFlags(args []string, w io.Writer) (*variantsFlags, []string, error) {
	f := &variantsFlags{}
	fs := newFlagSet("variants", w, printVariantsUsage)
	addCommonFlags(fs, &f.common)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
