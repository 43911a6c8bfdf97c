package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/qblog/go-mdrender"
)

// stdoutClipboard writes copied text to a writer.
type stdoutClipboard struct {
	w io.Writer
}

func (c stdoutClipboard) WriteText(_ context.Context, text string) error {
	_, err := io.WriteString(c.w, text)
	return err
}

// runCopyCommand renders a file and copies one code block to stdout, or
// lists the copyable blocks when no id is given.
func runCopyCommand(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseCopyFlags(args, env.Stderr)
	if err != nil {
		return usageError(err)
	}
	if len(positional) == 0 {
		return ErrNoInput
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: copy takes one file, got %d", ErrUsage, len(positional))
	}

	s, err := newSession(flags.common, env)
	if err != nil {
		return err
	}

	content, err := os.ReadFile(positional[0]) // #nosec G304 -- user-provided path
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadMarkdown, err)
	}

	out, err := s.renderer().Convert(ctx, string(content))
	if err != nil {
		return err
	}
	index, err := mdrender.NewStashIndex(out)
	if err != nil {
		return err
	}

	if flags.id == "" {
		for _, c := range index.Controls() {
			fmt.Fprintf(env.Stdout, "%s\t%s\n", c.ID, c.Lang)
		}
		if index.Len() == 0 && !flags.common.quiet {
			fmt.Fprintf(env.Stderr, "no copyable code blocks (variant %q)\n", s.variant)
		}
		return nil
	}

	h := mdrender.NewCopyHandler(stdoutClipboard{w: env.Stdout}, index,
		mdrender.WithCopyLogger(s.logger),
		mdrender.WithCopyRecorder(s.recorder),
	)
	ok := h.Activate(ctx, flags.id)
	h.Wait()
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownBlock, flags.id)
	}
	if flags.common.verbose {
		fmt.Fprintln(env.Stderr, "metrics:")
		s.printMetrics(env.Stderr)
	}
	return nil
}
