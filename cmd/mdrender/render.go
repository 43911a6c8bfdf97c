package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/qblog/go-mdrender"
	"github.com/qblog/go-mdrender/internal/dateutil"
	"github.com/qblog/go-mdrender/internal/fileutil"
	"github.com/qblog/go-mdrender/internal/pipeline"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// RenderResult holds the outcome of a single file.
type RenderResult struct {
	InputPath  string
	OutputPath string
	Err        error
	Duration   time.Duration
}

// renderParams groups parameters shared across the files of a batch.
type renderParams struct {
	standalone bool
	title      string
	lang       string
	date       string
	now        time.Time
}

// runRenderCommand parses flags and runs the render command.
func runRenderCommand(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseRenderFlags(args, env.Stderr)
	if err != nil {
		return usageError(err)
	}
	return runRender(ctx, positional, flags, env)
}

// runRender orchestrates discovery, rendering and reporting.
func runRender(ctx context.Context, positional []string, flags *renderFlags, env *Environment) error {
	if flags.workers < 0 || flags.workers > mdrender.MaxWorkers {
		return fmt.Errorf("%w: %d (must be 0..%d, 0 means auto)", ErrInvalidWorkerCount, flags.workers, mdrender.MaxWorkers)
	}
	if len(positional) == 0 {
		return ErrNoInput
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: render takes one input, got %d", ErrUsage, len(positional))
	}

	s, err := newSession(flags.common, env)
	if err != nil {
		return err
	}

	outputDir := flags.output
	if outputDir == "" {
		outputDir = s.cfg.Output.DefaultDir
	}
	params := &renderParams{
		standalone: flags.standalone || s.cfg.Output.Standalone,
		title:      flags.title,
		lang:       flags.lang,
		date:       flags.date,
		now:        env.Now(),
	}
	if params.date == "" {
		params.date = s.envCfg.Date
	}
	// Validate the date once for the whole batch.
	if _, err := dateutil.Resolve(params.date, params.now, params.now); err != nil {
		return err
	}

	files, err := discoverFiles(positional[0], outputDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no markdown files found in %s", ErrNoInput, positional[0])
	}

	if flags.watch {
		if len(files) != 1 || files[0].InputPath != positional[0] {
			return fmt.Errorf("%w: --watch takes a single file", ErrUsage)
		}
		return watchFile(ctx, s, files[0], params, env)
	}

	workers := flags.workers
	if workers == 0 {
		workers = s.envCfg.Workers
	}
	workers = mdrender.ResolveWorkers(workers)
	s.logger.Debug("rendering", "files", len(files), "workers", workers, "variant", s.variant)

	results := renderBatch(ctx, s.renderer(), files, params, workers)

	failed := printResults(results, flags.common.quiet, flags.common.verbose, env)
	if flags.common.verbose {
		fmt.Fprintln(env.Stderr, "metrics:")
		s.printMetrics(env.Stderr)
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d file(s)", ErrRenderFailed, failed, len(results))
	}
	return nil
}

// renderBatch processes files concurrently with a fixed worker count. All
// workers share one renderer.
func renderBatch(ctx context.Context, r *mdrender.Renderer, files []FileToRender, params *renderParams, workers int) []RenderResult {
	if len(files) == 0 {
		return nil
	}
	workers = min(workers, len(files))

	results := make([]RenderResult, len(files))
	jobs := make(chan int, len(files))
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = RenderResult{InputPath: files[idx].InputPath, Err: ctx.Err()}
					continue
				}
				results[idx] = renderFile(ctx, r, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// renderFile renders a single file and writes its output.
func renderFile(ctx context.Context, r *mdrender.Renderer, f FileToRender, params *renderParams) (result RenderResult) {
	start := time.Now()
	result = RenderResult{InputPath: f.InputPath, OutputPath: f.OutputPath}
	defer func() { result.Duration = time.Since(start) }()

	info, err := os.Stat(f.InputPath)
	if err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrReadMarkdown, err)
		return result
	}
	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrReadMarkdown, err)
		return result
	}
	markdown := string(content)

	var out string
	if params.standalone {
		stamp, err := dateutil.Resolve(params.date, params.now, info.ModTime())
		if err != nil {
			result.Err = err
			return result
		}
		title := params.title
		if title == "" {
			title = documentTitle(markdown, f.InputPath)
		}
		out, err = r.Standalone(ctx, mdrender.Page{
			Title:    title,
			Lang:     params.lang,
			Markdown: markdown,
			DateText: stamp.Text,
			DateISO:  stamp.ISO,
		})
		if err != nil {
			result.Err = err
			return result
		}
	} else {
		out, err = r.Convert(ctx, markdown)
		if err != nil {
			result.Err = err
			return result
		}
	}

	out, err = pipeline.RewriteRelativePaths(out, filepath.Dir(f.InputPath), filepath.Dir(f.OutputPath))
	if err != nil {
		result.Err = fmt.Errorf("rewriting paths: %w", err)
		return result
	}

	if err := os.MkdirAll(filepath.Dir(f.OutputPath), dirPermissions); err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrWriteHTML, err)
		return result
	}
	if err := fileutil.WriteFileAtomic(f.OutputPath, []byte(out), filePermissions); err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrWriteHTML, err)
		return result
	}
	return result
}

var atxHeading = regexp.MustCompile(`(?m)^ {0,3}#{1,6}[ \t]+(.+?)(?:[ \t]+#+)?[ \t]*$`)

// documentTitle returns the first ATX heading of markdown, or the file name
// without extension.
func documentTitle(markdown, path string) string {
	if m := atxHeading.FindStringSubmatch(pipeline.Preprocess(markdown)); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

// printResults reports each result and returns the failure count.
func printResults(results []RenderResult, quiet, verbose bool, env *Environment) int {
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(env.Stderr, "FAIL %s: %v\n", r.InputPath, r.Err)
			continue
		}
		switch {
		case quiet:
		case verbose:
			fmt.Fprintf(env.Stdout, "%s -> %s (%s)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		default:
			fmt.Fprintf(env.Stdout, "%s -> %s\n", r.InputPath, r.OutputPath)
		}
	}
	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "rendered %d/%d file(s)\n", len(results)-failed, len(results))
	}
	return failed
}
