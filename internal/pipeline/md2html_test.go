package pipeline

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/yuin/goldmark/ast"

	"github.com/qblog/go-mdrender/internal/container"
)

func vuepressOptions() Options {
	return Options{
		CopyButton:     true,
		HighlightStyle: "github",
		AllowHTML:      true,
		HardWraps:      true,
		Linkify:        true,
		Typographer:    true,
	}
}

func githubOptions() Options {
	return Options{HighlightStyle: "github", Linkify: true}
}

func render(t *testing.T, e *Engine, src string) string {
	t.Helper()
	var buf bytes.Buffer
	if err := e.Render(&buf, []byte(src)); err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}
	return buf.String()
}

// ---------------------------------------------------------------------------
// TestNewEngine_Composition - Middleware installed per variant
// ---------------------------------------------------------------------------

func TestNewEngine_Composition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		opts        Options
		wantFence   int
		wantHeading int
		wantWrapper bool
	}{
		{"copy enabled", vuepressOptions(), 2, 1, true},
		{"copy disabled", githubOptions(), 1, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := NewEngine(tt.opts)
			if got := e.Depth(ast.KindFencedCodeBlock); got != tt.wantFence {
				t.Errorf("fence depth = %d, want %d", got, tt.wantFence)
			}
			if got := e.Depth(ast.KindHeading); got != tt.wantHeading {
				t.Errorf("heading depth = %d, want %d", got, tt.wantHeading)
			}
			if got := e.Depth(container.Kind); got != 0 {
				t.Errorf("container depth = %d, want 0", got)
			}

			out := render(t, e, "```go\nx := 1\n```\n")
			if got := strings.Contains(out, `class="code-block-wrapper"`); got != tt.wantWrapper {
				t.Errorf("copy wrapper present = %v, want %v\n%s", got, tt.wantWrapper, out)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestEngine_Render - Feature coverage through one engine
// ---------------------------------------------------------------------------

func TestEngine_Render(t *testing.T) {
	t.Parallel()

	e := NewEngine(vuepressOptions())

	tests := []struct {
		name  string
		input string
		want  []string
		avoid []string
	}{
		{
			name:  "highlighted fence",
			input: "```go\nfunc main() {}\n```\n",
			want:  []string{`data-lang="go"`, `class="chroma"`, `id="code-block-`},
		},
		{
			name:  "unknown language falls back to escaped text",
			input: "```nosuchlang\n<x>\n```\n",
			want:  []string{"&lt;x&gt;"},
			avoid: []string{"<x>"},
		},
		{
			name:  "diagram wrapped by copy control",
			input: "```plantuml\nAlice -> Bob\n```\n",
			want:  []string{`<div class="code-block-wrapper" data-lang="plantuml">`, `<div class="plantuml-diagram">`, ">Alice -&gt; Bob\n</textarea>"},
		},
		{
			name:  "heading id and anchor",
			input: "## Getting Started\n",
			want:  []string{`<h2 id="getting-started">Getting Started</h2>`, `<a class="header-anchor" href="#getting-started"`},
		},
		{
			name:  "container",
			input: ":::warning Mind the gap\nStep *carefully*\n:::\n",
			want:  []string{`<div class="custom-container warning">`, "Mind the gap</p>", "Step <em>carefully</em>"},
		},
		{
			name:  "hard wraps",
			input: "one\ntwo\n",
			want:  []string{"one<br />\ntwo"},
		},
		{
			name:  "raw html allowed",
			input: "a <span class=\"x\">b</span>\n",
			want:  []string{`<span class="x">b</span>`},
		},
		{
			name:  "linkify",
			input: "see https://example.com\n",
			want:  []string{`<a href="https://example.com">https://example.com</a>`},
		},
		{
			name:  "typographer",
			input: "\"quoted\"\n",
			want:  []string{"&ldquo;quoted&rdquo;"},
		},
		{
			name:  "tables",
			input: "| a | b |\n|---|---|\n| 1 | 2 |\n",
			want:  []string{"<table>", "<td>1</td>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := render(t, e, tt.input)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("output missing %q\ngot: %s", w, got)
				}
			}
			for _, a := range tt.avoid {
				if strings.Contains(got, a) {
					t.Errorf("output should not contain %q\ngot: %s", a, got)
				}
			}
		})
	}
}

func TestEngine_RawHTMLOmittedWhenDisallowed(t *testing.T) {
	t.Parallel()

	got := render(t, NewEngine(githubOptions()), "a <span>b</span>\n")
	if strings.Contains(got, "<span>") {
		t.Errorf("raw HTML rendered with AllowHTML off: %s", got)
	}
}

func TestEngine_SharedCounter(t *testing.T) {
	t.Parallel()

	var counter atomic.Uint64
	opts := vuepressOptions()
	opts.Counter = &counter
	e := NewEngine(opts)

	render(t, e, "```\na\n```\n\n```\nb\n```\n")
	if got := counter.Load(); got != 2 {
		t.Errorf("counter = %d, want 2", got)
	}
}

func TestEngine_OnDiagram(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	var results []error
	opts := githubOptions()
	opts.OnDiagram = func(err error) { results = append(results, err) }
	opts.DiagramEncoder = func(src []byte) (string, error) {
		if bytes.Contains(src, []byte("fail")) {
			return "", boom
		}
		return "PAYLOAD", nil
	}

	out := render(t, NewEngine(opts), "```puml\nok\n```\n\n```puml\nfail\n```\n")
	if len(results) != 2 || results[0] != nil || !errors.Is(results[1], boom) {
		t.Errorf("OnDiagram results = %v, want [nil boom]", results)
	}
	if !strings.Contains(out, "/svg/PAYLOAD") || !strings.Contains(out, `class="plantuml-error"`) {
		t.Errorf("unexpected output: %s", out)
	}
}

// ---------------------------------------------------------------------------
// TestEngine_Convert - Context handling
// ---------------------------------------------------------------------------

func TestEngine_Convert(t *testing.T) {
	t.Parallel()

	e := NewEngine(githubOptions())

	got, err := e.Convert(context.Background(), "# Title\n")
	if err != nil {
		t.Fatalf("Convert() unexpected error: %v", err)
	}
	if !strings.Contains(got, `<h1 id="title">Title</h1>`) {
		t.Errorf("Convert() = %q", got)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := e.Convert(ctx, "# Title\n"); !errors.Is(err, context.Canceled) {
		t.Errorf("Convert(canceled) error = %v, want context.Canceled", err)
	}
}
