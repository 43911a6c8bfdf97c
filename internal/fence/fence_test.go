package fence

import (
	"bytes"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"

	"github.com/qblog/go-mdrender/internal/chain"
	"github.com/qblog/go-mdrender/internal/plantuml"
)

func convert(t *testing.T, md goldmark.Markdown, src string) string {
	t.Helper()
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		t.Fatalf("Convert() unexpected error: %v", err)
	}
	return buf.String()
}

func newMarkdown(install ...chain.Middleware) goldmark.Markdown {
	c := chain.New()
	c.Fallback(html.NewRenderer())
	for _, mw := range install {
		c.Install(ast.KindFencedCodeBlock, mw)
	}
	return goldmark.New(goldmark.WithRendererOptions(
		renderer.WithNodeRenderers(util.Prioritized(c, chain.Priority)),
	))
}

func mustEncode(t *testing.T, s string) string {
	t.Helper()
	payload, err := plantuml.Encode([]byte(s))
	if err != nil {
		t.Fatalf("Encode() unexpected error: %v", err)
	}
	return payload
}

// ---------------------------------------------------------------------------
// TestDiagram - PlantUML fences
// ---------------------------------------------------------------------------

func TestDiagram(t *testing.T) {
	t.Parallel()

	md := newMarkdown(Diagram())
	payload := mustEncode(t, "Alice -> Bob\n")
	want := `<div class="plantuml-diagram"><img src="https://www.plantuml.com/plantuml/svg/` + payload +
		`" alt="PlantUML Diagram" loading="lazy" /></div>` + "\n"

	tests := []struct {
		name  string
		input string
	}{
		{"plantuml", "```plantuml\nAlice -> Bob\n```\n"},
		{"puml", "```puml\nAlice -> Bob\n```\n"},
		{"uppercase tag", "```PlantUML\nAlice -> Bob\n```\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(want, convert(t, md, tt.input)); diff != "" {
				t.Errorf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDiagram_OtherLanguagesDelegate(t *testing.T) {
	t.Parallel()

	plain := newMarkdown()
	wrapped := newMarkdown(Diagram())

	for _, src := range []string{
		"```go\nx := 1\n```\n",
		"```\nno language\n```\n",
		"```umlish\nA -> B\n```\n",
	} {
		if diff := cmp.Diff(convert(t, plain, src), convert(t, wrapped, src)); diff != "" {
			t.Errorf("Diagram changed non-diagram fence %q (-want +got):\n%s", src, diff)
		}
	}
}

func TestDiagram_Server(t *testing.T) {
	t.Parallel()

	md := newMarkdown(Diagram(WithServer("http://localhost:8080/png")))
	got := convert(t, md, "```puml\nA -> B\n```\n")
	if !strings.Contains(got, `src="http://localhost:8080/png/`) {
		t.Errorf("custom server not used: %s", got)
	}
}

func TestDiagram_EncodeFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("payload <rejected>")
	var reported error
	md := newMarkdown(Diagram(
		WithEncoder(func([]byte) (string, error) { return "", boom }),
		OnError(func(err error) { reported = err }),
	))

	got := convert(t, md, "```plantuml\nA -> B\n```\n")
	want := `<div class="plantuml-error">PlantUML render failed: payload &lt;rejected&gt;</div>` + "\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if !errors.Is(reported, boom) {
		t.Errorf("OnError received %v, want %v", reported, boom)
	}
}

func TestDiagram_TooLargeRendersError(t *testing.T) {
	t.Parallel()

	md := newMarkdown(Diagram())
	src := "```plantuml\n" + strings.Repeat("A -> B\n", plantuml.MaxSourceSize/7+1) + "```\n"
	got := convert(t, md, src)
	if !strings.HasPrefix(got, `<div class="plantuml-error">`) {
		t.Errorf("expected error element, got %.80q", got)
	}
}

// ---------------------------------------------------------------------------
// TestCopy - Copy decoration
// ---------------------------------------------------------------------------

func TestCopy(t *testing.T) {
	t.Parallel()

	var counter atomic.Uint64
	md := newMarkdown(Copy(&counter))

	got := convert(t, md, "```go\nfmt.Println(\"<hi>\")\n```\n")

	wants := []string{
		`<div class="code-block-wrapper" data-lang="go">`,
		`<span class="code-lang">go</span>`,
		`<button class="code-copy-btn" data-code-id="code-block-1"`,
		`<pre><code class="language-go">fmt.Println(&quot;&lt;hi&gt;&quot;)` + "\n</code></pre>\n",
		`<textarea class="code-data" id="code-block-1" style="position:absolute;left:-9999px;">fmt.Println(&quot;&lt;hi&gt;&quot;)` + "\n</textarea>",
	}
	for _, w := range wants {
		if !strings.Contains(got, w) {
			t.Errorf("output missing %q\ngot: %s", w, got)
		}
	}
	if !strings.HasSuffix(got, "</textarea>\n</div>\n") {
		t.Errorf("wrapper not closed: %q", got)
	}
}

func TestCopy_IdentifiersKeepIncreasing(t *testing.T) {
	t.Parallel()

	var counter atomic.Uint64
	md := newMarkdown(Copy(&counter))

	first := convert(t, md, "```\na\n```\n\n```\nb\n```\n")
	second := convert(t, md, "```\nc\n```\n")

	for _, id := range []string{"code-block-1", "code-block-2"} {
		if !strings.Contains(first, `id="`+id+`"`) {
			t.Errorf("first render missing %s", id)
		}
	}
	if !strings.Contains(second, `id="code-block-3"`) {
		t.Errorf("counter reset between renders: %s", second)
	}
}

func TestCopy_DefaultLabel(t *testing.T) {
	t.Parallel()

	var counter atomic.Uint64
	got := convert(t, newMarkdown(Copy(&counter)), "```\nplain\n```\n")
	if !strings.Contains(got, `data-lang="text"`) {
		t.Errorf("missing default label: %s", got)
	}
}

func TestCopy_WrapsDiagramWithSource(t *testing.T) {
	t.Parallel()

	var counter atomic.Uint64
	md := newMarkdown(Diagram(), Copy(&counter))

	got := convert(t, md, "```plantuml\nAlice -> Bob\n```\n")

	if !strings.HasPrefix(got, `<div class="code-block-wrapper" data-lang="plantuml">`) {
		t.Errorf("diagram not wrapped by copy control: %s", got)
	}
	if !strings.Contains(got, `<div class="plantuml-diagram"><img src=`) {
		t.Errorf("diagram image missing: %s", got)
	}
	if !strings.Contains(got, ">Alice -&gt; Bob\n</textarea>") {
		t.Errorf("stash does not hold the diagram source: %s", got)
	}
}

func TestBlockID(t *testing.T) {
	t.Parallel()

	if got := BlockID(7); got != "code-block-7" {
		t.Errorf("BlockID(7) = %q, want code-block-7", got)
	}
}
