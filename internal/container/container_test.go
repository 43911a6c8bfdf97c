package container

import (
	"bytes"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"

	"github.com/qblog/go-mdrender/internal/chain"
)

func newMarkdown() goldmark.Markdown {
	c := chain.New()
	c.Fallback(html.NewRenderer())
	return goldmark.New(
		goldmark.WithExtensions(NewExtension(c)),
		goldmark.WithRendererOptions(
			renderer.WithNodeRenderers(util.Prioritized(c, chain.Priority)),
		),
	)
}

func render(t *testing.T, src string) string {
	t.Helper()
	var buf bytes.Buffer
	if err := newMarkdown().Convert([]byte(src), &buf); err != nil {
		t.Fatalf("Convert() unexpected error: %v", err)
	}
	return buf.String()
}

// ---------------------------------------------------------------------------
// TestContainer_Render - Container markup
// ---------------------------------------------------------------------------

func TestContainer_Render(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
		avoid []string
	}{
		{
			name:  "default title",
			input: ":::tip\nHello\n:::\n",
			want: []string{
				`<div class="custom-container tip">`,
				tipIcon + " TIP</p>",
				"Hello\n</div>",
			},
		},
		{
			name:  "custom title",
			input: ":::warning Careful Now\nBody\n:::\n",
			want:  []string{`<div class="custom-container warning">`, " Careful Now</p>"},
			avoid: []string{"WARNING"},
		},
		{
			name:  "space after marker and uppercase type",
			input: "::: DANGER\nx\n:::\n",
			want:  []string{`<div class="custom-container danger">`, " DANGER</p>"},
		},
		{
			name:  "info",
			input: ":::info\nfyi\n:::",
			want:  []string{`<div class="custom-container info">`, " INFO</p>"},
		},
		{
			name:  "title is escaped",
			input: ":::tip <b>bold</b>\nx\n:::\n",
			want:  []string{"&lt;b&gt;bold&lt;/b&gt;</p>"},
		},
		{
			name:  "body inline markup",
			input: ":::tip\nsome **bold** text\n:::\n",
			want:  []string{"some <strong>bold</strong> text"},
		},
		{
			name:  "body block syntax stays literal",
			input: ":::tip\n- item\n:::\n",
			want:  []string{"- item"},
			avoid: []string{"<ul>", "<li>"},
		},
		{
			name:  "interrupts paragraph",
			input: "para\n:::info\nbody\n:::\n",
			want:  []string{"<p>para</p>\n<div class=\"custom-container info\">"},
		},
		{
			name:  "parsing resumes after closer",
			input: ":::tip\na\n:::\n\nafter\n",
			want:  []string{"</div>\n<p>after</p>"},
		},
		{
			name:  "inside blockquote",
			input: "> :::tip\n> quoted\n> :::\n",
			want:  []string{"<blockquote>\n<div class=\"custom-container tip\">", "quoted\n</div>\n</blockquote>"},
			avoid: []string{"<p>:::</p>"},
		},
		{
			name:  "inside list item",
			input: "- :::info\n  listed\n  :::\n",
			want:  []string{"<li>", `<div class="custom-container info">`, "listed\n</div>"},
			avoid: []string{":::"},
		},
		{
			name:  "empty body",
			input: ":::tip\n:::\n",
			want:  []string{" TIP</p>\n</div>\n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := render(t, tt.input)
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

// ---------------------------------------------------------------------------
// TestContainer_NotAContainer - Openers that must stay plain text
// ---------------------------------------------------------------------------

func TestContainer_NotAContainer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"dangling opener", ":::tip\nUnterminated", "<p>:::tip\nUnterminated</p>\n"},
		{"unknown type", ":::note\nx\n:::", "<p>:::note\nx\n:::</p>\n"},
		{"type prefix only", ":::tipx\nx\n:::", "<p>:::tipx\nx\n:::</p>\n"},
		{
			"closer outside blockquote",
			"> :::tip\n> x\n\n:::\n",
			"<blockquote>\n<p>:::tip\nx</p>\n</blockquote>\n<p>:::</p>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := render(t, tt.input); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestContainer_CloserOutsideListItem(t *testing.T) {
	t.Parallel()

	got := render(t, "- :::tip\n  x\n\n:::\n")
	if strings.Contains(got, "custom-container") {
		t.Errorf("closer below the list item opened a container\ngot: %s", got)
	}
}

// ---------------------------------------------------------------------------
// TestLinePrefix - Enclosing block continuation
// ---------------------------------------------------------------------------

func TestLinePrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		raw    string
		line   string
		want   string
		wantOK bool
	}{
		{"top level", "", "  :::", "  :::", true},
		{"quote", "> ", "> :::", ":::", true},
		{"quote without space", ">", ">:::", ":::", true},
		{"quote indented marker", "> ", "   > :::", ":::", true},
		{"quote missing", "> ", ":::", "", false},
		{"quote blank line", "> ", "", "", false},
		{"list indent", "- ", "  :::", ":::", true},
		{"list under-indented", "- ", " :::", "", false},
		{"list blank line", "- ", "", "", true},
		{"quote then list", "> - ", ">   :::", ":::", true},
		{"quote then list missing indent", "> - ", "> :::", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := parsePrefix([]byte(tt.raw)).strip([]byte(tt.line))
			if ok != tt.wantOK {
				t.Fatalf("strip(%q) ok = %v, want %v", tt.line, ok, tt.wantOK)
			}
			if ok && string(got) != tt.want {
				t.Errorf("strip(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestNewNode - Metadata defaults
// ---------------------------------------------------------------------------

func TestNewNode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		typ       Type
		title     string
		wantTitle string
		wantColor string
	}{
		{Tip, "", "TIP", "#42b983"},
		{Warning, "", "WARNING", "#e7c000"},
		{Danger, "Stop", "Stop", "#cc0000"},
		{Info, "", "INFO", "#3b82f6"},
	}

	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			t.Parallel()
			n := NewNode(tt.typ, tt.title)
			if n.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", n.Title, tt.wantTitle)
			}
			if n.Color != tt.wantColor {
				t.Errorf("Color = %q, want %q", n.Color, tt.wantColor)
			}
			if n.Icon == "" {
				t.Error("Icon is empty")
			}
			if n.Kind() != Kind {
				t.Errorf("Kind() = %v, want %v", n.Kind(), Kind)
			}
		})
	}
}

func TestBlockParsers_DefaultsToAllTypes(t *testing.T) {
	t.Parallel()

	if got := len(BlockParsers()); got != len(Types) {
		t.Errorf("len(BlockParsers()) = %d, want %d", got, len(Types))
	}
	if got := len(BlockParsers(Tip)); got != 1 {
		t.Errorf("len(BlockParsers(Tip)) = %d, want 1", got)
	}
}
