package render

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/exp/golden"
)

const goldenFragment = `<p>Found <b>3</b> chunks from <i>report.pdf</i>:</p>` +
	`<p>Chunk 1: revenue grew &amp; costs &quot;fell&quot;</p>` +
	"line one<br>line two<pre>func main() {\n\tfmt.Println(\"hi\")\n}</pre>" +
	`<p>done</p>`

func TestTextGolden(t *testing.T) {
	out := Text(goldenFragment, 30) + "\n"
	golden.RequireEqual(t, []byte(out))
}

func TestText(t *testing.T) {
	tests := []struct {
		name     string
		fragment string
		width    int
		want     string
	}{
		{name: "paragraph", fragment: "<p>world</p>", width: 80, want: "world"},
		{name: "loading", fragment: Loading(), width: 80, want: "Processing..."},
		{name: "error", fragment: "<p>Error: Network down</p>", width: 80, want: "Error: Network down"},
		{name: "empty", fragment: "", width: 80, want: ""},
		{name: "empty paragraph", fragment: "<p></p>", width: 80, want: ""},
		{name: "entities", fragment: "<p>a &lt; b &amp;&amp; c</p>", width: 80, want: "a < b && c"},
		{name: "collapses whitespace", fragment: "<p>  spaced\n\tout   text </p>", width: 80, want: "spaced out text"},
		{name: "glued styles", fragment: "<p><b>3</b>rd place</p>", width: 80, want: "3rd place"},
		{name: "line breaks", fragment: "<p>a<br>b<br/><br>c</p>", width: 80, want: "a\nb\n\nc"},
		{name: "two paragraphs", fragment: "<p>one</p><p>two</p>", width: 80, want: "one\ntwo"},
		{name: "wraps", fragment: "<p>alpha beta gamma</p>", width: 10, want: "alpha beta\ngamma"},
		{name: "splits long words", fragment: "<p>abcdefghij</p>", width: 4, want: "abcd\nefgh\nij"},
		{name: "no wrap", fragment: "<p>alpha beta gamma</p>", width: 0, want: "alpha beta gamma"},
		{name: "drops script", fragment: "<p>hi<script>alert(1)</script></p>", width: 80, want: "hi"},
		{name: "unknown tags keep text", fragment: "<p><span class=\"x\">kept</span></p>", width: 80, want: "kept"},
		{name: "list items", fragment: "<ul><li>one</li><li>two</li></ul>", width: 80, want: "one\ntwo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Text(tt.fragment, tt.width); got != tt.want {
				t.Errorf("Text(%q, %d) = %q, want %q", tt.fragment, tt.width, got, tt.want)
			}
		})
	}
}

func TestTerminalMatchesTextWhenStripped(t *testing.T) {
	fragments := []string{
		goldenFragment,
		"<p>plain</p>",
		"<p><b>bold</b> and <em>italic</em> and <code>code()</code></p>",
	}
	for _, f := range fragments {
		styled := Terminal(f, 30)
		if got, want := ansi.Strip(styled), Text(f, 30); got != want {
			t.Errorf("Stripped Terminal() = %q, want %q", got, want)
		}
	}
}
