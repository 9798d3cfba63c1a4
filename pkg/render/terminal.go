package render

import (
	"strings"
	"unicode"

	"scandoc_cli/pkg/ui/styles"

	"github.com/mattn/go-runewidth"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

type style uint8

const (
	styleBold style = 1 << iota
	styleItalic
	styleCode
)

type span struct {
	text  string
	style style
}

type block struct {
	spans []span
	pre   bool
}

type segment struct {
	text  string
	style style
}

// word is a run of non-space text that may change style mid-way, as in
// "<b>3</b>rd".
type word []segment

func (w word) width() int {
	n := 0
	for _, seg := range w {
		n += runewidth.StringWidth(seg.text)
	}
	return n
}

type styler func(text string, st style) string

// Terminal renders an output fragment as styled terminal text wrapped to
// width. A width <= 0 disables wrapping.
func Terminal(fragment string, width int) string {
	return renderBlocks(parseBlocks(fragment), width, lipglossStyler)
}

// Text renders an output fragment as plain text wrapped to width.
func Text(fragment string, width int) string {
	return renderBlocks(parseBlocks(fragment), width, plainStyler)
}

func plainStyler(text string, _ style) string {
	return text
}

func lipglossStyler(text string, st style) string {
	switch {
	case st&styleCode != 0:
		return styles.CodeStyle.Render(text)
	case st&styleBold != 0 && st&styleItalic != 0:
		return styles.TextBoldStyle.Italic(true).Render(text)
	case st&styleBold != 0:
		return styles.TextBoldStyle.Render(text)
	case st&styleItalic != 0:
		return styles.TextItalicStyle.Render(text)
	default:
		return styles.TextStyle.Render(text)
	}
}

func isBlockTag(a atom.Atom) bool {
	switch a {
	case atom.P, atom.Div, atom.Pre, atom.Li, atom.Ul, atom.Ol,
		atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6,
		atom.Blockquote, atom.Table, atom.Tr, atom.Section, atom.Article:
		return true
	}
	return false
}

func parseBlocks(fragment string) []block {
	z := html.NewTokenizer(strings.NewReader(fragment))

	var (
		blocks                           []block
		cur                              block
		bold, italic, code, pre, skipped int
	)

	currentStyle := func() style {
		var st style
		if bold > 0 {
			st |= styleBold
		}
		if italic > 0 {
			st |= styleItalic
		}
		if code > 0 {
			st |= styleCode
		}
		return st
	}
	endBlock := func(force bool) {
		if force || cur.hasText() {
			blocks = append(blocks, cur)
		}
		cur = block{}
	}

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			// io.EOF or a malformed tail; either way the fragment is done.
			endBlock(false)
			return blocks

		case html.TextToken:
			if skipped > 0 {
				continue
			}
			cur.spans = append(cur.spans, span{text: string(z.Text()), style: currentStyle()})
			if pre > 0 {
				cur.pre = true
			}

		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			a := atom.Lookup(name)
			switch {
			case a == atom.Br:
				endBlock(true)
			case isBlockTag(a):
				endBlock(false)
				if a == atom.Pre && tt == html.StartTagToken {
					pre++
				}
			case tt == html.SelfClosingTagToken:
			case a == atom.B || a == atom.Strong:
				bold++
			case a == atom.I || a == atom.Em:
				italic++
			case a == atom.Code:
				code++
			case a == atom.Script || a == atom.Style:
				skipped++
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			a := atom.Lookup(name)
			switch {
			case isBlockTag(a):
				endBlock(false)
				if a == atom.Pre && pre > 0 {
					pre--
				}
			case (a == atom.B || a == atom.Strong) && bold > 0:
				bold--
			case (a == atom.I || a == atom.Em) && italic > 0:
				italic--
			case a == atom.Code && code > 0:
				code--
			case (a == atom.Script || a == atom.Style) && skipped > 0:
				skipped--
			}
		}
	}
}

func (b block) hasText() bool {
	for _, sp := range b.spans {
		if b.pre && sp.text != "" {
			return true
		}
		if strings.TrimSpace(sp.text) != "" {
			return true
		}
	}
	return false
}

func renderBlocks(blocks []block, width int, render styler) string {
	var lines []string
	for _, b := range blocks {
		if b.pre {
			lines = append(lines, renderPre(b, width, render)...)
			continue
		}
		lines = append(lines, wrapWords(splitWords(b.spans), width, render)...)
	}
	return strings.Join(lines, "\n")
}

func renderPre(b block, width int, render styler) []string {
	var sb strings.Builder
	for _, sp := range b.spans {
		sb.WriteString(sp.text)
	}
	text := strings.TrimPrefix(sb.String(), "\n")
	text = strings.TrimSuffix(text, "\n")

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.ReplaceAll(line, "\t", "    ")
		for _, part := range splitByWidth(line, width) {
			lines = append(lines, render(part, styleCode))
		}
	}
	return lines
}

func splitWords(spans []span) []word {
	var (
		words    []word
		cur      word
		buf      strings.Builder
		bufStyle style
	)
	flushSegment := func() {
		if buf.Len() > 0 {
			cur = append(cur, segment{text: buf.String(), style: bufStyle})
			buf.Reset()
		}
	}
	flushWord := func() {
		flushSegment()
		if len(cur) > 0 {
			words = append(words, cur)
			cur = nil
		}
	}

	for _, sp := range spans {
		if sp.style != bufStyle {
			flushSegment()
			bufStyle = sp.style
		}
		for _, r := range sp.text {
			if unicode.IsSpace(r) {
				flushWord()
				continue
			}
			buf.WriteRune(r)
		}
	}
	flushWord()
	return words
}

func wrapWords(words []word, width int, render styler) []string {
	if len(words) == 0 {
		return []string{""}
	}

	var (
		lines     []string
		line      strings.Builder
		lineWidth int
	)
	flush := func() {
		lines = append(lines, line.String())
		line.Reset()
		lineWidth = 0
	}
	emit := func(w word) {
		for _, seg := range w {
			line.WriteString(render(seg.text, seg.style))
		}
	}

	for _, w := range words {
		for _, part := range splitWord(w, width) {
			partWidth := part.width()
			if width > 0 && lineWidth > 0 && lineWidth+1+partWidth > width {
				flush()
			}
			if lineWidth > 0 {
				line.WriteString(" ")
				lineWidth++
			}
			emit(part)
			lineWidth += partWidth
		}
	}
	if lineWidth > 0 {
		flush()
	}
	return lines
}

// splitWord breaks a word wider than width into width-sized pieces.
func splitWord(w word, width int) []word {
	if width <= 0 || w.width() <= width {
		return []word{w}
	}

	var (
		parts        []word
		cur          word
		buf          strings.Builder
		curWidth     int
		segmentStyle style
	)
	flushSegment := func() {
		if buf.Len() > 0 {
			cur = append(cur, segment{text: buf.String(), style: segmentStyle})
			buf.Reset()
		}
	}

	for _, seg := range w {
		flushSegment()
		segmentStyle = seg.style
		for _, r := range seg.text {
			rw := runewidth.RuneWidth(r)
			if curWidth+rw > width && curWidth > 0 {
				flushSegment()
				parts = append(parts, cur)
				cur = nil
				curWidth = 0
			}
			buf.WriteRune(r)
			curWidth += rw
		}
	}
	flushSegment()
	if len(cur) > 0 {
		parts = append(parts, cur)
	}
	return parts
}

func splitByWidth(text string, width int) []string {
	if width <= 0 || text == "" {
		return []string{text}
	}

	var parts []string
	var sb strings.Builder
	currentWidth := 0

	for _, r := range text {
		runeWidth := runewidth.RuneWidth(r)
		if currentWidth+runeWidth > width && currentWidth > 0 {
			parts = append(parts, sb.String())
			sb.Reset()
			currentWidth = 0
		}
		sb.WriteRune(r)
		currentWidth += runeWidth
	}

	if sb.Len() > 0 {
		parts = append(parts, sb.String())
	}
	return parts
}
