package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/Zuo-Peng/diarybook/internal/book"
)

const (
	colorReset   = "\033[0m"
	colorTitle   = "\033[1;34m" // bold blue
	colorGap     = "\033[1;35m" // bold magenta for photo-only chapters
	colorPhoto   = "\033[32m"
	colorDim     = "\033[2m"
	colorBoldRed = "\033[1;31m" // bold red for keyword highlights
)

type Options struct {
	Width      int    // wrap width (0 = no wrap)
	Query      string // words to highlight
	MaxPhotos  int    // photos listed per chapter (0 = all)
	ShowPeriod bool   // print the diary period line under the header
}

// highlightKeywords wraps case-insensitive matches of query terms in bold red ANSI codes.
func highlightKeywords(text, query string) string {
	if query == "" {
		return text
	}
	for _, term := range strings.Fields(query) {
		lower := strings.ToLower(term)
		i := 0
		for i < len(text) {
			tail := strings.ToLower(text[i:])
			if len(tail) != len(text)-i || len(lower) != len(term) {
				break // case folding moved byte offsets
			}
			idx := strings.Index(tail, lower)
			if idx < 0 {
				break
			}
			pos := i + idx
			orig := text[pos : pos+len(term)]
			replacement := colorBoldRed + orig + colorReset
			text = text[:pos] + replacement + text[pos+len(term):]
			i = pos + len(replacement)
		}
	}
	return text
}

// indentLines prepends each line of text with the given prefix.
func indentLines(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

// wrapLine breaks a single line into multiple lines that fit within maxWidth
// visible columns, correctly skipping ANSI escape sequences when measuring width.
func wrapLine(line string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{line}
	}

	var result []string
	var cur strings.Builder
	visW := 0

	i := 0
	for i < len(line) {
		// check for ANSI escape sequence: ESC[ ... m
		if i+1 < len(line) && line[i] == '\033' && line[i+1] == '[' {
			j := i + 2
			for j < len(line) && line[j] != 'm' {
				j++
			}
			if j < len(line) {
				j++ // include 'm'
			}
			cur.WriteString(line[i:j])
			i = j
			continue
		}

		r, size := utf8.DecodeRuneInString(line[i:])
		rw := runewidth.RuneWidth(r)

		if visW+rw > maxWidth {
			result = append(result, cur.String())
			cur.Reset()
			visW = 0
		}

		cur.WriteRune(r)
		visW += rw
		i += size
	}

	if cur.Len() > 0 {
		result = append(result, cur.String())
	}

	if len(result) == 0 {
		return []string{""}
	}
	return result
}

// RenderChapter renders one chapter for the terminal: a header with the
// dates, each entry's title and text, then the photo list.
func RenderChapter(c book.Chapter, opts Options) string {
	var b strings.Builder
	writeLine := func(s string) {
		for _, wl := range wrapLine(s, opts.Width) {
			b.WriteString(wl)
			b.WriteString("\n")
		}
	}

	if c.IsGap() {
		writeLine(fmt.Sprintf("%s--- %s (photos only) ---%s", colorGap, c.DateRange(), colorReset))
	} else {
		writeLine(fmt.Sprintf("%s--- %s ---%s", colorDim, c.DateRange(), colorReset))
	}
	if opts.ShowPeriod && c.PeriodLine() != "" {
		writeLine(colorDim + c.PeriodLine() + colorReset)
	}

	for _, e := range c.Entries {
		writeLine("")
		writeLine(fmt.Sprintf("%s%s%s %s%s (line %d)%s",
			colorTitle, highlightKeywords(e.Title, opts.Query), colorReset,
			colorDim, e.Timestamp.Format("02.01.2006 15:04"), e.Line, colorReset))
		if e.Body == "" {
			continue
		}
		text := indentLines(highlightKeywords(e.Body, opts.Query), "  ")
		for _, l := range strings.Split(text, "\n") {
			writeLine(l)
		}
	}

	if len(c.Photos) > 0 {
		writeLine("")
		writeLine(fmt.Sprintf("%s%d photos%s", colorPhoto, len(c.Photos), colorReset))
		for i, p := range c.Photos {
			if opts.MaxPhotos > 0 && i >= opts.MaxPhotos {
				writeLine(fmt.Sprintf("%s  ... (%d more)%s", colorDim, len(c.Photos)-i, colorReset))
				break
			}
			shape := p.Shape()
			if p.Orientation > 1 {
				shape += ", " + p.OrientationName()
			}
			writeLine(fmt.Sprintf("  %s %s%s %s%s",
				p.Timestamp.Format("02.01.2006 15:04"), colorDim, shape, p.Path, colorReset))
		}
	}
	return b.String()
}

// RenderBook renders every chapter, separated by blank lines.
func RenderBook(chapters []book.Chapter, opts Options) string {
	parts := make([]string, len(chapters))
	for i, c := range chapters {
		parts[i] = RenderChapter(c, opts)
	}
	return strings.Join(parts, "\n")
}
