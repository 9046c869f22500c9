package diary

import (
	"regexp"
	"strings"

	"github.com/Zuo-Peng/diarybook/internal/textparse"
)

// EntryNode is a diary entry header: "# 16.06.2018 21:00 Title".
type EntryNode struct {
	textparse.Base
	Timestamp string
	Title     string
}

// PeriodNode is a period line: "* 01.01.2018" or "* 01.01.2018-01.03.2018".
type PeriodNode struct {
	textparse.Base
	Period string
}

// TextNode is one line of body text.
type TextNode struct {
	textparse.Base
	Text string
}

var (
	entryPattern  = regexp.MustCompile(`^#\s?(?P<timestamp>\d+\.\d+\.\d+(?:\W\d+:\d+)?)\W+(?P<title>[\p{L}\p{N}_].*?)\s*$`)
	periodPattern = regexp.MustCompile(`^\W?\*\W?(?P<period>\d+\.\d+\.\d+(?:\s?-\s?\d+\.\d+\.\d+)?)`)
	textPattern   = regexp.MustCompile(`^(?P<text>\s*[^#*\s].*)$`)
)

var periodFinder = &textparse.Finder{
	Name:  "period",
	Start: periodPattern,
	Build: func(f map[string]string) (textparse.Node, error) {
		return &PeriodNode{Period: f["period"]}, nil
	},
}

var textFinder = &textparse.Finder{
	Name:  "text",
	Start: textPattern,
	Build: func(f map[string]string) (textparse.Node, error) {
		return &TextNode{Text: f["text"]}, nil
	},
}

// entryFinder lists the period finder before the text finder so a period
// line is never taken for body text.
var entryFinder = &textparse.Finder{
	Name:  "entry",
	Start: entryPattern,
	Build: func(f map[string]string) (textparse.Node, error) {
		return &EntryNode{Timestamp: f["timestamp"], Title: strings.TrimSpace(f["title"])}, nil
	},
	Children: []*textparse.Finder{periodFinder, textFinder},
}

// Text joins the entry's body lines.
func (e *EntryNode) Text() string {
	var lines []string
	for _, t := range textparse.NodesOf[*TextNode](e) {
		lines = append(lines, t.Text)
	}
	return strings.Join(lines, "\n")
}

// PeriodText is the raw token of the first period line, or "".
func (e *EntryNode) PeriodText() string {
	if p := textparse.NodesOf[*PeriodNode](e); len(p) > 0 {
		return p[0].Period
	}
	return ""
}
