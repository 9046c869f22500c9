// Package textparse walks a document line by line and builds a tree of
// typed nodes from a grammar of nested finders.
//
// A finder opens a node on a line matching its start pattern. While the node
// is open, each following line either closes it (end pattern), is handed to
// the first child finder whose start pattern matches, closes it because the
// finder's own start pattern matched again (a sibling begins), or is skipped.
// Child order is significant: the first matching child wins.
package textparse

import (
	"fmt"
	"regexp"
	"strings"
)

// Finder is one grammar rule.
type Finder struct {
	Name  string
	Start *regexp.Regexp
	// End closes the node and consumes the closing line. Without End a node
	// closes when a line matches Start again.
	End *regexp.Regexp
	// Build turns the named groups of the start line into a node.
	Build    func(fields map[string]string) (Node, error)
	Children []*Finder
}

// Mode selects how lines matching no finder are treated.
type Mode int

const (
	// Lenient skips unmatched lines.
	Lenient Mode = iota
	// Strict fails on the first unmatched non-blank line.
	Strict
)

func (m Mode) String() string {
	if m == Strict {
		return "strict"
	}
	return "lenient"
}

// SyntaxError reports a line that no finder recognised in strict mode.
type SyntaxError struct {
	Line int
	Text string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: unrecognised line %q", e.Line, e.Text)
}

// Parser drives a set of top-level finders over a document.
type Parser struct {
	Finders []*Finder
	Mode    Mode
	// OnSkip is called for every non-blank line skipped in lenient mode.
	OnSkip func(line int, text string)
}

// Parse wraps the whole document in a File node. The top-level finders
// see every line; the File never closes early.
func (p *Parser) Parse(text string) (*File, error) {
	return p.ParseLines(SplitLines(text))
}

func (p *Parser) ParseLines(lines []string) (*File, error) {
	root := &File{}
	root.setLine(1)
	c := NewCursor(lines)
	for {
		line, num, ok := c.Next()
		if !ok {
			return root, nil
		}
		child := firstMatch(p.Finders, line)
		if child == nil {
			if err := p.skip(num, line); err != nil {
				return nil, err
			}
			continue
		}
		c.Unread(1)
		n, err := p.find(child, c)
		if err != nil {
			return nil, err
		}
		if n != nil {
			root.appendChild(n)
		}
	}
}

// find runs f from the cursor: seek the start line, then collect children
// until the node closes or the stream ends.
func (p *Parser) find(f *Finder, c *Cursor) (Node, error) {
	var node Node
	for node == nil {
		line, num, ok := c.Next()
		if !ok {
			return nil, nil
		}
		fields, ok := matchStart(f.Start, line)
		if !ok {
			if err := p.skip(num, line); err != nil {
				return nil, err
			}
			continue
		}
		n, err := f.Build(fields)
		if err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", num, f.Name, err)
		}
		n.setLine(num)
		node = n
	}
	if len(f.Children) == 0 {
		return node, nil
	}

	for {
		line, num, ok := c.Next()
		if !ok {
			return node, nil
		}
		if f.End != nil && matches(f.End, line) {
			return node, nil
		}
		if child := firstMatch(f.Children, line); child != nil {
			c.Unread(1)
			n, err := p.find(child, c)
			if err != nil {
				return nil, err
			}
			if n != nil {
				node.appendChild(n)
			}
			continue
		}
		if f.End == nil && matches(f.Start, line) {
			c.Unread(1)
			return node, nil
		}
		if err := p.skip(num, line); err != nil {
			return nil, err
		}
	}
}

func (p *Parser) skip(num int, line string) error {
	if strings.TrimSpace(line) == "" {
		return nil
	}
	if p.Mode == Strict {
		return &SyntaxError{Line: num, Text: line}
	}
	if p.OnSkip != nil {
		p.OnSkip(num, line)
	}
	return nil
}

func firstMatch(finders []*Finder, line string) *Finder {
	for _, f := range finders {
		if matches(f.Start, line) {
			return f
		}
	}
	return nil
}

// matches reports whether re matches at the start of line.
func matches(re *regexp.Regexp, line string) bool {
	loc := re.FindStringIndex(line)
	return loc != nil && loc[0] == 0
}

func matchStart(re *regexp.Regexp, line string) (map[string]string, bool) {
	m := re.FindStringSubmatchIndex(line)
	if m == nil || m[0] != 0 {
		return nil, false
	}
	fields := make(map[string]string)
	for i, name := range re.SubexpNames() {
		if name == "" || m[2*i] < 0 {
			continue
		}
		fields[name] = line[m[2*i]:m[2*i+1]]
	}
	return fields, true
}
