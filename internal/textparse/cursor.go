package textparse

import "strings"

// Cursor walks a materialized slice of lines and can step back so a line
// is offered again to another finder.
type Cursor struct {
	lines []string
	pos   int
}

func NewCursor(lines []string) *Cursor {
	return &Cursor{lines: lines}
}

// SplitLines splits text on \n and drops a trailing \r from each line.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Next returns the next line and its 1-based line number.
func (c *Cursor) Next() (string, int, bool) {
	if c.pos >= len(c.lines) {
		return "", 0, false
	}
	c.pos++
	return c.lines[c.pos-1], c.pos, true
}

// Prev returns the most recently read line without moving.
func (c *Cursor) Prev() (string, bool) {
	if c.pos == 0 {
		return "", false
	}
	return c.lines[c.pos-1], true
}

// Unread steps back n lines, never before the first line.
func (c *Cursor) Unread(n int) {
	c.pos -= n
	if c.pos < 0 {
		c.pos = 0
	}
}

// Pos is the number of lines consumed so far.
func (c *Cursor) Pos() int {
	return c.pos
}
