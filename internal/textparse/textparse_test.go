package textparse

import (
	"errors"
	"reflect"
	"regexp"
	"testing"
)

type section struct {
	Base
	Name string
}

type block struct {
	Base
	Kind string
}

type item struct {
	Base
	Text string
}

type note struct {
	Base
	Text string
}

func itemFinder() *Finder {
	return &Finder{
		Name:  "item",
		Start: regexp.MustCompile(`^- (?P<text>.+)$`),
		Build: func(f map[string]string) (Node, error) { return &item{Text: f["text"]}, nil },
	}
}

func noteFinder() *Finder {
	return &Finder{
		Name:  "note",
		Start: regexp.MustCompile(`^(?P<text>[^\[\]=-].*)$`),
		Build: func(f map[string]string) (Node, error) { return &note{Text: f["text"]}, nil },
	}
}

func blockFinder() *Finder {
	return &Finder{
		Name:     "block",
		Start:    regexp.MustCompile(`^\[(?P<kind>\w+)\]$`),
		End:      regexp.MustCompile(`^\[end\]$`),
		Build:    func(f map[string]string) (Node, error) { return &block{Kind: f["kind"]}, nil },
		Children: []*Finder{itemFinder()},
	}
}

func sectionFinder() *Finder {
	return &Finder{
		Name:     "section",
		Start:    regexp.MustCompile(`^== (?P<name>.+)$`),
		Build:    func(f map[string]string) (Node, error) { return &section{Name: f["name"]}, nil },
		Children: []*Finder{blockFinder(), itemFinder(), noteFinder()},
	}
}

const doc = `== one
- a
first note

[list]
- b
- c
[end]
- d
== two
- e
[open]
- f`

func TestParseBuildsTree(t *testing.T) {
	p := &Parser{Finders: []*Finder{sectionFinder()}}
	file, err := p.Parse(doc)
	if err != nil {
		t.Fatal(err)
	}

	sections := ChildrenOf[*section](file)
	if len(sections) != 2 {
		t.Fatalf("got %d sections, want 2", len(sections))
	}
	if sections[0].Name != "one" || sections[1].Name != "two" {
		t.Fatalf("names = %q, %q", sections[0].Name, sections[1].Name)
	}
	if sections[0].Line() != 1 || sections[1].Line() != 10 {
		t.Fatalf("lines = %d, %d", sections[0].Line(), sections[1].Line())
	}

	kids := sections[0].Children()
	if len(kids) != 4 {
		t.Fatalf("section one has %d children, want 4", len(kids))
	}
	if _, ok := kids[2].(*block); !ok {
		t.Fatalf("third child is %T, want *block", kids[2])
	}
	// "- d" follows the closed block and belongs to the section again.
	if it, ok := kids[3].(*item); !ok || it.Text != "d" {
		t.Fatalf("fourth child = %#v", kids[3])
	}
}

func TestNodesOfIsPreOrderAcrossDepths(t *testing.T) {
	p := &Parser{Finders: []*Finder{sectionFinder()}}
	file, err := p.Parse(doc)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, it := range NodesOf[*item](file) {
		got = append(got, it.Text)
	}
	want := []string{"a", "b", "c", "d", "e", "f"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("items = %v, want %v", got, want)
	}
}

func TestUnclosedNodeAtEOFIsReturned(t *testing.T) {
	p := &Parser{Finders: []*Finder{sectionFinder()}}
	file, err := p.Parse(doc)
	if err != nil {
		t.Fatal(err)
	}
	blocks := NodesOf[*block](file)
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks", len(blocks))
	}
	open := blocks[1]
	if open.Kind != "open" || len(open.Children()) != 1 {
		t.Fatalf("open block = %#v", open)
	}
}

func TestChildOrderDecidesMatch(t *testing.T) {
	// A catch-all placed first swallows every line.
	greedy := &Finder{
		Name:  "all",
		Start: regexp.MustCompile(`^(?P<text>.+)$`),
		Build: func(f map[string]string) (Node, error) { return &note{Text: f["text"]}, nil },
	}
	sec := sectionFinder()
	sec.Children = []*Finder{greedy, itemFinder()}

	p := &Parser{Finders: []*Finder{sec}}
	file, err := p.Parse("== s\n- a\n- b")
	if err != nil {
		t.Fatal(err)
	}
	if n := len(NodesOf[*item](file)); n != 0 {
		t.Fatalf("got %d items, want 0", n)
	}
	if n := len(NodesOf[*note](file)); n != 2 {
		t.Fatalf("got %d notes, want 2", n)
	}
}

func TestLenientSkipsUnmatchedLines(t *testing.T) {
	var skipped []int
	p := &Parser{
		Finders: []*Finder{sectionFinder()},
		OnSkip:  func(line int, _ string) { skipped = append(skipped, line) },
	}
	file, err := p.Parse("preamble\n\n== s\n]odd[\n- a")
	if err != nil {
		t.Fatal(err)
	}
	if len(NodesOf[*item](file)) != 1 {
		t.Fatal("item lost")
	}
	if !reflect.DeepEqual(skipped, []int{1, 4}) {
		t.Fatalf("skipped = %v", skipped)
	}
}

func TestStrictFailsOnUnmatchedLine(t *testing.T) {
	p := &Parser{Finders: []*Finder{sectionFinder()}, Mode: Strict}
	_, err := p.Parse("== s\n- a\n\n]odd[\n")
	var se *SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *SyntaxError", err)
	}
	if se.Line != 4 || se.Text != "]odd[" {
		t.Fatalf("syntax error = %+v", se)
	}

	if _, err := p.Parse("== s\n\n- a\n"); err != nil {
		t.Fatalf("blank lines must be tolerated: %v", err)
	}
}

func TestBuildErrorIsWrappedWithLine(t *testing.T) {
	boom := errors.New("boom")
	f := itemFinder()
	f.Build = func(map[string]string) (Node, error) { return nil, boom }
	p := &Parser{Finders: []*Finder{f}}
	_, err := p.Parse("x\n- a")
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}

func TestParseIsIdempotent(t *testing.T) {
	p := &Parser{Finders: []*Finder{sectionFinder()}}
	a, err := p.Parse(doc)
	if err != nil {
		t.Fatal(err)
	}
	b, err := p.Parse(doc)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatal("two parses of the same text differ")
	}
}

func TestEmptyDocument(t *testing.T) {
	p := &Parser{Finders: []*Finder{sectionFinder()}}
	file, err := p.Parse("")
	if err != nil {
		t.Fatal(err)
	}
	if len(file.Children()) != 0 {
		t.Fatal("empty document has children")
	}
}

func TestCursor(t *testing.T) {
	c := NewCursor(SplitLines("a\r\nb\nc\n"))
	if l, n, _ := c.Next(); l != "a" || n != 1 {
		t.Fatalf("got %q %d", l, n)
	}
	c.Next()
	if prev, _ := c.Prev(); prev != "b" {
		t.Fatalf("prev = %q", prev)
	}
	c.Unread(5)
	if c.Pos() != 0 {
		t.Fatalf("pos = %d", c.Pos())
	}
	c.Next()
	c.Next()
	l, n, ok := c.Next()
	if !ok || l != "c" || n != 3 {
		t.Fatalf("got %q %d %v", l, n, ok)
	}
	if _, _, ok := c.Next(); ok {
		t.Fatal("expected end of stream")
	}
}
