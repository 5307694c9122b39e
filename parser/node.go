package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// Node is implemented by every node of the document tree.
type Node interface {
	node()
}

// Inline is implemented by the children of a Paragraph.
type Inline interface {
	inline()
}

// Section is a heading and everything after it. The root of a document is
// a Section with level 0 and an empty title.
type Section struct {
	Level    int
	Title    string
	Children []Node
}

func (*Section) node() {}

// Paragraph holds at least one child.
type Paragraph struct {
	Children []Inline
}

func (*Paragraph) node() {}

type BlockKind int

const (
	BlockCode BlockKind = iota
)

func (k BlockKind) String() string {
	if k == BlockCode {
		return "Code"
	}
	return "Unknown"
}

// Block is a verbatim body, e.g. the inside of a fenced code block.
type Block struct {
	Kind BlockKind
	Body string
}

func (*Block) node() {}

// FuncCall is "@<name>(arg, ...){block}". Args is never nil for parsed
// calls; Block is nil when no block followed the call.
type FuncCall struct {
	Name  string
	Args  []string
	Block *string
}

func (*FuncCall) node()   {}
func (*FuncCall) inline() {}

// Sentence is a run of plain text.
type Sentence struct {
	Text string
}

func (Sentence) inline() {}

// Unknown carries raw text no other node describes.
type Unknown struct {
	Raw string
}

func (*Unknown) node() {}

func (s *Section) AddChild(child Node) {
	if child != nil {
		s.Children = append(s.Children, child)
	}
}

// Sections returns the direct child sections of s.
func (s *Section) Sections() []*Section {
	var result []*Section
	for _, child := range s.Children {
		if sec, ok := child.(*Section); ok {
			result = append(result, sec)
		}
	}
	return result
}

// Walk visits n and its descendants depth-first. Returning false from fn
// skips the children of the node just visited. Paragraph children are not
// Nodes and are not visited, except function calls.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	switch n := n.(type) {
	case *Section:
		for _, child := range n.Children {
			Walk(child, fn)
		}
	case *Paragraph:
		for _, child := range n.Children {
			if call, ok := child.(*FuncCall); ok {
				Walk(call, fn)
			}
		}
	}
}

func (s *Section) String() string {
	var sb strings.Builder
	writeNode(&sb, s, 0)
	return sb.String()
}

func writeNode(sb *strings.Builder, n Node, indent int) {
	prefix := strings.Repeat("  ", indent)
	switch n := n.(type) {
	case *Section:
		fmt.Fprintf(sb, "%sSection %d %q\n", prefix, n.Level, n.Title)
		for _, child := range n.Children {
			writeNode(sb, child, indent+1)
		}
	case *Paragraph:
		fmt.Fprintf(sb, "%sParagraph\n", prefix)
		for _, child := range n.Children {
			switch c := child.(type) {
			case Sentence:
				fmt.Fprintf(sb, "%s  Sentence %q\n", prefix, c.Text)
			case *FuncCall:
				writeNode(sb, c, indent+1)
			}
		}
	case *Block:
		fmt.Fprintf(sb, "%sBlock %s %q\n", prefix, n.Kind, n.Body)
	case *FuncCall:
		fmt.Fprintf(sb, "%sFunc %q", prefix, n.Name)
		if len(n.Args) > 0 {
			quoted := make([]string, len(n.Args))
			for i, arg := range n.Args {
				quoted[i] = strconv.Quote(arg)
			}
			fmt.Fprintf(sb, " (%s)", strings.Join(quoted, ", "))
		}
		if n.Block != nil {
			fmt.Fprintf(sb, " {%q}", *n.Block)
		}
		sb.WriteString("\n")
	case *Unknown:
		fmt.Fprintf(sb, "%sUnknown %q\n", prefix, n.Raw)
	}
}
