package format

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/dhamidi/writedown/parser"
)

func TestJSONEncoder(t *testing.T) {
	root, err := parser.Parse("intro\n= Part\n@<f>(a, b){c}\n```\nx\n```\n")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	var buf bytes.Buffer
	if err := NewJSONEncoder(&buf).Encode(root); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	var got jsonNode
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}

	if got.Kind != "section" || got.Level == nil || *got.Level != 0 {
		t.Fatalf("root = %+v, want level 0 section", got)
	}
	if len(got.Children) != 2 {
		t.Fatalf("root has %d children, want 2", len(got.Children))
	}
	if p := got.Children[0]; p.Kind != "paragraph" || p.Children[0].Text != "intro" {
		t.Errorf("first child = %+v, want paragraph with sentence \"intro\"", p)
	}

	part := got.Children[1]
	if part.Title == nil || *part.Title != "Part" || *part.Level != 1 {
		t.Fatalf("second child = %+v, want section \"Part\"", part)
	}
	if len(part.Children) != 2 {
		t.Fatalf("section has %d children, want 2", len(part.Children))
	}
	call := part.Children[0].Children[0]
	if call.Kind != "func" || call.Name != "f" || len(call.Args) != 2 || call.Block == nil || *call.Block != "c" {
		t.Errorf("call = %+v, want f(a, b){c}", call)
	}
	block := part.Children[1]
	if block.Kind != "block" || block.Type != "Code" || block.Body == nil || *block.Body != "x\n" {
		t.Errorf("block = %+v, want code block \"x\\n\"", block)
	}
}

func TestJSONEncoderUnsupportedNode(t *testing.T) {
	root := &parser.Section{Children: []parser.Node{&parser.Paragraph{Children: []parser.Inline{nil}}}}

	var buf bytes.Buffer
	if err := NewJSONEncoder(&buf).Encode(root); !errors.Is(err, ErrUnsupportedNode) {
		t.Errorf("Encode() error = %v, want %v", err, ErrUnsupportedNode)
	}
}

func TestNew(t *testing.T) {
	for _, name := range Names {
		if _, err := New(name, &bytes.Buffer{}, HTMLOptions{}); err != nil {
			t.Errorf("New(%q) error: %v", name, err)
		}
	}
	if _, err := New("pdf", &bytes.Buffer{}, HTMLOptions{}); err == nil {
		t.Error("New(\"pdf\") returned no error")
	}
}

func TestTreeEncoder(t *testing.T) {
	root := &parser.Section{Children: []parser.Node{&parser.Section{Level: 1, Title: "a"}}}

	var buf bytes.Buffer
	if err := NewTreeEncoder(&buf).Encode(root); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	want := "Section 0 \"\"\n  Section 1 \"a\"\n"
	if buf.String() != want {
		t.Errorf("Encode() = %q, want %q", buf.String(), want)
	}
}
