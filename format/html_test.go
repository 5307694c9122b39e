package format

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/dhamidi/writedown/parser"
)

func renderHTML(t *testing.T, root *parser.Section, opts HTMLOptions) string {
	t.Helper()
	var buf bytes.Buffer
	if err := NewHTMLEncoder(&buf, opts).Encode(root); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	return buf.String()
}

func strPtr(s string) *string { return &s }

func TestHTMLEncoder(t *testing.T) {
	tests := []struct {
		name     string
		root     *parser.Section
		expected string
	}{
		{
			name:     "empty document",
			root:     &parser.Section{},
			expected: "",
		},
		{
			name: "paragraph joins sentences with newlines",
			root: &parser.Section{Children: []parser.Node{
				&parser.Paragraph{Children: []parser.Inline{
					parser.Sentence{Text: "one"}, parser.Sentence{Text: "two"},
				}},
			}},
			expected: "<p>one\ntwo</p>\n",
		},
		{
			name: "section heading level",
			root: &parser.Section{Children: []parser.Node{
				&parser.Section{Level: 2, Title: "Intro"},
			}},
			expected: "<section><h2>Intro</h2></section>\n",
		},
		{
			name: "heading level is clamped",
			root: &parser.Section{Children: []parser.Node{
				&parser.Section{Level: 9, Title: "deep"},
			}},
			expected: "<section><h6>deep</h6></section>\n",
		},
		{
			name: "code block is escaped",
			root: &parser.Section{Children: []parser.Node{
				&parser.Block{Kind: parser.BlockCode, Body: "a < b && c\n"},
			}},
			expected: "<pre><code>a &lt; b &amp;&amp; c\n</code></pre>\n",
		},
		{
			name: "link with block label",
			root: &parser.Section{Children: []parser.Node{
				&parser.Paragraph{Children: []parser.Inline{
					parser.Sentence{Text: "see "},
					&parser.FuncCall{Name: "link", Args: []string{"https://example.org"}, Block: strPtr("here")},
				}},
			}},
			expected: "<p>see <a href=\"https://example.org\">here</a></p>\n",
		},
		{
			name: "link with label argument",
			root: &parser.Section{Children: []parser.Node{
				&parser.Paragraph{Children: []parser.Inline{
					&parser.FuncCall{Name: "a", Args: []string{"/x", "label"}},
				}},
			}},
			expected: "<p><a href=\"/x\">label</a></p>\n",
		},
		{
			name: "emphasis functions",
			root: &parser.Section{Children: []parser.Node{
				&parser.Paragraph{Children: []parser.Inline{
					&parser.FuncCall{Name: "b", Args: []string{}, Block: strPtr("bold")},
					parser.Sentence{Text: " and "},
					&parser.FuncCall{Name: "em", Args: []string{"soft"}},
				}},
			}},
			expected: "<p><strong>bold</strong> and <em>soft</em></p>\n",
		},
		{
			name: "unknown function becomes span",
			root: &parser.Section{Children: []parser.Node{
				&parser.FuncCall{Name: "note", Args: []string{"x", "y"}, Block: strPtr("body")},
			}},
			expected: "<div><span class=\"wd-func\" data-func=\"note\" data-args=\"x,y\">body</span></div>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderHTML(t, tt.root, HTMLOptions{})
			if got != tt.expected {
				t.Errorf("Encode() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestHTMLEncoderParsedDocument(t *testing.T) {
	root, err := parser.Parse("hello\n= Title\nbody @<b>{bold} text\n```\nx\n```\n")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	got := renderHTML(t, root, HTMLOptions{})
	want := "<p>hello</p>\n" +
		"<section><h1>Title</h1><p>body <strong>bold</strong> text</p><pre><code>x\n</code></pre></section>\n"
	if got != want {
		t.Errorf("Encode() =\n%s\nwant\n%s", got, want)
	}
}

func TestHTMLEncoderStandalone(t *testing.T) {
	root := &parser.Section{Children: []parser.Node{
		&parser.Paragraph{Children: []parser.Inline{parser.Sentence{Text: "hi"}}},
	}}

	got := renderHTML(t, root, HTMLOptions{Standalone: true, Title: "Doc"})
	if !strings.HasPrefix(got, "<!DOCTYPE html>") {
		t.Errorf("standalone output does not start with a doctype: %q", got)
	}
	for _, want := range []string{"<title>Doc</title>", "<body><p>hi</p></body>", `<meta charset="utf-8"/>`} {
		if !strings.Contains(got, want) {
			t.Errorf("standalone output missing %q: %q", want, got)
		}
	}
}

func TestHTMLEncoderUnsupportedNode(t *testing.T) {
	root := &parser.Section{Children: []parser.Node{&parser.Unknown{Raw: "?"}}}

	var buf bytes.Buffer
	err := NewHTMLEncoder(&buf, HTMLOptions{}).Encode(root)
	if !errors.Is(err, ErrUnsupportedNode) {
		t.Fatalf("Encode() error = %v, want %v", err, ErrUnsupportedNode)
	}
	if buf.Len() != 0 {
		t.Errorf("Encode() wrote %q on error", buf.String())
	}
}
