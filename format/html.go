package format

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dhamidi/writedown/parser"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

type HTMLOptions struct {
	// Standalone wraps the output in a complete HTML document.
	Standalone bool
	// Title is the document title used when Standalone is set.
	Title string
}

// HTMLEncoder renders a document tree as HTML.
//
// Sections become <section> elements headed by <h1>..<h6>, paragraphs
// become <p> and code blocks <pre><code>. A few function calls have a
// dedicated rendering (link, b, i, code); all others become a <span>
// carrying the call's name and arguments as data attributes.
type HTMLEncoder struct {
	w    io.Writer
	opts HTMLOptions
}

func NewHTMLEncoder(w io.Writer, opts HTMLOptions) *HTMLEncoder {
	return &HTMLEncoder{w: w, opts: opts}
}

func (e *HTMLEncoder) Encode(root *parser.Section) error {
	text, err := e.MarshalText(root)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *HTMLEncoder) MarshalText(root *parser.Section) ([]byte, error) {
	body := element("body")
	if err := appendNode(body, root); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if e.opts.Standalone {
		if err := html.Render(&buf, document(e.opts.Title, body)); err != nil {
			return nil, fmt.Errorf("render html: %w", err)
		}
		buf.WriteByte('\n')
		return buf.Bytes(), nil
	}

	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return nil, fmt.Errorf("render html: %w", err)
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

func document(title string, body *html.Node) *html.Node {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element("html")
	head := element("head")
	head.AppendChild(element("meta", attr("charset", "utf-8")))
	titleNode := element("title")
	titleNode.AppendChild(textNode(title))
	head.AppendChild(titleNode)

	root.AppendChild(head)
	root.AppendChild(body)
	doc.AppendChild(root)
	return doc
}

func appendNode(parent *html.Node, n parser.Node) error {
	switch n := n.(type) {
	case *parser.Section:
		target := parent
		if n.Level != 0 || n.Title != "" {
			target = element("section")
			heading := element(headingTag(n.Level))
			heading.AppendChild(textNode(n.Title))
			target.AppendChild(heading)
			parent.AppendChild(target)
		}
		for _, child := range n.Children {
			if err := appendNode(target, child); err != nil {
				return err
			}
		}
	case *parser.Paragraph:
		p := element("p")
		prevSentence := false
		for _, child := range n.Children {
			switch c := child.(type) {
			case parser.Sentence:
				// Adjacent sentences always come from separate lines.
				if prevSentence {
					p.AppendChild(textNode("\n"))
				}
				p.AppendChild(textNode(c.Text))
				prevSentence = true
			case *parser.FuncCall:
				p.AppendChild(renderCall(c))
				prevSentence = false
			default:
				return fmt.Errorf("%w: %T in paragraph", ErrUnsupportedNode, child)
			}
		}
		parent.AppendChild(p)
	case *parser.Block:
		if n.Kind != parser.BlockCode {
			return fmt.Errorf("%w: block kind %s", ErrUnsupportedNode, n.Kind)
		}
		pre := element("pre")
		code := element("code")
		code.AppendChild(textNode(n.Body))
		pre.AppendChild(code)
		parent.AppendChild(pre)
	case *parser.FuncCall:
		div := element("div")
		div.AppendChild(renderCall(n))
		parent.AppendChild(div)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedNode, n)
	}
	return nil
}

func renderCall(call *parser.FuncCall) *html.Node {
	var n *html.Node
	switch call.Name {
	case "link", "a":
		href := ""
		if len(call.Args) > 0 {
			href = call.Args[0]
		}
		label := href
		if call.Block != nil {
			label = *call.Block
		} else if len(call.Args) > 1 {
			label = call.Args[len(call.Args)-1]
		}
		n = element("a", attr("href", href))
		n.AppendChild(textNode(label))
		return n
	case "b", "bold":
		n = element("strong")
	case "i", "em":
		n = element("em")
	case "code":
		n = element("code")
	default:
		n = element("span", attr("class", "wd-func"), attr("data-func", call.Name))
		if len(call.Args) > 0 {
			n.Attr = append(n.Attr, attr("data-args", strings.Join(call.Args, ",")))
		}
		if call.Block != nil {
			n.AppendChild(textNode(*call.Block))
		}
		return n
	}

	if call.Block != nil {
		n.AppendChild(textNode(*call.Block))
	} else {
		n.AppendChild(textNode(strings.Join(call.Args, ", ")))
	}
	return n
}

func headingTag(level int) string {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	return "h" + strconv.Itoa(level)
}

func element(tag string, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
		Attr:     attrs,
	}
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}
