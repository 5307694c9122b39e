package format

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dhamidi/writedown/parser"
)

type JSONEncoder struct {
	w io.Writer
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(root *parser.Section) error {
	text, err := e.MarshalText(root)
	if err != nil {
		return err
	}
	text = append(text, '\n')
	_, err = e.w.Write(text)
	return err
}

func (e *JSONEncoder) MarshalText(root *parser.Section) ([]byte, error) {
	data, err := buildNode(root)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

type jsonNode struct {
	Kind     string     `json:"kind"`
	Level    *int       `json:"level,omitempty"`
	Title    *string    `json:"title,omitempty"`
	Text     string     `json:"text,omitempty"`
	Type     string     `json:"type,omitempty"`
	Body     *string    `json:"body,omitempty"`
	Name     string     `json:"name,omitempty"`
	Args     []string   `json:"args,omitempty"`
	Block    *string    `json:"block,omitempty"`
	Raw      *string    `json:"raw,omitempty"`
	Children []jsonNode `json:"children,omitempty"`
}

func buildNode(n parser.Node) (jsonNode, error) {
	switch n := n.(type) {
	case *parser.Section:
		level, title := n.Level, n.Title
		data := jsonNode{Kind: "section", Level: &level, Title: &title}
		for _, child := range n.Children {
			c, err := buildNode(child)
			if err != nil {
				return jsonNode{}, err
			}
			data.Children = append(data.Children, c)
		}
		return data, nil
	case *parser.Paragraph:
		data := jsonNode{Kind: "paragraph"}
		for _, child := range n.Children {
			switch c := child.(type) {
			case parser.Sentence:
				data.Children = append(data.Children, jsonNode{Kind: "sentence", Text: c.Text})
			case *parser.FuncCall:
				data.Children = append(data.Children, buildCall(c))
			default:
				return jsonNode{}, fmt.Errorf("%w: %T in paragraph", ErrUnsupportedNode, child)
			}
		}
		return data, nil
	case *parser.Block:
		body := n.Body
		return jsonNode{Kind: "block", Type: n.Kind.String(), Body: &body}, nil
	case *parser.FuncCall:
		return buildCall(n), nil
	case *parser.Unknown:
		raw := n.Raw
		return jsonNode{Kind: "unknown", Raw: &raw}, nil
	}
	return jsonNode{}, fmt.Errorf("%w: %T", ErrUnsupportedNode, n)
}

func buildCall(call *parser.FuncCall) jsonNode {
	return jsonNode{
		Kind:  "func",
		Name:  call.Name,
		Args:  call.Args,
		Block: call.Block,
	}
}
