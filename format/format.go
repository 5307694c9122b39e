// Package format renders writedown document trees and token streams.
package format

import (
	"errors"
	"fmt"
	"io"

	"github.com/dhamidi/writedown/parser"
)

// ErrUnsupportedNode is returned by renderers for node variants they do
// not know how to project.
var ErrUnsupportedNode = errors.New("unsupported node")

type Encoder interface {
	Encode(root *parser.Section) error
}

// Names lists the formats accepted by New.
var Names = []string{"json", "tree", "html"}

// New returns the encoder registered under name.
func New(name string, w io.Writer, opts HTMLOptions) (Encoder, error) {
	switch name {
	case "json":
		return NewJSONEncoder(w), nil
	case "tree":
		return NewTreeEncoder(w), nil
	case "html":
		return NewHTMLEncoder(w, opts), nil
	}
	return nil, fmt.Errorf("unknown format: %s (expected json, tree, or html)", name)
}

type TreeEncoder struct {
	w io.Writer
}

func NewTreeEncoder(w io.Writer) *TreeEncoder {
	return &TreeEncoder{w: w}
}

func (e *TreeEncoder) Encode(root *parser.Section) error {
	_, err := io.WriteString(e.w, root.String())
	return err
}
