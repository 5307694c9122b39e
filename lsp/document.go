package lsp

import (
	"errors"
	"strings"
	"sync"

	"github.com/dhamidi/writedown/parser"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

type Document struct {
	URI     protocol.DocumentUri
	Text    string
	Version protocol.Integer
}

// Store holds the text of open documents. It is safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	docs map[protocol.DocumentUri]Document
}

func NewStore() *Store {
	return &Store{docs: make(map[protocol.DocumentUri]Document)}
}

func (s *Store) Put(uri protocol.DocumentUri, text string, version protocol.Integer) Document {
	doc := Document{URI: uri, Text: text, Version: version}
	s.mu.Lock()
	s.docs[uri] = doc
	s.mu.Unlock()
	return doc
}

func (s *Store) Get(uri protocol.DocumentUri) (Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[uri]
	return doc, ok
}

func (s *Store) Delete(uri protocol.DocumentUri) {
	s.mu.Lock()
	delete(s.docs, uri)
	s.mu.Unlock()
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// Diagnose parses text and reports the syntax error, if any, as a single
// diagnostic. A document that parses yields an empty, non-nil slice.
func Diagnose(text string, opts ...parser.Option) []protocol.Diagnostic {
	_, err := parser.Parse(text, opts...)
	if err == nil {
		return []protocol.Diagnostic{}
	}

	message := err.Error()
	offset := 0
	var se *parser.SyntaxError
	if errors.As(err, &se) {
		offset = se.Pos.Offset
		message = se.Err.Error()
		if se.Expected != "" {
			message += ": expected " + se.Expected
		}
	}

	end := offset
	if end < len(text) && text[end] != '\n' {
		end++
	}
	severity := protocol.DiagnosticSeverityError
	source := lsName
	return []protocol.Diagnostic{{
		Range: protocol.Range{
			Start: position(text, offset),
			End:   position(text, end),
		},
		Severity: &severity,
		Source:   &source,
		Message:  message,
	}}
}

// Outline returns the document symbols of text built from its titles.
// Each title opens a section inside the one before it, so the outline is
// nested in order of appearance. Titles after a tokenizer error are
// not reported.
func Outline(text string) []protocol.DocumentSymbol {
	t := parser.NewTokenizer(text, "")
	var titles []parser.Token
	for {
		tok, ok := t.Advance()
		if !ok {
			break
		}
		if tok.Kind == parser.TokenTitle {
			titles = append(titles, tok)
		}
	}

	docEnd := position(text, len(text))
	var children []protocol.DocumentSymbol
	for i := len(titles) - 1; i >= 0; i-- {
		tok := titles[i]
		// The title token starts after the "= " marker.
		start := tok.Offset - tok.Level - 1
		detail := strings.Repeat("=", tok.Level)
		sym := protocol.DocumentSymbol{
			Name:   t.Text(tok),
			Detail: &detail,
			Kind:   protocol.SymbolKindString,
			Range: protocol.Range{
				Start: position(text, start),
				End:   docEnd,
			},
			SelectionRange: protocol.Range{
				Start: position(text, tok.Offset),
				End:   position(text, tok.End()),
			},
			Children: children,
		}
		children = []protocol.DocumentSymbol{sym}
	}
	if children == nil {
		return []protocol.DocumentSymbol{}
	}
	return children
}

// position converts a byte offset into a zero-based line and a UTF-16
// character offset.
func position(text string, offset int) protocol.Position {
	if offset > len(text) {
		offset = len(text)
	}
	lineStart := strings.LastIndexByte(text[:offset], '\n') + 1
	line := strings.Count(text[:lineStart], "\n")

	character := 0
	for _, r := range text[lineStart:offset] {
		if r >= 0x10000 {
			character += 2
		} else {
			character++
		}
	}
	return protocol.Position{
		Line:      protocol.UInteger(line),
		Character: protocol.UInteger(character),
	}
}
