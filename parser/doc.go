// Package parser turns writedown source text into a document tree.
//
// # Overview
//
// writedown is a line-oriented markup language:
//
//	= Title
//	A sentence, continued
//	on the next line. @<link>(https://example.com){a call}
//
//	A second paragraph, with a tag @[todo] and a mention @someone.
//
//	```
//	verbatim code
//	```
//
// Parsing happens in two layers:
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   Source    │────▶│  Tokenizer  │────▶│   Parser    │
//	│  (string)   │     │  (tokens)   │     │   (tree)    │
//	└─────────────┘     └─────────────┘     └─────────────┘
//
// # Tokenizer
//
// The Tokenizer is context sensitive: the kind of the token it emitted last
// (its mode) selects the scanning rule for the next one. At the start of a
// line "=" may open a title and "`" may open code; right after a function
// name "(" opens an argument list; inside the list "," and ")" delimit
// arguments. Tokens are (offset, length) spans into the source and carry no
// text of their own.
//
//	t := parser.NewTokenizer(src, "doc.wd")
//	for {
//	    tok, ok := t.Advance()
//	    if !ok {
//	        break
//	    }
//	    fmt.Println(tok.Kind, t.Text(tok))
//	}
//	if err := t.Err(); err != nil {
//	    // structural error, e.g. an unterminated code fence
//	}
//
// # Parser
//
// The Parser pulls tokens with one token of lookahead and builds a tree
// rooted at a level-0 Section. Every title opens a new section nested in
// the section currently being filled; heading levels are recorded but do
// not close sections. Paragraphs end at a blank line, a title or a code
// block.
//
//	root, err := parser.Parse(src, parser.WithFile("doc.wd"))
//
// # Errors
//
// Unterminated delimiters, unterminated code and unexpected tokens abort
// the parse with a *SyntaxError that carries the position of the offending
// construct. Match causes with errors.Is against ErrUnterminated,
// ErrMalformed, ErrUnsupported, ErrUnexpectedToken and ErrTooDeep.
//
// # Thread Safety
//
// Tokenizer and Parser instances are not safe for concurrent use. The
// returned tree does not reference the source and may be shared freely
// once parsing is done.
package parser
