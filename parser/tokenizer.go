package parser

import "sort"

// Tokenizer turns a writedown source buffer into tokens, one at a time.
//
// Which scanning rule applies depends on the mode: the kind of the token
// emitted last. The tokenizer starts in TokenNewline mode. A single token
// of lookahead is kept for Peek.
//
// A Tokenizer is not safe for concurrent use.
type Tokenizer struct {
	src  string
	file string
	pos  int
	mode TokenKind

	peeked bool
	next   Token
	nextOK bool

	err   error
	lines []int
}

func NewTokenizer(src, file string) *Tokenizer {
	return &Tokenizer{
		src:  src,
		file: file,
		mode: TokenNewline,
	}
}

// Peek returns the next token without consuming it. Repeated calls return
// the same token until Advance is called.
func (t *Tokenizer) Peek() (Token, bool) {
	if !t.peeked {
		t.next, t.nextOK = t.scan()
		t.peeked = true
	}
	return t.next, t.nextOK
}

// Advance consumes and returns the next token. It reports false at the end
// of the input and after a fatal error; Err tells the two apart.
func (t *Tokenizer) Advance() (Token, bool) {
	if t.peeked {
		t.peeked = false
		return t.next, t.nextOK
	}
	return t.scan()
}

// Err returns the fatal error that stopped the tokenizer, or nil.
func (t *Tokenizer) Err() error {
	return t.err
}

// Text returns the source text covered by tok.
func (t *Tokenizer) Text(tok Token) string {
	return t.src[tok.Offset:tok.End()]
}

func (t *Tokenizer) Mode() TokenKind {
	return t.mode
}

func (t *Tokenizer) File() string {
	return t.file
}

// Position resolves a byte offset of the source to a line and column.
func (t *Tokenizer) Position(offset int) Position {
	if t.lines == nil {
		t.lines = lineStarts(t.src)
	}
	line := sort.Search(len(t.lines), func(i int) bool {
		return t.lines[i] > offset
	})
	return Position{
		File:   t.file,
		Offset: offset,
		Line:   line,
		Column: offset - t.lines[line-1] + 1,
	}
}

func (t *Tokenizer) scan() (Token, bool) {
	if t.err != nil {
		return Token{}, false
	}
	if t.pos >= len(t.src) {
		if t.mode == TokenFuncArgOpen || t.mode == TokenFuncArg {
			return t.unterminated(t.pos, t.pos, "')' closing argument list")
		}
		return Token{}, false
	}

	scanner := modeTable[t.mode]
	if scanner == nil {
		scanner = (*Tokenizer).scanGeneric
	}
	tok, ok := scanner(t)
	if !ok {
		return Token{}, false
	}
	t.mode = tok.Kind
	return tok, true
}

// Tokenize collects every token of src.
func Tokenize(src, file string) ([]Token, error) {
	t := NewTokenizer(src, file)
	var tokens []Token
	for {
		tok, ok := t.Advance()
		if !ok {
			break
		}
		tokens = append(tokens, tok)
	}
	return tokens, t.Err()
}

func lineStarts(src string) []int {
	starts := []int{0}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}
