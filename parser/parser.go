package parser

import (
	"fmt"
	"io"
	"strings"
)

type Option func(*Parser)

// WithFile sets the file name reported in error positions.
func WithFile(path string) Option {
	return func(p *Parser) {
		p.file = path
	}
}

// WithMaxDepth limits how many sections may be open at once. Zero means
// no limit.
func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		p.maxDepth = depth
	}
}

// Parser builds a document tree from the tokens of a Tokenizer. It keeps
// exclusive use of the tokenizer for the duration of Parse.
type Parser struct {
	file     string
	maxDepth int
	tok      *Tokenizer

	// open is the chain of sections being filled; the last one receives
	// new nodes. A title never closes a section, so open only grows.
	open []*Section
}

func NewParser(t *Tokenizer, opts ...Option) *Parser {
	p := &Parser{tok: t}
	for _, opt := range opts {
		opt(p)
	}
	if p.file == "" {
		p.file = t.File()
	}
	return p
}

// Parse parses a whole document held in src.
func Parse(src string, opts ...Option) (*Section, error) {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	p.tok = NewTokenizer(src, p.file)
	return p.Parse()
}

func ParseReader(r io.Reader, opts ...Option) (*Section, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	return Parse(string(data), opts...)
}

// Parse consumes the tokenizer and returns the synthetic root section. On
// error no tree is returned.
func (p *Parser) Parse() (*Section, error) {
	root := &Section{}
	p.open = []*Section{root}

	for {
		tok, ok := p.tok.Peek()
		if !ok {
			if err := p.tok.Err(); err != nil {
				return nil, err
			}
			return root, nil
		}
		current := p.open[len(p.open)-1]

		switch tok.Kind {
		case TokenTitle:
			p.tok.Advance()
			if p.maxDepth > 0 && len(p.open) > p.maxDepth {
				return nil, p.errorAt(tok.Offset, ErrTooDeep, "")
			}
			section := &Section{
				Level: tok.Level,
				Title: p.text(tok),
			}
			current.AddChild(section)
			p.open = append(p.open, section)
		case TokenComment, TokenNewline:
			p.tok.Advance()
		case TokenUnknown:
			return nil, p.errorAt(tok.Offset, ErrUnexpectedToken, "")
		case TokenCodeBlock:
			p.tok.Advance()
			current.AddChild(&Block{Kind: BlockCode, Body: p.text(tok)})
		default:
			para, err := p.parseParagraph()
			if err != nil {
				return nil, err
			}
			if para != nil {
				current.AddChild(para)
			}
		}
	}
}

// parseParagraph collects sentences and function calls until a blank
// line, a title or a code block. It returns nil when nothing was
// collected.
func (p *Parser) parseParagraph() (*Paragraph, error) {
	para := &Paragraph{}

loop:
	for {
		tok, ok := p.tok.Peek()
		if !ok {
			if err := p.tok.Err(); err != nil {
				return nil, err
			}
			break
		}

		switch tok.Kind {
		case TokenSentence:
			p.tok.Advance()
			para.Children = append(para.Children, Sentence{Text: p.text(tok)})
		case TokenFunc:
			call, err := p.parseFuncCall()
			if err != nil {
				return nil, err
			}
			para.Children = append(para.Children, call)
		case TokenNewline:
			p.tok.Advance()
			if next, ok := p.tok.Peek(); ok && next.Kind == TokenNewline {
				p.tok.Advance()
				break loop
			}
		case TokenTitle, TokenCodeBlock:
			break loop
		default:
			p.tok.Advance()
			break loop
		}
	}

	if len(para.Children) == 0 {
		return nil, nil
	}
	return para, nil
}

func (p *Parser) parseFuncCall() (*FuncCall, error) {
	name, _ := p.tok.Advance()
	call := &FuncCall{
		Name: p.text(name),
		Args: []string{},
	}

	tok, ok := p.tok.Peek()
	switch {
	case ok && tok.Kind == TokenFuncArgOpen:
		p.tok.Advance()
		if err := p.parseArgs(call); err != nil {
			return nil, err
		}
	case ok && tok.Kind == TokenFuncBlock:
	default:
		return nil, p.expected(tok, ok, name.End(), "'(' after function name")
	}

	if tok, ok := p.tok.Peek(); ok && tok.Kind == TokenFuncBlock {
		p.tok.Advance()
		block := p.text(tok)
		call.Block = &block
	}
	return call, nil
}

func (p *Parser) parseArgs(call *FuncCall) error {
	for {
		tok, ok := p.tok.Advance()
		if !ok {
			return p.expected(tok, ok, len(p.tok.src), "')' closing argument list")
		}
		switch tok.Kind {
		case TokenFuncArg:
			call.Args = append(call.Args, p.text(tok))
		case TokenFuncArgClose:
			return nil
		default:
			return p.expected(tok, ok, tok.Offset, "argument or ')'")
		}
	}
}

// text copies the token's text so the tree does not pin the source.
func (p *Parser) text(tok Token) string {
	return strings.Clone(p.tok.Text(tok))
}

func (p *Parser) errorAt(offset int, cause error, expected string) error {
	pos := p.tok.Position(offset)
	pos.File = p.file
	return &SyntaxError{Pos: pos, Expected: expected, Err: cause}
}

// expected reports a missing token. A tokenizer error takes precedence;
// running out of input makes the error incomplete rather than wrong.
func (p *Parser) expected(got Token, ok bool, offset int, what string) error {
	if err := p.tok.Err(); err != nil {
		return err
	}
	if !ok {
		pos := p.tok.Position(offset)
		pos.File = p.file
		return &SyntaxError{Pos: pos, Expected: what, Err: ErrUnterminated, eof: true}
	}
	return p.errorAt(got.Offset, ErrUnexpectedToken, what)
}
