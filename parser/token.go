package parser

import "fmt"

type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type TokenKind int

const (
	TokenUnknown TokenKind = iota
	TokenComment
	TokenNewline
	TokenSentence
	TokenIndent
	TokenTabIndent
	TokenTitle
	TokenLiteral
	TokenAtString
	TokenTag
	TokenFunc
	TokenFuncArgOpen
	TokenFuncArgClose
	TokenFuncArg
	TokenFuncBlock
	TokenMath
	TokenInlineCode
	TokenCodeBlock

	tokenKindCount
)

var tokenKindNames = map[TokenKind]string{
	TokenUnknown:      "Unknown",
	TokenComment:      "Comment",
	TokenNewline:      "Newline",
	TokenSentence:     "Sentence",
	TokenIndent:       "Indent",
	TokenTabIndent:    "TabIndent",
	TokenTitle:        "Title",
	TokenLiteral:      "Literal",
	TokenAtString:     "AtString",
	TokenTag:          "Tag",
	TokenFunc:         "Func",
	TokenFuncArgOpen:  "FuncArgOpen",
	TokenFuncArgClose: "FuncArgClose",
	TokenFuncArg:      "FuncArg",
	TokenFuncBlock:    "FuncBlock",
	TokenMath:         "Math",
	TokenInlineCode:   "InlineCode",
	TokenCodeBlock:    "CodeBlock",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

type LiteralKind int

const (
	LiteralStr LiteralKind = iota
	LiteralInt
	LiteralFloat
)

func (k LiteralKind) String() string {
	switch k {
	case LiteralStr:
		return "Str"
	case LiteralInt:
		return "Int"
	case LiteralFloat:
		return "Float"
	}
	return "Unknown"
}

// Token is a span into the source buffer. It never owns text; resolve it
// with Tokenizer.Text.
type Token struct {
	Kind   TokenKind
	Offset int
	Len    int

	// Level is the heading level of a TokenTitle and the width of a
	// TokenIndent or TokenTabIndent.
	Level int
	// Lit is only meaningful for TokenLiteral.
	Lit LiteralKind
}

// End returns the offset just past the token's span.
func (t Token) End() int {
	return t.Offset + t.Len
}

func (t Token) String() string {
	switch t.Kind {
	case TokenTitle, TokenIndent, TokenTabIndent:
		return fmt.Sprintf("%s(%d)@%d+%d", t.Kind, t.Level, t.Offset, t.Len)
	case TokenLiteral:
		return fmt.Sprintf("%s(%s)@%d+%d", t.Kind, t.Lit, t.Offset, t.Len)
	}
	return fmt.Sprintf("%s@%d+%d", t.Kind, t.Offset, t.Len)
}
