package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dhamidi/writedown/parser"
)

var (
	colorStructure = lipgloss.Color("#8B5CF6")
	colorText      = lipgloss.Color("#94A3B8")
	colorFunc      = lipgloss.Color("#06B6D4")
	colorCode      = lipgloss.Color("#10B981")
	colorMuted     = lipgloss.Color("#6B7280")
)

var kindStyles = map[parser.TokenKind]lipgloss.Style{
	parser.TokenTitle:        lipgloss.NewStyle().Foreground(colorStructure).Bold(true),
	parser.TokenNewline:      lipgloss.NewStyle().Foreground(colorMuted),
	parser.TokenSentence:     lipgloss.NewStyle().Foreground(colorText),
	parser.TokenFunc:         lipgloss.NewStyle().Foreground(colorFunc).Bold(true),
	parser.TokenFuncArgOpen:  lipgloss.NewStyle().Foreground(colorFunc),
	parser.TokenFuncArg:      lipgloss.NewStyle().Foreground(colorFunc),
	parser.TokenFuncArgClose: lipgloss.NewStyle().Foreground(colorFunc),
	parser.TokenFuncBlock:    lipgloss.NewStyle().Foreground(colorFunc),
	parser.TokenInlineCode:   lipgloss.NewStyle().Foreground(colorCode),
	parser.TokenCodeBlock:    lipgloss.NewStyle().Foreground(colorCode),
}

// kindWidth is the width of the longest token kind name.
const kindWidth = 12

type TokenOptions struct {
	// Color styles token kinds for terminal output.
	Color bool
	// JSON writes a JSON array instead of one line per token.
	JSON bool
}

// TokenEncoder lists the tokens of a Tokenizer, one per line:
//
//	offset<TAB>kind<TAB>"text"
type TokenEncoder struct {
	w    io.Writer
	opts TokenOptions
}

func NewTokenEncoder(w io.Writer, opts TokenOptions) *TokenEncoder {
	return &TokenEncoder{w: w, opts: opts}
}

type jsonToken struct {
	Kind   string `json:"kind"`
	Offset int    `json:"offset"`
	Len    int    `json:"len"`
	Level  int    `json:"level,omitempty"`
	Text   string `json:"text"`
}

// Encode drains t. Tokens read before a tokenizer error are still
// written; the error is returned afterwards.
func (e *TokenEncoder) Encode(t *parser.Tokenizer) error {
	text, err := e.MarshalText(t)
	if _, werr := e.w.Write(text); werr != nil {
		return werr
	}
	return err
}

func (e *TokenEncoder) MarshalText(t *parser.Tokenizer) ([]byte, error) {
	var tokens []parser.Token
	for {
		tok, ok := t.Advance()
		if !ok {
			break
		}
		tokens = append(tokens, tok)
	}

	if e.opts.JSON {
		data := make([]jsonToken, 0, len(tokens))
		for _, tok := range tokens {
			data = append(data, jsonToken{
				Kind:   tok.Kind.String(),
				Offset: tok.Offset,
				Len:    tok.Len,
				Level:  tok.Level,
				Text:   t.Text(tok),
			})
		}
		text, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(text, '\n'), t.Err()
	}

	var sb strings.Builder
	for _, tok := range tokens {
		fmt.Fprintf(&sb, "%d\t%s\t%q\n", tok.Offset, e.kind(tok.Kind), t.Text(tok))
	}
	return []byte(sb.String()), t.Err()
}

func (e *TokenEncoder) kind(k parser.TokenKind) string {
	name := k.String()
	if !e.opts.Color {
		return name
	}
	padded := fmt.Sprintf("%-*s", kindWidth, name)
	style, ok := kindStyles[k]
	if !ok {
		return padded
	}
	return style.Render(padded)
}
