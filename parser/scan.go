package parser

import (
	"unicode"
	"unicode/utf8"
)

type scanFunc func(*Tokenizer) (Token, bool)

// modeTable selects the scanning rule from the kind of the previous token.
// Modes without an entry use scanGeneric.
var modeTable = [tokenKindCount]scanFunc{
	TokenNewline:      (*Tokenizer).scanLineStart,
	TokenFunc:         (*Tokenizer).scanAfterFunc,
	TokenFuncArgOpen:  (*Tokenizer).scanArgList,
	TokenFuncArg:      (*Tokenizer).scanArgList,
	TokenFuncArgClose: (*Tokenizer).scanAfterArgs,
	TokenFuncBlock:    (*Tokenizer).scanAfterArgs,
}

func (t *Tokenizer) emit(kind TokenKind, start, length int) Token {
	t.pos = start + length
	return Token{Kind: kind, Offset: start, Len: length}
}

func (t *Tokenizer) fail(offset int, cause error, expected string) (Token, bool) {
	t.err = &SyntaxError{
		Pos:      t.Position(offset),
		Expected: expected,
		Err:      cause,
	}
	return Token{}, false
}

// unterminated reports a construct opened at start whose scan stopped at
// stop without finding its closing delimiter.
func (t *Tokenizer) unterminated(start, stop int, expected string) (Token, bool) {
	t.err = &SyntaxError{
		Pos:      t.Position(start),
		Expected: expected,
		Err:      ErrUnterminated,
		eof:      stop >= len(t.src),
	}
	return Token{}, false
}

func (t *Tokenizer) scanLineStart() (Token, bool) {
	switch t.src[t.pos] {
	case '=':
		if tok, ok := t.scanTitle(); ok {
			return tok, true
		}
		return t.scanSentence()
	case '\n':
		return t.emit(TokenNewline, t.pos, 1), true
	case '@':
		return t.scanAt()
	case '`':
		return t.scanCode()
	}
	return t.scanSentence()
}

func (t *Tokenizer) scanGeneric() (Token, bool) {
	switch t.src[t.pos] {
	case '\n':
		return t.emit(TokenNewline, t.pos, 1), true
	case '@':
		return t.scanAt()
	}
	return t.scanSentence()
}

func (t *Tokenizer) scanAfterFunc() (Token, bool) {
	switch t.src[t.pos] {
	case '(':
		tok := t.emit(TokenFuncArgOpen, t.pos, 1)
		t.skipBlanks()
		return tok, true
	case '{':
		return t.scanBlock()
	}
	return t.scanGeneric()
}

func (t *Tokenizer) scanArgList() (Token, bool) {
	if t.src[t.pos] == ')' {
		return t.emit(TokenFuncArgClose, t.pos, 1), true
	}
	return t.scanFuncArg()
}

func (t *Tokenizer) scanAfterArgs() (Token, bool) {
	if t.src[t.pos] == '{' {
		return t.scanBlock()
	}
	return t.scanGeneric()
}

// scanSentence runs to the end of the line, stopping early before an '@'
// that follows whitespace.
func (t *Tokenizer) scanSentence() (Token, bool) {
	start := t.pos
	i := start
	for i < len(t.src) && t.src[i] != '\n' {
		if i > start && t.src[i] == '@' && isBlank(t.src[i-1]) {
			break
		}
		i++
	}
	return t.emit(TokenSentence, start, i-start), true
}

// scanTitle recognises "=== name". It leaves the cursor alone when the
// line is not a title.
func (t *Tokenizer) scanTitle() (Token, bool) {
	start := t.pos
	i := start
	for i < len(t.src) && t.src[i] == '=' {
		i++
	}
	level := i - start
	if i >= len(t.src) || t.src[i] != ' ' {
		return Token{}, false
	}
	i++
	nameStart := i
	for i < len(t.src) && t.src[i] != '\n' {
		i++
	}
	if !hasPrintable(t.src[nameStart:i]) {
		return Token{}, false
	}
	tok := t.emit(TokenTitle, nameStart, i-nameStart)
	tok.Level = level
	return tok, true
}

func (t *Tokenizer) scanAt() (Token, bool) {
	at := t.pos
	i := at + 1
	if i < len(t.src) {
		switch t.src[i] {
		case '<':
			return t.scanDelimited(TokenFunc, at, '>', "'>' closing function name")
		case '[':
			return t.scanDelimited(TokenTag, at, ']', "']' closing tag")
		}
	}
	j := i
	for j < len(t.src) && isAtStringByte(t.src[j]) {
		j++
	}
	return t.emit(TokenAtString, i, j-i), true
}

// scanDelimited scans "@<name>" or "@[name]" on a single line. The token
// covers the name only; the closing delimiter is skipped.
func (t *Tokenizer) scanDelimited(kind TokenKind, at int, closer byte, expected string) (Token, bool) {
	nameStart := at + 2
	i := nameStart
	for i < len(t.src) && t.src[i] != closer && t.src[i] != '\n' {
		i++
	}
	if i >= len(t.src) || t.src[i] != closer {
		return t.unterminated(at, i, expected)
	}
	if i == nameStart {
		return t.fail(at, ErrMalformed, "a name")
	}
	tok := t.emit(kind, nameStart, i-nameStart)
	t.pos++
	return tok, true
}

func (t *Tokenizer) scanCode() (Token, bool) {
	open := t.pos
	if open+1 < len(t.src) && t.src[open+1] == '`' {
		return t.scanFence(open)
	}

	i := open + 1
	for i < len(t.src) && t.src[i] != '`' && t.src[i] != '\n' {
		if t.src[i] == '\\' && i+1 < len(t.src) && t.src[i+1] != '\n' {
			i += 2
			continue
		}
		i++
	}
	if i >= len(t.src) || t.src[i] != '`' {
		return t.unterminated(open, i, "'`' closing inline code")
	}
	tok := t.emit(TokenInlineCode, open+1, i-open-1)
	t.pos++
	return tok, true
}

// scanFence scans a fenced code block. The opening fence must be exactly
// three backticks followed by a newline; the body ends at the first run of
// exactly three backticks.
func (t *Tokenizer) scanFence(open int) (Token, bool) {
	i := open + 2
	if i >= len(t.src) {
		return t.unterminated(open, i, "'```' code fence")
	}
	if t.src[i] != '`' {
		return t.fail(open, ErrMalformed, "'```' code fence")
	}
	i++
	if i < len(t.src) && t.src[i] == '\r' {
		i++
	}
	if i >= len(t.src) {
		return t.unterminated(open, i, "newline after '```'")
	}
	switch t.src[i] {
	case '\n':
	case '`':
		return t.fail(open, ErrMalformed, "'```' code fence")
	default:
		return t.fail(open, ErrUnsupported, "newline after '```' (language-tagged fences are not supported)")
	}

	body := i + 1
	j := body
	for j < len(t.src) {
		if t.src[j] != '`' {
			j++
			continue
		}
		k := j
		for k < len(t.src) && t.src[k] == '`' {
			k++
		}
		if k-j == 3 {
			tok := t.emit(TokenCodeBlock, body, j-body)
			t.pos = k
			return tok, true
		}
		j = k
	}
	return t.unterminated(open, j, "closing '```' fence")
}

// scanBlock scans "{...}" with nested braces. The token covers the inside.
func (t *Tokenizer) scanBlock() (Token, bool) {
	open := t.pos
	depth := 1
	for i := open + 1; i < len(t.src); i++ {
		switch t.src[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				tok := t.emit(TokenFuncBlock, open+1, i-open-1)
				t.pos++
				return tok, true
			}
		}
	}
	return t.unterminated(open, len(t.src), "'}' closing block")
}

func (t *Tokenizer) scanFuncArg() (Token, bool) {
	start := t.pos
	i := start
	for i < len(t.src) && t.src[i] != ',' && t.src[i] != ')' {
		i++
	}
	if i >= len(t.src) {
		return t.unterminated(start, i, "',' or ')' in argument list")
	}
	end := i
	for end > start && isBlank(t.src[end-1]) {
		end--
	}
	tok := t.emit(TokenFuncArg, start, end-start)
	t.pos = i
	if t.src[i] == ',' {
		t.pos++
		t.skipBlanks()
	}
	return tok, true
}

func (t *Tokenizer) skipBlanks() {
	for t.pos < len(t.src) && (isBlank(t.src[t.pos]) || t.src[t.pos] == '\n') {
		t.pos++
	}
}

func isBlank(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r'
}

func isAtStringByte(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') ||
		(ch >= '0' && ch <= '9') || ch == '.' || ch == '_'
}

func hasPrintable(s string) bool {
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		if unicode.IsPrint(r) && !unicode.IsSpace(r) {
			return true
		}
		s = s[size:]
	}
	return false
}
