package format

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/dhamidi/writedown/parser"
)

func TestTokenEncoder(t *testing.T) {
	var buf bytes.Buffer
	tz := parser.NewTokenizer("= T\nhi @<f>(a)\n", "t.wd")
	if err := NewTokenEncoder(&buf, TokenOptions{}).Encode(tz); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	want := strings.Join([]string{
		"2\tTitle\t\"T\"",
		"3\tNewline\t\"\\n\"",
		"4\tSentence\t\"hi \"",
		"9\tFunc\t\"f\"",
		"11\tFuncArgOpen\t\"(\"",
		"12\tFuncArg\t\"a\"",
		"13\tFuncArgClose\t\")\"",
		"14\tNewline\t\"\\n\"",
	}, "\n") + "\n"
	if buf.String() != want {
		t.Errorf("Encode() =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestTokenEncoderJSON(t *testing.T) {
	var buf bytes.Buffer
	tz := parser.NewTokenizer("== Two\n", "")
	if err := NewTokenEncoder(&buf, TokenOptions{JSON: true}).Encode(tz); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	var got []jsonToken
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d tokens, want 2", len(got))
	}
	if got[0].Kind != "Title" || got[0].Level != 2 || got[0].Text != "Two" {
		t.Errorf("first token = %+v, want level 2 Title \"Two\"", got[0])
	}
}

func TestTokenEncoderError(t *testing.T) {
	var buf bytes.Buffer
	tz := parser.NewTokenizer("ok\n@<f>(a", "")
	err := NewTokenEncoder(&buf, TokenOptions{}).Encode(tz)
	if !errors.Is(err, parser.ErrUnterminated) {
		t.Fatalf("Encode() error = %v, want %v", err, parser.ErrUnterminated)
	}
	if !strings.HasPrefix(buf.String(), "0\tSentence\t\"ok\"\n") {
		t.Errorf("tokens before the error were not written: %q", buf.String())
	}
}

func TestTokenEncoderColorPadsKinds(t *testing.T) {
	e := NewTokenEncoder(&bytes.Buffer{}, TokenOptions{Color: true})
	if got := e.kind(parser.TokenUnknown); got != "Unknown     " {
		t.Errorf("kind(Unknown) = %q, want padded name", got)
	}
	if got := e.kind(parser.TokenTitle); !strings.Contains(got, "Title") {
		t.Errorf("kind(Title) = %q, want it to contain the kind name", got)
	}
}
