package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "writedown.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestTokenizeCommand(t *testing.T) {
	cfg := writeConfig(t, "")
	out, err := run(t, "hi\n", "--config", cfg, "tokenize")
	if err != nil {
		t.Fatalf("tokenize error: %v", err)
	}
	want := "0\tSentence\t\"hi\"\n2\tNewline\t\"\\n\"\n"
	if out != want {
		t.Errorf("tokenize output = %q, want %q", out, want)
	}
}

func TestParseCommand(t *testing.T) {
	cfg := writeConfig(t, "")
	out, err := run(t, "= T\n", "--config", cfg, "parse")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	want := "Section 0 \"\"\n  Section 1 \"T\"\n"
	if out != want {
		t.Errorf("parse output = %q, want %q", out, want)
	}
}

func TestParseCommandUsesConfiguredFormat(t *testing.T) {
	cfg := writeConfig(t, `format = "json"`)
	out, err := run(t, "hi\n", "--config", cfg, "parse")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if !strings.HasPrefix(out, "{") {
		t.Errorf("parse output = %q, want JSON", out)
	}
}

func TestParseCommandSyntaxError(t *testing.T) {
	cfg := writeConfig(t, "")
	if _, err := run(t, "```\n", "--config", cfg, "parse"); err == nil {
		t.Error("parse of an unterminated fence returned no error")
	}
}

func TestParseCommandMaxDepth(t *testing.T) {
	cfg := writeConfig(t, "[parser]\nmax_depth = 1\n")
	if _, err := run(t, "= a\n= b\n", "--config", cfg, "parse"); err == nil {
		t.Error("parse beyond max_depth returned no error")
	}
}

func TestHTMLCommand(t *testing.T) {
	cfg := writeConfig(t, "")
	dir := t.TempDir()
	input := filepath.Join(dir, "notes.wd")
	output := filepath.Join(dir, "notes.html")
	if err := os.WriteFile(input, []byte("hello\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := run(t, "", "--config", cfg, "html", "--standalone", "-o", output, input); err != nil {
		t.Fatalf("html error: %v", err)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	for _, want := range []string{"<title>notes</title>", "<p>hello</p>"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("output missing %q:\n%s", want, data)
		}
	}
}

func TestComplete(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{"hello\n", true},
		{"```\n", false},
		{"```\ncode\n", false},
		{"```\ncode\n```\n", true},
		{"@<f>(a,\n", false},
		{"@<>\n", true},
		{":quit\n", true},
	}

	for _, tt := range tests {
		if got := complete(tt.src); got != tt.want {
			t.Errorf("complete(%q) = %v, want %v", tt.src, got, tt.want)
		}
	}
}

func TestReplCommands(t *testing.T) {
	var out bytes.Buffer
	r := &repl{out: &out, mode: "tree"}

	if r.command(":html") {
		t.Fatal(":html exited the REPL")
	}
	if r.mode != "html" {
		t.Errorf("mode = %q, want html", r.mode)
	}
	out.Reset()
	if err := r.eval("= T\n"); err != nil {
		t.Fatalf("eval error: %v", err)
	}
	if got := out.String(); got != "<section><h1>T</h1></section>\n" {
		t.Errorf("eval output = %q", got)
	}
	if !r.command(":quit") {
		t.Error(":quit did not exit the REPL")
	}
}

func TestCheckCommand(t *testing.T) {
	cfg := writeConfig(t, "")
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "good.wd"), []byte("= ok\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "", "--config", cfg, "check", dir)
	if err != nil {
		t.Fatalf("check error: %v", err)
	}
	if out != "checked 1 documents\n" {
		t.Errorf("check output = %q", out)
	}

	if err := os.WriteFile(filepath.Join(dir, "bad.wd"), []byte("```\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err = run(t, "", "--config", cfg, "check", dir)
	if err == nil {
		t.Fatal("check with a broken document returned no error")
	}
	if !strings.HasPrefix(out, "bad.wd:1:1:") {
		t.Errorf("check output = %q, want the error position", out)
	}
}
