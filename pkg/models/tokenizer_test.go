package models

import (
	"strings"
	"testing"
)

func TestTokenizerSkipsCommentsAndBlankLines(t *testing.T) {
	src := "# header\n\n   \nv 1 2 3 # trailing\n\tvn 0 0 1\r\nf 1 2 3"
	tok := newTokenizer(strings.NewReader(src))

	want := []struct {
		keyword string
		fields  int
	}{
		{"v", 3},
		{"vn", 3},
		{"f", 3},
	}
	for i, w := range want {
		keyword, fields, ok := tok.next()
		if !ok {
			t.Fatalf("Line %d: unexpected end of input", i)
		}
		if keyword != w.keyword || len(fields) != w.fields {
			t.Errorf("Line %d: expected %s with %d fields, got %s with %v", i, w.keyword, w.fields, keyword, fields)
		}
	}
	if _, _, ok := tok.next(); ok {
		t.Error("Expected end of input")
	}
	if err := tok.Err(); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestTokenizerLongLine(t *testing.T) {
	// Longer than bufio.Scanner's default 64KB token limit.
	var b strings.Builder
	b.WriteString("f")
	for range 20000 {
		b.WriteString(" 1234")
	}
	b.WriteString("\nv 1 2 3\n")

	tok := newTokenizer(strings.NewReader(b.String()))
	keyword, fields, ok := tok.next()
	if !ok || keyword != "f" || len(fields) != 20000 {
		t.Fatalf("Expected face with 20000 fields, got %s with %d", keyword, len(fields))
	}
	if keyword, _, ok := tok.next(); !ok || keyword != "v" {
		t.Errorf("Expected v after long line, got %q", keyword)
	}
}

func TestParseDirectiveUnknown(t *testing.T) {
	for _, kw := range []string{"o", "g", "s", "vp", "curv", "usemap", "mtllibx"} {
		if d := parseDirective(kw); d != directiveUnknown {
			t.Errorf("Expected %q to be unknown, got %v", kw, d)
		}
	}
}

func TestParseFloatsLenient(t *testing.T) {
	got := parseFloats([]string{"1.5", "abc"}, 3)
	if got[0] != 1.5 || got[1] != 0 || got[2] != 0 {
		t.Errorf("Expected [1.5 0 0], got %v", got)
	}
}
