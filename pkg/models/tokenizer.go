package models

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"strings"
)

// directive identifies an OBJ line type.
type directive int

const (
	// directiveUnknown covers every line the importer does not understand.
	// Such lines are skipped.
	directiveUnknown directive = iota
	directiveVertex
	directiveTexCoord
	directiveNormal
	directiveFace
	directiveMaterialLib
	directiveUseMaterial
)

func parseDirective(keyword string) directive {
	switch keyword {
	case "v":
		return directiveVertex
	case "vt":
		return directiveTexCoord
	case "vn":
		return directiveNormal
	case "f":
		return directiveFace
	case "mtllib":
		return directiveMaterialLib
	case "usemtl":
		return directiveUseMaterial
	default:
		return directiveUnknown
	}
}

// tokenizer splits a text stream into keyword + fields, one line at a time.
// Comments (from '#' to end of line) and blank lines are dropped. Lines have
// no length limit.
type tokenizer struct {
	r    *bufio.Reader
	line int
	err  error
}

func newTokenizer(r io.Reader) *tokenizer {
	return &tokenizer{r: bufio.NewReader(r)}
}

// next returns the keyword and remaining fields of the next non-empty line.
// ok is false at end of input or on a read error (see Err).
func (t *tokenizer) next() (keyword string, fields []string, ok bool) {
	for t.err == nil {
		text, err := t.r.ReadString('\n')
		if err != nil {
			if !errors.Is(err, io.EOF) {
				t.err = err
				return "", nil, false
			}
			t.err = io.EOF
			if text == "" {
				return "", nil, false
			}
		}
		t.line++

		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		tokens := strings.Fields(text)
		if len(tokens) == 0 {
			continue
		}
		return tokens[0], tokens[1:], true
	}
	return "", nil, false
}

// Err returns the first non-EOF read error.
func (t *tokenizer) Err() error {
	if errors.Is(t.err, io.EOF) {
		return nil
	}
	return t.err
}

// parseFloats reads up to n floats from fields. Missing or malformed values
// are left at zero.
func parseFloats(fields []string, n int) []float64 {
	out := make([]float64, n)
	for i := 0; i < n && i < len(fields); i++ {
		if f, err := strconv.ParseFloat(fields[i], 64); err == nil {
			out[i] = f
		}
	}
	return out
}
