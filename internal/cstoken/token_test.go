package cstoken_test

import (
	"strings"
	"testing"

	"bindgen/internal/cstoken"
)

// fields compares two renderings token-by-token, ignoring whitespace.
func sameTokens(t *testing.T, got, want string) {
	t.Helper()
	g := strings.Fields(got)
	w := strings.Fields(want)
	if len(g) != len(w) {
		t.Fatalf("token count mismatch\ngot:  %v\nwant: %v", g, w)
	}
	for i := range g {
		if g[i] != w[i] {
			t.Fatalf("token %d: got %q want %q\nfull: %v", i, g[i], w[i], g)
		}
	}
}

func TestRenderFlatStream(t *testing.T) {
	var s cstoken.Stream
	s.Ident("using")
	s.Ident("System")
	s.Push(cstoken.Semicolon)

	sameTokens(t, s.RenderString(), "using System ;")
}

func TestRenderNestedGroups(t *testing.T) {
	var inner cstoken.Stream
	inner.Ident("x")
	inner.Push(cstoken.Comma)
	inner.Ident("y")

	var body cstoken.Stream
	body.Ident("Call")
	body.Open(cstoken.DelimParen, inner)
	body.Push(cstoken.Semicolon)

	var s cstoken.Stream
	s.Ident("namespace")
	s.Ident("N")
	s.Open(cstoken.DelimBrace, body)

	sameTokens(t, s.RenderString(), "namespace N { Call ( x , y ) ; }")
}

func TestRenderEmptyBracketGroup(t *testing.T) {
	var s cstoken.Stream
	s.Ident("Int16")
	s.Open(cstoken.DelimBracket, cstoken.Stream{})
	sameTokens(t, s.RenderString(), "Int16 [ ]")
}

func TestFormatBreaksAfterSemicolons(t *testing.T) {
	var s cstoken.Stream
	s.Ident("a")
	s.Push(cstoken.Semicolon)
	s.Ident("b")
	s.Push(cstoken.Semicolon)

	got := cstoken.Format(s).RenderString()
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("want 2 lines, got %d: %q", len(lines), got)
	}
	if strings.TrimSpace(lines[0]) != "a ;" || strings.TrimSpace(lines[1]) != "b ;" {
		t.Fatalf("unexpected lines: %q", lines)
	}
}

func TestFormatIndentsBraceGroups(t *testing.T) {
	var body cstoken.Stream
	body.Ident("stmt")
	body.Push(cstoken.Semicolon)

	var s cstoken.Stream
	s.Ident("class")
	s.Ident("C")
	s.Open(cstoken.DelimBrace, body)

	got := cstoken.Format(s).RenderString()

	// Statement line is one level deep, closing brace back at zero.
	var stmtLine, closeLine string
	for _, line := range strings.Split(got, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "stmt ;" {
			stmtLine = line
		}
		if trimmed == "}" {
			closeLine = line
		}
	}
	if stmtLine == "" || closeLine == "" {
		t.Fatalf("missing expected lines in output:\n%s", got)
	}
	if !strings.HasPrefix(stmtLine, "    ") {
		t.Fatalf("statement not indented: %q", stmtLine)
	}
	if strings.HasPrefix(closeLine, " ") {
		t.Fatalf("closing brace should not be indented: %q", closeLine)
	}
	// Formatting must not change token content.
	sameTokens(t, got, s.RenderString())
}

func TestFormatIsContentPreserving(t *testing.T) {
	var inner cstoken.Stream
	inner.Ident("p")

	var body cstoken.Stream
	body.Ident("fixed")
	body.Open(cstoken.DelimParen, inner)
	body.Open(cstoken.DelimBrace, cstoken.Stream{})

	var s cstoken.Stream
	s.Open(cstoken.DelimBrace, body)

	sameTokens(t, cstoken.Format(s).RenderString(), s.RenderString())
}
