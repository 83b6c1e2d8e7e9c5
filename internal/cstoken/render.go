package cstoken

import (
	"io"
	"strings"
)

const indentWidth = 4

// Render serializes the stream. Tokens on one line are space-separated;
// newline markers end the line and indent markers pad the next one.
func (s Stream) Render(w io.Writer) error {
	r := renderer{w: w, atLineStart: true}
	if err := r.stream(&s); err != nil {
		return err
	}
	return nil
}

// RenderString renders into a string, for tests and small outputs.
func (s Stream) RenderString() string {
	var sb strings.Builder
	// strings.Builder never returns a write error.
	_ = s.Render(&sb)
	return sb.String()
}

type renderer struct {
	w           io.Writer
	atLineStart bool
}

func (r *renderer) write(text string) error {
	_, err := io.WriteString(r.w, text)
	return err
}

func (r *renderer) token(text string) error {
	if !r.atLineStart {
		if err := r.write(" "); err != nil {
			return err
		}
	}
	r.atLineStart = false
	return r.write(text)
}

func (r *renderer) stream(s *Stream) error {
	for i := range s.parts {
		if err := r.tree(&s.parts[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *renderer) tree(t *Tree) error {
	switch t.Kind {
	case TreeIdent:
		return r.token(t.Ident)
	case TreePunct:
		return r.token(t.Punct.String())
	case TreeGroup:
		if t.Group.Delim != DelimNone {
			if err := r.token(string(t.Group.Delim.open())); err != nil {
				return err
			}
		}
		if err := r.stream(&t.Group.Content); err != nil {
			return err
		}
		if t.Group.Delim != DelimNone {
			return r.token(string(t.Group.Delim.close()))
		}
		return nil
	case TreeFormat:
		switch t.Format {
		case FormatNewline:
			r.atLineStart = true
			return r.write("\n")
		case FormatIndent:
			if t.Indent > 0 {
				return r.write(strings.Repeat(" ", t.Indent*indentWidth))
			}
			return nil
		}
	}
	return nil
}
