package cstoken

// Format runs the two formatting passes over a raw stream: newline
// insertion, then indentation. The input stream is not modified.
func Format(s Stream) Stream {
	withNewlines := insertNewlines(&s)
	return insertIndents(&withNewlines, 0)
}

// insertNewlines breaks lines after every statement-terminating semicolon
// and around every brace-delimited group. Other delimiters stay inline.
func insertNewlines(old *Stream) Stream {
	var out Stream
	for i := range old.parts {
		t := &old.parts[i]
		switch t.Kind {
		case TreeGroup:
			content := insertNewlines(&t.Group.Content)
			if t.Group.Delim == DelimBrace {
				content.PrependNewline()
				out.Newline()
				out.Open(t.Group.Delim, content)
				out.Newline()
			} else {
				out.Open(t.Group.Delim, content)
			}
		case TreePunct:
			out.push(*t)
			if t.Punct == Semicolon {
				out.Newline()
			}
		default:
			out.push(*t)
		}
	}
	return out
}

// insertIndents follows every newline with an indent marker for the current
// depth. Depth grows by one inside each group; the marker directly before a
// closing brace is pulled back one level so the brace lines up with its
// opener.
func insertIndents(old *Stream, level int) Stream {
	var out Stream
	for i := range old.parts {
		t := &old.parts[i]
		switch t.Kind {
		case TreeGroup:
			content := insertIndents(&t.Group.Content, level+1)
			if n := content.Len(); n > 0 {
				last := &content.parts[n-1]
				if last.Kind == TreeFormat && last.Format == FormatIndent {
					last.Indent--
				}
			}
			out.Open(t.Group.Delim, content)
		case TreeFormat:
			out.push(*t)
			if t.Format == FormatNewline {
				out.IndentTo(level)
			}
		default:
			out.push(*t)
		}
	}
	return out
}
