// Package cstoken is the lowest code-generation representation: a flat,
// language-agnostic token stream. It knows delimiters, punctuation,
// identifiers and formatting markers, and nothing about what they mean.
package cstoken

// Delim is the delimiter kind of a token group.
type Delim uint8

const (
	// DelimNone groups tokens without emitting delimiters.
	DelimNone Delim = iota
	// DelimBrace is { ... }.
	DelimBrace
	// DelimParen is ( ... ).
	DelimParen
	// DelimBracket is [ ... ].
	DelimBracket
)

func (d Delim) open() byte {
	switch d {
	case DelimBrace:
		return '{'
	case DelimParen:
		return '('
	case DelimBracket:
		return '['
	}
	return ' '
}

func (d Delim) close() byte {
	switch d {
	case DelimBrace:
		return '}'
	case DelimParen:
		return ')'
	case DelimBracket:
		return ']'
	}
	return ' '
}

// Punct enumerates the punctuation tokens the generator emits.
type Punct uint8

const (
	Semicolon Punct = iota
	Ampersand
	Asterisk
	Equals
	Period
	Comma
	Question
	Colon
)

func (p Punct) String() string {
	switch p {
	case Semicolon:
		return ";"
	case Ampersand:
		return "&"
	case Asterisk:
		return "*"
	case Equals:
		return "="
	case Period:
		return "."
	case Comma:
		return ","
	case Question:
		return "?"
	case Colon:
		return ":"
	}
	return "?"
}

// FormatKind enumerates formatting markers.
type FormatKind uint8

const (
	// FormatNewline starts a new output line.
	FormatNewline FormatKind = iota
	// FormatIndent sets the indentation level of the current line.
	FormatIndent
)

// TreeKind discriminates token tree variants.
type TreeKind uint8

const (
	// TreeIdent is an identifier or keyword token.
	TreeIdent TreeKind = iota
	// TreePunct is a punctuation token.
	TreePunct
	// TreeGroup is a delimited nested stream.
	TreeGroup
	// TreeFormat is a formatting marker.
	TreeFormat
)

// Group is a delimited nested stream.
type Group struct {
	Delim   Delim
	Content Stream
}

// Tree is one kind-tagged token tree node. Only the fields for the active
// Kind are meaningful.
type Tree struct {
	Kind TreeKind

	Ident  string
	Punct  Punct
	Group  *Group
	Format FormatKind
	Indent int
}

// Stream is an ordered token sequence. It is a pure value: two streams with
// the same parts are interchangeable.
type Stream struct {
	parts []Tree
}

// Len returns the number of top-level trees in the stream.
func (s *Stream) Len() int { return len(s.parts) }

// Trees returns the underlying token list. Callers must not modify it.
func (s *Stream) Trees() []Tree { return s.parts }

// Ident appends an identifier token.
func (s *Stream) Ident(name string) {
	s.parts = append(s.parts, Tree{Kind: TreeIdent, Ident: name})
}

// Push appends a punctuation token.
func (s *Stream) Push(p Punct) {
	s.parts = append(s.parts, Tree{Kind: TreePunct, Punct: p})
}

// Open appends a delimited group.
func (s *Stream) Open(d Delim, content Stream) {
	s.parts = append(s.parts, Tree{Kind: TreeGroup, Group: &Group{Delim: d, Content: content}})
}

// Newline appends a newline marker.
func (s *Stream) Newline() {
	s.parts = append(s.parts, Tree{Kind: TreeFormat, Format: FormatNewline})
}

// IndentTo appends an indentation marker for the given level.
func (s *Stream) IndentTo(level int) {
	s.parts = append(s.parts, Tree{Kind: TreeFormat, Format: FormatIndent, Indent: level})
}

// Extend appends all trees of other.
func (s *Stream) Extend(other Stream) {
	s.parts = append(s.parts, other.parts...)
}

// PrependNewline inserts a newline marker at the front of the stream.
func (s *Stream) PrependNewline() {
	s.parts = append([]Tree{{Kind: TreeFormat, Format: FormatNewline}}, s.parts...)
}

func (s *Stream) push(t Tree) {
	s.parts = append(s.parts, t)
}
