package csast

import "bindgen/internal/cstoken"

// Visibility is a C# access modifier.
type Visibility uint8

const (
	Public Visibility = iota
	Private
	Protected
)

func (v Visibility) Tokens(ts *cstoken.Stream) {
	switch v {
	case Public:
		ts.Ident("public")
	case Private:
		ts.Ident("private")
	case Protected:
		ts.Ident("protected")
	}
}

// Attribute is `[$name($args,*)]`, rendered on its own line.
type Attribute struct {
	Name Ident
	Args []Expr
}

func (a *Attribute) Tokens(ts *cstoken.Stream) {
	var content cstoken.Stream
	a.Name.Tokens(&content)
	if len(a.Args) > 0 {
		var args cstoken.Stream
		for i, arg := range a.Args {
			if i > 0 {
				args.Push(cstoken.Comma)
			}
			arg.Tokens(&args)
		}
		content.Open(cstoken.DelimParen, args)
	}
	ts.Open(cstoken.DelimBracket, content)
	ts.Newline()
}

// Param is one method parameter.
type Param struct {
	Name Ident
	Type Type
}

// Method is a C# method: attributes, modifiers, signature and an optional
// body. Extern methods have no body and are terminated with a semicolon.
type Method struct {
	Attrs      []Attribute
	Visibility Visibility
	Static     bool
	Extern     bool
	Unsafe     bool
	Name       Ident
	Return     Type
	Params     []Param
	Body       []Stmt
	HasBody    bool
}

func (m *Method) Tokens(ts *cstoken.Stream) {
	for i := range m.Attrs {
		m.Attrs[i].Tokens(ts)
	}
	m.Visibility.Tokens(ts)
	if m.Static {
		ts.Ident("static")
	}
	if m.Unsafe {
		ts.Ident("unsafe")
	}
	if m.Extern {
		ts.Ident("extern")
	}
	m.Return.Tokens(ts)
	m.Name.Tokens(ts)

	var params cstoken.Stream
	for i, p := range m.Params {
		if i > 0 {
			params.Push(cstoken.Comma)
		}
		p.Type.Tokens(&params)
		p.Name.Tokens(&params)
	}
	ts.Open(cstoken.DelimParen, params)

	if m.HasBody {
		var body cstoken.Stream
		BodyTokens(m.Body, &body)
		ts.Open(cstoken.DelimBrace, body)
	} else {
		ts.Push(cstoken.Semicolon)
	}
}

// ObjectField is one field of a class or struct.
type ObjectField struct {
	Attrs      []Attribute
	Visibility Visibility
	Type       Type
	Name       Ident
}

func (f *ObjectField) Tokens(ts *cstoken.Stream) {
	for i := range f.Attrs {
		f.Attrs[i].Tokens(ts)
	}
	f.Visibility.Tokens(ts)
	f.Type.Tokens(ts)
	f.Name.Tokens(ts)
	ts.Push(cstoken.Semicolon)
}

// ObjectKind distinguishes classes from structs.
type ObjectKind uint8

const (
	Class ObjectKind = iota
	StructObject
)

func (k ObjectKind) Tokens(ts *cstoken.Stream) {
	switch k {
	case Class:
		ts.Ident("class")
	case StructObject:
		ts.Ident("struct")
	}
}

// Object is a class or struct definition.
type Object struct {
	Attrs      []Attribute
	Visibility Visibility
	Sealed     bool
	Static     bool
	Kind       ObjectKind
	Name       Ident
	Fields     []ObjectField
	Methods    []Method
}

func (o *Object) Tokens(ts *cstoken.Stream) {
	for i := range o.Attrs {
		o.Attrs[i].Tokens(ts)
	}
	o.Visibility.Tokens(ts)
	if o.Sealed {
		ts.Ident("sealed")
	}
	if o.Static {
		ts.Ident("static")
	}
	o.Kind.Tokens(ts)
	o.Name.Tokens(ts)

	var content cstoken.Stream
	for i := range o.Fields {
		o.Fields[i].Tokens(&content)
	}
	for i := range o.Methods {
		o.Methods[i].Tokens(&content)
	}
	ts.Open(cstoken.DelimBrace, content)
}

// TopKind discriminates top-level element variants.
type TopKind uint8

const (
	TopComment TopKind = iota
	TopUsing
	TopNamespace
	TopObject
)

// Comment is a block of // line comments.
type Comment struct {
	Lines []string
}

func (c *Comment) Tokens(ts *cstoken.Stream) {
	for _, line := range c.Lines {
		if line == "" {
			ts.Ident("//")
		} else {
			ts.Ident("// " + line)
		}
		ts.Newline()
	}
}

// Using is `using $path ;`.
type Using struct {
	Path string
}

func (u *Using) Tokens(ts *cstoken.Stream) {
	ts.Ident("using")
	ts.Ident(u.Path)
	ts.Push(cstoken.Semicolon)
}

// Namespace wraps nested top-level elements in `namespace $path { ... }`.
type Namespace struct {
	Path     string
	Elements []TopLevel
}

func (n *Namespace) Tokens(ts *cstoken.Stream) {
	ts.Ident("namespace")
	ts.Ident(n.Path)
	var content cstoken.Stream
	for i := range n.Elements {
		n.Elements[i].Tokens(&content)
	}
	ts.Open(cstoken.DelimBrace, content)
}

// TopLevel is a kind-tagged top-level element.
type TopLevel struct {
	Kind TopKind

	Comment   *Comment
	Using     *Using
	Namespace *Namespace
	Object    *Object
}

// CommentElement wraps a header comment.
func CommentElement(lines ...string) TopLevel {
	return TopLevel{Kind: TopComment, Comment: &Comment{Lines: lines}}
}

// UsingElement wraps a using statement.
func UsingElement(path string) TopLevel {
	return TopLevel{Kind: TopUsing, Using: &Using{Path: path}}
}

// NamespaceElement wraps a namespace.
func NamespaceElement(ns Namespace) TopLevel {
	n := ns
	return TopLevel{Kind: TopNamespace, Namespace: &n}
}

// ObjectElement wraps a class or struct definition.
func ObjectElement(obj Object) TopLevel {
	o := obj
	return TopLevel{Kind: TopObject, Object: &o}
}

func (t *TopLevel) Tokens(ts *cstoken.Stream) {
	switch t.Kind {
	case TopComment:
		t.Comment.Tokens(ts)
	case TopUsing:
		t.Using.Tokens(ts)
	case TopNamespace:
		t.Namespace.Tokens(ts)
	case TopObject:
		t.Object.Tokens(ts)
	}
}

// SourceFile is the entirety of one generated compilation unit.
type SourceFile struct {
	Elements []TopLevel
}

// Tokens lowers the whole file.
func (f *SourceFile) Tokens(ts *cstoken.Stream) {
	for i := range f.Elements {
		f.Elements[i].Tokens(ts)
	}
}
