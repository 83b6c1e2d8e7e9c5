package csast

import (
	"strconv"

	"bindgen/internal/cstoken"
)

// Ident is either a source-level name or a synthetic generated identifier.
// Generated identifiers render under a reserved prefix that cannot collide
// with user identifiers coming out of the name converter.
type Ident struct {
	Name string
	ID   int
	Gen  bool
}

// Named returns a source-level identifier.
func Named(name string) Ident { return Ident{Name: name} }

// Generated returns the synthetic identifier with the given id.
func Generated(id int) Ident { return Ident{ID: id, Gen: true} }

// Render returns the identifier's spelling.
func (id Ident) Render() string {
	if id.Gen {
		return "_gen" + strconv.Itoa(id.ID)
	}
	return id.Name
}

// Tokens lowers the identifier.
func (id Ident) Tokens(ts *cstoken.Stream) {
	ts.Ident(id.Render())
}

// Shifted returns the identifier with its generated id moved by delta.
// Named identifiers are returned unchanged.
func (id Ident) Shifted(delta int) Ident {
	if !id.Gen {
		return id
	}
	return Generated(id.ID + delta)
}

// IdentAlloc issues generated identifiers with monotonically increasing
// ids. One allocator is scoped to one fragment or method body and is never
// shared across methods.
type IdentAlloc struct {
	next int
}

// Next issues the next generated identifier.
func (a *IdentAlloc) Next() Ident {
	id := Generated(a.next)
	a.next++
	return id
}

// Issued returns how many identifiers have been issued. The maximum issued
// id is Issued()-1.
func (a *IdentAlloc) Issued() int { return a.next }
