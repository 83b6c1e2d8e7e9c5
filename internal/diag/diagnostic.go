package diag

// Note attaches secondary detail to a diagnostic.
type Note struct {
	Msg string
}

// Diagnostic is one reported condition. Export carries the name of the
// export descriptor the condition is attributed to, or "" for whole-binary
// conditions.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Export   string
	Notes    []Note
}

// WithNote returns a copy of the diagnostic with an extra note appended.
func (d Diagnostic) WithNote(msg string) Diagnostic {
	d.Notes = append(append([]Note(nil), d.Notes...), Note{Msg: msg})
	return d
}
