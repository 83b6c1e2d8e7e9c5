package diag

// Reporter is the minimal contract for receiving diagnostics from pipeline
// stages. Implementations: BagReporter (collects into a Bag), NopReporter.
type Reporter interface {
	Report(d Diagnostic)
}

// BagReporter collects diagnostics into a Bag.
type BagReporter struct {
	Bag *Bag
}

func (r BagReporter) Report(d Diagnostic) {
	r.Bag.Add(d)
}

// NopReporter drops everything.
type NopReporter struct{}

func (NopReporter) Report(Diagnostic) {}

// Error is a shortcut for reporting a SevError diagnostic attributed to an
// export ("" for whole-binary conditions).
func Error(r Reporter, code Code, export, msg string) {
	r.Report(Diagnostic{Severity: SevError, Code: code, Export: export, Message: msg})
}

// Warning is a shortcut for reporting a SevWarning diagnostic.
func Warning(r Reporter, code Code, export, msg string) {
	r.Report(Diagnostic{Severity: SevWarning, Code: code, Export: export, Message: msg})
}
