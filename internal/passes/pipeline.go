package passes

import (
	"bindgen/internal/csast"
	"bindgen/internal/cstoken"
	"bindgen/internal/descriptor"
	"bindgen/internal/marshal"
)

// Entry classifies a sorted export list into the binding module.
func Entry(library, namespace, class string) Pass[[]descriptor.Export, marshal.Module] {
	return New("entry", func(exports []descriptor.Export) (marshal.Module, error) {
		return marshal.Assemble(library, namespace, class, exports)
	})
}

// LowerBindings lowers the binding module into the C# syntax tree.
func LowerBindings() Pass[marshal.Module, csast.SourceFile] {
	return New("lower-bindings", func(m marshal.Module) (csast.SourceFile, error) {
		return m.Lower(), nil
	})
}

// LowerTokens lowers the syntax tree to the raw token stream.
func LowerTokens() Pass[csast.SourceFile, cstoken.Stream] {
	return New("lower-tokens", func(f csast.SourceFile) (cstoken.Stream, error) {
		var ts cstoken.Stream
		f.Tokens(&ts)
		return ts, nil
	})
}

// Format injects newline and indentation markers into the stream.
func Format() Pass[cstoken.Stream, cstoken.Stream] {
	return New("format", func(ts cstoken.Stream) (cstoken.Stream, error) {
		return cstoken.Format(ts), nil
	})
}

// Default is the standard pipeline from export descriptors to a
// render-ready token stream. Formatting is skipped when format is false;
// the stream still renders to equivalent tokens either way.
func Default(library, namespace, class string, format bool) Pass[[]descriptor.Export, cstoken.Stream] {
	return Compose(
		Compose(
			Compose(Entry(library, namespace, class), LowerBindings()),
			LowerTokens(),
		),
		OnlyIf(Format(), format),
	)
}
