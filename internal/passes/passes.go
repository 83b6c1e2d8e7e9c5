// Package passes strings the code generation stages together as typed,
// composable transformations. Each stage maps one representation onto the
// next; composing two stages is itself a stage, so a whole pipeline is
// built as one expression and run with a single call.
package passes

import "fmt"

// Pass transforms one pipeline representation into the next. A failing
// pass aborts the pipeline; later stages never see a partial value.
type Pass[In, Out any] interface {
	Name() string
	Run(In) (Out, error)
}

type funcPass[In, Out any] struct {
	name string
	fn   func(In) (Out, error)
}

func (p funcPass[In, Out]) Name() string { return p.name }

func (p funcPass[In, Out]) Run(in In) (Out, error) { return p.fn(in) }

// New wraps a function as a named pass.
func New[In, Out any](name string, fn func(In) (Out, error)) Pass[In, Out] {
	return funcPass[In, Out]{name: name, fn: fn}
}

// Compose chains two passes into one. The composed pass fails with the
// first stage's error, wrapped with that stage's name.
func Compose[In, Mid, Out any](first Pass[In, Mid], second Pass[Mid, Out]) Pass[In, Out] {
	name := first.Name() + "," + second.Name()
	return New(name, func(in In) (Out, error) {
		mid, err := first.Run(in)
		if err != nil {
			var zero Out
			return zero, fmt.Errorf("%s: %w", first.Name(), err)
		}
		out, err := second.Run(mid)
		if err != nil {
			var zero Out
			return zero, fmt.Errorf("%s: %w", second.Name(), err)
		}
		return out, nil
	})
}

// OnlyIf gates a same-representation pass behind a flag; when disabled
// the input passes through untouched.
func OnlyIf[T any](p Pass[T, T], enabled bool) Pass[T, T] {
	if enabled {
		return p
	}
	return New(p.Name()+"(disabled)", func(in T) (T, error) {
		return in, nil
	})
}
