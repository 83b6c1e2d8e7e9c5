// Package dynsym extracts descriptors by calling into the binary itself.
// The instrumenting toolchain can emit one zero-argument function per
// export, named under a fixed prefix, each returning a pointer to one
// framed descriptor record. When the binary can be dlopened this is the
// preferred strategy: it needs no relocation handling at all. Only
// symbols under the prefix are ever invoked; anything else in the
// dynamic symbol table is left alone.
package dynsym

import (
	"bytes"
	"debug/elf"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
)

// DescribePrefix marks the zero-argument descriptor functions.
const DescribePrefix = "__bindgen_describe"

// ErrUnavailable means this build cannot call into foreign binaries.
var ErrUnavailable = errors.New("dynsym: descriptor invocation requires cgo on linux")

// ErrNoSymbols means the binary exports nothing under the prefix. The
// caller is expected to fall back to section extraction.
var ErrNoSymbols = errors.New("dynsym: no descriptor symbols in dynamic symbol table")

// Scan returns the descriptor symbol names exported by the binary at
// path, sorted for deterministic invocation order.
func Scan(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := elf.NewFile(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("dynsym: %s is not an ELF binary: %w", path, err)
	}

	syms, err := f.DynamicSymbols()
	if err != nil {
		// A binary without a dynamic symbol table simply has nothing for
		// this strategy; the caller falls back to section extraction.
		if errors.Is(err, elf.ErrNoSymbols) {
			return nil, nil
		}
		return nil, fmt.Errorf("dynsym: failed to read dynamic symbols of %s: %w", path, err)
	}

	var names []string
	for _, sym := range syms {
		if strings.HasPrefix(sym.Name, DescribePrefix) {
			names = append(names, sym.Name)
		}
	}
	sort.Strings(names)
	return names, nil
}
