//go:build !linux || !cgo

package dynsym

import "bindgen/internal/descriptor"

// Available reports that this build cannot dlopen binaries.
func Available() bool { return false }

// Extract always fails on builds without dlopen support; the caller
// falls back to section extraction.
func Extract(string) ([]descriptor.Export, error) {
	return nil, ErrUnavailable
}
