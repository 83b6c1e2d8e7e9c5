package driver

import (
	"errors"

	"bindgen/internal/descriptor"
	"bindgen/internal/dynsym"
	"bindgen/internal/elfload"
)

// Extract pulls the export descriptors out of one binary and returns
// them sorted. The dynamic-symbol strategy is preferred when this build
// can call into foreign binaries; builds without cgo, and binaries that
// expose no describe symbols, fall back to section extraction.
func Extract(path string) ([]descriptor.Export, error) {
	if dynsym.Available() {
		exports, err := dynsym.Extract(path)
		switch {
		case err == nil:
			descriptor.Sort(exports)
			return exports, nil
		case errors.Is(err, dynsym.ErrNoSymbols), errors.Is(err, dynsym.ErrUnavailable):
			// fall through to sections
		default:
			return nil, err
		}
	}

	im, err := elfload.Load(path)
	if err != nil {
		return nil, err
	}
	exports, err := elfload.DecodeTable(im)
	if err != nil {
		return nil, err
	}
	descriptor.Sort(exports)
	return exports, nil
}
