// Package elfload extracts the embedded descriptor table from a compiled
// ELF binary. Two sections are copied out of the file: .bgendat holds
// names and auxiliary metadata, .bindgen the export table itself. Both
// are kept as owned buffers tagged with their source virtual-address
// range; every embedded pointer is mapped back into a buffer through
// Resolve with bounds checks, never dereferenced raw.
package elfload

import (
	"fmt"

	"bindgen/internal/diag"
)

// Section names the toolchain emits descriptor data under. Both fit the
// 8-character section-name limit of common object formats.
const (
	DataSection  = ".bgendat"
	TableSection = ".bindgen"
)

// Error is a binary-format failure with a stable diagnostic code.
type Error struct {
	Code diag.Code
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

// Diagnostic converts the error into a reportable diagnostic.
func (e *Error) Diagnostic() diag.Diagnostic {
	return diag.Diagnostic{
		Severity: diag.SevError,
		Code:     e.Code,
		Message:  e.Msg,
	}
}

func errf(code diag.Code, format string, args ...any) *Error {
	return &Error{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// Section is one loaded section: a copy of its bytes plus the virtual
// address the section occupied in the binary.
type Section struct {
	Name string
	Data []byte
	Addr uint64
}

func (s *Section) contains(addr uint64) bool {
	return addr >= s.Addr && addr < s.Addr+uint64(len(s.Data))
}

// bytes returns the n bytes at offset off, failing instead of slicing
// past the buffer.
func (s *Section) bytes(off, n int) ([]byte, error) {
	if off < 0 || n < 0 || off+n > len(s.Data) {
		return nil, errf(diag.BinBadPayload,
			"section %s: read of %d bytes at offset %d exceeds %d-byte buffer", s.Name, n, off, len(s.Data))
	}
	return s.Data[off : off+n], nil
}

// Image is the pair of loaded descriptor sections.
type Image struct {
	Data  Section
	Table Section
}

// Resolve maps a virtual address to the section holding it and the
// offset within that section's buffer. The descriptor data is defined to
// be self-contained: an address outside both sections is an error.
func (im *Image) Resolve(addr uint64) (*Section, int, error) {
	if im.Data.contains(addr) {
		return &im.Data, int(addr - im.Data.Addr), nil
	}
	if im.Table.contains(addr) {
		return &im.Table, int(addr - im.Table.Addr), nil
	}
	return nil, 0, errf(diag.BinRelocOutOfRange,
		"address %#x falls outside the loaded descriptor sections", addr)
}
