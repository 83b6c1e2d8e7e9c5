// Package testkit builds the synthetic binaries the loader tests feed
// through the real extraction paths. The objects are minimal but valid:
// debug/elf parses them the same way it parses toolchain output.
package testkit

import "encoding/binary"

// Section describes one section of a synthetic ELF object. Types are
// raw SHT values so callers can build anything a real binary carries.
type Section struct {
	Name    string
	Type    uint32
	Addr    uint64
	Data    []byte
	Link    uint32
	Info    uint32
	Entsize uint64
}

// ELF assembles a minimal 64-bit little-endian shared object from the
// given sections. A null section is prepended and .shstrtab appended, so
// the caller's first section lands at header index 1.
func ELF(sections []Section) []byte {
	all := make([]Section, 0, len(sections)+2)
	all = append(all, Section{})
	all = append(all, sections...)

	shstrtab := []byte{0}
	nameOff := make([]uint32, len(all)+1)
	for i, sec := range all {
		if sec.Name == "" {
			continue
		}
		nameOff[i] = uint32(len(shstrtab))
		shstrtab = append(shstrtab, sec.Name...)
		shstrtab = append(shstrtab, 0)
	}
	nameOff[len(all)] = uint32(len(shstrtab))
	shstrtab = append(shstrtab, ".shstrtab"...)
	shstrtab = append(shstrtab, 0)
	all = append(all, Section{Name: ".shstrtab", Type: 3, Data: shstrtab})

	const ehSize = 64
	body := make([]byte, ehSize)
	offsets := make([]uint64, len(all))
	for i, sec := range all {
		offsets[i] = uint64(len(body))
		body = append(body, sec.Data...)
	}
	for len(body)%8 != 0 {
		body = append(body, 0)
	}
	shoff := uint64(len(body))

	for i, sec := range all {
		sh := make([]byte, 64)
		binary.LittleEndian.PutUint32(sh[0:], nameOff[i])
		binary.LittleEndian.PutUint32(sh[4:], sec.Type)
		binary.LittleEndian.PutUint64(sh[16:], sec.Addr)
		binary.LittleEndian.PutUint64(sh[24:], offsets[i])
		binary.LittleEndian.PutUint64(sh[32:], uint64(len(sec.Data)))
		binary.LittleEndian.PutUint32(sh[40:], sec.Link)
		binary.LittleEndian.PutUint32(sh[44:], sec.Info)
		binary.LittleEndian.PutUint64(sh[48:], 1)
		binary.LittleEndian.PutUint64(sh[56:], sec.Entsize)
		body = append(body, sh...)
	}

	// ELF header: class 64, little-endian, shared object, x86-64.
	copy(body[0:4], "\x7fELF")
	body[4], body[5], body[6] = 2, 1, 1
	binary.LittleEndian.PutUint16(body[16:], 3)
	binary.LittleEndian.PutUint16(body[18:], 62)
	binary.LittleEndian.PutUint32(body[20:], 1)
	binary.LittleEndian.PutUint64(body[40:], shoff)
	binary.LittleEndian.PutUint16(body[52:], ehSize)
	binary.LittleEndian.PutUint16(body[58:], 64)
	binary.LittleEndian.PutUint16(body[60:], uint16(len(all)))
	binary.LittleEndian.PutUint16(body[62:], uint16(len(all)-1))
	return body
}

// Symbol is one entry for a synthetic symbol table.
type Symbol struct {
	Name  string
	Addr  uint64
	Shndx uint16
}

// Symtab packs a symbol table with the mandatory null entry followed by
// the given symbols, returning the table and its string table.
func Symtab(syms []Symbol) (table, strtab []byte) {
	strtab = []byte{0}
	table = make([]byte, 24)

	for _, sym := range syms {
		entry := make([]byte, 24)
		binary.LittleEndian.PutUint32(entry[0:], uint32(len(strtab)))
		entry[4] = 0x11 // global object
		binary.LittleEndian.PutUint16(entry[6:], sym.Shndx)
		binary.LittleEndian.PutUint64(entry[8:], sym.Addr)
		table = append(table, entry...)

		strtab = append(strtab, sym.Name...)
		strtab = append(strtab, 0)
	}
	return table, strtab
}

// Rela packs one RELA entry: patch target with symbol sym plus addend.
func Rela(target uint64, sym uint32, addend int64) []byte {
	entry := make([]byte, 24)
	binary.LittleEndian.PutUint64(entry[0:], target)
	binary.LittleEndian.PutUint64(entry[8:], uint64(sym)<<32|1)
	binary.LittleEndian.PutUint64(entry[16:], uint64(addend))
	return entry
}
