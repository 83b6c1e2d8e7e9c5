package elfload

import (
	"bytes"
	"debug/elf"
	"encoding/binary"
	"os"

	"bindgen/internal/diag"
)

// Load reads the binary at path and returns its loaded descriptor image
// with all relocations applied.
func Load(path string) (*Image, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadBytes(raw)
}

// LoadBytes parses raw as an ELF binary, copies the two descriptor
// sections and patches every relocation whose target falls inside them.
func LoadBytes(raw []byte) (*Image, error) {
	f, err := elf.NewFile(bytes.NewReader(raw))
	if err != nil {
		return nil, errf(diag.BinUnsupportedFormat, "not an ELF binary: %v", err)
	}
	if f.Class != elf.ELFCLASS64 || f.Data != elf.ELFDATA2LSB {
		return nil, errf(diag.BinUnsupportedFormat,
			"descriptor tables are only emitted into little-endian 64-bit ELF binaries")
	}

	im := &Image{}
	if err := loadSection(f, DataSection, &im.Data); err != nil {
		return nil, err
	}
	if err := loadSection(f, TableSection, &im.Table); err != nil {
		return nil, err
	}
	if err := relocate(f, im); err != nil {
		return nil, err
	}
	return im, nil
}

func loadSection(f *elf.File, name string, out *Section) error {
	sec := f.Section(name)
	if sec == nil {
		return errf(diag.BinMissingSection, "binary has no %s section", name)
	}
	data, err := sec.Data()
	if err != nil {
		return errf(diag.BinShortSection, "section %s: %v", name, err)
	}
	if uint64(len(data)) < sec.Size {
		return errf(diag.BinShortSection,
			"section %s: %d bytes on disk, header claims %d", name, len(data), sec.Size)
	}
	*out = Section{Name: name, Data: data, Addr: sec.Addr}
	return nil
}

const (
	relaEntrySize = 24
	relEntrySize  = 16
	wordSize      = 8
)

// relocate walks every REL/RELA section and patches entries targeting
// the loaded buffers. A patched slot always receives the symbol address
// plus addend; the resolved address must itself land inside one of the
// two buffers, since the descriptor data is self-contained.
func relocate(f *elf.File, im *Image) error {
	for _, sec := range f.Sections {
		if sec.Type != elf.SHT_RELA && sec.Type != elf.SHT_REL {
			continue
		}
		syms, err := linkedSymbols(f, sec)
		if err != nil {
			return err
		}
		data, err := sec.Data()
		if err != nil {
			return errf(diag.BinShortSection, "relocation section %s: %v", sec.Name, err)
		}

		entrySize := relaEntrySize
		if sec.Type == elf.SHT_REL {
			entrySize = relEntrySize
		}
		for off := 0; off+entrySize <= len(data); off += entrySize {
			entry := data[off : off+entrySize]
			target := binary.LittleEndian.Uint64(entry[0:8])
			info := binary.LittleEndian.Uint64(entry[8:16])

			section, inside := targetSection(im, target)
			if !inside {
				continue
			}

			var addend int64
			if sec.Type == elf.SHT_RELA {
				addend = int64(binary.LittleEndian.Uint64(entry[16:24]))
			} else {
				slot, err := section.bytes(int(target-section.Addr), wordSize)
				if err != nil {
					return err
				}
				addend = int64(binary.LittleEndian.Uint64(slot))
			}

			value, err := relocValue(syms, info, addend)
			if err != nil {
				return err
			}
			if _, _, err := im.Resolve(value); err != nil {
				return errf(diag.BinRelocOutOfRange,
					"relocation at %#x resolves to %#x, outside the descriptor sections", target, value)
			}

			slot, err := section.bytes(int(target-section.Addr), wordSize)
			if err != nil {
				return errf(diag.BinRelocOutOfRange,
					"relocation target %#x leaves no room for a %d-byte slot in %s", target, wordSize, section.Name)
			}
			binary.LittleEndian.PutUint64(slot, value)
		}
	}
	return nil
}

func targetSection(im *Image, addr uint64) (*Section, bool) {
	if im.Data.contains(addr) {
		return &im.Data, true
	}
	if im.Table.contains(addr) {
		return &im.Table, true
	}
	return nil, false
}

// linkedSymbols loads the symbol table a relocation section refers to.
func linkedSymbols(f *elf.File, sec *elf.Section) ([]elf.Symbol, error) {
	link := int(sec.Link)
	if link <= 0 || link >= len(f.Sections) {
		return nil, errf(diag.BinRelocUnresolved,
			"relocation section %s links to missing symbol table %d", sec.Name, sec.Link)
	}

	var (
		syms []elf.Symbol
		err  error
	)
	if f.Sections[link].Type == elf.SHT_DYNSYM {
		syms, err = f.DynamicSymbols()
	} else {
		syms, err = f.Symbols()
	}
	if err != nil {
		return nil, errf(diag.BinRelocUnresolved,
			"relocation section %s: cannot read symbols: %v", sec.Name, err)
	}
	return syms, nil
}

// relocValue computes symbol address plus addend. Symbol index 0 marks a
// base-relative entry whose addend already is the final address.
func relocValue(syms []elf.Symbol, info uint64, addend int64) (uint64, error) {
	symIdx := info >> 32
	if symIdx == 0 {
		return uint64(addend), nil
	}
	// debug/elf drops the leading null symbol, so table indices are
	// shifted down by one.
	i := int(symIdx) - 1
	if i < 0 || i >= len(syms) {
		return 0, errf(diag.BinRelocUnresolved, "relocation names symbol %d of %d", symIdx, len(syms))
	}
	sym := syms[i]
	if sym.Section == elf.SHN_UNDEF && sym.Value == 0 {
		return 0, errf(diag.BinRelocUnresolved, "relocation against undefined symbol %q", sym.Name)
	}
	return sym.Value + uint64(addend), nil
}
