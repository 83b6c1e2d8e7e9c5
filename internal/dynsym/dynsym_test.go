package dynsym_test

import (
	"os"
	"path/filepath"
	"testing"

	"bindgen/internal/dynsym"
	"bindgen/internal/testkit"
)

func writeBinary(t *testing.T, raw []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lib.so")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write binary: %v", err)
	}
	return path
}

func TestScanFiltersAndSorts(t *testing.T) {
	table, strtab := testkit.Symtab([]testkit.Symbol{
		{Name: "__bindgen_describe_beta", Addr: 0x2000, Shndx: 1},
		{Name: "unrelated_export", Addr: 0x3000, Shndx: 1},
		{Name: "__bindgen_describe_alpha", Addr: 0x4000, Shndx: 1},
	})
	raw := testkit.ELF([]testkit.Section{
		{Name: ".dynsym", Type: 11, Data: table, Link: 2, Info: 1, Entsize: 24},
		{Name: ".dynstr", Type: 3, Data: strtab},
	})

	names, err := dynsym.Scan(writeBinary(t, raw))
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	want := []string{"__bindgen_describe_alpha", "__bindgen_describe_beta"}
	if len(names) != len(want) {
		t.Fatalf("Scan returned %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("Scan returned %v, want %v", names, want)
		}
	}
}

func TestScanWithoutDescriptorSymbols(t *testing.T) {
	table, strtab := testkit.Symtab([]testkit.Symbol{
		{Name: "plain_function", Addr: 0x2000, Shndx: 1},
	})
	raw := testkit.ELF([]testkit.Section{
		{Name: ".dynsym", Type: 11, Data: table, Link: 2, Info: 1, Entsize: 24},
		{Name: ".dynstr", Type: 3, Data: strtab},
	})

	names, err := dynsym.Scan(writeBinary(t, raw))
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(names) != 0 {
		t.Fatalf("Scan returned %v, want none", names)
	}
}

func TestScanWithoutDynamicSymbolTable(t *testing.T) {
	raw := testkit.ELF([]testkit.Section{
		{Name: ".bgendat", Type: 1, Addr: 0x1000, Data: []byte{1, 2, 3}},
	})
	names, err := dynsym.Scan(writeBinary(t, raw))
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(names) != 0 {
		t.Fatalf("Scan returned %v, want none", names)
	}
}

func TestScanRejectsNonELF(t *testing.T) {
	if _, err := dynsym.Scan(writeBinary(t, []byte("#!/bin/sh\n"))); err == nil {
		t.Fatalf("Scan accepted a non-ELF file")
	}
}
