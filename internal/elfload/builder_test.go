package elfload_test

import (
	"bindgen/internal/elfload"
	"bindgen/internal/testkit"
)

// image wraps the builder's sections into a loaded Image, skipping the
// ELF container entirely for decoder-level tests.
func image(b *testkit.BinaryBuilder) *elfload.Image {
	return &elfload.Image{
		Data:  elfload.Section{Name: ".bgendat", Data: b.Data, Addr: b.DataBase},
		Table: elfload.Section{Name: ".bindgen", Data: b.Table(), Addr: b.TableBase},
	}
}
