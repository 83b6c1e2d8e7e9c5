package project

import (
	"fmt"
	"path/filepath"
	"strings"
)

// NativeBinary is one platform build of the bound library, referenced by
// the generated project so packing drops it under runtimes/<rid>/native/.
type NativeBinary struct {
	Platform Platform
	Path     string
}

func (b NativeBinary) fileName() string { return filepath.Base(b.Path) }

// baseName strips the path down to the library name: lib<name>.so and
// plain <name>.<ext> both collapse to <name>.
func (b NativeBinary) baseName() string {
	name := b.fileName()
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	if ext == ".so" && strings.HasPrefix(stem, "lib") {
		return stem[len("lib"):]
	}
	return stem
}

func (b NativeBinary) renderXML(w *strings.Builder) {
	name := b.fileName()
	fmt.Fprintf(w, "\n        <Content Include=%q Link=%q PackagePath=\"runtimes/%s/native/%s\">\n",
		filepath.ToSlash(b.Path), name, b.Platform.RID(), name)
	w.WriteString("            <CopyToOutputDirectory>PreserveNewest</CopyToOutputDirectory>\n")
	w.WriteString("        </Content>\n")
}

// BinarySet groups the per-platform builds of one library.
type BinarySet struct {
	baseName string
	binaries []NativeBinary
}

// NewBinarySet builds a set from at least one binary; all entries must
// resolve to the same library base name.
func NewBinarySet(binaries []NativeBinary) (*BinarySet, error) {
	if len(binaries) == 0 {
		return nil, fmt.Errorf("binary set needs at least one native binary")
	}
	base := binaries[0].baseName()
	seen := make(map[Platform]string, len(binaries))
	for _, bin := range binaries {
		if got := bin.baseName(); got != base {
			return nil, fmt.Errorf("binary %s: base name %q does not match %q", bin.Path, got, base)
		}
		if prev, dup := seen[bin.Platform]; dup {
			return nil, fmt.Errorf("binary %s: platform %s already provided by %s", bin.Path, bin.Platform, prev)
		}
		seen[bin.Platform] = bin.Path
	}
	return &BinarySet{baseName: base, binaries: binaries}, nil
}

// BaseName is the shared library name, used to name the generated files.
func (s *BinarySet) BaseName() string { return s.baseName }

func (s *BinarySet) renderXML(w *strings.Builder) {
	fmt.Fprintf(w, "    <ItemGroup Label=%q>\n", s.baseName+" native libs")
	for _, bin := range s.binaries {
		bin.renderXML(w)
	}
	w.WriteString("    </ItemGroup>\n")
}

// ProjFile describes the generated csproj wrapping the bindings source
// and its native binaries.
type ProjFile struct {
	TargetFramework string
	AllowUnsafe     bool
	Binaries        *BinarySet
}

// Render produces the csproj XML.
func (p ProjFile) Render() string {
	var w strings.Builder
	w.WriteString("<Project Sdk=\"Microsoft.NET.Sdk\">\n")
	w.WriteString("    <PropertyGroup>\n")
	fmt.Fprintf(&w, "        <TargetFramework>%s</TargetFramework>\n", p.TargetFramework)
	fmt.Fprintf(&w, "        <AllowUnsafeBlocks>%t</AllowUnsafeBlocks>\n", p.AllowUnsafe)
	w.WriteString("    </PropertyGroup>\n")
	if p.Binaries != nil {
		p.Binaries.renderXML(&w)
	}
	w.WriteString("</Project>\n")
	return w.String()
}
