package driver_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bindgen/internal/diag"
	"bindgen/internal/driver"
	"bindgen/internal/project"
	"bindgen/internal/testkit"
)

func writeBinary(t *testing.T, dir, name string, raw []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// demoBinary describes one function taking a byte slice and a struct
// with two integer fields.
func demoBinary() []byte {
	b := testkit.NewBinary()
	b.Struct("pair", []testkit.Arg{
		{Name: "lo", Type: b.Int(32, true)},
		{Name: "hi", Type: b.Int(32, true)},
	})
	b.Function("send_all", "__bindgen_thunk_send_all",
		[]testkit.Arg{{Name: "data", Type: b.Slice(b.Int(8, false))}},
		b.Void())
	return b.Object()
}

func TestGenerateWritesOutputs(t *testing.T) {
	dir := t.TempDir()
	raw := demoBinary()
	outDir := filepath.Join(dir, "out")

	bag := diag.NewBag(16)
	res, err := driver.Generate(context.Background(), driver.Options{
		Framework:   "net8.0",
		AllowUnsafe: true,
		Format:      true,
		OutDir:      outDir,
		Binaries: []driver.Binary{
			{Platform: project.PlatformLinuxX64, Path: writeBinary(t, dir, "libdemo.so", raw)},
			{Platform: project.PlatformWinX64, Path: writeBinary(t, dir, "demo.dll", raw)},
		},
	}, bag.Reporter())
	if err != nil {
		t.Fatalf("Generate: %v (diags %v)", err, bag.Items())
	}

	if len(res.Exports) != 2 {
		t.Fatalf("exports = %d, want 2", len(res.Exports))
	}
	for _, want := range []string{
		"namespace Demo",
		"static class Imports",
		"public static void SendAll",
		`DllImport ( "demo"`,
		"struct Pair",
	} {
		if !strings.Contains(res.Source, want) {
			t.Errorf("source missing %q:\n%s", want, res.Source)
		}
	}
	for _, want := range []string{
		`PackagePath="runtimes/linux-x64/native/libdemo.so"`,
		`PackagePath="runtimes/win-x64/native/demo.dll"`,
	} {
		if !strings.Contains(res.Project, want) {
			t.Errorf("csproj missing %q:\n%s", want, res.Project)
		}
	}

	for _, path := range []string{res.SourcePath, res.ProjectPath} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("output %s not written: %v", path, err)
		}
	}
	if filepath.Base(res.ProjectPath) != "DemoBindings.csproj" {
		t.Errorf("project file = %s", res.ProjectPath)
	}
}

func TestGenerateDetectsPlatformMismatch(t *testing.T) {
	dir := t.TempDir()

	other := testkit.NewBinary()
	other.Function("something_else", "__bindgen_thunk_something_else", nil, other.Void())

	bag := diag.NewBag(16)
	_, err := driver.Generate(context.Background(), driver.Options{
		Binaries: []driver.Binary{
			{Platform: project.PlatformLinuxX64, Path: writeBinary(t, dir, "libdemo.so", demoBinary())},
			{Platform: project.PlatformWinX64, Path: writeBinary(t, dir, "demo.dll", other.Object())},
		},
	}, bag.Reporter())
	if err == nil {
		t.Fatalf("Generate accepted binaries with different exports")
	}

	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.BinPlatformMismatch {
			found = true
		}
	}
	if !found {
		t.Fatalf("no platform-mismatch diagnostic in %v", bag.Items())
	}
}

func TestGenerateReportsClassificationError(t *testing.T) {
	dir := t.TempDir()

	b := testkit.NewBinary()
	b.Function("nested", "__bindgen_thunk_nested",
		[]testkit.Arg{{Name: "m", Type: b.Slice(b.Slice(b.Int(8, false)))}},
		b.Void())

	bag := diag.NewBag(16)
	_, err := driver.Generate(context.Background(), driver.Options{
		Binaries: []driver.Binary{
			{Platform: project.PlatformLinuxX64, Path: writeBinary(t, dir, "libnested.so", b.Object())},
		},
	}, bag.Reporter())
	if err == nil {
		t.Fatalf("Generate accepted a slice-of-slice argument")
	}

	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.ClsSliceOfComplex && d.Export == "nested" {
			found = true
		}
	}
	if !found {
		t.Fatalf("no classification diagnostic attributed to the export in %v", bag.Items())
	}
}

func TestExtractSortsExports(t *testing.T) {
	dir := t.TempDir()

	b := testkit.NewBinary()
	b.Function("zeta", "__bindgen_thunk_zeta", nil, b.Void())
	b.Function("alpha", "__bindgen_thunk_alpha", nil, b.Void())

	exports, err := driver.Extract(writeBinary(t, dir, "libdemo.so", b.Object()))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(exports) != 2 {
		t.Fatalf("exports = %d, want 2", len(exports))
	}
	if exports[0].Fn.RealName != "alpha" || exports[1].Fn.RealName != "zeta" {
		t.Fatalf("exports not sorted: %s, %s", exports[0], exports[1])
	}
}

func TestGenerateRejectsEmptyBinaryList(t *testing.T) {
	bag := diag.NewBag(4)
	_, err := driver.Generate(context.Background(), driver.Options{}, bag.Reporter())
	if err == nil {
		t.Fatalf("Generate accepted an empty binary list")
	}
	if bag.Len() == 0 {
		t.Fatalf("failure was not reported as a diagnostic")
	}
}
