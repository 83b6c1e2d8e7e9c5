package ui_test

import (
	"strings"
	"testing"

	"bindgen/internal/descriptor"
	"bindgen/internal/ui"
)

func TestDescriptorTable(t *testing.T) {
	exports := []descriptor.Export{
		descriptor.FunctionExport(descriptor.Function{
			RealName:  "send_all",
			ThunkName: "__bindgen_thunk_send_all",
			Args: []descriptor.Argument{
				{Name: "data", Type: descriptor.SliceOf(descriptor.Int(8, false))},
			},
			Return: descriptor.Void(),
		}),
		descriptor.StructExport(descriptor.Struct{
			Name: "pair",
			Fields: []descriptor.Field{
				{Name: "lo", Type: descriptor.Int(32, true)},
				{Name: "hi", Type: descriptor.Int(32, true)},
			},
		}),
	}

	out := ui.DescriptorTable(exports, false)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("table has %d lines, want header + 2 rows:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "KIND") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(out, "(data: [u8]) -> void") {
		t.Errorf("function signature missing:\n%s", out)
	}
	if !strings.Contains(out, "{lo: i32, hi: i32}") {
		t.Errorf("struct fields missing:\n%s", out)
	}
	if !strings.Contains(out, "__bindgen_thunk_send_all") {
		t.Errorf("thunk column missing:\n%s", out)
	}

	// Columns align: NAME starts at the same offset on every line.
	idx := strings.Index(lines[0], "NAME")
	for _, line := range lines[1:] {
		if len(line) <= idx {
			t.Fatalf("short row %q", line)
		}
		if line[idx-1] != ' ' {
			t.Errorf("row %q not aligned with header", line)
		}
	}
}

func TestDescriptorTableEmpty(t *testing.T) {
	out := ui.DescriptorTable(nil, false)
	if !strings.HasPrefix(out, "KIND") {
		t.Errorf("empty table should still render the header: %q", out)
	}
}
