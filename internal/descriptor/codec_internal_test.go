package descriptor

import (
	"strings"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
)

// A slice type record with no element is representable on the wire but
// has no meaning; the decoder must reject it instead of handing the
// malformed shape downstream.
func TestDecodeRejectsSliceWithoutElement(t *testing.T) {
	broken := wireExport{
		Kind: uint8(ExportFunction),
		Fn: &wireFunction{
			RealName:  "f",
			ThunkName: "__bindgen_thunk_f",
			Args: []wireArg{
				{Name: "data", Type: wireType{Kind: uint8(KindSlice)}},
			},
			Return: wireType{Kind: uint8(KindVoid)},
		},
	}

	body, err := msgpack.Marshal(broken)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if _, err := DecodeRecord(frame(body)); err == nil {
		t.Fatalf("DecodeRecord accepted a slice type without an element")
	} else if !strings.Contains(err.Error(), "slice type without element") {
		t.Fatalf("unexpected error: %v", err)
	}

	tableBody, err := msgpack.Marshal([]wireExport{broken})
	if err != nil {
		t.Fatalf("marshal table: %v", err)
	}
	if _, err := DecodeTable(frame(tableBody)); err == nil {
		t.Fatalf("DecodeTable accepted a slice type without an element")
	}
}

func TestDecodeRejectsSliceFieldWithoutElement(t *testing.T) {
	broken := wireExport{
		Kind: uint8(ExportStruct),
		St: &wireStruct{
			Name: "bad",
			Fields: []wireField{
				{Name: "data", Type: wireType{Kind: uint8(KindSlice)}},
			},
		},
	}

	body, err := msgpack.Marshal(broken)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if _, err := DecodeRecord(frame(body)); err == nil {
		t.Fatalf("DecodeRecord accepted a struct field slice without an element")
	}
}
