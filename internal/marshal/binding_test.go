package marshal_test

import (
	"errors"
	"strings"
	"testing"

	"bindgen/internal/csast"
	"bindgen/internal/cstoken"
	"bindgen/internal/descriptor"
	"bindgen/internal/diag"
	"bindgen/internal/marshal"
)

func typeString(ty csast.Type) string {
	var ts cstoken.Stream
	ty.Tokens(&ts)
	return strings.Join(strings.Fields(ts.RenderString()), " ")
}

func wantCode(t *testing.T, err error, code diag.Code) *marshal.Error {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", code)
	}
	var merr *marshal.Error
	if !errors.As(err, &merr) {
		t.Fatalf("error %v is not a marshal.Error", err)
	}
	if merr.Code != code {
		t.Fatalf("error code = %s, want %s (%v)", merr.Code, code, err)
	}
	return merr
}

func TestClassifyIntWidths(t *testing.T) {
	cases := []struct {
		width  uint8
		signed bool
		want   string
	}{
		{8, true, "SByte"},
		{16, true, "Int16"},
		{32, true, "Int32"},
		{64, true, "Int64"},
		{8, false, "Byte"},
		{16, false, "UInt16"},
		{32, false, "UInt32"},
		{64, false, "UInt64"},
	}

	for _, tc := range cases {
		b, err := marshal.Classify(descriptor.Int(tc.width, tc.signed))
		if err != nil {
			t.Fatalf("Classify(int %d signed=%v): %v", tc.width, tc.signed, err)
		}
		if !b.Simple() {
			t.Fatalf("int %d signed=%v classified Complex", tc.width, tc.signed)
		}
		if got := typeString(b.Native); got != tc.want {
			t.Fatalf("native type = %q, want %q", got, tc.want)
		}
		if got := typeString(b.Idiomatic); got != tc.want {
			t.Fatalf("idiomatic type = %q, want %q", got, tc.want)
		}
	}
}

func TestClassifyRejectsOddIntWidth(t *testing.T) {
	_, err := marshal.Classify(descriptor.Int(24, true))
	wantCode(t, err, diag.ClsBadIntWidth)
}

func TestClassifyBoolIsComplex(t *testing.T) {
	b, err := marshal.Classify(descriptor.Bool())
	if err != nil {
		t.Fatalf("Classify(bool): %v", err)
	}
	if b.Simple() {
		t.Fatal("bool classified Simple")
	}
	if got := typeString(b.Native); got != "Byte" {
		t.Fatalf("native type = %q, want Byte", got)
	}
	if got := typeString(b.Idiomatic); got != "bool" {
		t.Fatalf("idiomatic type = %q, want bool", got)
	}
}

func TestClassifySliceOfSimpleElement(t *testing.T) {
	b, err := marshal.Classify(descriptor.SliceOf(descriptor.Int(16, true)))
	if err != nil {
		t.Fatalf("Classify([i16]): %v", err)
	}
	if b.Simple() {
		t.Fatal("slice classified Simple")
	}
	if got := typeString(b.Native); got != "SliceAbi" {
		t.Fatalf("native type = %q, want SliceAbi", got)
	}
	if got := typeString(b.Idiomatic); got != "Int16 [ ]" {
		t.Fatalf("idiomatic type = %q, want Int16 [ ]", got)
	}
}

func TestClassifyRejectsSliceWithoutElement(t *testing.T) {
	// The shape a malformed serialized payload would decode to.
	_, err := marshal.Classify(descriptor.Type{Kind: descriptor.KindSlice})
	wantCode(t, err, diag.ClsSliceOfComplex)
}

func TestClassifyRejectsSliceOfComplexElement(t *testing.T) {
	for _, elem := range []descriptor.Type{
		descriptor.Bool(),
		descriptor.SliceOf(descriptor.Int(8, false)),
		descriptor.Void(),
	} {
		_, err := marshal.Classify(descriptor.SliceOf(elem))
		wantCode(t, err, diag.ClsSliceOfComplex)
	}
}

func TestClassifyStructReferenceIsOpaque(t *testing.T) {
	b, err := marshal.Classify(descriptor.StructRef("vec_data"))
	if err != nil {
		t.Fatalf("Classify(struct): %v", err)
	}
	if !b.Simple() {
		t.Fatal("struct reference classified Complex")
	}
	if got := typeString(b.Native); got != "VecData" {
		t.Fatalf("native type = %q, want VecData", got)
	}
}
