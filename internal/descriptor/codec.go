package descriptor

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Self-contained serialized descriptor payload.
//
// Framing: 4 byte magic, 1 byte schema version, u32 little-endian body
// length, msgpack body. The same framing carries either a whole export
// table (section payload) or a single export record (one descriptor
// returned by a __bindgen_describe symbol).

const (
	payloadMagic = "BGEN"

	// Current schema version - increment when the wire format changes.
	payloadSchemaVersion = 1

	headerSize = 4 + 1 + 4
)

// HeaderSize is the length of the framing header.
const HeaderSize = headerSize

// RecordSize returns the total framed length a payload header declares,
// validating the magic and schema version first. Callers reading a
// payload from foreign memory use it to learn how many bytes to copy.
func RecordSize(header []byte) (int, error) {
	if len(header) < headerSize {
		return 0, ErrTruncated
	}
	if string(header[:4]) != payloadMagic {
		return 0, ErrBadMagic
	}
	if header[4] != payloadSchemaVersion {
		return 0, fmt.Errorf("%w: %d", ErrBadSchema, header[4])
	}
	return headerSize + int(binary.LittleEndian.Uint32(header[5:9])), nil
}

var (
	// ErrBadMagic means the payload does not start with the BGEN marker.
	ErrBadMagic = errors.New("descriptor payload: bad magic")
	// ErrBadSchema means the payload schema version is unknown.
	ErrBadSchema = errors.New("descriptor payload: unsupported schema version")
	// ErrTruncated means the payload is shorter than its header declares.
	ErrTruncated = errors.New("descriptor payload: truncated")
)

type wireType struct {
	Kind   uint8     `msgpack:"k"`
	Width  uint8     `msgpack:"w,omitempty"`
	Signed bool      `msgpack:"s,omitempty"`
	Elem   *wireType `msgpack:"e,omitempty"`
	Name   string    `msgpack:"n,omitempty"`
}

type wireArg struct {
	Name string   `msgpack:"n"`
	Type wireType `msgpack:"t"`
}

type wireFunction struct {
	RealName  string    `msgpack:"rn"`
	ThunkName string    `msgpack:"tn"`
	Args      []wireArg `msgpack:"a"`
	Return    wireType  `msgpack:"r"`
}

type wireField struct {
	Name string   `msgpack:"n"`
	Type wireType `msgpack:"t"`
}

type wireStruct struct {
	Name   string      `msgpack:"n"`
	Fields []wireField `msgpack:"f"`
}

type wireExport struct {
	Kind uint8         `msgpack:"k"`
	Fn   *wireFunction `msgpack:"fn,omitempty"`
	St   *wireStruct   `msgpack:"st,omitempty"`
}

func toWireType(t Type) wireType {
	w := wireType{Kind: uint8(t.Kind), Width: t.Width, Signed: t.Signed, Name: t.Name}
	if t.Elem != nil {
		elem := toWireType(*t.Elem)
		w.Elem = &elem
	}
	return w
}

func fromWireType(w wireType) (Type, error) {
	t := Type{Kind: TypeKind(w.Kind), Width: w.Width, Signed: w.Signed, Name: w.Name}
	if w.Elem != nil {
		elem, err := fromWireType(*w.Elem)
		if err != nil {
			return Type{}, err
		}
		t.Elem = &elem
	}
	// Reject the malformed shape here so no nil-element slice ever
	// reaches classification.
	if t.Kind == KindSlice && t.Elem == nil {
		return Type{}, fmt.Errorf("descriptor payload: slice type without element")
	}
	return t, nil
}

func toWireExport(e Export) wireExport {
	w := wireExport{Kind: uint8(e.Kind)}
	switch e.Kind {
	case ExportFunction:
		if e.Fn != nil {
			fn := wireFunction{
				RealName:  e.Fn.RealName,
				ThunkName: e.Fn.ThunkName,
				Return:    toWireType(e.Fn.Return),
			}
			for _, a := range e.Fn.Args {
				fn.Args = append(fn.Args, wireArg{Name: a.Name, Type: toWireType(a.Type)})
			}
			w.Fn = &fn
		}
	case ExportStruct:
		if e.St != nil {
			st := wireStruct{Name: e.St.Name}
			for _, f := range e.St.Fields {
				st.Fields = append(st.Fields, wireField{Name: f.Name, Type: toWireType(f.Type)})
			}
			w.St = &st
		}
	}
	return w
}

func fromWireExport(w wireExport) (Export, error) {
	switch ExportKind(w.Kind) {
	case ExportFunction:
		if w.Fn == nil {
			return Export{}, fmt.Errorf("descriptor payload: function export without body")
		}
		ret, err := fromWireType(w.Fn.Return)
		if err != nil {
			return Export{}, fmt.Errorf("function %s: %w", w.Fn.RealName, err)
		}
		fn := Function{
			RealName:  w.Fn.RealName,
			ThunkName: w.Fn.ThunkName,
			Return:    ret,
		}
		for _, a := range w.Fn.Args {
			ty, err := fromWireType(a.Type)
			if err != nil {
				return Export{}, fmt.Errorf("function %s, argument %s: %w", w.Fn.RealName, a.Name, err)
			}
			fn.Args = append(fn.Args, Argument{Name: a.Name, Type: ty})
		}
		return FunctionExport(fn), nil
	case ExportStruct:
		if w.St == nil {
			return Export{}, fmt.Errorf("descriptor payload: struct export without body")
		}
		st := Struct{Name: w.St.Name}
		for _, f := range w.St.Fields {
			ty, err := fromWireType(f.Type)
			if err != nil {
				return Export{}, fmt.Errorf("struct %s, field %s: %w", w.St.Name, f.Name, err)
			}
			st.Fields = append(st.Fields, Field{Name: f.Name, Type: ty})
		}
		return StructExport(st), nil
	}
	return Export{}, fmt.Errorf("descriptor payload: unknown export kind %d", w.Kind)
}

func frame(body []byte) []byte {
	out := make([]byte, headerSize, headerSize+len(body))
	copy(out, payloadMagic)
	out[4] = payloadSchemaVersion
	binary.LittleEndian.PutUint32(out[5:9], uint32(len(body)))
	return append(out, body...)
}

func unframe(raw []byte) ([]byte, error) {
	if len(raw) < headerSize {
		return nil, ErrTruncated
	}
	if string(raw[:4]) != payloadMagic {
		return nil, ErrBadMagic
	}
	if raw[4] != payloadSchemaVersion {
		return nil, fmt.Errorf("%w: %d", ErrBadSchema, raw[4])
	}
	n := binary.LittleEndian.Uint32(raw[5:9])
	if uint64(headerSize)+uint64(n) > uint64(len(raw)) {
		return nil, fmt.Errorf("%w: header declares %d body bytes, %d available", ErrTruncated, n, len(raw)-headerSize)
	}
	return raw[headerSize : headerSize+int(n)], nil
}

// EncodeTable serializes a whole export table into a framed payload.
func EncodeTable(exports []Export) ([]byte, error) {
	wires := make([]wireExport, 0, len(exports))
	for _, e := range exports {
		wires = append(wires, toWireExport(e))
	}
	body, err := msgpack.Marshal(wires)
	if err != nil {
		return nil, fmt.Errorf("descriptor payload: encode: %w", err)
	}
	return frame(body), nil
}

// DecodeTable parses a framed payload holding a whole export table.
func DecodeTable(raw []byte) ([]Export, error) {
	body, err := unframe(raw)
	if err != nil {
		return nil, err
	}
	var wires []wireExport
	if err := msgpack.Unmarshal(body, &wires); err != nil {
		return nil, fmt.Errorf("descriptor payload: decode: %w", err)
	}
	exports := make([]Export, 0, len(wires))
	for _, w := range wires {
		e, convErr := fromWireExport(w)
		if convErr != nil {
			return nil, convErr
		}
		exports = append(exports, e)
	}
	return exports, nil
}

// EncodeRecord serializes a single export into a framed payload.
func EncodeRecord(e Export) ([]byte, error) {
	body, err := msgpack.Marshal(toWireExport(e))
	if err != nil {
		return nil, fmt.Errorf("descriptor payload: encode: %w", err)
	}
	return frame(body), nil
}

// DecodeRecord parses a framed payload holding exactly one export.
func DecodeRecord(raw []byte) (Export, error) {
	body, err := unframe(raw)
	if err != nil {
		return Export{}, err
	}
	var w wireExport
	if err := msgpack.Unmarshal(body, &w); err != nil {
		return Export{}, fmt.Errorf("descriptor payload: decode: %w", err)
	}
	return fromWireExport(w)
}
