package elfload

import (
	"encoding/binary"

	"fortio.org/safecast"

	"bindgen/internal/descriptor"
	"bindgen/internal/diag"
)

// On-disk table layout, all fields little-endian. The .bindgen section
// opens with a header and a flat array of export record addresses; the
// records themselves, plus every string and sub-record they point at,
// live wherever the toolchain placed them in .bgendat or .bindgen, so
// each pointer goes through Resolve.
const (
	tableMagic   = "BGTB"
	tableVersion = 1

	headerSize  = 16 // magic u32, version u32, count u32, reserved u32
	exportSize  = 8  // record address u64
	funcRecSize = 56 // kind u32, argc u32, real (ptr,len), thunk (ptr,len), args u64, return u64
	strucRecSiz = 32 // kind u32, fieldc u32, name (ptr,len), fields u64
	argRecSize  = 24 // name (ptr,len), type u64
	typeRecSize = 32 // kind u8, width u8, signed u8, pad, elem u64, name (ptr,len)

	recFunction = 0
	recStruct   = 1

	typVoid   = 0
	typInt    = 1
	typBool   = 2
	typSlice  = 3
	typStruct = 4
)

// Type records reference each other; anything deeper than this is a
// cycle in malformed input.
const maxTypeDepth = 32

// DecodeTable walks the relocated descriptor table and returns the
// exports it describes, in discovery order.
func DecodeTable(im *Image) ([]descriptor.Export, error) {
	header, err := im.Table.bytes(0, headerSize)
	if err != nil {
		return nil, errf(diag.BinShortSection,
			"section %s is too short for a table header", im.Table.Name)
	}
	if string(header[0:4]) != tableMagic {
		return nil, errf(diag.BinBadPayload,
			"section %s does not start with the %q table magic", im.Table.Name, tableMagic)
	}
	if v := binary.LittleEndian.Uint32(header[4:8]); v != tableVersion {
		return nil, errf(diag.BinBadPayload, "descriptor table version %d, expected %d", v, tableVersion)
	}
	count, err := safecast.Conv[int](binary.LittleEndian.Uint32(header[8:12]))
	if err != nil {
		return nil, errf(diag.BinBadPayload, "descriptor table export count: %v", err)
	}
	if count == 0 {
		return nil, errf(diag.BinNoDescriptors, "descriptor table lists no exports")
	}

	var exports []descriptor.Export
	for i := 0; i < count; i++ {
		slot, err := im.Table.bytes(headerSize+i*exportSize, exportSize)
		if err != nil {
			return nil, err
		}
		export, err := decodeExport(im, binary.LittleEndian.Uint64(slot))
		if err != nil {
			return nil, err
		}
		exports = append(exports, export)
	}
	return exports, nil
}

// record reads n bytes at a virtual address through Resolve.
func record(im *Image, addr uint64, n int) ([]byte, error) {
	sec, off, err := im.Resolve(addr)
	if err != nil {
		return nil, err
	}
	return sec.bytes(off, n)
}

func readString(im *Image, ptr, length uint64) (string, error) {
	n, err := safecast.Conv[int](length)
	if err != nil {
		return "", errf(diag.BinBadPayload, "string length %d: %v", length, err)
	}
	if n == 0 {
		return "", nil
	}
	raw, err := record(im, ptr, n)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func decodeExport(im *Image, addr uint64) (descriptor.Export, error) {
	// Both record kinds open with the same u32 discriminant.
	head, err := record(im, addr, 4)
	if err != nil {
		return descriptor.Export{}, err
	}
	switch kind := binary.LittleEndian.Uint32(head); kind {
	case recFunction:
		fn, err := decodeFunction(im, addr)
		if err != nil {
			return descriptor.Export{}, err
		}
		return descriptor.FunctionExport(fn), nil
	case recStruct:
		st, err := decodeStruct(im, addr)
		if err != nil {
			return descriptor.Export{}, err
		}
		return descriptor.StructExport(st), nil
	default:
		return descriptor.Export{}, errf(diag.BinBadPayload,
			"export record at %#x has unknown kind %d", addr, kind)
	}
}

func decodeFunction(im *Image, addr uint64) (descriptor.Function, error) {
	rec, err := record(im, addr, funcRecSize)
	if err != nil {
		return descriptor.Function{}, err
	}

	var fn descriptor.Function
	fn.RealName, err = readString(im, binary.LittleEndian.Uint64(rec[8:16]), binary.LittleEndian.Uint64(rec[16:24]))
	if err != nil {
		return descriptor.Function{}, err
	}
	fn.ThunkName, err = readString(im, binary.LittleEndian.Uint64(rec[24:32]), binary.LittleEndian.Uint64(rec[32:40]))
	if err != nil {
		return descriptor.Function{}, err
	}

	argc, err := safecast.Conv[int](binary.LittleEndian.Uint32(rec[4:8]))
	if err != nil {
		return descriptor.Function{}, errf(diag.BinBadPayload, "function %s argument count: %v", fn.RealName, err)
	}
	argsAddr := binary.LittleEndian.Uint64(rec[40:48])
	for i := 0; i < argc; i++ {
		arg, err := record(im, argsAddr+uint64(i*argRecSize), argRecSize)
		if err != nil {
			return descriptor.Function{}, err
		}
		name, err := readString(im, binary.LittleEndian.Uint64(arg[0:8]), binary.LittleEndian.Uint64(arg[8:16]))
		if err != nil {
			return descriptor.Function{}, err
		}
		ty, err := decodeType(im, binary.LittleEndian.Uint64(arg[16:24]), 0)
		if err != nil {
			return descriptor.Function{}, err
		}
		fn.Args = append(fn.Args, descriptor.Argument{Name: name, Type: ty})
	}

	fn.Return, err = decodeType(im, binary.LittleEndian.Uint64(rec[48:56]), 0)
	if err != nil {
		return descriptor.Function{}, err
	}
	return fn, nil
}

func decodeStruct(im *Image, addr uint64) (descriptor.Struct, error) {
	rec, err := record(im, addr, strucRecSiz)
	if err != nil {
		return descriptor.Struct{}, err
	}

	var st descriptor.Struct
	st.Name, err = readString(im, binary.LittleEndian.Uint64(rec[8:16]), binary.LittleEndian.Uint64(rec[16:24]))
	if err != nil {
		return descriptor.Struct{}, err
	}

	fieldc, err := safecast.Conv[int](binary.LittleEndian.Uint32(rec[4:8]))
	if err != nil {
		return descriptor.Struct{}, errf(diag.BinBadPayload, "struct %s field count: %v", st.Name, err)
	}
	fieldsAddr := binary.LittleEndian.Uint64(rec[24:32])
	for i := 0; i < fieldc; i++ {
		field, err := record(im, fieldsAddr+uint64(i*argRecSize), argRecSize)
		if err != nil {
			return descriptor.Struct{}, err
		}
		name, err := readString(im, binary.LittleEndian.Uint64(field[0:8]), binary.LittleEndian.Uint64(field[8:16]))
		if err != nil {
			return descriptor.Struct{}, err
		}
		ty, err := decodeType(im, binary.LittleEndian.Uint64(field[16:24]), 0)
		if err != nil {
			return descriptor.Struct{}, err
		}
		st.Fields = append(st.Fields, descriptor.Field{Name: name, Type: ty})
	}
	return st, nil
}

func decodeType(im *Image, addr uint64, depth int) (descriptor.Type, error) {
	if depth > maxTypeDepth {
		return descriptor.Type{}, errf(diag.BinBadPayload,
			"type record chain at %#x exceeds depth %d", addr, maxTypeDepth)
	}
	rec, err := record(im, addr, typeRecSize)
	if err != nil {
		return descriptor.Type{}, err
	}

	switch kind := rec[0]; kind {
	case typVoid:
		return descriptor.Void(), nil
	case typInt:
		return descriptor.Int(rec[1], rec[2] != 0), nil
	case typBool:
		return descriptor.Bool(), nil
	case typSlice:
		elem, err := decodeType(im, binary.LittleEndian.Uint64(rec[8:16]), depth+1)
		if err != nil {
			return descriptor.Type{}, err
		}
		return descriptor.SliceOf(elem), nil
	case typStruct:
		name, err := readString(im, binary.LittleEndian.Uint64(rec[16:24]), binary.LittleEndian.Uint64(rec[24:32]))
		if err != nil {
			return descriptor.Type{}, err
		}
		return descriptor.StructRef(name), nil
	default:
		return descriptor.Type{}, errf(diag.BinBadPayload,
			"type record at %#x has unknown kind %d", addr, kind)
	}
}
