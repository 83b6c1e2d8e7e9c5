package testkit

import "encoding/binary"

// BinaryBuilder packs descriptor records into a synthetic section pair,
// mirroring what the instrumenting toolchain emits. Names and records go
// into .bgendat; the header and export pointer array form .bindgen.
type BinaryBuilder struct {
	DataBase  uint64
	TableBase uint64
	Data      []byte
	Exports   []uint64
}

// Arg names one function argument or struct field and points at its
// type record.
type Arg struct {
	Name string
	Type uint64
}

func NewBinary() *BinaryBuilder {
	return &BinaryBuilder{DataBase: 0x1000, TableBase: 0x8000}
}

// Put appends raw bytes to .bgendat and returns their virtual address.
func (b *BinaryBuilder) Put(raw []byte) uint64 {
	addr := b.DataBase + uint64(len(b.Data))
	b.Data = append(b.Data, raw...)
	return addr
}

func (b *BinaryBuilder) Str(s string) (ptr, length uint64) {
	return b.Put([]byte(s)), uint64(len(s))
}

func le64(vals ...uint64) []byte {
	out := make([]byte, 8*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint64(out[i*8:], v)
	}
	return out
}

func (b *BinaryBuilder) typeRec(kind, width, signed byte, elem, namePtr, nameLen uint64) uint64 {
	rec := make([]byte, 32)
	rec[0], rec[1], rec[2] = kind, width, signed
	binary.LittleEndian.PutUint64(rec[8:], elem)
	binary.LittleEndian.PutUint64(rec[16:], namePtr)
	binary.LittleEndian.PutUint64(rec[24:], nameLen)
	return b.Put(rec)
}

func (b *BinaryBuilder) Void() uint64 { return b.typeRec(0, 0, 0, 0, 0, 0) }

func (b *BinaryBuilder) Int(width byte, signed bool) uint64 {
	var s byte
	if signed {
		s = 1
	}
	return b.typeRec(1, width, s, 0, 0, 0)
}

func (b *BinaryBuilder) Bool() uint64 { return b.typeRec(2, 0, 0, 0, 0, 0) }

func (b *BinaryBuilder) Slice(elem uint64) uint64 { return b.typeRec(3, 0, 0, elem, 0, 0) }

func (b *BinaryBuilder) StructRef(name string) uint64 {
	ptr, n := b.Str(name)
	return b.typeRec(4, 0, 0, 0, ptr, n)
}

func (b *BinaryBuilder) args(args []Arg) uint64 {
	var raw []byte
	for _, a := range args {
		ptr, n := b.Str(a.Name)
		raw = append(raw, le64(ptr, n, a.Type)...)
	}
	return b.Put(raw)
}

// Function appends one function record and registers it as an export.
func (b *BinaryBuilder) Function(real, thunk string, args []Arg, ret uint64) uint64 {
	argsAddr := b.args(args)
	realPtr, realLen := b.Str(real)
	thunkPtr, thunkLen := b.Str(thunk)

	rec := make([]byte, 56)
	binary.LittleEndian.PutUint32(rec[0:], 0)
	binary.LittleEndian.PutUint32(rec[4:], uint32(len(args)))
	copy(rec[8:], le64(realPtr, realLen, thunkPtr, thunkLen, argsAddr, ret))
	addr := b.Put(rec)
	b.Exports = append(b.Exports, addr)
	return addr
}

// Struct appends one struct record and registers it as an export.
func (b *BinaryBuilder) Struct(name string, fields []Arg) uint64 {
	fieldsAddr := b.args(fields)
	namePtr, nameLen := b.Str(name)

	rec := make([]byte, 32)
	binary.LittleEndian.PutUint32(rec[0:], 1)
	binary.LittleEndian.PutUint32(rec[4:], uint32(len(fields)))
	copy(rec[8:], le64(namePtr, nameLen, fieldsAddr))
	addr := b.Put(rec)
	b.Exports = append(b.Exports, addr)
	return addr
}

// Table renders the .bindgen section: header plus export address array.
func (b *BinaryBuilder) Table() []byte {
	header := make([]byte, 16)
	copy(header, "BGTB")
	binary.LittleEndian.PutUint32(header[4:], 1)
	binary.LittleEndian.PutUint32(header[8:], uint32(len(b.Exports)))
	return append(header, le64(b.Exports...)...)
}

// Object wraps both sections into a complete shared object.
func (b *BinaryBuilder) Object() []byte {
	return ELF([]Section{
		{Name: ".bgendat", Type: 1, Addr: b.DataBase, Data: b.Data},
		{Name: ".bindgen", Type: 1, Addr: b.TableBase, Data: b.Table()},
	})
}
