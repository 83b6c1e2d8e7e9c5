//go:build linux && cgo

package dynsym

/*
#cgo LDFLAGS: -ldl
#include <dlfcn.h>
#include <stdint.h>
#include <stdlib.h>

static void* bg_dlopen(const char* path) {
	return dlopen(path, RTLD_LAZY | RTLD_LOCAL);
}

static char* bg_dlerror(void) {
	return dlerror();
}

// Clear dlerror, look the symbol up, and return any error alongside it.
static void* bg_dlsym_clear(void* h, const char* name, char** err) {
	dlerror();
	void* p = dlsym(h, name);
	char* e = dlerror();
	if (e) { if (err) *err = e; return NULL; }
	if (err) *err = NULL;
	return p;
}

static void bg_dlclose(void* h) {
	dlclose(h);
}

// Every descriptor symbol has this shape; the contract says nothing else
// under the prefix is ever emitted.
typedef const uint8_t* (*bg_describe_fn)(void);

static const uint8_t* bg_call_describe(void* fn) {
	return ((bg_describe_fn)fn)();
}
*/
import "C"

import (
	"fmt"
	"unsafe"

	"bindgen/internal/descriptor"
)

// Available reports that this build can dlopen binaries.
func Available() bool { return true }

// Extract loads the binary as a module and invokes every descriptor
// symbol, collecting the records they return in symbol order.
func Extract(path string) ([]descriptor.Export, error) {
	names, err := Scan(path)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, ErrNoSymbols
	}

	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))

	handle := C.bg_dlopen(cpath)
	if handle == nil {
		return nil, fmt.Errorf("dynsym: dlopen %s: %s", path, C.GoString(C.bg_dlerror()))
	}
	defer C.bg_dlclose(handle)

	var exports []descriptor.Export
	for _, name := range names {
		export, err := invoke(handle, name)
		if err != nil {
			return nil, err
		}
		exports = append(exports, export)
	}
	return exports, nil
}

func invoke(handle unsafe.Pointer, name string) (descriptor.Export, error) {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))

	var cerr *C.char
	fn := C.bg_dlsym_clear(handle, cname, &cerr)
	if fn == nil {
		return descriptor.Export{}, fmt.Errorf("dynsym: dlsym %s: %s", name, C.GoString(cerr))
	}

	ptr := C.bg_call_describe(fn)
	if ptr == nil {
		return descriptor.Export{}, fmt.Errorf("dynsym: %s returned no record", name)
	}

	// The record's framed length lives in its header; read that first,
	// then copy the whole record out of foreign memory.
	header := C.GoBytes(unsafe.Pointer(ptr), C.int(descriptor.HeaderSize))
	total, err := descriptor.RecordSize(header)
	if err != nil {
		return descriptor.Export{}, fmt.Errorf("dynsym: %s: %w", name, err)
	}
	raw := C.GoBytes(unsafe.Pointer(ptr), C.int(total))

	export, err := descriptor.DecodeRecord(raw)
	if err != nil {
		return descriptor.Export{}, fmt.Errorf("dynsym: %s: %w", name, err)
	}
	return export, nil
}
