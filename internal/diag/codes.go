package diag

import "fmt"

type Code uint16

const (
	UnknownCode Code = 0

	// Binary-format errors. Fatal for the whole run.
	BinInfo              Code = 1000
	BinUnsupportedFormat Code = 1001
	BinMissingSection    Code = 1002
	BinShortSection      Code = 1003
	BinRelocOutOfRange   Code = 1004
	BinRelocUnresolved   Code = 1005
	BinBadPayload        Code = 1006
	BinNoDescriptors     Code = 1007
	BinPlatformMismatch  Code = 1008

	// Classification errors. Attributed to one export; still fatal for the
	// run, since a partial binding surface is not offered.
	ClsInfo              Code = 2000
	ClsBadIntWidth       Code = 2001
	ClsSliceOfComplex    Code = 2002
	ClsStructFieldUnsafe Code = 2003
	ClsComplexReturn     Code = 2004
	ClsNameCollision     Code = 2005

	// Internal invariant violations. These indicate a generator bug, not
	// bad input, and must never be swallowed.
	IntInfo           Code = 3000
	IntDuplicateThunk Code = 3001
	IntIdentOverflow  Code = 3002
)

func (c Code) String() string {
	return fmt.Sprintf("BG%04d", uint16(c))
}

// IsInternal reports whether the code marks an internal-consistency
// failure rather than a problem with the input binary.
func (c Code) IsInternal() bool {
	return c >= IntInfo
}
