package project

import "fmt"

// Platform is one of the dotnet runtime identifiers a native binary can
// target. The set covers the targets the instrumenting toolchain builds
// shared objects for.
type Platform int

const (
	PlatformUnknown Platform = iota
	PlatformWinX64
	PlatformLinuxX64
	PlatformLinuxMuslX64
	PlatformOsxX64
)

var platformRIDs = map[Platform]string{
	PlatformWinX64:       "win-x64",
	PlatformLinuxX64:     "linux-x64",
	PlatformLinuxMuslX64: "linux-musl-x64",
	PlatformOsxX64:       "osx-x64",
}

// RID returns the runtime identifier string dotnet understands.
func (p Platform) RID() string {
	if rid, ok := platformRIDs[p]; ok {
		return rid
	}
	return "unknown"
}

func (p Platform) String() string { return p.RID() }

// ParsePlatform maps a runtime identifier back to its Platform.
func ParsePlatform(rid string) (Platform, error) {
	for p, s := range platformRIDs {
		if s == rid {
			return p, nil
		}
	}
	return PlatformUnknown, fmt.Errorf("unknown platform %q (expected one of win-x64, linux-x64, linux-musl-x64, osx-x64)", rid)
}
