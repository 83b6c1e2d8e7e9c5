package descriptor

import "sort"

// Sort orders exports by display name, struct exports before function
// exports on equal names, thunk name last for full determinism. The order
// is independent of symbol-table discovery order and sorting an already
// sorted set is a no-op.
func Sort(exports []Export) {
	sort.SliceStable(exports, func(i, j int) bool {
		ni, nj := exports[i].DisplayName(), exports[j].DisplayName()
		if ni != nj {
			return ni < nj
		}
		if exports[i].Kind != exports[j].Kind {
			return exports[i].Kind == ExportStruct
		}
		if exports[i].Kind == ExportFunction && exports[i].Fn != nil && exports[j].Fn != nil {
			return exports[i].Fn.ThunkName < exports[j].Fn.ThunkName
		}
		return false
	})
}

// SetsEqual reports whether two export sequences describe the same set of
// exports, element by element. Both sides are expected to be sorted.
func SetsEqual(a, b []Export) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
