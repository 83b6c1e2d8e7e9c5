// Package diag carries diagnostics from extraction and generation stages
// to the CLI. Diagnostics have stable codes grouped by area: BG1xxx for
// binary-format problems, BG2xxx for classification problems attributed to
// a single export, BG3xxx for internal invariant violations that indicate
// a generator bug.
package diag
