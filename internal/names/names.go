// Package names converts native snake_case export names into the casing
// conventions of the generated C# surface.
package names

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titler = cases.Title(language.Und, cases.NoLower)

// ToPascal converts a snake_case name to PascalCase: "write_samples"
// becomes "WriteSamples". Interior capitalization of each segment is kept.
func ToPascal(name string) string {
	segments := strings.Split(name, "_")
	var sb strings.Builder
	for _, seg := range segments {
		if seg == "" {
			continue
		}
		sb.WriteString(titler.String(seg))
	}
	return sb.String()
}

// ToCamel converts a snake_case name to camelCase: "sample_rate" becomes
// "sampleRate".
func ToCamel(name string) string {
	pascal := ToPascal(name)
	if pascal == "" {
		return pascal
	}
	runes := []rune(pascal)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}
