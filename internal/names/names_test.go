package names_test

import (
	"testing"

	"bindgen/internal/names"
)

func TestToPascal(t *testing.T) {
	cases := []struct{ in, want string }{
		{"write_samples", "WriteSamples"},
		{"add", "Add"},
		{"sample_rate_hz", "SampleRateHz"},
		{"__bindgen_thunk", "BindgenThunk"},
		{"", ""},
	}
	for _, c := range cases {
		if got := names.ToPascal(c.in); got != c.want {
			t.Errorf("ToPascal(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestToCamel(t *testing.T) {
	cases := []struct{ in, want string }{
		{"sample_rate", "sampleRate"},
		{"data", "data"},
		{"flush_now", "flushNow"},
		{"", ""},
	}
	for _, c := range cases {
		if got := names.ToCamel(c.in); got != c.want {
			t.Errorf("ToCamel(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
