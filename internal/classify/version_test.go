package classify

import "testing"

func TestCompareVersions(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"0.14", "0.14", 0},
		{"0.14.0", "0.14", 0},
		{"0.13", "0.14", -1},
		{"0.15", "0.14", 1},
		{"1.0", "0.14", 1},
		// Lexically "0.9" > "0.14"; numerically it is older. This ordering is
		// the whole point of the numeric comparison.
		{"0.9", "0.14", -1},
		{"3.0.11", "0.14", 1},
		{" 0.14 ", "0.14", 0},
		// Unparseable components compare as older than any numeric one.
		{"dev", "0.14", -1},
		{"0.x", "0.14", -1},
	}

	for _, tc := range cases {
		if got := compareVersions(tc.a, tc.b); got != tc.want {
			t.Errorf("compareVersions(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}
