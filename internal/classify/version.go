package classify

import (
	"strconv"
	"strings"
)

// compareVersions compares two dotted numeric version strings component by
// component, returning -1, 0, or 1. Missing components count as zero, so
// "0.14" == "0.14.0". A component that does not parse as an integer makes its
// version compare as older; an unparseable compiler version is refused rather
// than accepted.
func compareVersions(a, b string) int {
	as := strings.Split(strings.TrimSpace(a), ".")
	bs := strings.Split(strings.TrimSpace(b), ".")

	n := len(as)
	if len(bs) > n {
		n = len(bs)
	}
	for i := 0; i < n; i++ {
		av, aok := component(as, i)
		bv, bok := component(bs, i)
		if !aok || !bok {
			switch {
			case aok == bok:
				return 0
			case !aok:
				return -1
			default:
				return 1
			}
		}
		if av != bv {
			if av < bv {
				return -1
			}
			return 1
		}
	}
	return 0
}

func component(parts []string, i int) (int, bool) {
	if i >= len(parts) {
		return 0, true
	}
	v, err := strconv.Atoi(parts[i])
	if err != nil {
		return 0, false
	}
	return v, true
}
