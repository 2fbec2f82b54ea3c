package common

// First returns the first element of s, if any.
func First[S ~[]E, E any](s S) (E, bool) {
	var zero E
	if len(s) == 0 {
		return zero, false
	}

	return s[0], true
}
