package finder

import "github.com/corey/symfind/internal/ports"

// Matches reports whether c is a declaration of one of the target kinds
// whose spelling equals the target name.
func (tc *TraversalContext) Matches(c ports.Cursor) bool {
	if !tc.targetKinds.Contains(c.Kind()) {
		return false
	}
	return tc.nameMatches(c.Spelling())
}

func (tc *TraversalContext) nameMatches(spelling string) bool {
	if tc.caseInsensitive {
		return tc.foldedName == foldASCII(spelling)
	}
	return tc.targetName == spelling
}

// foldASCII lower-cases A-Z and leaves every other byte alone.
func foldASCII(s string) string {
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= 'A' && c <= 'Z' {
			b := []byte(s)
			for j := i; j < len(b); j++ {
				if b[j] >= 'A' && b[j] <= 'Z' {
					b[j] += 'a' - 'A'
				}
			}
			return string(b)
		}
	}
	return s
}
