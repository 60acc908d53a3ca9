package finder

import (
	"os"
	"strings"
)

// LoadLines reads path into lines without their terminators. A trailing
// newline does not produce an empty last line and "\r\n" endings are
// accepted. An unreadable file yields no lines; rendering then skips every
// match as out of range.
func LoadLines(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	return SplitLines(string(data))
}

// SplitLines splits text the same way LoadLines does.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
