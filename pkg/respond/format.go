package respond

import (
	"strconv"
	"strings"
)

func bullets(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "• " + item
	}
	return strings.Join(lines, "\n")
}

func numbered(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = strconv.Itoa(i+1) + ". " + item
	}
	return strings.Join(lines, "\n")
}

// split cuts items at n without going out of range.
func split(items []string, n int) ([]string, []string) {
	if n > len(items) {
		n = len(items)
	}
	return items[:n], items[n:]
}
