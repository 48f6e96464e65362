package knowledge

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Humanize turns a table key such as "university_info" into "University Info".
// A Caser holds state, so each call builds its own.
func Humanize(key string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(key, "_", " "))
}

// Markdown renders one topic as a markdown document.
func (s *Store) Markdown(topic string) (string, error) {
	if !s.Has(topic) {
		return "", fmt.Errorf("%w: %q", ErrUnknownTopic, topic)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", Humanize(topic))
	writeMarkdown(&b, s.Get(topic), 2)

	return b.String(), nil
}

func writeMarkdown(b *strings.Builder, v Value, depth int) {
	switch v.Kind() {
	case KindText:
		fmt.Fprintf(b, "%s\n\n", v.Text())

	case KindList:
		for _, item := range v.List() {
			fmt.Fprintf(b, "- %s\n", item)
		}
		b.WriteString("\n")

	case KindMap:
		for _, key := range v.Keys() {
			child := v.Get(key)
			if child.Kind() == KindText {
				fmt.Fprintf(b, "- **%s:** %s\n", Humanize(key), child.Text())
				continue
			}
			b.WriteString("\n")
			fmt.Fprintf(b, "%s %s\n\n", strings.Repeat("#", min(depth, 6)), Humanize(key))
			writeMarkdown(b, child, depth+1)
		}
		b.WriteString("\n")
	}
}
