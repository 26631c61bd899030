package overlay

import (
	"sort"
	"strings"
)

// DecisionSet is the result of one rebuild. Replacements are strictly
// ascending and never overlap.
type DecisionSet struct {
	Decisions    []TokenDecision
	Replacements []Replacement
}

// IsEmpty returns true if nothing is replaced.
func (d DecisionSet) IsEmpty() bool {
	return len(d.Replacements) == 0
}

// Rendered returns the number of rendered tokens.
func (d DecisionSet) Rendered() int {
	return len(d.Replacements)
}

// Suppressed returns the number of suppressed tokens.
func (d DecisionSet) Suppressed() int {
	return len(d.Decisions) - len(d.Replacements)
}

// SpansForLine returns the replacements on a line, in order.
// Returns nil if no replacement is on the line.
func (d DecisionSet) SpansForLine(line int) []Replacement {
	i := sort.Search(len(d.Replacements), func(i int) bool {
		return d.Replacements[i].Line >= line
	})
	j := i
	for j < len(d.Replacements) && d.Replacements[j].Line == line {
		j++
	}
	if i == j {
		return nil
	}
	return d.Replacements[i:j]
}

// ReplacementAt returns the replacement covering offset.
func (d DecisionSet) ReplacementAt(offset int) (Replacement, bool) {
	i := sort.Search(len(d.Replacements), func(i int) bool {
		return d.Replacements[i].End > offset
	})
	if i < len(d.Replacements) && d.Replacements[i].Start <= offset {
		return d.Replacements[i], true
	}
	return Replacement{}, false
}

// Apply returns the visual form of text, a slice of the document starting
// at offset base: every replacement fully inside the slice is substituted
// by its widget text.
func (d DecisionSet) Apply(text string, base int) string {
	end := base + len(text)
	var sb strings.Builder
	last := base
	for _, r := range d.Replacements {
		if r.Start < last || r.End > end {
			continue
		}
		if sb.Len() == 0 {
			sb.Grow(len(text))
		}
		sb.WriteString(text[last-base : r.Start-base])
		sb.WriteString(r.Widget.Text)
		last = r.End
	}
	if last == base {
		return text
	}
	sb.WriteString(text[last-base:])
	return sb.String()
}
