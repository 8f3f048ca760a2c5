package carousel

import "strconv"

// Numbering maps a variable name to its 1-based position.
type Numbering map[string]int

// Renumber assigns each of the template's variables its position in
// Variables.
func Renumber(t Template) Numbering {
	n := make(Numbering, len(t.Variables))
	for i, v := range t.Variables {
		n[v] = i + 1
	}
	return n
}

// ApplyNumbering rewrites every {{name}} in text to {{index}}. Names missing
// from n are written back as {{name}}.
func ApplyNumbering(text string, n Numbering) string {
	return placeholderPattern.ReplaceAllStringFunc(text, func(match string) string {
		name := placeholderPattern.FindStringSubmatch(match)[1]
		if idx, ok := n[name]; ok {
			return "{{" + strconv.Itoa(idx) + "}}"
		}
		return "{{" + name + "}}"
	})
}

func applyNumberingPtr(s *string, n Numbering) *string {
	if s == nil {
		return nil
	}
	out := ApplyNumbering(*s, n)
	return &out
}
