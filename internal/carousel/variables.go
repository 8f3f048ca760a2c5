package carousel

import "regexp"

var placeholderPattern = regexp.MustCompile(`{{\s*([^{}]+?)\s*}}`)

// Registry is an ordered set of placeholder names.
type Registry struct {
	seen  map[string]struct{}
	order []string
}

func NewRegistry() *Registry {
	return &Registry{seen: make(map[string]struct{})}
}

// Collect scans fields in the given order and registers every name not seen
// before. An empty field has no variables.
func (r *Registry) Collect(fields ...string) {
	for _, field := range fields {
		if field == "" {
			continue
		}
		for _, m := range placeholderPattern.FindAllStringSubmatch(field, -1) {
			name := m[1]
			if _, ok := r.seen[name]; ok {
				continue
			}
			r.seen[name] = struct{}{}
			r.order = append(r.order, name)
		}
	}
}

// Names returns the registered names in first-seen order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// ExtractVariables returns the distinct placeholder names used across
// fields, in first-seen order.
func ExtractVariables(fields ...string) []string {
	r := NewRegistry()
	r.Collect(fields...)
	return r.Names()
}
