package fragment

import "strings"

// Pool is a fixed ordered list of interchangeable snippets.
type Pool []string

// Slot is one position in a Template.
type Slot struct {
	// Name identifies the slot for Include toggles. Defaults to Pool.
	Name string `yaml:"name,omitempty"`
	// Pool names the pool the slot draws from.
	Pool     string `yaml:"pool"`
	Prefix   string `yaml:"prefix,omitempty"`
	Suffix   string `yaml:"suffix,omitempty"`
	Optional bool   `yaml:"optional,omitempty"`
}

func (s Slot) key() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Pool
}

// Template is the ordered list of slots a Generator fills.
type Template []Slot

// Part is a single drawn entry.
type Part struct {
	Slot   string
	Pool   string
	Value  string
	Prefix string
	Suffix string
}

// Result is the outcome of one Generate call.
type Result struct {
	Text  string
	Parts []Part
}

// String returns the composed text.
func (r Result) String() string { return r.Text }

// Values returns the drawn entries without prefixes or suffixes.
func (r Result) Values() []string {
	out := make([]string, len(r.Parts))
	for i, p := range r.Parts {
		out[i] = p.Value
	}
	return out
}

// GenerateOptions toggles optional slots and output order for a single call.
type GenerateOptions struct {
	// Include enables optional slots by name.
	Include map[string]bool
	// Shuffle permutes the drawn parts before concatenation.
	Shuffle bool
}

// join concatenates parts with their affixes.
func join(parts []Part) string {
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(p.Prefix)
		b.WriteString(p.Value)
		b.WriteString(p.Suffix)
	}
	return b.String()
}
