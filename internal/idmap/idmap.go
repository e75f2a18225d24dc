// Package idmap translates description-level field and table names into
// target-side accessor expressions and printf-style format specifiers.
//
// A Mapper is an ordered rule table; the first rule whose predicate matches
// a name decides all three translations. Names matching no rule map to
// themselves and format as %s.
package idmap

// DefaultFormat is the format specifier of names without a rule.
const DefaultFormat = "%s"

// Builder produces a translation for name. Returning false falls back to
// the identity translation.
type Builder func(name string) (string, bool)

// Rule is one entry of a naming-convention table.
type Rule struct {
	Name  string
	Match func(name string) bool

	// ID names the symbol in a condition or operand argument position.
	ID Builder
	// Raw reads the symbol from the raw instruction word.
	Raw Builder
	// Format is the printf specifier of the symbol. Empty means DefaultFormat.
	Format string
}

// Mapper applies a rule table. It holds no mutable state.
type Mapper struct {
	rules []Rule
}

// New returns a Mapper over rules, tried in order.
func New(rules ...Rule) *Mapper {
	return &Mapper{rules: append([]Rule(nil), rules...)}
}

// Rules returns a copy of the rule table.
func (m *Mapper) Rules() []Rule {
	return append([]Rule(nil), m.rules...)
}

func (m *Mapper) lookup(name string) *Rule {
	for i := range m.rules {
		if m.rules[i].Match(name) {
			return &m.rules[i]
		}
	}
	return nil
}

func apply(b Builder, name string) string {
	if b == nil {
		return name
	}
	if s, ok := b(name); ok {
		return s
	}
	return name
}

// ID returns the accessor used in conditions and operand arguments.
func (m *Mapper) ID(name string) string {
	if r := m.lookup(name); r != nil {
		return apply(r.ID, name)
	}
	return name
}

// Raw returns the accessor reading name from the instruction word.
func (m *Mapper) Raw(name string) string {
	if r := m.lookup(name); r != nil {
		return apply(r.Raw, name)
	}
	return name
}

// Format returns the printf specifier for name.
func (m *Mapper) Format(name string) string {
	if r := m.lookup(name); r != nil && r.Format != "" {
		return r.Format
	}
	return DefaultFormat
}

// Known reports whether any rule matches name.
func (m *Mapper) Known(name string) bool {
	return m.lookup(name) != nil
}
