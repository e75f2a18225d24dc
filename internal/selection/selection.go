// Package selection picks the constructors to emit from a static allow-list
// of mnemonics.
package selection

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"guardgen/internal/sleigh"
)

// ErrMismatch reports that the allow-list and the matched constructors
// differ in size.
var ErrMismatch = errors.New("selection mismatch")

// MismatchError describes a selection that does not line up with the model.
type MismatchError struct {
	Want       int
	Got        int
	Missing    []string
	Duplicated []string
}

func (e *MismatchError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "selection mismatch: %d mnemonics requested, %d constructors matched", e.Want, e.Got)
	if len(e.Missing) > 0 {
		fmt.Fprintf(&sb, "; missing: %s", strings.Join(e.Missing, ", "))
	}
	if len(e.Duplicated) > 0 {
		fmt.Fprintf(&sb, "; matched more than once: %s", strings.Join(e.Duplicated, ", "))
	}
	return sb.String()
}

func (e *MismatchError) Is(target error) bool {
	return target == ErrMismatch
}

// Set is an allow-list of mnemonics.
type Set map[string]struct{}

// New returns a Set of the given mnemonics. Duplicates collapse.
func New(mnemonics ...string) Set {
	s := make(Set, len(mnemonics))
	for _, m := range mnemonics {
		s[m] = struct{}{}
	}
	return s
}

// Contains reports whether mnemonic is selected.
func (s Set) Contains(mnemonic string) bool {
	_, ok := s[mnemonic]
	return ok
}

// Sorted returns the mnemonics in lexical order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for m := range s {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// Match returns the selected constructors of t in enumeration order. The
// number of matches must equal the size of the set; constructors without a
// mnemonic are never selected.
func (s Set) Match(t *sleigh.Table) ([]*sleigh.Constructor, error) {
	var out []*sleigh.Constructor
	seen := make(map[string]int, len(s))
	for i := range t.Constructors {
		c := &t.Constructors[i]
		m := c.Mnemonic()
		if m == "" || !s.Contains(m) {
			continue
		}
		seen[m]++
		out = append(out, c)
	}

	if len(out) == len(s) && len(seen) == len(s) {
		return out, nil
	}

	merr := &MismatchError{Want: len(s), Got: len(out)}
	for _, m := range s.Sorted() {
		switch n := seen[m]; {
		case n == 0:
			merr.Missing = append(merr.Missing, m)
		case n > 1:
			merr.Duplicated = append(merr.Duplicated, m)
		}
	}
	return nil, merr
}
