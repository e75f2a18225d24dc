package idmap

import (
	"fmt"
	"strings"
)

// Register-class offsets of the V850 Rxxxx token fields.
var v850Registers = map[string]int{
	"0004": 1,
	"1115": 2,
	"2731": 3,
}

func hasPrefix(prefix string) func(string) bool {
	return func(name string) bool { return strings.HasPrefix(name, prefix) }
}

// bitRange splits the two 2-digit bit offsets that follow prefix.
func bitRange(name, prefix string) (lo, hi string, ok bool) {
	rest := strings.TrimPrefix(name, prefix)
	if len(rest) < 4 {
		return "", "", false
	}
	return rest[0:2], rest[2:4], true
}

func register(name string) (int, bool) {
	if len(name) < 5 {
		return 0, false
	}
	n, ok := v850Registers[name[1:5]]
	return n, ok
}

func slice(inst, name, prefix string) (string, bool) {
	lo, hi, ok := bitRange(name, prefix)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("slice(%s->d, %s, %s)", inst, lo, hi), true
}

// V850 returns the rule table for the V850 FPU naming conventions, reading
// the instruction word from the variable "inst".
func V850() *Mapper {
	return V850For("inst")
}

// V850For is V850 with the decoded-instruction variable named inst.
func V850For(inst string) *Mapper {
	return New(
		Rule{
			Name:  "opcode bits",
			Match: hasPrefix("op"),
			ID: func(name string) (string, bool) {
				lo, hi, ok := bitRange(name, "op")
				if !ok {
					return "", false
				}
				return fmt.Sprintf("OP(%s, %s)", lo, hi), true
			},
			Format: "%x",
		},
		Rule{
			Name:  "register class",
			Match: hasPrefix("R"),
			ID: func(name string) (string, bool) {
				n, ok := register(name)
				return fmt.Sprintf("R%d", n), ok
			},
			Raw: func(name string) (string, bool) {
				n, ok := register(name)
				return fmt.Sprintf("get_reg%d(%s)", n, inst), ok
			},
			Format: "%s",
		},
		Rule{
			Name:   "condition bit",
			Match:  hasPrefix("fcbit"),
			ID:     func(name string) (string, bool) { return slice(inst, name, "fcbit") },
			Raw:    func(name string) (string, bool) { return slice(inst, name, "fcbit") },
			Format: "%d",
		},
		Rule{
			Name:  "condition code",
			Match: hasPrefix("fcond"),
			ID: func(name string) (string, bool) {
				s, ok := slice(inst, name, "fcond")
				return "conds[" + s + "]", ok
			},
			Raw:    func(name string) (string, bool) { return slice(inst, name, "fcond") },
			Format: "%s",
		},
		Rule{
			Name:   "fourth register",
			Match:  func(name string) bool { return name == "reg4" },
			ID:     func(string) (string, bool) { return "R4", true },
			Raw:    func(string) (string, bool) { return "get_reg4(" + inst + ")", true },
			Format: "%s",
		},
	)
}
