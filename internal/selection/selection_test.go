package selection

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"guardgen/internal/sleigh"
)

func table(mnemonics ...string) *sleigh.Table {
	t := &sleigh.Table{Name: "instruction"}
	for _, m := range mnemonics {
		t.Constructors = append(t.Constructors, sleigh.Constructor{
			Display: sleigh.Display{Mnemonic: m},
		})
	}
	return t
}

func mnemonics(cs []*sleigh.Constructor) []string {
	var out []string
	for _, c := range cs {
		out = append(out, c.Mnemonic())
	}
	return out
}

func TestMatch(t *testing.T) {
	tbl := table("mov", "subf.s", "", "addf.s", "trfsr")

	got, err := New("addf.s", "subf.s", "trfsr").Match(tbl)
	if err != nil {
		t.Fatalf("Match failed: %v", err)
	}

	// Enumeration order of the table, not selection order.
	want := []string{"subf.s", "addf.s", "trfsr"}
	if diff := cmp.Diff(want, mnemonics(got)); diff != "" {
		t.Errorf("Match() mismatch (-want +got):\n%s", diff)
	}
	if got[0] != &tbl.Constructors[1] {
		t.Error("Match() should return pointers into the table")
	}
}

func TestMatchDuplicateSelection(t *testing.T) {
	got, err := New("addf.s", "addf.s").Match(table("addf.s"))
	if err != nil {
		t.Fatalf("Match failed: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("len(Match()) = %d, want 1", len(got))
	}
}

func TestMatchMismatch(t *testing.T) {
	tests := []struct {
		name       string
		sel        Set
		tbl        *sleigh.Table
		missing    []string
		duplicated []string
	}{
		{
			name:    "missing mnemonic",
			sel:     New("addf.s", "nope"),
			tbl:     table("addf.s", "mov"),
			missing: []string{"nope"},
		},
		{
			name:       "constructor listed twice",
			sel:        New("addf.s", "subf.s"),
			tbl:        table("addf.s", "addf.s", "subf.s"),
			duplicated: []string{"addf.s"},
		},
		{
			name:       "duplicate hides missing",
			sel:        New("addf.s", "subf.s"),
			tbl:        table("addf.s", "addf.s"),
			missing:    []string{"subf.s"},
			duplicated: []string{"addf.s"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.sel.Match(tt.tbl)
			if !errors.Is(err, ErrMismatch) {
				t.Fatalf("Match() error = %v, want ErrMismatch", err)
			}
			if got != nil {
				t.Errorf("Match() returned %v on mismatch", mnemonics(got))
			}
			var merr *MismatchError
			if !errors.As(err, &merr) {
				t.Fatalf("error is %T, want *MismatchError", err)
			}
			if diff := cmp.Diff(tt.missing, merr.Missing); diff != "" {
				t.Errorf("Missing mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.duplicated, merr.Duplicated); diff != "" {
				t.Errorf("Duplicated mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDefault(t *testing.T) {
	s := Default()
	if len(s) != len(V850FPU) {
		t.Errorf("Default() has %d entries, want %d distinct", len(s), len(V850FPU))
	}
	for _, m := range []string{"addf.s", "trfsr", "trncf.sw"} {
		if !s.Contains(m) {
			t.Errorf("Default() is missing %s", m)
		}
	}
}
