package sleigh

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a model from a YAML or JSON file and validates it.
func Load(path string) (*Sleigh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open model: %w", err)
	}
	defer f.Close()

	s, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Decode reads a model document from r. Unknown fields are rejected.
func Decode(r io.Reader) (*Sleigh, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Sleigh
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty model document")
		}
		return nil, fmt.Errorf("failed to decode model: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks that every id referenced from the instruction table
// resolves. All problems are reported together.
func (s *Sleigh) Validate() error {
	var errs []error
	if _, err := s.Instructions(); err != nil {
		return fmt.Errorf("instruction table: %w", err)
	}
	for ti := range s.Tables {
		t := &s.Tables[ti]
		for ci := range t.Constructors {
			c := &t.Constructors[ci]
			where := fmt.Sprintf("%s[%d]", t.Name, ci)
			if c.Mnemonic() != "" {
				where = fmt.Sprintf("%s[%d] %s", t.Name, ci, c.Mnemonic())
			}
			for _, err := range s.checkConstructor(c) {
				errs = append(errs, fmt.Errorf("%s: %w", where, err))
			}
		}
	}
	return errors.Join(errs...)
}

func (s *Sleigh) checkConstructor(c *Constructor) []error {
	var errs []error
	for i, e := range c.Display.Elements {
		var err error
		switch e.Kind {
		case DisplayTable:
			_, err = s.Table(e.Table)
		case DisplayTokenField:
			_, err = s.TokenField(e.TokenField)
		case DisplayVarnode, DisplayContext:
			_, err = s.Varnode(e.Varnode)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("display element %d: %w", i, err))
		}
	}
	return append(errs, s.checkPattern(&c.Pattern)...)
}

func (s *Sleigh) checkPattern(p *Pattern) []error {
	var errs []error
	for bi, b := range p.Blocks {
		for vi, v := range b.Verifications {
			for _, err := range s.checkVerification(&v) {
				errs = append(errs, fmt.Errorf("block %d verification %d: %w", bi, vi, err))
			}
		}
	}
	return errs
}

func (s *Sleigh) checkVerification(v *Verification) []error {
	var errs []error
	var err error
	switch v.Kind {
	case VerifyContextCheck:
		_, err = s.Varnode(v.Context)
		if v.Compare == nil {
			errs = append(errs, errors.New("context check without comparison"))
		}
	case VerifyTableBuild:
		_, err = s.Table(v.Table)
	case VerifyTokenFieldCheck:
		_, err = s.TokenField(v.Field)
		if v.Compare == nil {
			errs = append(errs, errors.New("token field check without comparison"))
		}
	case VerifySubPattern:
		if v.Pattern == nil {
			errs = append(errs, errors.New("sub pattern without pattern"))
		} else {
			errs = append(errs, s.checkPattern(v.Pattern)...)
		}
	}
	if err != nil {
		errs = append(errs, err)
	}
	if v.Compare != nil {
		for i, e := range v.Compare.Value {
			if n := e.set(); n != 1 {
				errs = append(errs, fmt.Errorf("expression element %d sets %d fields, want 1", i, n))
			}
		}
	}
	return errs
}

func (e ExprElement) set() int {
	n := 0
	if e.Value != nil {
		n++
	}
	if e.Op != nil {
		n++
	}
	if e.Unary != nil {
		n++
	}
	return n
}
