package codegen

import "fmt"

// Placeholder reasons for verifications that are recognized but not
// translated. The reason doubles as the marker text in the output so the
// generated code fails to compile until a human patches it.
const (
	ReasonContextCheck = "ignored ContextCheck"
	ReasonSubPattern   = "ignored subpattern"
	ReasonOrBlock      = "ignored Or block"
)

// Fragment is the rendering of one verification: either supported text or
// a placeholder with a reason.
type Fragment struct {
	Text   string
	Reason string
}

// Supported returns a fragment carrying translated text.
func Supported(text string) Fragment {
	return Fragment{Text: text}
}

// Placeholder returns a fragment for an untranslated verification.
func Placeholder(reason string) Fragment {
	return Fragment{Text: reason, Reason: reason}
}

// IsPlaceholder reports whether f stands in for an untranslated verification.
func (f Fragment) IsPlaceholder() bool {
	return f.Reason != ""
}

func (f Fragment) String() string {
	if f.IsPlaceholder() {
		return fmt.Sprintf("Placeholder(%s)", f.Reason)
	}
	return fmt.Sprintf("Supported(%s)", f.Text)
}
