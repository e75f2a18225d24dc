package codegen

import (
	"fmt"
	"strings"
)

// Markdown renders the coverage of a run for human review: which
// constructors carry placeholders that must be patched by hand, and which
// were skipped.
func (r *Report) Markdown() string {
	var sb strings.Builder

	title := "Guard coverage"
	if r.Model != "" {
		title += ": " + r.Model
	}
	fmt.Fprintf(&sb, "# %s\n\n", title)
	fmt.Fprintf(&sb, "- generated: **%d**\n", len(r.Results))
	fmt.Fprintf(&sb, "- placeholders: **%d**\n", r.Placeholders())
	fmt.Fprintf(&sb, "- failed: **%d**\n", len(r.Failures))

	var incomplete []Result
	for _, res := range r.Results {
		if len(res.Placeholders) > 0 {
			incomplete = append(incomplete, res)
		}
	}
	if len(incomplete) > 0 {
		sb.WriteString("\n## Needs review\n\n")
		sb.WriteString("| mnemonic | untranslated |\n|---|---|\n")
		for _, res := range incomplete {
			reasons := make([]string, len(res.Placeholders))
			for i, p := range res.Placeholders {
				reasons[i] = p.Reason
			}
			fmt.Fprintf(&sb, "| `%s` | %s |\n", res.Mnemonic, strings.Join(reasons, ", "))
		}
	}

	if len(r.Failures) > 0 {
		sb.WriteString("\n## Failed\n\n")
		for _, f := range r.Failures {
			fmt.Fprintf(&sb, "- `%s`: %v\n", f.Mnemonic, f.Err)
		}
	}
	return sb.String()
}
