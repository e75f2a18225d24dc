package styles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss/v2"
)

var (
	indexStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("170")).Bold(true)
	mnemonicStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("81"))
	missingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// ListLine formats one constructor of the instruction table. Selected
// constructors are marked with ">".
func ListLine(index int, mnemonic string, selected bool) string {
	if mnemonic == "" {
		mnemonic = "<unnamed>"
	}
	indicator := " "
	name := mnemonicStyle.Render(mnemonic)
	if selected {
		indicator = ">"
		name = selectedStyle.Render(mnemonic)
	}
	return fmt.Sprintf(" %s %s  %s", indicator, indexStyle.Render(fmt.Sprintf("%4d", index)), name)
}

// MissingLine formats a selected mnemonic the model does not define.
func MissingLine(mnemonic string) string {
	return missingStyle.Render(fmt.Sprintf(" ! missing  %s", mnemonic))
}
