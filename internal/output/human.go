package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ALT-F4-LLC/chatexport/internal/render"
)

var (
	successIcon = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	infoStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// writeHumanSuccess prints message to w. Single lines get a checkmark;
// multi-line content (tables, transcripts) is printed untouched.
func writeHumanSuccess(w io.Writer, message string) {
	if message == "" {
		return
	}
	if strings.Contains(message, "\n") || !render.ColorsEnabled() {
		fmt.Fprintln(w, message)
		return
	}
	fmt.Fprintf(w, "%s %s\n", successIcon.Render("✔"), message)
}

func writeHumanError(w io.Writer, err error, details []string) {
	if render.ColorsEnabled() {
		fmt.Fprintf(w, "%s %s %s\n", errorStyle.Render("✘"), errorStyle.Render("Error:"), err)
	} else {
		fmt.Fprintf(w, "Error: %s\n", err)
	}
	for _, d := range details {
		fmt.Fprintf(w, "  - %s\n", d)
	}
}

func writeHumanWarning(w io.Writer, msg string) {
	if render.ColorsEnabled() {
		fmt.Fprintf(w, "%s %s %s\n", warnStyle.Render("⚠"), warnStyle.Render("Warning:"), msg)
		return
	}
	fmt.Fprintf(w, "Warning: %s\n", msg)
}

func writeHumanInfo(w io.Writer, msg string) {
	if render.ColorsEnabled() {
		fmt.Fprintf(w, "%s %s\n", infoStyle.Render("ℹ"), infoStyle.Render(msg))
		return
	}
	fmt.Fprintln(w, msg)
}
