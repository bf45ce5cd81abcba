package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	okMark   = lipgloss.NewStyle().Foreground(lipgloss.Color("36")).Bold(true).Render("ok")
	failMark = lipgloss.NewStyle().Foreground(lipgloss.Color("167")).Bold(true).Render("error")
	noteMark = lipgloss.NewStyle().Foreground(lipgloss.Color("179")).Render("note")

	codeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("24")).Padding(0, 1)
	dimStyle  = lipgloss.NewStyle().Faint(true)
)

func printOK(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s: %s\n", okMark, fmt.Sprintf(format, args...))
}

func printNote(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s: %s\n", noteMark, fmt.Sprintf(format, args...))
}

func printFailure(w io.Writer, err error) {
	fmt.Fprintf(w, "%s: %v\n", failMark, err)
}

func showCode(c string) string {
	return codeStyle.Render(c)
}

func dim(s string) string {
	return dimStyle.Render(s)
}
