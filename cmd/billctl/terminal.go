package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	alertStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

const noReceipt = "(aucun justificatif)"

// terminalDocument renders service screen effects on the terminal
type terminalDocument struct {
	out    io.Writer
	errOut io.Writer

	alerts       []string
	inputCleared bool
}

func newTerminalDocument(out, errOut io.Writer) *terminalDocument {
	return &terminalDocument{out: out, errOut: errOut}
}

func (d *terminalDocument) Alert(message string) {
	d.alerts = append(d.alerts, message)
	fmt.Fprintln(d.errOut, alertStyle.Render(message))
}

func (d *terminalDocument) ClearFileInput() {
	d.inputCleared = true
}

func (d *terminalDocument) ShowReceiptModal(fileURL string) {
	if fileURL == "" {
		fmt.Fprintln(d.out, mutedStyle.Render(noReceipt))
		return
	}
	fmt.Fprintln(d.out, fileURL)
}

// navigationLog records where a service asked to go
type navigationLog struct {
	paths []string
}

func (n *navigationLog) Navigate(pathname string) {
	n.paths = append(n.paths, pathname)
}
