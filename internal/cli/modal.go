package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mroussel/frais/internal/cli/formatter"
)

// ModalPresenter is the one capability views get for showing a panel of
// content over the current view. Keeping it an interface means the views
// carry no dependency on the concrete overlay widget.
type ModalPresenter interface {
	Show(c ModalContent)
	Hide()
	Shown() bool
}

// ModalContent is the payload handed to the presenter.
type ModalContent struct {
	Title    string
	FileURL  string
	FileName string
}

// receiptModal renders a bill's attached receipt in a centered overlay
// scaled to half the terminal width.
type receiptModal struct {
	shown   bool
	content ModalContent
}

func newReceiptModal() *receiptModal {
	return &receiptModal{}
}

func (m *receiptModal) Show(c ModalContent) {
	m.content = c
	m.shown = true
}

func (m *receiptModal) Hide() {
	m.shown = false
}

func (m *receiptModal) Shown() bool { return m.shown }

// Render draws the overlay panel. A missing FileURL still opens the
// panel, with an empty body rather than an error.
func (m *receiptModal) Render(termWidth int) string {
	width := termWidth / 2
	if width < 30 {
		width = 30
	}

	title := m.content.Title
	if title == "" {
		title = "Justificatif"
	}

	var b strings.Builder
	b.WriteString(formatter.StyleHeader.Render(title) + "\n\n")
	if m.content.FileURL != "" {
		b.WriteString(formatter.StyleBlue.Render(m.content.FileURL) + "\n")
		if m.content.FileName != "" {
			b.WriteString(formatter.Dim(m.content.FileName) + "\n")
		}
	} else {
		b.WriteString(formatter.Dim("(aucun fichier)") + "\n")
	}

	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(formatter.ColorHeader).
		Padding(1, 2).
		Width(width)

	return frame.Render(b.String())
}
