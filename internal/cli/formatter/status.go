package formatter

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/mroussel/frais/internal/domain"
)

// StatusLabel maps a bill status onto its display label. Anything outside
// the known set reads as refused, matching the backend's copy.
func StatusLabel(s domain.BillStatus) string {
	switch s {
	case domain.BillPending:
		return "En attente"
	case domain.BillAccepted:
		return "Accepté"
	default:
		return "Refused"
	}
}

// StatusStyle returns the lipgloss style for a bill status.
func StatusStyle(s domain.BillStatus) lipgloss.Style {
	switch s {
	case domain.BillPending:
		return StyleYellow
	case domain.BillAccepted:
		return StyleGreen
	default:
		return StyleRed
	}
}
