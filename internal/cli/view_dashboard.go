package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mroussel/frais/internal/cli/formatter"
	"github.com/mroussel/frais/internal/domain"
)

// dashboardLoadedMsg carries every bill, all users confounded, for triage.
type dashboardLoadedMsg struct {
	bills []domain.Bill
	err   error
}

// dashboardView is the HR admin screen: bills from all employees, grouped
// by validation status.
type dashboardView struct {
	state   *SharedState
	groups  map[domain.BillStatus][]displayBill
	loading bool
	err     error

	// focus walks the three status columns, cursor the rows within one.
	focus  int
	cursor int
}

var dashboardColumns = []domain.BillStatus{
	domain.BillPending,
	domain.BillAccepted,
	domain.BillRefused,
}

func newDashboardView(state *SharedState) *dashboardView {
	return &dashboardView{state: state, loading: true}
}

func (v *dashboardView) ID() ViewID    { return ViewDashboard }
func (v *dashboardView) Title() string { return "Validations" }

func (v *dashboardView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "statut suivant")),
		key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "naviguer")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "justificatif")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rafraîchir")),
	}
}

func (v *dashboardView) Init() tea.Cmd {
	return v.loadDashboard()
}

func (v *dashboardView) loadDashboard() tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		bills, err := fetchBills(context.Background(), app)
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}
		domain.SortBillsByDateDesc(bills)
		return dashboardLoadedMsg{bills: bills}
	}
}

func (v *dashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		v.loading = false
		v.err = msg.err
		if msg.err != nil {
			return v, nil
		}
		v.groups = make(map[domain.BillStatus][]displayBill, len(dashboardColumns))
		for _, b := range msg.bills {
			v.groups[b.Status] = append(v.groups[b.Status], mapDisplayBill(v.state.App, b))
		}
		v.focus, v.cursor = 0, 0
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab":
			v.focus = (v.focus + 1) % len(dashboardColumns)
			v.cursor = 0
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(v.focusedRows())-1 {
				v.cursor++
			}
		case "enter":
			rows := v.focusedRows()
			if v.cursor < len(rows) {
				v.handleClickIconEye(rows[v.cursor])
			}
		case "r":
			v.loading = true
			v.err = nil
			return v, v.loadDashboard()
		}
	}
	return v, nil
}

func (v *dashboardView) focusedRows() []displayBill {
	return v.groups[dashboardColumns[v.focus]]
}

func (v *dashboardView) handleClickIconEye(row displayBill) {
	v.state.Modal.Show(ModalContent{
		Title:    "Justificatif",
		FileURL:  row.Bill.FileURL,
		FileName: row.Bill.FileName,
	})
}

func (v *dashboardView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Chargement...") + "\n"
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render(v.err.Error()) + "\n\n  " +
			formatter.Dim("r: réessayer") + "\n"
	}

	cols := make([]string, 0, len(dashboardColumns))
	for i, status := range dashboardColumns {
		cols = append(cols, v.renderColumn(i, status))
	}
	return "\n" + lipgloss.JoinHorizontal(lipgloss.Top, cols...) + "\n"
}

func (v *dashboardView) renderColumn(idx int, status domain.BillStatus) string {
	rows := v.groups[status]
	width := v.columnWidth()

	header := fmt.Sprintf("%s (%d)", formatter.StatusLabel(status), len(rows))
	style := formatter.StatusStyle(status)
	if idx == v.focus {
		header = style.Bold(true).Underline(true).Render(header)
	} else {
		header = style.Render(header)
	}

	var b strings.Builder
	b.WriteString(" " + header + "\n\n")
	if len(rows) == 0 {
		b.WriteString(" " + formatter.Dim("aucune") + "\n")
	}
	for i, row := range rows {
		line := fmt.Sprintf("%s  %s", row.DateLabel, truncate(row.Bill.Name, width-14))
		if idx == v.focus && i == v.cursor {
			line = formatter.StyleHeader.Render("> " + line)
		} else {
			line = "  " + formatter.StyleFg.Render(line)
		}
		b.WriteString(" " + line + "\n")
	}
	return lipgloss.NewStyle().Width(width).Render(b.String())
}

func (v *dashboardView) columnWidth() int {
	w := v.state.Width / len(dashboardColumns)
	if w < 24 {
		w = 24
	}
	return w
}
