package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mroussel/frais/internal/cli/formatter"
	"github.com/mroussel/frais/internal/domain"
)

// displayBill is a bill prepared for rendering: the raw record plus its
// localized date and status labels. The raw Date stays on the record so
// sorting never depends on the display form.
type displayBill struct {
	Bill        domain.Bill
	DateLabel   string
	StatusLabel string
}

// billsLoadedMsg signals that the bill collection has been loaded.
type billsLoadedMsg struct {
	rows []displayBill
	err  error
}

// billsView shows the employee's bill list and handles its two
// affordances: opening a receipt preview and starting a new bill.
type billsView struct {
	state   *SharedState
	rows    []displayBill
	cursor  int
	loading bool
	err     error
}

func newBillsView(state *SharedState) *billsView {
	return &billsView{
		state:   state,
		loading: true,
	}
}

func (v *billsView) ID() ViewID    { return ViewBills }
func (v *billsView) Title() string { return "Mes notes de frais" }

func (v *billsView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "justificatif")),
		key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "nouvelle note")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "actualiser")),
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quitter")),
	}
}

func (v *billsView) Init() tea.Cmd {
	return v.loadBills()
}

// loadBills fetches the collection from the remote store, or from the
// local cache / injected fixtures when no store is configured.
func (v *billsView) loadBills() tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		ctx := context.Background()

		bills, err := fetchBills(ctx, app)
		if err != nil {
			return billsLoadedMsg{err: err}
		}

		domain.SortBillsByDateDesc(bills)

		rows := make([]displayBill, 0, len(bills))
		for _, b := range bills {
			rows = append(rows, mapDisplayBill(app, b))
		}
		return billsLoadedMsg{rows: rows}
	}
}

// fetchBills resolves the data source and refreshes the cache after a
// successful remote list. Cache failures are logged, never surfaced.
func fetchBills(ctx context.Context, app *App) ([]domain.Bill, error) {
	if app.Store == nil {
		if app.Fixtures != nil {
			return app.Fixtures, nil
		}
		if app.Cache != nil {
			return app.Cache.List(ctx)
		}
		return nil, nil
	}

	bills, err := app.Store.Bills().List(ctx)
	if err != nil {
		return nil, err
	}
	if app.Cache != nil {
		if cacheErr := app.Cache.Replace(ctx, bills); cacheErr != nil {
			app.logger().Warn("refreshing bill cache", "error", cacheErr)
		}
	}
	return bills, nil
}

// mapDisplayBill prepares one record for rendering. A date that fails to
// format degrades to its raw value rather than aborting the batch.
func mapDisplayBill(app *App, b domain.Bill) displayBill {
	row := displayBill{
		Bill:        b,
		StatusLabel: formatter.StatusLabel(b.Status),
	}

	label, err := formatter.FormatDate(b.Date)
	if err != nil {
		app.logger().Warn("formatting bill date", "bill", b.ID, "date", b.Date, "error", err)
		row.DateLabel = b.Date
		return row
	}
	row.DateLabel = label
	return row
}

// handleClickNewBill transitions to the NewBill route.
func (v *billsView) handleClickNewBill() tea.Cmd {
	return navigate(RouteNewBill)
}

// handleClickIconEye opens the receipt preview for the given row. A bill
// without an attachment still opens the panel, empty.
func (v *billsView) handleClickIconEye(row displayBill) {
	v.state.Modal.Show(ModalContent{
		Title:    "Justificatif",
		FileURL:  row.Bill.FileURL,
		FileName: row.Bill.FileName,
	})
}

func (v *billsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case billsLoadedMsg:
		v.loading = false
		v.err = msg.err
		if msg.err == nil {
			v.rows = msg.rows
		}
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(v.rows)-1 {
				v.cursor++
			}
		case "enter", "e":
			if v.cursor < len(v.rows) {
				v.handleClickIconEye(v.rows[v.cursor])
			}
		case "n":
			return v, v.handleClickNewBill()
		case "r":
			v.loading = true
			v.err = nil
			return v, v.loadBills()
		}
	}
	return v, nil
}

func (v *billsView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Chargement...")
	}
	if v.err != nil {
		return v.renderError()
	}
	if len(v.rows) == 0 {
		return "\n  " + formatter.Dim("Aucune note de frais.")
	}

	var b strings.Builder
	b.WriteString("\n")
	header := fmt.Sprintf("  %-24s %-22s %-12s %10s  %-12s %s",
		"Type", "Nom", "Date", "Montant", "Statut", "")
	b.WriteString(formatter.Dim(header) + "\n")

	for i, row := range v.rows {
		cursor := "  "
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
		}

		receipt := " "
		if row.Bill.HasReceipt() {
			receipt = formatter.Dim("👁")
		}

		line := fmt.Sprintf("%s%-24s %-22s %-12s %9.0f €  %-12s %s",
			cursor,
			truncate(row.Bill.Type, 24),
			truncate(row.Bill.Name, 22),
			row.DateLabel,
			row.Bill.Amount,
			formatter.StatusStyle(row.Bill.Status).Render(row.StatusLabel),
			receipt,
		)
		b.WriteString(line + "\n")
	}
	return b.String()
}

// renderError shows the store's rejection message verbatim, the way the
// backend phrased it ("Erreur 404", "Erreur 500", ...).
func (v *billsView) renderError() string {
	var b strings.Builder
	b.WriteString("\n  " + formatter.StyleRed.Render("Erreur") + "\n\n")
	b.WriteString("  " + formatter.StyleFg.Render(v.err.Error()) + "\n\n")
	b.WriteString("  " + formatter.Dim("r: réessayer") + "\n")
	return b.String()
}

func truncate(s string, n int) string {
	if len([]rune(s)) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-1]) + "…"
}
