package cli

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mroussel/frais/internal/cli/formatter"
)

// appModel is the root bubbletea Model of the shell. It owns the single
// rendered view, delegates transitions to the Router, and composes the
// receipt modal over the content area.
type appModel struct {
	state    *SharedState
	view     View
	modal    *receiptModal
	quitting bool
}

func newAppModel(app *App) appModel {
	state := &SharedState{App: app}
	state.Router = newRouter(state)

	modal := newReceiptModal()
	state.Modal = modal

	m := appModel{
		state: state,
		modal: modal,
	}

	// Initial load: empty or unknown hash defaults to the login route.
	initial := app.InitialRoute
	if initial == "" {
		initial = RouteLogin
	}
	view, ok := state.Router.Resolve(initial)
	if !ok {
		view, _ = state.Router.Resolve(RouteLogin)
	}
	m.view = view

	return m
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m appModel) Init() tea.Cmd {
	if m.view != nil {
		return m.view.Init()
	}
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		if m.view != nil {
			updated, cmd := m.view.Update(msg)
			m.view = updated.(View)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case navigateMsg:
		view, ok := m.state.Router.Resolve(msg.path)
		if !ok {
			// Unknown hash: the current view is left untouched.
			return m, nil
		}
		m.modal.Hide()
		m.view = view
		return m, view.Init()

	}

	if m.view != nil {
		updated, cmd := m.view.Update(msg)
		m.view = updated.(View)
		return m, cmd
	}
	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global quit
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	// An open modal swallows keys: Esc or q dismisses, the rest is ignored.
	if m.modal.Shown() {
		switch {
		case msg.Type == tea.KeyEsc, msg.String() == "q":
			m.modal.Hide()
		}
		return m, nil
	}

	// Views with their own text inputs receive every key, including 'q'.
	if m.view != nil && viewCapturesInput(m.view) {
		updated, cmd := m.view.Update(msg)
		m.view = updated.(View)
		return m, cmd
	}

	if msg.String() == "q" {
		m.quitting = true
		return m, tea.Quit
	}

	if m.view != nil {
		updated, cmd := m.view.Update(msg)
		m.view = updated.(View)
		return m, cmd
	}
	return m, nil
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	var sections []string
	sections = append(sections, m.renderHeader())

	if m.modal.Shown() {
		sections = append(sections, m.modal.Render(m.state.Width))
	} else if m.view != nil {
		sections = append(sections, m.view.View())
	}

	sections = append(sections, m.renderStatusBar())

	result := strings.Join(sections, "\n")

	// Pad to terminal height to prevent stale line artifacts from
	// bubbletea's line-diff renderer in alt-screen mode.
	if m.state.Height > 0 {
		lines := strings.Count(result, "\n") + 1
		if lines < m.state.Height {
			result += strings.Repeat("\n", m.state.Height-lines)
		}
	}

	return result
}

// ── rendering helpers ────────────────────────────────────────────────────────

// navIconGlyphs pairs each sidebar icon with its glyph, in display order.
var navIconGlyphs = []struct {
	icon  navIcon
	glyph string
}{
	{iconWindow, "▦"},
	{iconMail, "✉"},
	{iconShield, "⛨"},
}

func (m *appModel) renderHeader() string {
	title := formatter.StyleHeader.Render("frais")

	segment := ""
	if m.view != nil && m.view.Title() != "" {
		segment = " " + formatter.Dim("›") + " " + formatter.Dim(m.view.Title())
	}

	// Sidebar icons; the one matching the active route carries the
	// active-state marker.
	var icons []string
	active := m.state.Router.ActiveIcon()
	for _, g := range navIconGlyphs {
		if g.icon == active {
			icons = append(icons, formatter.StyleHeader.Render("["+g.glyph+"]"))
		} else {
			icons = append(icons, formatter.Dim(" "+g.glyph+" "))
		}
	}

	header := title + segment + "  " + strings.Join(icons, " ")
	sep := formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
	return header + "\n" + sep
}

func (m *appModel) renderStatusBar() string {
	var hints []string

	if m.modal.Shown() {
		hints = append(hints, formatter.Dim("esc: fermer"))
	} else if m.view != nil {
		for _, b := range m.view.ShortHelp() {
			hints = append(hints, formatter.Dim(b.Help().Key+": "+b.Help().Desc))
		}
	}

	sep := formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
	return sep + "\n" + strings.Join(hints, "  ")
}

// viewCapturesInput reports whether the active view has its own text
// inputs and should receive all key events, bypassing global keybindings.
func viewCapturesInput(v View) bool {
	if v == nil {
		return false
	}
	switch v.ID() {
	case ViewLogin, ViewNewBill:
		return true
	}
	return false
}
