package cli

import tea "github.com/charmbracelet/bubbletea"

// Hash paths are the entire addressing scheme: every view transition is a
// navigateMsg carrying one of these fragments, resolved by the Router.
const (
	RouteLogin     = "#/"
	RouteBills     = "#employee/bills"
	RouteNewBill   = "#employee/bill/new"
	RouteDashboard = "#admin/dashboard"
)

// navigateMsg asks the appModel to transition to the view behind path.
// Unknown paths are a silent no-op.
type navigateMsg struct {
	path string
}

// navigate returns a tea.Cmd requesting a transition to path. This is the
// single navigation entry point handed to every view.
func navigate(path string) tea.Cmd {
	return func() tea.Msg { return navigateMsg{path: path} }
}
