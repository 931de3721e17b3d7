package cli

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/mroussel/frais/internal/cli/formatter"
	"github.com/mroussel/frais/internal/domain"
)

// loginDoneMsg carries the outcome of a sign-in attempt.
type loginDoneMsg struct {
	role domain.UserRole
	err  error
}

// loginView is the entry screen: pick a role, sign in, land on the
// matching area of the app.
type loginView struct {
	state *SharedState
	form  *huh.Form

	role     string
	email    string
	password string

	submitting bool
	err        error
}

func newLoginView(state *SharedState) *loginView {
	v := &loginView{state: state, role: string(domain.RoleEmployee)}
	v.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Profil").
				Options(
					huh.NewOption("Employé", string(domain.RoleEmployee)),
					huh.NewOption("Administrateur RH", string(domain.RoleAdministrator)),
				).
				Value(&v.role),
			huh.NewInput().
				Title("Email").
				Placeholder("employee@test.tld").
				Value(&v.email),
			huh.NewInput().
				Title("Mot de passe").
				EchoMode(huh.EchoModePassword).
				Value(&v.password),
		),
	).WithTheme(fraisHuhTheme()).WithShowHelp(false)
	return v
}

func (v *loginView) ID() ViewID    { return ViewLogin }
func (v *loginView) Title() string { return "Connexion" }

func (v *loginView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "se connecter")),
		key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quitter")),
	}
}

func (v *loginView) Init() tea.Cmd {
	return v.form.Init()
}

func (v *loginView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loginDoneMsg:
		v.submitting = false
		if msg.err != nil {
			v.err = msg.err
			v.form = newLoginView(v.state).form
			return v, v.form.Init()
		}
		if msg.role == domain.RoleAdministrator {
			return v, navigate(RouteDashboard)
		}
		return v, navigate(RouteBills)
	}

	if v.submitting {
		return v, nil
	}

	form, cmd := v.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.form = f
	}
	if v.form.State == huh.StateCompleted {
		v.submitting = true
		return v, tea.Batch(cmd, v.handleSubmit())
	}
	return v, cmd
}

// handleSubmit authenticates against the remote store and records the
// session. Without a store the chosen role is trusted as-is, which keeps
// the fixture mode usable offline.
func (v *loginView) handleSubmit() tea.Cmd {
	app := v.state.App
	role := domain.UserRole(v.role)
	email, password := v.email, v.password
	return func() tea.Msg {
		ctx := context.Background()

		token := ""
		if app.Store != nil {
			creds, err := app.Store.Login(ctx, email, password)
			if err != nil {
				return loginDoneMsg{err: err}
			}
			token = creds.Token
		}

		if err := app.Sessions.SignIn(ctx, role, email, token); err != nil {
			return loginDoneMsg{err: err}
		}
		return loginDoneMsg{role: role}
	}
}

func (v *loginView) View() string {
	var b strings.Builder
	b.WriteString("\n")
	if v.err != nil {
		b.WriteString("  " + formatter.StyleRed.Render("Connexion impossible : "+v.err.Error()) + "\n\n")
	}
	if v.submitting {
		b.WriteString("  " + formatter.Dim("Connexion...") + "\n")
		return b.String()
	}
	b.WriteString(v.form.View())
	return b.String()
}
