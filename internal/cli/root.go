package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mroussel/frais/internal/cli/formatter"
	"github.com/mroussel/frais/internal/domain"
	"github.com/mroussel/frais/internal/store"
)

// NewRootCmd creates the top-level "frais" command. Running it without a
// subcommand opens the interactive TUI.
func NewRootCmd(app *App) *cobra.Command {
	var route string

	root := &cobra.Command{
		Use:   "frais",
		Short: "Notes de frais: submit and track expense reports",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && !app.IsInteractive() {
				return fmt.Errorf("frais needs an interactive terminal; see 'frais --help' for one-shot commands")
			}
			if route != "" {
				app.InitialRoute = route
			}
			return runTUI(app)
		},
	}
	root.Flags().StringVar(&route, "route", "", "Startup route (e.g. #employee/bills)")

	root.AddCommand(
		newLoginCmd(app),
		newLogoutCmd(app),
		newBillsCmd(app),
	)

	return root
}

// runTUI launches the interactive program.
func runTUI(app *App) error {
	p := tea.NewProgram(newAppModel(app), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newLoginCmd(app *App) *cobra.Command {
	var roleStr, email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and persist the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			role := domain.UserRole(roleStr)
			if role != domain.RoleEmployee && role != domain.RoleAdministrator {
				return fmt.Errorf("invalid role %q (Employee or Administrator)", roleStr)
			}

			if app.Store == nil {
				return store.ErrNoStore
			}

			ctx := context.Background()
			creds, err := app.Store.Login(ctx, email, password)
			if err != nil {
				return err
			}
			if err := app.Sessions.SignIn(ctx, role, email, creds.Token); err != nil {
				return err
			}

			fmt.Printf("Signed in as %s (%s)\n", email, role)
			return nil
		},
	}

	cmd.Flags().StringVar(&roleStr, "role", string(domain.RoleEmployee), "Profile (Employee or Administrator)")
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the persisted session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Sessions.SignOut(context.Background()); err != nil {
				return err
			}
			fmt.Println("Signed out")
			return nil
		},
	}
}

func newBillsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "bills",
		Short: "List your bills, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			bills, err := fetchBills(context.Background(), app)
			if err != nil {
				return err
			}
			domain.SortBillsByDateDesc(bills)

			if len(bills) == 0 {
				fmt.Println("Aucune note de frais.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TYPE\tNOM\tDATE\tMONTANT\tSTATUT")
			for _, b := range bills {
				date, err := formatter.FormatDate(b.Date)
				if err != nil {
					date = b.Date
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%.2f €\t%s\n",
					b.Type, b.Name, date, b.Amount, formatter.StatusLabel(b.Status))
			}
			return w.Flush()
		},
	}
}
