package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/mroussel/frais/internal/cli/formatter"
	"github.com/mroussel/frais/internal/domain"
	"github.com/mroussel/frais/internal/store"
)

// allowedReceiptExts is the attachment allow-list, checked case-insensitively.
var allowedReceiptExts = map[string]bool{
	"jpg": true, "jpeg": true, "png": true,
}

// newBillStage tracks the draft through its three phases: expense details,
// receipt attachment, then ready to submit.
type newBillStage int

const (
	stageDetails newBillStage = iota
	stageFile
	stageReady
)

// billFields holds the form-bound draft values.
type billFields struct {
	expType    string
	name       string
	date       string
	amount     string
	pct        string
	vat        string
	commentary string
}

// fileAttachedMsg carries the result of the receipt upload.
type fileAttachedMsg struct {
	att store.Attachment
	err error
}

// billPersistedMsg carries the result of the create/update call. By the
// time it arrives the user has already navigated away; failures are
// logged, not rendered.
type billPersistedMsg struct {
	err error
}

// newBillView is the stateful draft of a single bill being composed.
type newBillView struct {
	state  *SharedState
	stage  newBillStage
	form   *huh.Form
	fields *billFields

	fileInput      textinput.Model
	fileErrVisible bool // inline error element on a bad extension
	uploading      bool

	// Draft fields accumulated across handler calls.
	fileURL  string
	fileName string
	billID   string
}

func newNewBillView(state *SharedState) *newBillView {
	fields := &billFields{pct: strconv.Itoa(domain.DefaultPct)}

	fi := textinput.New()
	fi.Placeholder = "chemin/vers/facture.jpg"
	fi.CharLimit = 512

	return &newBillView{
		state:     state,
		fields:    fields,
		form:      newBillForm(fields),
		fileInput: fi,
	}
}

func newBillForm(f *billFields) *huh.Form {
	typeOptions := make([]huh.Option[string], 0, len(domain.ExpenseTypes))
	for _, t := range domain.ExpenseTypes {
		typeOptions = append(typeOptions, huh.NewOption(t, t))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Type de dépense").
				Options(typeOptions...).
				Value(&f.expType),
			huh.NewInput().
				Title("Nom de la dépense").
				Placeholder("Vol Paris Londres").
				Value(&f.name),
			huh.NewInput().
				Title("Date (YYYY-MM-DD)").
				Placeholder("2023-01-23").
				Value(&f.date).
				Validate(validateRequiredDate),
			huh.NewInput().
				Title("Montant TTC").
				Placeholder("348").
				Value(&f.amount).
				Validate(validateAmount),
			huh.NewInput().
				Title("TVA %").
				Placeholder(strconv.Itoa(domain.DefaultPct)).
				Value(&f.pct).
				Validate(validateOptionalInt),
			huh.NewInput().
				Title("TVA (montant)").
				Placeholder("70").
				Value(&f.vat),
		),
		huh.NewGroup(
			huh.NewText().
				Title("Commentaire").
				Value(&f.commentary),
		),
	).WithTheme(fraisHuhTheme()).WithShowHelp(false)
}

func (v *newBillView) ID() ViewID    { return ViewNewBill }
func (v *newBillView) Title() string { return "Envoyer une note de frais" }

func (v *newBillView) ShortHelp() []key.Binding {
	switch v.stage {
	case stageFile:
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "joindre")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "annuler")),
		}
	case stageReady:
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "envoyer")),
			key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "changer le justificatif")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "annuler")),
		}
	default:
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "suivant")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "annuler")),
		}
	}
}

func (v *newBillView) Init() tea.Cmd {
	return v.form.Init()
}

func (v *newBillView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case fileAttachedMsg:
		v.uploading = false
		if msg.err != nil {
			// The draft file fields stay unset; re-selecting a file retries.
			v.state.App.logger().Error("attaching receipt", "error", msg.err)
			return v, nil
		}
		v.fileURL = msg.att.FileURL
		v.fileName = msg.att.FileName
		v.billID = msg.att.BillID
		v.stage = stageReady
		return v, nil

	case billPersistedMsg:
		if msg.err != nil {
			v.state.App.logger().Error("persisting bill", "error", msg.err)
		}
		return v, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return v, navigate(RouteBills)
		}
		switch v.stage {
		case stageFile:
			if msg.Type == tea.KeyEnter && !v.uploading {
				return v, v.handleChangeFile(v.fileInput.Value())
			}
			var cmd tea.Cmd
			v.fileInput, cmd = v.fileInput.Update(msg)
			return v, cmd

		case stageReady:
			switch {
			case msg.Type == tea.KeyEnter:
				return v, v.handleSubmit()
			case msg.String() == "f":
				v.stage = stageFile
				return v, v.fileInput.Focus()
			}
			return v, nil
		}
	}

	if v.stage == stageDetails {
		form, cmd := v.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			v.form = f
		}
		if v.form.State == huh.StateCompleted {
			v.stage = stageFile
			return v, tea.Batch(cmd, v.fileInput.Focus())
		}
		return v, cmd
	}

	if v.stage == stageFile {
		var cmd tea.Cmd
		v.fileInput, cmd = v.fileInput.Update(msg)
		return v, cmd
	}
	return v, nil
}

// handleChangeFile validates the selected receipt and uploads it. A file
// outside the jpg/jpeg/png allow-list reveals the inline error element and
// never reaches the store.
func (v *newBillView) handleChangeFile(path string) tea.Cmd {
	path = strings.TrimSpace(path)
	if !allowedReceiptFile(path) {
		v.fileErrVisible = true
		return nil
	}
	v.fileErrVisible = false

	fileName := sanitizeFileName(path)
	app := v.state.App
	if app.Store == nil {
		// Read-only mode: keep the name locally, nothing to upload to.
		v.fileName = fileName
		v.stage = stageReady
		return nil
	}

	v.uploading = true
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return fileAttachedMsg{err: fmt.Errorf("opening receipt: %w", err)}
		}
		defer f.Close()

		att, err := app.Store.Bills().Upload(context.Background(), fileName, f)
		return fileAttachedMsg{att: att, err: err}
	}
}

// handleSubmit assembles the pending bill and fires the persistence call.
// Navigation back to the list is NOT gated on the call's outcome.
func (v *newBillView) handleSubmit() tea.Cmd {
	bill := v.buildBill()
	return tea.Batch(v.updateBill(bill), navigate(RouteBills))
}

func (v *newBillView) buildBill() domain.Bill {
	email := ""
	if user, err := v.state.App.Sessions.Current(context.Background()); err == nil && user != nil {
		email = user.Email
	}

	amount, _ := strconv.ParseFloat(strings.TrimSpace(v.fields.amount), 64)
	pct, err := strconv.Atoi(strings.TrimSpace(v.fields.pct))
	if err != nil || pct <= 0 {
		pct = domain.DefaultPct
	}

	return domain.Bill{
		ID:         v.billID,
		Email:      email,
		Type:       v.fields.expType,
		Name:       v.fields.name,
		Date:       strings.TrimSpace(v.fields.date),
		Amount:     amount,
		Pct:        pct,
		VAT:        strings.TrimSpace(v.fields.vat),
		Commentary: v.fields.commentary,
		FileURL:    v.fileURL,
		FileName:   v.fileName,
		Status:     domain.BillPending,
	}
}

// updateBill persists the bill: update when the attach call already
// allocated a record id, create otherwise. Failures are logged only.
// A local echo lands in the cache first so the list reflects the new
// bill even before (or without) remote confirmation.
func (v *newBillView) updateBill(bill domain.Bill) tea.Cmd {
	app := v.state.App
	hasRemoteID := v.billID != ""
	return func() tea.Msg {
		ctx := context.Background()

		if app.Cache != nil {
			echo := bill
			if echo.ID == "" {
				echo.ID = uuid.NewString()
			}
			cached, _ := app.Cache.List(ctx)
			if err := app.Cache.Replace(ctx, append([]domain.Bill{echo}, cached...)); err != nil {
				app.logger().Warn("echoing bill to cache", "error", err)
			}
		}

		if app.Store == nil {
			return billPersistedMsg{}
		}

		var err error
		if hasRemoteID {
			_, err = app.Store.Bills().Update(ctx, bill)
		} else {
			_, err = app.Store.Bills().Create(ctx, bill)
		}
		return billPersistedMsg{err: err}
	}
}

func (v *newBillView) View() string {
	switch v.stage {
	case stageFile:
		var b strings.Builder
		b.WriteString("\n  " + formatter.StyleBold.Render("Justificatif") + " " +
			formatter.Dim("(jpg, jpeg ou png)") + "\n\n")
		b.WriteString("  " + v.fileInput.View() + "\n")
		if v.fileErrVisible {
			b.WriteString("\n  " + formatter.StyleRed.Render(
				"Le justificatif doit être au format jpg, jpeg ou png.") + "\n")
		}
		if v.uploading {
			b.WriteString("\n  " + formatter.Dim("Envoi du justificatif...") + "\n")
		}
		return b.String()

	case stageReady:
		var b strings.Builder
		b.WriteString("\n  " + formatter.StyleBold.Render(v.fields.name) + "\n\n")
		b.WriteString("  " + formatter.Dim("Type") + "         " + v.fields.expType + "\n")
		b.WriteString("  " + formatter.Dim("Date") + "         " + v.fields.date + "\n")
		b.WriteString("  " + formatter.Dim("Montant") + "      " + v.fields.amount + " €\n")
		b.WriteString("  " + formatter.Dim("Justificatif") + " " + v.fileName + "\n\n")
		b.WriteString("  " + formatter.StyleGreen.Render("enter") + " " +
			formatter.Dim("pour envoyer la note de frais") + "\n")
		return b.String()

	default:
		return v.form.View()
	}
}

// ── helpers ──────────────────────────────────────────────────────────────────

// allowedReceiptFile checks the extension against the allow-list,
// case-insensitively.
func allowedReceiptFile(path string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	return allowedReceiptExts[ext]
}

// sanitizeFileName strips directory components, including Windows-style
// backslash paths a browser-era export may carry.
func sanitizeFileName(path string) string {
	base := filepath.Base(path)
	if i := strings.LastIndexByte(base, '\\'); i >= 0 {
		base = base[i+1:]
	}
	return base
}

func validateRequiredDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("la date est requise")
	}
	if _, err := formatter.FormatDate(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("utiliser le format YYYY-MM-DD")
	}
	return nil
}

func validateAmount(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= 0 {
		return fmt.Errorf("entrer un montant positif")
	}
	return nil
}

func validateOptionalInt(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 0 {
		return fmt.Errorf("entrer un nombre positif")
	}
	return nil
}
