package view

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/ledgerboard/internal/encoding"
	"github.com/MrJamesThe3rd/ledgerboard/internal/export"
	"github.com/MrJamesThe3rd/ledgerboard/internal/importer"
	"github.com/MrJamesThe3rd/ledgerboard/internal/ledger"
)

const fileTimeout = 2 * time.Minute

type dataState int

const (
	dataStateMenu dataState = iota
	dataStateExportForm
	dataStateFilePick
	dataStateRunning
	dataStateResult
)

type dataAction int

const (
	dataBackup dataAction = iota
	dataExport
	dataImportCSV
	dataRestore
)

type actionItem struct {
	action      dataAction
	title, desc string
}

func (i actionItem) Title() string       { return i.title }
func (i actionItem) Description() string { return i.desc }
func (i actionItem) FilterValue() string { return i.title }

type exportInput struct {
	dir  string
	year string
}

type dataDoneMsg struct {
	status string
	err    error
}

type DataModel struct {
	CommonModel
	ledger   *ledger.Service
	export   *export.Service
	importer *importer.Service

	state      dataState
	action     dataAction
	menu       list.Model
	filePicker filepicker.Model
	spinner    spinner.Model
	in         *exportInput
	form       *huh.Form
	status     string
	err        error
}

func NewDataModel(ledgerSvc *ledger.Service, exportSvc *export.Service, importSvc *importer.Service) DataModel {
	items := []list.Item{
		actionItem{action: dataBackup, title: "Back up", desc: "Write a timestamped copy of the ledger"},
		actionItem{action: dataExport, title: "Export bundle", desc: "Zip of CSV files and annual reports"},
		actionItem{action: dataImportCSV, title: "Import CSV", desc: "Merge months from a spreadsheet export"},
		actionItem{action: dataRestore, title: "Restore backup", desc: "Replace the whole ledger from a backup file"},
	}

	menu := list.New(items, list.NewDefaultDelegate(), 60, 14)
	menu.Title = "Backup & Export"
	menu.SetShowStatusBar(false)
	menu.SetFilteringEnabled(false)
	menu.SetShowHelp(false)
	menu.DisableQuitKeybindings()

	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".json"}
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return DataModel{
		ledger:     ledgerSvc,
		export:     exportSvc,
		importer:   importSvc,
		menu:       menu,
		filePicker: fp,
		spinner:    s,
	}
}

func (m DataModel) Init() tea.Cmd {
	return nil
}

func newExportForm(in *exportInput) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("dir").
				Title("Directory").
				Value(&in.dir),
			huh.NewInput().
				Key("year").
				Title("Year").
				Description("Leave blank to export every month").
				Value(&in.year).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}

					return validateYear(s)
				}),
		),
	).WithWidth(60).WithShowHelp(false)
}

func (m DataModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			if m.state == dataStateMenu {
				return m, Back
			}

			if m.state != dataStateRunning {
				m.state = dataStateMenu
				return m, nil
			}
		}

		if m.state == dataStateMenu && msg.Type == tea.KeyEnter {
			return m.choose()
		}

		if m.state == dataStateResult {
			m.state = dataStateMenu
			return m, nil
		}
	case dataDoneMsg:
		m.state = dataStateResult
		m.status = msg.status
		m.err = msg.err

		return m, nil
	case spinner.TickMsg:
		if m.state == dataStateRunning {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)

			return m, cmd
		}

		return m, nil
	}

	switch m.state {
	case dataStateMenu:
		var cmd tea.Cmd
		m.menu, cmd = m.menu.Update(msg)

		return m, cmd
	case dataStateExportForm:
		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}

		if m.form.State == huh.StateCompleted {
			return m.run(m.exportBundle(*m.in))
		}

		return m, cmd
	case dataStateFilePick:
		var cmd tea.Cmd
		m.filePicker, cmd = m.filePicker.Update(msg)

		if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
			if m.action == dataRestore {
				return m.run(m.restore(path))
			}

			return m.run(m.importFile(path))
		}

		return m, cmd
	}

	return m, nil
}

func (m DataModel) choose() (tea.Model, tea.Cmd) {
	item, ok := m.menu.SelectedItem().(actionItem)
	if !ok {
		return m, nil
	}

	m.action = item.action
	m.err = nil
	m.status = ""

	switch item.action {
	case dataBackup:
		return m.run(m.backup)
	case dataExport:
		dir, _ := os.Getwd()
		m.in = &exportInput{dir: dir}
		m.form = newExportForm(m.in)
		m.state = dataStateExportForm

		return m, m.form.Init()
	}

	m.state = dataStateFilePick

	return m, m.filePicker.Init()
}

func (m DataModel) run(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	m.state = dataStateRunning
	return m, tea.Batch(m.spinner.Tick, cmd)
}

func (m DataModel) backup() tea.Msg {
	ctx, cancel := StoreCtx()
	defer cancel()

	path, err := m.ledger.Backup(ctx)
	if err != nil {
		return dataDoneMsg{err: err}
	}

	return dataDoneMsg{status: "Backup written to " + path}
}

func (m DataModel) exportBundle(in exportInput) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fileTimeout)
		defer cancel()

		year := 0
		if s := strings.TrimSpace(in.year); s != "" {
			year, _ = strconv.Atoi(s)
		}

		path := filepath.Join(strings.TrimSpace(in.dir), m.export.BundleName())

		f, err := os.Create(path)
		if err != nil {
			return dataDoneMsg{err: fmt.Errorf("create bundle: %w", err)}
		}
		defer f.Close()

		if err := m.export.WriteBundle(ctx, f, year); err != nil {
			return dataDoneMsg{err: err}
		}

		return dataDoneMsg{status: "Export written to " + path}
	}
}

func (m DataModel) importFile(path string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fileTimeout)
		defer cancel()

		f, err := os.Open(path)
		if err != nil {
			return dataDoneMsg{err: fmt.Errorf("open file: %w", err)}
		}
		defer f.Close()

		format := importer.FormatCSV
		if strings.EqualFold(filepath.Ext(path), ".json") {
			format = importer.FormatBackup
		}

		snap, err := m.importer.Import(format, f)
		if err != nil {
			return dataDoneMsg{err: err}
		}

		keys, err := m.ledger.Import(ctx, snap)
		if err != nil {
			return dataDoneMsg{err: err}
		}

		return dataDoneMsg{status: fmt.Sprintf("Imported %d month(s) from %s", len(keys), filepath.Base(path))}
	}
}

func (m DataModel) restore(path string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fileTimeout)
		defer cancel()

		f, err := os.Open(path)
		if err != nil {
			return dataDoneMsg{err: fmt.Errorf("open file: %w", err)}
		}
		defer f.Close()

		r, err := encoding.NewUTF8Reader(f)
		if err != nil {
			return dataDoneMsg{err: err}
		}

		n, err := m.ledger.Restore(ctx, r)
		if err != nil {
			return dataDoneMsg{err: err}
		}

		return dataDoneMsg{status: fmt.Sprintf("Restored %d month(s) from %s", n, filepath.Base(path))}
	}
}

func (m DataModel) View() string {
	switch m.state {
	case dataStateExportForm:
		return padded.Render(headStyle.Render("Export bundle") + "\n\n" + m.form.View() + "\n\n" + faint.Render("esc: cancel"))
	case dataStateFilePick:
		title := "Pick a CSV or backup file to import"
		if m.action == dataRestore {
			title = "Pick a backup file to restore " + errStyle.Render("(replaces all months)")
		}

		return padded.Render(title + "\n\n" + m.filePicker.View() + "\n" + faint.Render("enter: select • esc: cancel"))
	case dataStateRunning:
		return padded.Render(m.spinner.View() + " Working...")
	case dataStateResult:
		s := okStyle.Render(m.status)
		if m.err != nil {
			s = errorText(m.err)
		}

		return padded.Render(s + "\n\n" + faint.Render("press any key to continue"))
	}

	return padded.Render(m.menu.View() + "\n" + faint.Render("enter: run • esc: back"))
}
