package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/ledgerboard/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/ledgerboard/internal/app"
	"github.com/MrJamesThe3rd/ledgerboard/internal/config"
	"github.com/MrJamesThe3rd/ledgerboard/internal/logging"
)

type model struct {
	app  *app.App
	name string

	currentView View

	reportsView    view.ReportsModel
	entriesView    view.EntriesModel
	categoriesView view.CategoriesModel
	dataView       view.DataModel
}

type View int

const (
	ViewMenu       View = 0
	ViewReports    View = 1
	ViewEntries    View = 2
	ViewCategories View = 3
	ViewData       View = 4
)

func initialModel(a *app.App, name string) model {
	return model{
		app:            a,
		name:           name,
		currentView:    ViewMenu,
		reportsView:    view.NewReportsModel(a.Reports),
		entriesView:    view.NewEntriesModel(a.Ledger, a.Registry),
		categoriesView: view.NewCategoriesModel(a.Registry, a.Ledger),
		dataView:       view.NewDataModel(a.Ledger, a.Export, a.Import),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewReports
				m.reportsView = view.NewReportsModel(m.app.Reports)

				return m, m.reportsView.Init()
			case "2":
				m.currentView = ViewEntries
				m.entriesView = view.NewEntriesModel(m.app.Ledger, m.app.Registry)

				return m, m.entriesView.Init()
			case "3":
				m.currentView = ViewCategories
				m.categoriesView = view.NewCategoriesModel(m.app.Registry, m.app.Ledger)

				return m, m.categoriesView.Init()
			case "4":
				m.currentView = ViewData
				m.dataView = view.NewDataModel(m.app.Ledger, m.app.Export, m.app.Import)

				return m, m.dataView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewReports:
		var newModel tea.Model
		newModel, cmd = m.reportsView.Update(msg)
		m.reportsView = newModel.(view.ReportsModel)
	case ViewEntries:
		var newModel tea.Model
		newModel, cmd = m.entriesView.Update(msg)
		m.entriesView = newModel.(view.EntriesModel)
	case ViewCategories:
		var newModel tea.Model
		newModel, cmd = m.categoriesView.Update(msg)
		m.categoriesView = newModel.(view.CategoriesModel)
	case ViewData:
		var newModel tea.Model
		newModel, cmd = m.dataView.Update(msg)
		m.dataView = newModel.(view.DataModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			m.name + "\n\n" +
				"1. Reports\n" +
				"2. Monthly Entries\n" +
				"3. Categories\n" +
				"4. Backup & Export\n\n" +
				"q. Quit",
		)
	case ViewReports:
		return m.reportsView.View()
	case ViewEntries:
		return m.entriesView.View()
	case ViewCategories:
		return m.categoriesView.View()
	case ViewData:
		return m.dataView.View()
	}

	return "Unknown View"
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(os.Stderr, cfg.App.LogLevel, cfg.App.LogFormat)

	a, err := app.New(cfg)
	if err != nil {
		slog.Error("failed to open ledger", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	// The program owns the terminal; service logs would corrupt the screen.
	logging.Setup(io.Discard, cfg.App.LogLevel, cfg.App.LogFormat)

	p := tea.NewProgram(initialModel(a, cfg.App.Name), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to run TUI: %v\n", err)
	}
}
