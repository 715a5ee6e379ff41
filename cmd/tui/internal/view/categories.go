package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/ledgerboard/internal/category"
	"github.com/MrJamesThe3rd/ledgerboard/internal/ledger"
)

type categoryAction string

const (
	actionAdd    categoryAction = "add"
	actionRename categoryAction = "rename"
	actionRemove categoryAction = "remove"
	actionRekey  categoryAction = "rekey"
)

// Targets of the category form. The revenue groups reuse their wire names.
const (
	targetTaxInvoiced = string(category.GroupTaxInvoiced)
	targetZeroRated   = string(category.GroupZeroRated)
	targetExpense     = string(category.KindExpense)
)

var listStyle = lipgloss.NewStyle().
	Border(lipgloss.NormalBorder()).
	BorderForeground(lipgloss.Color("240")).
	Padding(0, 1).
	Width(26)

type categoryInput struct {
	action  categoryAction
	target  string
	name    string
	newName string
}

type categoryDoneMsg struct {
	status string
	err    error
}

type CategoriesModel struct {
	CommonModel
	registry *category.Registry
	ledger   *ledger.Service

	in      *categoryInput
	form    *huh.Form
	applied bool
	status  string
	err    error
}

func NewCategoriesModel(registry *category.Registry, ledgerSvc *ledger.Service) CategoriesModel {
	m := CategoriesModel{registry: registry, ledger: ledgerSvc}
	m.reset()

	return m
}

func (m *CategoriesModel) reset() {
	m.in = &categoryInput{action: actionAdd, target: targetTaxInvoiced}
	m.form = newCategoryForm(m.in)
	m.applied = false
}

func newCategoryForm(in *categoryInput) *huh.Form {
	notBlank := func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("name is required")
		}

		return nil
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[categoryAction]().
				Key("action").
				Title("Action").
				Options(
					huh.NewOption("Add", actionAdd),
					huh.NewOption("Rename", actionRename),
					huh.NewOption("Remove", actionRemove),
					huh.NewOption("Move history to a new name", actionRekey),
				).
				Value(&in.action),
			huh.NewSelect[string]().
				Key("target").
				Title("List").
				Options(
					huh.NewOption("세금계산서 매출", targetTaxInvoiced),
					huh.NewOption("영세율 매출", targetZeroRated),
					huh.NewOption("지출", targetExpense),
				).
				Value(&in.target),
		),
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Name").
				Value(&in.name).
				Validate(notBlank),
		),
		huh.NewGroup(
			huh.NewInput().
				Key("new_name").
				Title("New name").
				Value(&in.newName).
				Validate(notBlank),
		).WithHideFunc(func() bool {
			return in.action != actionRename && in.action != actionRekey
		}),
	).WithWidth(50).WithShowHelp(false)
}

func (m CategoriesModel) Init() tea.Cmd {
	return m.form.Init()
}

// apply runs the chosen action against the registry, or against stored
// history for a rekey.
func (m CategoriesModel) apply(in categoryInput) tea.Cmd {
	return func() tea.Msg {
		name := strings.TrimSpace(in.name)
		newName := strings.TrimSpace(in.newName)

		if in.action == actionRekey {
			kind := category.KindRevenue
			if in.target == targetExpense {
				kind = category.KindExpense
			}

			ctx, cancel := StoreCtx()
			defer cancel()

			changed, err := m.ledger.RekeyCategory(ctx, kind, name, newName)
			if err != nil {
				return categoryDoneMsg{err: err}
			}

			return categoryDoneMsg{status: fmt.Sprintf("Moved %s to %s in %d month(s)", name, newName, len(changed))}
		}

		var err error

		if in.target == targetExpense {
			switch in.action {
			case actionAdd:
				err = m.registry.AddExpenseItem(name)
			case actionRename:
				err = m.registry.RenameExpenseItem(name, newName)
			case actionRemove:
				err = m.registry.RemoveExpenseItem(name)
			}
		} else {
			g := category.Group(in.target)

			switch in.action {
			case actionAdd:
				err = m.registry.AddRevenueSource(g, name)
			case actionRename:
				err = m.registry.RenameRevenueSource(g, name, newName)
			case actionRemove:
				err = m.registry.RemoveRevenueSource(g, name)
			}
		}

		if err != nil {
			return categoryDoneMsg{err: err}
		}

		return categoryDoneMsg{status: fmt.Sprintf("%s: %s", in.action, name)}
	}
}

func (m CategoriesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "esc" {
			return m, Back
		}
	case categoryDoneMsg:
		m.status = msg.status
		m.err = msg.err
		m.reset()

		return m, m.form.Init()
	}

	if m.applied {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.applied = true
		return m, m.apply(*m.in)
	}

	return m, cmd
}

func renderList(title string, names []string) string {
	var b strings.Builder

	b.WriteString(headStyle.Render(title) + "\n")

	for _, n := range names {
		b.WriteString("• " + n + "\n")
	}

	if len(names) == 0 {
		b.WriteString(faint.Render("(empty)") + "\n")
	}

	return listStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m CategoriesModel) View() string {
	snap := m.registry.Snapshot()

	lists := lipgloss.JoinHorizontal(lipgloss.Top,
		renderList("세금계산서 매출", snap.TaxInvoiced),
		renderList("영세율 매출", snap.ZeroRated),
		renderList("지출", snap.Expense),
	)

	s := lists + "\n\n" + m.form.View()

	if m.status != "" {
		s += "\n" + okStyle.Render(m.status)
	}

	if m.err != nil {
		s += "\n" + errorText(m.err)
	}

	note := "Renaming changes the list only; stored months keep the old name until moved."

	return padded.Render(s + "\n\n" + faint.Render(note+"\nesc: back"))
}
