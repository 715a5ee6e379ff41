package view

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/ledgerboard/internal/category"
	"github.com/MrJamesThe3rd/ledgerboard/internal/ledger"
	"github.com/MrJamesThe3rd/ledgerboard/internal/report"
)

type entriesState int

const (
	entriesStateList entriesState = iota
	entriesStateForm
	entriesStateConfirm
)

// amountField is one amount input of the entry form. An empty group on the
// revenue side marks the catch-all.
type amountField struct {
	kind  category.Kind
	group category.Group
	name  string
	value string
}

type entryInput struct {
	year    string
	month   string
	fields  []*amountField
	confirm bool
}

type entriesLoadedMsg struct {
	snap ledger.Snapshot
	err  error
}

type entrySavedMsg struct {
	key ledger.MonthKey
	err error
}

type entryDeletedMsg struct {
	key ledger.MonthKey
	err error
}

type EntriesModel struct {
	CommonModel
	svc      *ledger.Service
	registry *category.Registry

	state   entriesState
	table   table.Model
	keys    []ledger.MonthKey
	snap    ledger.Snapshot
	in      *entryInput
	editing ledger.MonthKey
	form    *huh.Form
	status  string
	err     error
}

func NewEntriesModel(svc *ledger.Service, registry *category.Registry) EntriesModel {
	return EntriesModel{
		svc:      svc,
		registry: registry,
		state:    entriesStateList,
		table: newTable([]table.Column{
			{Title: "Month", Width: 12},
			{Title: "Revenue", Width: 16},
			{Title: "Expense", Width: 16},
			{Title: "Net", Width: 16},
			{Title: "Recorded", Width: 17},
		}, 15),
	}
}

func (m EntriesModel) Init() tea.Cmd {
	return m.load
}

func (m EntriesModel) load() tea.Msg {
	ctx, cancel := StoreCtx()
	defer cancel()

	snap, err := m.svc.GetAll(ctx)

	return entriesLoadedMsg{snap: snap, err: err}
}

// entryFields lays out one input per registered name, in registry order.
// Existing amounts prefill the inputs; a name shared by both revenue groups
// is prefilled once, on the tax-invoiced side.
func entryFields(snap category.Snapshot, entry ledger.MonthEntry) []*amountField {
	var fields []*amountField

	prefilled := make(map[string]bool)

	prefill := func(amounts map[string]int64, name string) string {
		v, ok := amounts[name]
		if !ok || prefilled[name] {
			return ""
		}

		prefilled[name] = true

		return strconv.FormatInt(v, 10)
	}

	for _, g := range category.Groups() {
		for _, name := range snap.GroupNames(g) {
			fields = append(fields, &amountField{
				kind:  category.KindRevenue,
				group: g,
				name:  name,
				value: prefill(entry.Revenue, name),
			})
		}
	}

	fields = append(fields, &amountField{
		kind:  category.KindRevenue,
		name:  category.Other,
		value: prefill(entry.Revenue, category.Other),
	})

	clear(prefilled)

	for _, name := range snap.ExpenseNames() {
		fields = append(fields, &amountField{
			kind:  category.KindExpense,
			name:  name,
			value: prefill(entry.Expense, name),
		})
	}

	return fields
}

func groupTitle(kind category.Kind, g category.Group) string {
	switch {
	case kind == category.KindExpense:
		return "지출 (Expense)"
	case g == category.GroupTaxInvoiced:
		return "세금계산서 매출 (Tax-invoiced revenue)"
	case g == category.GroupZeroRated:
		return "영세율 매출 (Zero-rated revenue)"
	}

	return "기타 매출 (Other revenue)"
}

func newEntryForm(in *entryInput, isNew bool) *huh.Form {
	var groups []*huh.Group

	if isNew {
		groups = append(groups, huh.NewGroup(
			huh.NewInput().Key("year").Title("Year").Value(&in.year).Validate(validateYear),
			huh.NewInput().Key("month").Title("Month").Value(&in.month).Validate(validateMonth),
		))
	}

	var (
		fields []huh.Field
		title  string
	)

	flush := func() {
		if len(fields) > 0 {
			groups = append(groups, huh.NewGroup(fields...).Title(title))
		}

		fields = nil
	}

	for _, f := range in.fields {
		t := groupTitle(f.kind, f.group)
		if t != title {
			flush()
			title = t
		}

		fields = append(fields, huh.NewInput().
			Title(f.name).
			Placeholder("0").
			Value(&f.value).
			Validate(validateWon))
	}

	flush()

	groups = append(groups, huh.NewGroup(
		huh.NewConfirm().
			Key("confirm").
			Title("Save this month?").
			Affirmative("Save").
			Negative("Cancel").
			Value(&in.confirm),
	))

	return huh.NewForm(groups...).WithWidth(50).WithShowHelp(false)
}

// collect turns the form values into a month entry the way the API does for
// grouped input.
func (in *entryInput) collect(snap category.Snapshot) (ledger.MonthEntry, error) {
	revenue := ledger.RevenueInput{
		TaxInvoiced: map[string]int64{},
		ZeroRated:   map[string]int64{},
	}
	expense := map[string]int64{}

	for _, f := range in.fields {
		v, err := parseWon(f.value)
		if err != nil {
			return ledger.MonthEntry{}, fmt.Errorf("%s: %w", f.name, err)
		}

		switch {
		case f.kind == category.KindExpense:
			expense[f.name] = v
		case f.group == category.GroupTaxInvoiced:
			revenue.TaxInvoiced[f.name] = v
		case f.group == category.GroupZeroRated:
			revenue.ZeroRated[f.name] = v
		default:
			revenue.Other = v
		}
	}

	return ledger.MonthEntry{
		Revenue: ledger.CollectRevenue(snap, revenue),
		Expense: ledger.CollectExpense(snap, expense),
	}, nil
}

func (m EntriesModel) save(key ledger.MonthKey, entry ledger.MonthEntry) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		_, err := m.svc.Save(ctx, key, entry)

		return entrySavedMsg{key: key, err: err}
	}
}

func (m EntriesModel) remove(key ledger.MonthKey) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		return entryDeletedMsg{key: key, err: m.svc.Delete(ctx, key)}
	}
}

func (m EntriesModel) selected() (ledger.MonthKey, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.keys) {
		return "", false
	}

	return m.keys[i], true
}

func (m *EntriesModel) openForm(key ledger.MonthKey) tea.Cmd {
	snap := m.registry.Snapshot()

	m.editing = key
	m.in = &entryInput{fields: entryFields(snap, m.snap[key])}
	m.form = newEntryForm(m.in, key == "")
	m.state = entriesStateForm
	m.status = ""
	m.err = nil

	return m.form.Init()
}

func (m EntriesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case entriesLoadedMsg:
		m.err = msg.err
		m.snap = msg.snap
		m.keys = ledger.SortedKeys(msg.snap)

		rows := make([]table.Row, 0, len(m.keys))
		for _, k := range m.keys {
			e := msg.snap[k]
			recorded := "-"

			if !e.RecordedAt.IsZero() {
				recorded = e.RecordedAt.Local().Format("2006-01-02 15:04")
			}

			rows = append(rows, table.Row{
				k.String(),
				report.FormatWon(e.TotalRevenue()),
				report.FormatWon(e.TotalExpense()),
				report.FormatWon(e.TotalRevenue() - e.TotalExpense()),
				recorded,
			})
		}

		m.table.SetRows(rows)

		return m, nil
	case entrySavedMsg:
		m.state = entriesStateList
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.status = fmt.Sprintf("Saved %s", msg.key)

		return m, m.load
	case entryDeletedMsg:
		m.state = entriesStateList
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.status = fmt.Sprintf("Deleted %s", msg.key)

		return m, m.load
	case tea.KeyMsg:
		switch m.state {
		case entriesStateList:
			return m.updateList(msg)
		case entriesStateConfirm:
			switch msg.String() {
			case "y", "Y":
				return m, m.remove(m.editing)
			default:
				m.state = entriesStateList
				return m, nil
			}
		case entriesStateForm:
			if msg.String() == "esc" {
				m.state = entriesStateList
				return m, nil
			}
		}
	}

	if m.state == entriesStateForm {
		return m.updateForm(msg)
	}

	return m, nil
}

func (m EntriesModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		return m, Back
	case "r":
		m.status = ""
		return m, m.load
	case "n":
		cmd := m.openForm("")
		return m, cmd
	case "e", "enter":
		if key, ok := m.selected(); ok {
			cmd := m.openForm(key)
			return m, cmd
		}

		return m, nil
	case "d":
		if key, ok := m.selected(); ok {
			m.editing = key
			m.state = entriesStateConfirm
		}

		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m EntriesModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateAborted:
		m.state = entriesStateList
		return m, nil
	case huh.StateCompleted:
		if !m.in.confirm {
			m.state = entriesStateList
			return m, nil
		}

		key := m.editing
		if key == "" {
			var err error

			key, err = parseKey(m.in.year, m.in.month)
			if err != nil {
				m.err = err
				m.state = entriesStateList

				return m, nil
			}
		}

		m.state = entriesStateList

		entry, err := m.in.collect(m.registry.Snapshot())
		if err != nil {
			m.err = err
			return m, nil
		}

		return m, m.save(key, entry)
	}

	return m, cmd
}

func (m EntriesModel) View() string {
	switch m.state {
	case entriesStateForm:
		title := "New month"
		if m.editing != "" {
			title = "Edit " + m.editing.String()
		}

		return padded.Render(headStyle.Render(title) + "\n\n" + m.form.View() + "\n\n" + faint.Render("esc: cancel"))
	case entriesStateConfirm:
		return padded.Render(fmt.Sprintf("Delete %s? %s", activeStyle(m.editing.String()), faint.Render("(y/N)")))
	}

	s := headStyle.Render("Entries") + "\n\n"

	if len(m.keys) == 0 && m.err == nil {
		s += "No months recorded yet.\n"
	} else {
		s += m.table.View() + "\n"
	}

	if m.status != "" {
		s += "\n" + okStyle.Render(m.status) + "\n"
	}

	if m.err != nil {
		s += "\n" + errorText(m.err) + "\n"
	}

	help := "↑/↓: navigate • n: new • e/enter: edit • d: delete • r: refresh • esc: back"

	return lipgloss.NewStyle().Padding(1).Render(s + "\n" + faint.Render(help))
}
