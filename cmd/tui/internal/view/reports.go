package view

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/ledgerboard/internal/aggregate"
	"github.com/MrJamesThe3rd/ledgerboard/internal/period"
	"github.com/MrJamesThe3rd/ledgerboard/internal/report"
)

type reportState int

const (
	reportStateForm reportState = iota
	reportStateLoading
	reportStateResult
)

var reportBox = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("63")).
	Padding(0, 1)

type reportInput struct {
	kind  report.Type
	year  string
	month string
	half  period.Half
}

type reportLoadedMsg struct {
	text    string
	summary report.Summary
	err     error
}

type ReportsModel struct {
	CommonModel
	svc *report.Service

	state   reportState
	in      *reportInput
	form    *huh.Form
	spinner spinner.Model
	table   table.Model
	text    string
	err     error
}

func NewReportsModel(svc *report.Service) ReportsModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := ReportsModel{
		svc:     svc,
		state:   reportStateForm,
		in:      &reportInput{kind: report.TypeMonthly, half: period.H1},
		spinner: s,
	}
	m.form = newReportForm(m.in)

	return m
}

func newReportForm(in *reportInput) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[report.Type]().
				Key("type").
				Title("Report").
				Options(
					huh.NewOption("Monthly", report.TypeMonthly),
					huh.NewOption("Semi-annual", report.TypeSemiAnnual),
					huh.NewOption("Annual", report.TypeAnnual),
				).
				Value(&in.kind),
			huh.NewInput().
				Key("year").
				Title("Year").
				Placeholder("2025").
				Value(&in.year).
				Validate(validateYear),
		),
		huh.NewGroup(
			huh.NewInput().
				Key("month").
				Title("Month").
				Placeholder("1-12").
				Value(&in.month).
				Validate(validateMonth),
		).WithHideFunc(func() bool { return in.kind != report.TypeMonthly }),
		huh.NewGroup(
			huh.NewSelect[period.Half]().
				Key("half").
				Title("Half").
				Options(
					huh.NewOption("상반기 (1-6월)", period.H1),
					huh.NewOption("하반기 (7-12월)", period.H2),
				).
				Value(&in.half),
		).WithHideFunc(func() bool { return in.kind != report.TypeSemiAnnual }),
	).WithWidth(60).WithShowHelp(false)
}

func (m ReportsModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m *ReportsModel) restart() tea.Cmd {
	m.state = reportStateForm
	m.form = newReportForm(m.in)

	return m.form.Init()
}

func (m ReportsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "esc" {
			if m.state == reportStateResult {
				cmd := m.restart()
				return m, cmd
			}

			return m, Back
		}
	case reportLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			cmd := m.restart()

			return m, cmd
		}

		m.err = nil
		m.state = reportStateResult
		m.text = msg.text
		m.table = newTable([]table.Column{
			{Title: "Side", Width: 8},
			{Title: "Category", Width: 18},
			{Title: "Amount", Width: 16},
			{Title: "Share", Width: 7},
		}, 14)
		m.table.SetRows(summaryRows(msg.summary))

		return m, nil
	case spinner.TickMsg:
		if m.state == reportStateLoading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)

			return m, cmd
		}
	}

	switch m.state {
	case reportStateForm:
		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}

		if m.form.State == huh.StateCompleted {
			m.state = reportStateLoading
			return m, tea.Batch(m.spinner.Tick, m.generate())
		}

		return m, cmd
	case reportStateResult:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m ReportsModel) generate() tea.Cmd {
	in := *m.in
	svc := m.svc

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		year, _ := strconv.Atoi(strings.TrimSpace(in.year))

		switch in.kind {
		case report.TypeSemiAnnual:
			rep, err := svc.SemiAnnual(ctx, year, in.half)
			if err != nil {
				return reportLoadedMsg{err: err}
			}

			return reportLoadedMsg{text: report.Text(rep), summary: rep.Summary}
		case report.TypeAnnual:
			rep, err := svc.Annual(ctx, year)
			if err != nil {
				return reportLoadedMsg{err: err}
			}

			return reportLoadedMsg{text: report.Text(rep), summary: rep.Summary.Summary}
		default:
			month, _ := strconv.Atoi(strings.TrimSpace(in.month))

			rep, err := svc.Monthly(ctx, year, month)
			if err != nil {
				return reportLoadedMsg{err: err}
			}

			return reportLoadedMsg{text: report.Text(rep), summary: rep.Summary}
		}
	}
}

func summaryRows(s report.Summary) []table.Row {
	rows := make([]table.Row, 0, len(s.Revenue)+len(s.Expense))
	rows = appendLines(rows, "매출", s.Revenue, s.TotalRevenue)
	rows = appendLines(rows, "지출", s.Expense, s.TotalExpense)

	return rows
}

func appendLines(rows []table.Row, side string, lines aggregate.Lines, total int64) []table.Row {
	for _, l := range lines {
		if l.Amount == 0 {
			continue
		}

		rows = append(rows, table.Row{
			side,
			l.Name,
			report.FormatWon(l.Amount),
			aggregate.Percent(l.Amount, total).StringFixed(1) + "%",
		})
	}

	return rows
}

func (m ReportsModel) View() string {
	switch m.state {
	case reportStateLoading:
		return padded.Render(m.spinner.View() + " Generating report...")
	case reportStateResult:
		body := lipgloss.JoinHorizontal(lipgloss.Top,
			reportBox.Render(strings.TrimRight(m.text, "\n")),
			"  ",
			m.table.View(),
		)

		return padded.Render(body + "\n\n" + faint.Render("↑/↓: scroll lines • esc: new report"))
	}

	s := headStyle.Render("Reports") + "\n\n" + m.form.View()
	if m.err != nil {
		s += "\n" + errorText(m.err)
	}

	return padded.Render(s + "\n\n" + faint.Render("esc: back"))
}
