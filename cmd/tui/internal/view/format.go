package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/ledgerboard/internal/ledger"
)

// parseWon reads an amount typed into a form; blanks count as zero.
func parseWon(s string) (int64, error) {
	clean := strings.NewReplacer(",", "", "원", "", " ", "").Replace(s)
	if clean == "" {
		return 0, nil
	}

	n, err := strconv.ParseInt(clean, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("not a whole number: %q", s)
	}

	if n < 0 {
		return 0, fmt.Errorf("amount cannot be negative")
	}

	return n, nil
}

func validateWon(s string) error {
	_, err := parseWon(s)
	return err
}

func validateYear(s string) error {
	y, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || y < 1 || y > 9999 {
		return fmt.Errorf("year must be between 1 and 9999")
	}

	return nil
}

func validateMonth(s string) error {
	m, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || m < 1 || m > 12 {
		return fmt.Errorf("month must be between 1 and 12")
	}

	return nil
}

// parseKey builds a month key from inputs already checked by the validators.
func parseKey(year, month string) (ledger.MonthKey, error) {
	y, _ := strconv.Atoi(strings.TrimSpace(year))
	m, _ := strconv.Atoi(strings.TrimSpace(month))

	return ledger.NewMonthKey(y, m)
}

func newTable(columns []table.Column, height int) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}
