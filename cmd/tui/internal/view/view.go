package view

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const storeTimeout = 5 * time.Second

// CommonModel is embedded by all views.
type CommonModel struct{}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// StoreCtx returns a context with a standard timeout for ledger operations.
func StoreCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), storeTimeout)
}

var (
	padded    = lipgloss.NewStyle().Padding(1)
	errStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	okStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("46"))
	faint     = lipgloss.NewStyle().Faint(true)
	headStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
)

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func errorText(err error) string {
	return errStyle.Render(fmt.Sprintf("Error: %v", err))
}
