package report

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Korean)

// FormatWon renders an amount with thousands separators, e.g. "1,234,000원".
func FormatWon(amount int64) string {
	return printer.Sprintf("%d원", amount)
}

// FormatPercent renders a percentage with one decimal.
func FormatPercent(p float64) string {
	return printer.Sprintf("%.1f%%", p)
}

type section struct {
	title string
	lines []string
}

// Document is implemented by every report type and lets Text render any of
// them.
type Document interface {
	parts() (Header, Summary, []section)
}

func (m Monthly) parts() (Header, Summary, []section) {
	return m.Header, m.Summary, []section{{title: "분석", lines: m.Analysis}}
}

func (s SemiAnnual) parts() (Header, Summary, []section) {
	return s.Header, s.Summary, []section{{title: "추세 분석", lines: s.TrendAnalysis}}
}

func (a Annual) parts() (Header, Summary, []section) {
	return a.Header, a.Summary.Summary, []section{
		{title: "성과 분석", lines: a.PerformanceAnalysis},
		{title: "개선 제안", lines: a.Recommendations},
	}
}

func (r Range) parts() (Header, Summary, []section) {
	return r.Header, r.Summary, nil
}

// Text renders a report as the plain-text document attached to exports.
// Empty sections are left out.
func Text(doc Document) string {
	h, s, sections := doc.parts()

	var b strings.Builder

	fmt.Fprintf(&b, "=== %s %s 보고서 ===\n", h.Company, h.Period)
	fmt.Fprintf(&b, "작성부서: %s\n", h.Department)
	fmt.Fprintf(&b, "작성일시: %s\n\n", h.GeneratedAt.Format("2006년 01월 02일 15:04"))

	b.WriteString("■ 요약\n")
	b.WriteString("• 총 매출: " + FormatWon(s.TotalRevenue) + "\n")
	b.WriteString("• 총 매입: " + FormatWon(s.TotalExpense) + "\n")
	b.WriteString("• 순이익: " + FormatWon(s.NetProfit) + "\n")
	b.WriteString("• 수익률: " + FormatPercent(s.ProfitMargin) + "\n")

	for _, sec := range sections {
		if len(sec.lines) == 0 {
			continue
		}

		b.WriteString("\n■ " + sec.title + "\n")

		for _, line := range sec.lines {
			b.WriteString("• " + line + "\n")
		}
	}

	return b.String()
}
