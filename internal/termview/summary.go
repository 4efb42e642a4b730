// Package termview renders a dashboard view model for the terminal.
package termview

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"leaddash/internal/detail"
	"leaddash/internal/view"
)

var (
	accent = lipgloss.Color("#4682B4")
	muted  = lipgloss.Color("#8A8F98")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	subStyle   = lipgloss.NewStyle().Foreground(muted).Italic(true)
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 2)
	labelStyle = lipgloss.NewStyle().Foreground(muted)
	valueStyle = lipgloss.NewStyle().Bold(true)
	barStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB"))
	headStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle  = lipgloss.NewStyle().Padding(0, 1)
)

const maxBar = 30

// Summary renders title, metrics, the score histogram and the lead table.
func Summary(m view.Model) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(m.Title))
	sb.WriteString("\n")
	if m.Subtitle != "" {
		sb.WriteString(subStyle.Render(m.Subtitle))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		metricBox("Total Leads", strconv.Itoa(m.Metrics.Count)),
		metricBox("Avg. Lead Score", m.AvgLabel),
		metricBox("High Potential Leads", m.HighLabel),
	))
	sb.WriteString("\n\n")

	if len(m.Histogram) > 0 {
		sb.WriteString(histogram(m))
		sb.WriteString("\n")
	}

	sb.WriteString(leadTable(m))

	if d := m.Selected; d != nil {
		sb.WriteString("\n")
		sb.WriteString(titleStyle.Render("Lead Details"))
		sb.WriteString("\n")
		sb.WriteString(d.Card)
		sb.WriteString("\n")
		sb.WriteString(labelStyle.Render("Personalized Message"))
		sb.WriteString("\n")
		sb.WriteString(d.Lead.PersonalizedMessage)
		sb.WriteString("\n")
	}
	return sb.String()
}

func metricBox(label, value string) string {
	return boxStyle.Render(labelStyle.Render(label) + "\n" + valueStyle.Render(value))
}

func histogram(m view.Model) string {
	peak := 0
	width := 0
	for _, b := range m.Histogram {
		peak = max(peak, b.Count)
		width = max(width, lipgloss.Width(b.Label()))
	}

	var sb strings.Builder
	sb.WriteString(labelStyle.Render("Distribution of Lead Scores"))
	sb.WriteString("\n")
	for _, b := range m.Histogram {
		n := 0
		if peak > 0 {
			n = b.Count * maxBar / peak
		}
		label := lipgloss.NewStyle().Width(width).Render(b.Label())
		sb.WriteString(label + " " + barStyle.Render(strings.Repeat("█", n)) + " " + strconv.Itoa(b.Count) + "\n")
	}
	return sb.String()
}

func leadTable(m view.Model) string {
	if len(m.Rows) == 0 {
		return labelStyle.Render("No leads match the current filters.") + "\n"
	}

	headers := []string{"Name", "Country", "Language", "Source", "Age", "Budget", "Score"}
	rows := make([][]string, 0, len(m.Rows))
	for _, l := range m.Rows {
		rows = append(rows, []string{
			l.Name,
			l.Country,
			l.Language,
			l.Source,
			strconv.Itoa(l.Age),
			detail.FormatBudget(l.Budget),
			detail.FormatScore(l.LeadScore),
		})
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}
	for i := range widths {
		widths[i] += 2
	}

	var sb strings.Builder
	for i, h := range headers {
		sb.WriteString(headStyle.Width(widths[i]).Render(h))
	}
	sb.WriteString("\n")
	for _, row := range rows {
		for i, cell := range row {
			sb.WriteString(cellStyle.Width(widths[i]).Render(cell))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
