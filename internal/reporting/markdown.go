package reporting

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// RenderMarkdown renders the window summary as a Markdown string.
func RenderMarkdown(r *Report) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# Employer Panel Summary\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))
	if len(r.Window) > 0 {
		sb.WriteString(fmt.Sprintf("Window: %s to %s | Minimum headcount: %d\n\n",
			r.Window[0], r.Window[len(r.Window)-1], r.MinEmployees))
	}

	// Totals
	sb.WriteString("## Panel\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Panel Rows | %d |\n", r.TotalRows))
	sb.WriteString(fmt.Sprintf("| Distinct Employers | %d |\n", r.TotalEmployers))
	sb.WriteString("\n")

	// Quarters
	sb.WriteString("## Quarters\n\n")
	if len(r.Quarters) > 0 {
		sb.WriteString("| Quarter | Employers | Workers | Mean EmpRate | Mean HireRate | Mean SepRate | Undefined |\n")
		sb.WriteString("|---------|-----------|---------|--------------|---------------|--------------|-----------|\n")
		for _, q := range r.Quarters {
			sb.WriteString(fmt.Sprintf("| %s | %d | %d | %s | %s | %s | %d |\n",
				q.Period, q.Employers, q.Workers,
				rateCell(q.MeanEmploymentRate),
				rateCell(q.MeanHireRate),
				rateCell(q.MeanSeparationRate),
				q.UndefinedRateRows))
		}
	} else {
		sb.WriteString("No quarters in window.\n")
	}
	sb.WriteString("\n")

	return sb.String()
}

// rateCell formats a mean rate, rendering NaN as n/a.
func rateCell(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.4f", v)
}
