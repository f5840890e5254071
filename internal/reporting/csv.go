package reporting

import (
	"fmt"
	"strings"

	"wage-panel/internal/domain"
)

// RenderCSV renders panel rows as a CSV string. Undefined values (nil
// full-quarter earnings, nil rates) render as empty fields so they stay
// distinguishable from zero.
func RenderCSV(rows []*domain.PanelRow) string {
	var sb strings.Builder

	// Header
	sb.WriteString("employer_id,industry_code,year,quarter,")
	sb.WriteString("worker_count,total_wages,avg_wages,wages_p25,wages_p75,")
	sb.WriteString("hire_count,separation_count,")
	sb.WriteString("fq_worker_count,fq_total_wages,fq_avg_wages,")
	sb.WriteString("employment_rate,hire_rate,separation_rate\n")

	// Rows
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("%s,%s,%d,%d,%d,%.2f,%.2f,%.2f,%.2f,%d,%d,%d,%s,%s,%s,%s,%s\n",
			r.EmployerID,
			r.IndustryCode,
			r.Year,
			r.Quarter,
			r.WorkerCount,
			r.TotalWages,
			r.AvgWages,
			r.WagesP25,
			r.WagesP75,
			r.HireCount,
			r.SeparationCount,
			r.FullQuarterCount,
			optField(r.FullQuarterTotalWages, "%.2f"),
			optField(r.FullQuarterAvgWages, "%.2f"),
			optField(r.EmploymentRate, "%.6f"),
			optField(r.HireRate, "%.6f"),
			optField(r.SeparationRate, "%.6f"),
		))
	}

	return sb.String()
}

// optField formats a nullable value, rendering nil as empty.
func optField(v *float64, format string) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf(format, *v)
}
