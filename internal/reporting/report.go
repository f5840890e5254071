package reporting

import (
	"time"

	"wage-panel/internal/domain"
)

// Report is the window summary rendered to markdown.
type Report struct {
	GeneratedAt    time.Time
	Window         []domain.Period
	MinEmployees   int
	TotalRows      int
	TotalEmployers int

	Quarters []QuarterSummary
}

// QuarterSummary aggregates one quarter's panel contribution.
type QuarterSummary struct {
	Period    domain.Period
	Employers int
	Workers   int // sum of distinct-worker counts across employers

	// Means over rows with a defined rate; NaN when no row defines one.
	MeanEmploymentRate float64
	MeanHireRate       float64
	MeanSeparationRate float64

	// Rows whose rates are undefined (no prior-quarter match).
	UndefinedRateRows int
}
