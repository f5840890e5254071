package domain

// EmployerAggregate is one employer's summary for one quarter, computed
// from that quarter's tagged wage records. Keyed by
// (employer id, industry code, year, quarter).
type EmployerAggregate struct {
	EmployerID   string
	IndustryCode string
	Year         int
	Quarter      int

	// All workers present in the quarter.
	WorkerCount     int     // distinct worker ids
	TotalWages      float64 // sum of wages across records
	AvgWages        float64 // TotalWages / WorkerCount
	WagesP25        float64 // 25th percentile wage, nearest-rank (observed value)
	WagesP75        float64 // 75th percentile wage, nearest-rank (observed value)
	HireCount       int     // records with IsHire
	SeparationCount int     // records with IsSeparation

	// Full-quarter subset: workers employed in both adjacent quarters.
	// Earnings fields are nil when the subset is empty, which is distinct
	// from a subset with zero earnings.
	FullQuarterCount      int
	FullQuarterTotalWages *float64
	FullQuarterAvgWages   *float64
}

// Period returns the aggregate's quarter.
func (a *EmployerAggregate) Period() Period {
	return Period{Year: a.Year, Quarter: a.Quarter}
}

// PriorSummary is the slice of a prior-quarter aggregate consumed by the
// growth-rate join: counts only, matched by employer id alone.
type PriorSummary struct {
	WorkerCount     int
	HireCount       int
	SeparationCount int
}

// PriorSummary extracts the join inputs from an aggregate.
func (a *EmployerAggregate) PriorSummary() PriorSummary {
	return PriorSummary{
		WorkerCount:     a.WorkerCount,
		HireCount:       a.HireCount,
		SeparationCount: a.SeparationCount,
	}
}
