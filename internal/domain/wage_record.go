package domain

// WageRecord is one quarterly UI wage record: one worker's reported wages
// at one employer for one quarter. The underlying store is read-only input;
// the pipeline never mutates it.
type WageRecord struct {
	WorkerID     string  // state UI worker identifier
	EmployerID   string  // state UI employer account number
	IndustryCode string  // NAICS industry code as reported
	Year         int     // calendar year
	Quarter      int     // 1-4
	Wages        float64 // total quarterly wages, non-negative
}

// Period returns the record's quarter.
func (r *WageRecord) Period() Period {
	return Period{Year: r.Year, Quarter: r.Quarter}
}

// TaggedRecord is a WageRecord annotated with employment-continuity flags.
// The flags are derived purely from probing the adjacent quarters' record
// sets; no other information source is consulted.
type TaggedRecord struct {
	WageRecord

	// EmployedPriorQuarter is true iff the same (worker, employer) pair has
	// a record in the immediately preceding quarter of the window.
	EmployedPriorQuarter bool

	// EmployedNextQuarter is true iff the same (worker, employer) pair has
	// a record in the immediately following quarter of the window.
	EmployedNextQuarter bool

	// IsHire is true iff EmployedPriorQuarter is false. A missing prior
	// quarter (window boundary) counts as a hire, not missing data.
	IsHire bool

	// IsSeparation is true iff EmployedNextQuarter is false. A missing next
	// quarter (window boundary) counts as a separation.
	IsSeparation bool
}

// FullQuarter reports whether the worker was employed at the same employer
// in both adjacent quarters.
func (t *TaggedRecord) FullQuarter() bool {
	return t.EmployedPriorQuarter && t.EmployedNextQuarter
}
