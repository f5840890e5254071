package domain

// PanelRow is one row of the final employer-quarter panel: an
// EmployerAggregate extended with symmetric growth rates against the same
// employer's prior quarter. Rows are immutable once assembled.
//
// Rate fields are nil when undefined (no prior-quarter data for the
// employer, which includes the window's first quarter). A nil rate is
// distinct from a computed 0.
type PanelRow struct {
	EmployerAggregate

	EmploymentRate *float64 // in [-2, 2] when set
	HireRate       *float64 // in [-2, 2] when set
	SeparationRate *float64 // in [-2, 2] when set
}
