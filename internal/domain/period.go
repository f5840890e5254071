package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Period identifies one calendar quarter.
type Period struct {
	Year    int
	Quarter int // 1-4
}

// Prev returns the immediately preceding quarter.
func (p Period) Prev() Period {
	if p.Quarter == 1 {
		return Period{Year: p.Year - 1, Quarter: 4}
	}
	return Period{Year: p.Year, Quarter: p.Quarter - 1}
}

// Next returns the immediately following quarter.
func (p Period) Next() Period {
	if p.Quarter == 4 {
		return Period{Year: p.Year + 1, Quarter: 1}
	}
	return Period{Year: p.Year, Quarter: p.Quarter + 1}
}

// Before reports whether p is chronologically earlier than other.
func (p Period) Before(other Period) bool {
	if p.Year != other.Year {
		return p.Year < other.Year
	}
	return p.Quarter < other.Quarter
}

// String formats the period as "2023Q1".
func (p Period) String() string {
	return fmt.Sprintf("%dQ%d", p.Year, p.Quarter)
}

// ParsePeriod parses a "2023Q1" style label.
func ParsePeriod(s string) (Period, error) {
	parts := strings.SplitN(strings.ToUpper(strings.TrimSpace(s)), "Q", 2)
	if len(parts) != 2 {
		return Period{}, fmt.Errorf("invalid period %q: expected YYYYQn", s)
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return Period{}, fmt.Errorf("invalid period %q: bad year: %w", s, err)
	}

	quarter, err := strconv.Atoi(parts[1])
	if err != nil {
		return Period{}, fmt.Errorf("invalid period %q: bad quarter: %w", s, err)
	}
	if quarter < 1 || quarter > 4 {
		return Period{}, fmt.Errorf("invalid period %q: quarter must be 1-4", s)
	}

	return Period{Year: year, Quarter: quarter}, nil
}

// ParseWindow parses an analysis window specification into an ordered list
// of periods. Accepts either a comma-separated list ("2022Q3,2022Q4,2023Q1")
// or an inclusive range ("2022Q3-2023Q1"). The result is strictly
// chronological with no gaps allowed in range form; list form is validated
// to be strictly increasing.
func ParseWindow(s string) ([]Period, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty window specification")
	}

	if strings.Contains(s, "-") {
		parts := strings.SplitN(s, "-", 2)
		start, err := ParsePeriod(parts[0])
		if err != nil {
			return nil, err
		}
		end, err := ParsePeriod(parts[1])
		if err != nil {
			return nil, err
		}
		if end.Before(start) {
			return nil, fmt.Errorf("window range %q: end precedes start", s)
		}

		var window []Period
		for p := start; ; p = p.Next() {
			window = append(window, p)
			if p == end {
				break
			}
		}
		return window, nil
	}

	var window []Period
	for _, label := range strings.Split(s, ",") {
		p, err := ParsePeriod(label)
		if err != nil {
			return nil, err
		}
		if len(window) > 0 && !window[len(window)-1].Before(p) {
			return nil, fmt.Errorf("window %q: periods must be strictly increasing", s)
		}
		window = append(window, p)
	}
	return window, nil
}
