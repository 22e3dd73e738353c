package benchtable

// Result is one row of a comparison table. It is never mutated after
// parsing.
type Result struct {
	Name     string
	Profile  string
	Scenario string
	Backend  string
	Target   string

	// percent change between the two commits, e.g. 2.57 for "2.57%"
	Change                float64
	SignificanceThreshold float64
	SignificanceFactor    float64

	BeforeRaw float64
	AfterRaw  float64
}

// RawChange is the absolute difference between the raw measurements of
// the two commits.
func (r Result) RawChange() float64 {
	return r.AfterRaw - r.BeforeRaw
}

// Table is one benchmark table found on a comparison page, named after
// the table's DOM id.
type Table struct {
	Name    string
	Results []Result
}
