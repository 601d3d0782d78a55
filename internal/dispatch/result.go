package dispatch

// BatchResult aggregates the per-handle outcomes of one batch run, in input
// order. Every processed handle lands in exactly one of Successful or Failed;
// Total is the size of the input, so an interrupted batch reports
// Complete() == false.
type BatchResult struct {
	Successful []string
	Failed     []string
	Outcomes   []Outcome
	Total      int
}

func (r BatchResult) SuccessCount() int { return len(r.Successful) }
func (r BatchResult) FailureCount() int { return len(r.Failed) }
func (r BatchResult) HasFailures() bool { return len(r.Failed) > 0 }

// Complete reports whether every input handle was processed.
func (r BatchResult) Complete() bool {
	return len(r.Successful)+len(r.Failed) == r.Total
}

func (r *BatchResult) record(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
	if o.OK() {
		r.Successful = append(r.Successful, o.Handle)
	} else {
		r.Failed = append(r.Failed, o.Handle)
	}
}
