package validate

// Result is the outcome of a single validation pass. Errors flip IsValid;
// warnings and suggestions never do.
type Result struct {
	IsValid     bool
	Errors      []string
	Warnings    []string
	Suggestions []string
	Statistics  map[string]any
}

func newResult() *Result {
	return &Result{
		IsValid:    true,
		Statistics: make(map[string]any),
	}
}

func (r *Result) addError(msg string) {
	r.IsValid = false
	r.Errors = append(r.Errors, msg)
}

func (r *Result) addWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

func (r *Result) addSuggestion(msg string) {
	r.Suggestions = append(r.Suggestions, msg)
}

// Combine merges validation passes into one Result. Lists concatenate in
// argument order, statistics maps merge with later passes overwriting
// earlier keys, and the merged result is valid only when every input is.
// No inputs yields a valid empty result.
func Combine(results ...*Result) *Result {
	combined := newResult()
	for _, r := range results {
		if r == nil {
			continue
		}
		if !r.IsValid {
			combined.IsValid = false
		}
		combined.Errors = append(combined.Errors, r.Errors...)
		combined.Warnings = append(combined.Warnings, r.Warnings...)
		combined.Suggestions = append(combined.Suggestions, r.Suggestions...)
		for k, v := range r.Statistics {
			combined.Statistics[k] = v
		}
	}
	return combined
}
