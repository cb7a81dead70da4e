package subst

import "strings"

// Pair is one literal substitution.
type Pair struct {
	Match       string `json:"match" yaml:"match"`
	Replacement string `json:"replacement" yaml:"replacement"`
}

// Table is an ordered sequence of pairs. Order is significant.
type Table []Pair

// PassResult records what one pass did.
type PassResult struct {
	Index int    `json:"index"`
	Match string `json:"match"`
	Count int    `json:"count"` // occurrences replaced by this pass
}

// Report summarises a full application of a table.
type Report struct {
	Passes []PassResult `json:"passes"`
}

// Total returns the number of replacements across all passes.
func (r Report) Total() int {
	n := 0
	for _, p := range r.Passes {
		n += p.Count
	}
	return n
}

// Changed returns only the passes that replaced something.
func (r Report) Changed() []PassResult {
	var out []PassResult
	for _, p := range r.Passes {
		if p.Count > 0 {
			out = append(out, p)
		}
	}
	return out
}

// Validate returns an *EntryError for the first pair with an empty Match.
func (t Table) Validate() error {
	for i, p := range t {
		if p.Match == "" {
			return &EntryError{Index: i, Replacement: p.Replacement, Reason: "match is empty"}
		}
	}
	return nil
}

// Apply folds the table over doc and returns the final buffer.
func Apply(doc string, table Table) (string, error) {
	out, _, err := ApplyWithReport(doc, table)
	return out, err
}

// ApplyWithReport is Apply plus per-pass replacement counts.
//
// The table is validated up front; on error doc is not touched and the
// returned string is empty.
func ApplyWithReport(doc string, table Table) (string, Report, error) {
	if err := table.Validate(); err != nil {
		return "", Report{}, err
	}

	report := Report{Passes: make([]PassResult, len(table))}
	for i, p := range table {
		// strings.Count and strings.ReplaceAll agree on non-overlapping
		// left-to-right occurrences.
		n := strings.Count(doc, p.Match)
		if n > 0 {
			doc = strings.ReplaceAll(doc, p.Match, p.Replacement)
		}
		report.Passes[i] = PassResult{Index: i, Match: p.Match, Count: n}
	}
	return doc, report, nil
}
