package table

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/relabel/internal/subst"
)

// FindingKind classifies a lint finding.
type FindingKind string

const (
	// FindingEmpty marks a pair with an empty match; Apply rejects it.
	FindingEmpty FindingKind = "empty"

	// FindingDuplicate marks a pair whose match repeats an earlier one.
	// The later pair can never fire.
	FindingDuplicate FindingKind = "duplicate"

	// FindingShadowed marks a pair whose match contains an earlier, shorter
	// match. The earlier pass fragments the phrase first.
	FindingShadowed FindingKind = "shadowed"

	// FindingNotNFC marks a match that is not in Unicode NFC. It will not
	// match NFC-encoded documents even when they look identical.
	FindingNotNFC FindingKind = "not_nfc"
)

// Finding is one lint result. Index is the affected pair; Other is the
// earlier pair responsible, or -1.
type Finding struct {
	Kind  FindingKind `json:"kind"`
	Index int         `json:"index"`
	Other int         `json:"other"`
	Match string      `json:"match"`
}

func (f Finding) String() string {
	switch f.Kind {
	case FindingEmpty:
		return fmt.Sprintf("[%d] match is empty", f.Index)
	case FindingDuplicate:
		return fmt.Sprintf("[%d] %q duplicates [%d]", f.Index, f.Match, f.Other)
	case FindingShadowed:
		return fmt.Sprintf("[%d] %q is shadowed by shorter [%d]", f.Index, f.Match, f.Other)
	case FindingNotNFC:
		return fmt.Sprintf("[%d] %q is not NFC normalized", f.Index, f.Match)
	default:
		return fmt.Sprintf("[%d] %s", f.Index, f.Kind)
	}
}

// Lint inspects the table without changing it. Findings are ordered by
// Index, then by Other.
func Lint(t subst.Table) []Finding {
	var findings []Finding
	for j, pj := range t {
		if pj.Match == "" {
			findings = append(findings, Finding{Kind: FindingEmpty, Index: j, Other: -1})
			continue
		}
		for i := 0; i < j; i++ {
			mi := t[i].Match
			switch {
			case mi == "":
			case mi == pj.Match:
				findings = append(findings, Finding{Kind: FindingDuplicate, Index: j, Other: i, Match: pj.Match})
			case strings.Contains(pj.Match, mi):
				findings = append(findings, Finding{Kind: FindingShadowed, Index: j, Other: i, Match: pj.Match})
			}
		}
		if !norm.NFC.IsNormalString(pj.Match) {
			findings = append(findings, Finding{Kind: FindingNotNFC, Index: j, Other: -1, Match: pj.Match})
		}
	}
	return findings
}
