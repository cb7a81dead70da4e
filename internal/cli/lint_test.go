package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/relabel/internal/table"
	"github.com/roach88/relabel/internal/testutil"
)

func TestLint_BuiltinReportsShadowedEntry(t *testing.T) {
	out, _, err := execute("lint")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	assert.Contains(t, out.String(), "✗ 1 finding(s) in built-in table (34 pairs)")
	assert.Contains(t, out.String(), `shadowed: [17] "System Built" is shadowed by shorter [8]`)
}

func TestLint_CleanTable(t *testing.T) {
	tablePath := testutil.WriteFile(t, "clean.yaml", "pairs:\n  - match: Bitcoin Analysis Done\n    replacement: X\n  - match: Bitcoin\n    replacement: Y\n")

	out, _, err := execute("lint", "--table", tablePath)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "✓ No findings")
	assert.Contains(t, out.String(), "(2 pairs)")
}

func TestLint_DuplicateAndNotNFC(t *testing.T) {
	tablePath := testutil.WriteFile(t, "dup.cue", `pairs: [
	{match: "Done", replacement: "A"},
	{match: "Done", replacement: "B"},
	{match: "cafe\u0301", replacement: "C"},
]`)

	out, _, err := execute("lint", "-t", tablePath)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out.String(), `duplicate: [1] "Done" duplicates [0]`)
	assert.Contains(t, out.String(), "not_nfc: [2]")
}

func TestLint_JSON(t *testing.T) {
	out, _, err := execute("--format", "json", "lint")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var result LintResult
	resp := decodeResponse(t, out, &result)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeLintFindings, resp.Error.Code)
	details, ok := resp.Error.Details.(map[string]interface{})
	require.True(t, ok, "details should be the first finding, got %T", resp.Error.Details)
	assert.Equal(t, string(table.FindingShadowed), details["kind"])
	assert.Equal(t, float64(17), details["index"])

	assert.Equal(t, "built-in", result.Table)
	assert.Equal(t, 34, result.Pairs)
	require.Len(t, result.Findings, 1)
	assert.Equal(t, table.Finding{Kind: table.FindingShadowed, Index: 17, Other: 8, Match: "System Built"}, result.Findings[0])
}

func TestLint_JSONClean(t *testing.T) {
	tablePath := testutil.WriteFile(t, "clean.yaml", "pairs:\n  - match: Done\n    replacement: X\n")

	out, _, err := execute("--format", "json", "lint", "--table", tablePath)
	require.NoError(t, err)

	var result LintResult
	resp := decodeResponse(t, out, &result)
	assert.Equal(t, "ok", resp.Status)
	assert.Empty(t, result.Findings)
	assert.Contains(t, out.String(), `"findings":[]`)
}

func TestLint_EmptyMatchFailsAtLoad(t *testing.T) {
	tablePath := testutil.WriteFile(t, "bad.yaml", "pairs:\n  - match: \"\"\n    replacement: X\n")

	_, _, err := execute("lint", "--table", tablePath)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), ErrCodeInvalidTableEntry)
}
