package cli

import (
	"errors"
	"io/fs"

	"github.com/roach88/relabel/internal/document"
	"github.com/roach88/relabel/internal/store"
	"github.com/roach88/relabel/internal/subst"
	"github.com/roach88/relabel/internal/table"
)

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric           = "E001" // Generic/unknown error
	ErrCodeUnsupportedFormat = "E003" // Table file is not YAML or CUE
	ErrCodeTableLoad         = "E004" // Table file could not be parsed
	ErrCodeNotFound          = "E005" // Path not found
	ErrCodeReadFailed        = "E006" // Document could not be read
	ErrCodeWriteFailed       = "E007" // Document could not be written
	ErrCodeEncoding          = "E008" // Document is not valid UTF-8
	ErrCodeLedger            = "E009" // Run ledger could not be opened or written

	ErrCodeInvalidTableEntry = "E101" // Table pair with an empty match
	ErrCodeLintFindings      = "E102" // Lint reported findings; details hold the first
)

// builtinSource labels the compiled-in table in output.
const builtinSource = "built-in"

// loadTable returns the table at path, or the built-in table when path is
// empty, along with a label for output.
func loadTable(path string) (subst.Table, string, error) {
	if path == "" {
		return table.Builtin(), builtinSource, nil
	}
	t, err := table.LoadFile(path)
	if err != nil {
		return nil, path, err
	}
	return t, path, nil
}

// errorCode maps a library error to a CLI error code.
func errorCode(err error) string {
	switch {
	case errors.Is(err, subst.ErrInvalidTableEntry):
		return ErrCodeInvalidTableEntry
	case errors.Is(err, table.ErrUnsupportedFormat):
		return ErrCodeUnsupportedFormat
	case errors.Is(err, document.ErrFileNotFound), errors.Is(err, fs.ErrNotExist):
		return ErrCodeNotFound
	case errors.Is(err, document.ErrEncoding):
		return ErrCodeEncoding
	case errors.Is(err, document.ErrWritePermission):
		return ErrCodeWriteFailed
	case errors.Is(err, document.ErrReadPermission):
		return ErrCodeReadFailed
	case errors.Is(err, store.ErrRunNotFound), errors.Is(err, store.ErrMissingID):
		return ErrCodeLedger
	}

	var loadErr *table.LoadError
	if errors.As(err, &loadErr) {
		return ErrCodeTableLoad
	}
	var docErr *document.Error
	if errors.As(err, &docErr) {
		if docErr.Op == "write" {
			return ErrCodeWriteFailed
		}
		return ErrCodeReadFailed
	}
	return ErrCodeGeneric
}
