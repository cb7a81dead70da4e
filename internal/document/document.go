// Package document reads and writes the single text file relabel rewrites.
//
// A Document is loaded whole, transformed in memory, and written back to the
// same path in one call. The write is a direct overwrite: there is no backup
// and no rename, so callers must only write once the new text is complete.
package document

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"unicode/utf8"
)

var (
	// ErrFileNotFound means the document path does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrEncoding means the file is not valid UTF-8.
	ErrEncoding = errors.New("file is not valid UTF-8")

	// ErrReadPermission means the document exists but cannot be read.
	ErrReadPermission = errors.New("permission denied reading file")

	// ErrWritePermission means the document cannot be overwritten.
	ErrWritePermission = errors.New("permission denied writing file")
)

// Error describes a failed read or write. Kind is one of the package
// sentinels (or nil for other I/O failures); Err is the underlying cause.
type Error struct {
	Op     string // "read" or "write"
	Path   string
	Kind   error
	Offset int // byte offset of the first invalid sequence, for ErrEncoding
	Err    error
}

func (e *Error) Error() string {
	switch {
	case e.Kind == ErrEncoding:
		return fmt.Sprintf("%s %s: %v at byte %d", e.Op, e.Path, e.Kind, e.Offset)
	case e.Kind != nil && e.Err != nil:
		return fmt.Sprintf("%s %s: %v: %v", e.Op, e.Path, e.Kind, e.Err)
	case e.Kind != nil:
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Kind)
	default:
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
}

func (e *Error) Is(target error) bool {
	return e.Kind != nil && target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Document is one fully loaded text file.
type Document struct {
	Path string
	Text string
	Mode fs.FileMode // permission bits, reused on write
}

// Read loads path into memory and checks that it is UTF-8. A leading byte
// order mark is kept as part of Text.
func Read(path string) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, classify("read", path, err)
	}
	if info.IsDir() {
		return nil, &Error{Op: "read", Path: path, Err: fmt.Errorf("is a directory")}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, classify("read", path, err)
	}
	if off := invalidUTF8Offset(data); off >= 0 {
		return nil, &Error{Op: "read", Path: path, Kind: ErrEncoding, Offset: off}
	}

	return &Document{Path: path, Text: string(data), Mode: info.Mode().Perm()}, nil
}

// Write replaces the whole file at d.Path with text and updates d.Text.
// Existing files keep their permission bits; d.Mode is used only when the
// file has to be created.
func (d *Document) Write(text string) error {
	mode := d.Mode
	if mode == 0 {
		mode = 0644
	}
	if err := os.WriteFile(d.Path, []byte(text), mode); err != nil {
		return classify("write", d.Path, err)
	}
	d.Text = text
	return nil
}

func classify(op, path string, err error) *Error {
	e := &Error{Op: op, Path: path, Err: err}
	switch {
	case errors.Is(err, fs.ErrNotExist) && op == "read":
		e.Kind = ErrFileNotFound
	case errors.Is(err, fs.ErrPermission) && op == "read":
		e.Kind = ErrReadPermission
	case errors.Is(err, fs.ErrPermission) && op == "write":
		e.Kind = ErrWritePermission
	}
	return e
}

// invalidUTF8Offset returns the offset of the first invalid UTF-8 sequence,
// or -1 when data is valid.
func invalidUTF8Offset(data []byte) int {
	if utf8.Valid(data) {
		return -1
	}
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}
