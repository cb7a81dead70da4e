package table

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	"gopkg.in/yaml.v3"

	"github.com/roach88/relabel/internal/subst"
)

var (
	// ErrUnsupportedFormat is returned for table files that are neither YAML nor CUE.
	ErrUnsupportedFormat = errors.New("unsupported table format")

	// ErrMissingPairs is returned when a table file has no top-level "pairs" list.
	ErrMissingPairs = errors.New(`table file has no "pairs" list`)
)

// LoadError describes a table file that could not be loaded.
// Line and Column are 1-based and zero when unknown.
type LoadError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	loc := e.Path
	if e.Line > 0 {
		loc = fmt.Sprintf("%s:%d:%d", e.Path, e.Line, e.Column)
	}
	if e.Err != nil && e.Message == "" {
		return fmt.Sprintf("%s: %v", loc, e.Err)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", loc, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", loc, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// LoadFile loads a table from path, choosing the decoder by extension
// (.yaml, .yml or .cue).
func LoadFile(path string) (subst.Table, error) {
	var decode func(string, []byte) (subst.Table, error)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		decode = LoadYAML
	case ".cue":
		decode = LoadCUE
	default:
		return nil, &LoadError{Path: path, Message: "expected .yaml, .yml or .cue", Err: ErrUnsupportedFormat}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "reading table file", Err: err}
	}
	return decode(path, data)
}

// yamlFile is the document shape of a YAML table.
type yamlFile struct {
	Pairs *[]yamlEntry `yaml:"pairs"`
}

// yamlEntry decodes one pair and remembers where it was written.
type yamlEntry struct {
	subst.Pair
	line   int
	column int
}

// pairError is a malformed pair found while decoding; it carries the
// position of the offending node.
type pairError struct {
	line   int
	column int
	msg    string
}

func (e *pairError) Error() string {
	return fmt.Sprintf("line %d: %s", e.line, e.msg)
}

func newPairError(node *yaml.Node, format string, args ...any) *pairError {
	return &pairError{line: node.Line, column: node.Column, msg: fmt.Sprintf(format, args...)}
}

func (e *yamlEntry) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return newPairError(node, "pair must be a mapping with match and replacement")
	}
	seen := make(map[string]bool, 2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		var dst *string
		switch key.Value {
		case "match":
			dst = &e.Match
		case "replacement":
			dst = &e.Replacement
		default:
			return newPairError(key, "field %s not found in pair", key.Value)
		}
		if seen[key.Value] {
			return newPairError(key, "%s is defined more than once", key.Value)
		}
		seen[key.Value] = true

		// Plain scalars such as ~ or 42 would otherwise decode as their
		// source text.
		if val.Kind != yaml.ScalarNode || val.ShortTag() != "!!str" {
			return newPairError(val, "%s must be a string, got %s", key.Value, describeNode(val))
		}
		*dst = val.Value
	}
	e.line, e.column = node.Line, node.Column
	return nil
}

func describeNode(n *yaml.Node) string {
	switch n.Kind {
	case yaml.MappingNode:
		return "a mapping"
	case yaml.SequenceNode:
		return "a sequence"
	case yaml.AliasNode:
		return "an alias"
	}
	if n.ShortTag() == "!!null" {
		return `null (write "" for an empty string)`
	}
	return n.ShortTag()
}

// LoadYAML decodes a YAML table. name is used in error messages only.
// Unknown fields are rejected.
func LoadYAML(name string, data []byte) (subst.Table, error) {
	var file yamlFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &LoadError{Path: name, Err: ErrMissingPairs}
		}
		var pairErr *pairError
		if errors.As(err, &pairErr) {
			return nil, &LoadError{Path: name, Line: pairErr.line, Column: pairErr.column, Message: pairErr.msg}
		}
		return nil, &LoadError{Path: name, Message: "parsing YAML", Err: err}
	}
	if file.Pairs == nil {
		return nil, &LoadError{Path: name, Err: ErrMissingPairs}
	}

	table := make(subst.Table, 0, len(*file.Pairs))
	for _, entry := range *file.Pairs {
		table = append(table, entry.Pair)
	}
	if err := table.Validate(); err != nil {
		var entryErr *subst.EntryError
		errors.As(err, &entryErr)
		at := (*file.Pairs)[entryErr.Index]
		return nil, &LoadError{Path: name, Line: at.line, Column: at.column, Err: err}
	}
	return table, nil
}

// LoadCUE evaluates a CUE table. name is used as the CUE filename so that
// positions in errors point back at the source.
func LoadCUE(name string, data []byte) (subst.Table, error) {
	ctx := cuecontext.New()
	value := ctx.CompileBytes(data, cue.Filename(name))
	if err := value.Err(); err != nil {
		return nil, cueLoadError(name, err)
	}

	pairsVal := value.LookupPath(cue.ParsePath("pairs"))
	if !pairsVal.Exists() {
		return nil, &LoadError{Path: name, Err: ErrMissingPairs}
	}
	iter, err := pairsVal.List()
	if err != nil {
		return nil, cueLoadError(name, err)
	}

	var table subst.Table
	var positions []token.Pos
	for iter.Next() {
		elem := iter.Value()
		pair, err := decodeCUEPair(elem)
		if err != nil {
			return nil, cueLoadError(name, err)
		}
		table = append(table, pair)
		positions = append(positions, elem.Pos())
	}
	if table == nil {
		table = subst.Table{}
	}

	if err := table.Validate(); err != nil {
		var entryErr *subst.EntryError
		errors.As(err, &entryErr)
		loadErr := &LoadError{Path: name, Err: err}
		if pos := positions[entryErr.Index]; pos.IsValid() {
			loadErr.Line, loadErr.Column = pos.Line(), pos.Column()
		}
		return nil, loadErr
	}
	return table, nil
}

func decodeCUEPair(v cue.Value) (subst.Pair, error) {
	var pair subst.Pair
	iter, err := v.Fields()
	if err != nil {
		return pair, err
	}
	for iter.Next() {
		var dst *string
		name := iter.Selector().String()
		switch name {
		case "match":
			dst = &pair.Match
		case "replacement":
			dst = &pair.Replacement
		default:
			return pair, cueerrors.Newf(iter.Value().Pos(), "field %s not found in pair", name)
		}
		s, err := iter.Value().String()
		if err != nil {
			return pair, err
		}
		*dst = s
	}
	return pair, nil
}

// cueLoadError keeps the first CUE error and its position.
func cueLoadError(name string, err error) *LoadError {
	loadErr := &LoadError{Path: name, Message: "evaluating CUE", Err: err}
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return loadErr
	}
	first := errs[0]
	loadErr.Err = first
	if positions := cueerrors.Positions(first); len(positions) > 0 && positions[0].IsValid() {
		loadErr.Line, loadErr.Column = positions[0].Line(), positions[0].Column()
	}
	return loadErr
}
