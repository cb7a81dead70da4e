package table

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/roach88/relabel/internal/subst"
)

// DomainTable separates table digests from any other hash in the ledger.
// The version suffix leaves room to change the encoding later.
const DomainTable = "relabel/table/v1"

// Digest returns the hex SHA-256 of the table's canonical encoding.
// Two tables share a digest only if they hold the same pairs in the same
// order. Strings are hashed byte-for-byte; no Unicode normalization is
// applied because the engine matches bytes.
func Digest(t subst.Table) (string, error) {
	canonical, err := MarshalCanonical(t)
	if err != nil {
		return "", err
	}
	h := sha256.New()
	h.Write([]byte(DomainTable))
	h.Write([]byte{0x00})
	h.Write(canonical)
	return hex.EncodeToString(h.Sum(nil)), nil
}

// MustDigest is like Digest but panics on error.
// Use only in tests or with tables known to be valid UTF-8.
func MustDigest(t subst.Table) string {
	d, err := Digest(t)
	if err != nil {
		panic(err)
	}
	return d
}

// MarshalCanonical encodes the table as compact JSON with sorted keys:
//
//	[{"match":"...","replacement":"..."},...]
//
// <, > and & are not HTML-escaped, and U+2028/U+2029 are written literally.
func MarshalCanonical(t subst.Table) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, p := range t {
		if i > 0 {
			buf.WriteByte(',')
		}
		match, err := marshalCanonicalString(p.Match)
		if err != nil {
			return nil, fmt.Errorf("pair[%d].match: %w", i, err)
		}
		repl, err := marshalCanonicalString(p.Replacement)
		if err != nil {
			return nil, fmt.Errorf("pair[%d].replacement: %w", i, err)
		}
		buf.WriteString(`{"match":`)
		buf.Write(match)
		buf.WriteString(`,"replacement":`)
		buf.Write(repl)
		buf.WriteByte('}')
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func marshalCanonicalString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	out := bytes.TrimSuffix(buf.Bytes(), []byte{'\n'})
	return unescapeLineSeparators(out), nil
}

// unescapeLineSeparators turns the \u2028 and \u2029 escapes emitted by
// encoding/json back into literal characters. An escape preceded by an odd
// number of backslashes is literal text and is left alone.
func unescapeLineSeparators(data []byte) []byte {
	if !bytes.Contains(data, []byte(`\u202`)) {
		return data
	}
	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		if data[i] == '\\' && i+5 < len(data) && string(data[i+1:i+5]) == "u202" &&
			(data[i+5] == '8' || data[i+5] == '9') && trailingBackslashes(out)%2 == 0 {
			if data[i+5] == '8' {
				out = append(out, "\u2028"...)
			} else {
				out = append(out, "\u2029"...)
			}
			i += 5
			continue
		}
		out = append(out, data[i])
	}
	return out
}

func trailingBackslashes(b []byte) int {
	n := 0
	for j := len(b) - 1; j >= 0 && b[j] == '\\'; j-- {
		n++
	}
	return n
}
