package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/relabel/internal/subst"
)

func TestDigest_Builtin(t *testing.T) {
	d, err := Digest(Builtin())
	require.NoError(t, err)
	assert.Equal(t, "50f7f2432009302ab8cbadb4fab2139d1b2f1f8baff0a0ed058cf6d735e82b52", d)
}

func TestDigest_Deterministic(t *testing.T) {
	assert.Equal(t, MustDigest(Builtin()), MustDigest(Builtin()))
}

func TestDigest_OrderMatters(t *testing.T) {
	a := subst.Table{{Match: "AB", Replacement: "X"}, {Match: "A", Replacement: "Y"}}
	b := subst.Table{{Match: "A", Replacement: "Y"}, {Match: "AB", Replacement: "X"}}
	assert.NotEqual(t, MustDigest(a), MustDigest(b))
}

func TestDigest_FieldBoundaries(t *testing.T) {
	a := subst.Table{{Match: "ab", Replacement: "c"}}
	b := subst.Table{{Match: "a", Replacement: "bc"}}
	assert.NotEqual(t, MustDigest(a), MustDigest(b))
}

func TestDigest_NoNormalization(t *testing.T) {
	// "é" precomposed vs. e + combining acute.
	nfc := subst.Table{{Match: "caf\u00e9", Replacement: "x"}}
	nfd := subst.Table{{Match: "cafe\u0301", Replacement: "x"}}
	assert.NotEqual(t, MustDigest(nfc), MustDigest(nfd))
}

func TestMarshalCanonical(t *testing.T) {
	tests := []struct {
		name  string
		table subst.Table
		want  string
	}{
		{
			name:  "empty",
			table: subst.Table{},
			want:  `[]`,
		},
		{
			name:  "sorted keys, compact",
			table: subst.Table{{Match: "Done", Replacement: "已完成"}},
			want:  `[{"match":"Done","replacement":"已完成"}]`,
		},
		{
			name:  "no html escaping",
			table: subst.Table{{Match: "<b>&</b>", Replacement: "x"}},
			want:  `[{"match":"<b>&</b>","replacement":"x"}]`,
		},
		{
			name:  "control characters escaped",
			table: subst.Table{{Match: "a\"b\\c\nd", Replacement: "\t"}},
			want:  `[{"match":"a\"b\\c\nd","replacement":"\t"}]`,
		},
		{
			name:  "line separators literal",
			table: subst.Table{{Match: "a\u2028b", Replacement: "\u2029"}},
			want:  "[{\"match\":\"a\u2028b\",\"replacement\":\"\u2029\"}]",
		},
		{
			name:  "escaped backslash before u2028 text",
			table: subst.Table{{Match: `\u2028`, Replacement: "x"}},
			want:  `[{"match":"\\u2028","replacement":"x"}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MarshalCanonical(tt.table)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}
