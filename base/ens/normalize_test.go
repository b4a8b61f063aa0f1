package ens

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/x-xyz/ensapi/domain"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		invalid bool
	}{
		{input: "foo.eth", want: "foo.eth"},
		{input: "Foo.ETH", want: "foo.eth"},
		{input: "bücher.eth", want: "xn--bcher-kva.eth"},
		{input: "foo bar.eth", invalid: true},
		{input: "foo_bar.eth", invalid: true},
		{input: "\xff.eth", invalid: true},
		{input: "foo\xc3.eth", invalid: true},
		{input: "\xed\xa0\x80.eth", invalid: true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			req := require.New(t)
			got, err := Normalize(tt.input)
			if tt.invalid {
				req.ErrorIs(err, domain.ErrInvalidName)
				return
			}
			req.NoError(err)
			req.Equal(tt.want, got)
		})
	}
}

func TestLabels(t *testing.T) {
	req := require.New(t)
	req.Equal([]string{"foo", "eth"}, labels("foo.eth"))
	req.Equal([]string{"eth"}, labels("eth."))
	req.Empty(labels(""))
	req.Empty(labels("."))
	req.Equal([]string{"a"}, labels("a..b"))
}

func TestParent(t *testing.T) {
	req := require.New(t)

	p, ok := Parent("sub.foo.eth")
	req.True(ok)
	req.Equal("foo.eth", p)

	p, ok = Parent("foo.eth")
	req.True(ok)
	req.Equal("eth", p)

	_, ok = Parent("eth")
	req.False(ok)

	_, ok = Parent(".")
	req.False(ok)
}
