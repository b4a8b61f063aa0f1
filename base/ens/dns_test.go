package ens

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/x-xyz/ensapi/domain"
)

func TestDNSEncode(t *testing.T) {
	tests := []struct {
		name string
		want []byte
	}{
		{"", []byte{0}},
		{"eth", []byte{3, 'e', 't', 'h', 0}},
		{"Foo.eth", []byte{3, 'f', 'o', 'o', 3, 'e', 't', 'h', 0}},
		{"foo.eth.", []byte{3, 'f', 'o', 'o', 3, 'e', 't', 'h', 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			got, err := DNSEncode(tt.name)
			req.NoError(err)
			req.Equal(tt.want, got)
		})
	}
}

func TestDNSRoundTrip(t *testing.T) {
	req := require.New(t)

	for _, name := range []string{"eth", "foo.eth", "a.b.c.d.eth", strings.Repeat("a", maxLabelLength) + ".eth"} {
		b, err := DNSEncode(name)
		req.NoError(err)
		ls, err := DNSDecode(b)
		req.NoError(err)
		req.Equal(strings.Split(name, "."), ls)
	}

	ls, err := DNSDecode([]byte{0})
	req.NoError(err)
	req.Empty(ls)
}

func TestDNSEncodeLabelTooLong(t *testing.T) {
	req := require.New(t)
	_, err := DNSEncode(strings.Repeat("a", maxLabelLength+1) + ".eth")
	req.ErrorIs(err, domain.ErrInvalidName)
}

func TestDNSEncodeInvalidUTF8(t *testing.T) {
	for _, name := range []string{"\xff.eth", "foo\xc3.eth"} {
		b, err := DNSEncode(name)
		require.ErrorIs(t, err, domain.ErrInvalidName, "%q", name)
		require.Nil(t, b)
	}
}

func TestDNSDecodeMalformed(t *testing.T) {
	for name, b := range map[string][]byte{
		"overflow":          {3, 'f'},
		"missingTerminator": {3, 'f', 'o', 'o'},
		"trailingBytes":     {0, 1},
		"empty":             {},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := DNSDecode(b)
			require.ErrorIs(t, err, domain.ErrInvalidName)
		})
	}
}
