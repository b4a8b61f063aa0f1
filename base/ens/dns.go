package ens

import (
	"bytes"

	"golang.org/x/xerrors"

	"github.com/x-xyz/ensapi/domain"
)

const maxLabelLength = 255

// DNSEncode returns the dns wire format of a normalized name as used by
// ENSIP-10 resolve(bytes,bytes): every label prefixed with its length,
// terminated by a zero byte. Encoding stops at the first empty label.
func DNSEncode(name string) ([]byte, error) {
	normalized, err := Normalize(name)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	for _, label := range labels(normalized) {
		if len(label) > maxLabelLength {
			return nil, xerrors.Errorf("label %q exceeds %d bytes: %w", label, maxLabelLength, domain.ErrInvalidName)
		}
		buf.WriteByte(byte(len(label)))
		buf.WriteString(label)
	}
	buf.WriteByte(0)
	return buf.Bytes(), nil
}

// DNSDecode reads back the labels of a dns encoded name.
func DNSDecode(b []byte) ([]string, error) {
	ls := []string{}
	for off := 0; off < len(b); {
		n := int(b[off])
		off++
		if n == 0 {
			if off != len(b) {
				return nil, xerrors.Errorf("trailing bytes after terminator: %w", domain.ErrInvalidName)
			}
			return ls, nil
		}
		if off+n > len(b) {
			return nil, xerrors.Errorf("label length %d overflows input: %w", n, domain.ErrInvalidName)
		}
		ls = append(ls, string(b[off:off+n]))
		off += n
	}
	return nil, xerrors.Errorf("missing terminator: %w", domain.ErrInvalidName)
}
