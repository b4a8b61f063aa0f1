package ens

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Selector is a 4 byte function selector or ERC-165 interface id
type Selector [4]byte

func (s Selector) Hex() string {
	return "0x" + common.Bytes2Hex(s[:])
}

var (
	// InterfaceERC165 is supportsInterface(bytes4)
	InterfaceERC165 = Selector{0x01, 0xff, 0xc9, 0xa7}
	// InterfaceWildcard is the ENSIP-10 resolve(bytes,bytes) interface id
	InterfaceWildcard = Selector{0x90, 0x61, 0xb9, 0x23}

	// resolver record types, EIP-137
	RecordAddr   = Selector{0x3b, 0x3b, 0x57, 0xde}
	RecordName   = Selector{0x69, 0x1f, 0x34, 0x31}
	RecordABI    = Selector{0x22, 0x03, 0xab, 0x56}
	RecordPubkey = Selector{0xc8, 0x69, 0x02, 0x33}
)

// ReverseSuffix is appended to a lowercase hex address for reverse records
const ReverseSuffix = ".addr.reverse"

// ReverseName returns the reverse record name of an address.
func ReverseName(address common.Address) string {
	return strings.ToLower(common.Bytes2Hex(address.Bytes())) + ReverseSuffix
}

// IsValidName reports whether input should be treated as a name rather than
// a raw hex address.
func IsValidName(input string) bool {
	return input != "" && (strings.Contains(input, ".") || !common.IsHexAddress(input))
}
