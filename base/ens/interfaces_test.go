package ens

import (
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"github.com/x-xyz/ensapi/base/abi"
)

func TestSelectorsMatchResolverABI(t *testing.T) {
	req := require.New(t)

	for method, want := range map[string]Selector{
		"supportsInterface": InterfaceERC165,
		"resolve":           InterfaceWildcard,
		"addr":              RecordAddr,
		"name":              RecordName,
	} {
		m, ok := abi.ResolverABI.Methods[method]
		req.True(ok, method)
		req.Equal(want[:], m.ID, method)
	}
}

func TestRecordSelectors(t *testing.T) {
	for sig, want := range map[string]Selector{
		"ABI(bytes32,uint256)": RecordABI,
		"pubkey(bytes32)":      RecordPubkey,
	} {
		require.Equal(t, want[:], crypto.Keccak256([]byte(sig))[:4], sig)
	}
	require.Equal(t, "0x3b3b57de", RecordAddr.Hex())
}
