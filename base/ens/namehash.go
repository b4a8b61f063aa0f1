package ens

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// LabelHash is keccak256 of the utf-8 bytes of a single label.
func LabelHash(label string) common.Hash {
	return crypto.Keccak256Hash([]byte(label))
}

// NameHash implements the ENSIP-1 namehash of a name. The name is normalized
// first; the empty name hashes to 32 zero bytes.
//
//	namehash("")      = 0x00..00
//	namehash("a.b")   = keccak256(namehash("b") || keccak256("a"))
func NameHash(name string) (common.Hash, error) {
	normalized, err := Normalize(name)
	if err != nil {
		return common.Hash{}, err
	}

	var node common.Hash
	ls := labels(normalized)
	for i := len(ls) - 1; i >= 0; i-- {
		labelHash := LabelHash(ls[i])
		node = crypto.Keccak256Hash(node[:], labelHash[:])
	}
	return node, nil
}

// NameHashBytes is NameHash as a raw 32 byte slice.
func NameHashBytes(name string) ([]byte, error) {
	node, err := NameHash(name)
	if err != nil {
		return nil, err
	}
	return node.Bytes(), nil
}
