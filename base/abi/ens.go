package abi

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

var (
	// RegistryABI is the subset of the ens registry used for resolution
	RegistryABI abi.ABI
	// ResolverABI covers legacy, ENSIP-10 and CCIP-Read callback resolver methods
	ResolverABI abi.ABI
)

func init() {
	RegistryABI = mustParse(registryABIJson)
	ResolverABI = mustParse(resolverABIJson)
}

func mustParse(j string) abi.ABI {
	_abi, err := abi.JSON(strings.NewReader(j))
	if err != nil {
		panic("Failed to parse ABI")
	}
	return _abi
}

var registryABIJson = `
[
  {
    "inputs": [{ "internalType": "bytes32", "name": "node", "type": "bytes32" }],
    "name": "resolver",
    "outputs": [{ "internalType": "address", "name": "", "type": "address" }],
    "stateMutability": "view",
    "type": "function"
  }
]
`

var resolverABIJson = `
[
  {
    "inputs": [{ "internalType": "bytes4", "name": "interfaceID", "type": "bytes4" }],
    "name": "supportsInterface",
    "outputs": [{ "internalType": "bool", "name": "", "type": "bool" }],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [{ "internalType": "bytes32", "name": "node", "type": "bytes32" }],
    "name": "addr",
    "outputs": [{ "internalType": "address", "name": "", "type": "address" }],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [{ "internalType": "bytes32", "name": "node", "type": "bytes32" }],
    "name": "name",
    "outputs": [{ "internalType": "string", "name": "", "type": "string" }],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [
      { "internalType": "bytes", "name": "name", "type": "bytes" },
      { "internalType": "bytes", "name": "data", "type": "bytes" }
    ],
    "name": "resolve",
    "outputs": [{ "internalType": "bytes", "name": "", "type": "bytes" }],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [
      { "internalType": "bytes", "name": "response", "type": "bytes" },
      { "internalType": "bytes", "name": "extraData", "type": "bytes" }
    ],
    "name": "resolveWithProof",
    "outputs": [{ "internalType": "bytes", "name": "", "type": "bytes" }],
    "stateMutability": "view",
    "type": "function"
  }
]
`
