package ens

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/xerrors"

	"github.com/x-xyz/ensapi/domain"
)

const (
	ChainMainnet domain.ChainId = 1
	ChainGoerli  domain.ChainId = 5
	ChainHolesky domain.ChainId = 17000
	ChainSepolia domain.ChainId = 11155111
)

// SupportedChains lists every chain the resolver claims to work on.
var SupportedChains = []domain.ChainId{
	ChainMainnet,
	ChainGoerli,
	ChainHolesky,
	ChainSepolia,
}

var registries = map[domain.ChainId]common.Address{
	ChainMainnet: common.HexToAddress("0x00000000000C2E074eC69A0dFb2997BA6C7d2e1e"),
	ChainGoerli:  common.HexToAddress("0x00000000000C2E074eC69A0dFb2997BA6C7d2e1e"),
	ChainHolesky: common.HexToAddress("0x00000000000C2E074eC69A0dFb2997BA6C7d2e1e"),
	ChainSepolia: common.HexToAddress("0x00000000000C2E074eC69A0dFb2997BA6C7d2e1e"),
}

func init() {
	if err := checkRegistries(SupportedChains, registries); err != nil {
		panic(err)
	}
}

func checkRegistries(chains []domain.ChainId, table map[domain.ChainId]common.Address) error {
	for _, id := range chains {
		if addr, ok := table[id]; !ok || addr == (common.Address{}) {
			return fmt.Errorf("ens registry missing for supported chain %d", id)
		}
	}
	return nil
}

// RegistryAddress returns the ens registry deployment for chainId. Unknown
// chains are an error rather than a fallback to mainnet.
func RegistryAddress(chainId domain.ChainId) (common.Address, error) {
	addr, ok := registries[chainId]
	if !ok {
		return common.Address{}, xerrors.Errorf("no ens registry for chain %d: %w", chainId, domain.ErrUnsupportedChain)
	}
	return addr, nil
}
