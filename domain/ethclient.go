package domain

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
)

// just using go-ethereum/ethclient
type EthClientRepo interface {
	ethereum.ContractCaller
	ChainID(context.Context) (*big.Int, error)
	BlockNumber(context.Context) (uint64, error)
}
