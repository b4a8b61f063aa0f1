package usecase

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/stretchr/testify/require"

	"github.com/x-xyz/ensapi/base/ctx"
	"github.com/x-xyz/ensapi/stores/healthcheck/repository"
)

type fakeNode struct {
	chainId int64
	err     error
}

func (f *fakeNode) CallContract(context.Context, ethereum.CallMsg, *big.Int) ([]byte, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeNode) ChainID(context.Context) (*big.Int, error) {
	return big.NewInt(f.chainId), f.err
}

func (f *fakeNode) BlockNumber(context.Context) (uint64, error) {
	return 15000000, f.err
}

func TestCheck(t *testing.T) {
	req := require.New(t)

	status, err := New(repository.New(&fakeNode{chainId: 1}, nil, 1)).Check(ctx.Background())
	req.NoError(err)
	req.Equal(uint64(1), status.ChainId)
	req.Equal(uint64(15000000), status.BlockNumber)

	_, err = New(repository.New(&fakeNode{chainId: 5}, nil, 1)).Check(ctx.Background())
	req.Error(err)

	_, err = New(repository.New(&fakeNode{chainId: 1, err: errors.New("down")}, nil, 1)).Check(ctx.Background())
	req.Error(err)
}
