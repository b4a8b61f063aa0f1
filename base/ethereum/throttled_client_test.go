package ethereum

import (
	"context"
	"math/big"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/stretchr/testify/require"
)

type slowNode struct {
	inflight int32
	peak     int32
}

func (n *slowNode) CallContract(ctx context.Context, msg ethereum.CallMsg, number *big.Int) ([]byte, error) {
	cur := atomic.AddInt32(&n.inflight, 1)
	defer atomic.AddInt32(&n.inflight, -1)
	for {
		peak := atomic.LoadInt32(&n.peak)
		if cur <= peak || atomic.CompareAndSwapInt32(&n.peak, peak, cur) {
			break
		}
	}
	time.Sleep(20 * time.Millisecond)
	return []byte{0x01}, nil
}

func (n *slowNode) ChainID(ctx context.Context) (*big.Int, error) {
	return big.NewInt(1), nil
}

func (n *slowNode) BlockNumber(ctx context.Context) (uint64, error) {
	return 1, nil
}

func TestThrottledClientBoundsConcurrency(t *testing.T) {
	req := require.New(t)
	node := &slowNode{}
	c := NewThrottledClient(node, 2)

	wg := sync.WaitGroup{}
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := c.CallContract(context.Background(), ethereum.CallMsg{}, nil)
			req.NoError(err)
			req.Equal([]byte{0x01}, out)
		}()
	}
	wg.Wait()

	req.LessOrEqual(atomic.LoadInt32(&node.peak), int32(2))
	req.Len(c.tokens, 2)
}

func TestThrottledClientCancelled(t *testing.T) {
	req := require.New(t)
	c := NewThrottledClient(&slowNode{}, 1)

	// hold the only token
	token, err := c.before(context.Background(), "eth_call")
	req.NoError(err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.ChainID(ctx)
	req.ErrorIs(err, context.Canceled)

	c.after(token)
	id, err := c.ChainID(context.Background())
	req.NoError(err)
	req.Equal(int64(1), id.Int64())
}
