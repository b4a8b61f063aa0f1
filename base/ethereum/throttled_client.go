package ethereum

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"

	"github.com/x-xyz/ensapi/base/log"
	"github.com/x-xyz/ensapi/base/metrics"
	"github.com/x-xyz/ensapi/domain"
)

// ThrottledClient bounds the number of in-flight rpc requests to n.
type ThrottledClient struct {
	client domain.EthClientRepo
	tokens chan int
	met    metrics.Service
}

func NewThrottledClient(client domain.EthClientRepo, n int) *ThrottledClient {
	if n <= 0 {
		n = 1
	}
	tokens := make(chan int, n)
	for i := 0; i < n; i++ {
		tokens <- i + 1
	}
	return &ThrottledClient{
		client: client,
		tokens: tokens,
		met:    metrics.New("rpc"),
	}
}

func (c *ThrottledClient) CallContract(ctx context.Context, msg ethereum.CallMsg, number *big.Int) ([]byte, error) {
	token, err := c.before(ctx, "eth_call")
	if err != nil {
		return nil, err
	}
	defer c.after(token)
	return c.client.CallContract(ctx, msg, number)
}

func (c *ThrottledClient) ChainID(ctx context.Context) (*big.Int, error) {
	token, err := c.before(ctx, "eth_chainId")
	if err != nil {
		return nil, err
	}
	defer c.after(token)
	return c.client.ChainID(ctx)
}

func (c *ThrottledClient) BlockNumber(ctx context.Context) (uint64, error) {
	token, err := c.before(ctx, "eth_blockNumber")
	if err != nil {
		return 0, err
	}
	defer c.after(token)
	return c.client.BlockNumber(ctx)
}

func (c *ThrottledClient) before(ctx context.Context, method string) (int, error) {
	now := time.Now()
	select {
	case <-ctx.Done():
		log.Log().WithFields(log.Fields{
			"method": method,
			"wait":   time.Since(now).String(),
		}).Warn("throttle ctx done")
		return 0, ctx.Err()
	case token := <-c.tokens:
		c.met.BumpHistogram("throttle.wait", float64(time.Since(now).Milliseconds()), "method", method)
		return token, nil
	}
}

func (c *ThrottledClient) after(token int) {
	c.tokens <- token
}
