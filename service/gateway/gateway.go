package gateway

import (
	"time"

	"github.com/x-xyz/ensapi/base/ccip"
	"github.com/x-xyz/ensapi/base/ctx"
)

// Fetcher performs the CCIP-Read gateway round trip for an OffchainLookup
type Fetcher interface {
	// Fetch returns the data field of the first successful gateway response.
	Fetch(c ctx.Ctx, lookup *ccip.OffchainLookup) ([]byte, error)
}

type Config struct {
	// Timeout bounds every single url attempt
	Timeout time.Duration
	// Retries is the number of extra passes over the url list after all of
	// them failed with a retryable error
	Retries      int
	BackoffStart time.Duration
	BackoffLimit time.Duration
}

var DefaultConfig = Config{
	Timeout:      10 * time.Second,
	Retries:      1,
	BackoffStart: 500 * time.Millisecond,
	BackoffLimit: 5 * time.Second,
}
