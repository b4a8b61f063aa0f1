package ens

import (
	"time"

	"github.com/x-xyz/ensapi/base/ctx"
	"github.com/x-xyz/ensapi/domain"
)

type ENS interface {
	Resolve(ctx ctx.Ctx, name string) (domain.Address, error)
	ReverseResolve(ctx ctx.Ctx, address domain.Address) (string, error)
	// BatchResolve resolves names concurrently. Results keep the input order;
	// a failed name carries its error instead of failing the batch.
	BatchResolve(ctx ctx.Ctx, names []string) ([]*ResolveResult, error)
}

type ResolveResult struct {
	Name    string         `json:"name"`
	Address domain.Address `json:"address,omitempty"`
	Error   string         `json:"error,omitempty"`
}

type Config struct {
	ChainId domain.ChainId
	// LookupLimit bounds the number of CCIP-Read round trips per resolution
	LookupLimit int
	// BatchWorkers is the concurrency of BatchResolve
	BatchWorkers int
}

const (
	DefaultLookupLimit  = 4
	DefaultBatchWorkers = 10
	MaxBatchSize        = 100

	DefaultCacheTTL = 10 * time.Minute
)
