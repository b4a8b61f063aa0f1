package healthcheck

import (
	"github.com/x-xyz/ensapi/base/ctx"
)

// HealthCheckUsecase represents the healthCheck's usecases
type HealthCheckUsecase interface {
	Check(context ctx.Ctx) (*Status, error)
}

// HealthCheckRepo is repository layer of healthCheck
type HealthCheckRepo interface {
	PingRedis(context ctx.Ctx) error
	PingNode(context ctx.Ctx) (*Status, error)
}

type Status struct {
	ChainId     uint64 `json:"chainId"`
	BlockNumber uint64 `json:"blockNumber"`
}
