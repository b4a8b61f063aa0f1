package gateway

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"golang.org/x/xerrors"

	"github.com/x-xyz/ensapi/base/backoff"
	"github.com/x-xyz/ensapi/base/ccip"
	"github.com/x-xyz/ensapi/base/ctx"
	"github.com/x-xyz/ensapi/base/log"
	"github.com/x-xyz/ensapi/base/metrics"
	"github.com/x-xyz/ensapi/domain"
)

// maxResponseSize caps how much of a gateway body is read
const maxResponseSize = 1 << 20

type impl struct {
	client *http.Client
	cfg    Config
	met    metrics.Service
}

func New(client *http.Client, cfg Config, met metrics.Service) Fetcher {
	if client == nil {
		client = &http.Client{}
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig.Timeout
	}
	if cfg.Retries < 0 {
		cfg.Retries = 0
	}
	return &impl{client: client, cfg: cfg, met: met}
}

func (im *impl) Fetch(c ctx.Ctx, lookup *ccip.OffchainLookup) ([]byte, error) {
	if len(lookup.Urls) == 0 {
		return nil, domain.ErrNoGateway
	}

	bo := backoff.NewExponential(im.cfg.BackoffStart, im.cfg.BackoffLimit)
	var lastErr error
	for round := 0; round <= im.cfg.Retries; round++ {
		if round > 0 {
			if err := bo.Backoff(c); err != nil {
				return nil, err
			}
		}

		for _, url := range lookup.Urls {
			data, retryable, err := im.fetchOne(c, url, lookup)
			if err == nil {
				return data, nil
			}
			if c.Err() != nil {
				return nil, c.Err()
			}
			if !retryable {
				return nil, err
			}
			c.WithFields(log.Fields{"err": err, "url": url, "round": round}).Warn("gateway fetch failed, trying next")
			lastErr = err
		}
	}

	return nil, xerrors.Errorf("%v: %w", lastErr, domain.ErrGatewayExhausted)
}

// fetchOne queries a single url. retryable is false when the gateway
// answered with a client error, which another attempt cannot fix.
func (im *impl) fetchOne(c ctx.Ctx, url string, lookup *ccip.OffchainLookup) (data []byte, retryable bool, err error) {
	defer im.met.BumpTime("fetch.latency").End()

	tc, cancel := ctx.WithTimeout(c, im.cfg.Timeout)
	defer cancel()

	req, err := ccip.BuildRequest(tc, url, lookup.Sender, lookup.CallData)
	if err != nil {
		im.met.BumpSum("fetch.err", 1, "reason", "request")
		return nil, false, xerrors.Errorf("build request for %q: %w", url, err)
	}

	resp, err := im.client.Do(req)
	if err != nil {
		im.met.BumpSum("fetch.err", 1, "reason", "transport")
		return nil, true, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		im.met.BumpSum("fetch.err", 1, "reason", "read")
		return nil, true, err
	}

	status := strconv.Itoa(resp.StatusCode)
	switch {
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		im.met.BumpSum("fetch.err", 1, "reason", "status", "status", status)
		c.WithFields(log.Fields{"url": url, "status": resp.StatusCode}).Error("gateway rejected request")
		return nil, false, xerrors.Errorf("%s: %w", gatewayMessage(resp.StatusCode, body), domain.ErrGatewayRejected)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		im.met.BumpSum("fetch.err", 1, "reason", "status", "status", status)
		return nil, true, fmt.Errorf("%s", gatewayMessage(resp.StatusCode, body))
	}

	data, err = ccip.ParseResponse(body)
	if err != nil {
		im.met.BumpSum("fetch.err", 1, "reason", "body")
		return nil, true, err
	}
	return data, false, nil
}

func gatewayMessage(status int, body []byte) string {
	const maxMsg = 256
	if len(body) > maxMsg {
		body = body[:maxMsg]
	}
	return fmt.Sprintf("gateway status %d: %s", status, body)
}
