package ccip

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"golang.org/x/xerrors"
)

const (
	placeholderSender = "{sender}"
	placeholderData   = "{data}"
)

var ErrEmptyURL = errors.New("empty gateway url")

// GatewayRequest is the POST body sent to gateways whose url has no {data}
type GatewayRequest struct {
	Data   string `json:"data"`
	Sender string `json:"sender"`
}

// GatewayResponse is the json body returned by a gateway
type GatewayResponse struct {
	Data string `json:"data"`
}

// BuildRequest expands a gateway url template. Templates containing {data}
// are fetched with GET, all others receive the call data as a json POST.
func BuildRequest(c context.Context, url string, sender common.Address, callData []byte) (*http.Request, error) {
	if url == "" {
		return nil, ErrEmptyURL
	}

	senderHex := strings.ToLower(sender.Hex())
	dataHex := hexutil.Encode(callData)
	href := strings.ReplaceAll(url, placeholderSender, senderHex)
	href = strings.ReplaceAll(href, placeholderData, dataHex)

	if strings.Contains(url, placeholderData) {
		return http.NewRequestWithContext(c, http.MethodGet, href, nil)
	}

	body, err := json.Marshal(GatewayRequest{Data: dataHex, Sender: senderHex})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(c, http.MethodPost, href, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// ParseResponse extracts the hex data field of a gateway response body.
func ParseResponse(body []byte) ([]byte, error) {
	var resp GatewayResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, xerrors.Errorf("invalid gateway response: %w", err)
	}
	data, err := hexutil.Decode(resp.Data)
	if err != nil {
		return nil, xerrors.Errorf("invalid gateway data %q: %w", resp.Data, err)
	}
	return data, nil
}
