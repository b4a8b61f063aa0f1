package ccip

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

var testSender = common.HexToAddress("0xC1735677a60884ABbCF72295E88d47764BeDa282")

func TestBuildRequestGet(t *testing.T) {
	req := require.New(t)

	r, err := BuildRequest(context.Background(), "https://gw.example/{sender}/{data}.json", testSender, []byte{0xde, 0xad})
	req.NoError(err)
	req.Equal(http.MethodGet, r.Method)
	req.Equal("https://gw.example/0xc1735677a60884abbcf72295e88d47764beda282/0xdead.json", r.URL.String())
	req.Nil(r.Body)
}

func TestBuildRequestPost(t *testing.T) {
	req := require.New(t)

	r, err := BuildRequest(context.Background(), "https://gw.example/{sender}", testSender, []byte{0xde, 0xad})
	req.NoError(err)
	req.Equal(http.MethodPost, r.Method)
	req.Equal("https://gw.example/0xc1735677a60884abbcf72295e88d47764beda282", r.URL.String())
	req.Equal("application/json", r.Header.Get("Content-Type"))

	body, err := io.ReadAll(r.Body)
	req.NoError(err)
	var got GatewayRequest
	req.NoError(json.Unmarshal(body, &got))
	req.Equal(GatewayRequest{Data: "0xdead", Sender: "0xc1735677a60884abbcf72295e88d47764beda282"}, got)
}

func TestBuildRequestEmptyURL(t *testing.T) {
	_, err := BuildRequest(context.Background(), "", testSender, nil)
	require.ErrorIs(t, err, ErrEmptyURL)
}

func TestParseResponse(t *testing.T) {
	req := require.New(t)

	data, err := ParseResponse([]byte(`{"data":"0x0102ff"}`))
	req.NoError(err)
	req.Equal([]byte{0x01, 0x02, 0xff}, data)

	_, err = ParseResponse([]byte(`not json`))
	req.Error(err)

	_, err = ParseResponse([]byte(`{"data":"zz"}`))
	req.Error(err)

	_, err = ParseResponse([]byte(`{}`))
	req.Error(err)
}
