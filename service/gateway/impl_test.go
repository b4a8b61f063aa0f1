package gateway

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/ensapi/base/ccip"
	"github.com/x-xyz/ensapi/base/ctx"
	"github.com/x-xyz/ensapi/base/metrics"
	"github.com/x-xyz/ensapi/domain"
)

var (
	mockCtx = ctx.Background()
	sender  = common.HexToAddress("0xC1735677a60884ABbCF72295E88d47764BeDa282")
)

type gatewaySuite struct {
	suite.Suite
	im *impl
}

func (s *gatewaySuite) SetupTest() {
	s.im = New(nil, Config{
		Timeout:      time.Second,
		Retries:      1,
		BackoffStart: time.Millisecond,
		BackoffLimit: time.Millisecond,
	}, metrics.New("gateway")).(*impl)
}

func TestSuite(t *testing.T) {
	suite.Run(t, new(gatewaySuite))
}

func lookupFor(urls ...string) *ccip.OffchainLookup {
	return &ccip.OffchainLookup{
		Sender:   sender,
		Urls:     urls,
		CallData: []byte{0xde, 0xad},
	}
}

func (s *gatewaySuite) TestGetTemplate() {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Equal(http.MethodGet, r.Method)
		s.Equal("/"+strings.ToLower(sender.Hex())+"/0xdead.json", r.URL.Path)
		w.Write([]byte(`{"data":"0x1234"}`))
	}))
	defer srv.Close()

	data, err := s.im.Fetch(mockCtx, lookupFor(srv.URL+"/{sender}/{data}.json"))
	s.NoError(err)
	s.Equal([]byte{0x12, 0x34}, data)
}

func (s *gatewaySuite) TestPostTemplate() {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Equal(http.MethodPost, r.Method)
		s.Equal("application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		req := ccip.GatewayRequest{}
		s.NoError(json.Unmarshal(body, &req))
		s.Equal("0xdead", req.Data)
		s.Equal(strings.ToLower(sender.Hex()), req.Sender)
		w.Write([]byte(`{"data":"0xbeef"}`))
	}))
	defer srv.Close()

	data, err := s.im.Fetch(mockCtx, lookupFor(srv.URL))
	s.NoError(err)
	s.Equal([]byte{0xbe, 0xef}, data)
}

func (s *gatewaySuite) TestServerErrorFallsThroughToNextURL() {
	var failed int32
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&failed, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer bad.Close()
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":"0x01"}`))
	}))
	defer good.Close()

	data, err := s.im.Fetch(mockCtx, lookupFor(bad.URL+"/{data}", good.URL+"/{data}"))
	s.NoError(err)
	s.Equal([]byte{0x01}, data)
	s.Equal(int32(1), atomic.LoadInt32(&failed))
}

func (s *gatewaySuite) TestClientErrorAborts() {
	var secondHit int32
	rejecting := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("unknown name"))
	}))
	defer rejecting.Close()
	second := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&secondHit, 1)
		w.Write([]byte(`{"data":"0x01"}`))
	}))
	defer second.Close()

	_, err := s.im.Fetch(mockCtx, lookupFor(rejecting.URL+"/{data}", second.URL+"/{data}"))
	s.True(errors.Is(err, domain.ErrGatewayRejected))
	s.Equal(int32(0), atomic.LoadInt32(&secondHit))
}

func (s *gatewaySuite) TestRetriesWholeListThenGivesUp() {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := s.im.Fetch(mockCtx, lookupFor(srv.URL+"/{data}"))
	s.True(errors.Is(err, domain.ErrGatewayExhausted))
	s.Equal(int32(2), atomic.LoadInt32(&hits))
}

func (s *gatewaySuite) TestNoUrls() {
	_, err := s.im.Fetch(mockCtx, lookupFor())
	s.Equal(domain.ErrNoGateway, err)
}

func (s *gatewaySuite) TestCancelled() {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c, cancel := ctx.WithCancel(mockCtx)
	cancel()
	_, err := s.im.Fetch(c, lookupFor(srv.URL+"/{data}"))
	s.Error(err)
}
