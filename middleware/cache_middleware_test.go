package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/ensapi/base/ctx"
)

type cacheMiddlewareSuite struct {
	suite.Suite
}

func (s *cacheMiddlewareSuite) SetupSuite() {
	SetupCache(nil)
}

func TestCacheMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(cacheMiddlewareSuite))
}

func (s *cacheMiddlewareSuite) serve(mw echo.MiddlewareFunc, target string, h echo.HandlerFunc) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("ctx", ctx.Background())
	s.Require().NoError(mw(h)(c))
	return rec
}

func (s *cacheMiddlewareSuite) TestCacheMiddleware() {
	mw := CacheHttp(30 * time.Second)

	rec := s.serve(mw, "/ens/namehash/foo.eth?b=2&a=1", func(c echo.Context) error {
		return c.String(http.StatusOK, "first")
	})
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("first", rec.Body.String())
	s.Empty(rec.Header().Get(HeaderCache))

	// same url with reordered params hits the cache
	rec = s.serve(mw, "/ens/namehash/foo.eth?a=1&b=2", func(c echo.Context) error {
		return c.String(http.StatusOK, "second")
	})
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("first", rec.Body.String())
	s.Equal("HIT", rec.Header().Get(HeaderCache))
}

func (s *cacheMiddlewareSuite) TestErrorsAreNotCached() {
	mw := CacheHttp(30 * time.Second)

	rec := s.serve(mw, "/ens/namehash/bad", func(c echo.Context) error {
		return c.String(http.StatusBadRequest, "bad")
	})
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.serve(mw, "/ens/namehash/bad", func(c echo.Context) error {
		return c.String(http.StatusOK, "good")
	})
	s.Equal("good", rec.Body.String())
}

func (s *cacheMiddlewareSuite) TestGenerateKey() {
	s.Equal(generateKey("/a?x=1"), generateKey("/a?x=1"))
	s.NotEqual(generateKey("/a?x=1"), generateKey("/a?x=2"))
}
