package delivery

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/ensapi/domain"
)

type JsonResponseStatus string

const (
	JsonResponseStatusSuccess JsonResponseStatus = "success"
	JsonResponseStatusFail    JsonResponseStatus = "fail"
)

type JsonResponse struct {
	Data   interface{}        `json:"data"`
	Status JsonResponseStatus `json:"status"`
}

// StatusOf maps domain errors to http status codes
func StatusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidName),
		errors.Is(err, domain.ErrInvalidAddress),
		errors.Is(err, domain.ErrDecode),
		errors.Is(err, domain.ErrBadParamInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrUnsupportedChain):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrGatewayRejected),
		errors.Is(err, domain.ErrGatewayExhausted),
		errors.Is(err, domain.ErrNoGateway),
		errors.Is(err, domain.ErrNestedLookup),
		errors.Is(err, domain.ErrLookupLimit):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// MakeJsonResp writes data wrapped in a JsonResponse. When data is an error
// the status is derived from it.
func MakeJsonResp(c echo.Context, status int, data interface{}) error {
	if err, ok := data.(error); ok {
		status = StatusOf(err)
		data = err.Error()
	}

	if status >= 400 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusFail})
	}

	if status >= 200 && status < 300 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusSuccess})
	}

	return c.JSON(status, data)
}
