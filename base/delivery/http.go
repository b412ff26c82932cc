package delivery

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/x-xyz/gosale/domain"
	"github.com/x-xyz/gosale/service/query"
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

// MakeJsonResp wraps data in the response envelope. Errors are mapped
// onto the engine's taxonomy: validation and payment problems are the
// caller's fault, state conflicts are 409, permission failures 403.
func MakeJsonResp(c echo.Context, status int, data interface{}) error {
	if err, ok := data.(error); ok {
		switch {
		case errors.Is(err, domain.ErrNotFound) || errors.Is(err, query.ErrNotFound):
			status = http.StatusNotFound
		case errors.Is(err, domain.ErrNotAuthorized):
			status = http.StatusForbidden
		case errors.Is(err, domain.ErrBadState) || errors.Is(err, domain.ErrConflict):
			status = http.StatusConflict
		case errors.Is(err, domain.ErrInvalidListing) ||
			errors.Is(err, domain.ErrInsufficientPayment) ||
			errors.Is(err, domain.ErrInvalidCurrency) ||
			errors.Is(err, domain.ErrInvalidAddress) ||
			errors.Is(err, domain.ErrBadParamInput):
			status = http.StatusBadRequest
		case errors.Is(err, domain.ErrMarketplaceDisabled):
			status = http.StatusServiceUnavailable
		}
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
