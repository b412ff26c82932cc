package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/x-xyz/gosale/base/ctx"
	"github.com/x-xyz/gosale/base/delivery"
	"github.com/x-xyz/gosale/domain"
)

type authHandler struct {
	auth domain.AuthUseCase
}

func New(e *echo.Echo, auth domain.AuthUseCase) {
	handler := &authHandler{auth: auth}
	g := e.Group("/auth")
	g.POST("/sign", handler.sign)
}

func (h *authHandler) sign(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := struct {
		Address domain.Address `json:"address" validate:"required"`
	}{}

	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	tkn, err := h.auth.SignToken(ctx, p.Address)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, tkn)
}
