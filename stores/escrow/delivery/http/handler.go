package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/x-xyz/gosale/base/ctx"
	"github.com/x-xyz/gosale/base/delivery"
	"github.com/x-xyz/gosale/domain"
	"github.com/x-xyz/gosale/domain/escrow"
	authMiddleware "github.com/x-xyz/gosale/stores/auth/delivery/http/middleware"
)

type handler struct {
	escrow escrow.UseCase
}

// New hooks the escrow routes. Withdraw requires the caller to be the
// authenticated beneficiary, balances are public.
func New(e *echo.Echo, escrowUC escrow.UseCase, auth *authMiddleware.AuthMiddleware) {
	h := &handler{escrow: escrowUC}

	g := e.Group("/escrow")
	g.GET("/:beneficiary", h.balances)
	g.POST("/withdraw", h.withdraw, auth.Auth())
}

func (h *handler) balances(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := struct {
		Beneficiary domain.Address `param:"beneficiary" validate:"required"`
	}{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.escrow.GetBalances(ctx, p.Beneficiary)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) withdraw(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	address := c.Get("address").(domain.Address)

	p := struct {
		Currency domain.Address `json:"currency" validate:"required"`
	}{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	amount, err := h.escrow.Withdraw(ctx, address, p.Currency)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, domain.FormatAmount(amount))
}
