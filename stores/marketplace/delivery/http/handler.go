package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/x-xyz/gosale/base/ctx"
	"github.com/x-xyz/gosale/base/delivery"
	"github.com/x-xyz/gosale/domain"
	"github.com/x-xyz/gosale/domain/marketplace"
	authMiddleware "github.com/x-xyz/gosale/stores/auth/delivery/http/middleware"
)

type handler struct {
	marketplace marketplace.UseCase
}

// New hooks the marketplace settings routes. Reads are public,
// mutations and fee withdrawal are admin only.
func New(e *echo.Echo, marketplaceUC marketplace.UseCase, auth *authMiddleware.AuthMiddleware) {
	h := &handler{marketplace: marketplaceUC}

	e.GET("/marketplace/settings", h.getSettings)

	admin := e.Group("/admin/marketplace", auth.Auth(), auth.IsAdmin())
	admin.PATCH("/settings", h.patchSettings)
	admin.POST("/royalty-service", h.bindRoyaltyService)
	admin.GET("/accruals", h.listAccruals)
	admin.POST("/withdraw", h.withdrawFees)
}

func (h *handler) getSettings(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.marketplace.GetSettings(ctx)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) patchSettings(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &marketplace.SettingsPatchable{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.marketplace.PatchSettings(ctx, p)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) bindRoyaltyService(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := struct {
		Address domain.Address `json:"address" validate:"required"`
	}{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.marketplace.BindRoyaltyService(ctx, p.Address)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) listAccruals(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.marketplace.ListAccruals(ctx)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) withdrawFees(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := struct {
		To       domain.Address `json:"to" validate:"required"`
		Currency domain.Address `json:"currency" validate:"required"`
	}{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	amount, err := h.marketplace.WithdrawFees(ctx, p.To, p.Currency)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, domain.FormatAmount(amount))
}
