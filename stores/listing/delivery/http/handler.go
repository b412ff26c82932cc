package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/x-xyz/gosale/base/ctx"
	"github.com/x-xyz/gosale/base/delivery"
	"github.com/x-xyz/gosale/domain"
	"github.com/x-xyz/gosale/domain/listing"
	authMiddleware "github.com/x-xyz/gosale/stores/auth/delivery/http/middleware"
)

type handler struct {
	listing listing.UseCase
}

// New hooks the listing lifecycle routes. Admin cancel rides the same
// endpoint as seller cancel, gated by the auth middleware.
func New(e *echo.Echo, listingUC listing.UseCase, auth *authMiddleware.AuthMiddleware) {
	h := &handler{listing: listingUC}

	g := e.Group("/listing")
	g.POST("", h.create)
	g.GET("", h.list)
	g.GET("/:listingId", h.get)
	g.PATCH("/:listingId", h.modify)
	g.POST("/:listingId/purchase", h.purchase)
	g.POST("/:listingId/bid", h.bid)
	g.POST("/:listingId/offer", h.offer)
	g.DELETE("/:listingId/offer", h.rescindOffer)
	g.GET("/:listingId/offers", h.offers)
	g.POST("/:listingId/accept", h.accept)
	g.POST("/:listingId/finalize", h.finalize)
	g.POST("/:listingId/collect", h.collect)
	g.DELETE("/:listingId", h.cancel)
	g.GET("/:listingId/activities", h.activities)

	admin := e.Group("/admin/listing", auth.Auth(), auth.IsAdmin())
	admin.DELETE("/:listingId", h.adminCancel)
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &listing.CreateRequest{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	l, err := h.listing.Create(ctx, p)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, l)
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := struct {
		Seller    *domain.Address `query:"seller"`
		Type      *string         `query:"type"`
		Currency  *domain.Address `query:"currency"`
		Finalized *bool           `query:"finalized"`
		Offset    int32           `query:"offset"`
		Limit     int32           `query:"limit" validate:"max=100"`
	}{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if p.Limit == 0 {
		p.Limit = 20
	}

	opts := []listing.FindAllOptionsFunc{listing.WithPagination(p.Offset, p.Limit)}
	if p.Seller != nil {
		opts = append(opts, listing.WithSeller(*p.Seller))
	}
	if p.Type != nil {
		typ, ok := listing.ToType(*p.Type)
		if !ok {
			return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
		}
		opts = append(opts, listing.WithType(typ))
	}
	if p.Currency != nil {
		opts = append(opts, listing.WithCurrency(*p.Currency))
	}
	if p.Finalized != nil {
		opts = append(opts, listing.WithFinalized(*p.Finalized))
	}

	res, err := h.listing.FindAll(ctx, opts...)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := struct {
		ListingId listing.Id `param:"listingId" validate:"required"`
	}{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	l, err := h.listing.GetListing(ctx, p.ListingId)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, l)
}

func (h *handler) modify(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := struct {
		ListingId listing.Id     `param:"listingId" validate:"required"`
		Caller    domain.Address `json:"caller" validate:"required"`
		listing.ModifyRequest
	}{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	l, err := h.listing.Modify(ctx, p.ListingId, p.Caller, &p.ModifyRequest)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, l)
}

func (h *handler) purchase(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := struct {
		ListingId listing.Id `param:"listingId" validate:"required"`
		listing.PurchaseRequest
	}{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.listing.Purchase(ctx, p.ListingId, &p.PurchaseRequest)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) bid(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := struct {
		ListingId listing.Id `param:"listingId" validate:"required"`
		listing.BidRequest
	}{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	l, err := h.listing.PlaceBid(ctx, p.ListingId, &p.BidRequest)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, l)
}

func (h *handler) offer(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := struct {
		ListingId listing.Id `param:"listingId" validate:"required"`
		listing.OfferRequest
	}{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	offer, err := h.listing.MakeOffer(ctx, p.ListingId, &p.OfferRequest)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, offer)
}

func (h *handler) rescindOffer(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := struct {
		ListingId listing.Id `param:"listingId" validate:"required"`
		listing.RescindRequest
	}{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.listing.RescindOffer(ctx, p.ListingId, &p.RescindRequest); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) offers(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := struct {
		ListingId listing.Id `param:"listingId" validate:"required"`
	}{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.listing.GetOffers(ctx, p.ListingId)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) accept(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := struct {
		ListingId listing.Id `param:"listingId" validate:"required"`
		listing.AcceptRequest
	}{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.listing.AcceptOffers(ctx, p.ListingId, &p.AcceptRequest)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) finalize(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := struct {
		ListingId listing.Id     `param:"listingId" validate:"required"`
		Caller    domain.Address `json:"caller" validate:"required"`
	}{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	l, err := h.listing.Finalize(ctx, p.ListingId, p.Caller)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, l)
}

func (h *handler) collect(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := struct {
		ListingId listing.Id     `param:"listingId" validate:"required"`
		Caller    domain.Address `json:"caller" validate:"required"`
	}{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	l, err := h.listing.Collect(ctx, p.ListingId, p.Caller)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, l)
}

func (h *handler) cancel(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := struct {
		ListingId listing.Id     `param:"listingId" validate:"required"`
		Caller    domain.Address `json:"caller" validate:"required"`
	}{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	l, err := h.listing.Cancel(ctx, p.ListingId, &listing.CancelRequest{Caller: p.Caller})
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, l)
}

func (h *handler) adminCancel(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	address := c.Get("address").(domain.Address)

	p := struct {
		ListingId   listing.Id `param:"listingId" validate:"required"`
		HoldbackBPS int64      `json:"holdbackBps"`
	}{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	l, err := h.listing.Cancel(ctx, p.ListingId, &listing.CancelRequest{
		Caller:      address,
		Admin:       true,
		HoldbackBPS: p.HoldbackBPS,
	})
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, l)
}

func (h *handler) activities(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := struct {
		ListingId listing.Id `param:"listingId" validate:"required"`
		Offset    int32      `query:"offset"`
		Limit     int32      `query:"limit" validate:"max=100"`
	}{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if p.Limit == 0 {
		p.Limit = 20
	}

	res, err := h.listing.GetActivities(ctx, p.ListingId, listing.WithActivityPagination(p.Offset, p.Limit))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
