package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mintmarket/goapi/base/ctx"
	"github.com/mintmarket/goapi/base/delivery"
	"github.com/mintmarket/goapi/domain"
	"github.com/mintmarket/goapi/domain/listing"
	"github.com/mintmarket/goapi/middleware"
	authMiddleware "github.com/mintmarket/goapi/stores/auth/delivery/http/middleware"
)

type handler struct {
	market listing.Usecase
}

func New(e *echo.Echo, market listing.Usecase, authMiddleware *authMiddleware.AuthMiddleware) {
	h := &handler{market}

	g := e.Group("/market")

	g.POST("/listings", h.list, authMiddleware.Auth())

	g.GET("/listings", h.getAll)

	g.GET("/listings/:listingId", h.get, middleware.CacheHttp(30*time.Second))

	g.POST("/listings/:listingId/buy", h.buy, authMiddleware.Auth())

	g.POST("/listings/:listingId/cancel", h.cancel, authMiddleware.Auth())

	g.POST("/listings/:listingId/price", h.updatePrice, authMiddleware.Auth())

	g.GET("/listed/:contract/:tokenId", h.isListed, middleware.IsValidAddress("contract"))

	g.GET("/fee", h.getFee)

	g.POST("/fee", h.updateFee, authMiddleware.Auth())

	g.POST("/withdraw", h.withdrawFees, authMiddleware.Auth())
}

func listingIdParam(c echo.Context) (domain.ListingId, error) {
	v, err := strconv.ParseUint(c.Param("listingId"), 10, 64)
	if err != nil {
		return 0, domain.ErrBadParamInput
	}
	return domain.ListingId(v), nil
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	type params struct {
		NftContract domain.Address `json:"nftContract"`
		TokenId     domain.TokenId `json:"tokenId"`
		Price       string         `json:"price"`
	}
	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	listingId, err := h.market.List(ctx, caller, p.NftContract, p.TokenId, p.Price)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	res := struct {
		ListingId domain.ListingId `json:"listingId"`
	}{listingId}
	return delivery.MakeJsonResp(c, http.StatusCreated, res)
}

func (h *handler) buy(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	id, err := listingIdParam(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	type params struct {
		// Value is the payment in wei; it must equal the listing price.
		Value string `json:"value"`
	}
	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	if err := h.market.Buy(ctx, caller, id, p.Value); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) cancel(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	id, err := listingIdParam(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.market.Cancel(ctx, caller, id); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) updatePrice(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	id, err := listingIdParam(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	type params struct {
		NewPrice string `json:"newPrice"`
	}
	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	if err := h.market.UpdatePrice(ctx, caller, id, p.NewPrice); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	id, err := listingIdParam(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	l, err := h.market.GetListing(ctx, id)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, l)
}

func (h *handler) getAll(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		NftContract *domain.Address `query:"nftContract"`
		Seller      *domain.Address `query:"seller"`
		Active      *bool           `query:"active"`
		Offset      int32           `query:"offset"`
		Limit       int32           `query:"limit"`
	}
	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	opts := []listing.FindAllOptionsFunc{}
	if p.NftContract != nil {
		opts = append(opts, listing.WithNftContract(*p.NftContract))
	}
	if p.Seller != nil {
		opts = append(opts, listing.WithSeller(*p.Seller))
	}
	if p.Active != nil {
		opts = append(opts, listing.WithActive(*p.Active))
	}
	if p.Offset != 0 || p.Limit != 0 {
		opts = append(opts, listing.WithPagination(p.Offset, p.Limit))
	}

	listings, err := h.market.GetAllListings(ctx, opts...)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, listings)
}

func (h *handler) isListed(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	listed, err := h.market.IsListed(ctx, domain.Address(c.Param("contract")), domain.TokenId(c.Param("tokenId")))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	res := struct {
		Listed bool `json:"listed"`
	}{listed}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) getFee(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	fee, err := h.market.GetFee(ctx)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	res := struct {
		FeeBps domain.FeeBps `json:"feeBps"`
	}{fee}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) updateFee(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	type params struct {
		FeeBps domain.FeeBps `json:"feeBps"`
	}
	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	if err := h.market.UpdateFee(ctx, caller, p.FeeBps); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) withdrawFees(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	withdrawn, err := h.market.WithdrawFees(ctx, caller)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	res := struct {
		Withdrawn string `json:"withdrawn"`
	}{withdrawn}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
