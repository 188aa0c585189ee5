package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mintmarket/goapi/base/ctx"
	"github.com/mintmarket/goapi/base/delivery"
	"github.com/mintmarket/goapi/domain"
	"github.com/mintmarket/goapi/domain/event"
)

type handler struct {
	event event.Usecase
}

func New(e *echo.Echo, event event.Usecase) {
	h := &handler{event}

	e.GET("/events", h.getAll)
}

func (h *handler) getAll(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Type        *string         `query:"type"`
		NftContract *domain.Address `query:"nftContract"`
		TokenId     *domain.TokenId `query:"tokenId"`
		ListingId   *string         `query:"listingId"`
		Offset      int32           `query:"offset"`
		Limit       int32           `query:"limit"`
	}
	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	opts := []event.FindAllOptionsFunc{}
	if p.Type != nil {
		opts = append(opts, event.WithType(event.Type(*p.Type)))
	}
	if p.NftContract != nil && p.TokenId != nil {
		opts = append(opts, event.WithToken(*p.NftContract, *p.TokenId))
	}
	if p.ListingId != nil {
		id, err := strconv.ParseUint(*p.ListingId, 10, 64)
		if err != nil {
			return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
		}
		opts = append(opts, event.WithListingId(domain.ListingId(id)))
	}
	if p.Offset != 0 || p.Limit != 0 {
		opts = append(opts, event.WithPagination(p.Offset, p.Limit))
	}

	events, err := h.event.FindAll(ctx, opts...)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, events)
}
