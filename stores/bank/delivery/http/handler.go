package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mintmarket/goapi/base/ctx"
	"github.com/mintmarket/goapi/base/delivery"
	"github.com/mintmarket/goapi/domain"
	"github.com/mintmarket/goapi/domain/bank"
	"github.com/mintmarket/goapi/middleware"
	authMiddleware "github.com/mintmarket/goapi/stores/auth/delivery/http/middleware"
)

type handler struct {
	bank bank.Usecase
}

func New(e *echo.Echo, bank bank.Usecase, authMiddleware *authMiddleware.AuthMiddleware) {
	h := &handler{bank}

	g := e.Group("/bank")

	g.POST("/deposit", h.deposit, authMiddleware.Auth())

	g.GET("/balance/:address", h.balanceOf, middleware.IsValidAddress("address"))
}

func (h *handler) deposit(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	type params struct {
		// Amount in wei, decimal string
		Amount string `json:"amount"`
	}
	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	if err := h.bank.Deposit(ctx, caller, p.Amount); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, "ok")
}

func (h *handler) balanceOf(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	balance, err := h.bank.BalanceOf(ctx, domain.Address(c.Param("address")))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	res := struct {
		Address domain.Address `json:"address"`
		Amount  string         `json:"amount"`
		Display string         `json:"display"`
	}{
		Address: domain.Address(c.Param("address")).ToLower(),
		Amount:  balance,
		Display: domain.DisplayAmount(balance),
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
