package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mintmarket/goapi/base/ctx"
	"github.com/mintmarket/goapi/base/delivery"
	"github.com/mintmarket/goapi/domain"
	"github.com/mintmarket/goapi/domain/token"
	"github.com/mintmarket/goapi/middleware"
	authMiddleware "github.com/mintmarket/goapi/stores/auth/delivery/http/middleware"
)

type handler struct {
	registries map[domain.Address]token.Usecase
}

func New(e *echo.Echo, registries map[domain.Address]token.Usecase, authMiddleware *authMiddleware.AuthMiddleware) {
	lowered := map[domain.Address]token.Usecase{}
	for contract, uc := range registries {
		lowered[contract.ToLower()] = uc
	}
	h := &handler{lowered}

	g := e.Group("/registry/:contract", middleware.IsValidAddress("contract"))

	g.POST("/mint", h.mint, authMiddleware.Auth())

	g.POST("/batch-mint", h.batchMint, authMiddleware.Auth())

	g.POST("/approve-all", h.setApprovalForAll, authMiddleware.Auth())

	g.GET("/tokens", h.getTokens)

	g.GET("/total-supply", h.totalSupply)

	t := e.Group("/registry/:contract/tokens/:tokenId", middleware.IsValidAddress("contract"))

	t.GET("", h.getToken, middleware.CacheHttp(30*time.Second))

	t.POST("/burn", h.burn, authMiddleware.Auth())

	t.POST("/approve", h.approve, authMiddleware.Auth())

	t.POST("/transfer", h.transfer, authMiddleware.Auth())
}

func (h *handler) registryOf(c echo.Context) (token.Usecase, bool) {
	uc, ok := h.registries[domain.Address(c.Param("contract")).ToLower()]
	return uc, ok
}

func (h *handler) tokenId(c echo.Context) token.Id {
	return token.Id{
		Contract: domain.Address(c.Param("contract")),
		TokenId:  domain.TokenId(c.Param("tokenId")),
	}
}

func (h *handler) mint(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	uc, ok := h.registryOf(c)
	if !ok {
		return delivery.MakeJsonResp(c, http.StatusNotFound, "unknown contract")
	}

	type params struct {
		To       domain.Address `json:"to"`
		TokenUri string         `json:"tokenUri"`
	}
	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	tokenId, err := uc.Mint(ctx, caller, p.To, p.TokenUri)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	res := struct {
		TokenId domain.TokenId `json:"tokenId"`
	}{tokenId}
	return delivery.MakeJsonResp(c, http.StatusCreated, res)
}

func (h *handler) batchMint(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	uc, ok := h.registryOf(c)
	if !ok {
		return delivery.MakeJsonResp(c, http.StatusNotFound, "unknown contract")
	}

	type params struct {
		To        domain.Address `json:"to"`
		TokenUris []string       `json:"tokenUris"`
	}
	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	tokenIds, err := uc.BatchMint(ctx, caller, p.To, p.TokenUris)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	res := struct {
		TokenIds []domain.TokenId `json:"tokenIds"`
	}{tokenIds}
	return delivery.MakeJsonResp(c, http.StatusCreated, res)
}

func (h *handler) burn(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	uc, ok := h.registryOf(c)
	if !ok {
		return delivery.MakeJsonResp(c, http.StatusNotFound, "unknown contract")
	}

	if err := uc.Burn(ctx, caller, h.tokenId(c)); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) approve(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	uc, ok := h.registryOf(c)
	if !ok {
		return delivery.MakeJsonResp(c, http.StatusNotFound, "unknown contract")
	}

	type params struct {
		Spender domain.Address `json:"spender"`
	}
	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	if err := uc.Approve(ctx, caller, h.tokenId(c), p.Spender); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) setApprovalForAll(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	uc, ok := h.registryOf(c)
	if !ok {
		return delivery.MakeJsonResp(c, http.StatusNotFound, "unknown contract")
	}

	type params struct {
		Operator domain.Address `json:"operator"`
		Approved bool           `json:"approved"`
	}
	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	if err := uc.SetApprovalForAll(ctx, caller, p.Operator, p.Approved); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) transfer(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	uc, ok := h.registryOf(c)
	if !ok {
		return delivery.MakeJsonResp(c, http.StatusNotFound, "unknown contract")
	}

	type params struct {
		From domain.Address `json:"from"`
		To   domain.Address `json:"to"`
	}
	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	if err := uc.Transfer(ctx, caller, p.From, p.To, h.tokenId(c)); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) getToken(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	uc, ok := h.registryOf(c)
	if !ok {
		return delivery.MakeJsonResp(c, http.StatusNotFound, "unknown contract")
	}

	id := h.tokenId(c)

	exists, err := uc.Exists(ctx, id)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	res := struct {
		Exists   bool           `json:"exists"`
		Owner    domain.Address `json:"owner,omitempty"`
		TokenUri string         `json:"tokenUri,omitempty"`
	}{Exists: exists}

	if exists {
		if res.Owner, err = uc.OwnerOf(ctx, id); err != nil {
			return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
		}
		if res.TokenUri, err = uc.TokenURI(ctx, id); err != nil {
			return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
		}
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) getTokens(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	uc, ok := h.registryOf(c)
	if !ok {
		return delivery.MakeJsonResp(c, http.StatusNotFound, "unknown contract")
	}

	type params struct {
		Owner  *domain.Address `query:"owner"`
		Offset int32           `query:"offset"`
		Limit  int32           `query:"limit"`
	}
	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	opts := []token.FindAllOptionsFunc{}
	if p.Owner != nil {
		opts = append(opts, token.WithOwner(*p.Owner))
	}
	if p.Offset != 0 || p.Limit != 0 {
		opts = append(opts, token.WithPagination(p.Offset, p.Limit))
	}

	tokens, err := uc.FindAll(ctx, opts...)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, tokens)
}

func (h *handler) totalSupply(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	uc, ok := h.registryOf(c)
	if !ok {
		return delivery.MakeJsonResp(c, http.StatusNotFound, "unknown contract")
	}

	supply, err := uc.TotalSupply(ctx)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	res := struct {
		TotalSupply int `json:"totalSupply"`
	}{supply}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
