package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mintmarket/goapi/base/ctx"
	"github.com/mintmarket/goapi/base/delivery"
	"github.com/mintmarket/goapi/domain/file"
	"github.com/mintmarket/goapi/service/pinata"
	authMiddleware "github.com/mintmarket/goapi/stores/auth/delivery/http/middleware"
)

type handler struct {
	file file.Usecase
}

func New(e *echo.Echo, file file.Usecase, authMiddleware *authMiddleware.AuthMiddleware) {
	h := &handler{file}

	g := e.Group("/files")
	g.POST("/image", h.uploadImage, authMiddleware.Auth())
	g.POST("/metadata", h.uploadMetadata, authMiddleware.Auth())
}

func (h *handler) uploadImage(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		// ImgData is a data:image/...;base64, payload
		ImgData string `json:"imgData"`
		Name    string `json:"name"`
	}
	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	hash, err := h.file.Upload(ctx, p.ImgData, pinata.PinOptions{
		Metadata: &pinata.PinataMetadata{Name: p.Name},
	})
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	res := struct {
		Cid string `json:"cid"`
	}{hash}
	return delivery.MakeJsonResp(c, http.StatusCreated, res)
}

func (h *handler) uploadMetadata(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Image       string `json:"image"`
	}
	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	hash, err := h.file.UploadJson(ctx, p, pinata.PinOptions{
		Metadata: &pinata.PinataMetadata{Name: p.Name},
	})
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	res := struct {
		Cid string `json:"cid"`
	}{hash}
	return delivery.MakeJsonResp(c, http.StatusCreated, res)
}
