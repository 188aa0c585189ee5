package delivery

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mintmarket/goapi/domain"
	"github.com/mintmarket/goapi/service/query"
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

// statusOf maps a ledger error kind to an HTTP status. Authorization kinds
// become 403, validation kinds 400, state conflicts 409.
func statusOf(err *domain.Error, fallback int) int {
	switch err.Kind {
	case domain.KindUnauthorized, domain.KindNotOwner, domain.KindNotSeller, domain.KindNotAuthorized:
		return http.StatusForbidden
	case domain.KindInvalidRecipient, domain.KindInvalidMetadata, domain.KindInvalidPrice,
		domain.KindEmptyBatch, domain.KindBatchTooLarge, domain.KindFeeTooHigh, domain.KindBadParamInput:
		return http.StatusBadRequest
	case domain.KindAlreadyListed, domain.KindListingNotActive, domain.KindSellerNoLongerOwns,
		domain.KindNotApproved, domain.KindIncorrectPayment, domain.KindCannotBuySelf,
		domain.KindNoFeesToWithdraw, domain.KindInsufficientFunds:
		return http.StatusConflict
	case domain.KindNonexistentToken, domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindInternal:
		return http.StatusInternalServerError
	}
	return fallback
}

func MakeJsonResp(c echo.Context, status int, data interface{}) error {
	if err, ok := data.(error); ok {
		var de *domain.Error
		if errors.As(err, &de) {
			status = statusOf(de, status)
			data = de
		} else if errors.Is(err, query.ErrNotFound) {
			status = http.StatusNotFound
			data = err.Error()
		} else {
			data = err.Error()
		}
	}

	if status >= 400 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusFail})
	}

	if status >= 200 && status < 300 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusSuccess})
	}

	return c.JSON(status, data)
}
