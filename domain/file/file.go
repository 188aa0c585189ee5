package file

import (
	"github.com/mintmarket/goapi/base/ctx"
	"github.com/mintmarket/goapi/service/pinata"
)

// Usecase pins mint assets to ipfs. The returned hash is the CID passed to
// the registry as the token uri.
type Usecase interface {
	Upload(c ctx.Ctx, imgData string, pinOption pinata.PinOptions) (hash string, err error)
	UploadJson(c ctx.Ctx, metadata interface{}, pinOption pinata.PinOptions) (hash string, err error)
}
