package usecase

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/mintmarket/goapi/base/ctx"
	"github.com/mintmarket/goapi/service/pinata"
	pinataMocks "github.com/mintmarket/goapi/service/pinata/mocks"
)

var (
	mockCtx = ctx.Background()

	// 1x1 transparent png
	pngImgData = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mP8z8BQDwAEhQGAhKmMIQAAAABJRU5ErkJggg=="
	// base64 of "hello world"
	textImgData = "data:image/png;base64,aGVsbG8gd29ybGQ="
)

type testsuite struct {
	suite.Suite
	pinata *pinataMocks.Service
	im     *impl
}

func (ts *testsuite) SetupTest() {
	ts.pinata = &pinataMocks.Service{}
	ts.im = New(ts.pinata).(*impl)
}

func (ts *testsuite) TearDownTest() {
	ts.pinata.AssertExpectations(ts.T())
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (ts *testsuite) TestUpload() {
	ts.pinata.On("Pin", mockCtx, mock.Anything, "png").Return("QmPinnedHash", nil).Once()

	hash, err := ts.im.Upload(mockCtx, pngImgData, pinata.PinOptions{})
	ts.NoError(err)
	ts.Equal("QmPinnedHash", hash)
}

func (ts *testsuite) TestUploadRejectsWrongPrefix() {
	_, err := ts.im.Upload(mockCtx, "nonsense", pinata.PinOptions{})
	ts.Error(err)
}

func (ts *testsuite) TestUploadRejectsNonImagePayload() {
	// header claims png but the decoded bytes are plain text
	_, err := ts.im.Upload(mockCtx, textImgData, pinata.PinOptions{})
	ts.Error(err)
}

func (ts *testsuite) TestUploadJson() {
	metadata := map[string]interface{}{"name": "token #1"}

	ts.pinata.On("PinJson", mockCtx, metadata).Return("QmMetadataHash", nil).Once()

	hash, err := ts.im.UploadJson(mockCtx, metadata, pinata.PinOptions{})
	ts.NoError(err)
	ts.Equal("QmMetadataHash", hash)
}
