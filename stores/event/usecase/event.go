package usecase

import (
	"github.com/mintmarket/goapi/base/ctx"
	"github.com/mintmarket/goapi/domain/event"
)

type eventUsecaseImpl struct {
	repo event.Repo
}

func NewEventUsecase(repo event.Repo) event.Usecase {
	return &eventUsecaseImpl{repo}
}

func (im *eventUsecaseImpl) FindAll(ctx ctx.Ctx, opts ...event.FindAllOptionsFunc) ([]*event.Event, error) {
	return im.repo.FindAll(ctx, opts...)
}
