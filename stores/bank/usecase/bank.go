package usecase

import (
	"github.com/mintmarket/goapi/base/ctx"
	"github.com/mintmarket/goapi/base/log"
	"github.com/mintmarket/goapi/domain"
	"github.com/mintmarket/goapi/domain/bank"
)

type bankUsecaseImpl struct {
	repo bank.Repo
}

func NewBankUsecase(repo bank.Repo) bank.Usecase {
	return &bankUsecaseImpl{repo}
}

func (im *bankUsecaseImpl) Deposit(ctx ctx.Ctx, caller domain.Address, amount string) error {
	value, err := domain.ParsePositiveAmount(amount)
	if err != nil {
		return err
	}
	if err := im.repo.Credit(ctx, caller, value); err != nil {
		ctx.WithFields(log.Fields{
			"caller": caller,
			"amount": amount,
			"err":    err,
		}).Error("deposit failed")
		return err
	}
	return nil
}

func (im *bankUsecaseImpl) BalanceOf(ctx ctx.Ctx, addr domain.Address) (string, error) {
	balance, err := im.repo.Balance(ctx, addr)
	if err != nil {
		return "", err
	}
	return balance.String(), nil
}
