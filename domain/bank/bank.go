package bank

import (
	"math/big"

	"github.com/mintmarket/goapi/base/ctx"
	"github.com/mintmarket/goapi/domain"
)

// Balance is one account's native-currency holding, wei as decimal string.
type Balance struct {
	Address domain.Address `json:"address" bson:"address"`
	Amount  string         `json:"amount" bson:"amount"`
}

type Repo interface {
	// Balance returns zero for unknown addresses.
	Balance(c ctx.Ctx, addr domain.Address) (*big.Int, error)
	// Credit adds amount to addr's balance, creating the account if needed.
	Credit(c ctx.Ctx, addr domain.Address, amount *big.Int) error
	// Debit subtracts amount; fails with InsufficientFunds when the balance
	// does not cover it.
	Debit(c ctx.Ctx, addr domain.Address, amount *big.Int) error
}

type Usecase interface {
	// Deposit is the unsolicited-transfer analog: it credits the caller
	// without any precondition.
	Deposit(c ctx.Ctx, caller domain.Address, amount string) error
	BalanceOf(c ctx.Ctx, addr domain.Address) (string, error)
}
