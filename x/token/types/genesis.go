package types

import (
	"fmt"

	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
)

// Balance is one account's holding of one token.
type Balance struct {
	Token   common.Address `json:"token"`
	Account common.Address `json:"account"`
	Amount  math.Int       `json:"amount"`
}

// Allowance is the amount Spender may move out of Owner's balance.
type Allowance struct {
	Token   common.Address `json:"token"`
	Owner   common.Address `json:"owner"`
	Spender common.Address `json:"spender"`
	Amount  math.Int       `json:"amount"`
}

// DeployerNonce is the number of tokens a deployer has created.
type DeployerNonce struct {
	Deployer common.Address `json:"deployer"`
	Nonce    uint64         `json:"nonce"`
}

// GenesisState defines the token module's genesis state.
type GenesisState struct {
	Tokens     []Token         `json:"tokens"`
	Balances   []Balance       `json:"balances"`
	Allowances []Allowance     `json:"allowances"`
	Nonces     []DeployerNonce `json:"nonces"`
}

// DefaultGenesis returns an empty ledger.
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Tokens:     []Token{},
		Balances:   []Balance{},
		Allowances: []Allowance{},
		Nonces:     []DeployerNonce{},
	}
}

// Validate checks that every balance belongs to a known token and that the
// balances of each token add up to its total supply.
func (gs GenesisState) Validate() error {
	supply := make(map[common.Address]math.Int, len(gs.Tokens))
	for _, t := range gs.Tokens {
		if err := t.Validate(); err != nil {
			return err
		}
		if _, ok := supply[t.Address]; ok {
			return fmt.Errorf("duplicate token %s", t.Address.Hex())
		}
		supply[t.Address] = math.ZeroInt()
	}

	for _, b := range gs.Balances {
		sum, ok := supply[b.Token]
		if !ok {
			return ErrTokenNotFound.Wrapf("balance for unknown token %s", b.Token.Hex())
		}
		if b.Amount.IsNil() || b.Amount.IsNegative() {
			return ErrInvalidAmount.Wrapf("negative balance for %s", b.Account.Hex())
		}
		supply[b.Token] = sum.Add(b.Amount)
	}

	for _, t := range gs.Tokens {
		if !supply[t.Address].Equal(t.TotalSupply) {
			return ErrSupplyInvariantBroken.Wrapf("token %s: supply %s, balances %s",
				t.Address.Hex(), t.TotalSupply, supply[t.Address])
		}
	}

	for _, a := range gs.Allowances {
		if _, ok := supply[a.Token]; !ok {
			return ErrTokenNotFound.Wrapf("allowance for unknown token %s", a.Token.Hex())
		}
		if a.Amount.IsNil() || a.Amount.IsNegative() {
			return ErrInvalidAmount.Wrap("negative allowance")
		}
	}
	return nil
}
