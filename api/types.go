package api

import (
	"encoding/json"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common"

	"github.com/simpledex/simpledex/app"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string `json:"error"`
	Codespace string `json:"codespace,omitempty"`
	Code      uint32 `json:"code,omitempty"`
}

// Attribute is a single event attribute.
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Event mirrors an sdk.Event in JSON.
type Event struct {
	Type       string      `json:"type"`
	Attributes []Attribute `json:"attributes"`
}

// TxResponse is returned by every mutating endpoint.
type TxResponse struct {
	Height int64           `json:"height"`
	Events []Event         `json:"events"`
	Result json.RawMessage `json:"result,omitempty"`
}

// StatusResponse describes the committed ledger.
type StatusResponse struct {
	ChainID        string    `json:"chain_id"`
	Height         int64     `json:"height"`
	AppHash        string    `json:"app_hash"`
	LastCommitTime time.Time `json:"last_commit_time"`
}

// ==================== Token Types ====================

type DeployTokenRequest struct {
	Deployer common.Address `json:"deployer"`
	Name     string         `json:"name"`
	Symbol   string         `json:"symbol"`
	Decimals uint8          `json:"decimals"`
	Supply   math.Int       `json:"supply"`
}

type DeployTokenResult struct {
	Address common.Address `json:"address"`
}

// MintRequest mints to To. Caller must own the token.
type MintRequest struct {
	Caller common.Address `json:"caller"`
	To     common.Address `json:"to"`
	Amount math.Int       `json:"amount"`
}

type TransferRequest struct {
	From   common.Address `json:"from"`
	To     common.Address `json:"to"`
	Amount math.Int       `json:"amount"`
}

type ApproveRequest struct {
	Owner   common.Address `json:"owner"`
	Spender common.Address `json:"spender"`
	Amount  math.Int       `json:"amount"`
}

type BalanceResponse struct {
	Token   common.Address `json:"token"`
	Account common.Address `json:"account"`
	Balance math.Int       `json:"balance"`
}

type AllowanceResponse struct {
	Token     common.Address `json:"token"`
	Owner     common.Address `json:"owner"`
	Spender   common.Address `json:"spender"`
	Allowance math.Int       `json:"allowance"`
}

// ==================== DEX Types ====================

// PriceResponse carries the raw 18-decimal fixed point price and the same
// value as a decimal.
type PriceResponse struct {
	Base     common.Address `json:"base"`
	Quote    common.Address `json:"quote"`
	Price    math.Int       `json:"price"`
	PriceDec math.LegacyDec `json:"price_dec"`
}

func newTxResponse(res app.Result, result interface{}) (TxResponse, error) {
	resp := TxResponse{Height: res.Height, Events: convertEvents(res.Events)}
	if result != nil {
		bz, err := json.Marshal(result)
		if err != nil {
			return TxResponse{}, err
		}
		resp.Result = bz
	}
	return resp, nil
}

func convertEvents(events sdk.Events) []Event {
	out := make([]Event, 0, len(events))
	for _, ev := range events {
		e := Event{Type: ev.Type, Attributes: make([]Attribute, 0, len(ev.Attributes))}
		for _, attr := range ev.Attributes {
			e.Attributes = append(e.Attributes, Attribute{Key: attr.Key, Value: attr.Value})
		}
		out = append(out, e)
	}
	return out
}

// Attribute returns the value of the first attribute named key on the first
// event of type eventType.
func (r TxResponse) Attribute(eventType, key string) (string, bool) {
	for _, ev := range r.Events {
		if ev.Type != eventType {
			continue
		}
		for _, attr := range ev.Attributes {
			if attr.Key == key {
				return attr.Value, true
			}
		}
	}
	return "", false
}
