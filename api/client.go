package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"

	dextypes "github.com/simpledex/simpledex/x/dex/types"
	tokentypes "github.com/simpledex/simpledex/x/token/types"
)

// Error is a non-2xx reply from the API.
type Error struct {
	StatusCode int
	ErrorResponse
}

func (e *Error) Error() string {
	if e.Codespace != "" {
		return fmt.Sprintf("%s (codespace %s, code %d, http %d)", e.ErrorResponse.Error, e.Codespace, e.Code, e.StatusCode)
	}
	return fmt.Sprintf("%s (http %d)", e.ErrorResponse.Error, e.StatusCode)
}

// Client talks to a dexd API server.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a client for the node at baseURL, e.g.
// http://127.0.0.1:1317.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) Status(ctx context.Context) (StatusResponse, error) {
	var out StatusResponse
	return out, c.get(ctx, "/api/v1/status", nil, &out)
}

func (c *Client) Params(ctx context.Context) (dextypes.Params, error) {
	var out dextypes.Params
	return out, c.get(ctx, "/api/v1/params", nil, &out)
}

func (c *Client) Tokens(ctx context.Context) ([]tokentypes.Token, error) {
	var out []tokentypes.Token
	return out, c.get(ctx, "/api/v1/tokens", nil, &out)
}

func (c *Client) Token(ctx context.Context, token common.Address) (tokentypes.Token, error) {
	var out tokentypes.Token
	return out, c.get(ctx, "/api/v1/tokens/"+token.Hex(), nil, &out)
}

func (c *Client) Balance(ctx context.Context, token, account common.Address) (BalanceResponse, error) {
	var out BalanceResponse
	return out, c.get(ctx, fmt.Sprintf("/api/v1/tokens/%s/balances/%s", token.Hex(), account.Hex()), nil, &out)
}

func (c *Client) Allowance(ctx context.Context, token, owner, spender common.Address) (AllowanceResponse, error) {
	var out AllowanceResponse
	path := fmt.Sprintf("/api/v1/tokens/%s/allowances/%s/%s", token.Hex(), owner.Hex(), spender.Hex())
	return out, c.get(ctx, path, nil, &out)
}

// DeployToken returns the new token address along with the transaction.
func (c *Client) DeployToken(ctx context.Context, req DeployTokenRequest) (common.Address, TxResponse, error) {
	var (
		tx     TxResponse
		result DeployTokenResult
	)
	if err := c.post(ctx, "/api/v1/tokens", req, &tx); err != nil {
		return common.Address{}, tx, err
	}
	if err := json.Unmarshal(tx.Result, &result); err != nil {
		return common.Address{}, tx, fmt.Errorf("decode deploy result: %w", err)
	}
	return result.Address, tx, nil
}

func (c *Client) Mint(ctx context.Context, token common.Address, req MintRequest) (TxResponse, error) {
	var tx TxResponse
	return tx, c.post(ctx, "/api/v1/tokens/"+token.Hex()+"/mint", req, &tx)
}

func (c *Client) Transfer(ctx context.Context, token common.Address, req TransferRequest) (TxResponse, error) {
	var tx TxResponse
	return tx, c.post(ctx, "/api/v1/tokens/"+token.Hex()+"/transfer", req, &tx)
}

func (c *Client) Approve(ctx context.Context, token common.Address, req ApproveRequest) (TxResponse, error) {
	var tx TxResponse
	return tx, c.post(ctx, "/api/v1/tokens/"+token.Hex()+"/approve", req, &tx)
}

func (c *Client) CreatePool(ctx context.Context, msg *dextypes.MsgCreatePool) (dextypes.MsgCreatePoolResponse, TxResponse, error) {
	var resp dextypes.MsgCreatePoolResponse
	tx, err := c.postTx(ctx, "/api/v1/pools", msg, &resp)
	return resp, tx, err
}

func (c *Client) AddLiquidity(ctx context.Context, msg *dextypes.MsgAddLiquidity) (dextypes.MsgAddLiquidityResponse, TxResponse, error) {
	var resp dextypes.MsgAddLiquidityResponse
	tx, err := c.postTx(ctx, "/api/v1/pools/liquidity", msg, &resp)
	return resp, tx, err
}

func (c *Client) Swap(ctx context.Context, msg *dextypes.MsgSwap) (dextypes.MsgSwapResponse, TxResponse, error) {
	var resp dextypes.MsgSwapResponse
	tx, err := c.postTx(ctx, "/api/v1/swap", msg, &resp)
	return resp, tx, err
}

func (c *Client) Pools(ctx context.Context) ([]dextypes.Pool, error) {
	var out []dextypes.Pool
	return out, c.get(ctx, "/api/v1/pools", nil, &out)
}

func (c *Client) Pool(ctx context.Context, tokenA, tokenB common.Address) (dextypes.Pool, error) {
	var out dextypes.Pool
	return out, c.get(ctx, fmt.Sprintf("/api/v1/pools/%s/%s", tokenA.Hex(), tokenB.Hex()), nil, &out)
}

func (c *Client) Price(ctx context.Context, base, quote common.Address) (PriceResponse, error) {
	var out PriceResponse
	return out, c.get(ctx, fmt.Sprintf("/api/v1/price/%s/%s", base.Hex(), quote.Hex()), nil, &out)
}

func (c *Client) Quote(ctx context.Context, tokenIn, tokenOut common.Address, amountIn math.Int) (dextypes.SwapQuote, error) {
	var out dextypes.SwapQuote
	query := url.Values{}
	query.Set("token_in", tokenIn.Hex())
	query.Set("token_out", tokenOut.Hex())
	query.Set("amount_in", amountIn.String())
	return out, c.get(ctx, "/api/v1/quote", query, &out)
}

func (c *Client) postTx(ctx context.Context, path string, body, result interface{}) (TxResponse, error) {
	var tx TxResponse
	if err := c.post(ctx, path, body, &tx); err != nil {
		return tx, err
	}
	if err := json.Unmarshal(tx.Result, result); err != nil {
		return tx, fmt.Errorf("decode result: %w", err)
	}
	return tx, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	bz, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(bz))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bz, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &Error{StatusCode: resp.StatusCode}
		if err := json.Unmarshal(bz, &apiErr.ErrorResponse); err != nil || apiErr.ErrorResponse.Error == "" {
			apiErr.ErrorResponse.Error = strings.TrimSpace(string(bz))
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(bz, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
