package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	dextypes "github.com/simpledex/simpledex/x/dex/types"
)

func (s *Server) handleSwap(c *gin.Context) {
	var msg dextypes.MsgSwap
	if err := c.ShouldBindJSON(&msg); err != nil {
		badRequest(c, err)
		return
	}

	resp, res, err := s.app.Swap(c.Request.Context(), &msg)
	if err != nil {
		writeError(c, err)
		return
	}
	s.replyTx(c, http.StatusOK, res, resp)
}

// handleQuote simulates a swap against committed reserves.
func (s *Server) handleQuote(c *gin.Context) {
	tokenIn, err := ParseAddress(c.Query("token_in"))
	if err != nil {
		writeError(c, err)
		return
	}
	tokenOut, err := ParseAddress(c.Query("token_out"))
	if err != nil {
		writeError(c, err)
		return
	}
	amountIn, err := ParseAmount(c.Query("amount_in"))
	if err != nil {
		writeError(c, err)
		return
	}

	quote, err := s.app.Quote(tokenIn, tokenOut, amountIn)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

func (s *Server) handleGetPrice(c *gin.Context) {
	addrs, ok := pathAddresses(c, "base", "quote")
	if !ok {
		return
	}
	raw, dec, err := s.app.Price(addrs[0], addrs[1])
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, PriceResponse{Base: addrs[0], Quote: addrs[1], Price: raw, PriceDec: dec})
}
