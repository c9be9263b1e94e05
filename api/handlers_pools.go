package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/simpledex/simpledex/app"
	dextypes "github.com/simpledex/simpledex/x/dex/types"
)

func (s *Server) handleCreatePool(c *gin.Context) {
	var msg dextypes.MsgCreatePool
	if err := c.ShouldBindJSON(&msg); err != nil {
		badRequest(c, err)
		return
	}

	resp, res, err := s.app.CreatePool(c.Request.Context(), &msg)
	if err != nil {
		writeError(c, err)
		return
	}
	s.replyTx(c, http.StatusCreated, res, resp)
}

func (s *Server) handleAddLiquidity(c *gin.Context) {
	var msg dextypes.MsgAddLiquidity
	if err := c.ShouldBindJSON(&msg); err != nil {
		badRequest(c, err)
		return
	}

	resp, res, err := s.app.AddLiquidity(c.Request.Context(), &msg)
	if err != nil {
		writeError(c, err)
		return
	}
	s.replyTx(c, http.StatusOK, res, resp)
}

func (s *Server) handleGetPools(c *gin.Context) {
	pools, err := s.app.Pools()
	if err != nil {
		writeError(c, err)
		return
	}
	if pools == nil {
		pools = []dextypes.Pool{}
	}
	c.JSON(http.StatusOK, pools)
}

// handleGetPool looks a pool up by its pair, in either order.
func (s *Server) handleGetPool(c *gin.Context) {
	addrs, ok := pathAddresses(c, "tokenA", "tokenB")
	if !ok {
		return
	}
	pool, err := s.app.Pool(addrs[0], addrs[1])
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, pool)
}

func (s *Server) handleGetParams(c *gin.Context) {
	params, err := s.app.Params()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, params)
}

func (s *Server) replyTx(c *gin.Context, status int, res app.Result, result interface{}) {
	resp, err := newTxResponse(res, result)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(status, resp)
}
