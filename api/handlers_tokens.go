package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleDeployToken(c *gin.Context) {
	var req DeployTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	addr, res, err := s.app.DeployToken(c.Request.Context(), req.Deployer, req.Name, req.Symbol, req.Decimals, req.Supply)
	if err != nil {
		writeError(c, err)
		return
	}
	s.replyTx(c, http.StatusCreated, res, DeployTokenResult{Address: addr})
}

func (s *Server) handleGetTokens(c *gin.Context) {
	tokens, err := s.app.Tokens()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tokens)
}

func (s *Server) handleGetToken(c *gin.Context) {
	addrs, ok := pathAddresses(c, "address")
	if !ok {
		return
	}
	token, err := s.app.Token(addrs[0])
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, token)
}

func (s *Server) handleGetBalance(c *gin.Context) {
	addrs, ok := pathAddresses(c, "address", "account")
	if !ok {
		return
	}
	balance, err := s.app.Balance(addrs[0], addrs[1])
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, BalanceResponse{Token: addrs[0], Account: addrs[1], Balance: balance})
}

func (s *Server) handleGetAllowance(c *gin.Context) {
	addrs, ok := pathAddresses(c, "address", "owner", "spender")
	if !ok {
		return
	}
	allowance, err := s.app.Allowance(addrs[0], addrs[1], addrs[2])
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, AllowanceResponse{Token: addrs[0], Owner: addrs[1], Spender: addrs[2], Allowance: allowance})
}

func (s *Server) handleMint(c *gin.Context) {
	addrs, ok := pathAddresses(c, "address")
	if !ok {
		return
	}
	var req MintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	res, err := s.app.MintToken(c.Request.Context(), req.Caller, addrs[0], req.To, req.Amount)
	if err != nil {
		writeError(c, err)
		return
	}
	s.replyTx(c, http.StatusOK, res, nil)
}

func (s *Server) handleTransfer(c *gin.Context) {
	addrs, ok := pathAddresses(c, "address")
	if !ok {
		return
	}
	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	res, err := s.app.TransferToken(c.Request.Context(), addrs[0], req.From, req.To, req.Amount)
	if err != nil {
		writeError(c, err)
		return
	}
	s.replyTx(c, http.StatusOK, res, nil)
}

func (s *Server) handleApprove(c *gin.Context) {
	addrs, ok := pathAddresses(c, "address")
	if !ok {
		return
	}
	var req ApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	res, err := s.app.ApproveToken(c.Request.Context(), addrs[0], req.Owner, req.Spender, req.Amount)
	if err != nil {
		writeError(c, err)
		return
	}
	s.replyTx(c, http.StatusOK, res, nil)
}
