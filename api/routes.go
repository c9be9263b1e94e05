package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	s.router.GET("/health", s.handleHealth)
	s.router.GET("/health/ready", s.handleReady)
	s.router.GET("/health/detailed", s.handleHealthDetailed)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := s.router.Group("/api/v1")
	{
		v1.GET("/status", s.handleStatus)
		v1.GET("/params", s.handleGetParams)

		tokens := v1.Group("/tokens")
		{
			tokens.GET("", s.handleGetTokens)
			tokens.POST("", s.handleDeployToken)
			tokens.GET("/:address", s.handleGetToken)
			tokens.GET("/:address/balances/:account", s.handleGetBalance)
			tokens.GET("/:address/allowances/:owner/:spender", s.handleGetAllowance)
			tokens.POST("/:address/mint", s.handleMint)
			tokens.POST("/:address/transfer", s.handleTransfer)
			tokens.POST("/:address/approve", s.handleApprove)
		}

		pools := v1.Group("/pools")
		{
			pools.GET("", s.handleGetPools)
			pools.POST("", s.handleCreatePool)
			pools.POST("/liquidity", s.handleAddLiquidity)
			pools.GET("/:tokenA/:tokenB", s.handleGetPool)
		}

		v1.POST("/swap", s.handleSwap)
		v1.GET("/quote", s.handleQuote)
		v1.GET("/price/:base/:quote", s.handleGetPrice)
	}
}
