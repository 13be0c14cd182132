package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/proxycast/claude-provider/version"
)

// serveHTTP exposes the same JSON-RPC dispatch over HTTP: one request per
// POST /rpc body, plus a health endpoint. Intended as a sidecar/debug
// surface; stdio remains the primary transport.
func (s *rpcServer) serveHTTP(addr string) error {
	if !s.eng.cfg.Base.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "ok",
			"version":     version.Short(),
			"credentials": s.eng.manager.Store().Len(),
		})
	})

	router.POST("/rpc", func(c *gin.Context) {
		var req rpcRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, errorResponse(nil, codeParseError, "Parse error: "+err.Error(), nil))
			return
		}
		c.JSON(http.StatusOK, s.handle(c.Request.Context(), req))
	})

	s.log.Info("serving JSON-RPC over HTTP", map[string]any{"addr": addr})
	return router.Run(addr)
}
