package api

import (
	"github.com/LambdaTest/covgate/pkg/api/check"
	"github.com/LambdaTest/covgate/pkg/api/health"
	"github.com/LambdaTest/covgate/pkg/lumber"
	"github.com/gin-gonic/gin"
)

// Router for covgate
type Router struct {
	logger       lumber.Logger
	maxBodyBytes int64
}

// NewRouter returns instance of Router
func NewRouter(logger lumber.Logger, maxBodyBytes int64) Router {
	return Router{
		logger:       logger,
		maxBodyBytes: maxBodyBytes,
	}
}

// Handler function will perform all route operations
func (r Router) Handler() *gin.Engine {
	r.logger.Infof("Setting up routes")
	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/health", health.Handler)
	router.POST("/v1/check", check.Handler(r.logger, r.maxBodyBytes))

	return router
}
