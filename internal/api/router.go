package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"navhub/pkg/logger"
	"navhub/pkg/serrors"
)

type handler struct {
	deps Deps
}

// newRouter builds the gin engine serving the /api/ routes.
func newRouter(deps Deps, environment string) *gin.Engine {
	if environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	h := &handler{deps: deps}

	api := router.Group("/api")

	api.GET("/categories", h.listCategories)
	api.POST("/categories", h.createCategory)
	api.POST("/categories/reorder", h.reorderCategories)
	api.PUT("/categories/:id", h.updateCategory)
	api.DELETE("/categories/:id", h.deleteCategory)

	api.GET("/websites", h.listWebsites)
	api.POST("/websites", h.createWebsite)
	api.GET("/websites/:id", h.getWebsite)
	api.PUT("/websites/:id", h.updateWebsite)
	api.DELETE("/websites/:id", h.deleteWebsite)
	api.POST("/websites/:id/visit", h.recordVisit)

	api.POST("/ai/analyze-website", h.analyzeWebsite)
	api.POST("/ai/chat", h.chat)

	return router
}

// abortWithError translates a service error into an HTTP status and a JSON
// error body. Unclassified errors are logged and reported as a bare 500.
func abortWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, serrors.ErrBadRequest):
		status = http.StatusBadRequest
	case errors.Is(err, serrors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, serrors.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, serrors.ErrTimeout):
		status = http.StatusGatewayTimeout
	case errors.Is(err, serrors.ErrUnavailable):
		status = http.StatusBadGateway
	}

	if status == http.StatusInternalServerError {
		logger.Error(c.Request.Context(), "request failed", zap.Error(err))
		c.AbortWithStatusJSON(status, gin.H{"error": "internal server error"})

		return
	}

	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
