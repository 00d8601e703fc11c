package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"navhub/internal/catalog"
	"navhub/pkg/domain"
	"navhub/pkg/storage"
)

type createWebsiteRequest struct {
	URL         string            `json:"url"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	CategoryID  domain.CategoryID `json:"categoryId"`
	Tags        []string          `json:"tags"`
	Favicon     string            `json:"favicon"`
}

type updateWebsiteRequest struct {
	URL         *string            `json:"url"`
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	CategoryID  *domain.CategoryID `json:"categoryId"`
	Tags        *[]string          `json:"tags"`
	Favicon     *string            `json:"favicon"`
}

func (h *handler) listWebsites(c *gin.Context) {
	var filter storage.WebsiteFilter
	if raw := c.Query("categoryId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid categoryId"})

			return
		}
		filter.CategoryID = &id
	}
	filter.Search = c.Query("search")

	websites, err := h.deps.Catalog.Websites(c.Request.Context(), filter)
	if err != nil {
		abortWithError(c, err)

		return
	}

	c.JSON(http.StatusOK, websites)
}

func (h *handler) getWebsite(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	website, err := h.deps.Catalog.Website(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)

		return
	}

	c.JSON(http.StatusOK, website)
}

func (h *handler) createWebsite(c *gin.Context) {
	var req createWebsiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})

		return
	}

	website, err := h.deps.Catalog.CreateWebsite(c.Request.Context(), catalog.WebsiteInput{
		URL:         req.URL,
		Title:       req.Title,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		Tags:        req.Tags,
		Favicon:     req.Favicon,
	})
	if err != nil {
		abortWithError(c, err)

		return
	}

	c.JSON(http.StatusCreated, website)
}

func (h *handler) updateWebsite(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req updateWebsiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})

		return
	}

	website, err := h.deps.Catalog.UpdateWebsite(c.Request.Context(), id, storage.WebsiteUpdates{
		URL:         req.URL,
		Title:       req.Title,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		Tags:        req.Tags,
		Favicon:     req.Favicon,
	})
	if err != nil {
		abortWithError(c, err)

		return
	}

	c.JSON(http.StatusOK, website)
}

func (h *handler) deleteWebsite(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.deps.Catalog.DeleteWebsite(c.Request.Context(), id); err != nil {
		abortWithError(c, err)

		return
	}

	c.Status(http.StatusNoContent)
}

func (h *handler) recordVisit(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	website, err := h.deps.Catalog.RecordVisit(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)

		return
	}

	c.JSON(http.StatusOK, website)
}
