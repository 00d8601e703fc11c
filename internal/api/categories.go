package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"navhub/pkg/domain"
	"navhub/pkg/storage"
)

type createCategoryRequest struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

type updateCategoryRequest struct {
	Name *string `json:"name"`
	Icon *string `json:"icon"`
}

type reorderCategoriesRequest struct {
	CategoryIDs []domain.CategoryID `json:"categoryIds"`
}

func (h *handler) listCategories(c *gin.Context) {
	categories, err := h.deps.Catalog.Categories(c.Request.Context())
	if err != nil {
		abortWithError(c, err)

		return
	}

	c.JSON(http.StatusOK, categories)
}

func (h *handler) createCategory(c *gin.Context) {
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})

		return
	}

	category, err := h.deps.Catalog.CreateCategory(c.Request.Context(), req.Name, req.Icon)
	if err != nil {
		abortWithError(c, err)

		return
	}

	c.JSON(http.StatusCreated, category)
}

func (h *handler) updateCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req updateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})

		return
	}

	category, err := h.deps.Catalog.UpdateCategory(c.Request.Context(), id, storage.CategoryUpdates{
		Name: req.Name,
		Icon: req.Icon,
	})
	if err != nil {
		abortWithError(c, err)

		return
	}

	c.JSON(http.StatusOK, category)
}

func (h *handler) deleteCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.deps.Catalog.DeleteCategory(c.Request.Context(), id); err != nil {
		abortWithError(c, err)

		return
	}

	c.Status(http.StatusNoContent)
}

func (h *handler) reorderCategories(c *gin.Context) {
	var req reorderCategoriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})

		return
	}

	if err := h.deps.Catalog.ReorderCategories(c.Request.Context(), req.CategoryIDs); err != nil {
		abortWithError(c, err)

		return
	}

	c.Status(http.StatusNoContent)
}

// pathID parses the :id path parameter; on failure it writes a 400 response
// itself and reports false.
func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})

		return uuid.Nil, false
	}

	return id, true
}
