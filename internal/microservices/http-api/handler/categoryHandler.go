package handler

import (
	"net/http"

	"reviewhub/internal/authz"
	"reviewhub/internal/microservices/http-api/dto"
	"reviewhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	svc service.CategoryService
}

func NewCategoryHandler(s service.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: s}
}

func (h *CategoryHandler) RegisterRoutes(router *gin.RouterGroup, g Guards) {
	admin := g.Require(authz.ObjCategories, authz.ActWrite)

	categories := router.Group("/categories")
	{
		categories.GET("", h.List)
		categories.POST("", with(admin, h.Create)...)
		categories.DELETE("/:slug", with(admin, h.Delete)...)
	}
}

// GET /api/v1/categories?search=
func (h *CategoryHandler) List(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	list, err := h.svc.List(ctx, c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// POST /api/v1/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CreateCategoryDTO
	if !bindJSON(c, &req) {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	created, err := h.svc.Create(ctx, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// DELETE /api/v1/categories/:slug
func (h *CategoryHandler) Delete(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.svc.Delete(ctx, c.Param("slug")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
