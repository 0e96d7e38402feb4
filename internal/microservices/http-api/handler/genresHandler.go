package handler

import (
	"net/http"

	"reviewhub/internal/authz"
	"reviewhub/internal/microservices/http-api/dto"
	"reviewhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type GenreHandler struct {
	svc service.GenreService
}

func NewGenreHandler(s service.GenreService) *GenreHandler {
	return &GenreHandler{svc: s}
}

func (h *GenreHandler) RegisterRoutes(router *gin.RouterGroup, g Guards) {
	admin := g.Require(authz.ObjGenres, authz.ActWrite)

	genres := router.Group("/genres")
	{
		genres.GET("", h.List)
		genres.POST("", with(admin, h.Create)...)
		genres.DELETE("/:slug", with(admin, h.Delete)...)
	}
}

// GET /api/v1/genres?search=
func (h *GenreHandler) List(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	list, err := h.svc.List(ctx, c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// POST /api/v1/genres
func (h *GenreHandler) Create(c *gin.Context) {
	var req dto.CreateGenreDTO
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

// DELETE /api/v1/genres/:slug
func (h *GenreHandler) Delete(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.svc.Delete(ctx, c.Param("slug")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
