package handler

import (
	"net/http"
	"strconv"
	"strings"

	"reviewhub/internal/authz"
	"reviewhub/internal/microservices/http-api/dto"
	"reviewhub/internal/microservices/http-api/repository"
	"reviewhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type TitleHandler struct {
	svc service.TitleService
}

func NewTitleHandler(s service.TitleService) *TitleHandler {
	return &TitleHandler{svc: s}
}

func (h *TitleHandler) RegisterRoutes(router *gin.RouterGroup, g Guards) {
	admin := g.Require(authz.ObjTitles, authz.ActWrite)

	titles := router.Group("/titles")
	{
		titles.GET("", h.List)
		titles.GET("/:title_id", h.Get)
		titles.POST("", with(admin, h.Create)...)
		titles.PATCH("/:title_id", with(admin, h.Update)...)
		titles.DELETE("/:title_id", with(admin, h.Delete)...)
	}
}

// List supports ?category=&genre= (slugs), ?name= (contains) and ?year=
// GET /api/v1/titles
func (h *TitleHandler) List(c *gin.Context) {
	filter := repository.TitleFilter{
		Category: c.Query("category"),
		Genre:    c.Query("genre"),
		Name:     strings.TrimSpace(c.Query("name")),
	}
	if raw := c.Query("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error:  "invalid filter",
				Fields: map[string]string{"year": "enter a whole number"},
			})
			return
		}
		filter.Year = &year
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	list, err := h.svc.List(ctx, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/v1/titles/:title_id
func (h *TitleHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "title_id", "title")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	title, err := h.svc.Get(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, title)
}

// POST /api/v1/titles
func (h *TitleHandler) Create(c *gin.Context) {
	var req dto.CreateTitleDTO
	if !bindJSON(c, &req) {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	title, err := h.svc.Create(ctx, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, title)
}

// PATCH /api/v1/titles/:title_id
func (h *TitleHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "title_id", "title")
	if !ok {
		return
	}
	var req dto.UpdateTitleDTO
	if !bindJSON(c, &req) {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	title, err := h.svc.Update(ctx, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, title)
}

// DELETE /api/v1/titles/:title_id
func (h *TitleHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "title_id", "title")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.svc.Delete(ctx, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
