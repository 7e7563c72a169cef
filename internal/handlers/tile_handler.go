package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ArAversi0/TaskTalk/internal/services"
)

// TileHandler обрабатывает CRUD плиток главной страницы
type TileHandler struct {
	svc services.TileService
}

// NewTileHandler создает новый обработчик плиток
func NewTileHandler(svc services.TileService) *TileHandler {
	return &TileHandler{svc: svc}
}

// TileRequest представляет запрос создания плитки
type TileRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

// UpdateTileRequest частичное обновление плитки
type UpdateTileRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

func (h *TileHandler) List(c *gin.Context) {
	tiles, err := h.svc.List()
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, tiles)
}

func (h *TileHandler) Create(c *gin.Context) {
	var req TileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, bindingErrors(err))
		return
	}
	tile, err := h.svc.Create(req.Title, req.Description)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, tile)
}

func (h *TileHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tile id"})
		return
	}
	tile, err := h.svc.Get(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, tile)
}

func (h *TileHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tile id"})
		return
	}
	var req UpdateTileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, bindingErrors(err))
		return
	}
	tile, err := h.svc.Update(id, req.Title, req.Description)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, tile)
}

func (h *TileHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tile id"})
		return
	}
	if err := h.svc.Delete(id); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
