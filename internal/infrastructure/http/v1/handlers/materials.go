package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"locafest/internal/domain/material"
	"locafest/internal/infrastructure/files"
	"locafest/internal/infrastructure/http/v1/dto"
)

// MaterialHandler serves the inventory ledger.
type MaterialHandler struct {
	*BaseHandler
	materials *material.Service
	images    *files.Store
}

func NewMaterialHandler(base *BaseHandler, materials *material.Service, images *files.Store) *MaterialHandler {
	return &MaterialHandler{BaseHandler: base, materials: materials, images: images}
}

func (h *MaterialHandler) Create(c *gin.Context) {
	var req dto.CreateMaterialRequest
	if !h.BindJSON(c, &req) {
		return
	}

	m := req.ToEntity()
	if err := h.materials.Create(c.Request.Context(), m); err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

func (h *MaterialHandler) Get(c *gin.Context) {
	id, ok := h.ParamID(c)
	if !ok {
		return
	}

	m, err := h.materials.GetByID(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *MaterialHandler) List(c *gin.Context) {
	var params dto.MaterialListParams
	if !h.BindQuery(c, &params) {
		return
	}

	materials, err := h.materials.List(c.Request.Context(), material.ListFilter{
		Category: material.Category(params.Category),
		Search:   params.Search,
		Limit:    params.Limit,
		Offset:   params.Offset,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, materials)
}

func (h *MaterialHandler) Update(c *gin.Context) {
	id, ok := h.ParamID(c)
	if !ok {
		return
	}
	var req dto.UpdateMaterialRequest
	if !h.BindJSON(c, &req) {
		return
	}

	m, err := h.materials.GetByID(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	req.ApplyTo(m)
	if err := h.materials.Update(c.Request.Context(), m); err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *MaterialHandler) Delete(c *gin.Context) {
	id, ok := h.ParamID(c)
	if !ok {
		return
	}

	if err := h.materials.Delete(c.Request.Context(), id); err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "material deleted"})
}

// UploadImage attaches an image to a material.
func (h *MaterialHandler) UploadImage(c *gin.Context) {
	id, ok := h.ParamID(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		h.Error(c, err)
		return
	}
	defer file.Close()

	path, err := h.images.Save(header.Filename, file)
	if err != nil {
		h.Error(c, err)
		return
	}
	if err := h.materials.SetImage(c.Request.Context(), id, path); err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imagePath": path})
}
