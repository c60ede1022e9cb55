package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"locafest/internal/domain/kit"
	"locafest/internal/infrastructure/files"
	"locafest/internal/infrastructure/http/v1/dto"
)

// KitHandler serves kit composition.
type KitHandler struct {
	*BaseHandler
	kits   *kit.Service
	images *files.Store
}

func NewKitHandler(base *BaseHandler, kits *kit.Service, images *files.Store) *KitHandler {
	return &KitHandler{BaseHandler: base, kits: kits, images: images}
}

func (h *KitHandler) Create(c *gin.Context) {
	var req dto.CreateKitRequest
	if !h.BindJSON(c, &req) {
		return
	}

	k := &kit.Kit{Name: req.Name, Price: req.Price}
	if err := h.kits.Create(c.Request.Context(), k, req.ToComponents()); err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, k)
}

func (h *KitHandler) Get(c *gin.Context) {
	id, ok := h.ParamID(c)
	if !ok {
		return
	}

	k, err := h.kits.GetByID(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, k)
}

func (h *KitHandler) List(c *gin.Context) {
	var params dto.KitListParams
	if !h.BindQuery(c, &params) {
		return
	}

	filter := kit.ListFilter{
		Search: params.Search,
		Limit:  params.Limit,
		Offset: params.Offset,
	}
	if params.Status != "" {
		status := kit.Status(params.Status)
		filter.Status = &status
	}

	kits, err := h.kits.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, kits)
}

func (h *KitHandler) Delete(c *gin.Context) {
	id, ok := h.ParamID(c)
	if !ok {
		return
	}

	if err := h.kits.Delete(c.Request.Context(), id); err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "kit disassembled"})
}

// SetMaintenance toggles the maintenance flag.
func (h *KitHandler) SetMaintenance(c *gin.Context) {
	id, ok := h.ParamID(c)
	if !ok {
		return
	}
	var req struct {
		Maintenance bool `json:"maintenance"`
	}
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.kits.SetMaintenance(c.Request.Context(), id, req.Maintenance); err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "kit status updated"})
}

// UploadImage attaches an image to a kit.
func (h *KitHandler) UploadImage(c *gin.Context) {
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
	if err := h.kits.SetImage(c.Request.Context(), id, path); err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imagePath": path})
}
