package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"locafest/internal/domain/client"
	"locafest/internal/infrastructure/http/v1/dto"
)

// ClientHandler serves the client directory.
type ClientHandler struct {
	*BaseHandler
	clients *client.Service
}

func NewClientHandler(base *BaseHandler, clients *client.Service) *ClientHandler {
	return &ClientHandler{BaseHandler: base, clients: clients}
}

func (h *ClientHandler) Create(c *gin.Context) {
	var req dto.ClientRequest
	if !h.BindJSON(c, &req) {
		return
	}

	cl := req.ToEntity()
	if err := h.clients.Create(c.Request.Context(), cl); err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, cl)
}

func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := h.ParamID(c)
	if !ok {
		return
	}

	cl, err := h.clients.GetByID(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, cl)
}

func (h *ClientHandler) List(c *gin.Context) {
	var params dto.ListParams
	if !h.BindQuery(c, &params) {
		return
	}

	clients, err := h.clients.List(c.Request.Context(), client.ListFilter{
		Search: params.Search,
		Limit:  params.Limit,
		Offset: params.Offset,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, clients)
}

func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := h.ParamID(c)
	if !ok {
		return
	}
	var req dto.ClientRequest
	if !h.BindJSON(c, &req) {
		return
	}

	cl := req.ToEntity()
	cl.ID = id
	if err := h.clients.Update(c.Request.Context(), cl); err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, cl)
}

func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := h.ParamID(c)
	if !ok {
		return
	}

	if err := h.clients.Delete(c.Request.Context(), id); err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "client deleted"})
}

// LookupCEP resolves a postal code to an address for form autofill.
func (h *ClientHandler) LookupCEP(c *gin.Context) {
	addr, err := h.clients.LookupAddress(c.Request.Context(), c.Param("cep"))
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, addr)
}
