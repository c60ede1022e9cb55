package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"locafest/internal/core/apperror"
	"locafest/internal/domain/event"
	"locafest/internal/infrastructure/http/v1/dto"
)

// EventHandler serves the event lifecycle.
type EventHandler struct {
	*BaseHandler
	events *event.Service
}

func NewEventHandler(base *BaseHandler, events *event.Service) *EventHandler {
	return &EventHandler{BaseHandler: base, events: events}
}

func (h *EventHandler) Create(c *gin.Context) {
	var req dto.CreateEventRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ev, lines := req.ToEntity()
	if err := h.events.Create(c.Request.Context(), ev, lines); err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, ev)
}

func (h *EventHandler) Get(c *gin.Context) {
	id, ok := h.ParamID(c)
	if !ok {
		return
	}

	ev, err := h.events.GetByID(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, ev)
}

func (h *EventHandler) List(c *gin.Context) {
	var params dto.EventListParams
	if !h.BindQuery(c, &params) {
		return
	}

	filter := event.ListFilter{
		Status:   event.Status(params.Status),
		ClientID: params.ClientID,
		Search:   params.Search,
		Limit:    params.Limit,
		Offset:   params.Offset,
	}
	if params.DateFrom != "" {
		from, err := time.Parse("2006-01-02", params.DateFrom)
		if err != nil {
			h.Error(c, apperror.NewValidation("dateFrom must be YYYY-MM-DD"))
			return
		}
		filter.DateFrom = &from
	}
	if params.DateTo != "" {
		to, err := time.Parse("2006-01-02", params.DateTo)
		if err != nil {
			h.Error(c, apperror.NewValidation("dateTo must be YYYY-MM-DD"))
			return
		}
		filter.DateTo = &to
	}

	events, err := h.events.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// SetStatus moves an event along its pipeline.
func (h *EventHandler) SetStatus(c *gin.Context) {
	id, ok := h.ParamID(c)
	if !ok {
		return
	}
	var req dto.StatusRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.events.SetStatus(c.Request.Context(), id, req.Status); err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "event status updated"})
}

// RegisterPayment applies a partial or total payment.
func (h *EventHandler) RegisterPayment(c *gin.Context) {
	id, ok := h.ParamID(c)
	if !ok {
		return
	}
	var req dto.PaymentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.events.RegisterPayment(c.Request.Context(), id, req.Mode, req.Amount); err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "payment registered"})
}

// Finalize closes an event, returning stock per the chosen mode.
func (h *EventHandler) Finalize(c *gin.Context) {
	id, ok := h.ParamID(c)
	if !ok {
		return
	}
	var req dto.FinalizeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.events.Finalize(c.Request.Context(), id, req.Mode, req.Observations); err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "event finalized"})
}

// Delete removes an event with its full cascade.
func (h *EventHandler) Delete(c *gin.Context) {
	id, ok := h.ParamID(c)
	if !ok {
		return
	}

	if err := h.events.Delete(c.Request.Context(), id); err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "event deleted"})
}
