package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"locafest/internal/core/apperror"
	"locafest/internal/domain/activity"
	"locafest/internal/domain/cashflow"
	"locafest/internal/domain/pricelist"
	"locafest/internal/infrastructure/http/v1/dto"
)

// CashFlowHandler serves the financial ledger, the price list and the
// activity log.
type CashFlowHandler struct {
	*BaseHandler
	cash     *cashflow.Service
	prices   *pricelist.Service
	activity activity.Reader
}

func NewCashFlowHandler(base *BaseHandler, cash *cashflow.Service, prices *pricelist.Service, reader activity.Reader) *CashFlowHandler {
	return &CashFlowHandler{BaseHandler: base, cash: cash, prices: prices, activity: reader}
}

func (h *CashFlowHandler) Append(c *gin.Context) {
	var req dto.CreateEntryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	e := req.ToEntity()
	if err := h.cash.Append(c.Request.Context(), e); err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

func (h *CashFlowHandler) filter(c *gin.Context) (cashflow.Filter, bool) {
	var params dto.CashFlowListParams
	if !h.BindQuery(c, &params) {
		return cashflow.Filter{}, false
	}

	filter := cashflow.Filter{
		Search: params.Search,
		Limit:  params.Limit,
		Offset: params.Offset,
	}
	if params.Kind != "" {
		kind := cashflow.Kind(params.Kind)
		filter.Kind = &kind
	}
	if params.EventID != 0 {
		filter.EventID = &params.EventID
	}
	if params.DateFrom != "" {
		from, err := time.Parse("2006-01-02", params.DateFrom)
		if err != nil {
			h.Error(c, apperror.NewValidation("dateFrom must be YYYY-MM-DD"))
			return cashflow.Filter{}, false
		}
		filter.DateFrom = &from
	}
	if params.DateTo != "" {
		to, err := time.Parse("2006-01-02", params.DateTo)
		if err != nil {
			h.Error(c, apperror.NewValidation("dateTo must be YYYY-MM-DD"))
			return cashflow.Filter{}, false
		}
		filter.DateTo = &to
	}
	return filter, true
}

func (h *CashFlowHandler) List(c *gin.Context) {
	filter, ok := h.filter(c)
	if !ok {
		return
	}

	entries, err := h.cash.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *CashFlowHandler) Summary(c *gin.Context) {
	filter, ok := h.filter(c)
	if !ok {
		return
	}

	summary, err := h.cash.Summarize(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// --- Price list ---

func (h *CashFlowHandler) CreatePrice(c *gin.Context) {
	var req dto.PriceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p := req.ToEntity()
	if err := h.prices.Create(c.Request.Context(), p); err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *CashFlowHandler) ListPrices(c *gin.Context) {
	prices, err := h.prices.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, prices)
}

func (h *CashFlowHandler) UpdatePrice(c *gin.Context) {
	id, ok := h.ParamID(c)
	if !ok {
		return
	}
	var req dto.PriceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p := req.ToEntity()
	p.ID = id
	if err := h.prices.Update(c.Request.Context(), p); err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *CashFlowHandler) DeletePrice(c *gin.Context) {
	id, ok := h.ParamID(c)
	if !ok {
		return
	}

	if err := h.prices.Delete(c.Request.Context(), id); err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "price deleted"})
}

// --- Activity log ---

func (h *CashFlowHandler) ListActivity(c *gin.Context) {
	var params dto.ListParams
	if !h.BindQuery(c, &params) {
		return
	}

	entries, err := h.activity.List(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
