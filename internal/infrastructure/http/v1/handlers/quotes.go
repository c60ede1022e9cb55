package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"locafest/internal/core/apperror"
	"locafest/internal/domain/quote"
	"locafest/internal/infrastructure/http/v1/dto"
)

// QuoteHandler serves quote creation, listing and token approval.
type QuoteHandler struct {
	*BaseHandler
	quotes *quote.Service
}

func NewQuoteHandler(base *BaseHandler, quotes *quote.Service) *QuoteHandler {
	return &QuoteHandler{BaseHandler: base, quotes: quotes}
}

func (h *QuoteHandler) Create(c *gin.Context) {
	var req dto.CreateQuoteRequest
	if !h.BindJSON(c, &req) {
		return
	}

	q := req.ToEntity()
	err := h.quotes.Create(c.Request.Context(), q)
	if err != nil {
		// The quote survives a delivery failure; report it as accepted
		// with a warning instead of discarding the caller's work.
		if appErr, ok := apperror.AsAppError(err); ok && appErr.Code == apperror.CodeUnavailable {
			c.JSON(http.StatusCreated, gin.H{
				"quote":   q,
				"warning": "quote saved but the proposal email could not be sent",
			})
			return
		}
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, q)
}

func (h *QuoteHandler) Get(c *gin.Context) {
	id, ok := h.ParamID(c)
	if !ok {
		return
	}

	q, err := h.quotes.GetByID(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

func (h *QuoteHandler) List(c *gin.Context) {
	var params dto.QuoteListParams
	if !h.BindQuery(c, &params) {
		return
	}

	quotes, err := h.quotes.List(c.Request.Context(), quote.ListFilter{
		Status:   quote.Status(params.Status),
		ClientID: params.ClientID,
		Search:   params.Search,
		Limit:    params.Limit,
		Offset:   params.Offset,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, quotes)
}

// Approve consumes an approval token from the emailed link. A token that was
// already used answers with a clear "already processed" message instead of
// re-running the booking.
func (h *QuoteHandler) Approve(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		h.Error(c, apperror.NewValidation("missing approval token"))
		return
	}

	ev, err := h.quotes.Approve(c.Request.Context(), token)
	if err != nil {
		if apperror.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{
				"message": "this proposal was already processed or does not exist",
			})
			return
		}
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "proposal approved",
		"eventId": ev.ID,
	})
}

// Refuse consumes an approval token and declines the proposal.
func (h *QuoteHandler) Refuse(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		h.Error(c, apperror.NewValidation("missing approval token"))
		return
	}

	if err := h.quotes.Refuse(c.Request.Context(), token); err != nil {
		if apperror.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{
				"message": "this proposal was already processed or does not exist",
			})
			return
		}
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "proposal refused"})
}
