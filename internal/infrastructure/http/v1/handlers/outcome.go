package handlers

import (
	"github.com/gin-gonic/gin"

	"stockmark/internal/domain/documents/outcome"
	"stockmark/internal/infrastructure/http/v1/dto"
)

// OutcomeHandler serves outcome documents.
type OutcomeHandler struct {
	BaseHandler
	service *outcome.Service
}

// NewOutcomeHandler creates a new outcome handler.
func NewOutcomeHandler(service *outcome.Service) *OutcomeHandler {
	return &OutcomeHandler{service: service}
}

// Create handles POST /outcomes.
func (h *OutcomeHandler) Create(c *gin.Context) {
	var req dto.SaveOutcomeRequest
	if !h.BindJSON(c, &req) {
		return
	}
	in, err := req.ToInput()
	if err != nil {
		h.Error(c, err)
		return
	}

	doc, err := h.service.Create(c.Request.Context(), in)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, doc.ID)
}

// Update handles PUT /outcomes/:outcomeId.
func (h *OutcomeHandler) Update(c *gin.Context) {
	docID, ok := h.ParseID(c, "outcomeId")
	if !ok {
		return
	}
	var req dto.SaveOutcomeRequest
	if !h.BindJSON(c, &req) {
		return
	}
	in, err := req.ToInput()
	if err != nil {
		h.Error(c, err)
		return
	}

	doc, err := h.service.Update(c.Request.Context(), docID, in)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromOutcome(doc))
}

// List handles GET /outcomes.
func (h *OutcomeHandler) List(c *gin.Context) {
	var req dto.DocumentListRequest
	if !h.BindQuery(c, &req) {
		return
	}
	req.Defaults()

	res, err := h.service.List(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewListResponse(res, dto.FromOutcomeWithCompany))
}

// Get handles GET /outcomes/:outcomeId.
func (h *OutcomeHandler) Get(c *gin.Context) {
	docID, ok := h.ParseID(c, "outcomeId")
	if !ok {
		return
	}

	view, err := h.service.GetByID(c.Request.Context(), docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromOutcomeView(view))
}

// Archive handles POST /outcomes/:outcomeId/archive.
func (h *OutcomeHandler) Archive(c *gin.Context) {
	docID, ok := h.ParseID(c, "outcomeId")
	if !ok {
		return
	}

	doc, err := h.service.Archive(c.Request.Context(), docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromOutcome(doc))
}

// Unarchive handles POST /outcomes/:outcomeId/unarchive.
func (h *OutcomeHandler) Unarchive(c *gin.Context) {
	docID, ok := h.ParseID(c, "outcomeId")
	if !ok {
		return
	}

	doc, err := h.service.Unarchive(c.Request.Context(), docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromOutcome(doc))
}

// Delete handles DELETE /outcomes/:outcomeId.
func (h *OutcomeHandler) Delete(c *gin.Context) {
	docID, ok := h.ParseID(c, "outcomeId")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), docID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}
