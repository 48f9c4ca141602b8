package handlers

import (
	"github.com/gin-gonic/gin"

	"stockmark/internal/domain/documents/income"
	"stockmark/internal/infrastructure/http/v1/dto"
)

// IncomeHandler serves income documents.
type IncomeHandler struct {
	BaseHandler
	service *income.Service
}

// NewIncomeHandler creates a new income handler.
func NewIncomeHandler(service *income.Service) *IncomeHandler {
	return &IncomeHandler{service: service}
}

// Create handles POST /incomes.
func (h *IncomeHandler) Create(c *gin.Context) {
	var req dto.SaveIncomeRequest
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

// Update handles PUT /incomes/:incomeId.
func (h *IncomeHandler) Update(c *gin.Context) {
	docID, ok := h.ParseID(c, "incomeId")
	if !ok {
		return
	}
	var req dto.SaveIncomeRequest
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

	h.OK(c, dto.FromIncome(doc))
}

// List handles GET /incomes.
func (h *IncomeHandler) List(c *gin.Context) {
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

	h.OK(c, dto.NewListResponse(res, dto.FromIncomeWithCompany))
}

// Get handles GET /incomes/:incomeId.
func (h *IncomeHandler) Get(c *gin.Context) {
	docID, ok := h.ParseID(c, "incomeId")
	if !ok {
		return
	}

	view, err := h.service.GetByID(c.Request.Context(), docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromIncomeView(view))
}

// Archive handles POST /incomes/:incomeId/archive.
func (h *IncomeHandler) Archive(c *gin.Context) {
	docID, ok := h.ParseID(c, "incomeId")
	if !ok {
		return
	}

	doc, err := h.service.Archive(c.Request.Context(), docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromIncome(doc))
}

// Unarchive handles POST /incomes/:incomeId/unarchive.
func (h *IncomeHandler) Unarchive(c *gin.Context) {
	docID, ok := h.ParseID(c, "incomeId")
	if !ok {
		return
	}

	doc, err := h.service.Unarchive(c.Request.Context(), docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromIncome(doc))
}

// Delete handles DELETE /incomes/:incomeId.
func (h *IncomeHandler) Delete(c *gin.Context) {
	docID, ok := h.ParseID(c, "incomeId")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), docID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}
