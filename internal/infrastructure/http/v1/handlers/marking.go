package handlers

import (
	"github.com/gin-gonic/gin"

	"stockmark/internal/domain/markings"
	"stockmark/internal/infrastructure/http/v1/dto"
)

// MarkingHandler serves single-marking operations and the bulk
// existence check.
type MarkingHandler struct {
	BaseHandler
	service *markings.Service
}

// NewMarkingHandler creates a new marking handler.
func NewMarkingHandler(service *markings.Service) *MarkingHandler {
	return &MarkingHandler{service: service}
}

// parseRef extracts the composite (income, product, marking) path.
func (h *MarkingHandler) parseRef(c *gin.Context) (markings.Ref, bool) {
	incomeID, ok := h.ParseID(c, "incomeId")
	if !ok {
		return markings.Ref{}, false
	}
	productID, ok := h.ParseID(c, "productId")
	if !ok {
		return markings.Ref{}, false
	}
	markingID, ok := h.ParseID(c, "markingId")
	if !ok {
		return markings.Ref{}, false
	}
	return markings.Ref{IncomeID: incomeID, ProductID: productID, MarkingID: markingID}, true
}

// Edit handles PUT /incomes/:incomeId/products/:productId/markings/:markingId.
func (h *MarkingHandler) Edit(c *gin.Context) {
	ref, ok := h.parseRef(c)
	if !ok {
		return
	}
	var req dto.EditMarkingRequest
	if !h.BindJSON(c, &req) {
		return
	}

	m, err := h.service.Edit(c.Request.Context(), ref, req.ToEditInput())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromMarking(m))
}

// Delete handles DELETE /incomes/:incomeId/products/:productId/markings/:markingId.
func (h *MarkingHandler) Delete(c *gin.Context) {
	ref, ok := h.parseRef(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), ref); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// Check handles POST /markings/check.
func (h *MarkingHandler) Check(c *gin.Context) {
	var req dto.CheckMarkingsRequest
	if !h.BindJSON(c, &req) {
		return
	}

	res, err := h.service.CheckExist(c.Request.Context(), req.Markings)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromCheckResult(res))
}
