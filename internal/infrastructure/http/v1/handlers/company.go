package handlers

import (
	"github.com/gin-gonic/gin"

	"stockmark/internal/domain/catalogs/company"
	"stockmark/internal/infrastructure/http/v1/dto"
)

// CompanyHandler serves the counterparty catalog.
type CompanyHandler struct {
	BaseHandler
	service *company.Service
}

// NewCompanyHandler creates a new company handler.
func NewCompanyHandler(service *company.Service) *CompanyHandler {
	return &CompanyHandler{service: service}
}

// List handles GET /companies.
func (h *CompanyHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if !h.BindQuery(c, &req) {
		return
	}
	req.Defaults()

	res, err := h.service.List(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewListResponse(res, dto.FromCompany))
}

// Get handles GET /companies/:companyId.
func (h *CompanyHandler) Get(c *gin.Context) {
	companyID, ok := h.ParseID(c, "companyId")
	if !ok {
		return
	}

	item, err := h.service.GetByID(c.Request.Context(), companyID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromCompany(item))
}
