package dto

import (
	"time"

	"stockmark/internal/core/types"
	"stockmark/internal/domain/catalogs/product"
)

// CreateProductRequest for creating catalog items.
type CreateProductRequest struct {
	Name     string      `json:"name" binding:"required"`
	Price    types.Money `json:"price"`
	KPI      float64     `json:"kpi"`
	Quantity int         `json:"quantity"`
}

// ToProduct converts to the domain entity.
func (r CreateProductRequest) ToProduct() *product.Product {
	return product.NewProduct(r.Name, types.MoneyToMinor(r.Price), r.KPI, r.Quantity)
}

// ProductResponse contains product fields.
type ProductResponse struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Price     types.Money `json:"price"`
	KPI       float64     `json:"kpi"`
	Quantity  int         `json:"quantity"`
	Version   int         `json:"version"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// FromProduct creates ProductResponse from the domain entity.
func FromProduct(p *product.Product) ProductResponse {
	return ProductResponse{
		ID:        p.ID.String(),
		Name:      p.Name,
		Price:     types.MoneyFromMinor(p.Price),
		KPI:       p.KPI,
		Quantity:  p.Quantity,
		Version:   p.Version,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// ProductWithStockResponse adds the computed stock figure.
type ProductWithStockResponse struct {
	ProductResponse

	Stock int64 `json:"stock"`
}

// FromProductWithStock creates the stock-aware response.
func FromProductWithStock(p *product.WithStock) ProductWithStockResponse {
	return ProductWithStockResponse{
		ProductResponse: FromProduct(&p.Product),
		Stock:           p.Stock,
	}
}

// StockResponse is the single-product stock figure.
type StockResponse struct {
	ProductID string `json:"productId"`
	Stock     int64  `json:"stock"`
}
