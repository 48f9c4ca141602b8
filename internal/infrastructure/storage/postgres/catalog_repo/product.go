package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockmark/internal/core/id"
	"stockmark/internal/domain"
	"stockmark/internal/domain/catalogs/product"
	"stockmark/internal/infrastructure/storage/postgres"
)

const (
	productTable = "products"
	markingTable = "product_markings"
)

// ProductRepo implements product.Repository.
type ProductRepo struct {
	*BaseCatalogRepo[*product.Product]
}

// NewProductRepo creates a new product repository.
func NewProductRepo(txm *postgres.TxManager) *ProductRepo {
	return &ProductRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*product.Product](
			txm,
			productTable,
			postgres.ExtractDBColumns[product.Product](),
			func() *product.Product { return &product.Product{} },
		),
	}
}

var _ product.Repository = (*ProductRepo)(nil)

// ListWithStock retrieves products with the stock figure computed per
// request. Stock is the count of markings with a null outcome
// reference; it is never stored, so the listing is always consistent
// with the marking table.
func (r *ProductRepo) ListWithStock(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*product.WithStock], error) {
	result := domain.ListResult[*product.WithStock]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	cols := postgres.ExtractDBColumns[product.Product]()
	selectCols := make([]string, 0, len(cols)+1)
	groupCols := make([]string, 0, len(cols))
	for _, col := range cols {
		selectCols = append(selectCols, "p."+col)
		groupCols = append(groupCols, "p."+col)
	}
	selectCols = append(selectCols, "COUNT(m.id) FILTER (WHERE m.outcome_id IS NULL) AS stock")

	q := r.Builder().
		Select(selectCols...).
		From(productTable + " p").
		LeftJoin(markingTable + " m ON m.product_id = p.id").
		GroupBy(groupCols...)

	if filter.Search != "" {
		q = q.Where(squirrel.ILike{"p.name": "%" + filter.Search + "%"})
	}
	if len(filter.IDs) > 0 {
		q = q.Where(squirrel.Eq{"p.id": filter.IDs})
	}

	countQ := r.Builder().
		Select("COUNT(*)").
		From(productTable + " p")
	if filter.Search != "" {
		countQ = countQ.Where(squirrel.ILike{"p.name": "%" + filter.Search + "%"})
	}
	if len(filter.IDs) > 0 {
		countQ = countQ.Where(squirrel.Eq{"p.id": filter.IDs})
	}

	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count query: %w", err)
	}
	if err := r.querier(ctx).QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count: %w", err)
	}

	orderBy, err := r.parseOrderBy(filter.OrderBy)
	if err != nil {
		return result, err
	}
	q = q.OrderBy("p." + orderBy)

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, r.querier(ctx), &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("list with stock: %w", err)
	}

	return result, nil
}

// Stock returns the in-stock marking count for one product.
func (r *ProductRepo) Stock(ctx context.Context, productID id.ID) (int64, error) {
	sql, args, err := r.Builder().
		Select("COUNT(*)").
		From(markingTable).
		Where(squirrel.Eq{"product_id": productID}).
		Where(squirrel.Eq{"outcome_id": nil}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build stock query: %w", err)
	}

	var stock int64
	if err := r.querier(ctx).QueryRow(ctx, sql, args...).Scan(&stock); err != nil {
		return 0, fmt.Errorf("stock: %w", err)
	}

	return stock, nil
}
