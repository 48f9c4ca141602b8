package catalog_repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockmark/internal/core/apperror"
	"stockmark/internal/domain/catalogs/company"
	"stockmark/internal/infrastructure/storage/postgres"
)

const companyTable = "companies"

// CompanyRepo implements company.Repository.
type CompanyRepo struct {
	*BaseCatalogRepo[*company.Company]
}

// NewCompanyRepo creates a new company repository.
func NewCompanyRepo(txm *postgres.TxManager) *CompanyRepo {
	return &CompanyRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*company.Company](
			txm,
			companyTable,
			postgres.ExtractDBColumns[company.Company](),
			func() *company.Company { return &company.Company{} },
		),
	}
}

var _ company.Repository = (*CompanyRepo)(nil)

// UpsertByINN inserts the company or, when a row with the same INN
// already exists, refreshes its name and phone. Keyed on the partial
// unique index over non-null INNs.
func (r *CompanyRepo) UpsertByINN(ctx context.Context, c *company.Company) (*company.Company, error) {
	data := postgres.StructToMap(c)

	cols := postgres.ExtractDBColumns[company.Company]()
	values := make([]any, 0, len(cols))
	for _, col := range cols {
		values = append(values, data[col])
	}

	suffix := fmt.Sprintf(
		`ON CONFLICT (inn) WHERE inn IS NOT NULL DO UPDATE
		 SET name = EXCLUDED.name,
			 phone = EXCLUDED.phone,
			 updated_at = EXCLUDED.updated_at,
			 version = %s.version + 1
		 RETURNING %s`,
		companyTable, strings.Join(cols, ", "),
	)

	sql, args, err := r.Builder().
		Insert(companyTable).
		Columns(cols...).
		Values(values...).
		Suffix(suffix).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build upsert: %w", err)
	}

	stored := &company.Company{}
	if err := pgxscan.Get(ctx, r.querier(ctx), stored, sql, args...); err != nil {
		return nil, fmt.Errorf("upsert company: %w", err)
	}

	return stored, nil
}

// FindByNamePhone retrieves the company matching the exact pair.
func (r *CompanyRepo) FindByNamePhone(ctx context.Context, name, phone string) (*company.Company, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"name": name}).
		Where(squirrel.Eq{"phone": phone}).
		Limit(1)

	c, err := r.FindOne(ctx, q)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("company", name)
		}
		return nil, err
	}
	return c, nil
}
