// Package document_repo provides PostgreSQL implementations for the
// income and outcome document repositories.
package document_repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"stockmark/internal/core/apperror"
	"stockmark/internal/core/id"
	"stockmark/internal/domain"
	"stockmark/internal/infrastructure/storage/postgres"
)

const companyTable = "companies"

// BaseDocumentRepo provides common operations for document headers.
// T is the header type, L the listing row joined with the company
// name. companyFK names the counterparty column, which differs between
// the two document types.
type BaseDocumentRepo[T, L any] struct {
	txm        *postgres.TxManager
	tableName  string
	companyFK  string
	selectCols []string
	newFn      func() T
}

// NewBaseDocumentRepo creates a new base document repository.
func NewBaseDocumentRepo[T, L any](
	txm *postgres.TxManager,
	tableName string,
	companyFK string,
	selectCols []string,
	newFn func() T,
) *BaseDocumentRepo[T, L] {
	return &BaseDocumentRepo[T, L]{
		txm:        txm,
		tableName:  tableName,
		companyFK:  companyFK,
		selectCols: selectCols,
		newFn:      newFn,
	}
}

// Builder returns a squirrel builder with PostgreSQL placeholders.
func (r *BaseDocumentRepo[T, L]) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *BaseDocumentRepo[T, L]) querier(ctx context.Context) postgres.Querier {
	return r.txm.GetQuerier(ctx)
}

// Create inserts a new document header.
func (r *BaseDocumentRepo[T, L]) Create(ctx context.Context, entity T) error {
	data := postgres.StructToMap(entity)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found in entity")
	}

	filtered := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if val, ok := data[col]; ok {
			filtered[col] = val
		}
	}

	sql, args, err := r.Builder().
		Insert(r.tableName).
		SetMap(filtered).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert %s: %w", r.tableName, err)
	}

	return nil
}

// Update rewrites the header with optimistic locking. The caller has
// already called Touch, so the row is expected at version-1.
func (r *BaseDocumentRepo[T, L]) Update(ctx context.Context, entity T) error {
	data := postgres.StructToMap(entity)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found in entity")
	}

	entityID, ok := data["id"]
	if !ok {
		return fmt.Errorf("entity has no 'id' field")
	}
	version, ok := data["version"].(int)
	if !ok {
		return fmt.Errorf("entity has no 'version' field or it is not an int")
	}

	filtered := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if col == "id" || col == "version" || col == "created_at" || col == "added_by" {
			continue
		}
		if val, ok := data[col]; ok {
			filtered[col] = val
		}
	}

	sql, args, err := r.Builder().
		Update(r.tableName).
		SetMap(filtered).
		Set("version", version).
		Where(squirrel.Eq{"id": entityID}).
		Where(squirrel.Eq{"version": version - 1}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", r.tableName, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification(r.tableName, entityID)
	}

	return nil
}

// SetArchive persists the archival fields with optimistic locking.
func (r *BaseDocumentRepo[T, L]) SetArchive(ctx context.Context, entity T) error {
	data := postgres.StructToMap(entity)

	entityID, ok := data["id"]
	if !ok {
		return fmt.Errorf("entity has no 'id' field")
	}
	version, ok := data["version"].(int)
	if !ok {
		return fmt.Errorf("entity has no 'version' field or it is not an int")
	}

	sql, args, err := r.Builder().
		Update(r.tableName).
		Set("is_archive", data["is_archive"]).
		Set("archived_at", data["archived_at"]).
		Set("archived_by", data["archived_by"]).
		Set("updated_at", data["updated_at"]).
		Set("version", version).
		Where(squirrel.Eq{"id": entityID}).
		Where(squirrel.Eq{"version": version - 1}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build set archive: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("set archive %s: %w", r.tableName, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification(r.tableName, entityID)
	}

	return nil
}

// GetByID retrieves a document header by id.
func (r *BaseDocumentRepo[T, L]) GetByID(ctx context.Context, docID id.ID) (T, error) {
	entity := r.newFn()

	sql, args, err := r.Builder().
		Select(r.selectCols...).
		From(r.tableName).
		Where(squirrel.Eq{"id": docID}).
		Limit(1).
		ToSql()
	if err != nil {
		return entity, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.querier(ctx), entity, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return entity, apperror.NewNotFound(r.tableName, docID.String())
		}
		return entity, fmt.Errorf("get by id: %w", err)
	}

	return entity, nil
}

// IsArchived reads the archive flag without loading the row.
func (r *BaseDocumentRepo[T, L]) IsArchived(ctx context.Context, docID id.ID) (bool, error) {
	sql, args, err := r.Builder().
		Select("is_archive").
		From(r.tableName).
		Where(squirrel.Eq{"id": docID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var archived bool
	err = r.querier(ctx).QueryRow(ctx, sql, args...).Scan(&archived)
	if err == pgx.ErrNoRows {
		return false, apperror.NewNotFound(r.tableName, docID.String())
	}
	if err != nil {
		return false, fmt.Errorf("is archived: %w", err)
	}

	return archived, nil
}

// Delete physically removes the document row.
func (r *BaseDocumentRepo[T, L]) Delete(ctx context.Context, docID id.ID) error {
	sql, args, err := r.Builder().
		Delete(r.tableName).
		Where(squirrel.Eq{"id": docID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete %s: %w", r.tableName, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(r.tableName, docID.String())
	}

	return nil
}

// List retrieves document headers joined with the counterparty name.
func (r *BaseDocumentRepo[T, L]) List(ctx context.Context, filter domain.DocumentFilter) (domain.ListResult[L], error) {
	result := domain.ListResult[L]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	selectCols := make([]string, 0, len(r.selectCols)+1)
	for _, col := range r.selectCols {
		selectCols = append(selectCols, "d."+col)
	}
	selectCols = append(selectCols, "c.name AS company_name")

	q := r.Builder().
		Select(selectCols...).
		From(r.tableName + " d").
		Join(fmt.Sprintf("%s c ON c.id = d.%s", companyTable, r.companyFK))

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"d.contract_number": pattern},
			squirrel.ILike{"d.invoice_number": pattern},
			squirrel.ILike{"c.name": pattern},
		})
	}
	if filter.IsArchive != nil {
		q = q.Where(squirrel.Eq{"d.is_archive": *filter.IsArchive})
	}
	if filter.CompanyID != nil {
		q = q.Where(squirrel.Eq{"d." + r.companyFK: *filter.CompanyID})
	}
	if filter.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"d.invoice_date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"d.invoice_date": *filter.DateTo})
	}

	countSQL, countArgs, err := r.Builder().
		Select("COUNT(*)").
		FromSelect(q, "sub").
		ToSql()
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
	q = q.OrderBy(orderBy)

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
		return result, fmt.Errorf("list: %w", err)
	}

	return result, nil
}

// parseOrderBy validates ordering; documents default to newest first.
func (r *BaseDocumentRepo[T, L]) parseOrderBy(orderBy string) (string, error) {
	allowed := make(map[string]struct{}, len(r.selectCols)+1)
	for _, col := range r.selectCols {
		allowed[col] = struct{}{}
	}
	allowed["company_name"] = struct{}{}

	if orderBy == "" {
		return "d.created_at DESC", nil
	}

	direction := "ASC"
	field := orderBy
	if strings.HasPrefix(orderBy, "-") {
		direction = "DESC"
		field = strings.TrimPrefix(orderBy, "-")
	}

	field = strings.TrimSpace(field)
	if _, ok := allowed[field]; !ok {
		return "", apperror.NewValidation("invalid orderBy").
			WithDetail("orderBy", orderBy).
			WithDetail("field", field)
	}

	if field == "company_name" {
		return "c.name " + direction, nil
	}
	return "d." + field + " " + direction, nil
}
