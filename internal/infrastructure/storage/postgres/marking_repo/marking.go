// Package marking_repo provides the PostgreSQL implementation of the
// marking repository, including the conditional-update write-off
// primitives.
package marking_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockmark/internal/core/apperror"
	"stockmark/internal/core/id"
	"stockmark/internal/domain/markings"
	"stockmark/internal/infrastructure/storage/postgres"
)

const markingTable = "product_markings"

// MarkingRepo implements markings.Repository.
type MarkingRepo struct {
	txm      *postgres.TxManager
	inserter *postgres.BatchInserter
	cols     []string
}

// NewMarkingRepo creates a new marking repository.
func NewMarkingRepo(txm *postgres.TxManager) *MarkingRepo {
	return &MarkingRepo{
		txm:      txm,
		inserter: postgres.NewBatchInserter(txm),
		cols:     postgres.ExtractDBColumns[markings.Marking](),
	}
}

var _ markings.Repository = (*MarkingRepo)(nil)

func (r *MarkingRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *MarkingRepo) querier(ctx context.Context) postgres.Querier {
	return r.txm.GetQuerier(ctx)
}

// CreateBatch bulk-inserts markings over the COPY protocol. Must run
// inside the document transaction.
func (r *MarkingRepo) CreateBatch(ctx context.Context, items []*markings.Marking) error {
	if len(items) == 0 {
		return nil
	}

	rows := make([][]any, 0, len(items))
	for _, m := range items {
		data := postgres.StructToMap(m)
		row := make([]any, 0, len(r.cols))
		for _, col := range r.cols {
			row = append(row, data[col])
		}
		rows = append(rows, row)
	}

	n, err := r.inserter.CopyFromSlice(ctx, markingTable, r.cols, rows)
	if err != nil {
		return fmt.Errorf("copy markings: %w", err)
	}
	if n != int64(len(items)) {
		return fmt.Errorf("copy markings: inserted %d of %d rows", n, len(items))
	}

	return nil
}

// GetByID retrieves a marking by id.
func (r *MarkingRepo) GetByID(ctx context.Context, markingID id.ID) (*markings.Marking, error) {
	sql, args, err := r.builder().
		Select(r.cols...).
		From(markingTable).
		Where(squirrel.Eq{"id": markingID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	m := &markings.Marking{}
	if err := pgxscan.Get(ctx, r.querier(ctx), m, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("marking", markingID.String())
		}
		return nil, fmt.Errorf("get marking: %w", err)
	}

	return m, nil
}

// GetByIDs retrieves markings by id; missing ids are absent from the
// result.
func (r *MarkingRepo) GetByIDs(ctx context.Context, ids []id.ID) ([]*markings.Marking, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	sql, args, err := r.builder().
		Select(r.cols...).
		From(markingTable).
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*markings.Marking
	if err := pgxscan.Select(ctx, r.querier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("get markings: %w", err)
	}

	return items, nil
}

// Update persists field changes with optimistic locking.
func (r *MarkingRepo) Update(ctx context.Context, m *markings.Marking) error {
	data := postgres.StructToMap(m)

	filtered := make(map[string]any, len(r.cols))
	for _, col := range r.cols {
		if col == "id" || col == "version" {
			continue
		}
		filtered[col] = data[col]
	}

	sql, args, err := r.builder().
		Update(markingTable).
		SetMap(filtered).
		Set("version", m.Version).
		Where(squirrel.Eq{"id": m.ID}).
		Where(squirrel.Eq{"version": m.Version - 1}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update marking: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification("marking", m.ID.String())
	}

	return nil
}

// Delete removes a single marking.
func (r *MarkingRepo) Delete(ctx context.Context, markingID id.ID) error {
	sql, args, err := r.builder().
		Delete(markingTable).
		Where(squirrel.Eq{"id": markingID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete marking: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("marking", markingID.String())
	}

	return nil
}

// ExistingStrings returns which of the given values are already
// stored, regardless of document.
func (r *MarkingRepo) ExistingStrings(ctx context.Context, values []string) ([]string, error) {
	if len(values) == 0 {
		return nil, nil
	}

	sql, args, err := r.builder().
		Select("marking").
		From(markingTable).
		Where(squirrel.Eq{"marking": values}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var existing []string
	if err := pgxscan.Select(ctx, r.querier(ctx), &existing, sql, args...); err != nil {
		return nil, fmt.Errorf("existing strings: %w", err)
	}

	return existing, nil
}

// ListByIncome retrieves all markings of an income, oldest first.
func (r *MarkingRepo) ListByIncome(ctx context.Context, incomeID id.ID) ([]*markings.Marking, error) {
	return r.listBy(ctx, squirrel.Eq{"income_id": incomeID})
}

// ListByOutcome retrieves all markings written off by an outcome.
func (r *MarkingRepo) ListByOutcome(ctx context.Context, outcomeID id.ID) ([]*markings.Marking, error) {
	return r.listBy(ctx, squirrel.Eq{"outcome_id": outcomeID})
}

func (r *MarkingRepo) listBy(ctx context.Context, cond squirrel.Eq) ([]*markings.Marking, error) {
	sql, args, err := r.builder().
		Select(r.cols...).
		From(markingTable).
		Where(cond).
		OrderBy("created_at ASC", "marking ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*markings.Marking
	if err := pgxscan.Select(ctx, r.querier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list markings: %w", err)
	}

	return items, nil
}

// DeleteByIncome removes every marking of the income.
func (r *MarkingRepo) DeleteByIncome(ctx context.Context, incomeID id.ID) (int64, error) {
	return r.deleteBy(ctx, squirrel.Eq{"income_id": incomeID})
}

// DeleteByIncomeAndStrings removes the named markings of the income.
func (r *MarkingRepo) DeleteByIncomeAndStrings(ctx context.Context, incomeID id.ID, values []string) (int64, error) {
	if len(values) == 0 {
		return 0, nil
	}
	return r.deleteBy(ctx, squirrel.Eq{"income_id": incomeID, "marking": values})
}

func (r *MarkingRepo) deleteBy(ctx context.Context, cond squirrel.Eq) (int64, error) {
	sql, args, err := r.builder().
		Delete(markingTable).
		Where(cond).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("delete markings: %w", err)
	}

	return result.RowsAffected(), nil
}

// WrittenOffStrings returns which of the given values belong to the
// income and are already written off.
func (r *MarkingRepo) WrittenOffStrings(ctx context.Context, incomeID id.ID, values []string) ([]string, error) {
	if len(values) == 0 {
		return nil, nil
	}

	sql, args, err := r.builder().
		Select("marking").
		From(markingTable).
		Where(squirrel.Eq{"income_id": incomeID, "marking": values}).
		Where(squirrel.NotEq{"outcome_id": nil}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var writtenOff []string
	if err := pgxscan.Select(ctx, r.querier(ctx), &writtenOff, sql, args...); err != nil {
		return nil, fmt.Errorf("written off strings: %w", err)
	}

	return writtenOff, nil
}

// HasWrittenOffByIncome reports whether any marking of the income is
// written off.
func (r *MarkingRepo) HasWrittenOffByIncome(ctx context.Context, incomeID id.ID) (bool, error) {
	sql, args, err := r.builder().
		Select("1").
		From(markingTable).
		Where(squirrel.Eq{"income_id": incomeID}).
		Where(squirrel.NotEq{"outcome_id": nil}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var one int
	err = r.querier(ctx).QueryRow(ctx, sql, args...).Scan(&one)
	if pgxscan.NotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("has written off: %w", err)
	}

	return true, nil
}

// AttachToOutcome claims the given markings for the outcome. The null
// guard in the WHERE clause makes the claim atomic under concurrency:
// two outcomes racing for the same marking cannot both match it, so
// comparing the returned count to the request size detects the loss.
func (r *MarkingRepo) AttachToOutcome(ctx context.Context, outcomeID id.ID, ids []id.ID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	sql, args, err := r.builder().
		Update(markingTable).
		Set("outcome_id", outcomeID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": ids}).
		Where(squirrel.Eq{"outcome_id": nil}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build attach: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("attach markings: %w", err)
	}

	return result.RowsAffected(), nil
}

// DetachFromOutcome releases the given markings, touching only rows
// the outcome actually holds.
func (r *MarkingRepo) DetachFromOutcome(ctx context.Context, outcomeID id.ID, ids []id.ID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	return r.detachBy(ctx, squirrel.Eq{"id": ids, "outcome_id": outcomeID})
}

// DetachAll releases every marking the outcome holds.
func (r *MarkingRepo) DetachAll(ctx context.Context, outcomeID id.ID) (int64, error) {
	return r.detachBy(ctx, squirrel.Eq{"outcome_id": outcomeID})
}

func (r *MarkingRepo) detachBy(ctx context.Context, cond squirrel.Eq) (int64, error) {
	sql, args, err := r.builder().
		Update(markingTable).
		Set("outcome_id", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Set("version", squirrel.Expr("version + 1")).
		Where(cond).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build detach: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("detach markings: %w", err)
	}

	return result.RowsAffected(), nil
}

// ListConflicting returns markings from the set held by a different
// outcome.
func (r *MarkingRepo) ListConflicting(ctx context.Context, ids []id.ID, outcomeID id.ID) ([]*markings.Marking, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	sql, args, err := r.builder().
		Select(r.cols...).
		From(markingTable).
		Where(squirrel.Eq{"id": ids}).
		Where(squirrel.NotEq{"outcome_id": nil}).
		Where(squirrel.NotEq{"outcome_id": outcomeID}).
		OrderBy("marking ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*markings.Marking
	if err := pgxscan.Select(ctx, r.querier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list conflicting: %w", err)
	}

	return items, nil
}
