package markings

import (
	"context"
	"strings"

	"stockmark/internal/core/apperror"
	"stockmark/internal/core/id"
	"stockmark/internal/core/tx"
	"stockmark/internal/domain/audit"
	"stockmark/pkg/logger"
)

// IncomeState reports the archive state of an income document.
// Implemented by the income repository; declared here so single-marking
// operations can enforce the frozen-document guard without a dependency
// on the documents package.
type IncomeState interface {
	IsArchived(ctx context.Context, incomeID id.ID) (bool, error)
}

// Service provides single-marking operations and bulk existence checks.
// Bulk lifecycle transitions (creation on income, write-off on outcome)
// live in the owning document services.
type Service struct {
	repo    Repository
	incomes IncomeState
	auditor audit.Recorder
	txm     tx.Manager
}

// NewService creates a new Marking service.
func NewService(repo Repository, incomes IncomeState, auditor audit.Recorder, txm tx.Manager) *Service {
	return &Service{repo: repo, incomes: incomes, auditor: auditor, txm: txm}
}

// Edit updates the value or counter flag of one marking addressed by
// its (income, product, marking) path.
//
// The guard order is fixed: existence, then archive state of the
// parent income, then write-off state, then uniqueness of the new
// value. Markings without an income reference predate document
// tracking and skip the archive guard.
func (s *Service) Edit(ctx context.Context, ref Ref, in EditInput) (*Marking, error) {
	m, err := s.load(ctx, ref)
	if err != nil {
		return nil, err
	}

	changes := map[string]any{}

	if in.Marking != nil {
		value := strings.TrimSpace(*in.Marking)
		if value == "" {
			return nil, apperror.NewValidation("marking value is required").
				WithDetail("field", "marking")
		}
		if value != m.Marking {
			taken, err := s.repo.ExistingStrings(ctx, []string{value})
			if err != nil {
				return nil, err
			}
			if len(taken) > 0 {
				return nil, apperror.NewDuplicateMarking(taken)
			}
			changes["marking"] = map[string]any{"old": m.Marking, "new": value}
			m.Marking = value
		}
	}

	if in.Counter != nil && *in.Counter != m.Counter {
		changes["counter"] = map[string]any{"old": m.Counter, "new": *in.Counter}
		m.Counter = *in.Counter
	}

	if len(changes) == 0 {
		return m, nil
	}

	m.Touch()

	err = s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, m); err != nil {
			return err
		}
		return s.auditor.Record(ctx, "marking", m.ID, audit.ActionUpdate, changes)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "marking updated", "id", m.ID, "marking", m.Marking)
	return m, nil
}

// Delete removes one marking addressed by its (income, product,
// marking) path. Written-off markings cannot be deleted.
func (s *Service) Delete(ctx context.Context, ref Ref) error {
	m, err := s.load(ctx, ref)
	if err != nil {
		return err
	}

	err = s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Delete(ctx, m.ID); err != nil {
			return err
		}
		return s.auditor.Record(ctx, "marking", m.ID, audit.ActionDelete, map[string]any{
			"marking": m.Marking,
		})
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "marking deleted", "id", m.ID, "marking", m.Marking)
	return nil
}

// load fetches the marking and runs the shared mutation guards.
func (s *Service) load(ctx context.Context, ref Ref) (*Marking, error) {
	m, err := s.repo.GetByID(ctx, ref.MarkingID)
	if err != nil {
		return nil, err
	}

	// The path is a composite key: a marking reached through the wrong
	// product or income does not exist from the caller's point of view.
	if m.ProductID != ref.ProductID {
		return nil, apperror.NewNotFound("marking", ref.MarkingID.String())
	}
	if m.IncomeID != nil && *m.IncomeID != ref.IncomeID {
		return nil, apperror.NewNotFound("marking", ref.MarkingID.String())
	}

	if m.IncomeID != nil {
		archived, err := s.incomes.IsArchived(ctx, *m.IncomeID)
		if err != nil {
			return nil, err
		}
		if archived {
			return nil, apperror.NewArchivedDocument("income", m.IncomeID.String())
		}
	}

	if m.WrittenOff() {
		return nil, apperror.NewMarkingWrittenOff(m.Marking)
	}

	return m, nil
}

// CheckExist reports which of the submitted values already exist in
// the store and which are repeated within the request itself. Used by
// scanning clients to pre-validate before document submission.
func (s *Service) CheckExist(ctx context.Context, values []string) (CheckResult, error) {
	res := CheckResult{
		Existing:                []string{},
		DuplicatesWithinRequest: []string{},
	}

	seen := make(map[string]int, len(values))
	unique := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		seen[v]++
		if seen[v] == 1 {
			unique = append(unique, v)
		} else if seen[v] == 2 {
			res.DuplicatesWithinRequest = append(res.DuplicatesWithinRequest, v)
		}
	}

	if len(unique) == 0 {
		return res, nil
	}

	existing, err := s.repo.ExistingStrings(ctx, unique)
	if err != nil {
		return CheckResult{}, err
	}
	res.Existing = existing
	if res.Existing == nil {
		res.Existing = []string{}
	}

	return res, nil
}
