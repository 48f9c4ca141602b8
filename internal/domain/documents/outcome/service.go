package outcome

import (
	"context"
	"strings"

	"stockmark/internal/core/apperror"
	appcontext "stockmark/internal/core/context"
	"stockmark/internal/core/id"
	"stockmark/internal/core/tx"
	"stockmark/internal/domain"
	"stockmark/internal/domain/audit"
	"stockmark/internal/domain/catalogs/company"
	"stockmark/internal/domain/documents"
	"stockmark/internal/domain/markings"
	"stockmark/pkg/logger"
)

// CompanyDirectory resolves and reads counterparties.
type CompanyDirectory interface {
	company.Resolver

	GetByID(ctx context.Context, companyID id.ID) (*company.Company, error)
}

// Service provides business logic for outcome documents.
type Service struct {
	repo      Repository
	markrepo  markings.Repository
	companies CompanyDirectory
	auditor   audit.Recorder
	txm       tx.Manager
	machine   *documents.Machine[*Outcome]
}

// NewService creates a new Outcome service.
func NewService(repo Repository, markrepo markings.Repository, companies CompanyDirectory, auditor audit.Recorder, txm tx.Manager) *Service {
	s := &Service{
		repo:      repo,
		markrepo:  markrepo,
		companies: companies,
		auditor:   auditor,
		txm:       txm,
	}
	s.machine = documents.NewMachine[*Outcome]("outcome", repo, auditor, txm, s.beforeDelete)
	return s
}

// Create inserts an outcome document and writes off the referenced
// markings.
//
// The write-off is a conditional bulk update claiming only markings
// whose outcome reference is still null. If the claimed row count
// falls short of the request, another outcome won the race for some
// marking and the whole transaction rolls back.
func (s *Service) Create(ctx context.Context, in Input) (*Outcome, error) {
	var ids []id.ID
	if in.MarkingIDs != nil {
		ids = dedupe(*in.MarkingIDs)
	}

	var doc *Outcome
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		customer, err := s.companies.Resolve(ctx, in.Company)
		if err != nil {
			return err
		}

		doc = New(customer.ID, appcontext.GetUsername(ctx))
		applyHeader(doc, in)
		if err := doc.Validate(ctx); err != nil {
			return err
		}
		if err := s.repo.Create(ctx, doc); err != nil {
			return err
		}

		if err := s.attach(ctx, doc.ID, ids); err != nil {
			return err
		}

		return s.auditor.Record(ctx, "outcome", doc.ID, audit.ActionCreate, map[string]any{
			"invoice_number": doc.InvoiceNumber,
			"markings":       len(ids),
		})
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "outcome created", "id", doc.ID, "markings", len(ids))
	return doc, nil
}

// Update rewrites the header and reconciles the attachment set. An
// absent marking set means a header-only edit: the attachments stay
// exactly as they are.
//
// Detach runs strictly before attach within the same transaction, so
// a request that keeps a marking attached to this same document never
// trips over its own previous claim.
func (s *Service) Update(ctx context.Context, docID id.ID, in Input) (*Outcome, error) {
	var doc *Outcome
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		doc, err = s.machine.EnsureEditable(ctx, docID)
		if err != nil {
			return err
		}

		customer, err := s.companies.Resolve(ctx, in.Company)
		if err != nil {
			return err
		}
		doc.CompanyID = customer.ID
		applyHeader(doc, in)
		if err := doc.Validate(ctx); err != nil {
			return err
		}
		doc.Touch()
		if err := s.repo.Update(ctx, doc); err != nil {
			return err
		}

		if in.MarkingIDs != nil {
			if err := s.reconcile(ctx, docID, dedupe(*in.MarkingIDs)); err != nil {
				return err
			}
		}

		return s.auditor.Record(ctx, "outcome", doc.ID, audit.ActionUpdate, map[string]any{
			"invoice_number": doc.InvoiceNumber,
		})
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "outcome updated", "id", doc.ID)
	return doc, nil
}

// reconcile diffs the current attachment set against the requested one
// and applies the difference, detach first.
func (s *Service) reconcile(ctx context.Context, docID id.ID, requested []id.ID) error {
	current, err := s.markrepo.ListByOutcome(ctx, docID)
	if err != nil {
		return err
	}

	wanted := make(map[id.ID]struct{}, len(requested))
	for _, mid := range requested {
		wanted[mid] = struct{}{}
	}

	var toDetach []id.ID
	attached := make(map[id.ID]struct{}, len(current))
	for _, m := range current {
		attached[m.ID] = struct{}{}
		if _, keep := wanted[m.ID]; !keep {
			toDetach = append(toDetach, m.ID)
		}
	}
	if len(toDetach) > 0 {
		if _, err := s.markrepo.DetachFromOutcome(ctx, docID, toDetach); err != nil {
			return err
		}
	}

	var toAttach []id.ID
	for _, mid := range requested {
		if _, ok := attached[mid]; !ok {
			toAttach = append(toAttach, mid)
		}
	}
	return s.attach(ctx, docID, toAttach)
}

// attach claims the given markings for the outcome.
func (s *Service) attach(ctx context.Context, docID id.ID, ids []id.ID) error {
	if len(ids) == 0 {
		return nil
	}

	found, err := s.markrepo.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(found) != len(ids) {
		present := make(map[id.ID]struct{}, len(found))
		for _, m := range found {
			present[m.ID] = struct{}{}
		}
		for _, mid := range ids {
			if _, ok := present[mid]; !ok {
				return apperror.NewNotFound("marking", mid.String())
			}
		}
	}

	// Pre-check gives a precise error message; the conditional update
	// below is what actually guarantees correctness under concurrency.
	conflicts, err := s.markrepo.ListConflicting(ctx, ids, docID)
	if err != nil {
		return err
	}
	if len(conflicts) > 0 {
		return alreadyWrittenOff(conflicts, nil)
	}

	n, err := s.markrepo.AttachToOutcome(ctx, docID, ids)
	if err != nil {
		return err
	}
	if n != int64(len(ids)) {
		// Lost a race between pre-check and update.
		conflicts, err := s.markrepo.ListConflicting(ctx, ids, docID)
		if err != nil {
			return err
		}
		return alreadyWrittenOff(conflicts, ids)
	}

	return nil
}

// GetByID retrieves a fully hydrated outcome document.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*View, error) {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	customer, err := s.companies.GetByID(ctx, doc.CompanyID)
	if err != nil {
		return nil, err
	}

	items, err := s.markrepo.ListByOutcome(ctx, docID)
	if err != nil {
		return nil, err
	}

	return &View{Outcome: doc, Company: customer, Lines: markings.GroupByProduct(items)}, nil
}

// List retrieves outcome headers with the customer name.
func (s *Service) List(ctx context.Context, filter domain.DocumentFilter) (domain.ListResult[*WithCompany], error) {
	return s.repo.List(ctx, filter)
}

// Archive freezes the document. Its markings stay written off.
func (s *Service) Archive(ctx context.Context, docID id.ID) (*Outcome, error) {
	return s.machine.Archive(ctx, docID)
}

// Unarchive returns the document to the live state.
func (s *Service) Unarchive(ctx context.Context, docID id.ID) (*Outcome, error) {
	return s.machine.Unarchive(ctx, docID)
}

// Delete permanently removes an archived outcome, returning its
// markings to stock.
func (s *Service) Delete(ctx context.Context, docID id.ID) error {
	return s.machine.Delete(ctx, docID)
}

// beforeDelete releases every marking the outcome had claimed.
func (s *Service) beforeDelete(ctx context.Context, doc *Outcome) error {
	_, err := s.markrepo.DetachAll(ctx, doc.ID)
	return err
}

// alreadyWrittenOff builds the conflict error from whatever detail is
// available. Serial values beat raw ids when the conflicting rows are
// known.
func alreadyWrittenOff(conflicts []*markings.Marking, requested []id.ID) *apperror.AppError {
	if len(conflicts) > 0 {
		values := make([]string, 0, len(conflicts))
		for _, m := range conflicts {
			values = append(values, m.Marking)
		}
		return apperror.NewAlreadyWrittenOff(values)
	}
	values := make([]string, 0, len(requested))
	for _, mid := range requested {
		values = append(values, mid.String())
	}
	return apperror.NewAlreadyWrittenOff(values)
}

// dedupe drops repeated ids, preserving order.
func dedupe(ids []id.ID) []id.ID {
	seen := make(map[id.ID]struct{}, len(ids))
	out := make([]id.ID, 0, len(ids))
	for _, mid := range ids {
		if _, ok := seen[mid]; ok {
			continue
		}
		seen[mid] = struct{}{}
		out = append(out, mid)
	}
	return out
}

// applyHeader copies the document fields from the input.
func applyHeader(doc *Outcome, in Input) {
	doc.ContractDate = in.ContractDate
	doc.ContractNumber = strings.TrimSpace(in.ContractNumber)
	doc.InvoiceDate = in.InvoiceDate
	doc.InvoiceNumber = strings.TrimSpace(in.InvoiceNumber)
	doc.UnitOfMeasure = strings.TrimSpace(in.UnitOfMeasure)
	doc.Total = in.Total
}
