package income

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

// Service provides business logic for income documents.
type Service struct {
	repo      Repository
	markrepo  markings.Repository
	companies CompanyDirectory
	auditor   audit.Recorder
	txm       tx.Manager
	machine   *documents.Machine[*Income]
}

// NewService creates a new Income service.
func NewService(repo Repository, markrepo markings.Repository, companies CompanyDirectory, auditor audit.Recorder, txm tx.Manager) *Service {
	s := &Service{
		repo:      repo,
		markrepo:  markrepo,
		companies: companies,
		auditor:   auditor,
		txm:       txm,
	}
	s.machine = documents.NewMachine[*Income]("income", repo, auditor, txm, s.beforeDelete)
	return s
}

// Create inserts an income document and brings its markings into
// existence. The counterparty is resolved from the embedded company
// data, never referenced by id from the client.
//
// Marking uniqueness is global: a value clashing with any stored
// marking, or repeated within the request, rejects the whole document.
func (s *Service) Create(ctx context.Context, in Input) (*Income, error) {
	var lines []LineInput
	if in.Lines != nil {
		lines = *in.Lines
	}
	values, dups := collectValues(lines)
	if len(dups) > 0 {
		return nil, apperror.NewDuplicateMarking(dups)
	}

	var doc *Income
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		supplier, err := s.companies.Resolve(ctx, in.Company)
		if err != nil {
			return err
		}

		doc = New(supplier.ID, appcontext.GetUsername(ctx))
		applyHeader(doc, in)
		if err := doc.Validate(ctx); err != nil {
			return err
		}
		if err := s.repo.Create(ctx, doc); err != nil {
			return err
		}

		if len(values) > 0 {
			taken, err := s.markrepo.ExistingStrings(ctx, values)
			if err != nil {
				return err
			}
			if len(taken) > 0 {
				return apperror.NewDuplicateMarking(taken)
			}

			items := buildMarkings(doc.ID, lines)
			if err := s.markrepo.CreateBatch(ctx, items); err != nil {
				return err
			}
		}

		return s.auditor.Record(ctx, "income", doc.ID, audit.ActionCreate, map[string]any{
			"invoice_number": doc.InvoiceNumber,
			"markings":       len(values),
		})
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "income created", "id", doc.ID, "markings", len(values))
	return doc, nil
}

// Update rewrites the header and reconciles the stored markings
// against the submitted lines. Markings present in both keep their
// identity and outcome link; markings absent from the request are
// deleted, new values are created. When the lines field itself is
// absent the update is header-only and the markings stay as they are.
//
// A written-off marking missing from the request aborts the whole
// update, because deleting it would corrupt the outcome that consumed
// it.
func (s *Service) Update(ctx context.Context, docID id.ID, in Input) (*Income, error) {
	var requested map[string]lineEntry
	if in.Lines != nil {
		var dups []string
		requested, dups = indexLines(*in.Lines)
		if len(dups) > 0 {
			return nil, apperror.NewDuplicateMarking(dups)
		}
	}

	var doc *Income
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		doc, err = s.machine.EnsureEditable(ctx, docID)
		if err != nil {
			return err
		}

		supplier, err := s.companies.Resolve(ctx, in.Company)
		if err != nil {
			return err
		}
		doc.CompanyID = supplier.ID
		applyHeader(doc, in)
		if err := doc.Validate(ctx); err != nil {
			return err
		}
		doc.Touch()
		if err := s.repo.Update(ctx, doc); err != nil {
			return err
		}

		if in.Lines != nil {
			if err := s.reconcile(ctx, doc.ID, requested); err != nil {
				return err
			}
		}

		return s.auditor.Record(ctx, "income", doc.ID, audit.ActionUpdate, map[string]any{
			"invoice_number": doc.InvoiceNumber,
		})
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "income updated", "id", doc.ID)
	return doc, nil
}

// reconcile diffs the stored markings of the income against the
// requested set, keyed by serial value.
func (s *Service) reconcile(ctx context.Context, docID id.ID, requested map[string]lineEntry) error {
	existing, err := s.markrepo.ListByIncome(ctx, docID)
	if err != nil {
		return err
	}

	var toDelete []string
	var blocked []string
	stored := make(map[string]struct{}, len(existing))
	for _, m := range existing {
		stored[m.Marking] = struct{}{}
		entry, keep := requested[m.Marking]
		if !keep {
			if m.WrittenOff() {
				blocked = append(blocked, m.Marking)
				continue
			}
			toDelete = append(toDelete, m.Marking)
			continue
		}
		// Kept markings keep their id and outcome link. Written-off
		// rows are frozen even when the request moves them.
		if m.WrittenOff() {
			continue
		}
		if m.ProductID != entry.productID || m.Counter != entry.counter {
			m.ProductID = entry.productID
			m.Counter = entry.counter
			m.Touch()
			if err := s.markrepo.Update(ctx, m); err != nil {
				return err
			}
		}
	}
	if len(blocked) > 0 {
		return apperror.NewHasWrittenOffMarkings(blocked)
	}
	if len(toDelete) > 0 {
		if _, err := s.markrepo.DeleteByIncomeAndStrings(ctx, docID, toDelete); err != nil {
			return err
		}
	}

	var toCreate []*markings.Marking
	var fresh []string
	for value, entry := range requested {
		if _, ok := stored[value]; ok {
			continue
		}
		fresh = append(fresh, value)
		toCreate = append(toCreate, markings.NewMarking(value, entry.productID, docID, entry.counter))
	}
	if len(fresh) > 0 {
		taken, err := s.markrepo.ExistingStrings(ctx, fresh)
		if err != nil {
			return err
		}
		if len(taken) > 0 {
			return apperror.NewDuplicateMarking(taken)
		}
		if err := s.markrepo.CreateBatch(ctx, toCreate); err != nil {
			return err
		}
	}

	return nil
}

// GetByID retrieves a fully hydrated income document.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*View, error) {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	supplier, err := s.companies.GetByID(ctx, doc.CompanyID)
	if err != nil {
		return nil, err
	}

	items, err := s.markrepo.ListByIncome(ctx, docID)
	if err != nil {
		return nil, err
	}

	return &View{Income: doc, Company: supplier, Lines: markings.GroupByProduct(items)}, nil
}

// List retrieves income headers with the supplier name.
func (s *Service) List(ctx context.Context, filter domain.DocumentFilter) (domain.ListResult[*WithCompany], error) {
	return s.repo.List(ctx, filter)
}

// Archive freezes the document and its markings.
func (s *Service) Archive(ctx context.Context, docID id.ID) (*Income, error) {
	return s.machine.Archive(ctx, docID)
}

// Unarchive returns the document to the live state.
func (s *Service) Unarchive(ctx context.Context, docID id.ID) (*Income, error) {
	return s.machine.Unarchive(ctx, docID)
}

// Delete permanently removes an archived income and cascades over its
// markings.
func (s *Service) Delete(ctx context.Context, docID id.ID) error {
	return s.machine.Delete(ctx, docID)
}

// beforeDelete blocks the cascade when any marking of the income is
// written off; deleting those rows would orphan the consuming outcome.
func (s *Service) beforeDelete(ctx context.Context, doc *Income) error {
	has, err := s.markrepo.HasWrittenOffByIncome(ctx, doc.ID)
	if err != nil {
		return err
	}
	if has {
		items, err := s.markrepo.ListByIncome(ctx, doc.ID)
		if err != nil {
			return err
		}
		var values []string
		for _, m := range items {
			if m.WrittenOff() {
				values = append(values, m.Marking)
			}
		}
		return apperror.NewHasWrittenOffMarkings(values)
	}

	_, err = s.markrepo.DeleteByIncome(ctx, doc.ID)
	return err
}

var _ markings.IncomeState = (Repository)(nil)

type lineEntry struct {
	productID id.ID
	counter   bool
}

// collectValues flattens the line items into trimmed serial values and
// reports values repeated within the request.
func collectValues(lines []LineInput) (values, dups []string) {
	seen := make(map[string]int)
	for _, line := range lines {
		for _, m := range line.Markings {
			v := strings.TrimSpace(m.Value)
			if v == "" {
				continue
			}
			seen[v]++
			switch seen[v] {
			case 1:
				values = append(values, v)
			case 2:
				dups = append(dups, v)
			}
		}
	}
	return values, dups
}

// indexLines maps trimmed serial values to their line data.
func indexLines(lines []LineInput) (map[string]lineEntry, []string) {
	index := make(map[string]lineEntry)
	var dups []string
	seen := make(map[string]int)
	for _, line := range lines {
		for _, m := range line.Markings {
			v := strings.TrimSpace(m.Value)
			if v == "" {
				continue
			}
			seen[v]++
			if seen[v] == 2 {
				dups = append(dups, v)
			}
			index[v] = lineEntry{productID: line.ProductID, counter: m.Counter}
		}
	}
	return index, dups
}

// buildMarkings turns line items into marking rows for a new document.
func buildMarkings(docID id.ID, lines []LineInput) []*markings.Marking {
	var items []*markings.Marking
	for _, line := range lines {
		for _, m := range line.Markings {
			v := strings.TrimSpace(m.Value)
			if v == "" {
				continue
			}
			items = append(items, markings.NewMarking(v, line.ProductID, docID, m.Counter))
		}
	}
	return items
}

// applyHeader copies the document fields from the input.
func applyHeader(doc *Income, in Input) {
	doc.ContractDate = in.ContractDate
	doc.ContractNumber = strings.TrimSpace(in.ContractNumber)
	doc.InvoiceDate = in.InvoiceDate
	doc.InvoiceNumber = strings.TrimSpace(in.InvoiceNumber)
	doc.UnitOfMeasure = strings.TrimSpace(in.UnitOfMeasure)
	doc.Total = in.Total
}
