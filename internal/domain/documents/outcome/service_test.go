package outcome

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockmark/internal/core/apperror"
	"stockmark/internal/core/id"
	"stockmark/internal/domain"
	"stockmark/internal/domain/audit"
	"stockmark/internal/domain/catalogs/company"
	"stockmark/internal/domain/markings"
)

// Mock objects

type stubTx struct{}

func (stubTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockDirectory struct {
	resolved *company.Company
}

func (d *mockDirectory) Resolve(context.Context, company.ResolveInput) (*company.Company, error) {
	return d.resolved, nil
}

func (d *mockDirectory) GetByID(context.Context, id.ID) (*company.Company, error) {
	return d.resolved, nil
}

type mockOutcomeRepo struct {
	docs map[id.ID]*Outcome

	created *Outcome
	deleted []id.ID
}

func newMockOutcomeRepo(docs ...*Outcome) *mockOutcomeRepo {
	r := &mockOutcomeRepo{docs: make(map[id.ID]*Outcome)}
	for _, d := range docs {
		r.docs[d.ID] = d
	}
	return r
}

func (r *mockOutcomeRepo) Create(_ context.Context, doc *Outcome) error {
	r.created = doc
	r.docs[doc.ID] = doc
	return nil
}

func (r *mockOutcomeRepo) GetByID(_ context.Context, docID id.ID) (*Outcome, error) {
	d, ok := r.docs[docID]
	if !ok {
		return nil, apperror.NewNotFound("outcome", docID.String())
	}
	return d, nil
}

func (r *mockOutcomeRepo) Update(context.Context, *Outcome) error     { return nil }
func (r *mockOutcomeRepo) SetArchive(context.Context, *Outcome) error { return nil }

func (r *mockOutcomeRepo) Delete(_ context.Context, docID id.ID) error {
	r.deleted = append(r.deleted, docID)
	delete(r.docs, docID)
	return nil
}

func (r *mockOutcomeRepo) List(context.Context, domain.DocumentFilter) (domain.ListResult[*WithCompany], error) {
	return domain.ListResult[*WithCompany]{}, nil
}

// mockMarkingRepo simulates the conditional attach over an in-memory
// marking set and logs the order of mutating calls.
type mockMarkingRepo struct {
	byID      map[id.ID]*markings.Marking
	byOutcome []*markings.Marking

	calls       []string
	attachedIDs []id.ID
	detachedIDs []id.ID
	detachedAll []id.ID
}

func newMockMarkingRepo(items ...*markings.Marking) *mockMarkingRepo {
	r := &mockMarkingRepo{byID: make(map[id.ID]*markings.Marking)}
	for _, m := range items {
		r.byID[m.ID] = m
	}
	return r
}

func (r *mockMarkingRepo) CreateBatch(context.Context, []*markings.Marking) error { return nil }

func (r *mockMarkingRepo) GetByID(_ context.Context, markingID id.ID) (*markings.Marking, error) {
	m, ok := r.byID[markingID]
	if !ok {
		return nil, apperror.NewNotFound("marking", markingID.String())
	}
	return m, nil
}

func (r *mockMarkingRepo) GetByIDs(_ context.Context, ids []id.ID) ([]*markings.Marking, error) {
	var out []*markings.Marking
	for _, mid := range ids {
		if m, ok := r.byID[mid]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *mockMarkingRepo) Update(context.Context, *markings.Marking) error { return nil }
func (r *mockMarkingRepo) Delete(context.Context, id.ID) error             { return nil }

func (r *mockMarkingRepo) ExistingStrings(context.Context, []string) ([]string, error) {
	return nil, nil
}

func (r *mockMarkingRepo) ListByIncome(context.Context, id.ID) ([]*markings.Marking, error) {
	return nil, nil
}

func (r *mockMarkingRepo) ListByOutcome(context.Context, id.ID) ([]*markings.Marking, error) {
	return r.byOutcome, nil
}

func (r *mockMarkingRepo) DeleteByIncome(context.Context, id.ID) (int64, error) { return 0, nil }
func (r *mockMarkingRepo) DeleteByIncomeAndStrings(context.Context, id.ID, []string) (int64, error) {
	return 0, nil
}
func (r *mockMarkingRepo) WrittenOffStrings(context.Context, id.ID, []string) ([]string, error) {
	return nil, nil
}
func (r *mockMarkingRepo) HasWrittenOffByIncome(context.Context, id.ID) (bool, error) {
	return false, nil
}

func (r *mockMarkingRepo) AttachToOutcome(_ context.Context, outcomeID id.ID, ids []id.ID) (int64, error) {
	r.calls = append(r.calls, "attach")
	var n int64
	for _, mid := range ids {
		m, ok := r.byID[mid]
		if !ok || m.OutcomeID != nil {
			continue
		}
		oid := outcomeID
		m.OutcomeID = &oid
		r.attachedIDs = append(r.attachedIDs, mid)
		n++
	}
	return n, nil
}

func (r *mockMarkingRepo) DetachFromOutcome(_ context.Context, outcomeID id.ID, ids []id.ID) (int64, error) {
	r.calls = append(r.calls, "detach")
	var n int64
	for _, mid := range ids {
		m, ok := r.byID[mid]
		if !ok || m.OutcomeID == nil || *m.OutcomeID != outcomeID {
			continue
		}
		m.OutcomeID = nil
		r.detachedIDs = append(r.detachedIDs, mid)
		n++
	}
	return n, nil
}

func (r *mockMarkingRepo) DetachAll(_ context.Context, outcomeID id.ID) (int64, error) {
	r.calls = append(r.calls, "detachAll")
	r.detachedAll = append(r.detachedAll, outcomeID)
	var n int64
	for _, m := range r.byID {
		if m.OutcomeID != nil && *m.OutcomeID == outcomeID {
			m.OutcomeID = nil
			n++
		}
	}
	return n, nil
}

func (r *mockMarkingRepo) ListConflicting(_ context.Context, ids []id.ID, outcomeID id.ID) ([]*markings.Marking, error) {
	var out []*markings.Marking
	for _, mid := range ids {
		m, ok := r.byID[mid]
		if !ok {
			continue
		}
		if m.OutcomeID != nil && *m.OutcomeID != outcomeID {
			out = append(out, m)
		}
	}
	return out, nil
}

func newTestService(repo *mockOutcomeRepo, markrepo markings.Repository) *Service {
	customer := company.NewCompany("Buyer LLC", "+70000000000", nil)
	return NewService(repo, markrepo, &mockDirectory{resolved: customer}, audit.NopRecorder{}, stubTx{})
}

// headerOnlyInput omits the marking set entirely.
func headerOnlyInput() Input {
	return Input{
		Company:        company.ResolveInput{Name: "Buyer LLC"},
		ContractDate:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		ContractNumber: "C-9",
		InvoiceDate:    time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		InvoiceNumber:  "INV-9",
		Total:          90000,
	}
}

func validInput(markingIDs ...id.ID) Input {
	if markingIDs == nil {
		markingIDs = []id.ID{}
	}
	in := headerOnlyInput()
	in.MarkingIDs = &markingIDs
	return in
}

func inStock(value string) *markings.Marking {
	return markings.NewMarking(value, id.New(), id.New(), false)
}

func TestCreate(t *testing.T) {
	m1 := inStock("SN-001")
	m2 := inStock("SN-002")
	repo := newMockOutcomeRepo()
	markrepo := newMockMarkingRepo(m1, m2)
	svc := newTestService(repo, markrepo)

	// A repeated id counts once.
	doc, err := svc.Create(context.Background(), validInput(m1.ID, m2.ID, m1.ID))
	require.NoError(t, err)

	require.NotNil(t, repo.created)
	assert.Equal(t, []id.ID{m1.ID, m2.ID}, markrepo.attachedIDs)
	require.NotNil(t, m1.OutcomeID)
	assert.Equal(t, doc.ID, *m1.OutcomeID)
}

func TestCreate_MissingMarking(t *testing.T) {
	m1 := inStock("SN-001")
	missing := id.New()
	repo := newMockOutcomeRepo()
	markrepo := newMockMarkingRepo(m1)
	svc := newTestService(repo, markrepo)

	_, err := svc.Create(context.Background(), validInput(m1.ID, missing))
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeNotFound, appErr.Code)
	assert.Equal(t, missing.String(), appErr.Details["id"])
	assert.Empty(t, markrepo.attachedIDs)
}

func TestCreate_AlreadyWrittenOff(t *testing.T) {
	taken := inStock("SN-TAKEN")
	other := id.New()
	taken.OutcomeID = &other
	repo := newMockOutcomeRepo()
	markrepo := newMockMarkingRepo(taken)
	svc := newTestService(repo, markrepo)

	_, err := svc.Create(context.Background(), validInput(taken.ID))
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeAlreadyWrittenOff, appErr.Code)
	// The conflict is reported by serial value, not id.
	assert.Equal(t, []string{"SN-TAKEN"}, appErr.Details["marking_ids"])
	assert.Empty(t, markrepo.attachedIDs)
}

// raceMarkingRepo lets the pre-check pass and steals a marking right
// before the conditional update, like a concurrent outcome would.
type raceMarkingRepo struct {
	*mockMarkingRepo
	steal    *markings.Marking
	thief    id.ID
	precheck bool
}

func (r *raceMarkingRepo) ListConflicting(ctx context.Context, ids []id.ID, outcomeID id.ID) ([]*markings.Marking, error) {
	if !r.precheck {
		r.precheck = true
		// First call: nothing conflicts yet; the other writer commits
		// right after.
		thief := r.thief
		r.steal.OutcomeID = &thief
		return nil, nil
	}
	return r.mockMarkingRepo.ListConflicting(ctx, ids, outcomeID)
}

func TestCreate_LostRace(t *testing.T) {
	contested := inStock("SN-RACE")
	repo := newMockOutcomeRepo()
	markrepo := &raceMarkingRepo{
		mockMarkingRepo: newMockMarkingRepo(contested),
		steal:           contested,
		thief:           id.New(),
	}
	svc := newTestService(repo, markrepo)

	_, err := svc.Create(context.Background(), validInput(contested.ID))
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeAlreadyWrittenOff, appErr.Code)
	assert.Equal(t, []string{"SN-RACE"}, appErr.Details["marking_ids"])
}

func TestUpdate_SwapsAttachments(t *testing.T) {
	doc := New(id.New(), "operator")
	repo := newMockOutcomeRepo(doc)

	kept := inStock("SN-KEEP")
	dropped := inStock("SN-DROP")
	fresh := inStock("SN-FRESH")
	docID := doc.ID
	kept.OutcomeID = &docID
	dropped.OutcomeID = &docID

	markrepo := newMockMarkingRepo(kept, dropped, fresh)
	markrepo.byOutcome = []*markings.Marking{kept, dropped}
	svc := newTestService(repo, markrepo)

	_, err := svc.Update(context.Background(), doc.ID, validInput(kept.ID, fresh.ID))
	require.NoError(t, err)

	// Detach precedes attach inside the transaction.
	assert.Equal(t, []string{"detach", "attach"}, markrepo.calls)
	assert.Equal(t, []id.ID{dropped.ID}, markrepo.detachedIDs)
	assert.Equal(t, []id.ID{fresh.ID}, markrepo.attachedIDs)
	// The kept marking was never released.
	require.NotNil(t, kept.OutcomeID)
	assert.Equal(t, doc.ID, *kept.OutcomeID)
}

func TestUpdate_AbsentMarkingsLeavesAttachments(t *testing.T) {
	doc := New(id.New(), "operator")
	repo := newMockOutcomeRepo(doc)

	m1 := inStock("SN-001")
	m2 := inStock("SN-002")
	docID := doc.ID
	m1.OutcomeID = &docID
	m2.OutcomeID = &docID

	markrepo := newMockMarkingRepo(m1, m2)
	markrepo.byOutcome = []*markings.Marking{m1, m2}
	svc := newTestService(repo, markrepo)

	// Header-only edit: no marking set in the request.
	_, err := svc.Update(context.Background(), doc.ID, headerOnlyInput())
	require.NoError(t, err)

	assert.Empty(t, markrepo.calls)
	assert.Empty(t, markrepo.detachedIDs)
	require.NotNil(t, m1.OutcomeID)
	assert.Equal(t, doc.ID, *m1.OutcomeID)
	require.NotNil(t, m2.OutcomeID)
	assert.Equal(t, doc.ID, *m2.OutcomeID)
}

func TestUpdate_EmptyMarkingsDetachesAll(t *testing.T) {
	doc := New(id.New(), "operator")
	repo := newMockOutcomeRepo(doc)

	m1 := inStock("SN-001")
	docID := doc.ID
	m1.OutcomeID = &docID

	markrepo := newMockMarkingRepo(m1)
	markrepo.byOutcome = []*markings.Marking{m1}
	svc := newTestService(repo, markrepo)

	// An explicitly empty set is a real reconciliation target.
	_, err := svc.Update(context.Background(), doc.ID, validInput())
	require.NoError(t, err)

	assert.Equal(t, []id.ID{m1.ID}, markrepo.detachedIDs)
	assert.Nil(t, m1.OutcomeID)
}

func TestUpdate_Archived(t *testing.T) {
	doc := New(id.New(), "operator")
	doc.MarkArchived("alice")
	repo := newMockOutcomeRepo(doc)
	markrepo := newMockMarkingRepo()
	svc := newTestService(repo, markrepo)

	_, err := svc.Update(context.Background(), doc.ID, validInput())
	assert.True(t, apperror.HasCode(err, apperror.CodeArchivedDocument))
	assert.Empty(t, markrepo.calls)
}

func TestDelete_ReturnsMarkingsToStock(t *testing.T) {
	doc := New(id.New(), "operator")
	doc.MarkArchived("alice")
	repo := newMockOutcomeRepo(doc)

	claimed := inStock("SN-001")
	docID := doc.ID
	claimed.OutcomeID = &docID
	markrepo := newMockMarkingRepo(claimed)
	svc := newTestService(repo, markrepo)

	err := svc.Delete(context.Background(), doc.ID)
	require.NoError(t, err)

	assert.Equal(t, []id.ID{doc.ID}, markrepo.detachedAll)
	assert.Nil(t, claimed.OutcomeID)
	assert.Equal(t, []id.ID{doc.ID}, repo.deleted)
}

func TestDelete_RequiresArchived(t *testing.T) {
	doc := New(id.New(), "operator")
	repo := newMockOutcomeRepo(doc)
	markrepo := newMockMarkingRepo()
	svc := newTestService(repo, markrepo)

	err := svc.Delete(context.Background(), doc.ID)
	assert.True(t, apperror.HasCode(err, apperror.CodeNotArchived))
	assert.Empty(t, markrepo.detachedAll)
}
