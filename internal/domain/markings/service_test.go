package markings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockmark/internal/core/apperror"
	"stockmark/internal/core/id"
	"stockmark/internal/domain/audit"
)

// Mock objects

type stubTx struct{}

func (stubTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type stubIncomeState struct {
	archived map[id.ID]bool
}

func (s *stubIncomeState) IsArchived(_ context.Context, incomeID id.ID) (bool, error) {
	return s.archived[incomeID], nil
}

type mockRepo struct {
	byID     map[id.ID]*Marking
	existing []string

	existingQueries [][]string
	updated         []*Marking
	deleted         []id.ID
}

func newMockRepo(items ...*Marking) *mockRepo {
	r := &mockRepo{byID: make(map[id.ID]*Marking)}
	for _, m := range items {
		r.byID[m.ID] = m
	}
	return r
}

func (r *mockRepo) CreateBatch(context.Context, []*Marking) error { return nil }

func (r *mockRepo) GetByID(_ context.Context, markingID id.ID) (*Marking, error) {
	m, ok := r.byID[markingID]
	if !ok {
		return nil, apperror.NewNotFound("marking", markingID.String())
	}
	return m, nil
}

func (r *mockRepo) GetByIDs(_ context.Context, ids []id.ID) ([]*Marking, error) {
	var out []*Marking
	for _, mid := range ids {
		if m, ok := r.byID[mid]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *mockRepo) Update(_ context.Context, m *Marking) error {
	r.updated = append(r.updated, m)
	return nil
}

func (r *mockRepo) Delete(_ context.Context, markingID id.ID) error {
	r.deleted = append(r.deleted, markingID)
	delete(r.byID, markingID)
	return nil
}

func (r *mockRepo) ExistingStrings(_ context.Context, values []string) ([]string, error) {
	r.existingQueries = append(r.existingQueries, values)
	var out []string
	for _, v := range values {
		for _, e := range r.existing {
			if v == e {
				out = append(out, v)
			}
		}
	}
	return out, nil
}

func (r *mockRepo) ListByIncome(context.Context, id.ID) ([]*Marking, error)  { return nil, nil }
func (r *mockRepo) ListByOutcome(context.Context, id.ID) ([]*Marking, error) { return nil, nil }
func (r *mockRepo) DeleteByIncome(context.Context, id.ID) (int64, error)     { return 0, nil }
func (r *mockRepo) DeleteByIncomeAndStrings(context.Context, id.ID, []string) (int64, error) {
	return 0, nil
}
func (r *mockRepo) WrittenOffStrings(context.Context, id.ID, []string) ([]string, error) {
	return nil, nil
}
func (r *mockRepo) HasWrittenOffByIncome(context.Context, id.ID) (bool, error) { return false, nil }
func (r *mockRepo) AttachToOutcome(context.Context, id.ID, []id.ID) (int64, error) {
	return 0, nil
}
func (r *mockRepo) DetachFromOutcome(context.Context, id.ID, []id.ID) (int64, error) {
	return 0, nil
}
func (r *mockRepo) DetachAll(context.Context, id.ID) (int64, error) { return 0, nil }
func (r *mockRepo) ListConflicting(context.Context, []id.ID, id.ID) ([]*Marking, error) {
	return nil, nil
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func newTestService(repo *mockRepo, incomes *stubIncomeState) *Service {
	if incomes == nil {
		incomes = &stubIncomeState{archived: map[id.ID]bool{}}
	}
	return NewService(repo, incomes, audit.NopRecorder{}, stubTx{})
}

func refFor(m *Marking) Ref {
	return Ref{IncomeID: *m.IncomeID, ProductID: m.ProductID, MarkingID: m.ID}
}

func TestEdit_Success(t *testing.T) {
	m := NewMarking("SN-001", id.New(), id.New(), false)
	repo := newMockRepo(m)
	svc := newTestService(repo, nil)

	got, err := svc.Edit(context.Background(), refFor(m), EditInput{
		Marking: strPtr("  SN-002  "),
		Counter: boolPtr(true),
	})
	require.NoError(t, err)

	assert.Equal(t, "SN-002", got.Marking)
	assert.True(t, got.Counter)
	assert.Equal(t, 2, got.Version)
	require.Len(t, repo.updated, 1)
}

func TestEdit_NoChanges(t *testing.T) {
	m := NewMarking("SN-001", id.New(), id.New(), true)
	repo := newMockRepo(m)
	svc := newTestService(repo, nil)

	got, err := svc.Edit(context.Background(), refFor(m), EditInput{
		Marking: strPtr("SN-001"),
		Counter: boolPtr(true),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, got.Version)
	assert.Empty(t, repo.updated)
	// Unchanged value must not be checked for uniqueness.
	assert.Empty(t, repo.existingQueries)
}

func TestEdit_NotFound(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo, nil)

	_, err := svc.Edit(context.Background(), Ref{IncomeID: id.New(), ProductID: id.New(), MarkingID: id.New()}, EditInput{})
	assert.True(t, apperror.IsNotFound(err))
}

func TestEdit_PathMismatch(t *testing.T) {
	m := NewMarking("SN-001", id.New(), id.New(), false)
	repo := newMockRepo(m)
	svc := newTestService(repo, nil)

	// Wrong product in the path.
	ref := refFor(m)
	ref.ProductID = id.New()
	_, err := svc.Edit(context.Background(), ref, EditInput{Counter: boolPtr(true)})
	assert.True(t, apperror.IsNotFound(err))

	// Wrong income in the path.
	ref = refFor(m)
	ref.IncomeID = id.New()
	_, err = svc.Edit(context.Background(), ref, EditInput{Counter: boolPtr(true)})
	assert.True(t, apperror.IsNotFound(err))
}

func TestEdit_ArchivedIncome(t *testing.T) {
	m := NewMarking("SN-001", id.New(), id.New(), false)
	repo := newMockRepo(m)
	svc := newTestService(repo, &stubIncomeState{archived: map[id.ID]bool{*m.IncomeID: true}})

	_, err := svc.Edit(context.Background(), refFor(m), EditInput{Counter: boolPtr(true)})
	assert.True(t, apperror.HasCode(err, apperror.CodeArchivedDocument))
	assert.Empty(t, repo.updated)
}

func TestEdit_LegacyMarkingWithoutIncome(t *testing.T) {
	// Rows predating document tracking have no income and skip the
	// archive guard.
	m := NewMarking("SN-LEGACY", id.New(), id.New(), false)
	m.IncomeID = nil
	repo := newMockRepo(m)
	svc := newTestService(repo, nil)

	got, err := svc.Edit(context.Background(), Ref{IncomeID: id.New(), ProductID: m.ProductID, MarkingID: m.ID}, EditInput{
		Counter: boolPtr(true),
	})
	require.NoError(t, err)
	assert.True(t, got.Counter)
}

func TestEdit_WrittenOff(t *testing.T) {
	m := NewMarking("SN-001", id.New(), id.New(), false)
	outcomeID := id.New()
	m.OutcomeID = &outcomeID
	repo := newMockRepo(m)
	svc := newTestService(repo, nil)

	_, err := svc.Edit(context.Background(), refFor(m), EditInput{Counter: boolPtr(true)})
	assert.True(t, apperror.HasCode(err, apperror.CodeMarkingWrittenOff))
}

func TestEdit_DuplicateValue(t *testing.T) {
	m := NewMarking("SN-001", id.New(), id.New(), false)
	repo := newMockRepo(m)
	repo.existing = []string{"SN-002"}
	svc := newTestService(repo, nil)

	_, err := svc.Edit(context.Background(), refFor(m), EditInput{Marking: strPtr("SN-002")})
	assert.True(t, apperror.HasCode(err, apperror.CodeDuplicateMarking))
	assert.Empty(t, repo.updated)
}

func TestEdit_EmptyValue(t *testing.T) {
	m := NewMarking("SN-001", id.New(), id.New(), false)
	repo := newMockRepo(m)
	svc := newTestService(repo, nil)

	_, err := svc.Edit(context.Background(), refFor(m), EditInput{Marking: strPtr("   ")})
	assert.True(t, apperror.HasCode(err, apperror.CodeValidation))
}

func TestDelete_Success(t *testing.T) {
	m := NewMarking("SN-001", id.New(), id.New(), false)
	repo := newMockRepo(m)
	svc := newTestService(repo, nil)

	err := svc.Delete(context.Background(), refFor(m))
	require.NoError(t, err)
	assert.Equal(t, []id.ID{m.ID}, repo.deleted)
}

func TestDelete_WrittenOff(t *testing.T) {
	m := NewMarking("SN-001", id.New(), id.New(), false)
	outcomeID := id.New()
	m.OutcomeID = &outcomeID
	repo := newMockRepo(m)
	svc := newTestService(repo, nil)

	err := svc.Delete(context.Background(), refFor(m))
	assert.True(t, apperror.HasCode(err, apperror.CodeMarkingWrittenOff))
	assert.Empty(t, repo.deleted)
}

func TestCheckExist(t *testing.T) {
	repo := newMockRepo()
	repo.existing = []string{"SN-001", "SN-003"}
	svc := newTestService(repo, nil)

	res, err := svc.CheckExist(context.Background(), []string{
		" SN-001 ", "SN-002", "SN-002", "SN-003", "SN-002", "",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"SN-001", "SN-003"}, res.Existing)
	// A value repeated three times is reported once.
	assert.Equal(t, []string{"SN-002"}, res.DuplicatesWithinRequest)
	require.Len(t, repo.existingQueries, 1)
	assert.Equal(t, []string{"SN-001", "SN-002", "SN-003"}, repo.existingQueries[0])
}

func TestCheckExist_Empty(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo, nil)

	res, err := svc.CheckExist(context.Background(), []string{"", "   "})
	require.NoError(t, err)

	assert.NotNil(t, res.Existing)
	assert.NotNil(t, res.DuplicatesWithinRequest)
	assert.Empty(t, res.Existing)
	assert.Empty(t, res.DuplicatesWithinRequest)
	// Nothing to look up.
	assert.Empty(t, repo.existingQueries)
}
