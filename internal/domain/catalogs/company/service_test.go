package company

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockmark/internal/core/apperror"
	"stockmark/internal/core/id"
	"stockmark/internal/domain"
)

// Mock objects

type mockRepo struct {
	byNamePhone map[string]*Company
	findErr     error

	upserted *Company
	created  *Company
}

func (r *mockRepo) UpsertByINN(_ context.Context, c *Company) (*Company, error) {
	r.upserted = c
	return c, nil
}

func (r *mockRepo) FindByNamePhone(_ context.Context, name, phone string) (*Company, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	if c, ok := r.byNamePhone[name+"|"+phone]; ok {
		return c, nil
	}
	return nil, apperror.NewNotFound("company", name)
}

func (r *mockRepo) Create(_ context.Context, c *Company) error {
	r.created = c
	return nil
}

func (r *mockRepo) GetByID(_ context.Context, companyID id.ID) (*Company, error) {
	return nil, apperror.NewNotFound("company", companyID.String())
}

func (r *mockRepo) List(context.Context, domain.ListFilter) (domain.ListResult[*Company], error) {
	return domain.ListResult[*Company]{}, nil
}

func TestResolve_EmptyName(t *testing.T) {
	svc := NewService(&mockRepo{})

	_, err := svc.Resolve(context.Background(), ResolveInput{Name: "   "})
	assert.True(t, apperror.HasCode(err, apperror.CodeValidation))
}

func TestResolve_ByINN(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo)

	got, err := svc.Resolve(context.Background(), ResolveInput{
		Name:  "  Acme LLC  ",
		Phone: "+70000000000",
		INN:   " 7707083893 ",
	})
	require.NoError(t, err)

	// INN keys an upsert; name and INN arrive trimmed.
	require.NotNil(t, repo.upserted)
	assert.Equal(t, "Acme LLC", got.Name)
	require.NotNil(t, got.INN)
	assert.Equal(t, "7707083893", *got.INN)
	assert.Nil(t, repo.created)
}

func TestResolve_ByNamePhone_Existing(t *testing.T) {
	existing := NewCompany("Acme LLC", "+70000000000", nil)
	repo := &mockRepo{byNamePhone: map[string]*Company{
		"Acme LLC|+70000000000": existing,
	}}
	svc := NewService(repo)

	got, err := svc.Resolve(context.Background(), ResolveInput{
		Name:  "Acme LLC",
		Phone: "+70000000000",
	})
	require.NoError(t, err)

	assert.Equal(t, existing.ID, got.ID)
	// An existing row is never rewritten on this path.
	assert.Nil(t, repo.created)
	assert.Nil(t, repo.upserted)
}

func TestResolve_ByNamePhone_CreatesWhenMissing(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo)

	got, err := svc.Resolve(context.Background(), ResolveInput{
		Name:  "New Co",
		Phone: "+71111111111",
	})
	require.NoError(t, err)

	require.NotNil(t, repo.created)
	assert.Equal(t, "New Co", got.Name)
	assert.Equal(t, "+71111111111", got.Phone)
	assert.Nil(t, got.INN)
	assert.False(t, id.IsNil(got.ID))
}

func TestResolve_FindErrorPropagates(t *testing.T) {
	findErr := apperror.NewDatabase(errors.New("connection reset"))
	repo := &mockRepo{findErr: findErr}
	svc := NewService(repo)

	_, err := svc.Resolve(context.Background(), ResolveInput{Name: "Acme LLC"})
	assert.True(t, apperror.HasCode(err, apperror.CodeDatabase))
	assert.Nil(t, repo.created)
}
