package company

import (
	"context"
	"strings"

	"stockmark/internal/core/apperror"
	"stockmark/internal/core/id"
	"stockmark/internal/domain"
	"stockmark/pkg/logger"
)

// Resolver finds or creates a counterparty from document data.
// Income/Outcome services depend on this interface.
type Resolver interface {
	Resolve(ctx context.Context, in ResolveInput) (*Company, error)
}

// Service provides business logic for the Company catalog.
type Service struct {
	repo Repository
}

// NewService creates a new Company service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Resolve finds or creates the counterparty described by in.
//
// The identity key is chosen explicitly: a non-empty trimmed INN keys
// an upsert that overwrites name/phone (repeated submissions with the
// same tax id self-correct stale names); without an INN the pair
// (name, phone) keys a strict find-or-create that never updates an
// existing row.
func (s *Service) Resolve(ctx context.Context, in ResolveInput) (*Company, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperror.NewValidation("company name is required").
			WithDetail("field", "company.name")
	}

	if inn := strings.TrimSpace(in.INN); inn != "" {
		c := NewCompany(name, in.Phone, &inn)
		stored, err := s.repo.UpsertByINN(ctx, c)
		if err != nil {
			return nil, err
		}
		return stored, nil
	}

	existing, err := s.repo.FindByNamePhone(ctx, name, in.Phone)
	if err == nil {
		return existing, nil
	}
	if !apperror.IsNotFound(err) {
		return nil, err
	}

	c := NewCompany(name, in.Phone, nil)
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	logger.Info(ctx, "company created", "id", c.ID, "name", c.Name)
	return c, nil
}

// GetByID retrieves a company by id.
func (s *Service) GetByID(ctx context.Context, companyID id.ID) (*Company, error) {
	return s.repo.GetByID(ctx, companyID)
}

// List retrieves companies with filtering.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Company], error) {
	return s.repo.List(ctx, filter)
}

var _ Resolver = (*Service)(nil)
