package document_repo

import (
	"stockmark/internal/domain/documents/outcome"
	"stockmark/internal/infrastructure/storage/postgres"
)

const outcomeTable = "outcomes"

// OutcomeRepo implements outcome.Repository.
type OutcomeRepo struct {
	*BaseDocumentRepo[*outcome.Outcome, *outcome.WithCompany]
}

// NewOutcomeRepo creates a new outcome repository.
func NewOutcomeRepo(txm *postgres.TxManager) *OutcomeRepo {
	return &OutcomeRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*outcome.Outcome, *outcome.WithCompany](
			txm,
			outcomeTable,
			"to_company_id",
			postgres.ExtractDBColumns[outcome.Outcome](),
			func() *outcome.Outcome { return &outcome.Outcome{} },
		),
	}
}

var _ outcome.Repository = (*OutcomeRepo)(nil)
